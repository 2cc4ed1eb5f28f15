package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/diagnosis/hotel-backoffice/internal/http/response"
	"github.com/diagnosis/hotel-backoffice/internal/service"
)

type AvailabilityHandler struct {
	Svc service.AvailabilityService
}

func NewAvailabilityHandler(svc service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{Svc: svc}
}

func (h *AvailabilityHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.find)
	return r
}

func (h *AvailabilityHandler) find(w http.ResponseWriter, r *http.Request) {
	checkIn, ok := queryDate(w, r, "checkIn")
	if !ok {
		return
	}
	checkOut, ok := queryDate(w, r, "checkOut")
	if !ok {
		return
	}
	minCapacity, ok := optionalInt(w, r, "minCapacity")
	if !ok {
		return
	}

	q := service.AvailabilityQuery{CheckIn: checkIn, CheckOut: checkOut, Type: r.URL.Query().Get("type")}
	if minCapacity != nil {
		q.MinCapacity = *minCapacity
	}

	rooms, err := h.Svc.FindAvailable(r.Context(), q)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toRoomList(rooms))
}
