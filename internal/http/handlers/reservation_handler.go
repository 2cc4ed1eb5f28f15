package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/diagnosis/hotel-backoffice/internal/booking"
	"github.com/diagnosis/hotel-backoffice/internal/domain"
	"github.com/diagnosis/hotel-backoffice/internal/http/response"
	"github.com/diagnosis/hotel-backoffice/internal/service"
)

type ReservationHandler struct {
	Svc service.ReservationService
}

func NewReservationHandler(svc service.ReservationService) *ReservationHandler {
	return &ReservationHandler{Svc: svc}
}

// Routes mounts the reservation endpoints. Lookup by id is public; everything
// else goes through requireAdmin. createMW wraps only POST.
func (h *ReservationHandler) Routes(requireAdmin func(http.Handler) http.Handler, createMW ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/{id}", h.getByID)
	r.Group(func(r chi.Router) {
		r.Use(requireAdmin)
		r.Get("/", h.list)
		r.With(createMW...).Post("/", h.create)
		r.Delete("/{id}", h.cancel)
	})
	return r
}

func (h *ReservationHandler) create(w http.ResponseWriter, r *http.Request) {
	var in reservationReq
	if !decodeJSON(w, r, &in) {
		return
	}

	checkIn, err := bodyDate(in.CheckIn)
	if err != nil {
		response.BadRequest(w, "checkIn must be YYYY-MM-DD")
		return
	}
	checkOut, err := bodyDate(in.CheckOut)
	if err != nil {
		response.BadRequest(w, "checkOut must be YYYY-MM-DD")
		return
	}

	res, err := h.Svc.Create(r.Context(), booking.Request{
		RoomID:      in.RoomID,
		GuestID:     in.GuestID,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		GuestsCount: in.GuestsCount,
	})
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/reservations/%d", res.ID))
	writeJSON(w, http.StatusCreated, toReservationRes(res))
}

func (h *ReservationHandler) getByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	res, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toReservationRes(res))
}

func (h *ReservationHandler) list(w http.ResponseWriter, r *http.Request) {
	var filter domain.ReservationFilter
	var ok bool
	if filter.RoomID, ok = optionalID(w, r, "roomId"); !ok {
		return
	}
	if filter.GuestID, ok = optionalID(w, r, "guestId"); !ok {
		return
	}
	if v := strings.TrimSpace(r.URL.Query().Get("status")); v != "" {
		status, valid := domain.ParseReservationStatus(v)
		if !valid {
			invalidQuery(w, "status must be Active or Canceled")
			return
		}
		filter.Status = &status
	}
	page, ok := parsePage(w, r)
	if !ok {
		return
	}

	items, total, err := h.Svc.List(r.Context(), filter, page)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	out := make([]reservationRes, 0, len(items))
	for i := range items {
		out = append(out, toReservationRes(&items[i]))
	}
	setTotal(w, total)
	writeJSON(w, http.StatusOK, out)
}

func (h *ReservationHandler) cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.Svc.Cancel(r.Context(), id); err != nil {
		response.FromError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// bodyDate accepts an empty value as the zero date so range validation
// reports it in order with the other rules.
func bodyDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	return domain.ParseDate(s)
}
