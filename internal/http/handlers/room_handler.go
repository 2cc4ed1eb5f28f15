package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/diagnosis/hotel-backoffice/internal/domain"
	"github.com/diagnosis/hotel-backoffice/internal/http/response"
	"github.com/diagnosis/hotel-backoffice/internal/service"
)

type RoomHandler struct {
	Svc service.RoomService
}

func NewRoomHandler(svc service.RoomService) *RoomHandler {
	return &RoomHandler{Svc: svc}
}

func (h *RoomHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.getByID)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.deactivate)
	return r
}

// parseRoomSort resolves sortBy (or its alias sort) and sortDir into a
// closed sort key. Unknown values are rejected.
func parseRoomSort(w http.ResponseWriter, r *http.Request) (domain.RoomSort, bool) {
	q := r.URL.Query()
	raw := q.Get("sortBy")
	if raw == "" {
		raw = q.Get("sort")
	}
	key, ok := domain.ParseRoomSortKey(strings.ToLower(strings.TrimSpace(raw)))
	if !ok {
		invalidQuery(w, fmt.Sprintf("unknown sort key %q", raw))
		return domain.RoomSort{}, false
	}

	var desc bool
	switch strings.ToLower(strings.TrimSpace(q.Get("sortDir"))) {
	case "", "asc":
	case "desc":
		desc = true
	default:
		invalidQuery(w, "sortDir must be asc or desc")
		return domain.RoomSort{}, false
	}
	return domain.RoomSort{Key: key, Desc: desc}, true
}

func (h *RoomHandler) list(w http.ResponseWriter, r *http.Request) {
	var filter domain.RoomFilter
	var ok bool
	if filter.MinCapacity, ok = optionalInt(w, r, "minCapacity"); !ok {
		return
	}
	if filter.OnlyActive, ok = optionalBool(w, r, "onlyActive"); !ok {
		return
	}
	filter.Type = r.URL.Query().Get("type")

	sort, ok := parseRoomSort(w, r)
	if !ok {
		return
	}
	page, ok := parsePage(w, r)
	if !ok {
		return
	}

	rooms, total, err := h.Svc.List(r.Context(), filter, sort, page)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	setTotal(w, total)
	writeJSON(w, http.StatusOK, toRoomList(rooms))
}

func (h *RoomHandler) getByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	room, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toRoomRes(*room))
}

func (h *RoomHandler) create(w http.ResponseWriter, r *http.Request) {
	var in roomReq
	if !decodeJSON(w, r, &in) {
		return
	}
	room, err := h.Svc.Create(r.Context(), in.toInput())
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/api/rooms/%d", room.ID))
	writeJSON(w, http.StatusCreated, toRoomRes(*room))
}

func (h *RoomHandler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var in roomReq
	if !decodeJSON(w, r, &in) {
		return
	}
	room, err := h.Svc.Update(r.Context(), id, in.toInput())
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toRoomRes(*room))
}

func (h *RoomHandler) deactivate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.Svc.Deactivate(r.Context(), id); err != nil {
		response.FromError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// isActive defaults to true when omitted.
func (in roomReq) toInput() service.RoomInput {
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	return service.RoomInput{
		Number:        in.Number,
		Type:          in.Type,
		Capacity:      in.Capacity,
		PricePerNight: in.PricePerNight,
		IsActive:      active,
	}
}
