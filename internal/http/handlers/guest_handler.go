package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/diagnosis/hotel-backoffice/internal/http/response"
	"github.com/diagnosis/hotel-backoffice/internal/service"
)

type GuestHandler struct {
	Svc service.GuestService
}

func NewGuestHandler(svc service.GuestService) *GuestHandler {
	return &GuestHandler{Svc: svc}
}

func (h *GuestHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.getByID)
	r.Put("/{id}", h.update)
	return r
}

func (h *GuestHandler) list(w http.ResponseWriter, r *http.Request) {
	page, ok := parsePage(w, r)
	if !ok {
		return
	}
	guests, total, err := h.Svc.List(r.Context(), page)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	out := make([]guestRes, 0, len(guests))
	for _, g := range guests {
		out = append(out, toGuestRes(g))
	}
	setTotal(w, total)
	writeJSON(w, http.StatusOK, out)
}

func (h *GuestHandler) getByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	g, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toGuestRes(*g))
}

func (h *GuestHandler) create(w http.ResponseWriter, r *http.Request) {
	var in guestReq
	if !decodeJSON(w, r, &in) {
		return
	}
	g, err := h.Svc.Create(r.Context(), service.GuestInput(in))
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/api/guests/%d", g.ID))
	writeJSON(w, http.StatusCreated, toGuestRes(*g))
}

func (h *GuestHandler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var in guestReq
	if !decodeJSON(w, r, &in) {
		return
	}
	g, err := h.Svc.Update(r.Context(), id, service.GuestInput(in))
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toGuestRes(*g))
}
