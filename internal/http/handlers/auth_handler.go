package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/diagnosis/hotel-backoffice/internal/http/response"
	"github.com/diagnosis/hotel-backoffice/internal/service"
)

type AuthHandler struct {
	Svc service.AuthService
}

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{Svc: svc}
}

// Routes mounts login behind the optional limiter middleware.
func (h *AuthHandler) Routes(limit ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.With(limit...).Post("/login", h.login)
	return r
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var in loginReq
	if !decodeJSON(w, r, &in) {
		return
	}
	if in.Email == "" || in.Password == "" {
		response.BadRequest(w, "email and password are required")
		return
	}

	tok, err := h.Svc.Login(r.Context(), service.LoginRequest{Email: in.Email, Password: in.Password})
	if errors.Is(err, service.ErrInvalidCredentials) {
		response.Unauthorized(w, "Invalid email or password")
		return
	}
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loginRes{Token: tok.AccessToken, ExpiresAt: tok.ExpiresAt})
}
