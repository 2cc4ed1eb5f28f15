package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/diagnosis/hotel-backoffice/internal/http/middleware"
	"github.com/diagnosis/hotel-backoffice/internal/service"
	"github.com/diagnosis/hotel-backoffice/pkg/auth"
	mw "github.com/diagnosis/hotel-backoffice/pkg/middleware"
)

type RouterDeps struct {
	Availability service.AvailabilityService
	Reservations service.ReservationService
	Rooms        service.RoomService
	Guests       service.GuestService
	Auth         service.AuthService

	Tokens         auth.TokenConfig
	AllowedOrigins []string
	Checks         map[string]mw.Check

	// Optional. Nil disables the feature.
	Idempotency    mw.IdempotencyStore
	IdempotencyTTL time.Duration
	LoginLimiter   *middleware.RateLimiter
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.ServiceName("hotel-api"))
	r.Use(mw.Logging)
	r.Use(mw.Recoverer)
	r.Use(mw.CORS(d.AllowedOrigins))
	r.Use(mw.Health(d.Checks))

	requireAdmin := middleware.RequireJWT(d.Tokens, auth.RoleAdmin)

	var createMW []func(http.Handler) http.Handler
	if d.Idempotency != nil {
		createMW = append(createMW, mw.IdempotencyMiddleware(d.Idempotency, d.IdempotencyTTL))
	}
	var loginMW []func(http.Handler) http.Handler
	if d.LoginLimiter != nil {
		loginMW = append(loginMW, d.LoginLimiter.Middleware())
	}

	r.Route("/api", func(r chi.Router) {
		r.Mount("/availability", NewAvailabilityHandler(d.Availability).Routes())
		r.Mount("/reservations", NewReservationHandler(d.Reservations).Routes(requireAdmin, createMW...))
		r.Mount("/auth", NewAuthHandler(d.Auth).Routes(loginMW...))

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Mount("/rooms", NewRoomHandler(d.Rooms).Routes())
			r.Mount("/guests", NewGuestHandler(d.Guests).Routes())
		})
	})

	return r
}
