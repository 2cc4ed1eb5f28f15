package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diagnosis/hotel-backoffice/internal/clock"
	"github.com/diagnosis/hotel-backoffice/internal/http/handlers"
	"github.com/diagnosis/hotel-backoffice/internal/http/middleware"
	"github.com/diagnosis/hotel-backoffice/internal/platform/redisstore"
	"github.com/diagnosis/hotel-backoffice/internal/repository"
	"github.com/diagnosis/hotel-backoffice/internal/repository/memory"
	"github.com/diagnosis/hotel-backoffice/internal/repository/postgres"
	"github.com/diagnosis/hotel-backoffice/internal/service"
	"github.com/diagnosis/hotel-backoffice/pkg/auth"
	"github.com/diagnosis/hotel-backoffice/pkg/config"
	"github.com/diagnosis/hotel-backoffice/pkg/database"
	"github.com/diagnosis/hotel-backoffice/pkg/events"
	"github.com/diagnosis/hotel-backoffice/pkg/logger"
	mw "github.com/diagnosis/hotel-backoffice/pkg/middleware"
)

type stores struct {
	tx           repository.TxManager
	rooms        repository.RoomRepository
	guests       repository.GuestRepository
	reservations repository.ReservationRepository
}

func main() {
	cfg := config.Load()
	ctx := context.Background()
	checks := map[string]mw.Check{}

	var st stores
	switch cfg.Database.Backend {
	case "memory":
		store := memory.NewStore()
		store.Seed()
		st = stores{tx: store, rooms: store.Rooms(), guests: store.Guests(), reservations: store.Reservations()}
		logger.Warn("Using in-memory store, data is lost on restart")
	default:
		pool, err := database.Connect(ctx, cfg.Database)
		if err != nil {
			logger.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		if cfg.Database.MigrateOnStart {
			if err := database.Migrate(ctx, pool); err != nil {
				logger.Error("Failed to run migrations", "error", err)
				os.Exit(1)
			}
		}
		st = stores{
			tx:           postgres.NewTxManager(pool),
			rooms:        postgres.NewRoomRepository(pool),
			guests:       postgres.NewGuestRepository(pool),
			reservations: postgres.NewReservationRepository(pool),
		}
		checks["database"] = pool.Ping
	}

	// Connect to event bus
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.NATS.URL != "" {
		eventBus, err := events.NewNATSEventBus(cfg.NATS.URL)
		if err != nil {
			logger.Warn("NATS unavailable, events will be dropped", "error", err)
		} else {
			publisher = eventBus
		}
	}
	defer publisher.Close()

	var (
		idempotency mw.IdempotencyStore
		counter     middleware.Counter = middleware.NewMemoryCounter()
	)
	if cfg.Redis.URL != "" {
		client, err := redisstore.Connect(ctx, cfg.Redis.URL)
		if err != nil {
			logger.Warn("Redis unavailable, idempotency replay disabled", "error", err)
		} else {
			defer client.Close()
			idempotency = redisstore.NewIdempotencyStore(client)
			counter = redisstore.NewCounter(client)
			checks["redis"] = redisstore.Ping(client)
		}
	}

	tokens := auth.TokenConfig{
		Secret:   cfg.Auth.JWTSecret,
		Issuer:   cfg.Auth.Issuer,
		Audience: cfg.Auth.Audience,
		TTL:      cfg.Auth.AccessTokenTTL,
	}
	authService, err := service.NewAuthService(cfg.Auth.AdminEmail, cfg.Auth.AdminPassword, cfg.Auth.AdminPasswordHash, tokens)
	if err != nil {
		logger.Error("Failed to initialize auth", "error", err)
		os.Exit(1)
	}

	clk := clock.NewSystem()
	router := handlers.NewRouter(handlers.RouterDeps{
		Availability: service.NewAvailabilityService(st.rooms, st.reservations),
		Reservations: service.NewReservationService(st.tx, st.rooms, st.guests, st.reservations,
			publisher, clk, cfg.Reservation.BookingSettings()),
		Rooms:          service.NewRoomService(st.tx, st.rooms, publisher, clk),
		Guests:         service.NewGuestService(st.guests),
		Auth:           authService,
		Tokens:         tokens,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Checks:         checks,
		Idempotency:    idempotency,
		IdempotencyTTL: cfg.Redis.IdempotencyTTL,
		LoginLimiter: middleware.NewRateLimiter(counter, middleware.RateLimitConfig{
			Requests: cfg.Auth.LoginRateLimit,
			Window:   cfg.Auth.LoginRateWindow,
			Prefix:   "login",
		}),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Graceful shutdown
	idle := make(chan struct{})
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down hotel api...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Hotel api shutdown error", "error", err)
		}
		close(idle)
	}()

	logger.Info("Starting hotel api", "port", cfg.Server.Port, "store", cfg.Database.Backend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Hotel api server error", "error", err)
		os.Exit(1)
	}
	<-idle
}
