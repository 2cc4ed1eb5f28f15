package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Reservation.MinNights != 1 || cfg.Reservation.MaxNights != 30 {
		t.Fatalf("unexpected stay limits: %+v", cfg.Reservation)
	}
	if cfg.Auth.AccessTokenTTL != 3*time.Hour {
		t.Fatalf("expected 3h token ttl, got %s", cfg.Auth.AccessTokenTTL)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("RESERVATION_MAX_NIGHTS", "14")
	t.Setenv("RESERVATION_WEEKEND_SURCHARGE", "false")
	t.Setenv("RESERVATION_WEEKEND_SURCHARGE_PERCENT", "12.5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("DB_MAX_CONNS", "not-a-number")

	cfg := Load()

	if cfg.Reservation.MaxNights != 14 {
		t.Fatalf("expected max nights 14, got %d", cfg.Reservation.MaxNights)
	}
	if cfg.Database.MaxConns != 10 {
		t.Fatalf("invalid int should fall back, got %d", cfg.Database.MaxConns)
	}
	if got := cfg.Server.AllowedOrigins; len(got) != 2 || got[1] != "https://b.example" {
		t.Fatalf("unexpected origins: %v", got)
	}

	s := cfg.Reservation.BookingSettings()
	if s.EnableWeekendSurcharge {
		t.Fatal("surcharge should be disabled")
	}
	if s.WeekendSurchargePercent.String() != "12.5" {
		t.Fatalf("expected 12.5 percent, got %s", s.WeekendSurchargePercent)
	}
}

func TestBookingSettings_BadPercentFallsBack(t *testing.T) {
	s := ReservationConfig{MinNights: 1, MaxNights: 30, WeekendSurchargePercent: "ten"}.BookingSettings()
	if s.WeekendSurchargePercent.String() != "10" {
		t.Fatalf("expected fallback 10, got %s", s.WeekendSurchargePercent)
	}
}
