package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ReservationStatus string

const (
	ReservationActive   ReservationStatus = "Active"
	ReservationCanceled ReservationStatus = "Canceled"
)

func ParseReservationStatus(s string) (ReservationStatus, bool) {
	switch ReservationStatus(s) {
	case ReservationActive, ReservationCanceled:
		return ReservationStatus(s), true
	default:
		return "", false
	}
}

// Reservation dates are calendar days stored as UTC midnight.
type Reservation struct {
	ID          int64
	RoomID      int64
	GuestID     int64
	CheckIn     time.Time
	CheckOut    time.Time
	GuestsCount int
	TotalPrice  decimal.Decimal
	Status      ReservationStatus
	RowVersion  int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (r *Reservation) IsActive() bool {
	return r.Status == ReservationActive
}

// Nights is the number of nights between check-in and check-out.
func (r *Reservation) Nights() int {
	return NightsBetween(r.CheckIn, r.CheckOut)
}

type ReservationFilter struct {
	RoomID  *int64
	GuestID *int64
	Status  *ReservationStatus
}

const DateLayout = "2006-01-02"

// Date truncates t to its UTC calendar day.
func Date(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

func NightsBetween(checkIn, checkOut time.Time) int {
	return int(Date(checkOut).Sub(Date(checkIn)).Hours() / 24)
}
