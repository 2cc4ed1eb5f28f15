package handlers

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/diagnosis/hotel-backoffice/internal/domain"
)

func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

type roomRes struct {
	ID            int64       `json:"id"`
	Number        string      `json:"number"`
	Type          string      `json:"type"`
	Capacity      int         `json:"capacity"`
	PricePerNight json.Number `json:"pricePerNight"`
	IsActive      bool        `json:"isActive"`
}

func toRoomRes(r domain.Room) roomRes {
	return roomRes{
		ID:            r.ID,
		Number:        r.Number,
		Type:          r.Type,
		Capacity:      r.Capacity,
		PricePerNight: money(r.PricePerNight),
		IsActive:      r.IsActive,
	}
}

func toRoomList(rooms []domain.Room) []roomRes {
	out := make([]roomRes, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, toRoomRes(r))
	}
	return out
}

type roomReq struct {
	Number        string          `json:"number"`
	Type          string          `json:"type"`
	Capacity      int             `json:"capacity"`
	PricePerNight decimal.Decimal `json:"pricePerNight"`
	IsActive      *bool           `json:"isActive"`
}

type guestRes struct {
	ID               int64   `json:"id"`
	FirstName        string  `json:"firstName"`
	LastName         string  `json:"lastName"`
	Email            string  `json:"email"`
	Phone            *string `json:"phone"`
	IdentityDocument *string `json:"identityDocument"`
}

func toGuestRes(g domain.Guest) guestRes {
	return guestRes{
		ID:               g.ID,
		FirstName:        g.FirstName,
		LastName:         g.LastName,
		Email:            g.Email,
		Phone:            g.Phone,
		IdentityDocument: g.IdentityDocument,
	}
}

type guestReq struct {
	FirstName        string  `json:"firstName"`
	LastName         string  `json:"lastName"`
	Email            string  `json:"email"`
	Phone            *string `json:"phone"`
	IdentityDocument *string `json:"identityDocument"`
}

type reservationReq struct {
	RoomID      int64  `json:"roomId"`
	GuestID     int64  `json:"guestId"`
	CheckIn     string `json:"checkIn"`
	CheckOut    string `json:"checkOut"`
	GuestsCount int    `json:"guestsCount"`
}

type reservationRes struct {
	ID          int64       `json:"id"`
	RoomID      int64       `json:"roomId"`
	GuestID     int64       `json:"guestId"`
	CheckIn     string      `json:"checkIn"`
	CheckOut    string      `json:"checkOut"`
	Nights      int         `json:"nights"`
	GuestsCount int         `json:"guestsCount"`
	TotalPrice  json.Number `json:"totalPrice"`
	Status      string      `json:"status"`
	RowVersion  int64       `json:"rowVersion"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func toReservationRes(r *domain.Reservation) reservationRes {
	return reservationRes{
		ID:          r.ID,
		RoomID:      r.RoomID,
		GuestID:     r.GuestID,
		CheckIn:     r.CheckIn.Format(domain.DateLayout),
		CheckOut:    r.CheckOut.Format(domain.DateLayout),
		Nights:      r.Nights(),
		GuestsCount: r.GuestsCount,
		TotalPrice:  money(r.TotalPrice),
		Status:      string(r.Status),
		RowVersion:  r.RowVersion,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRes struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
