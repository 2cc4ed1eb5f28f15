package memory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/diagnosis/hotel-backoffice/internal/domain"
)

func strptr(s string) *string { return &s }

// Seed loads the demo inventory shipped with the service.
func (s *Store) Seed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	rooms := []domain.Room{
		{ID: 1, Number: "101", Type: "Standard", Capacity: 2, PricePerNight: decimal.NewFromInt(250), IsActive: true},
		{ID: 2, Number: "102", Type: "Standard", Capacity: 3, PricePerNight: decimal.NewFromInt(320), IsActive: true},
		{ID: 3, Number: "201", Type: "Deluxe", Capacity: 2, PricePerNight: decimal.NewFromInt(450), IsActive: true},
		{ID: 4, Number: "202", Type: "Deluxe", Capacity: 4, PricePerNight: decimal.NewFromInt(600), IsActive: true},
		{ID: 5, Number: "301", Type: "Suite", Capacity: 4, PricePerNight: decimal.NewFromInt(900), IsActive: true},
		{ID: 6, Number: "999", Type: "Maintenance", Capacity: 1, PricePerNight: decimal.Zero, IsActive: false},
	}
	for _, r := range rooms {
		s.rooms[r.ID] = r
	}
	s.nextRoomID = 7

	guests := []domain.Guest{
		{ID: 1, FirstName: "Jan", LastName: "Kowalski", Email: "jan.kowalski@example.com",
			Phone: strptr("500600700"), IdentityDocument: strptr("ABC123456")},
		{ID: 2, FirstName: "Anna", LastName: "Nowak", Email: "anna.nowak@example.com"},
		{ID: 3, FirstName: "Piotr", LastName: "Zielinski", Email: "piotr.zielinski@example.com",
			Phone: strptr("123123123"), IdentityDocument: strptr("XYZ987654")},
	}
	for _, g := range guests {
		s.guests[g.ID] = g
	}
	s.nextGuestID = 4

	now := s.now()
	s.reservations[1] = domain.Reservation{
		ID:          1,
		RoomID:      1,
		GuestID:     1,
		CheckIn:     time.Date(2030, 1, 10, 0, 0, 0, 0, time.UTC),
		CheckOut:    time.Date(2030, 1, 12, 0, 0, 0, 0, time.UTC),
		GuestsCount: 2,
		TotalPrice:  decimal.NewFromInt(500),
		Status:      domain.ReservationActive,
		RowVersion:  1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.nextResID = 2
}
