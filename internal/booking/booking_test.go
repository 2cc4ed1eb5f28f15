package booking

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diagnosis/hotel-backoffice/internal/domain"
)

func day(s string) time.Time {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func activeRoom(capacity int) *domain.Room {
	return &domain.Room{ID: 2, Number: "102", Type: "Standard", Capacity: capacity,
		PricePerNight: decimal.NewFromInt(320), IsActive: true}
}

func validRequest() Request {
	return Request{RoomID: 2, GuestID: 1, CheckIn: day("2030-03-01"), CheckOut: day("2030-03-03"), GuestsCount: 2}
}

func TestValidate(t *testing.T) {
	s := DefaultSettings()

	tests := []struct {
		name        string
		mutate      func(*Request)
		room        *domain.Room
		guestExists bool
		kind        domain.Kind
		code        string
	}{
		{name: "valid", room: activeRoom(3), guestExists: true},
		{name: "room id", mutate: func(r *Request) { r.RoomID = 0 }, room: activeRoom(3), guestExists: true,
			kind: domain.KindValidation, code: domain.CodeInvalidRoomID},
		{name: "guest id", mutate: func(r *Request) { r.GuestID = -1 }, room: activeRoom(3), guestExists: true,
			kind: domain.KindValidation, code: domain.CodeInvalidGuestID},
		{name: "guests count", mutate: func(r *Request) { r.GuestsCount = 0 }, room: activeRoom(3), guestExists: true,
			kind: domain.KindValidation, code: domain.CodeInvalidGuestsCount},
		{name: "zero nights", mutate: func(r *Request) { r.CheckOut = r.CheckIn }, room: activeRoom(3), guestExists: true,
			kind: domain.KindValidation, code: domain.CodeInvalidDateRange},
		{name: "inverted range", mutate: func(r *Request) { r.CheckIn, r.CheckOut = r.CheckOut, r.CheckIn },
			room: activeRoom(3), guestExists: true, kind: domain.KindValidation, code: domain.CodeInvalidDateRange},
		{name: "too long", mutate: func(r *Request) { r.CheckOut = r.CheckIn.AddDate(0, 0, 31) }, room: activeRoom(3),
			guestExists: true, kind: domain.KindValidation, code: domain.CodeStayTooLong},
		{name: "room missing", room: nil, guestExists: true, kind: domain.KindNotFound, code: domain.CodeRoomNotFound},
		{name: "room inactive", room: &domain.Room{ID: 6, Capacity: 4}, guestExists: true,
			kind: domain.KindValidation, code: domain.CodeRoomInactive},
		{name: "capacity", mutate: func(r *Request) { r.GuestsCount = 4 }, room: activeRoom(3), guestExists: true,
			kind: domain.KindValidation, code: domain.CodeCapacityExceeded},
		{name: "guest missing", room: activeRoom(3), guestExists: false, kind: domain.KindNotFound, code: domain.CodeGuestNotFound},
		{name: "date range beats missing room", mutate: func(r *Request) { r.CheckOut = r.CheckIn }, room: nil,
			kind: domain.KindValidation, code: domain.CodeInvalidDateRange},
		{name: "capacity beats missing guest", mutate: func(r *Request) { r.GuestsCount = 9 }, room: activeRoom(3),
			kind: domain.KindValidation, code: domain.CodeCapacityExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			if tt.mutate != nil {
				tt.mutate(&req)
			}
			err := Validate(req, tt.room, tt.guestExists, s)
			if tt.code == "" {
				require.NoError(t, err)
				return
			}
			de, ok := domain.AsError(err)
			require.True(t, ok, "expected domain error, got %v", err)
			assert.Equal(t, tt.kind, de.Kind)
			assert.Equal(t, tt.code, de.Code)
		})
	}
}

func TestValidate_MinNights(t *testing.T) {
	s := DefaultSettings()
	s.MinNights = 3

	err := Validate(validRequest(), activeRoom(3), true, s)
	de, ok := domain.AsError(err)
	require.True(t, ok)
	assert.Equal(t, domain.CodeStayTooShort, de.Code)
	assert.Equal(t, "Minimum stay is 3 night(s)", de.Message)
}

func TestOverlaps(t *testing.T) {
	a := domain.Reservation{CheckIn: day("2030-01-10"), CheckOut: day("2030-01-12"), Status: domain.ReservationActive}

	assert.False(t, Overlaps(a, day("2030-01-12"), day("2030-01-14")), "back-to-back after")
	assert.False(t, Overlaps(a, day("2030-01-08"), day("2030-01-10")), "back-to-back before")
	assert.True(t, Overlaps(a, day("2030-01-11"), day("2030-01-13")))
	assert.True(t, Overlaps(a, day("2030-01-09"), day("2030-01-15")), "enclosing")
	assert.True(t, Overlaps(a, day("2030-01-10"), day("2030-01-11")), "enclosed")

	a.Status = domain.ReservationCanceled
	assert.False(t, ConflictsWith(a, day("2030-01-11"), day("2030-01-13")), "canceled stays never conflict")
}

func TestPrice(t *testing.T) {
	s := DefaultSettings()
	rate := decimal.NewFromInt(320)

	tests := []struct {
		name     string
		in, out  string
		rate     decimal.Decimal
		settings Settings
		want     string
	}{
		{name: "friday and saturday", in: "2030-03-01", out: "2030-03-03", rate: rate, settings: s, want: "704.00"},
		{name: "weekdays only", in: "2030-03-04", out: "2030-03-07", rate: rate, settings: s, want: "960.00"},
		{name: "single weekday", in: "2030-03-05", out: "2030-03-06", rate: rate, settings: s, want: "320.00"},
		{name: "sunday night", in: "2030-03-03", out: "2030-03-04", rate: rate, settings: s, want: "320.00"},
		{name: "surcharge disabled", in: "2030-03-01", out: "2030-03-03", rate: rate,
			settings: Settings{MinNights: 1, MaxNights: 30, WeekendSurchargePercent: decimal.NewFromInt(10)}, want: "640.00"},
		{name: "rounds half away from zero", in: "2030-03-01", out: "2030-03-02", rate: decimal.RequireFromString("0.05"),
			settings: s, want: "0.06"},
		{name: "full week", in: "2030-03-04", out: "2030-03-11", rate: decimal.NewFromInt(100), settings: s, want: "720.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Price(day(tt.in), day(tt.out), tt.rate, tt.settings)
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestFilterAvailable(t *testing.T) {
	rooms := []domain.Room{
		{ID: 3, Number: "201", Type: "Deluxe", Capacity: 2, IsActive: true},
		{ID: 1, Number: "101", Type: "Standard", Capacity: 2, IsActive: true},
		{ID: 2, Number: "102", Type: "Standard", Capacity: 3, IsActive: true},
		{ID: 6, Number: "999", Type: "Maintenance", Capacity: 1, IsActive: false},
	}
	busy := map[int64]struct{}{1: {}}

	got := FilterAvailable(rooms, busy, AvailabilityFilter{MinCapacity: -5})
	require.Len(t, got, 2)
	assert.Equal(t, "102", got[0].Number)
	assert.Equal(t, "201", got[1].Number)

	got = FilterAvailable(rooms, busy, AvailabilityFilter{MinCapacity: 3})
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)

	got = FilterAvailable(rooms, nil, AvailabilityFilter{Type: "  Standard "})
	require.Len(t, got, 2)
	assert.Equal(t, "101", got[0].Number)

	assert.Empty(t, FilterAvailable(rooms, nil, AvailabilityFilter{Type: "standard"}), "type match is case-sensitive")
}
