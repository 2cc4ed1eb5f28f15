package booking

import (
	"time"

	"github.com/diagnosis/hotel-backoffice/internal/domain"
)

// Request is a proposed stay.
type Request struct {
	RoomID      int64
	GuestID     int64
	CheckIn     time.Time
	CheckOut    time.Time
	GuestsCount int
}

// Validate reports the first rule the request breaks, or nil. Checks run in a
// fixed order so clients always see the same reason for the same input.
// room is nil when the room does not exist.
func Validate(req Request, room *domain.Room, guestExists bool, s Settings) error {
	if req.RoomID <= 0 {
		return domain.Validation(domain.CodeInvalidRoomID, "RoomId must be > 0")
	}
	if req.GuestID <= 0 {
		return domain.Validation(domain.CodeInvalidGuestID, "GuestId must be > 0")
	}
	if req.GuestsCount <= 0 {
		return domain.Validation(domain.CodeInvalidGuestsCount, "GuestsCount must be > 0")
	}

	if err := ValidateRange(req.CheckIn, req.CheckOut); err != nil {
		return err
	}

	nights := domain.NightsBetween(req.CheckIn, req.CheckOut)
	if nights < s.MinNights {
		return domain.Validation(domain.CodeStayTooShort, "Minimum stay is %d night(s)", s.MinNights)
	}
	if nights > s.MaxNights {
		return domain.Validation(domain.CodeStayTooLong, "Maximum stay is %d night(s)", s.MaxNights)
	}

	if room == nil {
		return domain.ErrRoomNotFound(req.RoomID)
	}
	if !room.IsActive {
		return domain.Validation(domain.CodeRoomInactive, "Room is not active")
	}
	if req.GuestsCount > room.Capacity {
		return domain.Validation(domain.CodeCapacityExceeded, "GuestsCount exceeds room capacity")
	}

	if !guestExists {
		return domain.ErrGuestNotFound(req.GuestID)
	}
	return nil
}

// ValidateRange rejects empty and inverted date ranges.
func ValidateRange(checkIn, checkOut time.Time) error {
	if !domain.Date(checkIn).Before(domain.Date(checkOut)) {
		return domain.Validation(domain.CodeInvalidDateRange, "checkIn must be < checkOut")
	}
	return nil
}
