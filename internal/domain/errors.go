package domain

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// Error is an expected, client-caused failure.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

const (
	CodeInvalidRoomID       = "INVALID_ROOM_ID"
	CodeInvalidGuestID      = "INVALID_GUEST_ID"
	CodeInvalidGuestsCount  = "INVALID_GUESTS_COUNT"
	CodeInvalidDateRange    = "INVALID_DATE_RANGE"
	CodeStayTooShort        = "STAY_TOO_SHORT"
	CodeStayTooLong         = "STAY_TOO_LONG"
	CodeRoomNotFound        = "ROOM_NOT_FOUND"
	CodeRoomInactive        = "ROOM_INACTIVE"
	CodeCapacityExceeded    = "CAPACITY_EXCEEDED"
	CodeGuestNotFound       = "GUEST_NOT_FOUND"
	CodeRoomAlreadyBooked   = "ROOM_ALREADY_BOOKED"
	CodeReservationNotFound = "RESERVATION_NOT_FOUND"
	CodeCancelNotAllowed    = "CANCEL_NOT_ALLOWED"
	CodeRoomNumberTaken     = "ROOM_NUMBER_TAKEN"
	CodeInvalidRoom         = "INVALID_ROOM"
	CodeInvalidGuest        = "INVALID_GUEST"
	CodeInvalidQuery        = "INVALID_QUERY"
)

func Validation(code, format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: fmt.Sprintf(format, args...)}
}

func NotFound(code, format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: fmt.Sprintf(format, args...)}
}

func Conflict(code, format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Code: code, Message: fmt.Sprintf(format, args...)}
}

// AsError unwraps err into a domain error, if it is one.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

func IsKind(err error, kind Kind) bool {
	de, ok := AsError(err)
	return ok && de.Kind == kind
}

func IsValidation(err error) bool { return IsKind(err, KindValidation) }
func IsNotFound(err error) bool   { return IsKind(err, KindNotFound) }
func IsConflict(err error) bool   { return IsKind(err, KindConflict) }

func ErrRoomNotFound(id int64) *Error {
	return NotFound(CodeRoomNotFound, "Room %d not found", id)
}

func ErrGuestNotFound(id int64) *Error {
	return NotFound(CodeGuestNotFound, "Guest %d not found", id)
}

func ErrReservationNotFound(id int64) *Error {
	return NotFound(CodeReservationNotFound, "Reservation %d not found", id)
}

var ErrRoomAlreadyBooked = Conflict(CodeRoomAlreadyBooked, "Room already booked in this period")
