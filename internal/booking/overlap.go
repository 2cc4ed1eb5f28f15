package booking

import (
	"sort"
	"strings"
	"time"

	"github.com/diagnosis/hotel-backoffice/internal/domain"
)

// Overlaps is the half-open interval test used for every conflict check.
// A stay ending on the day another begins does not overlap it.
func Overlaps(existing domain.Reservation, checkIn, checkOut time.Time) bool {
	return existing.CheckIn.Before(checkOut) && checkIn.Before(existing.CheckOut)
}

// ConflictsWith reports whether an active reservation blocks the window.
func ConflictsWith(existing domain.Reservation, checkIn, checkOut time.Time) bool {
	return existing.IsActive() && Overlaps(existing, checkIn, checkOut)
}

type AvailabilityFilter struct {
	MinCapacity int
	Type        string
}

// FilterAvailable keeps active rooms that fit the filter and are not in busy,
// ordered by room number.
func FilterAvailable(rooms []domain.Room, busy map[int64]struct{}, f AvailabilityFilter) []domain.Room {
	minCapacity := f.MinCapacity
	if minCapacity < 0 {
		minCapacity = 0
	}
	roomType := strings.TrimSpace(f.Type)

	out := make([]domain.Room, 0, len(rooms))
	for _, r := range rooms {
		if !r.IsActive || r.Capacity < minCapacity {
			continue
		}
		if _, taken := busy[r.ID]; taken {
			continue
		}
		if roomType != "" && r.Type != roomType {
			continue
		}
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}
