package service

import (
	"context"
	"fmt"
	"time"

	"github.com/diagnosis/hotel-backoffice/internal/booking"
	"github.com/diagnosis/hotel-backoffice/internal/domain"
	"github.com/diagnosis/hotel-backoffice/internal/repository"
)

type AvailabilityQuery struct {
	CheckIn     time.Time
	CheckOut    time.Time
	MinCapacity int
	Type        string
}

type AvailabilityService interface {
	FindAvailable(ctx context.Context, q AvailabilityQuery) ([]domain.Room, error)
}

type availabilityService struct {
	rooms        repository.RoomRepository
	reservations repository.ReservationRepository
}

func NewAvailabilityService(rooms repository.RoomRepository, reservations repository.ReservationRepository) AvailabilityService {
	return &availabilityService{rooms: rooms, reservations: reservations}
}

// FindAvailable reads without locks. The create path re-checks under a lock,
// so a slightly stale answer here is harmless.
func (s *availabilityService) FindAvailable(ctx context.Context, q AvailabilityQuery) ([]domain.Room, error) {
	checkIn, checkOut := domain.Date(q.CheckIn), domain.Date(q.CheckOut)
	if err := booking.ValidateRange(checkIn, checkOut); err != nil {
		return nil, err
	}

	ids, err := s.reservations.OverlappingRoomIDs(ctx, checkIn, checkOut)
	if err != nil {
		return nil, fmt.Errorf("failed to load overlapping reservations: %w", err)
	}
	busy := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		busy[id] = struct{}{}
	}

	rooms, err := s.rooms.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	return booking.FilterAvailable(rooms, busy, booking.AvailabilityFilter{
		MinCapacity: q.MinCapacity,
		Type:        q.Type,
	}), nil
}
