package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/diagnosis/hotel-backoffice/internal/booking"
	"github.com/diagnosis/hotel-backoffice/internal/domain"
)

type ReservationRepository struct {
	s *Store
}

func (r *ReservationRepository) Insert(ctx context.Context, res *domain.Reservation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if res.IsActive() {
		for _, existing := range r.s.reservations {
			if existing.RoomID == res.RoomID && booking.ConflictsWith(existing, res.CheckIn, res.CheckOut) {
				return domain.ErrRoomAlreadyBooked
			}
		}
	}

	now := r.s.now()
	res.ID = r.s.nextResID
	r.s.nextResID++
	remember(ctx, r.s.reservations, res.ID)
	res.RowVersion = 1
	res.CreatedAt = now
	res.UpdatedAt = now
	r.s.reservations[res.ID] = *res
	return nil
}

func (r *ReservationRepository) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	res, ok := r.s.reservations[id]
	if !ok {
		return nil, nil
	}
	return &res, nil
}

func (r *ReservationRepository) GetForUpdate(ctx context.Context, id int64) (*domain.Reservation, error) {
	return r.GetByID(ctx, id)
}

func (r *ReservationRepository) List(_ context.Context, f domain.ReservationFilter, page domain.Page) ([]domain.Reservation, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []domain.Reservation
	for _, res := range r.s.reservations {
		if f.RoomID != nil && res.RoomID != *f.RoomID {
			continue
		}
		if f.GuestID != nil && res.GuestID != *f.GuestID {
			continue
		}
		if f.Status != nil && res.Status != *f.Status {
			continue
		}
		out = append(out, res)
	}
	slices.SortFunc(out, func(a, b domain.Reservation) int {
		return cmp.Or(a.CheckIn.Compare(b.CheckIn), cmp.Compare(a.ID, b.ID))
	})
	return paginate(out, page), len(out), nil
}

func (r *ReservationRepository) ListActiveOverlapping(_ context.Context, roomID int64, checkIn, checkOut time.Time) ([]domain.Reservation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []domain.Reservation
	for _, res := range r.s.reservations {
		if res.RoomID == roomID && booking.ConflictsWith(res, checkIn, checkOut) {
			out = append(out, res)
		}
	}
	return out, nil
}

func (r *ReservationRepository) OverlappingRoomIDs(_ context.Context, checkIn, checkOut time.Time) ([]int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	seen := make(map[int64]struct{})
	var ids []int64
	for _, res := range r.s.reservations {
		if !booking.ConflictsWith(res, checkIn, checkOut) {
			continue
		}
		if _, dup := seen[res.RoomID]; dup {
			continue
		}
		seen[res.RoomID] = struct{}{}
		ids = append(ids, res.RoomID)
	}
	return ids, nil
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	res, ok := r.s.reservations[id]
	if !ok {
		return false, nil
	}
	remember(ctx, r.s.reservations, id)
	res.Status = status
	res.RowVersion++
	res.UpdatedAt = r.s.now()
	r.s.reservations[id] = res
	return true, nil
}
