package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/diagnosis/hotel-backoffice/internal/domain"
)

type GuestRepository struct {
	s *Store
}

func (r *GuestRepository) GetByID(_ context.Context, id int64) (*domain.Guest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	g, ok := r.s.guests[id]
	if !ok {
		return nil, nil
	}
	return &g, nil
}

func (r *GuestRepository) Exists(_ context.Context, id int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.guests[id]
	return ok, nil
}

func (r *GuestRepository) List(_ context.Context, page domain.Page) ([]domain.Guest, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]domain.Guest, 0, len(r.s.guests))
	for _, g := range r.s.guests {
		out = append(out, g)
	}
	slices.SortFunc(out, func(a, b domain.Guest) int {
		return cmp.Or(
			cmp.Compare(a.LastName, b.LastName),
			cmp.Compare(a.FirstName, b.FirstName),
			cmp.Compare(a.ID, b.ID),
		)
	})
	return paginate(out, page), len(out), nil
}

func (r *GuestRepository) Create(ctx context.Context, g *domain.Guest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	g.ID = r.s.nextGuestID
	r.s.nextGuestID++
	remember(ctx, r.s.guests, g.ID)
	r.s.guests[g.ID] = *g
	return nil
}

func (r *GuestRepository) Update(ctx context.Context, g *domain.Guest) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.guests[g.ID]; !ok {
		return false, nil
	}
	remember(ctx, r.s.guests, g.ID)
	r.s.guests[g.ID] = *g
	return true, nil
}
