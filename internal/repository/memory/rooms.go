package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/diagnosis/hotel-backoffice/internal/domain"
)

type RoomRepository struct {
	s *Store
}

func (r *RoomRepository) GetByID(_ context.Context, id int64) (*domain.Room, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	room, ok := r.s.rooms[id]
	if !ok {
		return nil, nil
	}
	return &room, nil
}

// GetForUpdate relies on the store-wide writer lock held by WithTx.
func (r *RoomRepository) GetForUpdate(ctx context.Context, id int64) (*domain.Room, error) {
	return r.GetByID(ctx, id)
}

func (r *RoomRepository) List(_ context.Context, filter domain.RoomFilter, sort domain.RoomSort, page domain.Page) ([]domain.Room, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	roomType := strings.TrimSpace(filter.Type)
	var out []domain.Room
	for _, room := range r.s.rooms {
		if filter.MinCapacity != nil && room.Capacity < *filter.MinCapacity {
			continue
		}
		if filter.OnlyActive && !room.IsActive {
			continue
		}
		if roomType != "" && room.Type != roomType {
			continue
		}
		out = append(out, room)
	}

	slices.SortFunc(out, func(a, b domain.Room) int {
		c := compareRooms(a, b, sort.Key)
		if sort.Desc {
			c = -c
		}
		if c == 0 && sort.Key != domain.RoomSortNumber {
			c = cmp.Compare(a.Number, b.Number)
		}
		return c
	})
	return paginate(out, page), len(out), nil
}

func compareRooms(a, b domain.Room, key domain.RoomSortKey) int {
	switch key {
	case domain.RoomSortPrice:
		return a.PricePerNight.Cmp(b.PricePerNight)
	case domain.RoomSortType:
		return cmp.Compare(a.Type, b.Type)
	case domain.RoomSortCapacity:
		return cmp.Compare(a.Capacity, b.Capacity)
	default:
		return cmp.Compare(a.Number, b.Number)
	}
}

func (r *RoomRepository) ListActive(_ context.Context) ([]domain.Room, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]domain.Room, 0, len(r.s.rooms))
	for _, room := range r.s.rooms {
		if room.IsActive {
			out = append(out, room)
		}
	}
	return out, nil
}

func (r *RoomRepository) NumberTaken(_ context.Context, number string, exceptID int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, room := range r.s.rooms {
		if room.ID != exceptID && room.Number == number {
			return true, nil
		}
	}
	return false, nil
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.rooms {
		if existing.Number == room.Number {
			return domain.Conflict(domain.CodeRoomNumberTaken, "Room number must be unique")
		}
	}
	room.ID = r.s.nextRoomID
	r.s.nextRoomID++
	remember(ctx, r.s.rooms, room.ID)
	r.s.rooms[room.ID] = *room
	return nil
}

func (r *RoomRepository) Update(ctx context.Context, room *domain.Room) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.rooms[room.ID]; !ok {
		return false, nil
	}
	remember(ctx, r.s.rooms, room.ID)
	r.s.rooms[room.ID] = *room
	return true, nil
}

func (r *RoomRepository) Deactivate(ctx context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	room, ok := r.s.rooms[id]
	if !ok {
		return false, nil
	}
	remember(ctx, r.s.rooms, id)
	room.IsActive = false
	r.s.rooms[id] = room
	return true, nil
}
