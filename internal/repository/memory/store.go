// Package memory is an in-process store used for local runs and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/diagnosis/hotel-backoffice/internal/domain"
)

type txKey struct{}

// txLog collects the inverse of every write made inside one transaction.
type txLog struct {
	undo []func()
}

// Store keeps all entities in maps. Transactions are serialized by writeMu,
// which stands in for row locks. A failed transaction undoes only its own
// writes; ids it consumed are not handed out again.
type Store struct {
	writeMu sync.Mutex

	mu           sync.RWMutex
	rooms        map[int64]domain.Room
	guests       map[int64]domain.Guest
	reservations map[int64]domain.Reservation
	nextRoomID   int64
	nextGuestID  int64
	nextResID    int64
	now          func() time.Time
}

func NewStore() *Store {
	return &Store{
		rooms:        make(map[int64]domain.Room),
		guests:       make(map[int64]domain.Guest),
		reservations: make(map[int64]domain.Reservation),
		nextRoomID:   1,
		nextGuestID:  1,
		nextResID:    1,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*txLog); ok {
		return fn(ctx)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	log := &txLog{}
	if err := fn(context.WithValue(ctx, txKey{}, log)); err != nil {
		s.rollback(log)
		return err
	}
	return nil
}

func (s *Store) rollback(log *txLog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(log.undo) - 1; i >= 0; i-- {
		log.undo[i]()
	}
}

// remember records how to put m[key] back the way it is now. Callers hold
// s.mu. Outside a transaction it does nothing.
func remember[V any](ctx context.Context, m map[int64]V, key int64) {
	log, ok := ctx.Value(txKey{}).(*txLog)
	if !ok {
		return
	}
	prev, existed := m[key]
	log.undo = append(log.undo, func() {
		if existed {
			m[key] = prev
		} else {
			delete(m, key)
		}
	})
}

func (s *Store) Rooms() *RoomRepository {
	return &RoomRepository{s: s}
}

func (s *Store) Guests() *GuestRepository {
	return &GuestRepository{s: s}
}

func (s *Store) Reservations() *ReservationRepository {
	return &ReservationRepository{s: s}
}

func paginate[T any](items []T, page domain.Page) []T {
	start := page.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + page.Size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
