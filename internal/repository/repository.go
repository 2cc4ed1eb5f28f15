// Package repository declares the storage contracts the services depend on.
// Lookups return (nil, nil) when the row does not exist.
package repository

import (
	"context"
	"time"

	"github.com/diagnosis/hotel-backoffice/internal/domain"
)

// TxManager runs fn inside a transaction carried by the context. Nested calls
// join the outer transaction.
type TxManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	// GetForUpdate locks the room until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, id int64) (*domain.Room, error)
	List(ctx context.Context, filter domain.RoomFilter, sort domain.RoomSort, page domain.Page) ([]domain.Room, int, error)
	ListActive(ctx context.Context) ([]domain.Room, error)
	NumberTaken(ctx context.Context, number string, exceptID int64) (bool, error)
	Create(ctx context.Context, room *domain.Room) error
	Update(ctx context.Context, room *domain.Room) (bool, error)
	Deactivate(ctx context.Context, id int64) (bool, error)
}

type GuestRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Guest, error)
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, page domain.Page) ([]domain.Guest, int, error)
	Create(ctx context.Context, guest *domain.Guest) error
	Update(ctx context.Context, guest *domain.Guest) (bool, error)
}

type ReservationRepository interface {
	Insert(ctx context.Context, r *domain.Reservation) error
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetForUpdate(ctx context.Context, id int64) (*domain.Reservation, error)
	List(ctx context.Context, filter domain.ReservationFilter, page domain.Page) ([]domain.Reservation, int, error)
	// ListActiveOverlapping and OverlappingRoomIDs share one overlap predicate.
	ListActiveOverlapping(ctx context.Context, roomID int64, checkIn, checkOut time.Time) ([]domain.Reservation, error)
	OverlappingRoomIDs(ctx context.Context, checkIn, checkOut time.Time) ([]int64, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) (bool, error)
}
