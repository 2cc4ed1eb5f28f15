package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/diagnosis/hotel-backoffice/internal/clock"
	"github.com/diagnosis/hotel-backoffice/internal/domain"
	"github.com/diagnosis/hotel-backoffice/internal/repository"
	"github.com/diagnosis/hotel-backoffice/internal/utils"
	"github.com/diagnosis/hotel-backoffice/pkg/events"
	"github.com/diagnosis/hotel-backoffice/pkg/logger"
)

type RoomInput struct {
	Number        string
	Type          string
	Capacity      int
	PricePerNight decimal.Decimal
	IsActive      bool
}

type RoomService interface {
	Get(ctx context.Context, id int64) (*domain.Room, error)
	List(ctx context.Context, filter domain.RoomFilter, sort domain.RoomSort, page domain.Page) ([]domain.Room, int, error)
	Create(ctx context.Context, in RoomInput) (*domain.Room, error)
	Update(ctx context.Context, id int64, in RoomInput) (*domain.Room, error)
	Deactivate(ctx context.Context, id int64) error
}

type roomService struct {
	tx        repository.TxManager
	rooms     repository.RoomRepository
	publisher events.Publisher
	clock     clock.Clock
}

func NewRoomService(tx repository.TxManager, rooms repository.RoomRepository, publisher events.Publisher, clk clock.Clock) RoomService {
	return &roomService{tx: tx, rooms: rooms, publisher: publisher, clock: clk}
}

func (s *roomService) Get(ctx context.Context, id int64) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	if room == nil {
		return nil, domain.ErrRoomNotFound(id)
	}
	return room, nil
}

func (s *roomService) List(ctx context.Context, filter domain.RoomFilter, sort domain.RoomSort, page domain.Page) ([]domain.Room, int, error) {
	filter.Type = utils.NormalizeString(filter.Type)
	items, total, err := s.rooms.List(ctx, filter, sort, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list rooms: %w", err)
	}
	return items, total, nil
}

func (s *roomService) Create(ctx context.Context, in RoomInput) (*domain.Room, error) {
	in = normalizeRoomInput(in)
	if err := validateRoomInput(in); err != nil {
		return nil, err
	}

	room := &domain.Room{
		Number:        in.Number,
		Type:          in.Type,
		Capacity:      in.Capacity,
		PricePerNight: in.PricePerNight,
		IsActive:      in.IsActive,
	}
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.ensureNumberFree(ctx, in.Number, 0); err != nil {
			return err
		}
		return s.rooms.Create(ctx, room)
	})
	if err != nil {
		return nil, wrapInfra(err, "failed to create room")
	}

	logger.InfoContext(ctx, "Room created", "room_id", room.ID, "number", room.Number)
	return room, nil
}

func (s *roomService) Update(ctx context.Context, id int64, in RoomInput) (*domain.Room, error) {
	in = normalizeRoomInput(in)

	var updated *domain.Room
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		current, err := s.rooms.GetForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to lock room: %w", err)
		}
		if current == nil {
			return domain.ErrRoomNotFound(id)
		}
		if err := validateRoomInput(in); err != nil {
			return err
		}
		if err := s.ensureNumberFree(ctx, in.Number, id); err != nil {
			return err
		}

		current.Number = in.Number
		current.Type = in.Type
		current.Capacity = in.Capacity
		current.PricePerNight = in.PricePerNight
		current.IsActive = in.IsActive

		ok, err := s.rooms.Update(ctx, current)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrRoomNotFound(id)
		}
		updated = current
		return nil
	})
	if err != nil {
		return nil, wrapInfra(err, "failed to update room")
	}

	logger.InfoContext(ctx, "Room updated", "room_id", id)
	return updated, nil
}

// Deactivate takes the room out of availability. Existing reservations are
// left as they are.
func (s *roomService) Deactivate(ctx context.Context, id int64) error {
	var room *domain.Room
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		var err error
		room, err = s.rooms.GetForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to lock room: %w", err)
		}
		if room == nil {
			return domain.ErrRoomNotFound(id)
		}
		ok, err := s.rooms.Deactivate(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to deactivate room: %w", err)
		}
		if !ok {
			return domain.ErrRoomNotFound(id)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "Room deactivated", "room_id", id)

	event := events.RoomDeactivatedEvent{RoomID: id, Number: room.Number, DeactivatedAt: s.clock.Now()}
	if err := s.publisher.Publish(ctx, events.RoomDeactivated, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish room deactivated event", "error", err, "room_id", id)
	}
	return nil
}

func (s *roomService) ensureNumberFree(ctx context.Context, number string, exceptID int64) error {
	taken, err := s.rooms.NumberTaken(ctx, number, exceptID)
	if err != nil {
		return fmt.Errorf("failed to check room number: %w", err)
	}
	if taken {
		return domain.Conflict(domain.CodeRoomNumberTaken, "Room number must be unique")
	}
	return nil
}

func normalizeRoomInput(in RoomInput) RoomInput {
	in.Number = utils.NormalizeString(in.Number)
	in.Type = utils.NormalizeString(in.Type)
	if in.Type == "" {
		in.Type = domain.DefaultRoomType
	}
	return in
}

func validateRoomInput(in RoomInput) error {
	if in.Number == "" {
		return domain.Validation(domain.CodeInvalidRoom, "Number is required")
	}
	if in.Capacity <= 0 {
		return domain.Validation(domain.CodeInvalidRoom, "Capacity must be > 0")
	}
	if in.PricePerNight.IsNegative() {
		return domain.Validation(domain.CodeInvalidRoom, "PricePerNight must be >= 0")
	}
	if !in.PricePerNight.Equal(in.PricePerNight.Round(2)) {
		return domain.Validation(domain.CodeInvalidRoom, "PricePerNight must have at most 2 decimals")
	}
	return nil
}

// wrapInfra passes domain errors through untouched and wraps everything else.
func wrapInfra(err error, msg string) error {
	if _, ok := domain.AsError(err); ok {
		return err
	}
	return fmt.Errorf("%s: %w", msg, err)
}
