package service

import (
	"context"
	"fmt"

	"github.com/diagnosis/hotel-backoffice/internal/booking"
	"github.com/diagnosis/hotel-backoffice/internal/clock"
	"github.com/diagnosis/hotel-backoffice/internal/domain"
	"github.com/diagnosis/hotel-backoffice/internal/repository"
	"github.com/diagnosis/hotel-backoffice/pkg/events"
	"github.com/diagnosis/hotel-backoffice/pkg/logger"
)

type ReservationService interface {
	Create(ctx context.Context, req booking.Request) (*domain.Reservation, error)
	Get(ctx context.Context, id int64) (*domain.Reservation, error)
	List(ctx context.Context, filter domain.ReservationFilter, page domain.Page) ([]domain.Reservation, int, error)
	Cancel(ctx context.Context, id int64) error
}

type reservationService struct {
	tx           repository.TxManager
	rooms        repository.RoomRepository
	guests       repository.GuestRepository
	reservations repository.ReservationRepository
	publisher    events.Publisher
	clock        clock.Clock
	settings     booking.Settings
}

func NewReservationService(
	tx repository.TxManager,
	rooms repository.RoomRepository,
	guests repository.GuestRepository,
	reservations repository.ReservationRepository,
	publisher events.Publisher,
	clk clock.Clock,
	settings booking.Settings,
) ReservationService {
	return &reservationService{
		tx:           tx,
		rooms:        rooms,
		guests:       guests,
		reservations: reservations,
		publisher:    publisher,
		clock:        clk,
		settings:     settings,
	}
}

// Create validates, conflict-checks, prices and stores a stay in one
// transaction. The room row lock serializes concurrent bookings of a room.
func (s *reservationService) Create(ctx context.Context, req booking.Request) (*domain.Reservation, error) {
	req.CheckIn = domain.Date(req.CheckIn)
	req.CheckOut = domain.Date(req.CheckOut)

	var created *domain.Reservation
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		var (
			room        *domain.Room
			guestExists bool
			err         error
		)
		if req.RoomID > 0 {
			if room, err = s.rooms.GetForUpdate(ctx, req.RoomID); err != nil {
				return fmt.Errorf("failed to lock room: %w", err)
			}
		}
		if req.GuestID > 0 {
			if guestExists, err = s.guests.Exists(ctx, req.GuestID); err != nil {
				return fmt.Errorf("failed to check guest: %w", err)
			}
		}

		if err := booking.Validate(req, room, guestExists, s.settings); err != nil {
			return err
		}

		clashes, err := s.reservations.ListActiveOverlapping(ctx, room.ID, req.CheckIn, req.CheckOut)
		if err != nil {
			return fmt.Errorf("failed to check overlapping reservations: %w", err)
		}
		if len(clashes) > 0 {
			return domain.ErrRoomAlreadyBooked
		}

		res := &domain.Reservation{
			RoomID:      room.ID,
			GuestID:     req.GuestID,
			CheckIn:     req.CheckIn,
			CheckOut:    req.CheckOut,
			GuestsCount: req.GuestsCount,
			TotalPrice:  booking.Price(req.CheckIn, req.CheckOut, room.PricePerNight, s.settings),
			Status:      domain.ReservationActive,
		}
		if err := s.reservations.Insert(ctx, res); err != nil {
			if _, ok := domain.AsError(err); ok {
				return err
			}
			return fmt.Errorf("failed to insert reservation: %w", err)
		}
		created = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "Reservation created",
		"reservation_id", created.ID, "room_id", created.RoomID, "total_price", created.TotalPrice.StringFixed(2))

	event := events.ReservationCreatedEvent{
		ReservationID: created.ID,
		RoomID:        created.RoomID,
		GuestID:       created.GuestID,
		CheckIn:       created.CheckIn.Format(domain.DateLayout),
		CheckOut:      created.CheckOut.Format(domain.DateLayout),
		GuestsCount:   created.GuestsCount,
		TotalPrice:    created.TotalPrice.StringFixed(2),
		CreatedAt:     created.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, events.ReservationCreated, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish reservation created event", "error", err, "reservation_id", created.ID)
	}

	return created, nil
}

func (s *reservationService) Get(ctx context.Context, id int64) (*domain.Reservation, error) {
	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	if res == nil {
		return nil, domain.ErrReservationNotFound(id)
	}
	return res, nil
}

func (s *reservationService) List(ctx context.Context, filter domain.ReservationFilter, page domain.Page) ([]domain.Reservation, int, error) {
	items, total, err := s.reservations.List(ctx, filter, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reservations: %w", err)
	}
	return items, total, nil
}

// Cancel is idempotent: canceling a canceled reservation succeeds and changes
// nothing. Active reservations can be canceled only before the check-in day.
func (s *reservationService) Cancel(ctx context.Context, id int64) error {
	var canceled *domain.Reservation
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		res, err := s.reservations.GetForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to lock reservation: %w", err)
		}
		if res == nil {
			return domain.ErrReservationNotFound(id)
		}
		if res.Status == domain.ReservationCanceled {
			return nil
		}
		if !clock.Today(s.clock).Before(res.CheckIn) {
			return domain.Validation(domain.CodeCancelNotAllowed, "Cancellation is allowed only before check-in")
		}

		ok, err := s.reservations.UpdateStatus(ctx, id, domain.ReservationCanceled)
		if err != nil {
			return fmt.Errorf("failed to cancel reservation: %w", err)
		}
		if !ok {
			return domain.ErrReservationNotFound(id)
		}
		res.Status = domain.ReservationCanceled
		canceled = res
		return nil
	})
	if err != nil || canceled == nil {
		return err
	}

	logger.InfoContext(ctx, "Reservation canceled", "reservation_id", id, "room_id", canceled.RoomID)

	event := events.ReservationCanceledEvent{
		ReservationID: id,
		RoomID:        canceled.RoomID,
		CheckIn:       canceled.CheckIn.Format(domain.DateLayout),
		CanceledAt:    s.clock.Now(),
	}
	if err := s.publisher.Publish(ctx, events.ReservationCanceled, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish reservation canceled event", "error", err, "reservation_id", id)
	}
	return nil
}
