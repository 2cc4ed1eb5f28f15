package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/diagnosis/hotel-backoffice/internal/domain"
)

type ReservationRepository struct {
	pool *pgxpool.Pool
}

func NewReservationRepository(pool *pgxpool.Pool) *ReservationRepository {
	return &ReservationRepository{pool: pool}
}

const reservationCols = `id, room_id, guest_id, check_in, check_out, guests_count,
total_price::text, status, row_version, created_at, updated_at`

// activeOverlap is the only overlap predicate in SQL. Availability listing and
// the create-time conflict check both embed it.
const activeOverlap = `status = 'Active' AND check_in < @check_out AND @check_in < check_out`

func scanReservation(row pgx.Row) (*domain.Reservation, error) {
	var (
		res    domain.Reservation
		total  string
		status string
	)
	err := row.Scan(
		&res.ID, &res.RoomID, &res.GuestID, &res.CheckIn, &res.CheckOut, &res.GuestsCount,
		&total, &status, &res.RowVersion, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p, err := decimal.NewFromString(total)
	if err != nil {
		return nil, fmt.Errorf("parse total price: %w", err)
	}
	res.TotalPrice = p
	res.Status = domain.ReservationStatus(status)
	return &res, nil
}

func collectReservations(rows pgx.Rows) ([]domain.Reservation, error) {
	out := []domain.Reservation{}
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, rows.Err()
}

func (r *ReservationRepository) Insert(ctx context.Context, res *domain.Reservation) error {
	const q = `INSERT INTO reservations (room_id, guest_id, check_in, check_out, guests_count, total_price, status)
		VALUES ($1, $2, $3, $4, $5, $6::numeric, $7)
		RETURNING row_version, created_at, updated_at, id`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := conn(ctx, r.pool).QueryRow(ctx, q,
		res.RoomID, res.GuestID, res.CheckIn, res.CheckOut, res.GuestsCount,
		res.TotalPrice.String(), string(res.Status),
	).Scan(&res.RowVersion, &res.CreatedAt, &res.UpdatedAt, &res.ID)
	if isExclusionViolation(err) {
		return domain.ErrRoomAlreadyBooked
	}
	return err
}

func (r *ReservationRepository) get(ctx context.Context, q string, id int64) (*domain.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := scanReservation(conn(ctx, r.pool).QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return res, err
}

func (r *ReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	return r.get(ctx, `SELECT `+reservationCols+` FROM reservations WHERE id = $1`, id)
}

func (r *ReservationRepository) GetForUpdate(ctx context.Context, id int64) (*domain.Reservation, error) {
	return r.get(ctx, `SELECT `+reservationCols+` FROM reservations WHERE id = $1 FOR UPDATE`, id)
}

func (r *ReservationRepository) List(ctx context.Context, f domain.ReservationFilter, page domain.Page) ([]domain.Reservation, int, error) {
	const where = ` WHERE ($1::bigint IS NULL OR room_id = $1)
		AND ($2::bigint IS NULL OR guest_id = $2)
		AND ($3::text IS NULL OR status = $3)`

	var status *string
	if f.Status != nil {
		s := string(*f.Status)
		status = &s
	}
	args := []any{f.RoomID, f.GuestID, status}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	db := conn(ctx, r.pool)

	var total int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM reservations`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := `SELECT ` + reservationCols + ` FROM reservations` + where + ` ORDER BY check_in, id LIMIT $4 OFFSET $5`
	rows, err := db.Query(ctx, q, append(args, page.Size, page.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out, err := collectReservations(rows)
	return out, total, err
}

func (r *ReservationRepository) ListActiveOverlapping(ctx context.Context, roomID int64, checkIn, checkOut time.Time) ([]domain.Reservation, error) {
	q := `SELECT ` + reservationCols + ` FROM reservations
		WHERE room_id = @room_id AND ` + activeOverlap + `
		ORDER BY check_in`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := conn(ctx, r.pool).Query(ctx, q, pgx.NamedArgs{
		"room_id":   roomID,
		"check_in":  checkIn,
		"check_out": checkOut,
	})
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReservations(rows)
}

func (r *ReservationRepository) OverlappingRoomIDs(ctx context.Context, checkIn, checkOut time.Time) ([]int64, error) {
	q := `SELECT DISTINCT room_id FROM reservations WHERE ` + activeOverlap

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := conn(ctx, r.pool).Query(ctx, q, pgx.NamedArgs{
		"check_in":  checkIn,
		"check_out": checkOut,
	})
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[int64])
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) (bool, error) {
	const q = `UPDATE reservations
		SET status = $2, row_version = row_version + 1, updated_at = NOW()
		WHERE id = $1`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tag, err := conn(ctx, r.pool).Exec(ctx, q, id, string(status))
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
