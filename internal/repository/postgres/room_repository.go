package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/diagnosis/hotel-backoffice/internal/domain"
)

type RoomRepository struct {
	pool *pgxpool.Pool
}

func NewRoomRepository(pool *pgxpool.Pool) *RoomRepository {
	return &RoomRepository{pool: pool}
}

const roomCols = `id, number, type, capacity, price_per_night::text, is_active`

var roomOrderColumns = map[domain.RoomSortKey]string{
	domain.RoomSortNumber:   "number",
	domain.RoomSortPrice:    "price_per_night",
	domain.RoomSortType:     "type",
	domain.RoomSortCapacity: "capacity",
}

func scanRoom(row pgx.Row) (*domain.Room, error) {
	var (
		r     domain.Room
		price string
	)
	if err := row.Scan(&r.ID, &r.Number, &r.Type, &r.Capacity, &price, &r.IsActive); err != nil {
		return nil, err
	}
	p, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("parse room price: %w", err)
	}
	r.PricePerNight = p
	return &r, nil
}

func (r *RoomRepository) get(ctx context.Context, q string, id int64) (*domain.Room, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	room, err := scanRoom(conn(ctx, r.pool).QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return room, err
}

func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	return r.get(ctx, `SELECT `+roomCols+` FROM rooms WHERE id = $1`, id)
}

func (r *RoomRepository) GetForUpdate(ctx context.Context, id int64) (*domain.Room, error) {
	return r.get(ctx, `SELECT `+roomCols+` FROM rooms WHERE id = $1 FOR UPDATE`, id)
}

func (r *RoomRepository) List(ctx context.Context, f domain.RoomFilter, sort domain.RoomSort, page domain.Page) ([]domain.Room, int, error) {
	where := ` WHERE ($1::int IS NULL OR capacity >= $1)
		AND (NOT $2 OR is_active)
		AND ($3 = '' OR type = $3)`
	args := []any{f.MinCapacity, f.OnlyActive, strings.TrimSpace(f.Type)}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	db := conn(ctx, r.pool)

	var total int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM rooms`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	col, ok := roomOrderColumns[sort.Key]
	if !ok {
		col = "number"
	}
	dir := "ASC"
	if sort.Desc {
		dir = "DESC"
	}
	order := fmt.Sprintf(` ORDER BY %s %s`, col, dir)
	if col != "number" {
		order += `, number ASC`
	}

	q := `SELECT ` + roomCols + ` FROM rooms` + where + order + ` LIMIT $4 OFFSET $5`
	rows, err := db.Query(ctx, q, append(args, page.Size, page.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	rooms, err := collectRooms(rows)
	return rooms, total, err
}

func (r *RoomRepository) ListActive(ctx context.Context) ([]domain.Room, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := conn(ctx, r.pool).Query(ctx, `SELECT `+roomCols+` FROM rooms WHERE is_active ORDER BY number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRooms(rows)
}

func collectRooms(rows pgx.Rows) ([]domain.Room, error) {
	rooms := []domain.Room{}
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, *room)
	}
	return rooms, rows.Err()
}

func (r *RoomRepository) NumberTaken(ctx context.Context, number string, exceptID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var taken bool
	err := conn(ctx, r.pool).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM rooms WHERE number = $1 AND id <> $2)`, number, exceptID,
	).Scan(&taken)
	return taken, err
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	const q = `INSERT INTO rooms (number, type, capacity, price_per_night, is_active)
		VALUES ($1, $2, $3, $4::numeric, $5)
		RETURNING id`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := conn(ctx, r.pool).QueryRow(ctx, q,
		room.Number, room.Type, room.Capacity, room.PricePerNight.String(), room.IsActive,
	).Scan(&room.ID)
	if isUniqueViolation(err) {
		return domain.Conflict(domain.CodeRoomNumberTaken, "Room number must be unique")
	}
	return err
}

func (r *RoomRepository) Update(ctx context.Context, room *domain.Room) (bool, error) {
	const q = `UPDATE rooms
		SET number = $2, type = $3, capacity = $4, price_per_night = $5::numeric, is_active = $6
		WHERE id = $1`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tag, err := conn(ctx, r.pool).Exec(ctx, q,
		room.ID, room.Number, room.Type, room.Capacity, room.PricePerNight.String(), room.IsActive)
	if isUniqueViolation(err) {
		return false, domain.Conflict(domain.CodeRoomNumberTaken, "Room number must be unique")
	}
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *RoomRepository) Deactivate(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tag, err := conn(ctx, r.pool).Exec(ctx, `UPDATE rooms SET is_active = FALSE WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
