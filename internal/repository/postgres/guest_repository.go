package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/diagnosis/hotel-backoffice/internal/domain"
)

type GuestRepository struct {
	pool *pgxpool.Pool
}

func NewGuestRepository(pool *pgxpool.Pool) *GuestRepository {
	return &GuestRepository{pool: pool}
}

const guestCols = `id, first_name, last_name, email, phone, identity_document`

func scanGuest(row pgx.Row) (*domain.Guest, error) {
	var g domain.Guest
	if err := row.Scan(&g.ID, &g.FirstName, &g.LastName, &g.Email, &g.Phone, &g.IdentityDocument); err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GuestRepository) GetByID(ctx context.Context, id int64) (*domain.Guest, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	g, err := scanGuest(conn(ctx, r.pool).QueryRow(ctx, `SELECT `+guestCols+` FROM guests WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return g, err
}

func (r *GuestRepository) Exists(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var ok bool
	err := conn(ctx, r.pool).QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM guests WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}

func (r *GuestRepository) List(ctx context.Context, page domain.Page) ([]domain.Guest, int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	db := conn(ctx, r.pool)

	var total int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM guests`).Scan(&total); err != nil {
		return nil, 0, err
	}

	const q = `SELECT ` + guestCols + ` FROM guests
		ORDER BY last_name, first_name, id
		LIMIT $1 OFFSET $2`
	rows, err := db.Query(ctx, q, page.Size, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	guests := []domain.Guest{}
	for rows.Next() {
		g, err := scanGuest(rows)
		if err != nil {
			return nil, 0, err
		}
		guests = append(guests, *g)
	}
	return guests, total, rows.Err()
}

func (r *GuestRepository) Create(ctx context.Context, g *domain.Guest) error {
	const q = `INSERT INTO guests (first_name, last_name, email, phone, identity_document)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return conn(ctx, r.pool).QueryRow(ctx, q,
		g.FirstName, g.LastName, g.Email, g.Phone, g.IdentityDocument,
	).Scan(&g.ID)
}

func (r *GuestRepository) Update(ctx context.Context, g *domain.Guest) (bool, error) {
	const q = `UPDATE guests
		SET first_name = $2, last_name = $3, email = $4, phone = $5, identity_document = $6
		WHERE id = $1`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tag, err := conn(ctx, r.pool).Exec(ctx, q, g.ID, g.FirstName, g.LastName, g.Email, g.Phone, g.IdentityDocument)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
