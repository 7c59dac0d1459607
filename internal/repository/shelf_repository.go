package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shelfcam/shelfcam-api/internal/domain"
	apperrors "github.com/shelfcam/shelfcam-api/pkg/util"
)

// ShelfRepository defines persistence access for shelves.
type ShelfRepository interface {
	Create(ctx context.Context, shelf *domain.Shelf) error
	Update(ctx context.Context, shelf *domain.Shelf) error
	Delete(ctx context.Context, name string) error
	GetByName(ctx context.Context, name string) (*domain.Shelf, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.Shelf, error)
}

type shelfRepository struct {
	pool *pgxpool.Pool
}

// NewShelfRepository returns a Postgres-backed implementation.
func NewShelfRepository(pool *pgxpool.Pool) ShelfRepository {
	return &shelfRepository{pool: pool}
}

func (r *shelfRepository) Create(ctx context.Context, shelf *domain.Shelf) error {
	const query = `
        INSERT INTO shelves (name, category, capacity, description, is_active, current_stock)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		shelf.Name,
		shelf.Category,
		shelf.Capacity,
		shelf.Description,
		shelf.Active,
		shelf.CurrentStock,
	).Scan(&shelf.ID, &shelf.CreatedAt, &shelf.UpdatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return apperrors.NewConflict("shelf name already exists", map[string]any{
			"name": shelf.Name,
		})
	}
	return err
}

func (r *shelfRepository) Update(ctx context.Context, shelf *domain.Shelf) error {
	const query = `
        UPDATE shelves
        SET category=$1, capacity=$2, description=$3, is_active=$4, current_stock=$5, updated_at=NOW()
        WHERE name=$6`

	cmd, err := r.pool.Exec(ctx, query,
		shelf.Category,
		shelf.Capacity,
		shelf.Description,
		shelf.Active,
		shelf.CurrentStock,
		shelf.Name,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *shelfRepository) Delete(ctx context.Context, name string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM shelves WHERE name=$1`, name)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *shelfRepository) GetByName(ctx context.Context, name string) (*domain.Shelf, error) {
	const query = `
        SELECT id, name, category, capacity, description, is_active, current_stock, created_at, updated_at
        FROM shelves WHERE name=$1`

	return scanShelf(r.pool.QueryRow(ctx, query, name))
}

func (r *shelfRepository) List(ctx context.Context, activeOnly bool) ([]*domain.Shelf, error) {
	query := `
        SELECT id, name, category, capacity, description, is_active, current_stock, created_at, updated_at
        FROM shelves ORDER BY name`
	if activeOnly {
		query = `
        SELECT id, name, category, capacity, description, is_active, current_stock, created_at, updated_at
        FROM shelves WHERE is_active ORDER BY name`
	}

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shelves []*domain.Shelf
	for rows.Next() {
		shelf, err := scanShelf(rows)
		if err != nil {
			return nil, err
		}
		shelves = append(shelves, shelf)
	}
	return shelves, rows.Err()
}

func scanShelf(row pgx.Row) (*domain.Shelf, error) {
	var shelf domain.Shelf
	if err := row.Scan(
		&shelf.ID,
		&shelf.Name,
		&shelf.Category,
		&shelf.Capacity,
		&shelf.Description,
		&shelf.Active,
		&shelf.CurrentStock,
		&shelf.CreatedAt,
		&shelf.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &shelf, nil
}
