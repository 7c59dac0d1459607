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

// InventoryRepository defines persistence access for inventory items.
type InventoryRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, productNumber string) error
	GetByProductNumber(ctx context.Context, productNumber string) (*domain.Product, error)
	GetByLocation(ctx context.Context, shelfName, rackName string) (*domain.Product, error)
	FindByProductName(ctx context.Context, productName string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
}

type inventoryRepository struct {
	pool *pgxpool.Pool
}

// NewInventoryRepository returns a Postgres-backed implementation.
func NewInventoryRepository(pool *pgxpool.Pool) InventoryRepository {
	return &inventoryRepository{pool: pool}
}

func (r *inventoryRepository) Create(ctx context.Context, product *domain.Product) error {
	const query = `
        INSERT INTO inventory (product_number, product_name, category, shelf_name, rack_name)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		product.ProductNumber,
		product.ProductName,
		product.Category,
		product.ShelfName,
		product.RackName,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return apperrors.NewConflict("product number already exists", map[string]any{
			"product_number": product.ProductNumber,
		})
	}
	return err
}

func (r *inventoryRepository) Update(ctx context.Context, product *domain.Product) error {
	const query = `
        UPDATE inventory
        SET product_name=$1, category=$2, shelf_name=$3, rack_name=$4, updated_at=NOW()
        WHERE product_number=$5`

	cmd, err := r.pool.Exec(ctx, query,
		product.ProductName,
		product.Category,
		product.ShelfName,
		product.RackName,
		product.ProductNumber,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *inventoryRepository) Delete(ctx context.Context, productNumber string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM inventory WHERE product_number=$1`, productNumber)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *inventoryRepository) GetByProductNumber(ctx context.Context, productNumber string) (*domain.Product, error) {
	const query = `
        SELECT id, product_number, product_name, category, shelf_name, rack_name, created_at, updated_at
        FROM inventory WHERE product_number=$1`

	return scanProduct(r.pool.QueryRow(ctx, query, productNumber))
}

func (r *inventoryRepository) GetByLocation(ctx context.Context, shelfName, rackName string) (*domain.Product, error) {
	const query = `
        SELECT id, product_number, product_name, category, shelf_name, rack_name, created_at, updated_at
        FROM inventory WHERE shelf_name=$1 AND rack_name=$2`

	return scanProduct(r.pool.QueryRow(ctx, query, shelfName, rackName))
}

func (r *inventoryRepository) FindByProductName(ctx context.Context, productName string) (*domain.Product, error) {
	const query = `
        SELECT id, product_number, product_name, category, shelf_name, rack_name, created_at, updated_at
        FROM inventory WHERE LOWER(product_name)=LOWER($1) LIMIT 1`

	return scanProduct(r.pool.QueryRow(ctx, query, productName))
}

func (r *inventoryRepository) List(ctx context.Context) ([]*domain.Product, error) {
	const query = `
        SELECT id, product_number, product_name, category, shelf_name, rack_name, created_at, updated_at
        FROM inventory ORDER BY shelf_name, rack_name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var product domain.Product
	if err := row.Scan(
		&product.ID,
		&product.ProductNumber,
		&product.ProductName,
		&product.Category,
		&product.ShelfName,
		&product.RackName,
		&product.CreatedAt,
		&product.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &product, nil
}
