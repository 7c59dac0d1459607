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

const uniqueViolationCode = "23505"

// AccountRepository defines persistence access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	ListByRole(ctx context.Context, role domain.Role) ([]*domain.Account, error)
}

type accountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository returns a Postgres-backed implementation.
func NewAccountRepository(pool *pgxpool.Pool) AccountRepository {
	return &accountRepository{pool: pool}
}

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	const query = `
        INSERT INTO accounts (username, email, password, role)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		account.Username,
		account.Email,
		account.Password,
		account.Role,
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)

	// The unique constraint is the authority on duplicates; the service's
	// pre-check only narrows the race window.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return apperrors.NewConflict("username already registered", map[string]any{
			"username": account.Username,
		})
	}
	return err
}

func (r *accountRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	const query = `
        SELECT id, username, email, password, role, created_at, updated_at
        FROM accounts WHERE username=$1`

	return r.scanOne(r.pool.QueryRow(ctx, query, username))
}

func (r *accountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	const query = `
        SELECT id, username, email, password, role, created_at, updated_at
        FROM accounts WHERE id=$1`

	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *accountRepository) ListByRole(ctx context.Context, role domain.Role) ([]*domain.Account, error) {
	const query = `
        SELECT id, username, email, password, role, created_at, updated_at
        FROM accounts WHERE role=$1 ORDER BY username`

	rows, err := r.pool.Query(ctx, query, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		var account domain.Account
		if err := rows.Scan(
			&account.ID,
			&account.Username,
			&account.Email,
			&account.Password,
			&account.Role,
			&account.CreatedAt,
			&account.UpdatedAt,
		); err != nil {
			return nil, err
		}
		accounts = append(accounts, &account)
	}
	return accounts, rows.Err()
}

func (r *accountRepository) scanOne(row pgx.Row) (*domain.Account, error) {
	var account domain.Account
	if err := row.Scan(
		&account.ID,
		&account.Username,
		&account.Email,
		&account.Password,
		&account.Role,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &account, nil
}
