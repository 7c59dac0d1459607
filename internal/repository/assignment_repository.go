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

// AssignmentRepository defines persistence access for staff-shelf assignments.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *domain.StaffAssignment) error
	GetByID(ctx context.Context, id string) (*domain.StaffAssignment, error)
	ListActive(ctx context.Context) ([]*domain.StaffAssignment, error)
	ActiveByUsername(ctx context.Context, username string) ([]*domain.StaffAssignment, error)
	ActiveByShelf(ctx context.Context, shelfName string) ([]*domain.StaffAssignment, error)
	Deactivate(ctx context.Context, id string) error
	UpdateShelf(ctx context.Context, id, shelfName, notes string) error
}

type assignmentRepository struct {
	pool *pgxpool.Pool
}

// NewAssignmentRepository returns a Postgres-backed implementation.
func NewAssignmentRepository(pool *pgxpool.Pool) AssignmentRepository {
	return &assignmentRepository{pool: pool}
}

func (r *assignmentRepository) Create(ctx context.Context, assignment *domain.StaffAssignment) error {
	const query = `
        INSERT INTO staff_assignments (username, shelf_name, assigned_by, is_active, notes)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, assigned_at, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		assignment.Username,
		assignment.ShelfName,
		assignment.AssignedBy,
		assignment.Active,
		assignment.Notes,
	).Scan(&assignment.ID, &assignment.AssignedAt, &assignment.CreatedAt, &assignment.UpdatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return apperrors.NewConflict("staff already assigned to this shelf", map[string]any{
			"username":   assignment.Username,
			"shelf_name": assignment.ShelfName,
		})
	}
	return err
}

func (r *assignmentRepository) GetByID(ctx context.Context, id string) (*domain.StaffAssignment, error) {
	const query = `
        SELECT id, username, shelf_name, assigned_by, is_active, notes, assigned_at, created_at, updated_at
        FROM staff_assignments WHERE id=$1`

	return scanAssignment(r.pool.QueryRow(ctx, query, id))
}

func (r *assignmentRepository) ListActive(ctx context.Context) ([]*domain.StaffAssignment, error) {
	const query = `
        SELECT id, username, shelf_name, assigned_by, is_active, notes, assigned_at, created_at, updated_at
        FROM staff_assignments WHERE is_active ORDER BY shelf_name, username`

	return r.queryMany(ctx, query)
}

func (r *assignmentRepository) ActiveByUsername(ctx context.Context, username string) ([]*domain.StaffAssignment, error) {
	const query = `
        SELECT id, username, shelf_name, assigned_by, is_active, notes, assigned_at, created_at, updated_at
        FROM staff_assignments WHERE is_active AND username=$1 ORDER BY shelf_name`

	return r.queryMany(ctx, query, username)
}

func (r *assignmentRepository) ActiveByShelf(ctx context.Context, shelfName string) ([]*domain.StaffAssignment, error) {
	const query = `
        SELECT id, username, shelf_name, assigned_by, is_active, notes, assigned_at, created_at, updated_at
        FROM staff_assignments WHERE is_active AND shelf_name=$1 ORDER BY username`

	return r.queryMany(ctx, query, shelfName)
}

func (r *assignmentRepository) Deactivate(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE staff_assignments SET is_active=FALSE, updated_at=NOW() WHERE id=$1 AND is_active`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *assignmentRepository) UpdateShelf(ctx context.Context, id, shelfName, notes string) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE staff_assignments SET shelf_name=$1, notes=$2, assigned_at=NOW(), updated_at=NOW() WHERE id=$3 AND is_active`,
		shelfName, notes, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *assignmentRepository) queryMany(ctx context.Context, query string, args ...any) ([]*domain.StaffAssignment, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []*domain.StaffAssignment
	for rows.Next() {
		assignment, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, assignment)
	}
	return assignments, rows.Err()
}

func scanAssignment(row pgx.Row) (*domain.StaffAssignment, error) {
	var assignment domain.StaffAssignment
	if err := row.Scan(
		&assignment.ID,
		&assignment.Username,
		&assignment.ShelfName,
		&assignment.AssignedBy,
		&assignment.Active,
		&assignment.Notes,
		&assignment.AssignedAt,
		&assignment.CreatedAt,
		&assignment.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &assignment, nil
}
