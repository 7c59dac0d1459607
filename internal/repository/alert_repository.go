package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shelfcam/shelfcam-api/internal/domain"
)

const alertColumns = `
        id, alert_type, priority, status, shelf_name, rack_name,
        product_number, product_name, category, title, message,
        empty_percentage, fill_percentage, expected_product, detected_product,
        assigned_staff, created_by, created_at, updated_at, acknowledged_at, resolved_at`

// AlertRepository defines persistence access for shelf alerts.
type AlertRepository interface {
	Create(ctx context.Context, alert *domain.Alert) error
	Update(ctx context.Context, alert *domain.Alert) error
	GetByID(ctx context.Context, id string) (*domain.Alert, error)
	ListActive(ctx context.Context, shelfName string) ([]*domain.Alert, error)
	FindActive(ctx context.Context, shelfName, rackName string, types []domain.AlertType) (*domain.Alert, error)
	Statistics(ctx context.Context) (*domain.AlertStatistics, error)
}

type alertRepository struct {
	pool *pgxpool.Pool
}

// NewAlertRepository returns a Postgres-backed implementation.
func NewAlertRepository(pool *pgxpool.Pool) AlertRepository {
	return &alertRepository{pool: pool}
}

func (r *alertRepository) Create(ctx context.Context, alert *domain.Alert) error {
	const query = `
        INSERT INTO alerts (
            alert_type, priority, status, shelf_name, rack_name,
            product_number, product_name, category, title, message,
            empty_percentage, fill_percentage, expected_product, detected_product,
            assigned_staff, created_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		alert.Type,
		alert.Priority,
		alert.Status,
		alert.ShelfName,
		alert.RackName,
		alert.ProductNumber,
		alert.ProductName,
		alert.Category,
		alert.Title,
		alert.Message,
		alert.EmptyPercentage,
		alert.FillPercentage,
		alert.ExpectedProduct,
		alert.DetectedProduct,
		alert.AssignedStaff,
		alert.CreatedBy,
	).Scan(&alert.ID, &alert.CreatedAt, &alert.UpdatedAt)
}

func (r *alertRepository) Update(ctx context.Context, alert *domain.Alert) error {
	const query = `
        UPDATE alerts
        SET alert_type=$1, priority=$2, status=$3, title=$4, message=$5,
            empty_percentage=$6, fill_percentage=$7, expected_product=$8,
            detected_product=$9, assigned_staff=$10, updated_at=NOW(),
            acknowledged_at=$11, resolved_at=$12
        WHERE id=$13`

	cmd, err := r.pool.Exec(ctx, query,
		alert.Type,
		alert.Priority,
		alert.Status,
		alert.Title,
		alert.Message,
		alert.EmptyPercentage,
		alert.FillPercentage,
		alert.ExpectedProduct,
		alert.DetectedProduct,
		alert.AssignedStaff,
		alert.AcknowledgedAt,
		alert.ResolvedAt,
		alert.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *alertRepository) GetByID(ctx context.Context, id string) (*domain.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts WHERE id=$1`
	return scanAlert(r.pool.QueryRow(ctx, query, id))
}

func (r *alertRepository) ListActive(ctx context.Context, shelfName string) ([]*domain.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts WHERE status='active' ORDER BY created_at DESC`
	args := []any{}
	if shelfName != "" {
		query = `SELECT ` + alertColumns + ` FROM alerts WHERE status='active' AND shelf_name=$1 ORDER BY created_at DESC`
		args = append(args, shelfName)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []*domain.Alert
	for rows.Next() {
		alert, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, alert)
	}
	return alerts, rows.Err()
}

func (r *alertRepository) FindActive(ctx context.Context, shelfName, rackName string, types []domain.AlertType) (*domain.Alert, error) {
	query := `SELECT ` + alertColumns + `
        FROM alerts
        WHERE status='active' AND shelf_name=$1 AND rack_name=$2 AND alert_type = ANY($3)
        LIMIT 1`

	typeStrings := make([]string, 0, len(types))
	for _, t := range types {
		typeStrings = append(typeStrings, string(t))
	}

	alert, err := scanAlert(r.pool.QueryRow(ctx, query, shelfName, rackName, typeStrings))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return alert, nil
}

func (r *alertRepository) Statistics(ctx context.Context) (*domain.AlertStatistics, error) {
	stats := &domain.AlertStatistics{
		ByPriority: make(map[domain.AlertPriority]int64),
		ByType:     make(map[domain.AlertType]int64),
	}

	const statusQuery = `SELECT status, COUNT(*) FROM alerts GROUP BY status`
	rows, err := r.pool.Query(ctx, statusQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var status domain.AlertStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats.Total += count
		switch status {
		case domain.AlertStatusActive:
			stats.Active = count
		case domain.AlertStatusAcknowledged:
			stats.Acknowledged = count
		case domain.AlertStatusResolved:
			stats.Resolved = count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	const priorityQuery = `SELECT priority, COUNT(*) FROM alerts WHERE status='active' GROUP BY priority`
	prows, err := r.pool.Query(ctx, priorityQuery)
	if err != nil {
		return nil, err
	}
	defer prows.Close()
	for prows.Next() {
		var priority domain.AlertPriority
		var count int64
		if err := prows.Scan(&priority, &count); err != nil {
			return nil, err
		}
		stats.ByPriority[priority] = count
	}
	if err := prows.Err(); err != nil {
		return nil, err
	}

	const typeQuery = `SELECT alert_type, COUNT(*) FROM alerts WHERE status='active' GROUP BY alert_type`
	trows, err := r.pool.Query(ctx, typeQuery)
	if err != nil {
		return nil, err
	}
	defer trows.Close()
	for trows.Next() {
		var alertType domain.AlertType
		var count int64
		if err := trows.Scan(&alertType, &count); err != nil {
			return nil, err
		}
		stats.ByType[alertType] = count
	}
	return stats, trows.Err()
}

func scanAlert(row pgx.Row) (*domain.Alert, error) {
	var alert domain.Alert
	if err := row.Scan(
		&alert.ID,
		&alert.Type,
		&alert.Priority,
		&alert.Status,
		&alert.ShelfName,
		&alert.RackName,
		&alert.ProductNumber,
		&alert.ProductName,
		&alert.Category,
		&alert.Title,
		&alert.Message,
		&alert.EmptyPercentage,
		&alert.FillPercentage,
		&alert.ExpectedProduct,
		&alert.DetectedProduct,
		&alert.AssignedStaff,
		&alert.CreatedBy,
		&alert.CreatedAt,
		&alert.UpdatedAt,
		&alert.AcknowledgedAt,
		&alert.ResolvedAt,
	); err != nil {
		return nil, err
	}
	return &alert, nil
}
