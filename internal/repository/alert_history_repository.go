package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shelfcam/shelfcam-api/internal/domain"
)

// AlertHistoryRepository records the audit trail for alerts.
type AlertHistoryRepository interface {
	Append(ctx context.Context, entry *domain.AlertHistoryEntry) error
	ListByAlert(ctx context.Context, alertID string) ([]*domain.AlertHistoryEntry, error)
}

type alertHistoryRepository struct {
	pool *pgxpool.Pool
}

// NewAlertHistoryRepository returns a Postgres-backed implementation.
func NewAlertHistoryRepository(pool *pgxpool.Pool) AlertHistoryRepository {
	return &alertHistoryRepository{pool: pool}
}

func (r *alertHistoryRepository) Append(ctx context.Context, entry *domain.AlertHistoryEntry) error {
	const query = `
        INSERT INTO alert_history (alert_id, action, performed_by, notes)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		entry.AlertID,
		entry.Action,
		entry.PerformedBy,
		entry.Notes,
	).Scan(&entry.ID, &entry.Timestamp)
}

func (r *alertHistoryRepository) ListByAlert(ctx context.Context, alertID string) ([]*domain.AlertHistoryEntry, error) {
	const query = `
        SELECT id, alert_id, action, performed_by, notes, created_at
        FROM alert_history WHERE alert_id=$1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, alertID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.AlertHistoryEntry
	for rows.Next() {
		var entry domain.AlertHistoryEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.AlertID,
			&entry.Action,
			&entry.PerformedBy,
			&entry.Notes,
			&entry.Timestamp,
		); err != nil {
			return nil, err
		}
		entries = append(entries, &entry)
	}
	return entries, rows.Err()
}
