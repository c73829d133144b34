package logsheet

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL log sheet repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// ListByTrip retrieves all log sheets for a trip ordered by date.
func (r *PostgresRepository) ListByTrip(ctx context.Context, tripID string) ([]DailyLog, error) {
	query := `
		SELECT
			id, trip_id, log_date,
			miles_today, driving_hours, on_duty_hours, off_duty_hours,
			grid_plot_data, created_at
		FROM daily_logs
		WHERE trip_id = $1
		ORDER BY log_date ASC
	`

	rows, err := r.pool.Query(ctx, query, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []DailyLog
	for rows.Next() {
		var l DailyLog
		err := rows.Scan(
			&l.ID,
			&l.TripID,
			&l.Date,
			&l.MilesToday,
			&l.DrivingHours,
			&l.OnDutyHours,
			&l.OffDutyHours,
			&l.GridPlotData,
			&l.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return logs, nil
}

// ReplaceForTrip atomically replaces the log sheets for a trip.
func (r *PostgresRepository) ReplaceForTrip(ctx context.Context, tripID string, logs []DailyLog) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace logs: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM daily_logs WHERE trip_id = $1`, tripID); err != nil {
		return err
	}

	batch := &pgx.Batch{}
	insert := `
		INSERT INTO daily_logs (
			id, trip_id, log_date,
			miles_today, driving_hours, on_duty_hours, off_duty_hours,
			grid_plot_data, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
	`
	for _, l := range logs {
		batch.Queue(insert,
			l.ID,
			tripID,
			l.Date,
			l.MilesToday,
			l.DrivingHours,
			l.OnDutyHours,
			l.OffDutyHours,
			l.GridPlotData,
		)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// DeleteByTrip removes all log sheets for a trip.
func (r *PostgresRepository) DeleteByTrip(ctx context.Context, tripID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM daily_logs WHERE trip_id = $1`, tripID)
	return err
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
