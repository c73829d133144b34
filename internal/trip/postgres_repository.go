package trip

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL trip repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const tripColumns = `
	id, user_id, current_location, pickup_location, dropoff_location,
	current_cycle_used_hours, cycle, plan_status,
	route_polyline, rest_stops, fuel_stops,
	route_distance_miles, route_duration_seconds, avg_speed_mph,
	created_at, updated_at
`

// Get retrieves a trip by ID.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE id = $1`
	return r.scanTrip(r.pool.QueryRow(ctx, query, id))
}

// GetByUserAndID retrieves a trip by user ID and trip ID.
func (r *PostgresRepository) GetByUserAndID(ctx context.Context, userID, tripID string) (*Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE id = $1 AND user_id = $2`
	return r.scanTrip(r.pool.QueryRow(ctx, query, tripID, userID))
}

func (r *PostgresRepository) scanTrip(row pgx.Row) (*Trip, error) {
	var t Trip
	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.CurrentLocation,
		&t.PickupLocation,
		&t.DropoffLocation,
		&t.CurrentCycleUsedHours,
		&t.Cycle,
		&t.PlanStatus,
		&t.RoutePolyline,
		&t.RestStops,
		&t.FuelStops,
		&t.RouteDistanceMiles,
		&t.RouteDurationSeconds,
		&t.AvgSpeedMph,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}
	return &t, nil
}

// ListByUser retrieves all trips for a user, newest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []*Trip
	for rows.Next() {
		t, err := r.scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return trips, nil
}

// Create creates a new trip.
func (r *PostgresRepository) Create(ctx context.Context, trip *Trip) error {
	query := `
		INSERT INTO trips (
			id, user_id, current_location, pickup_location, dropoff_location,
			current_cycle_used_hours, cycle, plan_status,
			route_polyline, rest_stops, fuel_stops,
			route_distance_miles, route_duration_seconds, avg_speed_mph,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.pool.Exec(ctx, query,
		trip.ID,
		trip.UserID,
		trip.CurrentLocation,
		trip.PickupLocation,
		trip.DropoffLocation,
		trip.CurrentCycleUsedHours,
		trip.Cycle,
		trip.PlanStatus,
		trip.RoutePolyline,
		trip.RestStops,
		trip.FuelStops,
		trip.RouteDistanceMiles,
		trip.RouteDurationSeconds,
		trip.AvgSpeedMph,
		trip.CreatedAt,
		trip.UpdatedAt,
	)
	return err
}

// Update updates a trip's editable fields.
func (r *PostgresRepository) Update(ctx context.Context, trip *Trip) error {
	query := `
		UPDATE trips SET
			current_location = $2,
			pickup_location = $3,
			dropoff_location = $4,
			current_cycle_used_hours = $5,
			cycle = $6,
			plan_status = $7,
			updated_at = $8
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		trip.ID,
		trip.CurrentLocation,
		trip.PickupLocation,
		trip.DropoffLocation,
		trip.CurrentCycleUsedHours,
		trip.Cycle,
		trip.PlanStatus,
		trip.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrTripNotFound
	}
	return nil
}

// SavePlan stores a computed route plan and marks the trip ready.
func (r *PostgresRepository) SavePlan(ctx context.Context, tripID string, plan PlanUpdate) error {
	query := `
		UPDATE trips SET
			route_polyline = $2,
			rest_stops = $3,
			fuel_stops = $4,
			route_distance_miles = $5,
			route_duration_seconds = $6,
			avg_speed_mph = $7,
			plan_status = $8,
			updated_at = now()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		tripID,
		plan.Polyline,
		plan.RestStops,
		plan.FuelStops,
		plan.DistanceMiles,
		plan.DurationSeconds,
		plan.AvgSpeedMph,
		PlanReady,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrTripNotFound
	}
	return nil
}

// MarkPlanStatus updates only the planning lifecycle state.
func (r *PostgresRepository) MarkPlanStatus(ctx context.Context, tripID string, status PlanStatus) error {
	result, err := r.pool.Exec(ctx,
		`UPDATE trips SET plan_status = $2, updated_at = now() WHERE id = $1`,
		tripID, status,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrTripNotFound
	}
	return nil
}

// Delete deletes a trip by ID.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM trips WHERE id = $1`, id)
	return err
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
