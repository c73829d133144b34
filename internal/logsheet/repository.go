package logsheet

import "context"

// Repository defines the interface for log sheet persistence.
type Repository interface {
	// ListByTrip retrieves all log sheets for a trip ordered by date.
	ListByTrip(ctx context.Context, tripID string) ([]DailyLog, error)

	// ReplaceForTrip atomically replaces the log sheets for a trip.
	// Used by the planning worker after recomputing a trip schedule.
	ReplaceForTrip(ctx context.Context, tripID string, logs []DailyLog) error

	// DeleteByTrip removes all log sheets for a trip.
	DeleteByTrip(ctx context.Context, tripID string) error
}
