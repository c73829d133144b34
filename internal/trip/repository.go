package trip

import "context"

// Repository defines the interface for trip persistence.
type Repository interface {
	// Get retrieves a trip by ID.
	Get(ctx context.Context, id string) (*Trip, error)

	// GetByUserAndID retrieves a trip by user ID and trip ID.
	// Returns ErrTripNotFound if the trip doesn't exist or doesn't belong
	// to the user.
	GetByUserAndID(ctx context.Context, userID, tripID string) (*Trip, error)

	// ListByUser retrieves all trips for a user, newest first.
	ListByUser(ctx context.Context, userID string) ([]*Trip, error)

	// Create creates a new trip.
	Create(ctx context.Context, trip *Trip) error

	// Update updates a trip's editable fields.
	Update(ctx context.Context, trip *Trip) error

	// SavePlan stores a computed route plan and marks the trip ready.
	SavePlan(ctx context.Context, tripID string, plan PlanUpdate) error

	// MarkPlanStatus updates only the planning lifecycle state.
	MarkPlanStatus(ctx context.Context, tripID string, status PlanStatus) error

	// Delete deletes a trip by ID.
	Delete(ctx context.Context, id string) error
}
