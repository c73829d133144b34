package trip

import (
	"context"
	"sort"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing. Production should use PostgresRepository.
type InMemoryRepository struct {
	mu    sync.RWMutex
	trips map[string]*Trip
}

// NewInMemoryRepository creates a new in-memory trip repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{trips: make(map[string]*Trip)}
}

// Get retrieves a trip by ID.
func (r *InMemoryRepository) Get(_ context.Context, id string) (*Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.trips[id]
	if !ok {
		return nil, ErrTripNotFound
	}
	clone := *t
	return &clone, nil
}

// GetByUserAndID retrieves a trip by user ID and trip ID.
func (r *InMemoryRepository) GetByUserAndID(_ context.Context, userID, tripID string) (*Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.trips[tripID]
	if !ok || t.UserID != userID {
		return nil, ErrTripNotFound
	}
	clone := *t
	return &clone, nil
}

// ListByUser retrieves all trips for a user, newest first.
func (r *InMemoryRepository) ListByUser(_ context.Context, userID string) ([]*Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var trips []*Trip
	for _, t := range r.trips {
		if t.UserID == userID {
			clone := *t
			trips = append(trips, &clone)
		}
	}

	sort.Slice(trips, func(i, j int) bool {
		return trips[i].CreatedAt.After(trips[j].CreatedAt)
	})
	return trips, nil
}

// Create creates a new trip.
func (r *InMemoryRepository) Create(_ context.Context, trip *Trip) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *trip
	r.trips[trip.ID] = &clone
	return nil
}

// Update updates a trip's editable fields.
func (r *InMemoryRepository) Update(_ context.Context, trip *Trip) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.trips[trip.ID]
	if !ok {
		return ErrTripNotFound
	}

	existing.CurrentLocation = trip.CurrentLocation
	existing.PickupLocation = trip.PickupLocation
	existing.DropoffLocation = trip.DropoffLocation
	existing.CurrentCycleUsedHours = trip.CurrentCycleUsedHours
	existing.Cycle = trip.Cycle
	existing.PlanStatus = trip.PlanStatus
	existing.UpdatedAt = trip.UpdatedAt
	return nil
}

// SavePlan stores a computed route plan and marks the trip ready.
func (r *InMemoryRepository) SavePlan(_ context.Context, tripID string, plan PlanUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.trips[tripID]
	if !ok {
		return ErrTripNotFound
	}

	t.RoutePolyline = plan.Polyline
	t.RestStops = plan.RestStops
	t.FuelStops = plan.FuelStops
	distance := plan.DistanceMiles
	duration := plan.DurationSeconds
	speed := plan.AvgSpeedMph
	t.RouteDistanceMiles = &distance
	t.RouteDurationSeconds = &duration
	t.AvgSpeedMph = &speed
	t.PlanStatus = PlanReady
	return nil
}

// MarkPlanStatus updates only the planning lifecycle state.
func (r *InMemoryRepository) MarkPlanStatus(_ context.Context, tripID string, status PlanStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.trips[tripID]
	if !ok {
		return ErrTripNotFound
	}
	t.PlanStatus = status
	return nil
}

// Delete deletes a trip by ID.
func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.trips, id)
	return nil
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
