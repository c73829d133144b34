package logsheet

import (
	"context"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing. Production should use PostgresRepository.
type InMemoryRepository struct {
	mu     sync.RWMutex
	byTrip map[string][]DailyLog
}

// NewInMemoryRepository creates a new in-memory log sheet repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{byTrip: make(map[string][]DailyLog)}
}

// ListByTrip retrieves all log sheets for a trip ordered by date.
func (r *InMemoryRepository) ListByTrip(_ context.Context, tripID string) ([]DailyLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	logs := r.byTrip[tripID]
	out := make([]DailyLog, len(logs))
	copy(out, logs)
	return out, nil
}

// ReplaceForTrip atomically replaces the log sheets for a trip.
func (r *InMemoryRepository) ReplaceForTrip(_ context.Context, tripID string, logs []DailyLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := make([]DailyLog, len(logs))
	copy(stored, logs)
	r.byTrip[tripID] = stored
	return nil
}

// DeleteByTrip removes all log sheets for a trip.
func (r *InMemoryRepository) DeleteByTrip(_ context.Context, tripID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byTrip, tripID)
	return nil
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
