// Package planner provides the client for the external route planning
// provider. The provider computes the drivable route; this service only
// consumes its geometry and totals.
package planner

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for planning operations.
var (
	// ErrProviderUnavailable indicates the provider is down or the circuit
	// breaker is open.
	ErrProviderUnavailable = errors.New("route planning provider unavailable")
	// ErrNoRouteFound indicates no drivable route exists between the stops.
	ErrNoRouteFound = errors.New("no route found between the given locations")
	// ErrLocationNotFound indicates a location string could not be geocoded.
	ErrLocationNotFound = errors.New("location could not be geocoded")
)

// Provider plans truck routes from free-form location names.
type Provider interface {
	// PlanRoute geocodes the locations and computes a driving route
	// current -> pickup -> dropoff.
	PlanRoute(ctx context.Context, req PlanRequest) (*PlanResult, error)
	// Name returns the provider identifier for logging and metrics.
	Name() string
}

// Metrics records the outcome of individual provider calls. The concrete
// instruments live with the HTTP server metrics.
type Metrics interface {
	RecordRequest(provider, operation string, duration time.Duration, err error)
}

// PlanRequest names the three waypoints of a haul.
type PlanRequest struct {
	CurrentLocation string
	PickupLocation  string
	DropoffLocation string
}

// PlanResult is the computed route.
type PlanResult struct {
	// Polyline is the route geometry, encoded at precision 5.
	Polyline string
	// DistanceMeters is the total route distance.
	DistanceMeters float64
	// DurationSeconds is the total drive time.
	DurationSeconds float64
}

// Error provides detailed error information from the planning provider.
type Error struct {
	Provider string
	Code     string
	Message  string
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether the request may succeed if retried later.
func (e *Error) IsRetryable() bool {
	return errors.Is(e.Err, ErrProviderUnavailable)
}
