// Package trip provides trip management services.
package trip

import (
	"errors"
	"time"

	"github.com/haulsight/haulsight/internal/routegeom"
)

// Repository errors.
var (
	ErrTripNotFound = errors.New("trip not found")
)

// Cycle identifies the HOS duty cycle a trip is planned under.
type Cycle string

// Supported duty cycles.
const (
	Cycle70On8 Cycle = "70/8"
	Cycle60On7 Cycle = "60/7"
)

// Hours returns the rolling on-duty limit of the cycle.
func (c Cycle) Hours() float64 {
	if c == Cycle60On7 {
		return 60
	}
	return 70
}

// Valid reports whether the cycle is one of the supported values.
func (c Cycle) Valid() bool {
	return c == Cycle70On8 || c == Cycle60On7
}

// PlanStatus tracks the route planning lifecycle of a trip.
type PlanStatus string

const (
	// PlanPending means a replan job has been enqueued but not completed.
	PlanPending PlanStatus = "pending"
	// PlanReady means the trip carries a computed route and log sheets.
	PlanReady PlanStatus = "ready"
	// PlanFailed means the last replan attempt failed; the trip still
	// exists, with no drawable route.
	PlanFailed PlanStatus = "failed"
)

// Trip represents a planned haul.
type Trip struct {
	ID                    string
	UserID                string
	CurrentLocation       string
	PickupLocation        string
	DropoffLocation       string
	CurrentCycleUsedHours float64
	Cycle                 Cycle
	PlanStatus            PlanStatus

	// Route plan fields, written by the planning worker.
	RoutePolyline        routegeom.Source
	RestStops            []routegeom.RawStop
	FuelStops            []routegeom.RawStop
	RouteDistanceMiles   *float64
	RouteDurationSeconds *float64
	AvgSpeedMph          *float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Route returns the read-only route slice of the trip for the geometry
// engine.
func (t *Trip) Route() routegeom.TripRoute {
	return routegeom.TripRoute{
		Source:          t.RoutePolyline,
		PickupLocation:  t.PickupLocation,
		DropoffLocation: t.DropoffLocation,
		RestStops:       t.RestStops,
		FuelStops:       t.FuelStops,
		DistanceMiles:   t.RouteDistanceMiles,
		DurationSeconds: t.RouteDurationSeconds,
		AvgSpeedMph:     t.AvgSpeedMph,
	}
}

// PlanUpdate is the computed route plan the worker stores on a trip.
type PlanUpdate struct {
	Polyline        routegeom.Source
	RestStops       []routegeom.RawStop
	FuelStops       []routegeom.RawStop
	DistanceMiles   float64
	DurationSeconds float64
	AvgSpeedMph     float64
}
