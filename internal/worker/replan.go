package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/haulsight/haulsight/internal/logsheet"
	"github.com/haulsight/haulsight/internal/planner"
	"github.com/haulsight/haulsight/internal/routegeom"
	"github.com/haulsight/haulsight/internal/trip"
	"github.com/haulsight/haulsight/pkg/polyline"
)

const (
	// restStopDrivingHours is the driving time between suggested rest stops.
	restStopDrivingHours = 8.0

	// fuelStopMiles is the distance between suggested fuel stops.
	fuelStopMiles = 1000.0

	metersPerMile = 1609.344
)

// ReplanJob recomputes the route plan and log sheets for a trip.
type ReplanJob struct {
	trips    trip.Repository
	logs     logsheet.Repository
	provider planner.Provider
	logger   zerolog.Logger
}

// ReplanJobConfig holds configuration for creating a ReplanJob.
type ReplanJobConfig struct {
	Trips    trip.Repository
	Logs     logsheet.Repository
	Provider planner.Provider
	Logger   zerolog.Logger
}

// NewReplanJob creates a new replan job processor.
func NewReplanJob(cfg ReplanJobConfig) *ReplanJob {
	return &ReplanJob{
		trips:    cfg.Trips,
		logs:     cfg.Logs,
		provider: cfg.Provider,
		logger:   cfg.Logger,
	}
}

// Run plans the route for the given trip, stores the plan and regenerates
// the trip's log sheets. On planning failure the trip is marked failed and
// left without a drawable route.
func (j *ReplanJob) Run(ctx context.Context, tripID string) error {
	logger := j.logger.With().Str("trip_id", tripID).Logger()

	t, err := j.trips.Get(ctx, tripID)
	if err != nil {
		if errors.Is(err, trip.ErrTripNotFound) {
			// Trip was deleted after the replan was enqueued.
			logger.Warn().Msg("trip no longer exists, skipping replan")
			return nil
		}
		return fmt.Errorf("fetching trip: %w", err)
	}

	result, err := j.provider.PlanRoute(ctx, planner.PlanRequest{
		CurrentLocation: t.CurrentLocation,
		PickupLocation:  t.PickupLocation,
		DropoffLocation: t.DropoffLocation,
	})
	if err != nil {
		logger.Error().Err(err).Str("provider", j.provider.Name()).Msg("route planning failed")
		if markErr := j.trips.MarkPlanStatus(ctx, tripID, trip.PlanFailed); markErr != nil {
			logger.Error().Err(markErr).Msg("failed to mark plan as failed")
		}
		return fmt.Errorf("planning route: %w", err)
	}

	coords, err := polyline.Decode(result.Polyline)
	if err != nil {
		logger.Error().Err(err).Msg("provider returned undecodable polyline")
		if markErr := j.trips.MarkPlanStatus(ctx, tripID, trip.PlanFailed); markErr != nil {
			logger.Error().Err(markErr).Msg("failed to mark plan as failed")
		}
		return fmt.Errorf("decoding route polyline: %w", err)
	}

	distanceMiles := result.DistanceMeters / metersPerMile
	if distanceMiles <= 0 {
		// Some provider responses omit the distance summary; fall back to the
		// decoded geometry.
		distanceMiles = polyline.LengthMiles(coords)
	}
	durationHours := result.DurationSeconds / 3600
	avgSpeed := 0.0
	if durationHours > 0 {
		avgSpeed = distanceMiles / durationHours
	}

	totalMeters := distanceMiles * metersPerMile
	plan := trip.PlanUpdate{
		Polyline:        routegeom.EncodedSource(result.Polyline),
		RestStops:       j.placeStops(coords, totalMeters, restStopDrivingHours/durationHours, "Rest stop"),
		FuelStops:       j.placeStops(coords, totalMeters, fuelStopMiles/distanceMiles, "Fuel stop"),
		DistanceMiles:   plannedRound(distanceMiles),
		DurationSeconds: result.DurationSeconds,
		AvgSpeedMph:     plannedRound(avgSpeed),
	}

	if err := j.trips.SavePlan(ctx, tripID, plan); err != nil {
		return fmt.Errorf("saving route plan: %w", err)
	}

	sheets := logsheet.Generate(logsheet.GenerateInput{
		TripID:            tripID,
		StartDate:         time.Now().UTC(),
		TotalDrivingHours: durationHours,
		TotalMiles:        distanceMiles,
		CycleHours:        t.Cycle.Hours(),
		CycleUsedHours:    t.CurrentCycleUsedHours,
	})
	if err := j.logs.ReplaceForTrip(ctx, tripID, sheets); err != nil {
		return fmt.Errorf("storing log sheets: %w", err)
	}

	logger.Info().
		Float64("distance_miles", plan.DistanceMiles).
		Float64("duration_hours", plannedRound(durationHours)).
		Int("rest_stops", len(plan.RestStops)).
		Int("fuel_stops", len(plan.FuelStops)).
		Int("log_sheets", len(sheets)).
		Msg("trip replanned")

	return nil
}

// placeStops samples the route at the given fraction of its total length
// and labels each sample. A fraction of 0.25 yields stops at 25%, 50% and
// 75% of the route; fractions >= 1 yield no stops.
func (j *ReplanJob) placeStops(coords []polyline.Coordinate, totalMeters, fraction float64, label string) []routegeom.RawStop {
	if fraction <= 0 || fraction >= 1 || totalMeters <= 0 {
		return nil
	}

	// SampleEvery includes both route endpoints. Those positions already
	// carry start and end markers, so only interior samples become stops.
	samples := polyline.SampleEvery(coords, totalMeters*fraction)
	if len(samples) <= 2 {
		return nil
	}
	samples = samples[1 : len(samples)-1]

	stops := make([]routegeom.RawStop, 0, len(samples))
	for i, s := range samples {
		stops = append(stops, routegeom.RawStop{
			Coords: []float64{s.Lon, s.Lat},
			Name:   fmt.Sprintf("%s %d", label, i+1),
		})
	}
	return stops
}

func plannedRound(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
