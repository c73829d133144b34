package trip

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/haulsight/haulsight/internal/api/models"
)

// Validation constants.
const (
	MaxLocationLength = 120
)

// PlanQueue enqueues route replan jobs for the background worker.
type PlanQueue interface {
	EnqueueReplan(ctx context.Context, tripID string) error
}

// LogPurger removes the stored log sheets of a trip. Satisfied by the
// logsheet repository.
type LogPurger interface {
	DeleteByTrip(ctx context.Context, tripID string) error
}

// ServiceConfig holds configuration for the trip service.
type ServiceConfig struct {
	Repository Repository
	// PlanQueue may be nil; replans are then skipped (useful in tests).
	PlanQueue PlanQueue
	// Logs may be nil; deleted trips then leave their log sheets behind.
	Logs   LogPurger
	Logger zerolog.Logger
}

// Service provides trip operations.
type Service struct {
	repo   Repository
	queue  PlanQueue
	logs   LogPurger
	logger zerolog.Logger
}

// NewService creates a new trip service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		repo:   cfg.Repository,
		queue:  cfg.PlanQueue,
		logs:   cfg.Logs,
		logger: cfg.Logger,
	}
}

// List retrieves all trips for a user.
func (s *Service) List(ctx context.Context, userID string) (*models.TripList, error) {
	trips, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]models.Trip, 0, len(trips))
	for _, t := range trips {
		items = append(items, toAPITrip(t))
	}
	return &models.TripList{Items: items}, nil
}

// Get retrieves a trip by ID for a user.
func (s *Service) Get(ctx context.Context, userID, tripID string) (*models.Trip, error) {
	t, err := s.repo.GetByUserAndID(ctx, userID, tripID)
	if err != nil {
		return nil, err
	}
	result := toAPITrip(t)
	return &result, nil
}

// GetDomain retrieves the full domain trip, including route plan fields.
func (s *Service) GetDomain(ctx context.Context, userID, tripID string) (*Trip, error) {
	return s.repo.GetByUserAndID(ctx, userID, tripID)
}

// Create creates a new trip and enqueues route planning for it.
func (s *Service) Create(ctx context.Context, userID string, input *models.TripCreateRequest) (*models.Trip, error) {
	if fieldErrors := validateCreateInput(input); len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	now := time.Now()
	t := &Trip{
		ID:                    "trp_" + uuid.New().String()[:22],
		UserID:                userID,
		CurrentLocation:       input.CurrentLocation,
		PickupLocation:        input.PickupLocation,
		DropoffLocation:       input.DropoffLocation,
		CurrentCycleUsedHours: input.CurrentCycleUsedHours,
		Cycle:                 Cycle(input.Cycle),
		PlanStatus:            PlanPending,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	s.enqueueReplan(ctx, t.ID)

	result := toAPITrip(t)
	return &result, nil
}

// Update updates an existing trip for a user. Changing any routing input
// re-enqueues planning.
func (s *Service) Update(ctx context.Context, userID, tripID string, input *models.TripUpdateRequest) (*models.Trip, error) {
	t, err := s.repo.GetByUserAndID(ctx, userID, tripID)
	if err != nil {
		return nil, err
	}

	if fieldErrors := validateUpdateInput(input); len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	routeChanged := false
	if input.CurrentLocation != nil && *input.CurrentLocation != t.CurrentLocation {
		t.CurrentLocation = *input.CurrentLocation
		routeChanged = true
	}
	if input.PickupLocation != nil && *input.PickupLocation != t.PickupLocation {
		t.PickupLocation = *input.PickupLocation
		routeChanged = true
	}
	if input.DropoffLocation != nil && *input.DropoffLocation != t.DropoffLocation {
		t.DropoffLocation = *input.DropoffLocation
		routeChanged = true
	}
	if input.CurrentCycleUsedHours != nil && *input.CurrentCycleUsedHours != t.CurrentCycleUsedHours {
		t.CurrentCycleUsedHours = *input.CurrentCycleUsedHours
		routeChanged = true
	}
	if input.Cycle != nil && Cycle(*input.Cycle) != t.Cycle {
		t.Cycle = Cycle(*input.Cycle)
		routeChanged = true
	}

	if routeChanged {
		t.PlanStatus = PlanPending
	}
	t.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}

	if routeChanged {
		s.enqueueReplan(ctx, t.ID)
	}

	result := toAPITrip(t)
	return &result, nil
}

// Delete deletes a trip for a user along with its stored log sheets.
func (s *Service) Delete(ctx context.Context, userID, tripID string) error {
	if _, err := s.repo.GetByUserAndID(ctx, userID, tripID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, tripID); err != nil {
		return err
	}
	if s.logs != nil {
		if err := s.logs.DeleteByTrip(ctx, tripID); err != nil {
			return fmt.Errorf("deleting trip log sheets: %w", err)
		}
	}
	return nil
}

// enqueueReplan asks the worker to (re)compute the route plan. Failures are
// logged, not returned: the trip write already succeeded and the user can
// retry planning later.
func (s *Service) enqueueReplan(ctx context.Context, tripID string) {
	if s.queue == nil {
		return
	}
	if err := s.queue.EnqueueReplan(ctx, tripID); err != nil {
		s.logger.Error().
			Err(err).
			Str("trip_id", tripID).
			Msg("failed to enqueue trip replan")
	}
}

func validateCreateInput(input *models.TripCreateRequest) []models.FieldError {
	var errs []models.FieldError

	errs = append(errs, validateLocation(input.CurrentLocation, "current_location", true)...)
	errs = append(errs, validateLocation(input.PickupLocation, "pickup_location", true)...)
	errs = append(errs, validateLocation(input.DropoffLocation, "dropoff_location", true)...)

	if input.Cycle == "" {
		errs = append(errs, models.FieldError{Field: "cycle", Message: "is required"})
	} else if !Cycle(input.Cycle).Valid() {
		errs = append(errs, models.FieldError{Field: "cycle", Message: `must be "70/8" or "60/7"`})
	}

	errs = append(errs, validateCycleUsed(input.CurrentCycleUsedHours, Cycle(input.Cycle))...)

	return errs
}

func validateUpdateInput(input *models.TripUpdateRequest) []models.FieldError {
	var errs []models.FieldError

	if input.CurrentLocation != nil {
		errs = append(errs, validateLocation(*input.CurrentLocation, "current_location", false)...)
	}
	if input.PickupLocation != nil {
		errs = append(errs, validateLocation(*input.PickupLocation, "pickup_location", false)...)
	}
	if input.DropoffLocation != nil {
		errs = append(errs, validateLocation(*input.DropoffLocation, "dropoff_location", false)...)
	}
	if input.Cycle != nil && !Cycle(*input.Cycle).Valid() {
		errs = append(errs, models.FieldError{Field: "cycle", Message: `must be "70/8" or "60/7"`})
	}
	if input.CurrentCycleUsedHours != nil {
		cycle := Cycle70On8
		if input.Cycle != nil {
			cycle = Cycle(*input.Cycle)
		}
		errs = append(errs, validateCycleUsed(*input.CurrentCycleUsedHours, cycle)...)
	}

	return errs
}

func validateLocation(value, field string, required bool) []models.FieldError {
	if value == "" {
		if required {
			return []models.FieldError{{Field: field, Message: "is required"}}
		}
		return []models.FieldError{{Field: field, Message: "cannot be empty"}}
	}
	if len(value) > MaxLocationLength {
		return []models.FieldError{{Field: field, Message: "must be at most 120 characters"}}
	}
	return nil
}

func validateCycleUsed(hours float64, cycle Cycle) []models.FieldError {
	if hours < 0 {
		return []models.FieldError{{Field: "current_cycle_used_hours", Message: "must not be negative"}}
	}
	if cycle.Valid() && hours > cycle.Hours() {
		return []models.FieldError{{
			Field:   "current_cycle_used_hours",
			Message: "must not exceed the cycle limit",
		}}
	}
	return nil
}

// toAPITrip converts a domain Trip to an API Trip.
func toAPITrip(t *Trip) models.Trip {
	return models.Trip{
		ID:                    t.ID,
		CurrentLocation:       t.CurrentLocation,
		PickupLocation:        t.PickupLocation,
		DropoffLocation:       t.DropoffLocation,
		CurrentCycleUsedHours: t.CurrentCycleUsedHours,
		Cycle:                 string(t.Cycle),
		PlanStatus:            string(t.PlanStatus),
		RouteDistanceMiles:    t.RouteDistanceMiles,
		RouteDurationSeconds:  t.RouteDurationSeconds,
		AvgSpeedMph:           t.AvgSpeedMph,
		CreatedAt:             models.Timestamp(t.CreatedAt),
		UpdatedAt:             models.Timestamp(t.UpdatedAt),
	}
}

// ValidationError represents validation errors.
type ValidationError struct {
	Errors []models.FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// IsValidation reports whether err is a ValidationError and returns it.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
