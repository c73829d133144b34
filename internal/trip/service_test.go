package trip_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haulsight/haulsight/internal/api/models"
	"github.com/haulsight/haulsight/internal/logsheet"
	"github.com/haulsight/haulsight/internal/trip"
)

// recordingQueue captures enqueued replan jobs.
type recordingQueue struct {
	tripIDs []string
	err     error
}

func (q *recordingQueue) EnqueueReplan(_ context.Context, tripID string) error {
	q.tripIDs = append(q.tripIDs, tripID)
	return q.err
}

func newTestTripService(queue trip.PlanQueue) *trip.Service {
	return trip.NewService(trip.ServiceConfig{
		Repository: trip.NewInMemoryRepository(),
		PlanQueue:  queue,
		Logger:     zerolog.Nop(),
	})
}

func validCreateRequest() *models.TripCreateRequest {
	return &models.TripCreateRequest{
		CurrentLocation:       "chicago, il",
		PickupLocation:        "joliet, il",
		DropoffLocation:       "indianapolis, in",
		CurrentCycleUsedHours: 12.5,
		Cycle:                 "70/8",
	}
}

func TestServiceCreate(t *testing.T) {
	queue := &recordingQueue{}
	svc := newTestTripService(queue)

	created, err := svc.Create(context.Background(), "usr_1", validCreateRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Contains(t, created.ID, "trp_")
	assert.Equal(t, "pending", created.PlanStatus)
	assert.Equal(t, "70/8", created.Cycle)
	assert.Nil(t, created.RouteDistanceMiles)

	require.Len(t, queue.tripIDs, 1)
	assert.Equal(t, created.ID, queue.tripIDs[0])
}

func TestServiceCreate_Validation(t *testing.T) {
	svc := newTestTripService(nil)

	tests := []struct {
		name   string
		modify func(*models.TripCreateRequest)
		field  string
	}{
		{
			name:   "missing pickup",
			modify: func(r *models.TripCreateRequest) { r.PickupLocation = "" },
			field:  "pickup_location",
		},
		{
			name:   "unsupported cycle",
			modify: func(r *models.TripCreateRequest) { r.Cycle = "80/9" },
			field:  "cycle",
		},
		{
			name:   "negative cycle hours",
			modify: func(r *models.TripCreateRequest) { r.CurrentCycleUsedHours = -1 },
			field:  "current_cycle_used_hours",
		},
		{
			name:   "cycle hours above limit",
			modify: func(r *models.TripCreateRequest) { r.CurrentCycleUsedHours = 71 },
			field:  "current_cycle_used_hours",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.modify(req)

			_, err := svc.Create(context.Background(), "usr_1", req)
			ve, ok := trip.IsValidation(err)
			require.True(t, ok, "expected validation error, got %v", err)

			found := false
			for _, fe := range ve.Errors {
				if fe.Field == tt.field {
					found = true
				}
			}
			assert.True(t, found, "expected field error for %s in %v", tt.field, ve.Errors)
		})
	}
}

func TestServiceUpdate_RouteChangeReplans(t *testing.T) {
	queue := &recordingQueue{}
	svc := newTestTripService(queue)

	created, err := svc.Create(context.Background(), "usr_1", validCreateRequest())
	require.NoError(t, err)
	queue.tripIDs = nil

	dropoff := "columbus, oh"
	updated, err := svc.Update(context.Background(), "usr_1", created.ID, &models.TripUpdateRequest{
		DropoffLocation: &dropoff,
	})
	require.NoError(t, err)

	assert.Equal(t, "columbus, oh", updated.DropoffLocation)
	assert.Equal(t, "pending", updated.PlanStatus)
	assert.Equal(t, []string{created.ID}, queue.tripIDs)
}

func TestServiceUpdate_NoChangeSkipsReplan(t *testing.T) {
	queue := &recordingQueue{}
	svc := newTestTripService(queue)

	created, err := svc.Create(context.Background(), "usr_1", validCreateRequest())
	require.NoError(t, err)
	queue.tripIDs = nil

	same := "joliet, il"
	_, err = svc.Update(context.Background(), "usr_1", created.ID, &models.TripUpdateRequest{
		PickupLocation: &same,
	})
	require.NoError(t, err)
	assert.Empty(t, queue.tripIDs)
}

func TestServiceUpdate_NotFound(t *testing.T) {
	svc := newTestTripService(nil)

	loc := "anywhere"
	_, err := svc.Update(context.Background(), "usr_1", "trp_missing", &models.TripUpdateRequest{
		CurrentLocation: &loc,
	})
	assert.ErrorIs(t, err, trip.ErrTripNotFound)
}

func TestServiceGet_WrongUser(t *testing.T) {
	svc := newTestTripService(nil)

	created, err := svc.Create(context.Background(), "usr_1", validCreateRequest())
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), "usr_2", created.ID)
	assert.ErrorIs(t, err, trip.ErrTripNotFound)
}

func TestServiceList_NewestFirst(t *testing.T) {
	svc := newTestTripService(nil)

	first, err := svc.Create(context.Background(), "usr_1", validCreateRequest())
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), "usr_1", validCreateRequest())
	require.NoError(t, err)

	list, err := svc.List(context.Background(), "usr_1")
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, second.ID, list.Items[0].ID)
	assert.Equal(t, first.ID, list.Items[1].ID)
}

func TestServiceDelete(t *testing.T) {
	svc := newTestTripService(nil)

	created, err := svc.Create(context.Background(), "usr_1", validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), "usr_1", created.ID))

	_, err = svc.Get(context.Background(), "usr_1", created.ID)
	assert.ErrorIs(t, err, trip.ErrTripNotFound)
}

func TestServiceDelete_RemovesLogSheets(t *testing.T) {
	logs := logsheet.NewInMemoryRepository()
	svc := trip.NewService(trip.ServiceConfig{
		Repository: trip.NewInMemoryRepository(),
		Logs:       logs,
		Logger:     zerolog.Nop(),
	})

	created, err := svc.Create(context.Background(), "usr_1", validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, logs.ReplaceForTrip(context.Background(), created.ID, []logsheet.DailyLog{
		{ID: "log_1", TripID: created.ID, Date: "2026-01-01"},
	}))

	require.NoError(t, svc.Delete(context.Background(), "usr_1", created.ID))

	remaining, err := logs.ListByTrip(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestServiceCreate_QueueFailureDoesNotFailCreate(t *testing.T) {
	queue := &recordingQueue{err: assert.AnError}
	svc := newTestTripService(queue)

	created, err := svc.Create(context.Background(), "usr_1", validCreateRequest())
	require.NoError(t, err)
	assert.Equal(t, "pending", created.PlanStatus)
}
