package logsheet_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haulsight/haulsight/internal/logsheet"
)

func makeLogs(dates ...string) []logsheet.DailyLog {
	logs := make([]logsheet.DailyLog, len(dates))
	for i, d := range dates {
		logs[i] = logsheet.DailyLog{ID: fmt.Sprintf("log_%d", i), Date: d}
	}
	return logs
}

func TestFilter(t *testing.T) {
	logs := makeLogs("2026-01-05", "2026-01-15", "2026-02-01")

	tests := []struct {
		name    string
		pattern string
		want    []string
	}{
		{"empty pattern keeps all", "", []string{"2026-01-05", "2026-01-15", "2026-02-01"}},
		{"month substring", "2026-01", []string{"2026-01-05", "2026-01-15"}},
		{"day substring", "-15", []string{"2026-01-15"}},
		{"no match", "2025", nil},
		{"full date", "2026-02-01", []string{"2026-02-01"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := logsheet.Filter(logs, tt.pattern)
			var dates []string
			for _, l := range got {
				dates = append(dates, l.Date)
			}
			assert.Equal(t, tt.want, dates)
		})
	}
}

func TestFilter_Idempotent(t *testing.T) {
	logs := makeLogs("2026-01-05", "2026-01-15", "2026-02-01")

	once := logsheet.Filter(logs, "2026-01")
	twice := logsheet.Filter(once, "2026-01")
	assert.Equal(t, once, twice)
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	logs := makeLogs("2026-01-05", "2026-02-01")
	_ = logsheet.Filter(logs, "2026-02")

	assert.Equal(t, "2026-01-05", logs[0].Date)
	assert.Equal(t, "2026-02-01", logs[1].Date)
}

func TestPaginate(t *testing.T) {
	logs := makeLogs("d1", "d2", "d3", "d4", "d5", "d6", "d7")

	tests := []struct {
		name           string
		page           int
		wantIDs        []string
		wantTotalPages int
	}{
		{"first page", 1, []string{"log_0", "log_1", "log_2"}, 3},
		{"middle page", 2, []string{"log_3", "log_4", "log_5"}, 3},
		{"short last page", 3, []string{"log_6"}, 3},
		{"past last page", 4, nil, 3},
		{"page zero", 0, nil, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, totalPages := logsheet.Paginate(logs, 3, tt.page)
			assert.Equal(t, tt.wantTotalPages, totalPages)

			var ids []string
			for _, l := range got {
				ids = append(ids, l.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestPaginate_EmptyInput(t *testing.T) {
	got, totalPages := logsheet.Paginate(nil, 3, 1)
	assert.Empty(t, got)
	assert.Equal(t, 1, totalPages, "total pages never drops below 1")
}

func TestPaginate_ExactMultiple(t *testing.T) {
	logs := makeLogs("d1", "d2", "d3", "d4", "d5", "d6")
	_, totalPages := logsheet.Paginate(logs, 3, 1)
	assert.Equal(t, 2, totalPages)
}

func TestBuildTimeline(t *testing.T) {
	samples := []logsheet.StatusSample{
		{Hour: 0, Status: logsheet.StatusOffDuty},
		{Hour: 6, Status: logsheet.StatusDriving},
		{Hour: 14, Status: logsheet.StatusOnDuty},
	}

	points := logsheet.BuildTimeline(samples)
	require.Len(t, points, 3)

	assert.Equal(t, logsheet.TimelinePoint{Hour: 0, Level: 0, Status: logsheet.StatusOffDuty}, points[0])
	assert.Equal(t, logsheet.TimelinePoint{Hour: 6, Level: 2, Status: logsheet.StatusDriving}, points[1])
	assert.Equal(t, logsheet.TimelinePoint{Hour: 14, Level: 3, Status: logsheet.StatusOnDuty}, points[2])
}

func TestBuildTimeline_UnknownStatusFallsBack(t *testing.T) {
	points := logsheet.BuildTimeline([]logsheet.StatusSample{
		{Hour: 3, Status: "personal_conveyance"},
	})

	require.Len(t, points, 1)
	assert.Equal(t, 0, points[0].Level)
	assert.Equal(t, logsheet.StatusOffDuty, points[0].Status)
}

func TestBuildTimeline_Empty(t *testing.T) {
	assert.Nil(t, logsheet.BuildTimeline(nil))
}

func TestLevelOf(t *testing.T) {
	tests := []struct {
		status logsheet.Status
		want   int
	}{
		{logsheet.StatusOffDuty, 0},
		{logsheet.StatusSleeper, 1},
		{logsheet.StatusDriving, 2},
		{logsheet.StatusOnDuty, 3},
		{"yard_move", 0},
		{"", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, logsheet.LevelOf(tt.status), string(tt.status))
	}
}

func TestLevelLabel(t *testing.T) {
	assert.Equal(t, logsheet.StatusSleeper, logsheet.LevelLabel(1))
	assert.Equal(t, logsheet.Status(""), logsheet.LevelLabel(7))
}

func TestCheckOrdered(t *testing.T) {
	ok := []logsheet.StatusSample{
		{Hour: 0, Status: logsheet.StatusOffDuty},
		{Hour: 6, Status: logsheet.StatusDriving},
		{Hour: 6, Status: logsheet.StatusOnDuty}, // equal hours allowed
	}
	assert.NoError(t, logsheet.CheckOrdered(ok))

	outOfOrder := []logsheet.StatusSample{
		{Hour: 6, Status: logsheet.StatusDriving},
		{Hour: 2, Status: logsheet.StatusOffDuty},
	}
	assert.Error(t, logsheet.CheckOrdered(outOfOrder))

	outOfRange := []logsheet.StatusSample{
		{Hour: 24, Status: logsheet.StatusOffDuty},
	}
	assert.Error(t, logsheet.CheckOrdered(outOfRange))
}
