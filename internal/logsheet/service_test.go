package logsheet_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haulsight/haulsight/internal/logsheet"
)

func newTestService(t *testing.T, logs []logsheet.DailyLog) *logsheet.Service {
	t.Helper()
	repo := logsheet.NewInMemoryRepository()
	require.NoError(t, repo.ReplaceForTrip(context.Background(), "trp_test", logs))
	return logsheet.NewService(repo, zerolog.Nop())
}

func seededLogs(n int) []logsheet.DailyLog {
	logs := make([]logsheet.DailyLog, n)
	for i := range logs {
		logs[i] = logsheet.DailyLog{
			ID:     fmt.Sprintf("log_%d", i),
			TripID: "trp_test",
			Date:   fmt.Sprintf("2026-01-%02d", i+1),
			GridPlotData: []logsheet.StatusSample{
				{Hour: 0, Status: logsheet.StatusOffDuty},
				{Hour: 6, Status: logsheet.StatusDriving},
				{Hour: 14, Status: logsheet.StatusOnDuty},
			},
		}
	}
	return logs
}

func TestServiceList_DefaultPaging(t *testing.T) {
	svc := newTestService(t, seededLogs(7))

	page, err := svc.List(context.Background(), "trp_test", logsheet.ListQuery{})
	require.NoError(t, err)

	assert.Len(t, page.Items, 3)
	assert.Equal(t, 1, page.Meta.Page)
	assert.Equal(t, 3, page.Meta.PageSize)
	assert.Equal(t, 3, page.Meta.TotalPages)
	assert.Equal(t, 7, page.Meta.TotalCount)
}

func TestServiceList_PageAfterLastIsEmptyNotError(t *testing.T) {
	svc := newTestService(t, seededLogs(7))

	page, err := svc.List(context.Background(), "trp_test", logsheet.ListQuery{Page: 4})
	require.NoError(t, err)

	assert.Empty(t, page.Items)
	assert.Equal(t, 4, page.Meta.Page)
	assert.Equal(t, 3, page.Meta.TotalPages, "meta lets the client re-clamp its page")
}

func TestServiceList_FilterThenPaginate(t *testing.T) {
	// 9 logs in January plus 3 in February
	logs := seededLogs(9)
	for i := 0; i < 3; i++ {
		logs = append(logs, logsheet.DailyLog{
			ID:     fmt.Sprintf("log_feb_%d", i),
			TripID: "trp_test",
			Date:   fmt.Sprintf("2026-02-%02d", i+1),
		})
	}
	svc := newTestService(t, logs)

	page, err := svc.List(context.Background(), "trp_test", logsheet.ListQuery{
		DatePattern: "2026-02",
	})
	require.NoError(t, err)

	assert.Len(t, page.Items, 3)
	assert.Equal(t, 1, page.Meta.TotalPages, "pagination applies to the filtered set")
	assert.Equal(t, 3, page.Meta.TotalCount)
}

func TestServiceList_TimelineDerived(t *testing.T) {
	svc := newTestService(t, seededLogs(1))

	page, err := svc.List(context.Background(), "trp_test", logsheet.ListQuery{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	timeline := page.Items[0].Timeline
	require.Len(t, timeline, 3)
	assert.Equal(t, 0, timeline[0].Level)
	assert.Equal(t, 2, timeline[1].Level)
	assert.Equal(t, 3, timeline[2].Level)
	assert.Equal(t, "on_duty", timeline[2].Status)
}

func TestServiceList_UnknownTrip(t *testing.T) {
	svc := newTestService(t, nil)

	page, err := svc.List(context.Background(), "trp_other", logsheet.ListQuery{})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.Meta.TotalPages)
	assert.Zero(t, page.Meta.TotalCount)
}
