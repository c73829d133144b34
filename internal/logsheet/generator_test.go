package logsheet_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haulsight/haulsight/internal/logsheet"
)

func TestGenerate_SingleDay(t *testing.T) {
	logs := logsheet.Generate(logsheet.GenerateInput{
		TripID:            "trp_test",
		StartDate:         time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		TotalDrivingHours: 5,
		TotalMiles:        275,
		CycleHours:        70,
	})

	require.Len(t, logs, 1)
	day := logs[0]
	assert.Equal(t, "2026-03-02", day.Date)
	assert.Equal(t, 5.0, day.DrivingHours)
	assert.Equal(t, 275.0, day.MilesToday)

	// driving + on-duty + off-duty always totals 24
	assert.InDelta(t, 24.0, day.DrivingHours+day.OnDutyHours+day.OffDutyHours, 1e-9)

	// Short day: no 30-minute break sample pair
	require.NoError(t, logsheet.CheckOrdered(day.GridPlotData))
	assert.Len(t, day.GridPlotData, 5)
}

func TestGenerate_LongDayInsertsBreak(t *testing.T) {
	logs := logsheet.Generate(logsheet.GenerateInput{
		TripID:            "trp_test",
		StartDate:         time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		TotalDrivingHours: 10,
		TotalMiles:        550,
		CycleHours:        70,
	})

	require.Len(t, logs, 1)
	samples := logs[0].GridPlotData
	require.NoError(t, logsheet.CheckOrdered(samples))

	// off -> on -> driving -> break off -> driving -> on -> off
	require.Len(t, samples, 7)
	assert.Equal(t, logsheet.StatusOffDuty, samples[3].Status)
	assert.InDelta(t, 14.5, samples[3].Hour, 1e-9, "break starts after 8 hours at the wheel")
	assert.Equal(t, logsheet.StatusDriving, samples[4].Status)
	assert.InDelta(t, 15.0, samples[4].Hour, 1e-9)
}

func TestGenerate_DailyDrivingCap(t *testing.T) {
	logs := logsheet.Generate(logsheet.GenerateInput{
		TripID:            "trp_test",
		StartDate:         time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		TotalDrivingHours: 25,
		TotalMiles:        1375,
		CycleHours:        70,
	})

	require.Len(t, logs, 3)
	assert.Equal(t, 11.0, logs[0].DrivingHours)
	assert.Equal(t, 11.0, logs[1].DrivingHours)
	assert.Equal(t, 3.0, logs[2].DrivingHours)

	totalMiles := 0.0
	for _, l := range logs {
		assert.InDelta(t, 24.0, l.DrivingHours+l.OnDutyHours+l.OffDutyHours, 1e-9)
		require.NoError(t, logsheet.CheckOrdered(l.GridPlotData))
		totalMiles += l.MilesToday
	}
	assert.InDelta(t, 1375.0, totalMiles, 0.1)
}

func TestGenerate_ConsecutiveDates(t *testing.T) {
	logs := logsheet.Generate(logsheet.GenerateInput{
		TripID:            "trp_test",
		StartDate:         time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC),
		TotalDrivingHours: 22,
		TotalMiles:        1200,
		CycleHours:        70,
	})

	require.Len(t, logs, 2)
	assert.Equal(t, "2026-02-27", logs[0].Date)
	assert.Equal(t, "2026-02-28", logs[1].Date)
}

func TestGenerate_ExhaustedCycleInsertsRestart(t *testing.T) {
	logs := logsheet.Generate(logsheet.GenerateInput{
		TripID:            "trp_test",
		StartDate:         time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		TotalDrivingHours: 20,
		TotalMiles:        1100,
		CycleHours:        70,
		CycleUsedHours:    69,
	})

	require.NotEmpty(t, logs)
	first := logs[0]
	assert.Equal(t, 24.0, first.OffDutyHours, "no cycle headroom forces a restart day first")
	assert.Zero(t, first.DrivingHours)

	// Driving resumes after the restart
	require.Greater(t, len(logs), 1)
	assert.Equal(t, 11.0, logs[1].DrivingHours)
}

func TestGenerate_NoDriving(t *testing.T) {
	assert.Nil(t, logsheet.Generate(logsheet.GenerateInput{
		TripID:            "trp_test",
		StartDate:         time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		TotalDrivingHours: 0,
	}))
}
