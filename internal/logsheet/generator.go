package logsheet

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// HOS schedule constants for property-carrying drivers.
const (
	maxDailyDrivingHours = 11
	// preTripHours and postTripHours are on-duty-not-driving time for
	// vehicle inspections at the start and end of each duty day.
	preTripHours  = 0.5
	postTripHours = 0.25
	// breakAfterDrivingHours forces a 30-minute break once cumulative
	// driving reaches 8 hours.
	breakAfterDrivingHours = 8
	breakHours             = 0.5
	// dutyStartHour is when the generated duty day begins.
	dutyStartHour = 6.0
	// maxGeneratedDays caps runaway schedules from absurd inputs.
	maxGeneratedDays = 30
)

// GenerateInput describes a planned trip to expand into daily log sheets.
type GenerateInput struct {
	TripID string
	// StartDate is the calendar day of the first log sheet.
	StartDate time.Time
	// TotalDrivingHours is the planned driving time for the whole trip.
	TotalDrivingHours float64
	// TotalMiles is the planned trip distance.
	TotalMiles float64
	// CycleHours is the rolling on-duty cycle limit (70 for 70/8, 60 for 60/7).
	CycleHours float64
	// CycleUsedHours is on-duty time already consumed in the current cycle.
	CycleUsedHours float64
}

// Generate expands a planned trip into per-day log sheets. Each day respects
// the 11-hour driving limit, takes a 30-minute break after 8 hours of
// driving, and keeps driving + on-duty + off-duty totals at exactly 24.
// When the duty cycle is exhausted a full off-duty restart day is inserted.
// Samples are emitted in increasing hour order.
func Generate(in GenerateInput) []DailyLog {
	if in.TotalDrivingHours <= 0 {
		return nil
	}

	cycleHours := in.CycleHours
	if cycleHours <= 0 {
		cycleHours = 70
	}

	remaining := in.TotalDrivingHours
	cycleLeft := cycleHours - in.CycleUsedHours

	var logs []DailyLog
	date := in.StartDate

	for day := 0; day < maxGeneratedDays && remaining > 0; day++ {
		if cycleLeft < 1+preTripHours+postTripHours {
			// 34-hour restart approximated as a full off-duty day.
			logs = append(logs, restartDay(in.TripID, date))
			cycleLeft = cycleHours
			date = date.AddDate(0, 0, 1)
			continue
		}

		driveToday := math.Min(maxDailyDrivingHours, remaining)
		driveToday = math.Min(driveToday, cycleLeft-preTripHours-postTripHours)

		logs = append(logs, dutyDay(in, date, driveToday))

		remaining -= driveToday
		cycleLeft -= driveToday + preTripHours + postTripHours
		date = date.AddDate(0, 0, 1)
	}

	return logs
}

// dutyDay builds a single driving day starting at dutyStartHour.
func dutyDay(in GenerateInput, date time.Time, driveToday float64) DailyLog {
	samples := []StatusSample{
		{Hour: 0, Status: StatusOffDuty},
		{Hour: dutyStartHour, Status: StatusOnDuty},
		{Hour: dutyStartHour + preTripHours, Status: StatusDriving},
	}

	wheel := dutyStartHour + preTripHours
	if driveToday > breakAfterDrivingHours {
		breakAt := wheel + breakAfterDrivingHours
		samples = append(samples,
			StatusSample{Hour: round2(breakAt), Status: StatusOffDuty},
			StatusSample{Hour: round2(breakAt + breakHours), Status: StatusDriving},
		)
		wheel = breakAt + breakHours + (driveToday - breakAfterDrivingHours)
	} else {
		wheel += driveToday
	}

	samples = append(samples,
		StatusSample{Hour: round2(wheel), Status: StatusOnDuty},
		StatusSample{Hour: round2(wheel + postTripHours), Status: StatusOffDuty},
	)

	onDuty := preTripHours + postTripHours
	miles := 0.0
	if in.TotalDrivingHours > 0 {
		miles = in.TotalMiles * driveToday / in.TotalDrivingHours
	}

	return DailyLog{
		ID:           "log_" + uuid.New().String()[:22],
		TripID:       in.TripID,
		Date:         date.Format("2006-01-02"),
		MilesToday:   round2(miles),
		DrivingHours: round2(driveToday),
		OnDutyHours:  round2(onDuty),
		OffDutyHours: round2(24 - driveToday - onDuty),
		GridPlotData: samples,
	}
}

// restartDay builds a full off-duty day used to reset the cycle.
func restartDay(tripID string, date time.Time) DailyLog {
	return DailyLog{
		ID:           "log_" + uuid.New().String()[:22],
		TripID:       tripID,
		Date:         date.Format("2006-01-02"),
		OffDutyHours: 24,
		GridPlotData: []StatusSample{{Hour: 0, Status: StatusOffDuty}},
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
