// Package logsheet provides daily Hours-of-Service log sheets and the
// duty-status timeline derived from them.
package logsheet

import (
	"time"
)

// Status is a duty status recorded on an ELD grid.
type Status string

// The four FMCSA duty statuses.
const (
	StatusOffDuty Status = "off_duty"
	StatusSleeper Status = "sleeper"
	StatusDriving Status = "driving"
	StatusOnDuty  Status = "on_duty"
)

// statusLevels is the closed status-to-level mapping used for chart placement.
// The order is a display convention (vertical axis position), not a severity
// ranking, and must stay fixed: off_duty=0, sleeper=1, driving=2, on_duty=3.
var statusLevels = map[Status]int{
	StatusOffDuty: 0,
	StatusSleeper: 1,
	StatusDriving: 2,
	StatusOnDuty:  3,
}

// levelNames is the inverse of statusLevels.
var levelNames = map[int]Status{
	0: StatusOffDuty,
	1: StatusSleeper,
	2: StatusDriving,
	3: StatusOnDuty,
}

// LevelOf maps a duty status to its chart level. Unknown statuses map to
// level 0 as a defined fallback, never an error.
func LevelOf(s Status) int {
	if level, ok := statusLevels[s]; ok {
		return level
	}
	return 0
}

// LevelLabel is the inverse lookup: the status name for a chart level, or the
// empty string when no status maps to the level.
func LevelLabel(level int) Status {
	return levelNames[level]
}

// StatusSample is one duty-status observation on a log sheet grid.
type StatusSample struct {
	// Hour is the hour of day in [0, 24).
	Hour float64 `json:"hour"`
	// Status is the duty status that begins at Hour.
	Status Status `json:"status"`
}

// DailyLog is one calendar day of duty record for a trip. Log sheets are
// immutable once computed; engines only derive views from them.
type DailyLog struct {
	ID     string
	TripID string
	// Date is the calendar day in YYYY-MM-DD form, unique within a trip.
	Date         string
	MilesToday   float64
	DrivingHours float64
	OnDutyHours  float64
	OffDutyHours float64
	// GridPlotData is the ordered status sample sequence, possibly empty.
	// Samples must be non-decreasing in Hour.
	GridPlotData []StatusSample
	CreatedAt    time.Time
}

// TimelinePoint is one point of a stepped duty-status timeline. The level
// holds from Hour until the next point's hour (step-after interpolation).
type TimelinePoint struct {
	Hour   float64
	Level  int
	Status Status
}
