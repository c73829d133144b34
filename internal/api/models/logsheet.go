package models

// LogSheet is one daily Hours-of-Service record with its derived timeline.
type LogSheet struct {
	ID           string  `json:"id"`
	Date         string  `json:"date"`
	MilesToday   float64 `json:"miles_today"`
	DrivingHours float64 `json:"driving_hours"`
	OnDutyHours  float64 `json:"on_duty_hours"`
	OffDutyHours float64 `json:"off_duty_hours"`

	// Timeline is the stepped duty-status series for charting. Empty when
	// the log has no grid data; the numeric summary above is still valid.
	// Charting surfaces bind it with X-domain [0,24] and Y-domain [0,3].
	Timeline []TimelinePoint `json:"timeline,omitempty"`
}

// TimelinePoint is one step of a duty-status timeline. The level holds from
// Hour until the next point's hour.
type TimelinePoint struct {
	Hour   float64 `json:"hour"`
	Level  int     `json:"level"`
	Status string  `json:"status"`
}

// LogPageMeta carries pagination state for a log sheet listing.
type LogPageMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
	TotalCount int `json:"totalCount"`
}

// PagedLogSheets is the response body for listing log sheets.
type PagedLogSheets struct {
	Items []LogSheet  `json:"items"`
	Meta  LogPageMeta `json:"meta"`
}
