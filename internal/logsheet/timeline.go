package logsheet

import (
	"fmt"
	"strings"
)

// Filter returns the logs whose date contains pattern as a substring. An
// empty pattern returns the input unchanged. The input slice is never
// mutated and the relative order of matches is preserved.
func Filter(logs []DailyLog, pattern string) []DailyLog {
	if pattern == "" {
		return logs
	}

	matched := make([]DailyLog, 0, len(logs))
	for _, l := range logs {
		if strings.Contains(l.Date, pattern) {
			matched = append(matched, l)
		}
	}
	return matched
}

// Paginate slices logs into the requested 1-indexed page. totalPages is
// ceil(len(logs)/pageSize) with a minimum of 1 even for an empty input.
// An out-of-range page yields an empty slice; that is a defined outcome,
// not an error, so callers can keep a page selection across filter changes.
func Paginate(logs []DailyLog, pageSize, page int) ([]DailyLog, int) {
	if pageSize < 1 {
		pageSize = 1
	}

	totalPages := (len(logs) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	start := (page - 1) * pageSize
	if page < 1 || start >= len(logs) {
		return nil, totalPages
	}

	end := start + pageSize
	if end > len(logs) {
		end = len(logs)
	}
	return logs[start:end], totalPages
}

// BuildTimeline maps an ordered status sample sequence to stepped timeline
// points. Output length and order match the input; every level is the
// sample's chart level (unknown statuses fall back to level 0). The caller
// renders the result with step-after interpolation: a duty status holds
// until the next sample explicitly changes it.
func BuildTimeline(samples []StatusSample) []TimelinePoint {
	if len(samples) == 0 {
		return nil
	}

	points := make([]TimelinePoint, len(samples))
	for i, s := range samples {
		level := LevelOf(s.Status)
		points[i] = TimelinePoint{
			Hour:   s.Hour,
			Level:  level,
			Status: LevelLabel(level),
		}
	}
	return points
}

// CheckOrdered reports whether samples are non-decreasing in hour and within
// [0, 24). Out-of-order input is a defect in upstream log computation; it is
// surfaced as an error for logging, never silently reordered.
func CheckOrdered(samples []StatusSample) error {
	prev := 0.0
	for i, s := range samples {
		if s.Hour < 0 || s.Hour >= 24 {
			return fmt.Errorf("sample %d: hour %v outside [0, 24)", i, s.Hour)
		}
		if s.Hour < prev {
			return fmt.Errorf("sample %d: hour %v before previous sample at %v", i, s.Hour, prev)
		}
		prev = s.Hour
	}
	return nil
}
