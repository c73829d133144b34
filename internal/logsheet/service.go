package logsheet

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/haulsight/haulsight/internal/api/models"
)

// DefaultPageSize matches the three log sheets the viewer shows per page.
const DefaultPageSize = 3

// ListQuery selects and pages the log sheets of a trip.
type ListQuery struct {
	// DatePattern filters logs whose date contains the pattern. Empty keeps all.
	DatePattern string
	// Page is 1-indexed. Values below 1 are treated as 1.
	Page int
	// PageSize defaults to DefaultPageSize when not positive.
	PageSize int
}

// Service provides log sheet views.
type Service struct {
	repo   Repository
	logger zerolog.Logger
}

// NewService creates a new log sheet service.
func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List returns the filtered, paginated log sheets of a trip with their
// derived timelines. Pagination applies to the filtered set; a page past the
// filtered last page yields an empty item list with accurate meta so the
// caller can re-clamp its page selection.
func (s *Service) List(ctx context.Context, tripID string, q ListQuery) (*models.PagedLogSheets, error) {
	logs, err := s.repo.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	pageSize := q.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	page := q.Page
	if page < 1 {
		page = 1
	}

	filtered := Filter(logs, q.DatePattern)
	pageLogs, totalPages := Paginate(filtered, pageSize, page)

	items := make([]models.LogSheet, 0, len(pageLogs))
	for _, l := range pageLogs {
		items = append(items, s.toAPILogSheet(l))
	}

	return &models.PagedLogSheets{
		Items: items,
		Meta: models.LogPageMeta{
			Page:       page,
			PageSize:   pageSize,
			TotalPages: totalPages,
			TotalCount: len(filtered),
		},
	}, nil
}

// toAPILogSheet converts a domain DailyLog to its API form, deriving the
// stepped timeline. Out-of-order grid data is an upstream defect: it is
// logged and the timeline is still rendered in the order given.
func (s *Service) toAPILogSheet(l DailyLog) models.LogSheet {
	if err := CheckOrdered(l.GridPlotData); err != nil {
		s.logger.Warn().
			Err(err).
			Str("trip_id", l.TripID).
			Str("date", l.Date).
			Msg("log sheet grid data out of order")
	}

	sheet := models.LogSheet{
		ID:           l.ID,
		Date:         l.Date,
		MilesToday:   l.MilesToday,
		DrivingHours: l.DrivingHours,
		OnDutyHours:  l.OnDutyHours,
		OffDutyHours: l.OffDutyHours,
	}

	points := BuildTimeline(l.GridPlotData)
	if len(points) > 0 {
		sheet.Timeline = make([]models.TimelinePoint, len(points))
		for i, p := range points {
			sheet.Timeline[i] = models.TimelinePoint{
				Hour:   p.Hour,
				Level:  p.Level,
				Status: string(p.Status),
			}
		}
	}

	return sheet
}
