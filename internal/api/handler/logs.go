package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/haulsight/haulsight/internal/api/middleware"
	"github.com/haulsight/haulsight/internal/api/models"
	"github.com/haulsight/haulsight/internal/api/response"
	"github.com/haulsight/haulsight/internal/logsheet"
	"github.com/haulsight/haulsight/internal/trip"
)

// maxLogPageSize bounds client-chosen page sizes.
const maxLogPageSize = 31

// LogsHandler handles daily log sheet endpoints.
type LogsHandler struct {
	tripService *trip.Service
	logService  *logsheet.Service
}

// NewLogsHandler creates a new LogsHandler.
func NewLogsHandler(tripService *trip.Service, logService *logsheet.Service) *LogsHandler {
	return &LogsHandler{tripService: tripService, logService: logService}
}

// ListLogs handles GET /v1/trips/{tripID}/logs - filtered, paginated log
// sheets with their duty timelines.
//
// Query parameters:
//   - date: substring filter on the log date (e.g. "2026-01")
//   - page: 1-indexed page number
//   - pageSize: sheets per page
func (h *LogsHandler) ListLogs(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "user not authenticated")
		return
	}

	tripID := chi.URLParam(r, "tripID")
	if _, err := h.tripService.Get(r.Context(), userID, tripID); err != nil {
		if errors.Is(err, trip.ErrTripNotFound) {
			response.NotFound(w, r, "trip")
			return
		}
		response.InternalError(w, r, "internal server error")
		return
	}

	query, fieldErrors := parseLogQuery(r)
	if len(fieldErrors) > 0 {
		response.BadRequest(w, r, "validation failed", fieldErrors)
		return
	}

	page, err := h.logService.List(r.Context(), tripID, query)
	if err != nil {
		response.InternalError(w, r, "internal server error")
		return
	}

	response.JSON(w, r, http.StatusOK, page)
}

// parseLogQuery parses and validates the list query parameters.
func parseLogQuery(r *http.Request) (logsheet.ListQuery, []models.FieldError) {
	q := logsheet.ListQuery{
		DatePattern: r.URL.Query().Get("date"),
		Page:        1,
		PageSize:    logsheet.DefaultPageSize,
	}

	var fieldErrors []models.FieldError

	if raw := r.URL.Query().Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			fieldErrors = append(fieldErrors, models.FieldError{
				Field:   "page",
				Message: "must be a positive integer",
			})
		} else {
			q.Page = page
		}
	}

	if raw := r.URL.Query().Get("pageSize"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 1 || size > maxLogPageSize {
			fieldErrors = append(fieldErrors, models.FieldError{
				Field:   "pageSize",
				Message: "must be between 1 and " + strconv.Itoa(maxLogPageSize),
			})
		} else {
			q.PageSize = size
		}
	}

	return q, fieldErrors
}
