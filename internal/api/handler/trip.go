package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/haulsight/haulsight/internal/api/middleware"
	"github.com/haulsight/haulsight/internal/api/models"
	"github.com/haulsight/haulsight/internal/api/response"
	"github.com/haulsight/haulsight/internal/trip"
)

// TripHandler handles trip management endpoints.
type TripHandler struct {
	tripService *trip.Service
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(tripService *trip.Service) *TripHandler {
	return &TripHandler{tripService: tripService}
}

// ListTrips handles GET /v1/trips - list the user's trips, newest first.
func (h *TripHandler) ListTrips(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "user not authenticated")
		return
	}

	trips, err := h.tripService.List(r.Context(), userID)
	if err != nil {
		response.InternalError(w, r, "internal server error")
		return
	}

	response.JSON(w, r, http.StatusOK, trips)
}

// GetTrip handles GET /v1/trips/{tripID}.
func (h *TripHandler) GetTrip(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "user not authenticated")
		return
	}

	t, err := h.tripService.Get(r.Context(), userID, chi.URLParam(r, "tripID"))
	if err != nil {
		if errors.Is(err, trip.ErrTripNotFound) {
			response.NotFound(w, r, "trip")
			return
		}
		response.InternalError(w, r, "internal server error")
		return
	}

	response.JSON(w, r, http.StatusOK, t)
}

// CreateTrip handles POST /v1/trips - create a trip and enqueue planning.
func (h *TripHandler) CreateTrip(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "user not authenticated")
		return
	}

	var input models.TripCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	t, err := h.tripService.Create(r.Context(), userID, &input)
	if err != nil {
		if ve, ok := trip.IsValidation(err); ok {
			response.BadRequest(w, r, "validation failed", ve.Errors)
			return
		}
		response.InternalError(w, r, "internal server error")
		return
	}

	response.Created(w, r, "/v1/trips/"+t.ID, t)
}

// UpdateTrip handles PATCH /v1/trips/{tripID} - update trip inputs and
// enqueue a replan.
func (h *TripHandler) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "user not authenticated")
		return
	}

	var input models.TripUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	t, err := h.tripService.Update(r.Context(), userID, chi.URLParam(r, "tripID"), &input)
	if err != nil {
		if ve, ok := trip.IsValidation(err); ok {
			response.BadRequest(w, r, "validation failed", ve.Errors)
			return
		}
		if errors.Is(err, trip.ErrTripNotFound) {
			response.NotFound(w, r, "trip")
			return
		}
		response.InternalError(w, r, "internal server error")
		return
	}

	response.JSON(w, r, http.StatusOK, t)
}

// DeleteTrip handles DELETE /v1/trips/{tripID}.
func (h *TripHandler) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "user not authenticated")
		return
	}

	if err := h.tripService.Delete(r.Context(), userID, chi.URLParam(r, "tripID")); err != nil {
		if errors.Is(err, trip.ErrTripNotFound) {
			response.NotFound(w, r, "trip")
			return
		}
		response.InternalError(w, r, "internal server error")
		return
	}

	response.NoContent(w, r)
}
