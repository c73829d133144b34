package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/haulsight/haulsight/internal/api/middleware"
	"github.com/haulsight/haulsight/internal/api/response"
	"github.com/haulsight/haulsight/internal/routegeom"
	"github.com/haulsight/haulsight/internal/trip"
)

// RouteHandler handles route geometry endpoints.
type RouteHandler struct {
	tripService  *trip.Service
	routeService *routegeom.Service
}

// NewRouteHandler creates a new RouteHandler.
func NewRouteHandler(tripService *trip.Service, routeService *routegeom.Service) *RouteHandler {
	return &RouteHandler{tripService: tripService, routeService: routeService}
}

// GetRoute handles GET /v1/trips/{tripID}/route - the drawable route view
// of a trip. A trip without a usable route still returns 200 with
// available=false so the client can render its fallback state.
func (h *RouteHandler) GetRoute(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "user not authenticated")
		return
	}

	t, err := h.tripService.GetDomain(r.Context(), userID, chi.URLParam(r, "tripID"))
	if err != nil {
		if errors.Is(err, trip.ErrTripNotFound) {
			response.NotFound(w, r, "trip")
			return
		}
		response.InternalError(w, r, "internal server error")
		return
	}

	view := h.routeService.BuildView(t.Route())
	response.JSON(w, r, http.StatusOK, view)
}
