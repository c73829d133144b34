// Package api provides the HTTP API for HaulSight.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/haulsight/haulsight/internal/api/handler"
	"github.com/haulsight/haulsight/internal/api/middleware"
	"github.com/haulsight/haulsight/internal/auth"
	"github.com/haulsight/haulsight/internal/logsheet"
	"github.com/haulsight/haulsight/internal/routegeom"
	"github.com/haulsight/haulsight/internal/trip"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version      string
	BuildTime    string
	Logger       zerolog.Logger
	ServiceName  string
	Metrics      *middleware.Metrics
	JWTService   *auth.JWTService
	TripService  *trip.Service
	LogService   *logsheet.Service
	RouteService *routegeom.Service
	DB           handler.Pinger
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "haulsight-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)
	r.Use(middleware.ContentTypeJSON)      // JSON content type
	r.Use(middleware.RequireJSON)          // Reject non-JSON bodies

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.DB)
	tripHandler := handler.NewTripHandler(cfg.TripService)
	logsHandler := handler.NewLogsHandler(cfg.TripService, cfg.LogService)
	routeHandler := handler.NewRouteHandler(cfg.TripService, cfg.RouteService)

	// Create auth middleware
	authMiddleware := middleware.Auth(cfg.JWTService)

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
		})

		// Trip endpoints (authenticated) - user-based rate limiting
		r.Route("/trips", func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(middleware.RateLimitByUser(middleware.StandardRateLimit))

			r.Get("/", tripHandler.ListTrips)
			// Writes enqueue a planning job, so they rate limit harder.
			r.With(middleware.RateLimitByUser(middleware.WriteRateLimit)).
				Post("/", tripHandler.CreateTrip)

			r.Route("/{tripID}", func(r chi.Router) {
				r.Get("/", tripHandler.GetTrip)
				r.With(middleware.RateLimitByUser(middleware.WriteRateLimit)).
					Patch("/", tripHandler.UpdateTrip)
				r.With(middleware.RateLimitByUser(middleware.WriteRateLimit)).
					Delete("/", tripHandler.DeleteTrip)

				r.Get("/logs", logsHandler.ListLogs)
				r.Get("/route", routeHandler.GetRoute)
			})
		})
	})

	return r
}
