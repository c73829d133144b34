package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

const (
	// ProviderName identifies this planning provider.
	ProviderName = "openrouteservice"

	// DefaultBaseURL is the OpenRouteService API base URL.
	DefaultBaseURL = "https://api.openrouteservice.org"

	// drivingProfile is the heavy goods vehicle routing profile.
	drivingProfile = "driving-hgv"

	// DefaultTimeout is the default request timeout.
	DefaultTimeout = 10 * time.Second
)

// ClientConfig holds configuration for the OpenRouteService client.
type ClientConfig struct {
	// APIKey is the ORS API key (required).
	APIKey string

	// BaseURL is the API base URL (optional, defaults to the public API).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, a resilient client with defaults is used.
	HTTPClient HTTPDoer

	// Timeout is the request timeout (optional, defaults to 10s).
	Timeout time.Duration

	// Metrics records per-call outcomes (optional).
	Metrics Metrics

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is an OpenRouteService planning client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient HTTPDoer
	metrics    Metrics
	logger     zerolog.Logger
}

// NewClient creates a new OpenRouteService client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = DefaultTimeout
		}
		httpClient = NewResilientClient(ResilientClientConfig{
			Name:    ProviderName,
			Timeout: timeout,
		})
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: httpClient,
		metrics:    cfg.Metrics,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// PlanRoute geocodes the three locations and computes a driving route
// current -> pickup -> dropoff.
func (c *Client) PlanRoute(ctx context.Context, req PlanRequest) (*PlanResult, error) {
	waypoints := make([][]float64, 0, 3)
	for _, loc := range []string{req.CurrentLocation, req.PickupLocation, req.DropoffLocation} {
		lon, lat, err := c.geocode(ctx, loc)
		if err != nil {
			return nil, err
		}
		waypoints = append(waypoints, []float64{lon, lat})
	}

	return c.directions(ctx, waypoints)
}

// geocode resolves a free-form location name to a (lon, lat) pair.
func (c *Client) geocode(ctx context.Context, text string) (lon, lat float64, err error) {
	defer c.record("geocode", time.Now(), &err)

	endpoint := fmt.Sprintf("%s/geocode/search?%s", c.baseURL, url.Values{
		"text": {text},
		"size": {"1"},
	}.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, 0, err
	}
	httpReq.Header.Set("Authorization", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return 0, 0, c.providerError("GEOCODE_FAILED", "geocode request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, c.statusError(resp, "geocode")
	}

	var body geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, 0, c.providerError("GEOCODE_DECODE", "failed to decode geocode response", err)
	}

	if len(body.Features) == 0 || len(body.Features[0].Geometry.Coordinates) < 2 {
		return 0, 0, &Error{
			Provider: ProviderName,
			Code:     "NO_MATCH",
			Message:  fmt.Sprintf("no geocode match for %q", text),
			Err:      ErrLocationNotFound,
		}
	}

	coords := body.Features[0].Geometry.Coordinates
	return coords[0], coords[1], nil
}

// directions computes a single route through the given [lon, lat] waypoints.
func (c *Client) directions(ctx context.Context, waypoints [][]float64) (result *PlanResult, err error) {
	defer c.record("directions", time.Now(), &err)

	orsReq := directionsRequest{
		Coordinates: waypoints,
		Units:       "m",
		Geometry:    true,
	}

	payload, err := json.Marshal(orsReq)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/v2/directions/%s", c.baseURL, drivingProfile)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, c.providerError("DIRECTIONS_FAILED", "directions request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError(resp, "directions")
	}

	var body directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, c.providerError("DIRECTIONS_DECODE", "failed to decode directions response", err)
	}

	if len(body.Routes) == 0 {
		return nil, &Error{
			Provider: ProviderName,
			Code:     "NO_ROUTE",
			Message:  "provider returned no routes",
			Err:      ErrNoRouteFound,
		}
	}

	route := body.Routes[0]
	c.logger.Debug().
		Float64("distance_m", route.Summary.Distance).
		Float64("duration_s", route.Summary.Duration).
		Msg("route planned")

	return &PlanResult{
		Polyline:        route.Geometry,
		DistanceMeters:  route.Summary.Distance,
		DurationSeconds: route.Summary.Duration,
	}, nil
}

// statusError maps non-200 provider responses to planner errors.
func (c *Client) statusError(resp *http.Response, op string) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	c.logger.Warn().
		Int("status", resp.StatusCode).
		Str("op", op).
		Str("body", string(snippet)).
		Msg("provider returned error status")

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return &Error{Provider: ProviderName, Code: "NO_ROUTE", Message: op + " not found", Err: ErrNoRouteFound}
	case resp.StatusCode >= 500, resp.StatusCode == http.StatusTooManyRequests:
		return &Error{Provider: ProviderName, Code: "UNAVAILABLE", Message: op + " unavailable", Err: ErrProviderUnavailable}
	default:
		return &Error{
			Provider: ProviderName,
			Code:     "BAD_REQUEST",
			Message:  fmt.Sprintf("%s rejected with status %d", op, resp.StatusCode),
			Err:      errors.New(string(snippet)),
		}
	}
}

// record reports one provider call to the configured metrics sink.
func (c *Client) record(operation string, start time.Time, err *error) {
	if c.metrics == nil {
		return
	}
	c.metrics.RecordRequest(ProviderName, operation, time.Since(start), *err)
}

func (c *Client) providerError(code, message string, err error) error {
	if errors.Is(err, ErrCircuitOpen) {
		err = ErrProviderUnavailable
	}
	return &Error{Provider: ProviderName, Code: code, Message: message, Err: err}
}

// Wire types for the ORS API.

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

type directionsRequest struct {
	Coordinates [][]float64 `json:"coordinates"`
	Units       string      `json:"units"`
	Geometry    bool        `json:"geometry"`
}

type directionsResponse struct {
	Routes []struct {
		Summary struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"summary"`
		// Geometry is the encoded polyline when geometry=true.
		Geometry string `json:"geometry"`
	} `json:"routes"`
}

var _ Provider = (*Client)(nil)
