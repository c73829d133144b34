package models

// RouteView is the display-ready route geometry for a trip. When a trip has
// no drawable route (never planned, or the stored geometry failed to decode)
// Available is false and every other field is empty; that state is a valid
// response, not an error.
type RouteView struct {
	Available   bool         `json:"available"`
	Coordinates []LatLon     `json:"coordinates,omitempty"`
	Bounds      *Bounds      `json:"bounds,omitempty"`
	Start       *Marker      `json:"start,omitempty"`
	End         *Marker      `json:"end,omitempty"`
	RestStops   []StopMarker `json:"rest_stops,omitempty"`
	FuelStops   []StopMarker `json:"fuel_stops,omitempty"`
	Summary     *TripSummary `json:"summary,omitempty"`
}

// Bounds is a padded axis-aligned bounding box for fitting a map viewport.
type Bounds struct {
	MinLat float64 `json:"minLat"`
	MinLon float64 `json:"minLon"`
	MaxLat float64 `json:"maxLat"`
	MaxLon float64 `json:"maxLon"`
}

// Marker is a labeled endpoint on the route.
type Marker struct {
	Coordinates LatLon `json:"coordinates"`
	Label       string `json:"label"`
}

// StopMarker is a rest or fuel stop along the route.
type StopMarker struct {
	Coordinates LatLon `json:"coordinates"`
	Label       string `json:"label"`
}

// TripSummary carries derived route metrics. Fields absent from the source
// trip are omitted rather than zero-filled.
type TripSummary struct {
	DistanceMiles *float64 `json:"distance_miles,omitempty"`
	DurationHours *float64 `json:"duration_hours,omitempty"`
	AvgSpeedMph   *float64 `json:"avg_speed_mph,omitempty"`
}
