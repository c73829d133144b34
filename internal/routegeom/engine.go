package routegeom

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/haulsight/haulsight/internal/api/models"
	"github.com/haulsight/haulsight/pkg/polyline"
)

// BoundsPaddingDegrees is the fixed visual padding added on every side of
// the route bounding box so markers near the edge stay visible after a map
// fits the viewport.
const BoundsPaddingDegrees = 0.05

// Decode turns a tagged route source into display-order (lat, lon)
// coordinates. Decoding is fail-closed: malformed input yields nil
// coordinates and a diagnostic error, never a truncated path. A zero source
// decodes to nil with no error.
func Decode(src Source) ([]polyline.Coordinate, error) {
	switch src.Kind {
	case SourceNone:
		return nil, nil
	case SourceEncoded:
		coords, err := polyline.Decode(src.Encoded)
		if err != nil {
			return nil, fmt.Errorf("decode route polyline: %w", err)
		}
		return coords, nil
	case SourcePairs:
		coords := make([]polyline.Coordinate, 0, len(src.Pairs))
		for i, pair := range src.Pairs {
			if len(pair) < 2 {
				return nil, fmt.Errorf("%w: pair %d has %d elements", ErrUnknownShape, i, len(pair))
			}
			// Stored pairs are GeoJSON-style [lon, lat].
			coords = append(coords, polyline.Coordinate{Lat: pair[1], Lon: pair[0]})
		}
		return coords, nil
	default:
		return nil, fmt.Errorf("%w: kind %d", ErrUnknownShape, src.Kind)
	}
}

// ComputeBounds returns the minimal bounding box containing all coordinates,
// expanded by BoundsPaddingDegrees. Returns false when coordinates is empty.
func ComputeBounds(coords []polyline.Coordinate) (Bounds, bool) {
	if len(coords) == 0 {
		return Bounds{}, false
	}

	b := Bounds{
		MinLat: coords[0].Lat,
		MaxLat: coords[0].Lat,
		MinLon: coords[0].Lon,
		MaxLon: coords[0].Lon,
	}
	for _, c := range coords[1:] {
		if c.Lat < b.MinLat {
			b.MinLat = c.Lat
		}
		if c.Lat > b.MaxLat {
			b.MaxLat = c.Lat
		}
		if c.Lon < b.MinLon {
			b.MinLon = c.Lon
		}
		if c.Lon > b.MaxLon {
			b.MaxLon = c.Lon
		}
	}

	b.MinLat -= BoundsPaddingDegrees
	b.MaxLat += BoundsPaddingDegrees
	b.MinLon -= BoundsPaddingDegrees
	b.MaxLon += BoundsPaddingDegrees
	return b, true
}

// ClassifyEndpoints labels the first coordinate as the pickup marker and the
// last as the dropoff marker. With a single coordinate both markers
// coincide. Requires at least one coordinate.
func ClassifyEndpoints(coords []polyline.Coordinate, pickupLocation, dropoffLocation string) (Marker, Marker, error) {
	if len(coords) == 0 {
		return Marker{}, Marker{}, ErrNoCoordinates
	}

	start := Marker{
		Coordinate: coords[0],
		Label:      CapitalizeWords(pickupLocation),
	}
	end := Marker{
		Coordinate: coords[len(coords)-1],
		Label:      CapitalizeWords(dropoffLocation),
	}
	return start, end, nil
}

// BuildStops flips raw [lon, lat] stops into display (lat, lon) markers and
// assigns 1-indexed default labels when a stop has no name. Stops without a
// usable coordinate pair are skipped.
func BuildStops(raw []RawStop, kind StopKind) []Marker {
	if len(raw) == 0 {
		return nil
	}

	stops := make([]Marker, 0, len(raw))
	for _, s := range raw {
		if len(s.Coords) < 2 {
			continue
		}

		// Number by rendered position so skipped stops leave no gaps.
		label := s.Name
		if label == "" {
			switch kind {
			case FuelStop:
				label = fmt.Sprintf("Fuel stop %d", len(stops)+1)
			default:
				label = fmt.Sprintf("Stop %d", len(stops)+1)
			}
		}

		stops = append(stops, Marker{
			Coordinate: polyline.Coordinate{Lat: s.Coords[1], Lon: s.Coords[0]},
			Label:      label,
		})
	}
	return stops
}

// Summarize converts stored trip metrics into display units. Duration is
// reported in hours; fields missing on the trip stay nil so the view never
// implies false precision.
func Summarize(tr TripRoute) Summary {
	var summary Summary
	if tr.DistanceMiles != nil {
		v := *tr.DistanceMiles
		summary.DistanceMiles = &v
	}
	if tr.DurationSeconds != nil {
		hours := *tr.DurationSeconds / 3600
		summary.DurationHours = &hours
	}
	if tr.AvgSpeedMph != nil {
		v := *tr.AvgSpeedMph
		summary.AvgSpeedMph = &v
	}
	return summary
}

// CapitalizeWords upper-cases the first letter of every word, leaving the
// rest of each word untouched. This is display normalization only, not
// geocoding.
func CapitalizeWords(s string) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))
	startOfWord := true
	for _, r := range s {
		if startOfWord && r >= 'a' && r <= 'z' {
			b.WriteRune(r - ('a' - 'A'))
		} else {
			b.WriteRune(r)
		}
		startOfWord = r == ' ' || r == '-' || r == '\t'
	}
	return b.String()
}

// Service assembles route views for the API.
type Service struct {
	logger zerolog.Logger
}

// NewService creates a new route geometry service.
func NewService(logger zerolog.Logger) *Service {
	return &Service{logger: logger}
}

// BuildView derives the full display-ready route view for a trip. A trip
// without a drawable route (no stored geometry, or geometry that fails to
// decode) yields the empty view with Available=false; decode failures are
// logged as non-fatal, never surfaced as errors.
func (s *Service) BuildView(tr TripRoute) models.RouteView {
	coords, err := Decode(tr.Source)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("pickup", tr.PickupLocation).
			Str("dropoff", tr.DropoffLocation).
			Msg("route geometry failed to decode, serving empty route")
		return models.RouteView{Available: false}
	}
	if len(coords) == 0 {
		return models.RouteView{Available: false}
	}

	view := models.RouteView{
		Available:   true,
		Coordinates: toLatLons(coords),
		RestStops:   toStopMarkers(BuildStops(tr.RestStops, RestStop)),
		FuelStops:   toStopMarkers(BuildStops(tr.FuelStops, FuelStop)),
	}

	if b, ok := ComputeBounds(coords); ok {
		view.Bounds = &models.Bounds{
			MinLat: b.MinLat,
			MinLon: b.MinLon,
			MaxLat: b.MaxLat,
			MaxLon: b.MaxLon,
		}
	}

	start, end, err := ClassifyEndpoints(coords, tr.PickupLocation, tr.DropoffLocation)
	if err == nil {
		view.Start = &models.Marker{
			Coordinates: models.LatLon{start.Coordinate.Lat, start.Coordinate.Lon},
			Label:       start.Label,
		}
		view.End = &models.Marker{
			Coordinates: models.LatLon{end.Coordinate.Lat, end.Coordinate.Lon},
			Label:       end.Label,
		}
	}

	summary := Summarize(tr)
	if summary.DistanceMiles != nil || summary.DurationHours != nil || summary.AvgSpeedMph != nil {
		view.Summary = &models.TripSummary{
			DistanceMiles: summary.DistanceMiles,
			DurationHours: summary.DurationHours,
			AvgSpeedMph:   summary.AvgSpeedMph,
		}
	}

	return view
}

func toLatLons(coords []polyline.Coordinate) []models.LatLon {
	out := make([]models.LatLon, len(coords))
	for i, c := range coords {
		out[i] = models.LatLon{c.Lat, c.Lon}
	}
	return out
}

func toStopMarkers(stops []Marker) []models.StopMarker {
	if len(stops) == 0 {
		return nil
	}
	out := make([]models.StopMarker, len(stops))
	for i, s := range stops {
		out[i] = models.StopMarker{
			Coordinates: models.LatLon{s.Coordinate.Lat, s.Coordinate.Lon},
			Label:       s.Label,
		}
	}
	return out
}
