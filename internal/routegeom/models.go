// Package routegeom derives display-ready route geometry from a trip's
// stored route plan: polyline decoding, viewport bounds, endpoint and stop
// classification, and summary metrics.
package routegeom

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/haulsight/haulsight/pkg/polyline"
)

// Engine errors.
var (
	// ErrNoCoordinates indicates an operation that requires at least one
	// route coordinate was given none.
	ErrNoCoordinates = errors.New("route has no coordinates")
	// ErrUnknownShape indicates a route source that is neither an encoded
	// polyline string nor a coordinate-pair array.
	ErrUnknownShape = errors.New("route source has unknown shape")
)

// SourceKind tags the shape of a route source.
type SourceKind int

const (
	// SourceNone means no route has been stored for the trip.
	SourceNone SourceKind = iota
	// SourceEncoded is a polyline-encoded string (precision 5).
	SourceEncoded
	// SourcePairs is a structured [[lon, lat], ...] array.
	SourcePairs
)

// Source is the tagged route-geometry input: either an encoded polyline or a
// sequence of [lon, lat] pairs. The zero value means "no route".
type Source struct {
	Kind    SourceKind
	Encoded string
	Pairs   [][]float64
}

// EncodedSource wraps a polyline string as a Source.
func EncodedSource(encoded string) Source {
	if encoded == "" {
		return Source{}
	}
	return Source{Kind: SourceEncoded, Encoded: encoded}
}

// UnmarshalJSON accepts the two wire shapes a trip record may carry for
// route_polyline: a string or an array of [lon, lat] pairs. Null yields the
// zero Source. Any other shape is an error the caller downgrades to an
// empty-route state.
func (s *Source) UnmarshalJSON(data []byte) error {
	var probe interface{}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}

	switch probe.(type) {
	case nil:
		*s = Source{}
		return nil
	case string:
		var encoded string
		if err := json.Unmarshal(data, &encoded); err != nil {
			return err
		}
		*s = EncodedSource(encoded)
		return nil
	case []interface{}:
		var pairs [][]float64
		if err := json.Unmarshal(data, &pairs); err != nil {
			return fmt.Errorf("%w: %v", ErrUnknownShape, err)
		}
		if len(pairs) == 0 {
			*s = Source{}
			return nil
		}
		*s = Source{Kind: SourcePairs, Pairs: pairs}
		return nil
	default:
		return fmt.Errorf("%w: %T", ErrUnknownShape, probe)
	}
}

// MarshalJSON writes the source back in its original wire shape.
func (s Source) MarshalJSON() ([]byte, error) {
	switch s.Kind {
	case SourceEncoded:
		return json.Marshal(s.Encoded)
	case SourcePairs:
		return json.Marshal(s.Pairs)
	default:
		return []byte("null"), nil
	}
}

// IsZero reports whether the source carries no route.
func (s Source) IsZero() bool {
	return s.Kind == SourceNone
}

// RawStop is a stop as stored on a trip record: coords in [lon, lat] order
// and an optional name.
type RawStop struct {
	Coords []float64 `json:"coords"`
	Name   string    `json:"name,omitempty"`
}

// StopKind distinguishes the default labels given to unnamed stops.
type StopKind int

const (
	// RestStop gets "Stop N" defaults.
	RestStop StopKind = iota
	// FuelStop gets "Fuel stop N" defaults.
	FuelStop
)

// Marker is a labeled point on the map.
type Marker struct {
	Coordinate polyline.Coordinate
	Label      string
}

// Bounds is a padded axis-aligned bounding box containing the route.
type Bounds struct {
	MinLat float64
	MinLon float64
	MaxLat float64
	MaxLon float64
}

// Summary carries derived trip metrics. Nil fields mean the source trip did
// not supply the underlying value; they are omitted, never zero-filled.
type Summary struct {
	DistanceMiles *float64
	DurationHours *float64
	AvgSpeedMph   *float64
}

// TripRoute is the read-only slice of a trip record the engine consumes.
type TripRoute struct {
	Source          Source
	PickupLocation  string
	DropoffLocation string
	RestStops       []RawStop
	FuelStops       []RawStop
	DistanceMiles   *float64
	DurationSeconds *float64
	AvgSpeedMph     *float64
}
