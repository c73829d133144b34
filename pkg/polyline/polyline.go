// Package polyline implements Google's encoded polyline algorithm at the
// standard precision of 5 decimal places.
// See: https://developers.google.com/maps/documentation/utilities/polylinealgorithm
package polyline

import (
	"errors"
	"fmt"
	"math"
)

// Coordinate represents a geographic point with latitude and longitude.
type Coordinate struct {
	Lat float64
	Lon float64
}

// Decoding errors.
var (
	// ErrTruncated indicates the encoding ended in the middle of a value.
	ErrTruncated = errors.New("polyline: truncated encoding")
	// ErrInvalidChar indicates a byte outside the valid encoding alphabet.
	ErrInvalidChar = errors.New("polyline: invalid character")
)

// Decode decodes a polyline-encoded string into a slice of coordinates.
// Decoding is all-or-nothing: any malformed input returns a nil slice and an
// error, never a partially decoded path.
func Decode(encoded string) ([]Coordinate, error) {
	if encoded == "" {
		return nil, nil
	}

	coords := make([]Coordinate, 0, len(encoded)/4)
	index := 0
	lat := 0
	lon := 0

	for index < len(encoded) {
		latDelta, next, err := decodeValue(encoded, index)
		if err != nil {
			return nil, err
		}
		index = next
		lat += latDelta

		if index >= len(encoded) {
			// A latitude without its longitude.
			return nil, ErrTruncated
		}

		lonDelta, next, err := decodeValue(encoded, index)
		if err != nil {
			return nil, err
		}
		index = next
		lon += lonDelta

		coords = append(coords, Coordinate{
			Lat: float64(lat) / 1e5,
			Lon: float64(lon) / 1e5,
		})
	}

	return coords, nil
}

// decodeValue decodes a single zig-zag encoded delta starting at index.
// Returns the delta, the index of the next value, and an error when the
// chunk sequence is unterminated or contains bytes outside the alphabet.
func decodeValue(encoded string, index int) (int, int, error) {
	shift := 0
	result := 0

	for {
		if index >= len(encoded) {
			return 0, index, ErrTruncated
		}
		b := int(encoded[index]) - 63
		if b < 0 || b > 0x3f {
			return 0, index, fmt.Errorf("%w: %q at offset %d", ErrInvalidChar, encoded[index], index)
		}
		index++
		result |= (b & 0x1f) << shift
		shift += 5
		if b < 0x20 {
			break
		}
	}

	if result&1 != 0 {
		return ^(result >> 1), index, nil
	}
	return result >> 1, index, nil
}

// Encode encodes a slice of coordinates into a polyline-encoded string.
func Encode(coords []Coordinate) string {
	if len(coords) == 0 {
		return ""
	}

	encoded := make([]byte, 0, len(coords)*4)
	prevLat := 0
	prevLon := 0

	for _, coord := range coords {
		lat := int(math.Round(coord.Lat * 1e5))
		lon := int(math.Round(coord.Lon * 1e5))

		encoded = encodeValue(encoded, lat-prevLat)
		encoded = encodeValue(encoded, lon-prevLon)

		prevLat = lat
		prevLon = lon
	}

	return string(encoded)
}

// encodeValue appends a single zig-zag encoded value to buf.
func encodeValue(buf []byte, value int) []byte {
	if value < 0 {
		value = ^(value << 1)
	} else {
		value <<= 1
	}

	for value >= 0x20 {
		buf = append(buf, byte((value&0x1f)|0x20)+63)
		value >>= 5
	}
	return append(buf, byte(value)+63)
}

const earthRadiusMeters = 6371000

// metersPerMile converts between the two distance units the API reports.
const metersPerMile = 1609.344

// LengthMeters returns the total length of a path in meters using the
// haversine formula.
func LengthMeters(coords []Coordinate) float64 {
	if len(coords) < 2 {
		return 0
	}

	var total float64
	for i := 1; i < len(coords); i++ {
		total += haversine(coords[i-1], coords[i])
	}
	return total
}

// LengthMiles returns the total length of a path in statute miles.
func LengthMiles(coords []Coordinate) float64 {
	return LengthMeters(coords) / metersPerMile
}

// SampleEvery returns points spaced at approximately intervalMeters along the
// path, starting at the first coordinate. The final coordinate is always
// included. Used to place rest and fuel stops along a planned route.
func SampleEvery(coords []Coordinate, intervalMeters float64) []Coordinate {
	if len(coords) == 0 {
		return nil
	}
	if intervalMeters <= 0 {
		return coords
	}

	sampled := []Coordinate{coords[0]}
	accumulated := 0.0

	for i := 1; i < len(coords); i++ {
		segment := haversine(coords[i-1], coords[i])

		for accumulated+segment >= intervalMeters {
			remaining := intervalMeters - accumulated
			fraction := remaining / segment

			sampled = append(sampled, Coordinate{
				Lat: coords[i-1].Lat + fraction*(coords[i].Lat-coords[i-1].Lat),
				Lon: coords[i-1].Lon + fraction*(coords[i].Lon-coords[i-1].Lon),
			})

			segment -= remaining
			accumulated = 0
		}

		accumulated += segment
	}

	last := coords[len(coords)-1]
	if sampled[len(sampled)-1] != last {
		sampled = append(sampled, last)
	}

	return sampled
}

// haversine returns the great-circle distance between two coordinates in meters.
func haversine(a, b Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	sinDLat := math.Sin(dLat / 2)
	sinDLon := math.Sin(dLon / 2)

	h := sinDLat*sinDLat + math.Cos(lat1)*math.Cos(lat2)*sinDLon*sinDLon
	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(h))
}
