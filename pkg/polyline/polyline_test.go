package polyline

import (
	"errors"
	"math"
	"testing"
)

func TestDecode_ValidPolyline(t *testing.T) {
	tests := []struct {
		name     string
		encoded  string
		expected []Coordinate
	}{
		{
			name:    "single point",
			encoded: "_p~iF~ps|U",
			expected: []Coordinate{
				{Lat: 38.5, Lon: -120.2},
			},
		},
		{
			name:    "two points",
			encoded: "_p~iF~ps|U_ulLnnqC",
			expected: []Coordinate{
				{Lat: 38.5, Lon: -120.2},
				{Lat: 40.7, Lon: -120.95},
			},
		},
		{
			name:    "three points - Google example",
			encoded: "_p~iF~ps|U_ulLnnqC_mqNvxq`@",
			expected: []Coordinate{
				{Lat: 38.5, Lon: -120.2},
				{Lat: 40.7, Lon: -120.95},
				{Lat: 43.252, Lon: -126.453},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Decode(tt.encoded)
			if err != nil {
				t.Fatalf("unexpected decode error: %v", err)
			}
			if len(result) != len(tt.expected) {
				t.Fatalf("expected %d coordinates, got %d", len(tt.expected), len(result))
			}

			for i, coord := range result {
				if !coordsEqual(coord, tt.expected[i], 0.00001) {
					t.Errorf("coordinate %d: expected %+v, got %+v", i, tt.expected[i], coord)
				}
			}
		})
	}
}

func TestDecode_EmptyString(t *testing.T) {
	result, err := Decode("")
	if err != nil {
		t.Fatalf("unexpected error for empty string: %v", err)
	}
	if result != nil {
		t.Errorf("expected nil for empty string, got %v", result)
	}
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
		wantErr error
	}{
		{
			name:    "truncated mid-value",
			encoded: "_p~iF~",
			wantErr: ErrTruncated,
		},
		{
			name:    "latitude without longitude",
			encoded: "_p~iF",
			wantErr: ErrTruncated,
		},
		{
			name:    "byte below alphabet",
			encoded: "_p~iF\x1f~ps|U",
			wantErr: ErrInvalidChar,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Decode(tt.encoded)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			// Fail-closed: no partial path on error.
			if result != nil {
				t.Errorf("expected nil coordinates on error, got %v", result)
			}
		})
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		coords []Coordinate
	}{
		{
			name: "single point",
			coords: []Coordinate{
				{Lat: 38.5, Lon: -120.2},
			},
		},
		{
			name: "three points",
			coords: []Coordinate{
				{Lat: 38.5, Lon: -120.2},
				{Lat: 40.7, Lon: -120.95},
				{Lat: 43.252, Lon: -126.453},
			},
		},
		{
			name: "Chicago to Indianapolis",
			coords: []Coordinate{
				{Lat: 41.8781, Lon: -87.6298},
				{Lat: 40.4237, Lon: -86.9212},
				{Lat: 39.7684, Lon: -86.1581},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := Encode(tt.coords)
			if encoded == "" {
				t.Fatal("expected non-empty encoded string")
			}

			decoded, err := Decode(encoded)
			if err != nil {
				t.Fatalf("round-trip decode failed: %v", err)
			}
			if len(decoded) != len(tt.coords) {
				t.Fatalf("round-trip: expected %d coordinates, got %d", len(tt.coords), len(decoded))
			}

			for i, coord := range decoded {
				if !coordsEqual(coord, tt.coords[i], 0.00001) {
					t.Errorf("round-trip coordinate %d: expected %+v, got %+v", i, tt.coords[i], coord)
				}
			}
		})
	}
}

func TestEncode_EmptyCoordinates(t *testing.T) {
	if result := Encode(nil); result != "" {
		t.Errorf("expected empty string for nil coordinates, got %q", result)
	}
	if result := Encode([]Coordinate{}); result != "" {
		t.Errorf("expected empty string for empty coordinates, got %q", result)
	}
}

func TestLengthMiles(t *testing.T) {
	tests := []struct {
		name          string
		coords        []Coordinate
		expectedMiles float64
		tolerance     float64
	}{
		{
			name:          "empty",
			coords:        nil,
			expectedMiles: 0,
			tolerance:     0,
		},
		{
			name:          "single point",
			coords:        []Coordinate{{Lat: 41.0, Lon: -87.0}},
			expectedMiles: 0,
			tolerance:     0,
		},
		{
			name: "Chicago to Indianapolis - roughly 165 miles great circle",
			coords: []Coordinate{
				{Lat: 41.8781, Lon: -87.6298},
				{Lat: 39.7684, Lon: -86.1581},
			},
			expectedMiles: 165,
			tolerance:     10,
		},
		{
			name: "1 degree latitude - roughly 69 miles",
			coords: []Coordinate{
				{Lat: 0.0, Lon: 0.0},
				{Lat: 1.0, Lon: 0.0},
			},
			expectedMiles: 69,
			tolerance:     1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := LengthMiles(tt.coords)
			if diff := math.Abs(result - tt.expectedMiles); diff > tt.tolerance {
				t.Errorf("expected ~%.0fmi (±%.0f), got %.1fmi", tt.expectedMiles, tt.tolerance, result)
			}
		})
	}
}

func TestSampleEvery(t *testing.T) {
	coords := []Coordinate{
		{Lat: 41.00, Lon: -87.0},
		{Lat: 41.01, Lon: -87.0}, // ~1.1km north
		{Lat: 41.02, Lon: -87.0},
		{Lat: 41.03, Lon: -87.0},
	}

	t.Run("sample every 500m", func(t *testing.T) {
		sampled := SampleEvery(coords, 500)
		if len(sampled) < 5 {
			t.Errorf("expected at least 5 samples, got %d", len(sampled))
		}
		if !coordsEqual(sampled[0], coords[0], 0.0001) {
			t.Errorf("first sample should be the first coordinate")
		}
		if !coordsEqual(sampled[len(sampled)-1], coords[len(coords)-1], 0.0001) {
			t.Errorf("last sample should be the last coordinate")
		}
	})

	t.Run("interval longer than route", func(t *testing.T) {
		sampled := SampleEvery(coords, 10000)
		if len(sampled) != 2 {
			t.Errorf("expected start and end only, got %d samples", len(sampled))
		}
	})

	t.Run("empty coordinates", func(t *testing.T) {
		if sampled := SampleEvery(nil, 500); sampled != nil {
			t.Errorf("expected nil for empty coordinates")
		}
	})

	t.Run("zero interval returns all", func(t *testing.T) {
		if sampled := SampleEvery(coords, 0); len(sampled) != len(coords) {
			t.Errorf("expected all coordinates for zero interval")
		}
	})
}

func coordsEqual(a, b Coordinate, tolerance float64) bool {
	return math.Abs(a.Lat-b.Lat) <= tolerance && math.Abs(a.Lon-b.Lon) <= tolerance
}

func BenchmarkDecode(b *testing.B) {
	encoded := "_p~iF~ps|U_ulLnnqC_mqNvxq`@"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Decode(encoded)
	}
}
