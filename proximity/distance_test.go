package proximity

import (
	"math"
	"testing"
)

func TestDistanceKnownValues(t *testing.T) {
	cases := []struct {
		name                   string
		lat1, lng1, lat2, lng2 float64
		want                   float64
		tolerance              float64
	}{
		{"same point", 10, 10, 10, 10, 0, 0.001},
		{"one degree of latitude", 0, 0, 1, 0, 111194.93, 1.0},
		{"one degree of longitude at equator", 0, 0, 0, 1, 111194.93, 1.0},
		{"short hop", 10.0, 10.0, 10.00009, 10.0, 10.01, 0.1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Distance(tc.lat1, tc.lng1, tc.lat2, tc.lng2)
			if math.Abs(got-tc.want) > tc.tolerance {
				t.Fatalf("Distance = %f, want %f ± %f", got, tc.want, tc.tolerance)
			}
		})
	}
}

func TestDistanceSymmetry(t *testing.T) {
	forward := Distance(40.7128, -74.0060, 40.7130, -74.0062)
	backward := Distance(40.7130, -74.0062, 40.7128, -74.0060)
	if math.Abs(forward-backward) > 1e-9 {
		t.Fatalf("expected symmetric distance, got %f and %f", forward, backward)
	}
}

func TestRoundMeters(t *testing.T) {
	if got := roundMeters(10.00501); got != 10.01 {
		t.Fatalf("roundMeters(10.00501) = %v, want 10.01", got)
	}
	if got := roundMeters(49.994); got != 49.99 {
		t.Fatalf("roundMeters(49.994) = %v, want 49.99", got)
	}
}
