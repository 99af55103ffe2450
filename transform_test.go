package geoshift

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Reference points used across the tests. The first group sits inside the
// mainland envelope, the second group outside it.
var (
	beijingWGS  = Coordinate{Longitude: 116.404, Latitude: 39.915}
	shanghaiWGS = Coordinate{Longitude: 121.4737, Latitude: 31.2304}
	chengduWGS  = Coordinate{Longitude: 104.072178447, Latitude: 30.689144357}
	urumqiWGS   = Coordinate{Longitude: 87.6168, Latitude: 43.8256}
	lhasaWGS    = Coordinate{Longitude: 91.1145, Latitude: 29.6456}

	london = Coordinate{Longitude: -0.1276, Latitude: 51.5072}
	tokyo  = Coordinate{Longitude: 139.6917, Latitude: 35.6895}
	sydney = Coordinate{Longitude: 151.2093, Latitude: -33.8688}
)

func TestTransformKnownVectors(t *testing.T) {
	tests := []struct {
		name     string
		in       Coordinate
		from, to System
		want     Coordinate
		tol      float64
	}{
		{
			name: "beijing wgs84 to gcj02",
			in:   beijingWGS, from: WGS84, to: GCJ02,
			want: Coordinate{Longitude: 116.4102445, Latitude: 39.91640428},
			tol:  1e-7,
		},
		{
			name: "beijing wgs84 to bd09",
			in:   beijingWGS, from: WGS84, to: BD09,
			want: Coordinate{Longitude: 116.41662724, Latitude: 39.92269955},
			tol:  1e-7,
		},
		{
			name: "beijing gcj02 to bd09",
			in:   Coordinate{Longitude: 116.4102445, Latitude: 39.91640428},
			from: GCJ02, to: BD09,
			want: Coordinate{Longitude: 116.41662724, Latitude: 39.92269955},
			tol:  1e-7,
		},
		{
			name: "chengdu wgs84 to gcj02",
			in:   chengduWGS, from: WGS84, to: GCJ02,
			want: Coordinate{Longitude: 104.074698338, Latitude: 30.686745304},
			tol:  1e-7,
		},
		{
			name: "chengdu wgs84 to bd09",
			in:   chengduWGS, from: WGS84, to: BD09,
			want: Coordinate{Longitude: 104.081201852, Latitude: 30.692663693},
			tol:  1e-6,
		},
		{
			name: "chengdu gcj02 to wgs84",
			in:   Coordinate{Longitude: 104.074702, Latitude: 30.686747},
			from: GCJ02, to: WGS84,
			want: Coordinate{Longitude: 104.072178447, Latitude: 30.689144357},
			tol:  1e-5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Transform(tt.in, tt.from, tt.to)
			require.NoError(t, err)
			assert.InDelta(t, tt.want.Longitude, got.Longitude, tt.tol)
			assert.InDelta(t, tt.want.Latitude, got.Latitude, tt.tol)
		})
	}
}

func TestTransformSameSystem(t *testing.T) {
	in := Coordinate{Longitude: 116.40412345678912, Latitude: 39.91512345678934}
	for _, sys := range []System{WGS84, GCJ02, BD09} {
		got, err := Transform(in, sys, sys)
		require.NoError(t, err)
		assert.Equal(t, in, got, "same-system conversion must not touch the value, %s", sys)
	}
}

func TestTransformOutOfRegionIdentity(t *testing.T) {
	points := []Coordinate{
		london,
		tokyo,
		sydney,
		{Longitude: -74.00612345678901, Latitude: 40.71281234567891},
		// just past each edge of the envelope
		{Longitude: 72.0039999, Latitude: 35},
		{Longitude: 100, Latitude: 0.8292},
		{Longitude: 137.83471, Latitude: 40},
		{Longitude: 100, Latitude: 55.82711},
	}
	pairs := [][2]System{
		{WGS84, GCJ02}, {GCJ02, WGS84},
		{WGS84, BD09}, {BD09, WGS84},
		{GCJ02, BD09}, {BD09, GCJ02},
	}
	for _, p := range points {
		for _, pair := range pairs {
			got, err := Transform(p, pair[0], pair[1])
			require.NoError(t, err)
			assert.Equal(t, p, got, "%v %s to %s", p, pair[0], pair[1])
		}
	}
}

func TestTransformEnvelopeEdgeIsObfuscated(t *testing.T) {
	edges := []Coordinate{
		{Longitude: 72.004, Latitude: 35},
		{Longitude: 137.8347, Latitude: 40},
		{Longitude: 100, Latitude: 0.8293},
		{Longitude: 100, Latitude: 55.8271},
	}
	for _, p := range edges {
		got, err := Transform(p, WGS84, GCJ02)
		require.NoError(t, err)
		assert.NotEqual(t, p, got, "edge point %v must be shifted", p)
	}
}

func TestTransformRoundTrips(t *testing.T) {
	cities := []Coordinate{beijingWGS, shanghaiWGS, chengduWGS, urumqiWGS, lhasaWGS}

	t.Run("wgs84 via gcj02", func(t *testing.T) {
		for _, p := range cities {
			gcj, err := Transform(p, WGS84, GCJ02)
			require.NoError(t, err)
			back, err := Transform(gcj, GCJ02, WGS84)
			require.NoError(t, err)
			assert.InDelta(t, p.Longitude, back.Longitude, 1e-6)
			assert.InDelta(t, p.Latitude, back.Latitude, 1e-6)
		}
	})

	t.Run("wgs84 via bd09", func(t *testing.T) {
		for _, p := range cities {
			bd, err := Transform(p, WGS84, BD09)
			require.NoError(t, err)
			back, err := Transform(bd, BD09, WGS84)
			require.NoError(t, err)
			assert.InDelta(t, p.Longitude, back.Longitude, 1e-5)
			assert.InDelta(t, p.Latitude, back.Latitude, 1e-5)
		}
	})

	t.Run("gcj02 via bd09", func(t *testing.T) {
		for _, p := range cities {
			gcj, err := Transform(p, WGS84, GCJ02)
			require.NoError(t, err)
			bd, err := Transform(gcj, GCJ02, BD09)
			require.NoError(t, err)
			back, err := Transform(bd, BD09, GCJ02)
			require.NoError(t, err)
			// the mirrored polar inverse drifts just past a microdegree
			assert.InDelta(t, gcj.Longitude, back.Longitude, 2e-6)
			assert.InDelta(t, gcj.Latitude, back.Latitude, 2e-6)
		}
	})
}

func TestTransformRoundsToEightDecimals(t *testing.T) {
	in := Coordinate{Longitude: 116.40412345678912, Latitude: 39.91512345678934}
	for _, to := range []System{GCJ02, BD09} {
		got, err := Transform(in, WGS84, to)
		require.NoError(t, err)
		assert.Equal(t, got.rounded(), got, "result must already sit on the 8-decimal grid")
	}
}

func TestTransformValidation(t *testing.T) {
	bad := []Coordinate{
		{Longitude: 180.0001, Latitude: 39},
		{Longitude: -180.0001, Latitude: 39},
		{Longitude: 116, Latitude: 90.0001},
		{Longitude: 116, Latitude: -90.0001},
		{Longitude: math.NaN(), Latitude: 39},
		{Longitude: 116, Latitude: math.NaN()},
		{Longitude: math.Inf(1), Latitude: 39},
		{Longitude: 116, Latitude: math.Inf(-1)},
	}
	for _, p := range bad {
		_, err := Transform(p, WGS84, GCJ02)
		require.Error(t, err, "%v", p)
		var inputErr *InputError
		assert.ErrorAs(t, err, &inputErr)
	}
}

func TestTransformUnsupportedSystems(t *testing.T) {
	_, err := Transform(beijingWGS, System(7), WGS84)
	require.Error(t, err)
	var inputErr *InputError
	assert.ErrorAs(t, err, &inputErr)

	_, err = Transform(beijingWGS, WGS84, System(200))
	require.Error(t, err)
	assert.ErrorAs(t, err, &inputErr)

	// Matching garbage tags are still garbage.
	_, err = Transform(beijingWGS, System(7), System(7))
	require.Error(t, err)
}

func TestInverseConvergesAcrossRegion(t *testing.T) {
	// Coarse sweep of the envelope interior. Every forward point must invert
	// without tripping the iteration cap.
	for lng := 75.0; lng <= 135.0; lng += 15 {
		for lat := 20.0; lat <= 52.0; lat += 8 {
			p := Coordinate{Longitude: lng, Latitude: lat}
			gcj, err := Transform(p, WGS84, GCJ02)
			require.NoError(t, err)
			back, err := Transform(gcj, GCJ02, WGS84)
			require.NoError(t, err)
			assert.InDelta(t, p.Longitude, back.Longitude, 1e-6)
			assert.InDelta(t, p.Latitude, back.Latitude, 1e-6)
		}
	}
}

func TestInverseNoConvergenceNearEnvelopeEdge(t *testing.T) {
	// A GCJ02 point sitting within the offset magnitude of the west edge
	// sends the iteration's guess out of the envelope, where the forward
	// pass turns into the identity and the guess oscillates until the cap.
	edge := Coordinate{Longitude: regionMinLng + 1e-7, Latitude: 30}
	_, err := Transform(edge, GCJ02, WGS84)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoConvergence)

	// A few thousandths of a degree further in, the inverse settles.
	interior := Coordinate{Longitude: regionMinLng + 5e-3, Latitude: 30}
	_, err = Transform(interior, GCJ02, WGS84)
	assert.NoError(t, err)
}
