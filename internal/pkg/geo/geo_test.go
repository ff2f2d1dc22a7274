package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }

func circleFence(lat, lng, radius float64) *Fence {
	return &Fence{Center: &Point{Lat: lat, Lng: lng}, RadiusM: &radius}
}

func TestHaversineMeters_KnownDistance(t *testing.T) {
	// One degree of latitude is roughly 111.19 km.
	d := HaversineMeters(0, 0, 1, 0)
	assert.InDelta(t, 111195, d, 150)
}

func TestEvaluate_CircleBoundaryInclusive(t *testing.T) {
	// 0.0005 degrees of longitude at the equator ~= 55.6 m.
	dist := HaversineMeters(0, 0, 0, 0.0005)

	onBoundary := Evaluate(circleFence(0, 0, dist), f64(0), f64(0.0005))
	require.NotNil(t, onBoundary)
	assert.True(t, *onBoundary)

	outside := Evaluate(circleFence(0, 0, dist-1), f64(0), f64(0.0005))
	require.NotNil(t, outside)
	assert.False(t, *outside)
}

func TestEvaluate_CircleInside(t *testing.T) {
	got := Evaluate(circleFence(0, 0, 100), f64(0), f64(0.0005))
	require.NotNil(t, got)
	assert.True(t, *got, "~55m point should be inside a 100m fence")
}

func TestEvaluate_Polygon(t *testing.T) {
	square := &Fence{Points: []Point{
		{Lat: 0, Lng: 0},
		{Lat: 0, Lng: 1},
		{Lat: 1, Lng: 1},
		{Lat: 1, Lng: 0},
	}}

	centroid := Evaluate(square, f64(0.5), f64(0.5))
	require.NotNil(t, centroid)
	assert.True(t, *centroid)

	far := Evaluate(square, f64(40), f64(-70))
	require.NotNil(t, far)
	assert.False(t, *far)
}

func TestEvaluate_PolygonHorizontalEdgeDoesNotPanic(t *testing.T) {
	// Bottom edge is exactly horizontal; the epsilon guard must keep the
	// ray-cast division defined.
	flatBottom := &Fence{Points: []Point{
		{Lat: 0, Lng: 0},
		{Lat: 0, Lng: 2},
		{Lat: 2, Lng: 1},
	}}

	assert.NotPanics(t, func() {
		got := Evaluate(flatBottom, f64(0.5), f64(1))
		require.NotNil(t, got)
		assert.True(t, *got)
	})
}

func TestEvaluate_AbsentInputs(t *testing.T) {
	assert.Nil(t, Evaluate(nil, f64(1), f64(1)))
	assert.Nil(t, Evaluate(circleFence(0, 0, 100), nil, f64(1)))
	assert.Nil(t, Evaluate(circleFence(0, 0, 100), f64(1), nil))
}

func TestParseFence(t *testing.T) {
	circle := ParseFence([]byte(`{"center":{"lat":-0.18,"lng":-78.47},"radius_m":150}`))
	require.NotNil(t, circle)
	assert.Equal(t, 150.0, *circle.RadiusM)

	polygon := ParseFence([]byte(`{"points":[{"lat":0,"lng":0},{"lat":0,"lng":1},{"lat":1,"lng":0}]}`))
	require.NotNil(t, polygon)
	assert.Len(t, polygon.Points, 3)

	assert.Nil(t, ParseFence(nil), "empty payload")
	assert.Nil(t, ParseFence([]byte(`not json`)), "malformed payload")
	assert.Nil(t, ParseFence([]byte(`{"points":[{"lat":0,"lng":0}]}`)), "too few vertices")
	assert.Nil(t, ParseFence([]byte(`{"center":{"lat":0,"lng":0}}`)), "circle without radius")
}
