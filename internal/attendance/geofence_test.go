package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	centerLat = 25.8969550
	centerLng = 43.5497960
)

func TestHaversine_ZeroDistance(t *testing.T) {
	assert.Equal(t, 0.0, Haversine(centerLat, centerLng, centerLat, centerLng))
}

func TestHaversine_Symmetry(t *testing.T) {
	pairs := [][4]float64{
		{centerLat, centerLng, 25.9, 43.6},
		{0, 0, 10, 10},
		{-33.8688, 151.2093, 51.5072, -0.1276},
	}
	for _, p := range pairs {
		ab := Haversine(p[0], p[1], p[2], p[3])
		ba := Haversine(p[2], p[3], p[0], p[1])
		assert.InDelta(t, ab, ba, 1e-9)
	}
}

func TestHaversine_KnownDistance(t *testing.T) {
	// 0.045 degrees of latitude is very close to 5000 meters.
	dist := Haversine(centerLat, centerLng, centerLat+0.045, centerLng)
	assert.InDelta(t, 5000, dist, 50)
}

func TestGeofence_BoundaryInclusive(t *testing.T) {
	point := [2]float64{centerLat + 0.0008, centerLng}
	dist := Haversine(centerLat, centerLng, point[0], point[1])

	onBoundary := Geofence{CenterLat: centerLat, CenterLng: centerLng, RadiusM: dist}
	assert.True(t, onBoundary.Contains(point[0], point[1]), "point exactly at the radius is inside")

	justInside := Geofence{CenterLat: centerLat, CenterLng: centerLng, RadiusM: dist - 1}
	assert.False(t, justInside.Contains(point[0], point[1]), "point one meter past the radius is outside")
}

func TestGeofence_Distance(t *testing.T) {
	fence := Geofence{CenterLat: centerLat, CenterLng: centerLng, RadiusM: 100}
	assert.Equal(t, 0.0, fence.Distance(centerLat, centerLng))
	assert.True(t, fence.Contains(centerLat, centerLng))
	assert.False(t, fence.Contains(centerLat+0.045, centerLng))
}
