package attendance

import "math"

// Mean Earth radius in meters.
const earthRadiusM = 6371000.0

// Haversine returns the great-circle distance in meters between two
// coordinates given in decimal degrees.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusM * c
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// Geofence is the circular area around the training center within which
// check-ins are accepted.
type Geofence struct {
	CenterLat float64
	CenterLng float64
	RadiusM   float64
}

func (g Geofence) Distance(lat, lng float64) float64 {
	return Haversine(g.CenterLat, g.CenterLng, lat, lng)
}

// Contains is inclusive: a point exactly on the radius is inside.
func (g Geofence) Contains(lat, lng float64) bool {
	return g.Distance(lat, lng) <= g.RadiusM
}
