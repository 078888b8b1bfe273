package app

import (
	"os"
	"strconv"

	"github.com/Sultann121/hazori/internal/attendance"
)

// Deployment defaults for the single configured training center.
const (
	defaultAdminCode = "1234567890"
	defaultCenterLat = 25.8969550
	defaultCenterLng = 43.5497960
	defaultRadiusM   = 100
)

type Config struct {
	AdminCode string
	Fence     attendance.Geofence
}

func LoadConfig() Config {
	return Config{
		AdminCode: envString("ADMIN_CODE", defaultAdminCode),
		Fence: attendance.Geofence{
			CenterLat: envFloat("GEOFENCE_LAT", defaultCenterLat),
			CenterLng: envFloat("GEOFENCE_LNG", defaultCenterLng),
			RadiusM:   envFloat("GEOFENCE_RADIUS_M", defaultRadiusM),
		},
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
