package attendance

// CheckInRequest carries coordinates as strings so the pipeline can
// reject unparsable values itself instead of failing at JSON binding.
type CheckInRequest struct {
	NationalID string `json:"national_id" binding:"required"`
	Lat        string `json:"lat" binding:"required"`
	Lng        string `json:"lng" binding:"required"`
	DeviceID   string `json:"device_id"`
}

type CheckInResponse struct {
	AttendanceID string  `json:"attendance_id"`
	NationalID   string  `json:"national_id"`
	Name         string  `json:"name"`
	Department   string  `json:"department,omitempty"`
	Timestamp    string  `json:"timestamp"`
	DistanceM    float64 `json:"distance_m"`
}
