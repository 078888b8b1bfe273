package gate

type ToggleRequest struct {
	AdminCode string `json:"admin_code" binding:"required"`
	Open      *bool  `json:"open" binding:"required"`
}

type StateResponse struct {
	AttendanceOpen bool `json:"attendance_open"`
}
