package trainer

type RegisterTrainerRequest struct {
	NationalID string `json:"national_id" binding:"required"`
	TrainingID string `json:"training_id"`
	Name       string `json:"name" binding:"required"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
	DeviceID   string `json:"device_id"`
}

type TrainerResponse struct {
	ID         string `json:"id"`
	NationalID string `json:"national_id"`
	TrainingID string `json:"training_id,omitempty"`
	Name       string `json:"name"`
	Phone      string `json:"phone,omitempty"`
	Department string `json:"department,omitempty"`
	DeviceID   string `json:"device_id,omitempty"`
	CreatedAt  string `json:"created_at"`
}

type ImportRowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

type ImportResult struct {
	Total    int              `json:"total"`
	Created  int              `json:"created"`
	Skipped  int              `json:"skipped"`
	Failures []ImportRowError `json:"failures,omitempty"`
}
