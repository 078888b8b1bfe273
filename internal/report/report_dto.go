package report

type AttendanceRow struct {
	Name       string `json:"name"`
	NationalID string `json:"national_id"`
	TrainingID string `json:"training_id"`
	Department string `json:"department"`
	Timestamp  string `json:"timestamp"`
}

type DepartmentReport struct {
	Department string          `json:"department"`
	Rows       []AttendanceRow `json:"rows"`
}

type DepartmentCount struct {
	Department string `json:"department"`
	Count      int64  `json:"cnt"`
}

type StatsResponse struct {
	Total         int64             `json:"total"`
	PerDepartment []DepartmentCount `json:"perDept"`
}
