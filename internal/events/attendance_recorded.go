package events

import "time"

const AttendanceRecordedTopic = "hazori.attendance.recorded.v1"

type AttendanceRecordedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	AttendanceID string    `json:"attendance_id"`
	TrainerID    string    `json:"trainer_id"`
	NationalID   string    `json:"national_id"`
	Department   string    `json:"department"`
	OccurredAt   time.Time `json:"occurred_at"`
}
