package attendance

import (
	"time"

	"github.com/google/uuid"
)

type Attendance struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	TrainerID uuid.UUID `gorm:"column:trainer_id;type:uuid;not null;uniqueIndex:uq_attendances_trainer_day"`
	// AttendedOn is the server-local calendar day of the check-in. The
	// composite unique index with TrainerID is what makes the daily limit
	// hold under concurrent requests; the pre-check query alone is racy.
	AttendedOn time.Time `gorm:"column:attended_on;type:date;not null;uniqueIndex:uq_attendances_trainer_day"`
	Timestamp  time.Time `gorm:"column:timestamp;type:timestamptz;not null"`
	Lat        float64   `gorm:"column:lat;type:decimal(10,7)"`
	Lng        float64   `gorm:"column:lng;type:decimal(10,7)"`
}

func (Attendance) TableName() string {
	return "attendances"
}
