package trainer

import (
	"time"

	"github.com/google/uuid"
)

type Trainer struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	NationalID string    `gorm:"column:national_id;type:varchar(20);not null;uniqueIndex:uq_trainers_national_id"`
	TrainingID string    `gorm:"column:training_id;type:varchar(50)"`
	Name       string    `gorm:"column:name;type:varchar(255);not null"`
	Phone      string    `gorm:"column:phone;type:varchar(30)"`
	Department string    `gorm:"column:department;type:varchar(100);index"`
	// DeviceID is bound at most once, on the first successful check-in
	// that carries a device identifier. NULL until then.
	DeviceID  *string   `gorm:"column:device_id;type:varchar(100);uniqueIndex:uq_trainers_device_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Trainer) TableName() string {
	return "trainers"
}
