package gate

// ConfigFlag is a single persisted key/value pair. Only the current value
// is kept; toggles are not versioned.
type ConfigFlag struct {
	Key   string `gorm:"column:key;type:varchar(100);primaryKey"`
	Value string `gorm:"column:value;type:text;not null"`
}

func (ConfigFlag) TableName() string {
	return "config_flags"
}

// AttendanceOpenKey is the flag consulted on every check-in attempt.
const AttendanceOpenKey = "attendance_open"
