package app

import (
	"github.com/Sultann121/hazori/internal/attendance"
	"github.com/Sultann121/hazori/internal/gate"
	"github.com/Sultann121/hazori/internal/trainer"

	"gorm.io/gorm"
)

// Migrate provisions the schema. The named unique constraints double as
// the concurrency guards the check-in pipeline relies on, so they are part
// of the application contract, not just storage hygiene.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&trainer.Trainer{},
		&attendance.Attendance{},
		&gate.ConfigFlag{},
	); err != nil {
		return err
	}

	statements := []string{
		`CREATE TABLE IF NOT EXISTS outbox_events (
			id uuid PRIMARY KEY,
			request_id varchar(100),
			aggregate_type varchar(50) NOT NULL,
			aggregate_id varchar(100) NOT NULL,
			event_type varchar(100) NOT NULL,
			topic varchar(200) NOT NULL,
			payload jsonb NOT NULL,
			status varchar(20) NOT NULL DEFAULT 'pending',
			retry_count int NOT NULL DEFAULT 0,
			error_message varchar(500),
			next_retry_at timestamptz,
			processed_at timestamptz,
			created_at timestamptz NOT NULL DEFAULT now(),
			updated_at timestamptz NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS department_daily_stats (
			department varchar(100) NOT NULL,
			day date NOT NULL,
			checkins bigint NOT NULL DEFAULT 0,
			updated_at timestamptz NOT NULL DEFAULT now(),
			PRIMARY KEY (department, day)
		)`,
		// The gate starts closed on a fresh install.
		`INSERT INTO config_flags (key, value) VALUES ('attendance_open', 'false')
			ON CONFLICT (key) DO NOTHING`,
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}

	return nil
}
