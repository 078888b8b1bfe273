package attendance

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	ExistsSince(ctx context.Context, trainerID uuid.UUID, since time.Time) (bool, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			INSERT INTO attendances (id, trainer_id, attended_on, timestamp, lat, lng)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, a.ID, a.TrainerID, a.AttendedOn.Format("2006-01-02"), a.Timestamp, a.Lat, a.Lng)
		return err
	}
	return r.db.WithContext(ctx).Create(a).Error
}

// ExistsSince reports whether the trainer has any check-in with a
// timestamp at or after the given instant (local midnight for the
// daily-limit check).
func (r *repository) ExistsSince(ctx context.Context, trainerID uuid.UUID, since time.Time) (bool, error) {
	if r.tx != nil {
		var exists bool
		err := r.tx.QueryRowContext(ctx, `
			SELECT EXISTS (SELECT 1 FROM attendances WHERE trainer_id = $1 AND timestamp >= $2)
		`, trainerID, since).Scan(&exists)
		return exists, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&Attendance{}).
		Where("trainer_id = ?", trainerID).
		Where("timestamp >= ?", since).
		Count(&count).Error
	return count > 0, err
}
