package report

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -destination=mock/summary_repo_mock.go -package=mock . SummaryRepository

// SummaryRepository maintains the per-department daily rollup written by
// the attendance-event consumer.
type SummaryRepository interface {
	IncrementDailyCount(ctx context.Context, department string, day time.Time) (int64, error)
}

type summaryRepository struct {
	db *gorm.DB
}

func NewSummaryRepository(db *gorm.DB) SummaryRepository {
	return &summaryRepository{db: db}
}

func (r *summaryRepository) IncrementDailyCount(ctx context.Context, department string, day time.Time) (int64, error) {
	var newValue int64

	// Atomic UPSERT-and-increment so concurrent consumers never lose counts.
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO department_daily_stats (department, day, checkins, updated_at)
		VALUES (?, ?, 1, now())
		ON CONFLICT (department, day) DO UPDATE
		SET checkins = department_daily_stats.checkins + 1, updated_at = now()
		RETURNING checkins
	`, department, day.Format("2006-01-02")).Scan(&newValue).Error

	if err != nil {
		return 0, err
	}

	return newValue, nil
}
