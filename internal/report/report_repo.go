package report

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=report_repo.go -destination=mock/report_repo_mock.go -package=mock
type Repository interface {
	ListAttendance(ctx context.Context, department string) ([]AttendanceRow, error)
	CountAll(ctx context.Context) (int64, error)
	CountByDepartment(ctx context.Context) ([]DepartmentCount, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

type joinedRow struct {
	Name       string
	NationalID string
	TrainingID string
	Department string
	Timestamp  time.Time
}

func (r *repository) ListAttendance(ctx context.Context, department string) ([]AttendanceRow, error) {
	q := r.db.WithContext(ctx).
		Table("attendances").
		Select("trainers.name, trainers.national_id, trainers.training_id, trainers.department, attendances.timestamp").
		Joins("JOIN trainers ON attendances.trainer_id = trainers.id").
		Scopes(departmentScope(department)).
		Order("trainers.department ASC, attendances.timestamp ASC")

	var raw []joinedRow
	if err := q.Scan(&raw).Error; err != nil {
		return nil, err
	}

	rows := make([]AttendanceRow, len(raw))
	for i, jr := range raw {
		rows[i] = AttendanceRow{
			Name:       jr.Name,
			NationalID: jr.NationalID,
			TrainingID: jr.TrainingID,
			Department: jr.Department,
			Timestamp:  jr.Timestamp.Format(time.RFC3339),
		}
	}
	return rows, nil
}

func (r *repository) CountAll(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Table("attendances").Count(&total).Error
	return total, err
}

func (r *repository) CountByDepartment(ctx context.Context) ([]DepartmentCount, error) {
	var counts []DepartmentCount
	err := r.db.WithContext(ctx).
		Table("attendances").
		Select("trainers.department AS department, COUNT(attendances.id) AS count").
		Joins("JOIN trainers ON attendances.trainer_id = trainers.id").
		Group("trainers.department").
		Order("trainers.department ASC").
		Scan(&counts).Error
	return counts, err
}
