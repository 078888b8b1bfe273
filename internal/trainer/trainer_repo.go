package trainer

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=trainer_repo.go -destination=mock/trainer_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, t *Trainer) error
	FindByNationalID(ctx context.Context, nationalID string) (*Trainer, error)
	FindByDeviceID(ctx context.Context, deviceID string) (*Trainer, error)
	BindDevice(ctx context.Context, trainerID uuid.UUID, deviceID string) error
	FindAll(ctx context.Context) ([]Trainer, error)
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

func (r *repository) Create(ctx context.Context, t *Trainer) error {
	return r.db.WithContext(ctx).Create(t).Error
}

const trainerColumns = `
SELECT id, national_id, COALESCE(training_id, ''), name, COALESCE(phone, ''), COALESCE(department, ''), device_id, created_at
FROM trainers
`

func (r *repository) FindByNationalID(ctx context.Context, nationalID string) (*Trainer, error) {
	if r.tx != nil {
		return r.scanOne(r.tx.QueryRowContext(ctx, trainerColumns+`WHERE national_id = $1`, nationalID))
	}

	var t Trainer
	err := r.db.WithContext(ctx).First(&t, "national_id = ?", nationalID).Error
	return &t, err
}

func (r *repository) FindByDeviceID(ctx context.Context, deviceID string) (*Trainer, error) {
	if r.tx != nil {
		return r.scanOne(r.tx.QueryRowContext(ctx, trainerColumns+`WHERE device_id = $1`, deviceID))
	}

	var t Trainer
	err := r.db.WithContext(ctx).First(&t, "device_id = ?", deviceID).Error
	return &t, err
}

// BindDevice sets the device only when none is bound yet. The WHERE guard
// makes the bind one-time even under concurrent attempts.
func (r *repository) BindDevice(ctx context.Context, trainerID uuid.UUID, deviceID string) error {
	query := `UPDATE trainers SET device_id = $2 WHERE id = $1 AND device_id IS NULL`
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, query, trainerID, deviceID)
		return err
	}
	return r.db.WithContext(ctx).Exec(query, trainerID, deviceID).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Trainer, error) {
	var trainers []Trainer
	err := r.db.WithContext(ctx).
		Order("department ASC, name ASC").
		Find(&trainers).Error
	return trainers, err
}

// scanOne maps the raw-SQL row shape back onto the entity, normalizing
// sql.ErrNoRows so callers only ever have to check gorm.ErrRecordNotFound.
func (r *repository) scanOne(row *sql.Row) (*Trainer, error) {
	var t Trainer
	err := row.Scan(
		&t.ID,
		&t.NationalID,
		&t.TrainingID,
		&t.Name,
		&t.Phone,
		&t.Department,
		&t.DeviceID,
		&t.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return &t, gorm.ErrRecordNotFound
	}
	return &t, err
}
