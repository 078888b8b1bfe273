package gate

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

//go:generate mockgen -source=gate_repo.go -destination=mock/gate_repo_mock.go -package=mock
type Repository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Upsert(ctx context.Context, key, value string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Get(ctx context.Context, key string) (string, bool, error) {
	var flag ConfigFlag
	err := r.db.WithContext(ctx).First(&flag, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return flag.Value, true, nil
}

func (r *repository) Upsert(ctx context.Context, key, value string) error {
	// Raw UPSERT keeps the write atomic under concurrent toggles.
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO config_flags (key, value)
		VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`, key, value).Error
}
