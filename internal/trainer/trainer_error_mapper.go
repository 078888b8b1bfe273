package trainer

import (
	"errors"
	"strings"

	trainererrors "github.com/Sultann121/hazori/internal/trainer/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "uq_trainers_national_id":
			return trainererrors.ErrTrainerAlreadyExists
		case "uq_trainers_device_id":
			return trainererrors.ErrDeviceAlreadyBound
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") {
		if strings.Contains(errMsg, "uq_trainers_device_id") {
			return trainererrors.ErrDeviceAlreadyBound
		}
		if strings.Contains(errMsg, "uq_trainers_national_id") {
			return trainererrors.ErrTrainerAlreadyExists
		}
	}

	return err
}
