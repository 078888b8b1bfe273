package attendance

import (
	"errors"
	"strings"

	attendanceerrors "github.com/Sultann121/hazori/internal/attendance/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// mapRepositoryError translates store-level unique violations into the
// pipeline's domain rejections. The constraints are the authoritative
// guard; the pre-check queries only exist for the common case.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "uq_attendances_trainer_day":
			return attendanceerrors.ErrAlreadyMarkedToday
		case "uq_trainers_device_id":
			return attendanceerrors.ErrDeviceConflict
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") {
		if strings.Contains(errMsg, "uq_attendances_trainer_day") {
			return attendanceerrors.ErrAlreadyMarkedToday
		}
		if strings.Contains(errMsg, "uq_trainers_device_id") {
			return attendanceerrors.ErrDeviceConflict
		}
	}

	return err
}
