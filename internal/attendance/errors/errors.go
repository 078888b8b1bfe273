package attendanceerrors

import (
	"net/http"

	"github.com/Sultann121/hazori/internal/shared/apperror"
)

var (
	ErrOutOfArea = apperror.New(
		apperror.CodeInvalidInput,
		"You are outside the allowed area",
		http.StatusBadRequest,
	)

	ErrInvalidCoordinate = apperror.New(
		apperror.CodeInvalidInput,
		"Latitude and longitude must be finite numbers",
		http.StatusBadRequest,
	)

	ErrAlreadyMarkedToday = apperror.New(
		apperror.CodeConflict,
		"Already marked today",
		http.StatusConflict,
	)

	ErrDeviceConflict = apperror.New(
		apperror.CodeConflict,
		"Device already used for another account",
		http.StatusConflict,
	)
)
