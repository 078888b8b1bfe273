package gateerrors

import (
	"net/http"

	"github.com/Sultann121/hazori/internal/shared/apperror"
)

var (
	ErrUnauthorized = apperror.New(
		apperror.CodeUnauthorized,
		"Unauthorized",
		http.StatusForbidden,
	)

	ErrAttendanceClosed = apperror.New(
		apperror.CodeInvalidState,
		"Attendance is closed",
		http.StatusConflict,
	)
)
