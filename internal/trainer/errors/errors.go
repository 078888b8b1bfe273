package trainererrors

import (
	"net/http"

	"github.com/Sultann121/hazori/internal/shared/apperror"
)

var (
	ErrTrainerNotFound = apperror.New(
		apperror.CodeNotFound,
		"Not registered",
		http.StatusNotFound,
	)

	ErrTrainerAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Trainer with the same national ID already exists",
		http.StatusConflict,
	)

	ErrDeviceAlreadyBound = apperror.New(
		apperror.CodeConflict,
		"Device already used for another account",
		http.StatusConflict,
	)

	ErrImportFileRequired = apperror.New(
		apperror.CodeInvalidInput,
		"A CSV file is required",
		http.StatusBadRequest,
	)

	ErrImportFileInvalid = apperror.New(
		apperror.CodeInvalidInput,
		"Only .csv files are allowed",
		http.StatusBadRequest,
	)
)
