package gradingerrors

import (
	"net/http"

	"go-readiness/internal/shared/apperror"
)

var (
	ErrTeamNotFound = apperror.New(
		apperror.CodeNotFound,
		"Team not found",
		http.StatusNotFound,
	)

	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)

	ErrInvalidWindow = apperror.New(
		apperror.CodeInvalidInput,
		"Evaluation window start must not be after its end",
		http.StatusBadRequest,
	)
)
