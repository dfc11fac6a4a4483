package checkinerrors

import (
	"net/http"

	"go-readiness/internal/shared/apperror"
)

var (
	ErrCheckinNotFound = apperror.New(
		apperror.CodeNotFound,
		"Check-in not found",
		http.StatusNotFound,
	)

	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)

	// ErrAlreadyCheckedIn enforces the one-check-in-per-company-local-day
	// policy.
	ErrAlreadyCheckedIn = apperror.New(
		apperror.CodeConflict,
		"Already checked in today",
		http.StatusConflict,
	)

	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user id",
		http.StatusBadRequest,
	)
)
