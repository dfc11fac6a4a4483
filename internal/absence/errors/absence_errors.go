package absenceerrors

import (
	"net/http"

	"go-readiness/internal/shared/apperror"
)

var (
	ErrAbsenceNotFound = apperror.New(
		apperror.CodeNotFound,
		"Absence not found",
		http.StatusNotFound,
	)

	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)

	ErrTeamNotFound = apperror.New(
		apperror.CodeNotFound,
		"Team not found",
		http.StatusNotFound,
	)

	ErrNotOwner = apperror.New(
		apperror.CodeForbidden,
		"Absence belongs to another worker",
		http.StatusForbidden,
	)

	ErrAlreadyJustified = apperror.New(
		apperror.CodeInvalidState,
		"Absence has already been justified",
		http.StatusUnprocessableEntity,
	)

	ErrAlreadyReviewed = apperror.New(
		apperror.CodeInvalidState,
		"Absence has already been reviewed",
		http.StatusUnprocessableEntity,
	)

	ErrNotYetJustified = apperror.New(
		apperror.CodeInvalidState,
		"Absence has not been justified yet",
		http.StatusUnprocessableEntity,
	)

	ErrInvalidReviewStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Review status must be EXCUSED or UNEXCUSED",
		http.StatusBadRequest,
	)
)
