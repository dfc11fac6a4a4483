package summaryerrors

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

	ErrSummaryNotFound = apperror.New(
		apperror.CodeNotFound,
		"Summary not found for that team and date",
		http.StatusNotFound,
	)
)
