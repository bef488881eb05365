package dashboarderrors

import (
	"net/http"

	"go-ems/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid period format, expected YYYY-MM",
		http.StatusBadRequest,
	)
)
