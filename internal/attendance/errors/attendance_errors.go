package attendanceerrors

import (
	"net/http"

	"go-ems/internal/shared/apperror"
)

var (
	ErrAttendanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"Attendance not found",
		http.StatusNotFound,
	)
	ErrCheckInNotFound = apperror.New(
		apperror.CodeNotFound,
		"No check-in recorded for this date",
		http.StatusNotFound,
	)
	ErrAttendanceAlreadyExists = apperror.New(
		apperror.CodeDuplicate,
		"Attendance for this employee and date already exists",
		http.StatusConflict,
	)
	ErrAlreadyCheckedIn = apperror.New(
		apperror.CodeInvalidState,
		"Already checked in for this date",
		http.StatusBadRequest,
	)
	ErrAlreadyCheckedOut = apperror.New(
		apperror.CodeInvalidState,
		"Already checked out for this date",
		http.StatusBadRequest,
	)
	ErrAlreadyApproved = apperror.New(
		apperror.CodeInvalidState,
		"Attendance is already approved",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"End date must not be before start date",
		http.StatusBadRequest,
	)
	ErrInvalidTimestamp = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid timestamp, expected RFC3339",
		http.StatusBadRequest,
	)
	ErrInvalidTimeRange = apperror.New(
		apperror.CodeInvalidInput,
		"Check-out must be after check-in",
		http.StatusBadRequest,
	)
	ErrInvalidBreakRange = apperror.New(
		apperror.CodeInvalidInput,
		"Break end must be after break start",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid attendance status",
		http.StatusBadRequest,
	)
)
