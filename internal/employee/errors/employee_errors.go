package employeeerrors

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
	ErrEmployeeAlreadyExists = apperror.New(
		apperror.CodeDuplicate,
		"Employee with the same email already exists",
		http.StatusConflict,
	)
	ErrEmployeeCodeAlreadyExists = apperror.New(
		apperror.CodeDuplicate,
		"Employee code already exists in this company",
		http.StatusConflict,
	)
	ErrConcurrentBalanceUpdate = apperror.New(
		apperror.CodeConflict,
		"Leave balance was changed by another request, please retry",
		http.StatusConflict,
	)
	ErrInvalidJoinDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid join_date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidEmploymentStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employment status",
		http.StatusBadRequest,
	)
	ErrNegativeSalary = apperror.New(
		apperror.CodeInvalidInput,
		"Base salary and allowances must not be negative",
		http.StatusBadRequest,
	)
	ErrNegativeLeaveBalance = apperror.New(
		apperror.CodeInvalidInput,
		"Leave balances must not be negative",
		http.StatusBadRequest,
	)
	ErrEmployeeTerminated = apperror.New(
		apperror.CodeInvalidState,
		"Employee is already terminated",
		http.StatusBadRequest,
	)
	ErrUnknownDepartment = apperror.New(
		apperror.CodeInvalidInput,
		"Department is not defined for this company",
		http.StatusBadRequest,
	)
	ErrUnknownDesignation = apperror.New(
		apperror.CodeInvalidInput,
		"Designation is not defined for this department",
		http.StatusBadRequest,
	)
)
