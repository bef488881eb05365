package payrollerrors

import (
	"net/http"

	"go-ems/internal/shared/apperror"
)

var (
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidPeriodFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid period format, expected YYYY-MM",
		http.StatusBadRequest,
	)
	ErrInvalidMoneyValue = apperror.New(
		apperror.CodeInvalidInput,
		"salary component values must be non-negative decimals",
		http.StatusBadRequest,
	)
	ErrPayrollNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotActive = apperror.New(
		apperror.CodeInvalidState,
		"employee is not active",
		http.StatusBadRequest,
	)
	ErrPayrollAlreadyExists = apperror.New(
		apperror.CodeDuplicate,
		"payroll already exists for this employee and period",
		http.StatusConflict,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"invalid payroll status transition",
		http.StatusBadRequest,
	)
	ErrOnlyDraftEditable = apperror.New(
		apperror.CodeInvalidState,
		"payroll can only be edited while status is DRAFT",
		http.StatusBadRequest,
	)
	ErrDeleteNotAllowed = apperror.New(
		apperror.CodeInvalidState,
		"approved or paid payroll cannot be deleted",
		http.StatusBadRequest,
	)
	ErrPayslipNotAvailable = apperror.New(
		apperror.CodeInvalidState,
		"payslip is only available for approved or paid payroll",
		http.StatusBadRequest,
	)
)
