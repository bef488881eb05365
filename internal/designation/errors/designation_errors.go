package designationerrors

import (
	"net/http"

	"go-ems/internal/shared/apperror"
)

var (
	ErrDesignationNotFound = apperror.New(
		apperror.CodeNotFound,
		"Designation not found",
		http.StatusNotFound,
	)
	ErrDesignationAlreadyExists = apperror.New(
		apperror.CodeDuplicate,
		"Designation with the same name already exists in this department",
		http.StatusConflict,
	)
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"Department does not exist",
		http.StatusBadRequest,
	)
	ErrInvalidDepartmentID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid department_id",
		http.StatusBadRequest,
	)
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid company id",
		http.StatusBadRequest,
	)
)
