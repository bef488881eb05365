package employee

import (
	"errors"
	"strings"

	employeeerrors "go-ems/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "uq_employee_code":
				return employeeerrors.ErrEmployeeCodeAlreadyExists
			case "uq_employee_email":
				return employeeerrors.ErrEmployeeAlreadyExists
			}
		}
	}

	// sqlite and wrapped driver errors only carry the constraint in the message.
	errMsg := strings.ToLower(err.Error())
	isUnique := strings.Contains(errMsg, "duplicate key value") || strings.Contains(errMsg, "unique constraint failed")
	if isUnique && (strings.Contains(errMsg, "uq_employee_code") || strings.Contains(errMsg, "employee_code")) {
		return employeeerrors.ErrEmployeeCodeAlreadyExists
	}
	if isUnique && (strings.Contains(errMsg, "uq_employee_email") || strings.Contains(errMsg, "email")) {
		return employeeerrors.ErrEmployeeAlreadyExists
	}

	return err
}
