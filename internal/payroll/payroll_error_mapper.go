package payroll

import (
	"errors"
	"strings"

	employeeerrors "go-ems/internal/employee/errors"
	payrollerrors "go-ems/internal/payroll/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return payrollerrors.ErrPayrollNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return payrollerrors.ErrPayrollAlreadyExists
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "uq_payroll_employee_period") || strings.Contains(errMsg, "unique constraint failed") {
		return payrollerrors.ErrPayrollAlreadyExists
	}

	return err
}

func mapEmployeeError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, employeeerrors.ErrEmployeeNotFound) {
		return payrollerrors.ErrEmployeeNotFound
	}
	return err
}
