package leave

import (
	"errors"

	employeeerrors "go-ems/internal/employee/errors"
	leaveerrors "go-ems/internal/leave/errors"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrLeaveNotFound
	}
	return err
}

func mapEmployeeError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, employeeerrors.ErrEmployeeNotFound) {
		return leaveerrors.ErrEmployeeNotFound
	}
	return err
}
