package designation

import (
	"errors"

	designationerrors "go-ems/internal/designation/errors"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return designationerrors.ErrDesignationNotFound
	}
	return err
}
