package department

import (
	"errors"
	"strings"

	departmenterrors "go-ems/internal/department/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return departmenterrors.ErrDepartmentNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return departmenterrors.ErrDepartmentInUse
	}
	if strings.Contains(strings.ToLower(err.Error()), "foreign key constraint failed") {
		return departmenterrors.ErrDepartmentInUse
	}

	return err
}
