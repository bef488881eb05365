package attendance

import (
	"errors"
	"strings"

	attendanceerrors "go-ems/internal/attendance/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return attendanceerrors.ErrAttendanceNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return attendanceerrors.ErrAttendanceAlreadyExists
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "uq_attendance_employee_date") || strings.Contains(errMsg, "unique constraint failed") {
		return attendanceerrors.ErrAttendanceAlreadyExists
	}

	return err
}
