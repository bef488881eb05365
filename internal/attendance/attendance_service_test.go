package attendance

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	attendanceerrors "go-ems/internal/attendance/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn                 func(tx *sql.Tx) Repository
	createFn                 func(ctx context.Context, a *Attendance) error
	updateFn                 func(ctx context.Context, a *Attendance) error
	findByIDFn               func(ctx context.Context, companyID, id string) (*Attendance, error)
	findByEmployeeAndDateFn  func(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error)
	findByEmployeeAndRangeFn func(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]Attendance, error)
	findAllFn                func(ctx context.Context, companyID string, filter Filter) ([]Attendance, error)
	deleteSystemLeaveDaysFn  func(ctx context.Context, companyID, employeeID string, from, to time.Time) (int64, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository {
	if f.withTxFn == nil {
		return f
	}
	return f.withTxFn(tx)
}
func (f *fakeRepo) Create(ctx context.Context, a *Attendance) error { return f.createFn(ctx, a) }
func (f *fakeRepo) Update(ctx context.Context, a *Attendance) error { return f.updateFn(ctx, a) }
func (f *fakeRepo) FindByID(ctx context.Context, companyID, id string) (*Attendance, error) {
	return f.findByIDFn(ctx, companyID, id)
}
func (f *fakeRepo) FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error) {
	return f.findByEmployeeAndDateFn(ctx, companyID, employeeID, date)
}
func (f *fakeRepo) FindByEmployeeAndRange(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]Attendance, error) {
	return f.findByEmployeeAndRangeFn(ctx, companyID, employeeID, from, to)
}
func (f *fakeRepo) FindAll(ctx context.Context, companyID string, filter Filter) ([]Attendance, error) {
	return f.findAllFn(ctx, companyID, filter)
}
func (f *fakeRepo) DeleteSystemLeaveDays(ctx context.Context, companyID, employeeID string, from, to time.Time) (int64, error) {
	return f.deleteSystemLeaveDaysFn(ctx, companyID, employeeID, from, to)
}

func newTestService(t *testing.T, repo Repository, now time.Time) (*service, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := NewService(db, repo, zap.NewNop()).(*service)
	svc.now = func() time.Time { return now }
	return svc, mock
}

func strPtr(s string) *string { return &s }

func TestService_CheckInAndCheckOut(t *testing.T) {
	companyID := uuid.New().String()
	employeeID := uuid.New().String()
	ctx := context.Background()

	var saved *Attendance
	repo := &fakeRepo{}
	repo.createFn = func(ctx context.Context, a *Attendance) error { cp := *a; saved = &cp; return nil }
	repo.updateFn = func(ctx context.Context, a *Attendance) error { cp := *a; saved = &cp; return nil }
	repo.findByEmployeeAndDateFn = func(ctx context.Context, cid, eid string, date time.Time) (*Attendance, error) {
		assert.Equal(t, "2026-03-02", date.Format(dateLayout))
		if saved == nil {
			return nil, gorm.ErrRecordNotFound
		}
		cp := *saved
		return &cp, nil
	}

	svc, mock := newTestService(t, repo, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))

	mock.ExpectBegin()
	mock.ExpectCommit()
	inResp, err := svc.CheckIn(ctx, companyID, employeeID, CheckInRequest{Location: strPtr("HQ")})
	assert.NoError(t, err)
	assert.NotEmpty(t, inResp.ID)
	assert.Equal(t, StatusPresent, inResp.Status)
	assert.Equal(t, "2026-03-02", inResp.AttendanceDate)
	assert.Equal(t, SourceManual, inResp.Source)

	svc.now = func() time.Time { return time.Date(2026, 3, 2, 18, 30, 0, 0, time.UTC) }

	mock.ExpectBegin()
	mock.ExpectCommit()
	outResp, err := svc.CheckOut(ctx, companyID, employeeID, CheckOutRequest{
		BreakStart: strPtr("2026-03-02T12:00:00Z"),
		BreakEnd:   strPtr("2026-03-02T12:30:00Z"),
	})
	assert.NoError(t, err)
	assert.NotNil(t, outResp.CheckOut)
	assert.Equal(t, "9.00", outResp.HoursWorked)
	assert.Equal(t, "1.00", outResp.OvertimeHours)
	assert.Equal(t, "0.50", outResp.BreakHours)
	assert.Equal(t, StatusPresent, outResp.Status)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.CheckOut(ctx, companyID, employeeID, CheckOutRequest{})
	assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedOut)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_CheckIn(t *testing.T) {
	companyID := uuid.New().String()
	employeeID := uuid.New().String()
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	t.Run("negative second check-in is invalid state", func(t *testing.T) {
		repo := &fakeRepo{
			findByEmployeeAndDateFn: func(ctx context.Context, cid, eid string, date time.Time) (*Attendance, error) {
				return &Attendance{ID: uuid.New(), CheckIn: &now}, nil
			},
		}
		svc, mock := newTestService(t, repo, now)
		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := svc.CheckIn(context.Background(), companyID, employeeID, CheckInRequest{})

		assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedIn)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative manual record on the same day is a duplicate", func(t *testing.T) {
		repo := &fakeRepo{
			findByEmployeeAndDateFn: func(ctx context.Context, cid, eid string, date time.Time) (*Attendance, error) {
				return &Attendance{ID: uuid.New(), Status: StatusLeave}, nil
			},
		}
		svc, mock := newTestService(t, repo, now)
		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := svc.CheckIn(context.Background(), companyID, employeeID, CheckInRequest{})

		assert.ErrorIs(t, err, attendanceerrors.ErrAttendanceAlreadyExists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative lookup failure rolls back", func(t *testing.T) {
		repo := &fakeRepo{
			findByEmployeeAndDateFn: func(ctx context.Context, cid, eid string, date time.Time) (*Attendance, error) {
				return nil, errors.New("db down")
			},
		}
		svc, mock := newTestService(t, repo, now)
		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := svc.CheckIn(context.Background(), companyID, employeeID, CheckInRequest{})

		assert.EqualError(t, err, "db down")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative invalid employee id", func(t *testing.T) {
		svc, mock := newTestService(t, &fakeRepo{}, now)

		_, err := svc.CheckIn(context.Background(), companyID, "not-a-uuid", CheckInRequest{})

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestService_CheckOut_WithoutCheckIn(t *testing.T) {
	repo := &fakeRepo{
		findByEmployeeAndDateFn: func(ctx context.Context, cid, eid string, date time.Time) (*Attendance, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc, mock := newTestService(t, repo, time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC))
	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.CheckOut(context.Background(), uuid.New().String(), uuid.New().String(), CheckOutRequest{})

	assert.ErrorIs(t, err, attendanceerrors.ErrCheckInNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_CheckOut_InvalidBreak(t *testing.T) {
	svc, mock := newTestService(t, &fakeRepo{}, time.Now())

	_, err := svc.CheckOut(context.Background(), uuid.New().String(), uuid.New().String(), CheckOutRequest{
		BreakStart: strPtr("2026-03-02T13:00:00Z"),
		BreakEnd:   strPtr("2026-03-02T12:00:00Z"),
	})

	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidBreakRange)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create(t *testing.T) {
	companyID := uuid.New().String()
	employeeID := uuid.New().String()

	t.Run("success derives status from hours", func(t *testing.T) {
		var created *Attendance
		repo := &fakeRepo{
			findByEmployeeAndDateFn: func(ctx context.Context, cid, eid string, date time.Time) (*Attendance, error) {
				return nil, gorm.ErrRecordNotFound
			},
			createFn: func(ctx context.Context, a *Attendance) error { created = a; return nil },
		}
		svc, mock := newTestService(t, repo, time.Now())
		mock.ExpectBegin()
		mock.ExpectCommit()

		resp, err := svc.Create(context.Background(), companyID, CreateAttendanceRequest{
			EmployeeID:     employeeID,
			AttendanceDate: "2026-03-03",
			CheckIn:        strPtr("2026-03-03T09:00:00Z"),
			CheckOut:       strPtr("2026-03-03T13:00:00Z"),
			Status:         "PRESENT",
		})

		assert.NoError(t, err)
		assert.Equal(t, StatusHalfDay, resp.Status)
		assert.Equal(t, "4.00", resp.HoursWorked)
		assert.Equal(t, StatusHalfDay, created.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success without timestamps keeps supplied status", func(t *testing.T) {
		repo := &fakeRepo{
			findByEmployeeAndDateFn: func(ctx context.Context, cid, eid string, date time.Time) (*Attendance, error) {
				return nil, gorm.ErrRecordNotFound
			},
			createFn: func(ctx context.Context, a *Attendance) error { return nil },
		}
		svc, mock := newTestService(t, repo, time.Now())
		mock.ExpectBegin()
		mock.ExpectCommit()

		resp, err := svc.Create(context.Background(), companyID, CreateAttendanceRequest{
			EmployeeID:     employeeID,
			AttendanceDate: "2026-03-03",
			Status:         "LEAVE",
		})

		assert.NoError(t, err)
		assert.Equal(t, StatusLeave, resp.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative duplicate date", func(t *testing.T) {
		repo := &fakeRepo{
			findByEmployeeAndDateFn: func(ctx context.Context, cid, eid string, date time.Time) (*Attendance, error) {
				return &Attendance{ID: uuid.New()}, nil
			},
		}
		svc, mock := newTestService(t, repo, time.Now())
		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := svc.Create(context.Background(), companyID, CreateAttendanceRequest{
			EmployeeID:     employeeID,
			AttendanceDate: "2026-03-03",
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrAttendanceAlreadyExists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative unique violation on insert", func(t *testing.T) {
		repo := &fakeRepo{
			findByEmployeeAndDateFn: func(ctx context.Context, cid, eid string, date time.Time) (*Attendance, error) {
				return nil, gorm.ErrRecordNotFound
			},
			createFn: func(ctx context.Context, a *Attendance) error {
				return errors.New(`ERROR: duplicate key value violates unique constraint "uq_attendance_employee_date"`)
			},
		}
		svc, mock := newTestService(t, repo, time.Now())
		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := svc.Create(context.Background(), companyID, CreateAttendanceRequest{
			EmployeeID:     employeeID,
			AttendanceDate: "2026-03-03",
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrAttendanceAlreadyExists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative checkout before checkin", func(t *testing.T) {
		svc, mock := newTestService(t, &fakeRepo{}, time.Now())

		_, err := svc.Create(context.Background(), companyID, CreateAttendanceRequest{
			EmployeeID:     employeeID,
			AttendanceDate: "2026-03-03",
			CheckIn:        strPtr("2026-03-03T17:00:00Z"),
			CheckOut:       strPtr("2026-03-03T09:00:00Z"),
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidTimeRange)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative bad date", func(t *testing.T) {
		svc, _ := newTestService(t, &fakeRepo{}, time.Now())

		_, err := svc.Create(context.Background(), companyID, CreateAttendanceRequest{
			EmployeeID:     employeeID,
			AttendanceDate: "03/03/2026",
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDate)
	})

	t.Run("negative unknown status", func(t *testing.T) {
		svc, _ := newTestService(t, &fakeRepo{}, time.Now())

		_, err := svc.Create(context.Background(), companyID, CreateAttendanceRequest{
			EmployeeID:     employeeID,
			AttendanceDate: "2026-03-03",
			Status:         "WFH",
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidStatus)
	})
}

func TestService_Approve(t *testing.T) {
	companyID := uuid.New().String()
	approverID := uuid.New().String()
	id := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		repo := &fakeRepo{
			findByIDFn: func(ctx context.Context, cid, aid string) (*Attendance, error) {
				return &Attendance{ID: uuid.MustParse(aid), Status: StatusPresent}, nil
			},
			updateFn: func(ctx context.Context, a *Attendance) error {
				assert.True(t, a.IsApproved)
				assert.Equal(t, approverID, a.ApprovedBy.String())
				return nil
			},
		}
		svc, mock := newTestService(t, repo, time.Now())
		mock.ExpectBegin()
		mock.ExpectCommit()

		resp, err := svc.Approve(context.Background(), companyID, approverID, id)

		assert.NoError(t, err)
		assert.True(t, resp.IsApproved)
		assert.NotNil(t, resp.ApprovedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative already approved", func(t *testing.T) {
		repo := &fakeRepo{
			findByIDFn: func(ctx context.Context, cid, aid string) (*Attendance, error) {
				return &Attendance{ID: uuid.MustParse(aid), IsApproved: true}, nil
			},
		}
		svc, mock := newTestService(t, repo, time.Now())
		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := svc.Approve(context.Background(), companyID, approverID, id)

		assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyApproved)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative not found", func(t *testing.T) {
		repo := &fakeRepo{
			findByIDFn: func(ctx context.Context, cid, aid string) (*Attendance, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		svc, mock := newTestService(t, repo, time.Now())
		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := svc.Approve(context.Background(), companyID, approverID, id)

		assert.ErrorIs(t, err, attendanceerrors.ErrAttendanceNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestService_Summary(t *testing.T) {
	from := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)

	repo := &fakeRepo{
		findByEmployeeAndRangeFn: func(ctx context.Context, cid, eid string, f, tt time.Time) ([]Attendance, error) {
			assert.Equal(t, from, f)
			assert.Equal(t, to, tt)
			return []Attendance{
				{Status: StatusPresent, OvertimeHours: DeriveHours(at(9, 0), at(18, 30), nil, nil).Overtime},
				{Status: StatusPresent, OvertimeHours: DeriveHours(at(9, 0), at(17, 0), nil, nil).Overtime},
				{Status: StatusHalfDay, OvertimeHours: DeriveHours(at(9, 0), at(13, 0), nil, nil).Overtime},
			}, nil
		},
	}
	svc, _ := newTestService(t, repo, time.Now())

	sum, err := svc.Summary(context.Background(), uuid.New().String(), uuid.New().String(), from, to)

	assert.NoError(t, err)
	assert.Equal(t, 2, sum.WorkingDays)
	assert.Equal(t, "1.50", sum.OvertimeHours.StringFixed(2))

	_, err = svc.Summary(context.Background(), uuid.New().String(), uuid.New().String(), to, from)
	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDateRange)
}

func TestService_MarkLeaveDays(t *testing.T) {
	companyID := uuid.New().String()
	employeeID := uuid.New().String()
	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)

	var inserted []string
	repo := &fakeRepo{
		findByEmployeeAndRangeFn: func(ctx context.Context, cid, eid string, f, tt time.Time) ([]Attendance, error) {
			return []Attendance{{AttendanceDate: time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC), Status: StatusPresent}}, nil
		},
		createFn: func(ctx context.Context, a *Attendance) error {
			assert.Equal(t, StatusLeave, a.Status)
			assert.Equal(t, SourceSystem, a.Source)
			inserted = append(inserted, a.AttendanceDate.Format(dateLayout))
			return nil
		},
	}
	svc, mock := newTestService(t, repo, time.Now())
	mock.ExpectBegin()
	mock.ExpectCommit()

	n, err := svc.MarkLeaveDays(context.Background(), companyID, employeeID, from, to, "annual leave")

	assert.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"2026-03-02", "2026-03-04"}, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_UnmarkLeaveDays(t *testing.T) {
	companyID := uuid.New().String()
	employeeID := uuid.New().String()
	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		repo := &fakeRepo{
			deleteSystemLeaveDaysFn: func(ctx context.Context, cid, eid string, f, tt time.Time) (int64, error) {
				assert.Equal(t, companyID, cid)
				assert.Equal(t, employeeID, eid)
				assert.Equal(t, "2026-03-02", f.Format(dateLayout))
				assert.Equal(t, "2026-03-04", tt.Format(dateLayout))
				return 2, nil
			},
		}
		svc, mock := newTestService(t, repo, time.Now())
		mock.ExpectBegin()
		mock.ExpectCommit()

		n, err := svc.UnmarkLeaveDays(context.Background(), companyID, employeeID, from, to)

		assert.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative delete failure rolls back", func(t *testing.T) {
		repo := &fakeRepo{
			deleteSystemLeaveDaysFn: func(ctx context.Context, cid, eid string, f, tt time.Time) (int64, error) {
				return 0, errors.New("db down")
			},
		}
		svc, mock := newTestService(t, repo, time.Now())
		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := svc.UnmarkLeaveDays(context.Background(), companyID, employeeID, from, to)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative reversed range", func(t *testing.T) {
		svc, _ := newTestService(t, &fakeRepo{}, time.Now())

		_, err := svc.UnmarkLeaveDays(context.Background(), companyID, employeeID, to, from)

		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDateRange)
	})
}

func TestService_GetAll_InvalidRange(t *testing.T) {
	svc, _ := newTestService(t, &fakeRepo{}, time.Now())

	_, err := svc.GetAll(context.Background(), uuid.New().String(), GetAttendanceFilterRequest{From: "2026-03-10", To: "2026-03-01"})

	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDateRange)
}
