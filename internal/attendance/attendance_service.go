package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	attendanceerrors "go-ems/internal/attendance/errors"
	"go-ems/internal/shared/apperror"
	"go-ems/internal/shared/contextutil"
	"go-ems/internal/shared/keylock"
	"go-ems/internal/shared/money"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	CheckIn(ctx context.Context, companyID, employeeID string, req CheckInRequest) (AttendanceResponse, error)
	CheckOut(ctx context.Context, companyID, employeeID string, req CheckOutRequest) (AttendanceResponse, error)
	Create(ctx context.Context, companyID string, req CreateAttendanceRequest) (AttendanceResponse, error)
	Approve(ctx context.Context, companyID, approverID, id string) (AttendanceResponse, error)
	GetAll(ctx context.Context, companyID string, filter GetAttendanceFilterRequest) ([]AttendanceResponse, error)
	GetByID(ctx context.Context, companyID, id string) (AttendanceResponse, error)
	Summary(ctx context.Context, companyID, employeeID string, from, to time.Time) (Summary, error)
	MarkLeaveDays(ctx context.Context, companyID, employeeID string, from, to time.Time, remarks string) (int, error)
	UnmarkLeaveDays(ctx context.Context, companyID, employeeID string, from, to time.Time) (int, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	locks  *keylock.Locker
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		locks:  keylock.New(),
		now:    func() time.Time { return time.Now().UTC() },
		logger: l,
	}
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dayKey(employeeID string, day time.Time) string {
	return employeeID + ":" + day.Format(dateLayout)
}

func parseIDs(companyID, employeeID string) (uuid.UUID, uuid.UUID, error) {
	cid, err := uuid.Parse(companyID)
	if err != nil {
		return uuid.Nil, uuid.Nil, apperror.InvalidField("Company ID")
	}
	eid, err := uuid.Parse(employeeID)
	if err != nil {
		return uuid.Nil, uuid.Nil, apperror.InvalidField("Employee ID")
	}
	return cid, eid, nil
}

func parseTimestamp(v *string) (*time.Time, error) {
	if v == nil || *v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *v)
	if err != nil {
		return nil, attendanceerrors.ErrInvalidTimestamp
	}
	t = t.UTC()
	return &t, nil
}

func parseBreak(start, end *string) (*time.Time, *time.Time, error) {
	bs, err := parseTimestamp(start)
	if err != nil {
		return nil, nil, err
	}
	be, err := parseTimestamp(end)
	if err != nil {
		return nil, nil, err
	}
	if bs != nil && be != nil && be.Before(*bs) {
		return nil, nil, attendanceerrors.ErrInvalidBreakRange
	}
	return bs, be, nil
}

func (s *service) CheckIn(ctx context.Context, companyID, employeeID string, req CheckInRequest) (AttendanceResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("check-in requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("employee_id", employeeID),
	)

	cid, eid, err := parseIDs(companyID, employeeID)
	if err != nil {
		return AttendanceResponse{}, err
	}

	now := s.now()
	today := dayOf(now)

	unlock := s.locks.Lock(dayKey(employeeID, today))
	defer unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("check-in begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	existing, err := qtx.FindByEmployeeAndDate(ctx, companyID, employeeID, today)
	if err == nil {
		rejectErr := attendanceerrors.ErrAttendanceAlreadyExists
		if existing.CheckIn != nil {
			rejectErr = attendanceerrors.ErrAlreadyCheckedIn
		}
		s.logger.Warn("check-in rejected",
			zap.String("request_id", rid),
			zap.String("employee_id", employeeID),
			zap.String("attendance_id", existing.ID.String()),
			zap.Error(rejectErr),
		)
		return AttendanceResponse{}, rejectErr
	}
	if mapped := mapRepositoryError(err); !errors.Is(mapped, attendanceerrors.ErrAttendanceNotFound) {
		s.logger.Error("check-in lookup failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, mapped
	}

	source := req.Source
	if source == "" {
		source = SourceManual
	}

	row := &Attendance{
		ID:              uuid.New(),
		CompanyID:       cid,
		EmployeeID:      eid,
		AttendanceDate:  today,
		CheckIn:         &now,
		HoursWorked:     money.Zero,
		OvertimeHours:   money.Zero,
		BreakHours:      money.Zero,
		Status:          StatusPresent,
		Source:          source,
		CheckInLocation: req.Location,
		Remarks:         req.Remarks,
	}

	if err := qtx.Create(ctx, row); err != nil {
		s.logger.Error("check-in persist failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("check-in commit failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, err
	}

	s.logger.Info("checked in",
		zap.String("request_id", rid),
		zap.String("attendance_id", row.ID.String()),
		zap.String("employee_id", employeeID),
	)
	return mapToResponse(*row), nil
}

func (s *service) CheckOut(ctx context.Context, companyID, employeeID string, req CheckOutRequest) (AttendanceResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("check-out requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("employee_id", employeeID),
	)

	breakStart, breakEnd, err := parseBreak(req.BreakStart, req.BreakEnd)
	if err != nil {
		s.logger.Warn("check-out invalid input", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, err
	}

	now := s.now()
	today := dayOf(now)

	unlock := s.locks.Lock(dayKey(employeeID, today))
	defer unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("check-out begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByEmployeeAndDate(ctx, companyID, employeeID, today)
	if err != nil {
		mapped := mapRepositoryError(err)
		if errors.Is(mapped, attendanceerrors.ErrAttendanceNotFound) {
			s.logger.Warn("check-out without check-in", zap.String("request_id", rid), zap.String("employee_id", employeeID))
			return AttendanceResponse{}, attendanceerrors.ErrCheckInNotFound
		}
		s.logger.Error("check-out lookup failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, mapped
	}
	if row.CheckIn == nil {
		return AttendanceResponse{}, attendanceerrors.ErrCheckInNotFound
	}
	if row.CheckOut != nil {
		s.logger.Warn("check-out rejected: already checked out",
			zap.String("request_id", rid),
			zap.String("attendance_id", row.ID.String()),
		)
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedOut
	}

	row.CheckOut = &now
	row.BreakStart = breakStart
	row.BreakEnd = breakEnd
	if req.Location != nil {
		row.CheckOutLocation = req.Location
	}
	if req.Remarks != nil {
		row.Remarks = req.Remarks
	}
	row.applyHours(DeriveHours(*row.CheckIn, now, breakStart, breakEnd))

	if err := qtx.Update(ctx, row); err != nil {
		s.logger.Error("check-out persist failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("check-out commit failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, err
	}

	s.logger.Info("checked out",
		zap.String("request_id", rid),
		zap.String("attendance_id", row.ID.String()),
		zap.String("hours_worked", row.HoursWorked.StringFixed(money.Scale)),
		zap.String("status", string(row.Status)),
	)
	return mapToResponse(*row), nil
}

func (s *service) Create(ctx context.Context, companyID string, req CreateAttendanceRequest) (AttendanceResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create attendance requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("attendance_date", req.AttendanceDate),
	)

	row, err := buildManualRecord(companyID, req)
	if err != nil {
		s.logger.Warn("create attendance invalid input", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, err
	}

	unlock := s.locks.Lock(dayKey(req.EmployeeID, row.AttendanceDate))
	defer unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create attendance begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByEmployeeAndDate(ctx, companyID, req.EmployeeID, row.AttendanceDate); err == nil {
		s.logger.Warn("create attendance rejected: duplicate",
			zap.String("request_id", rid),
			zap.String("employee_id", req.EmployeeID),
			zap.String("attendance_date", req.AttendanceDate),
		)
		return AttendanceResponse{}, attendanceerrors.ErrAttendanceAlreadyExists
	} else if mapped := mapRepositoryError(err); !errors.Is(mapped, attendanceerrors.ErrAttendanceNotFound) {
		s.logger.Error("create attendance lookup failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, mapped
	}

	if err := qtx.Create(ctx, row); err != nil {
		s.logger.Error("create attendance persist failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("create attendance commit failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, err
	}

	s.logger.Info("attendance created",
		zap.String("request_id", rid),
		zap.String("attendance_id", row.ID.String()),
		zap.String("status", string(row.Status)),
	)
	return mapToResponse(*row), nil
}

// buildManualRecord validates a manual entry. With both timestamps present the
// status is derived from worked hours and any supplied status is ignored.
func buildManualRecord(companyID string, req CreateAttendanceRequest) (*Attendance, error) {
	cid, eid, err := parseIDs(companyID, req.EmployeeID)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse(dateLayout, req.AttendanceDate)
	if err != nil {
		return nil, attendanceerrors.ErrInvalidDate
	}

	checkIn, err := parseTimestamp(req.CheckIn)
	if err != nil {
		return nil, err
	}
	checkOut, err := parseTimestamp(req.CheckOut)
	if err != nil {
		return nil, err
	}
	breakStart, breakEnd, err := parseBreak(req.BreakStart, req.BreakEnd)
	if err != nil {
		return nil, err
	}

	source := req.Source
	if source == "" {
		source = SourceManual
	}

	row := &Attendance{
		ID:               uuid.New(),
		CompanyID:        cid,
		EmployeeID:       eid,
		AttendanceDate:   date,
		CheckIn:          checkIn,
		CheckOut:         checkOut,
		BreakStart:       breakStart,
		BreakEnd:         breakEnd,
		HoursWorked:      money.Zero,
		OvertimeHours:    money.Zero,
		BreakHours:       money.Zero,
		Source:           source,
		CheckInLocation:  req.CheckInLocation,
		CheckOutLocation: req.CheckOutLocation,
		Remarks:          req.Remarks,
	}

	if checkIn != nil && checkOut != nil {
		if checkOut.Before(*checkIn) {
			return nil, attendanceerrors.ErrInvalidTimeRange
		}
		row.applyHours(DeriveHours(*checkIn, *checkOut, breakStart, breakEnd))
		return row, nil
	}

	row.Status = StatusAbsent
	if checkIn != nil {
		row.Status = StatusPresent
	}
	if req.Status != "" {
		row.Status = Status(req.Status)
	}
	if !row.Status.Valid() {
		return nil, attendanceerrors.ErrInvalidStatus
	}
	return row, nil
}

func (s *service) Approve(ctx context.Context, companyID, approverID, id string) (AttendanceResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("approve attendance requested",
		zap.String("request_id", rid),
		zap.String("attendance_id", id),
		zap.String("approver_id", approverID),
	)

	approver, err := uuid.Parse(approverID)
	if err != nil {
		return AttendanceResponse{}, apperror.InvalidField("Approver ID")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("approve attendance begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByID(ctx, companyID, id)
	if err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}
	if row.IsApproved {
		s.logger.Warn("approve attendance rejected: already approved", zap.String("attendance_id", id))
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyApproved
	}

	now := s.now()
	row.IsApproved = true
	row.ApprovedBy = &approver
	row.ApprovedAt = &now

	if err := qtx.Update(ctx, row); err != nil {
		s.logger.Error("approve attendance persist failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("approve attendance commit failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, err
	}

	s.logger.Info("attendance approved", zap.String("request_id", rid), zap.String("attendance_id", id))
	return mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context, companyID string, req GetAttendanceFilterRequest) ([]AttendanceResponse, error) {
	filter := Filter{EmployeeID: req.EmployeeID, Status: Status(req.Status)}
	if req.From != "" {
		from, err := time.Parse(dateLayout, req.From)
		if err != nil {
			return nil, attendanceerrors.ErrInvalidDate
		}
		filter.From = &from
	}
	if req.To != "" {
		to, err := time.Parse(dateLayout, req.To)
		if err != nil {
			return nil, attendanceerrors.ErrInvalidDate
		}
		filter.To = &to
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, attendanceerrors.ErrInvalidDateRange
	}

	rows, err := s.repo.FindAll(ctx, companyID, filter)
	if err != nil {
		s.logger.Error("list attendance failed", zap.String("company_id", companyID), zap.Error(err))
		return nil, err
	}

	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (AttendanceResponse, error) {
	row, err := s.repo.FindByID(ctx, companyID, id)
	if err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*row), nil
}

// Summary reads without locking.
func (s *service) Summary(ctx context.Context, companyID, employeeID string, from, to time.Time) (Summary, error) {
	if to.Before(from) {
		return Summary{}, attendanceerrors.ErrInvalidDateRange
	}

	rows, err := s.repo.FindByEmployeeAndRange(ctx, companyID, employeeID, dayOf(from), dayOf(to))
	if err != nil {
		s.logger.Error("attendance summary failed",
			zap.String("company_id", companyID),
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return Summary{}, err
	}
	return Accumulate(rows), nil
}

// MarkLeaveDays inserts a LEAVE row for every day in [from, to] that has no
// record yet and returns how many were inserted. Re-running it is a no-op.
func (s *service) MarkLeaveDays(ctx context.Context, companyID, employeeID string, from, to time.Time, remarks string) (int, error) {
	rid := contextutil.GetRequestID(ctx)

	cid, eid, err := parseIDs(companyID, employeeID)
	if err != nil {
		return 0, err
	}
	from, to = dayOf(from), dayOf(to)
	if to.Before(from) {
		return 0, attendanceerrors.ErrInvalidDateRange
	}

	// Days are locked in ascending order so overlapping ranges cannot deadlock.
	var unlocks []func()
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		unlocks = append(unlocks, s.locks.Lock(dayKey(employeeID, day)))
	}
	defer func() {
		for _, unlock := range unlocks {
			unlock()
		}
	}()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("mark leave days begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return 0, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	existing, err := qtx.FindByEmployeeAndRange(ctx, companyID, employeeID, from, to)
	if err != nil {
		s.logger.Error("mark leave days lookup failed", zap.String("request_id", rid), zap.Error(err))
		return 0, err
	}
	taken := make(map[string]struct{}, len(existing))
	for _, row := range existing {
		taken[row.AttendanceDate.Format(dateLayout)] = struct{}{}
	}

	var note *string
	if remarks != "" {
		note = &remarks
	}

	inserted := 0
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		if _, ok := taken[day.Format(dateLayout)]; ok {
			continue
		}
		row := &Attendance{
			ID:             uuid.New(),
			CompanyID:      cid,
			EmployeeID:     eid,
			AttendanceDate: day,
			HoursWorked:    money.Zero,
			OvertimeHours:  money.Zero,
			BreakHours:     money.Zero,
			Status:         StatusLeave,
			Source:         SourceSystem,
			Remarks:        note,
		}
		if err := qtx.Create(ctx, row); err != nil {
			s.logger.Error("mark leave day persist failed",
				zap.String("request_id", rid),
				zap.String("attendance_date", day.Format(dateLayout)),
				zap.Error(err),
			)
			return 0, mapRepositoryError(err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("mark leave days commit failed", zap.String("request_id", rid), zap.Error(err))
		return 0, err
	}

	s.logger.Info("leave days marked",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID),
		zap.String("from", from.Format(dateLayout)),
		zap.String("to", to.Format(dateLayout)),
		zap.Int("inserted", inserted),
	)
	return inserted, nil
}

// UnmarkLeaveDays deletes the SYSTEM LEAVE rows in [from, to] so the days can
// be checked in again. Manual rows are untouched.
func (s *service) UnmarkLeaveDays(ctx context.Context, companyID, employeeID string, from, to time.Time) (int, error) {
	rid := contextutil.GetRequestID(ctx)

	if _, _, err := parseIDs(companyID, employeeID); err != nil {
		return 0, err
	}
	from, to = dayOf(from), dayOf(to)
	if to.Before(from) {
		return 0, attendanceerrors.ErrInvalidDateRange
	}

	var unlocks []func()
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		unlocks = append(unlocks, s.locks.Lock(dayKey(employeeID, day)))
	}
	defer func() {
		for _, unlock := range unlocks {
			unlock()
		}
	}()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("unmark leave days begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return 0, err
	}
	defer tx.Rollback()

	removed, err := s.repo.WithTx(tx).DeleteSystemLeaveDays(ctx, companyID, employeeID, from, to)
	if err != nil {
		s.logger.Error("unmark leave days delete failed", zap.String("request_id", rid), zap.Error(err))
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("unmark leave days commit failed", zap.String("request_id", rid), zap.Error(err))
		return 0, err
	}

	s.logger.Info("leave days cleared",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID),
		zap.String("from", from.Format(dateLayout)),
		zap.String("to", to.Format(dateLayout)),
		zap.Int64("removed", removed),
	)
	return int(removed), nil
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.Format(time.RFC3339)
	return &v
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:               a.ID.String(),
		CompanyID:        a.CompanyID.String(),
		EmployeeID:       a.EmployeeID.String(),
		AttendanceDate:   a.AttendanceDate.Format(dateLayout),
		CheckIn:          formatTime(a.CheckIn),
		CheckOut:         formatTime(a.CheckOut),
		BreakStart:       formatTime(a.BreakStart),
		BreakEnd:         formatTime(a.BreakEnd),
		HoursWorked:      a.HoursWorked.StringFixed(money.Scale),
		OvertimeHours:    a.OvertimeHours.StringFixed(money.Scale),
		BreakHours:       a.BreakHours.StringFixed(money.Scale),
		Status:           a.Status,
		Source:           a.Source,
		CheckInLocation:  a.CheckInLocation,
		CheckOutLocation: a.CheckOutLocation,
		Remarks:          a.Remarks,
		IsApproved:       a.IsApproved,
		ApprovedAt:       formatTime(a.ApprovedAt),
	}
	if a.ApprovedBy != nil {
		v := a.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	return resp
}
