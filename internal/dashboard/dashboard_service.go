package dashboard

import (
	"context"
	"errors"
	"time"

	"go-ems/internal/attendance"
	dashboarderrors "go-ems/internal/dashboard/errors"
	"go-ems/internal/employee"
	"go-ems/internal/leave"
	"go-ems/internal/payroll"
	"go-ems/internal/shared/contextutil"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const unassignedDepartment = "Unassigned"

type EmployeeReader interface {
	FindAllByCompany(ctx context.Context, companyID string) ([]employee.Employee, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*employee.Employee, error)
}

type AttendanceReader interface {
	FindAll(ctx context.Context, companyID string, filter attendance.Filter) ([]attendance.Attendance, error)
}

type AttendanceSummarizer interface {
	Summary(ctx context.Context, companyID, employeeID string, from, to time.Time) (attendance.Summary, error)
}

type LeaveReader interface {
	FindAll(ctx context.Context, companyID string, filter leave.Filter) ([]leave.Leave, error)
	FindApprovedInRange(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]leave.Leave, error)
}

type PayrollReader interface {
	FindAll(ctx context.Context, companyID string, filter payroll.Filter) ([]payroll.Payroll, error)
}

// Service only reads. Every figure is computed from the owning module's rows on request.
type Service interface {
	CompanySummary(ctx context.Context, companyID string) (CompanySummaryResponse, error)
	EmployeeMonthly(ctx context.Context, companyID, employeeID, period string) (EmployeeMonthlyResponse, error)
}

type service struct {
	employees  EmployeeReader
	attendance AttendanceReader
	summarizer AttendanceSummarizer
	leaves     LeaveReader
	payrolls   PayrollReader
	now        func() time.Time
	logger     *zap.Logger
}

func NewService(
	employees EmployeeReader,
	attendanceRepo AttendanceReader,
	summarizer AttendanceSummarizer,
	leaves LeaveReader,
	payrolls PayrollReader,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("dashboard.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dashboard.service")
	}
	return &service{
		employees:  employees,
		attendance: attendanceRepo,
		summarizer: summarizer,
		leaves:     leaves,
		payrolls:   payrolls,
		now:        func() time.Time { return time.Now().UTC() },
		logger:     l,
	}
}

func (s *service) CompanySummary(ctx context.Context, companyID string) (CompanySummaryResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	period := payroll.Period{Year: now.Year(), Month: now.Month()}

	resp := CompanySummaryResponse{
		Date:                  today.Format("2006-01-02"),
		Period:                period.String(),
		EmployeesByStatus:     map[string]int{},
		EmployeesByDepartment: map[string]int{},
		PayrollsByStatus:      map[string]int{},
	}

	var (
		employees []employee.Employee
		marked    []attendance.Attendance
		pending   []leave.Leave
		approved  []leave.Leave
		payrolls  []payroll.Payroll
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		employees, err = s.employees.FindAllByCompany(gctx, companyID)
		return err
	})
	g.Go(func() (err error) {
		marked, err = s.attendance.FindAll(gctx, companyID, attendance.Filter{From: &today, To: &today})
		return err
	})
	g.Go(func() (err error) {
		pending, err = s.leaves.FindAll(gctx, companyID, leave.Filter{Status: leave.StatusPending})
		return err
	})
	g.Go(func() (err error) {
		approved, err = s.leaves.FindAll(gctx, companyID, leave.Filter{Status: leave.StatusApproved})
		return err
	})
	g.Go(func() (err error) {
		payrolls, err = s.payrolls.FindAll(gctx, companyID, payroll.Filter{Period: period.String()})
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("company summary read failed",
			zap.String("request_id", rid),
			zap.String("company_id", companyID),
			zap.Error(err),
		)
		return CompanySummaryResponse{}, err
	}

	for _, e := range employees {
		resp.TotalEmployees++
		resp.EmployeesByStatus[string(e.EmploymentStatus)]++
		if e.EmploymentStatus == employee.StatusTerminated {
			continue
		}
		dept := e.Department
		if dept == "" {
			dept = unassignedDepartment
		}
		resp.EmployeesByDepartment[dept]++
	}

	for _, a := range marked {
		switch a.Status {
		case attendance.StatusPresent, attendance.StatusLate, attendance.StatusHalfDay:
			resp.AttendanceToday++
		case attendance.StatusLeave:
			resp.OnLeaveToday++
		}
	}

	resp.PendingLeaves = len(pending)
	resp.ApprovedLeaves = len(approved)

	for _, p := range payrolls {
		resp.PayrollsByStatus[string(p.Status)]++
		if p.Status != payroll.StatusCancelled {
			resp.PayrollsThisMonth++
		}
	}

	return resp, nil
}

// EmployeeMonthly defaults to the current month when period is empty.
func (s *service) EmployeeMonthly(ctx context.Context, companyID, employeeID, period string) (EmployeeMonthlyResponse, error) {
	p := payroll.Period{Year: s.now().Year(), Month: s.now().Month()}
	if period != "" {
		parsed, err := payroll.ParsePeriod(period)
		if err != nil {
			return EmployeeMonthlyResponse{}, dashboarderrors.ErrInvalidPeriod
		}
		p = parsed
	}
	from, to := p.Range()

	empl, err := s.employees.FindByIDAndCompany(ctx, companyID, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeMonthlyResponse{}, dashboarderrors.ErrEmployeeNotFound
		}
		return EmployeeMonthlyResponse{}, err
	}

	sum, err := s.summarizer.Summary(ctx, companyID, employeeID, from, to)
	if err != nil {
		return EmployeeMonthlyResponse{}, err
	}

	leaves, err := s.leaves.FindApprovedInRange(ctx, companyID, employeeID, from, to)
	if err != nil {
		s.logger.Error("monthly leave read failed", zap.String("employee_id", employeeID), zap.Error(err))
		return EmployeeMonthlyResponse{}, err
	}
	taken := 0
	for _, l := range leaves {
		taken += leave.OverlapDays(l.StartDate, l.EndDate, from, to)
	}

	return EmployeeMonthlyResponse{
		EmployeeID:     empl.ID.String(),
		EmployeeCode:   empl.EmployeeCode,
		FullName:       empl.FullName,
		Department:     empl.Department,
		Period:         p.String(),
		WorkingDays:    sum.WorkingDays,
		OvertimeHours:  sum.OvertimeHours.StringFixed(2),
		LeaveDaysTaken: taken,
		LeaveBalances: LeaveBalancesResponse{
			Annual: empl.AnnualLeaveBalance,
			Sick:   empl.SickLeaveBalance,
			Casual: empl.CasualLeaveBalance,
		},
	}, nil
}
