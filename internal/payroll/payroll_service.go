package payroll

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go-ems/internal/attendance"
	"go-ems/internal/employee"
	"go-ems/internal/events"
	"go-ems/internal/messaging/kafka"
	payrollerrors "go-ems/internal/payroll/errors"
	"go-ems/internal/shared/contextutil"
	"go-ems/internal/shared/counter"
	"go-ems/internal/shared/keylock"
	"go-ems/internal/shared/money"
	"go-ems/internal/tax"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	dateLayout = "2006-01-02"

	bulkWorkers = 4
)

// AttendanceSummarizer is the slice of the attendance service payroll reads from.
type AttendanceSummarizer interface {
	Summary(ctx context.Context, companyID, employeeID string, from, to time.Time) (attendance.Summary, error)
}

type LeaveDayCounter interface {
	PaidLeaveDays(ctx context.Context, companyID, employeeID string, from, to time.Time) (int, error)
}

type Payslip struct {
	EmployeeID string
	FileName   string
	Content    []byte
}

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Generate(ctx context.Context, companyID, actorID string, req GeneratePayrollRequest) (PayrollResponse, error)
	GenerateBulk(ctx context.Context, companyID, actorID string, req BulkGenerateRequest) (BulkGenerateResponse, error)
	Create(ctx context.Context, companyID, actorID string, req CreatePayrollRequest) (PayrollResponse, error)
	GetAll(ctx context.Context, companyID string, filter GetPayrollsFilterRequest) ([]PayrollResponse, error)
	GetByID(ctx context.Context, companyID, id string) (PayrollResponse, error)
	GetBreakdown(ctx context.Context, companyID, id string) (PayrollBreakdownResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdatePayrollRequest) (PayrollResponse, error)
	Approve(ctx context.Context, companyID, approverID, id string) (PayrollResponse, error)
	ProcessPayment(ctx context.Context, companyID, actorID, id string) (PayrollResponse, error)
	Cancel(ctx context.Context, companyID, id string) (PayrollResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	Payslip(ctx context.Context, companyID, id string) (Payslip, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	employees  employee.Repository
	attendance AttendanceSummarizer
	leaves     LeaveDayCounter
	counter    counter.Repository
	outbox     kafka.OutboxRepository
	locks      *keylock.Locker
	now        func() time.Time
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees employee.Repository,
	attendanceSvc AttendanceSummarizer,
	leaves LeaveDayCounter,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		employees:  employees,
		attendance: attendanceSvc,
		leaves:     leaves,
		counter:    counterRepo,
		outbox:     outboxRepo,
		locks:      keylock.New(),
		now:        func() time.Time { return time.Now().UTC() },
		logger:     l,
	}
}

// run is one validated generation request.
type run struct {
	companyID       uuid.UUID
	actorID         uuid.UUID
	period          Period
	attendanceBased bool
	payDate         *time.Time
}

func parseOptionalDate(v string) (*time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return nil, payrollerrors.ErrInvalidDateFormat
	}
	return &t, nil
}

func parseAmount(v string) (decimal.Decimal, error) {
	d, err := money.Parse(strings.TrimSpace(v))
	if err != nil || d.IsNegative() {
		return decimal.Decimal{}, payrollerrors.ErrInvalidMoneyValue
	}
	return money.Round2(d), nil
}

func newRun(companyID, actorID, period string, attendanceBased *bool, payDate string) (run, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return run{}, payrollerrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return run{}, payrollerrors.ErrInvalidActorID
	}
	p, err := ParsePeriod(period)
	if err != nil {
		return run{}, err
	}
	pd, err := parseOptionalDate(payDate)
	if err != nil {
		return run{}, err
	}
	r := run{
		companyID:       companyUUID,
		actorID:         actorUUID,
		period:          p,
		attendanceBased: true,
		payDate:         pd,
	}
	if attendanceBased != nil {
		r.attendanceBased = *attendanceBased
	}
	return r, nil
}

func payrollKey(companyID, employeeID string, p Period) string {
	return companyID + ":" + employeeID + ":" + p.String()
}

func (r run) newPayroll(empl *employee.Employee) *Payroll {
	from, to := r.period.Range()
	return &Payroll{
		ID:          uuid.New(),
		CompanyID:   r.companyID,
		EmployeeID:  empl.ID,
		Period:      r.period.String(),
		PeriodStart: from,
		PeriodEnd:   to,
		PayDate:     r.payDate,
		Status:      StatusDraft,
		CreatedBy:   r.actorID,
	}
}

func (s *service) findEmployee(ctx context.Context, companyID, employeeID string) (*employee.Employee, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, payrollerrors.ErrInvalidEmployeeID
	}
	empl, err := s.employees.FindByIDAndCompany(ctx, companyID, employeeID)
	if err != nil {
		return nil, mapEmployeeError(err)
	}
	if empl.EmploymentStatus == employee.StatusTerminated {
		return nil, payrollerrors.ErrEmployeeNotActive
	}
	return empl, nil
}

func (s *service) leaveDays(ctx context.Context, p *Payroll) error {
	if s.leaves == nil {
		return nil
	}
	days, err := s.leaves.PaidLeaveDays(ctx, p.CompanyID.String(), p.EmployeeID.String(), p.PeriodStart, p.PeriodEnd)
	if err != nil {
		return err
	}
	p.LeaveDays = days
	return nil
}

// persist inserts p unless the employee already has a payroll for the period.
func (s *service) persist(ctx context.Context, p *Payroll) error {
	rid := contextutil.GetRequestID(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("payroll begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	existing, err := qtx.FindByEmployeeAndPeriod(ctx, p.CompanyID.String(), p.EmployeeID.String(), p.Period)
	if err == nil && existing != nil {
		return payrollerrors.ErrPayrollAlreadyExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("payroll duplicate check failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	if err := qtx.Create(ctx, p); err != nil {
		s.logger.Error("payroll persist failed", zap.String("request_id", rid), zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("payroll commit failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}
	return nil
}

// generate computes and stores a payroll from the employee record. seed, when
// given, pre-fills caller-supplied figures that the computation keeps.
func (s *service) generate(ctx context.Context, r run, empl *employee.Employee, seed func(*Payroll)) (*Payroll, error) {
	unlock := s.locks.Lock(payrollKey(r.companyID.String(), empl.ID.String(), r.period))
	defer unlock()

	p := r.newPayroll(empl)
	if seed != nil {
		seed(p)
	}

	if r.attendanceBased && s.attendance != nil {
		summary, err := s.attendance.Summary(ctx, p.CompanyID.String(), p.EmployeeID.String(), p.PeriodStart, p.PeriodEnd)
		if err != nil {
			return nil, err
		}
		p.WorkingDays = summary.WorkingDays
		p.OvertimeHours = summary.OvertimeHours
	}

	if err := s.leaveDays(ctx, p); err != nil {
		return nil, err
	}
	if err := p.computeGenerated(empl.BaseSalary, empl.Allowances); err != nil {
		return nil, err
	}
	if err := s.persist(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Generate(ctx context.Context, companyID, actorID string, req GeneratePayrollRequest) (PayrollResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("generate payroll requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("period", req.Period),
	)

	r, err := newRun(companyID, actorID, req.Period, req.AttendanceBased, req.PayDate)
	if err != nil {
		return PayrollResponse{}, err
	}
	empl, err := s.findEmployee(ctx, companyID, req.EmployeeID)
	if err != nil {
		return PayrollResponse{}, err
	}

	p, err := s.generate(ctx, r, empl, nil)
	if err != nil {
		if errors.Is(err, payrollerrors.ErrPayrollAlreadyExists) {
			s.logger.Warn("generate payroll duplicate",
				zap.String("request_id", rid),
				zap.String("employee_id", req.EmployeeID),
				zap.String("period", r.period.String()),
			)
		}
		return PayrollResponse{}, err
	}

	s.logger.Info("payroll generated",
		zap.String("request_id", rid),
		zap.String("payroll_id", p.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.String("period", p.Period),
		zap.String("net_salary", p.NetSalary.StringFixed(money.Scale)),
	)
	return mapToResponse(p), nil
}

// GenerateBulk generates a payroll for every active employee. Employees that already
// have one for the period are counted as skipped.
func (s *service) GenerateBulk(ctx context.Context, companyID, actorID string, req BulkGenerateRequest) (BulkGenerateResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("bulk payroll requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("period", req.Period),
	)

	r, err := newRun(companyID, actorID, req.Period, req.AttendanceBased, req.PayDate)
	if err != nil {
		return BulkGenerateResponse{}, err
	}
	empls, err := s.employees.FindActiveByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("bulk payroll employee lookup failed", zap.String("request_id", rid), zap.Error(err))
		return BulkGenerateResponse{}, err
	}

	res := BulkGenerateResponse{
		Period:    r.period.String(),
		Generated: []PayrollResponse{},
		Failed:    []BulkFailure{},
	}
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(bulkWorkers)
	for i := range empls {
		empl := &empls[i]
		g.Go(func() error {
			p, err := s.generate(ctx, r, empl, nil)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				res.Generated = append(res.Generated, mapToResponse(p))
			case errors.Is(err, payrollerrors.ErrPayrollAlreadyExists):
				res.Skipped++
			default:
				res.Failed = append(res.Failed, BulkFailure{EmployeeID: empl.ID.String(), Error: err.Error()})
			}
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(res.Generated, func(i, j int) bool { return res.Generated[i].EmployeeID < res.Generated[j].EmployeeID })
	sort.Slice(res.Failed, func(i, j int) bool { return res.Failed[i].EmployeeID < res.Failed[j].EmployeeID })

	s.logger.Info("bulk payroll finished",
		zap.String("request_id", rid),
		zap.String("period", res.Period),
		zap.Int("generated", len(res.Generated)),
		zap.Int("skipped", res.Skipped),
		zap.Int("failed", len(res.Failed)),
	)
	return res, nil
}

// supplied holds caller-provided figures shared by Create and Update.
type supplied struct {
	baseSalary      decimal.Decimal
	overtimePay     decimal.Decimal
	bonuses         decimal.Decimal
	allowances      decimal.Decimal
	commissions     decimal.Decimal
	taxDeduction    *decimal.Decimal
	providentFund   decimal.Decimal
	insurance       decimal.Decimal
	loanDeduction   decimal.Decimal
	otherDeductions decimal.Decimal
	overtimeHours   decimal.Decimal
}

func parseSupplied(base, overtimePay, bonuses, allowances, commissions string, taxDeduction *string,
	providentFund, insurance, loan, other, overtimeHours string) (supplied, error) {
	var (
		out supplied
		err error
	)
	fields := []struct {
		raw string
		dst *decimal.Decimal
	}{
		{base, &out.baseSalary},
		{overtimePay, &out.overtimePay},
		{bonuses, &out.bonuses},
		{allowances, &out.allowances},
		{commissions, &out.commissions},
		{providentFund, &out.providentFund},
		{insurance, &out.insurance},
		{loan, &out.loanDeduction},
		{other, &out.otherDeductions},
		{overtimeHours, &out.overtimeHours},
	}
	for _, f := range fields {
		if *f.dst, err = parseAmount(f.raw); err != nil {
			return supplied{}, err
		}
	}
	if taxDeduction != nil {
		v, err := parseAmount(*taxDeduction)
		if err != nil {
			return supplied{}, err
		}
		out.taxDeduction = &v
	}
	return out, nil
}

// seed copies the figures generation keeps from a caller. Base salary, allowances,
// overtime pay and the tax, PF and insurance deductions are computed instead.
func (v supplied) seed(p *Payroll) {
	p.Bonuses = v.bonuses
	p.Commissions = v.commissions
	p.LoanDeduction = v.loanDeduction
	p.OtherDeductions = v.otherDeductions
	p.OvertimeHours = v.overtimeHours
}

func (v supplied) applyTo(p *Payroll) error {
	p.BaseSalary = v.baseSalary
	p.OvertimePay = v.overtimePay
	p.Bonuses = v.bonuses
	p.Allowances = v.allowances
	p.Commissions = v.commissions
	p.ProvidentFund = v.providentFund
	p.Insurance = v.insurance
	p.LoanDeduction = v.loanDeduction
	p.OtherDeductions = v.otherDeductions
	p.OvertimeHours = v.overtimeHours
	return p.computeSupplied(v.taxDeduction)
}

// Create stores caller-supplied figures. Without a base salary it generates from the
// employee record instead.
func (s *service) Create(ctx context.Context, companyID, actorID string, req CreatePayrollRequest) (PayrollResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create payroll requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("period", req.Period),
	)

	r, err := newRun(companyID, actorID, req.Period, req.AttendanceBased, req.PayDate)
	if err != nil {
		return PayrollResponse{}, err
	}
	values, err := parseSupplied(req.BaseSalary, req.OvertimePay, req.Bonuses, req.Allowances, req.Commissions,
		req.TaxDeduction, req.ProvidentFund, req.Insurance, req.LoanDeduction, req.OtherDeductions, req.OvertimeHours)
	if err != nil {
		return PayrollResponse{}, err
	}
	empl, err := s.findEmployee(ctx, companyID, req.EmployeeID)
	if err != nil {
		return PayrollResponse{}, err
	}

	if values.baseSalary.IsZero() {
		p, err := s.generate(ctx, r, empl, func(p *Payroll) {
			values.seed(p)
			p.WorkingDays = req.WorkingDays
			p.Notes = req.Notes
		})
		if err != nil {
			return PayrollResponse{}, err
		}
		s.logger.Info("payroll created from employee record",
			zap.String("request_id", rid),
			zap.String("payroll_id", p.ID.String()),
			zap.String("employee_id", req.EmployeeID),
			zap.String("period", p.Period),
		)
		return mapToResponse(p), nil
	}

	unlock := s.locks.Lock(payrollKey(companyID, empl.ID.String(), r.period))
	defer unlock()

	p := r.newPayroll(empl)
	p.WorkingDays = req.WorkingDays
	p.Notes = req.Notes
	if err := values.applyTo(p); err != nil {
		return PayrollResponse{}, err
	}
	if err := s.leaveDays(ctx, p); err != nil {
		return PayrollResponse{}, err
	}
	if err := s.persist(ctx, p); err != nil {
		return PayrollResponse{}, err
	}

	s.logger.Info("payroll created",
		zap.String("request_id", rid),
		zap.String("payroll_id", p.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.String("period", p.Period),
	)
	return mapToResponse(p), nil
}

func (s *service) GetAll(ctx context.Context, companyID string, filter GetPayrollsFilterRequest) ([]PayrollResponse, error) {
	payrolls, err := s.repo.FindAll(ctx, companyID, Filter{
		EmployeeID: filter.EmployeeID,
		Period:     filter.Period,
		Status:     Status(filter.Status),
	})
	if err != nil {
		s.logger.Error("list payrolls failed", zap.String("company_id", companyID), zap.Error(err))
		return nil, err
	}

	res := make([]PayrollResponse, len(payrolls))
	for i := range payrolls {
		res[i] = mapToResponse(&payrolls[i])
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (PayrollResponse, error) {
	p, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return PayrollResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(p), nil
}

func (s *service) GetBreakdown(ctx context.Context, companyID, id string) (PayrollBreakdownResponse, error) {
	p, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return PayrollBreakdownResponse{}, mapRepositoryError(err)
	}

	res := PayrollBreakdownResponse{
		PayrollID:       p.ID.String(),
		Period:          p.Period,
		Status:          p.Status,
		Earnings:        []ComponentResponse{},
		Deductions:      []ComponentResponse{},
		TaxDetails:      taxDetailsOf(p),
		TotalEarnings:   p.TotalEarnings.StringFixed(money.Scale),
		TotalDeductions: p.TotalDeductions.StringFixed(money.Scale),
		NetSalary:       p.NetSalary.StringFixed(money.Scale),
	}
	for _, c := range p.Components {
		item := ComponentResponse{Name: c.ComponentName, Type: c.ComponentType, Amount: c.Amount.StringFixed(money.Scale)}
		if c.ComponentType == ComponentDeduction {
			res.Deductions = append(res.Deductions, item)
		} else {
			res.Earnings = append(res.Earnings, item)
		}
	}
	return res, nil
}

func (s *service) Update(ctx context.Context, companyID, id string, req UpdatePayrollRequest) (PayrollResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update payroll requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("payroll_id", id),
	)

	values, err := parseSupplied(req.BaseSalary, req.OvertimePay, req.Bonuses, req.Allowances, req.Commissions,
		req.TaxDeduction, req.ProvidentFund, req.Insurance, req.LoanDeduction, req.OtherDeductions, req.OvertimeHours)
	if err != nil {
		return PayrollResponse{}, err
	}
	payDate, err := parseOptionalDate(req.PayDate)
	if err != nil {
		return PayrollResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update payroll begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByIDForUpdate(ctx, companyID, id)
	if err != nil {
		return PayrollResponse{}, mapRepositoryError(err)
	}
	if !p.editable() {
		s.logger.Warn("update payroll not editable",
			zap.String("request_id", rid),
			zap.String("payroll_id", id),
			zap.String("status", string(p.Status)),
		)
		return PayrollResponse{}, payrollerrors.ErrOnlyDraftEditable
	}

	if payDate != nil {
		p.PayDate = payDate
	}
	p.WorkingDays = req.WorkingDays
	if req.Notes != nil {
		p.Notes = req.Notes
	}
	if err := values.applyTo(p); err != nil {
		return PayrollResponse{}, err
	}

	if err := qtx.Update(ctx, p); err != nil {
		s.logger.Error("update payroll persist failed", zap.String("request_id", rid), zap.Error(err))
		return PayrollResponse{}, mapRepositoryError(err)
	}
	if err := qtx.ReplaceComponents(ctx, p); err != nil {
		s.logger.Error("update payroll components failed", zap.String("request_id", rid), zap.Error(err))
		return PayrollResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update payroll commit failed", zap.String("request_id", rid), zap.Error(err))
		return PayrollResponse{}, err
	}

	s.logger.Info("payroll updated", zap.String("request_id", rid), zap.String("payroll_id", id))
	return mapToResponse(p), nil
}

func (s *service) Approve(ctx context.Context, companyID, approverID, id string) (PayrollResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("approve payroll requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("approver_id", approverID),
		zap.String("payroll_id", id),
	)

	approverUUID, err := uuid.Parse(approverID)
	if err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("approve payroll begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByIDForUpdate(ctx, companyID, id)
	if err != nil {
		return PayrollResponse{}, mapRepositoryError(err)
	}
	if !p.Status.CanTransitionTo(StatusApproved) {
		s.logger.Warn("approve payroll invalid status",
			zap.String("request_id", rid),
			zap.String("payroll_id", id),
			zap.String("status", string(p.Status)),
		)
		return PayrollResponse{}, payrollerrors.ErrInvalidStatusTransition
	}

	now := s.now()
	p.Status = StatusApproved
	p.ApprovedBy = &approverUUID
	p.ApprovedAt = &now
	if err := qtx.Update(ctx, p); err != nil {
		s.logger.Error("approve payroll persist failed", zap.String("request_id", rid), zap.Error(err))
		return PayrollResponse{}, mapRepositoryError(err)
	}

	if err := s.emit(ctx, tx, events.PayrollApprovedEventType, p, approverID); err != nil {
		return PayrollResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("approve payroll commit failed", zap.String("request_id", rid), zap.Error(err))
		return PayrollResponse{}, err
	}

	s.logger.Info("payroll approved", zap.String("request_id", rid), zap.String("payroll_id", id))
	return mapToResponse(p), nil
}

func paymentReference(p Period, n int64) string {
	return fmt.Sprintf("TXN-%04d%02d-%06d", p.Year, int(p.Month), n)
}

// ProcessPayment marks an approved payroll as paid and assigns a payment reference
// from the company counter.
func (s *service) ProcessPayment(ctx context.Context, companyID, actorID, id string) (PayrollResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("payroll payment requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("actor_id", actorID),
		zap.String("payroll_id", id),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("payroll payment begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByIDForUpdate(ctx, companyID, id)
	if err != nil {
		return PayrollResponse{}, mapRepositoryError(err)
	}
	if !p.Status.CanTransitionTo(StatusPaid) {
		s.logger.Warn("payroll payment invalid status",
			zap.String("request_id", rid),
			zap.String("payroll_id", id),
			zap.String("status", string(p.Status)),
		)
		return PayrollResponse{}, payrollerrors.ErrInvalidStatusTransition
	}
	period, err := ParsePeriod(p.Period)
	if err != nil {
		return PayrollResponse{}, err
	}

	seq, err := s.counter.GetNextValue(ctx, companyID, counter.CounterPaymentReference)
	if err != nil {
		s.logger.Error("payment reference counter failed", zap.String("request_id", rid), zap.Error(err))
		return PayrollResponse{}, err
	}
	ref := paymentReference(period, seq)

	now := s.now()
	p.Status = StatusPaid
	p.PaidAt = &now
	p.PaymentReference = &ref
	if p.PayDate == nil {
		day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		p.PayDate = &day
	}
	if err := qtx.Update(ctx, p); err != nil {
		s.logger.Error("payroll payment persist failed", zap.String("request_id", rid), zap.Error(err))
		return PayrollResponse{}, mapRepositoryError(err)
	}

	if err := s.emit(ctx, tx, events.PayrollPaidEventType, p, actorID); err != nil {
		return PayrollResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("payroll payment commit failed", zap.String("request_id", rid), zap.Error(err))
		return PayrollResponse{}, err
	}

	s.logger.Info("payroll paid",
		zap.String("request_id", rid),
		zap.String("payroll_id", id),
		zap.String("payment_reference", ref),
	)
	return mapToResponse(p), nil
}

func (s *service) Cancel(ctx context.Context, companyID, id string) (PayrollResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("cancel payroll begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByIDForUpdate(ctx, companyID, id)
	if err != nil {
		return PayrollResponse{}, mapRepositoryError(err)
	}
	if !p.Status.CanTransitionTo(StatusCancelled) {
		return PayrollResponse{}, payrollerrors.ErrInvalidStatusTransition
	}

	p.Status = StatusCancelled
	if err := qtx.Update(ctx, p); err != nil {
		s.logger.Error("cancel payroll persist failed", zap.String("request_id", rid), zap.Error(err))
		return PayrollResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("cancel payroll commit failed", zap.String("request_id", rid), zap.Error(err))
		return PayrollResponse{}, err
	}

	s.logger.Info("payroll cancelled", zap.String("request_id", rid), zap.String("payroll_id", id))
	return mapToResponse(p), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	rid := contextutil.GetRequestID(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete payroll begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByIDForUpdate(ctx, companyID, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if !p.Status.Deletable() {
		return payrollerrors.ErrDeleteNotAllowed
	}
	if err := qtx.Delete(ctx, companyID, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete payroll commit failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	s.logger.Info("payroll deleted", zap.String("request_id", rid), zap.String("payroll_id", id))
	return nil
}

func (s *service) Payslip(ctx context.Context, companyID, id string) (Payslip, error) {
	rid := contextutil.GetRequestID(ctx)

	p, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return Payslip{}, mapRepositoryError(err)
	}
	if p.Status != StatusApproved && p.Status != StatusPaid {
		return Payslip{}, payrollerrors.ErrPayslipNotAvailable
	}
	empl, err := s.employees.FindByIDAndCompany(ctx, companyID, p.EmployeeID.String())
	if err != nil {
		return Payslip{}, mapEmployeeError(err)
	}

	content, err := renderPayslip(p, empl)
	if err != nil {
		s.logger.Error("render payslip failed",
			zap.String("request_id", rid),
			zap.String("payroll_id", id),
			zap.Error(err),
		)
		return Payslip{}, err
	}

	return Payslip{
		EmployeeID: p.EmployeeID.String(),
		FileName:   fmt.Sprintf("payslip-%s-%s.pdf", empl.EmployeeCode, p.Period),
		Content:    content,
	}, nil
}

func (s *service) emit(ctx context.Context, tx *sql.Tx, eventType string, p *Payroll, actorID string) error {
	if s.outbox == nil {
		return nil
	}
	rid := contextutil.GetRequestID(ctx)
	event := events.PayrollEvent{
		EventType:  eventType,
		RequestID:  rid,
		PayrollID:  p.ID.String(),
		CompanyID:  p.CompanyID.String(),
		EmployeeID: p.EmployeeID.String(),
		Period:     p.Period,
		NetSalary:  p.NetSalary.StringFixed(money.Scale),
		ActorID:    actorID,
		OccurredAt: s.now(),
	}
	if p.PaymentReference != nil {
		event.PaymentReference = *p.PaymentReference
	}
	outboxEvent, err := kafka.NewOutboxEvent(rid, kafka.AggregatePayroll, p.ID.String(), eventType, events.PayrollLifecycleTopic, event)
	if err != nil {
		s.logger.Error("marshal payroll event failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, outboxEvent); err != nil {
		s.logger.Error("payroll outbox persist failed",
			zap.String("request_id", rid),
			zap.String("payroll_id", p.ID.String()),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func formatTimestamp(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.Format(time.RFC3339)
	return &v
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.Format(dateLayout)
	return &v
}

func uuidString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	v := id.String()
	return &v
}

func taxDetailsOf(p *Payroll) tax.Details {
	return tax.Details{
		TaxableIncome:   p.TaxableIncome,
		IncomeTax:       p.IncomeTax,
		ProfessionalTax: p.ProfessionalTax,
		OtherTaxes:      p.OtherTaxes,
		TotalTax:        p.TotalTax,
		Slab:            p.TaxSlab,
	}
}

func mapToResponse(p *Payroll) PayrollResponse {
	amount := func(d decimal.Decimal) string { return d.StringFixed(money.Scale) }
	return PayrollResponse{
		ID:               p.ID.String(),
		CompanyID:        p.CompanyID.String(),
		EmployeeID:       p.EmployeeID.String(),
		Period:           p.Period,
		PeriodStart:      p.PeriodStart.Format(dateLayout),
		PeriodEnd:        p.PeriodEnd.Format(dateLayout),
		PayDate:          formatDate(p.PayDate),
		WorkingDays:      p.WorkingDays,
		OvertimeHours:    amount(p.OvertimeHours),
		LeaveDays:        p.LeaveDays,
		BaseSalary:       amount(p.BaseSalary),
		OvertimePay:      amount(p.OvertimePay),
		Bonuses:          amount(p.Bonuses),
		Allowances:       amount(p.Allowances),
		Commissions:      amount(p.Commissions),
		TotalEarnings:    amount(p.TotalEarnings),
		TaxDeduction:     amount(p.TaxDeduction),
		ProvidentFund:    amount(p.ProvidentFund),
		Insurance:        amount(p.Insurance),
		LoanDeduction:    amount(p.LoanDeduction),
		OtherDeductions:  amount(p.OtherDeductions),
		TotalDeductions:  amount(p.TotalDeductions),
		NetSalary:        amount(p.NetSalary),
		TaxDetails:       taxDetailsOf(p),
		Status:           p.Status,
		Notes:            p.Notes,
		CreatedBy:        p.CreatedBy.String(),
		ApprovedBy:       uuidString(p.ApprovedBy),
		ApprovedAt:       formatTimestamp(p.ApprovedAt),
		PaidAt:           formatTimestamp(p.PaidAt),
		PaymentReference: p.PaymentReference,
	}
}
