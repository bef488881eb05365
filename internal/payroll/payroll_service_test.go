package payroll_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go-ems/internal/attendance"
	"go-ems/internal/employee"
	"go-ems/internal/events"
	"go-ems/internal/messaging/kafka"
	"go-ems/internal/payroll"
	payrollerrors "go-ems/internal/payroll/errors"
	"go-ems/internal/shared/counter"

	employeeMock "go-ems/internal/employee/mock"
	kafkaMock "go-ems/internal/messaging/kafka/mock"
	counterMock "go-ems/internal/shared/counter/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type fakePayrollRepository struct {
	createFn                  func(ctx context.Context, p *payroll.Payroll) error
	findAllFn                 func(ctx context.Context, companyID string, filter payroll.Filter) ([]payroll.Payroll, error)
	findByIDAndCompanyFn      func(ctx context.Context, companyID, id string) (*payroll.Payroll, error)
	findByIDForUpdateFn       func(ctx context.Context, companyID, id string) (*payroll.Payroll, error)
	findByEmployeeAndPeriodFn func(ctx context.Context, companyID, employeeID, period string) (*payroll.Payroll, error)
	updateFn                  func(ctx context.Context, p *payroll.Payroll) error
	replaceComponentsFn       func(ctx context.Context, p *payroll.Payroll) error
	deleteFn                  func(ctx context.Context, companyID, id string) error
}

func (f *fakePayrollRepository) WithTx(tx *sql.Tx) payroll.Repository {
	return f
}

func (f *fakePayrollRepository) Create(ctx context.Context, p *payroll.Payroll) error {
	if f.createFn != nil {
		return f.createFn(ctx, p)
	}
	return nil
}

func (f *fakePayrollRepository) FindAll(ctx context.Context, companyID string, filter payroll.Filter) ([]payroll.Payroll, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, companyID, filter)
	}
	return nil, nil
}

func (f *fakePayrollRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*payroll.Payroll, error) {
	if f.findByIDAndCompanyFn != nil {
		return f.findByIDAndCompanyFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePayrollRepository) FindByIDForUpdate(ctx context.Context, companyID, id string) (*payroll.Payroll, error) {
	if f.findByIDForUpdateFn != nil {
		return f.findByIDForUpdateFn(ctx, companyID, id)
	}
	return f.FindByIDAndCompany(ctx, companyID, id)
}

func (f *fakePayrollRepository) FindByEmployeeAndPeriod(ctx context.Context, companyID, employeeID, period string) (*payroll.Payroll, error) {
	if f.findByEmployeeAndPeriodFn != nil {
		return f.findByEmployeeAndPeriodFn(ctx, companyID, employeeID, period)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePayrollRepository) Update(ctx context.Context, p *payroll.Payroll) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, p)
	}
	return nil
}

func (f *fakePayrollRepository) ReplaceComponents(ctx context.Context, p *payroll.Payroll) error {
	if f.replaceComponentsFn != nil {
		return f.replaceComponentsFn(ctx, p)
	}
	return nil
}

func (f *fakePayrollRepository) Delete(ctx context.Context, companyID, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, companyID, id)
	}
	return nil
}

type fakeAttendance struct {
	calls     atomic.Int32
	summaryFn func(ctx context.Context, companyID, employeeID string, from, to time.Time) (attendance.Summary, error)
}

func (f *fakeAttendance) Summary(ctx context.Context, companyID, employeeID string, from, to time.Time) (attendance.Summary, error) {
	f.calls.Add(1)
	if f.summaryFn != nil {
		return f.summaryFn(ctx, companyID, employeeID, from, to)
	}
	return attendance.Summary{OvertimeHours: decimal.Zero}, nil
}

type fakeLeaveDays struct {
	days int
	err  error
}

func (f *fakeLeaveDays) PaidLeaveDays(ctx context.Context, companyID, employeeID string, from, to time.Time) (int, error) {
	return f.days, f.err
}

type payrollServiceDeps struct {
	db         *sql.DB
	sqlMock    sqlmock.Sqlmock
	service    payroll.Service
	repo       *fakePayrollRepository
	employees  *employeeMock.MockRepository
	attendance *fakeAttendance
	leaves     *fakeLeaveDays
	counter    *counterMock.MockRepository
	outbox     *kafkaMock.MockOutboxRepository
}

func setupPayrollServiceTest(t *testing.T) *payrollServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	ctrl := gomock.NewController(t)
	repo := &fakePayrollRepository{}
	employees := employeeMock.NewMockRepository(ctrl)
	counterRepo := counterMock.NewMockRepository(ctrl)
	outbox := kafkaMock.NewMockOutboxRepository(ctrl)
	att := &fakeAttendance{}
	leaves := &fakeLeaveDays{}

	outbox.EXPECT().WithTx(gomock.Any()).Return(outbox).AnyTimes()

	return &payrollServiceDeps{
		db:         db,
		sqlMock:    sqlMock,
		service:    payroll.NewService(db, repo, employees, att, leaves, counterRepo, outbox),
		repo:       repo,
		employees:  employees,
		attendance: att,
		leaves:     leaves,
		counter:    counterRepo,
		outbox:     outbox,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func newEmployee(companyID, employeeID, base string) *employee.Employee {
	return &employee.Employee{
		ID:               uuid.MustParse(employeeID),
		CompanyID:        uuid.MustParse(companyID),
		EmployeeCode:     "EMP-0001",
		FullName:         "Asha Rao",
		Department:       "Engineering",
		EmploymentStatus: employee.StatusActive,
		BaseSalary:       dec(base),
		Allowances:       decimal.Zero,
	}
}

func newPayroll(companyID, employeeID string, status payroll.Status) *payroll.Payroll {
	p := &payroll.Payroll{
		ID:          uuid.New(),
		CompanyID:   uuid.MustParse(companyID),
		EmployeeID:  uuid.MustParse(employeeID),
		Period:      "2024-03",
		PeriodStart: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		BaseSalary:  dec("40000"),
		Status:      status,
		CreatedBy:   uuid.MustParse(employeeID),
	}
	p.RecalculateTotals()
	return p
}

func TestPayrollService_Generate(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	employeeID := uuid.New().String()
	actorID := uuid.New().String()

	t.Run("success from attendance", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.employees.EXPECT().
			FindByIDAndCompany(gomock.Any(), companyID, employeeID).
			Return(newEmployee(companyID, employeeID, "50000"), nil)
		deps.attendance.summaryFn = func(ctx context.Context, cid, eid string, from, to time.Time) (attendance.Summary, error) {
			assert.Equal(t, "2024-03-01", from.Format("2006-01-02"))
			assert.Equal(t, "2024-03-31", to.Format("2006-01-02"))
			return attendance.Summary{WorkingDays: 20, OvertimeHours: dec("10")}, nil
		}
		deps.leaves.days = 2
		var created *payroll.Payroll
		deps.repo.createFn = func(ctx context.Context, p *payroll.Payroll) error {
			created = p
			return nil
		}

		resp, err := deps.service.Generate(ctx, companyID, actorID, payroll.GeneratePayrollRequest{
			EmployeeID: employeeID,
			Period:     "2024-03",
		})

		assert.NoError(t, err)
		assert.Equal(t, payroll.StatusDraft, resp.Status)
		assert.Equal(t, 20, resp.WorkingDays)
		assert.Equal(t, 2, resp.LeaveDays)
		assert.Equal(t, "10.00", resp.OvertimeHours)
		assert.Equal(t, "3124.95", resp.OvertimePay)
		assert.Equal(t, "0.00", resp.Allowances)
		assert.Equal(t, "0.00", resp.OtherDeductions)
		assert.Equal(t, "53124.95", resp.TotalEarnings)
		assert.Equal(t, "6000.00", resp.ProvidentFund)
		assert.Equal(t, "500.00", resp.Insurance)
		assert.Equal(t, "2024-03-01", resp.PeriodStart)
		assert.Equal(t, "2024-03-31", resp.PeriodEnd)
		assert.Equal(t, actorID, resp.CreatedBy)
		if assert.NotNil(t, created) {
			assert.NotEmpty(t, created.Components)
			assert.Equal(t, created.ID, created.Components[0].PayrollID)
		}
		assert.Equal(t, int32(1), deps.attendance.calls.Load())
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("without attendance skips summary", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.employees.EXPECT().
			FindByIDAndCompany(gomock.Any(), companyID, employeeID).
			Return(newEmployee(companyID, employeeID, "50000"), nil)
		off := false

		resp, err := deps.service.Generate(ctx, companyID, actorID, payroll.GeneratePayrollRequest{
			EmployeeID:      employeeID,
			Period:          "2024-03",
			AttendanceBased: &off,
			PayDate:         "2024-04-01",
		})

		assert.NoError(t, err)
		assert.Equal(t, 0, resp.WorkingDays)
		assert.Equal(t, "0.00", resp.OvertimePay)
		if assert.NotNil(t, resp.PayDate) {
			assert.Equal(t, "2024-04-01", *resp.PayDate)
		}
		assert.Equal(t, int32(0), deps.attendance.calls.Load())
	})

	t.Run("already generated", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.employees.EXPECT().
			FindByIDAndCompany(gomock.Any(), companyID, employeeID).
			Return(newEmployee(companyID, employeeID, "50000"), nil)
		deps.repo.findByEmployeeAndPeriodFn = func(ctx context.Context, cid, eid, period string) (*payroll.Payroll, error) {
			assert.Equal(t, "2024-03", period)
			return newPayroll(companyID, employeeID, payroll.StatusDraft), nil
		}
		deps.repo.createFn = func(ctx context.Context, p *payroll.Payroll) error {
			t.Fatal("create must not be called")
			return nil
		}

		_, err := deps.service.Generate(ctx, companyID, actorID, payroll.GeneratePayrollRequest{
			EmployeeID: employeeID,
			Period:     "2024-03",
		})

		assert.ErrorIs(t, err, payrollerrors.ErrPayrollAlreadyExists)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("unique violation maps to duplicate", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.employees.EXPECT().
			FindByIDAndCompany(gomock.Any(), companyID, employeeID).
			Return(newEmployee(companyID, employeeID, "50000"), nil)
		deps.repo.createFn = func(ctx context.Context, p *payroll.Payroll) error {
			return errors.New("UNIQUE constraint failed: payrolls.employee_id, payrolls.period")
		}

		_, err := deps.service.Generate(ctx, companyID, actorID, payroll.GeneratePayrollRequest{
			EmployeeID: employeeID,
			Period:     "2024-03",
		})

		assert.ErrorIs(t, err, payrollerrors.ErrPayrollAlreadyExists)
	})

	t.Run("invalid period", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Generate(ctx, companyID, actorID, payroll.GeneratePayrollRequest{
			EmployeeID: employeeID,
			Period:     "03-2024",
		})

		assert.ErrorIs(t, err, payrollerrors.ErrInvalidPeriodFormat)
	})

	t.Run("terminated employee", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		empl := newEmployee(companyID, employeeID, "50000")
		empl.EmploymentStatus = employee.StatusTerminated
		deps.employees.EXPECT().
			FindByIDAndCompany(gomock.Any(), companyID, employeeID).
			Return(empl, nil)

		_, err := deps.service.Generate(ctx, companyID, actorID, payroll.GeneratePayrollRequest{
			EmployeeID: employeeID,
			Period:     "2024-03",
		})

		assert.ErrorIs(t, err, payrollerrors.ErrEmployeeNotActive)
	})

	t.Run("employee not found", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		deps.employees.EXPECT().
			FindByIDAndCompany(gomock.Any(), companyID, employeeID).
			Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Generate(ctx, companyID, actorID, payroll.GeneratePayrollRequest{
			EmployeeID: employeeID,
			Period:     "2024-03",
		})

		assert.ErrorIs(t, err, payrollerrors.ErrEmployeeNotFound)
	})
}

func TestPayrollService_GenerateBulk(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	actorID := uuid.New().String()
	freshID := uuid.New().String()
	existingID := uuid.New().String()

	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	deps.sqlMock.MatchExpectationsInOrder(false)
	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()
	deps.sqlMock.ExpectRollback()

	deps.employees.EXPECT().
		FindActiveByCompany(gomock.Any(), companyID).
		Return([]employee.Employee{
			*newEmployee(companyID, freshID, "30000"),
			*newEmployee(companyID, existingID, "30000"),
		}, nil)
	deps.repo.findByEmployeeAndPeriodFn = func(ctx context.Context, cid, eid, period string) (*payroll.Payroll, error) {
		if eid == existingID {
			return newPayroll(companyID, existingID, payroll.StatusDraft), nil
		}
		return nil, gorm.ErrRecordNotFound
	}

	resp, err := deps.service.GenerateBulk(ctx, companyID, actorID, payroll.BulkGenerateRequest{Period: "2024-03"})

	assert.NoError(t, err)
	assert.Equal(t, "2024-03", resp.Period)
	if assert.Len(t, resp.Generated, 1) {
		assert.Equal(t, freshID, resp.Generated[0].EmployeeID)
	}
	assert.Equal(t, 1, resp.Skipped)
	assert.Empty(t, resp.Failed)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayrollService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	employeeID := uuid.New().String()
	actorID := uuid.New().String()

	t.Run("supplied figures", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.employees.EXPECT().
			FindByIDAndCompany(gomock.Any(), companyID, employeeID).
			Return(newEmployee(companyID, employeeID, "50000"), nil)
		taxOverride := "1200"
		notes := "manual run"

		resp, err := deps.service.Create(ctx, companyID, actorID, payroll.CreatePayrollRequest{
			EmployeeID:    employeeID,
			Period:        "2024-03",
			BaseSalary:    "40000",
			Bonuses:       "2500.50",
			ProvidentFund: "4800",
			TaxDeduction:  &taxOverride,
			WorkingDays:   21,
			Notes:         &notes,
		})

		assert.NoError(t, err)
		assert.Equal(t, "42500.50", resp.TotalEarnings)
		assert.Equal(t, "1200.00", resp.TaxDeduction)
		assert.Equal(t, "6000.00", resp.TotalDeductions)
		assert.Equal(t, "36500.50", resp.NetSalary)
		assert.Equal(t, 21, resp.WorkingDays)
		assert.Equal(t, &notes, resp.Notes)
		assert.Equal(t, int32(0), deps.attendance.calls.Load())
	})

	t.Run("negative amount", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, companyID, actorID, payroll.CreatePayrollRequest{
			EmployeeID: employeeID,
			Period:     "2024-03",
			BaseSalary: "40000",
			Bonuses:    "-5",
		})

		assert.ErrorIs(t, err, payrollerrors.ErrInvalidMoneyValue)
	})

	t.Run("zero base falls back to generation", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.employees.EXPECT().
			FindByIDAndCompany(gomock.Any(), companyID, employeeID).
			Return(newEmployee(companyID, employeeID, "50000"), nil)

		resp, err := deps.service.Create(ctx, companyID, actorID, payroll.CreatePayrollRequest{
			EmployeeID: employeeID,
			Period:     "2024-03",
		})

		assert.NoError(t, err)
		assert.Equal(t, "50000.00", resp.BaseSalary)
		assert.Equal(t, "0.00", resp.Allowances)
		assert.Equal(t, "6000.00", resp.ProvidentFund)
		assert.Equal(t, int32(1), deps.attendance.calls.Load())
	})

	t.Run("zero base keeps supplied figures", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.employees.EXPECT().
			FindByIDAndCompany(gomock.Any(), companyID, employeeID).
			Return(newEmployee(companyID, employeeID, "40000"), nil)
		var created *payroll.Payroll
		deps.repo.createFn = func(ctx context.Context, p *payroll.Payroll) error {
			created = p
			return nil
		}
		off := false
		notes := "quarter-end bonus"

		resp, err := deps.service.Create(ctx, companyID, actorID, payroll.CreatePayrollRequest{
			EmployeeID:      employeeID,
			Period:          "2024-03",
			AttendanceBased: &off,
			BaseSalary:      "0",
			Bonuses:         "5000",
			Commissions:     "700",
			LoanDeduction:   "1000",
			WorkingDays:     22,
			Notes:           &notes,
		})

		assert.NoError(t, err)
		assert.Equal(t, "40000.00", resp.BaseSalary)
		assert.Equal(t, "5000.00", resp.Bonuses)
		assert.Equal(t, "700.00", resp.Commissions)
		assert.Equal(t, "1000.00", resp.LoanDeduction)
		assert.Equal(t, "45700.00", resp.TotalEarnings)
		assert.Equal(t, "4800.00", resp.ProvidentFund)
		assert.Equal(t, 22, resp.WorkingDays)
		assert.Equal(t, &notes, resp.Notes)
		assert.Equal(t, int32(0), deps.attendance.calls.Load())
		if assert.NotNil(t, created) {
			assert.True(t, created.LoanDeduction.Equal(dec("1000")))
			want := created.TaxDeduction.Add(dec("4800")).Add(dec("500")).Add(dec("1000"))
			assert.True(t, want.Equal(created.TotalDeductions))
		}
	})
}

func TestPayrollService_Update(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	employeeID := uuid.New().String()

	t.Run("draft recomputes totals", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		current := newPayroll(companyID, employeeID, payroll.StatusDraft)
		deps.repo.findByIDForUpdateFn = func(ctx context.Context, cid, id string) (*payroll.Payroll, error) {
			return current, nil
		}
		replaced := false
		deps.repo.replaceComponentsFn = func(ctx context.Context, p *payroll.Payroll) error {
			replaced = true
			assert.NotEmpty(t, p.Components)
			return nil
		}
		taxOverride := "0"

		resp, err := deps.service.Update(ctx, companyID, current.ID.String(), payroll.UpdatePayrollRequest{
			BaseSalary:    "45000",
			LoanDeduction: "1000",
			TaxDeduction:  &taxOverride,
		})

		assert.NoError(t, err)
		assert.True(t, replaced)
		assert.Equal(t, "45000.00", resp.TotalEarnings)
		assert.Equal(t, "1000.00", resp.TotalDeductions)
		assert.Equal(t, "44000.00", resp.NetSalary)
	})

	t.Run("approved payroll is locked", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		current := newPayroll(companyID, employeeID, payroll.StatusApproved)
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*payroll.Payroll, error) {
			return current, nil
		}

		_, err := deps.service.Update(ctx, companyID, current.ID.String(), payroll.UpdatePayrollRequest{BaseSalary: "45000"})

		assert.ErrorIs(t, err, payrollerrors.ErrOnlyDraftEditable)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Update(ctx, companyID, uuid.New().String(), payroll.UpdatePayrollRequest{BaseSalary: "45000"})

		assert.ErrorIs(t, err, payrollerrors.ErrPayrollNotFound)
	})
}

func TestPayrollService_Approve(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	employeeID := uuid.New().String()
	approverID := uuid.New().String()

	t.Run("draft to approved emits event", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		current := newPayroll(companyID, employeeID, payroll.StatusDraft)
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*payroll.Payroll, error) {
			return current, nil
		}
		deps.outbox.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, ev kafka.OutboxEvent) error {
				assert.Equal(t, events.PayrollApprovedEventType, ev.EventType)
				assert.Equal(t, events.PayrollLifecycleTopic, ev.Topic)
				var payload events.PayrollEvent
				assert.NoError(t, json.Unmarshal(ev.Payload, &payload))
				assert.Equal(t, current.ID.String(), payload.PayrollID)
				assert.Equal(t, "40000.00", payload.NetSalary)
				return nil
			})

		resp, err := deps.service.Approve(ctx, companyID, approverID, current.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, payroll.StatusApproved, resp.Status)
		if assert.NotNil(t, resp.ApprovedBy) {
			assert.Equal(t, approverID, *resp.ApprovedBy)
		}
		assert.NotNil(t, resp.ApprovedAt)
	})

	t.Run("paid cannot be approved", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		current := newPayroll(companyID, employeeID, payroll.StatusPaid)
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*payroll.Payroll, error) {
			return current, nil
		}

		_, err := deps.service.Approve(ctx, companyID, approverID, current.ID.String())

		assert.ErrorIs(t, err, payrollerrors.ErrInvalidStatusTransition)
	})
}

func TestPayrollService_ProcessPayment(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	employeeID := uuid.New().String()
	actorID := uuid.New().String()

	t.Run("approved to paid", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		current := newPayroll(companyID, employeeID, payroll.StatusApproved)
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*payroll.Payroll, error) {
			return current, nil
		}
		deps.counter.EXPECT().
			GetNextValue(gomock.Any(), companyID, counter.CounterPaymentReference).
			Return(int64(7), nil)
		deps.outbox.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, ev kafka.OutboxEvent) error {
				assert.Equal(t, events.PayrollPaidEventType, ev.EventType)
				var payload events.PayrollEvent
				assert.NoError(t, json.Unmarshal(ev.Payload, &payload))
				assert.Equal(t, "TXN-202403-000007", payload.PaymentReference)
				return nil
			})

		resp, err := deps.service.ProcessPayment(ctx, companyID, actorID, current.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, payroll.StatusPaid, resp.Status)
		if assert.NotNil(t, resp.PaymentReference) {
			assert.Equal(t, "TXN-202403-000007", *resp.PaymentReference)
		}
		assert.NotNil(t, resp.PaidAt)
		assert.NotNil(t, resp.PayDate)
	})

	t.Run("draft cannot be paid", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		current := newPayroll(companyID, employeeID, payroll.StatusDraft)
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*payroll.Payroll, error) {
			return current, nil
		}

		_, err := deps.service.ProcessPayment(ctx, companyID, actorID, current.ID.String())

		assert.ErrorIs(t, err, payrollerrors.ErrInvalidStatusTransition)
	})
}

func TestPayrollService_CancelAndDelete(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	employeeID := uuid.New().String()

	t.Run("cancel approved", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		current := newPayroll(companyID, employeeID, payroll.StatusApproved)
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*payroll.Payroll, error) {
			return current, nil
		}

		resp, err := deps.service.Cancel(ctx, companyID, current.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, payroll.StatusCancelled, resp.Status)
	})

	t.Run("cancel paid rejected", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		current := newPayroll(companyID, employeeID, payroll.StatusPaid)
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*payroll.Payroll, error) {
			return current, nil
		}

		_, err := deps.service.Cancel(ctx, companyID, current.ID.String())

		assert.ErrorIs(t, err, payrollerrors.ErrInvalidStatusTransition)
	})

	t.Run("delete draft", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		current := newPayroll(companyID, employeeID, payroll.StatusDraft)
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*payroll.Payroll, error) {
			return current, nil
		}
		deleted := ""
		deps.repo.deleteFn = func(ctx context.Context, cid, id string) error {
			deleted = id
			return nil
		}

		err := deps.service.Delete(ctx, companyID, current.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, current.ID.String(), deleted)
	})

	t.Run("delete approved rejected", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		current := newPayroll(companyID, employeeID, payroll.StatusApproved)
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*payroll.Payroll, error) {
			return current, nil
		}

		err := deps.service.Delete(ctx, companyID, current.ID.String())

		assert.ErrorIs(t, err, payrollerrors.ErrDeleteNotAllowed)
	})
}

func TestPayrollService_GetBreakdown(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	employeeID := uuid.New().String()

	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	current := newPayroll(companyID, employeeID, payroll.StatusDraft)
	current.Components = []payroll.PayrollComponent{
		{ComponentName: payroll.ComponentBaseSalary, ComponentType: payroll.ComponentEarning, Amount: dec("40000")},
		{ComponentName: payroll.ComponentHRA, ComponentType: payroll.ComponentAllowance, Amount: dec("16000")},
		{ComponentName: payroll.ComponentProvidentFund, ComponentType: payroll.ComponentDeduction, Amount: dec("4800")},
	}
	deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*payroll.Payroll, error) {
		return current, nil
	}

	resp, err := deps.service.GetBreakdown(ctx, companyID, current.ID.String())

	assert.NoError(t, err)
	assert.Len(t, resp.Earnings, 2)
	if assert.Len(t, resp.Deductions, 1) {
		assert.Equal(t, "4800.00", resp.Deductions[0].Amount)
	}
	assert.Equal(t, "40000.00", resp.NetSalary)
}

func TestPayrollService_Payslip(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	employeeID := uuid.New().String()

	t.Run("approved renders pdf", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		current := newPayroll(companyID, employeeID, payroll.StatusApproved)
		current.Components = []payroll.PayrollComponent{
			{ComponentName: payroll.ComponentBaseSalary, ComponentType: payroll.ComponentEarning, Amount: dec("40000")},
		}
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*payroll.Payroll, error) {
			return current, nil
		}
		deps.employees.EXPECT().
			FindByIDAndCompany(gomock.Any(), companyID, employeeID).
			Return(newEmployee(companyID, employeeID, "40000"), nil)

		slip, err := deps.service.Payslip(ctx, companyID, current.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, "payslip-EMP-0001-2024-03.pdf", slip.FileName)
		assert.Equal(t, employeeID, slip.EmployeeID)
		assert.True(t, bytes.HasPrefix(slip.Content, []byte("%PDF")))
	})

	t.Run("draft has no payslip", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		current := newPayroll(companyID, employeeID, payroll.StatusDraft)
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*payroll.Payroll, error) {
			return current, nil
		}

		_, err := deps.service.Payslip(ctx, companyID, current.ID.String())

		assert.ErrorIs(t, err, payrollerrors.ErrPayslipNotAvailable)
	})
}
