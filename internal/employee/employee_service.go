package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	employeeerrors "go-ems/internal/employee/errors"
	"go-ems/internal/events"
	"go-ems/internal/messaging/kafka"
	"go-ems/internal/shared/apperror"
	"go-ems/internal/shared/contextutil"
	"go-ems/internal/shared/counter"
	"go-ems/internal/shared/money"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	EmployeeOptionsKeyPrefix = "employees:options:"
	employeeOptionsTTL       = 1 * time.Hour
	dateLayout               = "2006-01-02"
)

func GetEmployeeOptionsKey(companyID string) string {
	return EmployeeOptionsKeyPrefix + companyID
}

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, companyID string) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context, companyID string) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, companyID, id string) (EmployeeResponse, error)
	GetByCode(ctx context.Context, companyID, code string) (EmployeeResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	UpdateLeaveBalances(ctx context.Context, companyID, id string, req UpdateLeaveBalancesRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

// Catalog reports whether an organisation unit name is defined for the company.
type Catalog interface {
	HasDepartment(ctx context.Context, companyID, name string) (bool, error)
	HasDesignation(ctx context.Context, companyID, department, name string) (bool, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	outbox  kafka.OutboxRepository
	catalog Catalog
	rdb     *redis.Client
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counter counter.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, counter, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	counter counter.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithCatalog(db, repo, counter, outboxRepo, nil, rdb, logger...)
}

// NewServiceWithCatalog checks department and designation names against catalog
// on create and update. A nil catalog accepts any name.
func NewServiceWithCatalog(
	db *sql.DB,
	repo Repository,
	counter counter.Repository,
	outboxRepo kafka.OutboxRepository,
	catalog Catalog,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counter,
		outbox:  outboxRepo,
		catalog: catalog,
		rdb:     rdb,
		sf:      &singleflight.Group{},
		logger:  l,
	}
}

type profileInput struct {
	joinDate   time.Time
	status     EmploymentStatus
	baseSalary decimal.Decimal
	allowances decimal.Decimal
}

func parseProfile(joinDate, status, baseSalary, allowances string) (profileInput, error) {
	var in profileInput

	jd, err := time.Parse(dateLayout, joinDate)
	if err != nil {
		return in, employeeerrors.ErrInvalidJoinDate
	}
	in.joinDate = jd

	in.status = StatusActive
	if status != "" {
		in.status = EmploymentStatus(status)
	}
	if !in.status.Valid() {
		return in, employeeerrors.ErrInvalidEmploymentStatus
	}

	base, err := money.Parse(baseSalary)
	if err != nil {
		return in, apperror.InvalidField("Base Salary")
	}
	allow, err := money.Parse(allowances)
	if err != nil {
		return in, apperror.InvalidField("Allowances")
	}
	if base.IsNegative() || allow.IsNegative() {
		return in, employeeerrors.ErrNegativeSalary
	}
	in.baseSalary = money.Round2(base)
	in.allowances = money.Round2(allow)
	return in, nil
}

func (s *service) checkOrgUnits(ctx context.Context, companyID, department, designation string) error {
	if s.catalog == nil {
		return nil
	}
	if department != "" {
		ok, err := s.catalog.HasDepartment(ctx, companyID, department)
		if err != nil {
			return err
		}
		if !ok {
			return employeeerrors.ErrUnknownDepartment
		}
	}
	if designation != "" {
		ok, err := s.catalog.HasDesignation(ctx, companyID, department, designation)
		if err != nil {
			return err
		}
		if !ok {
			return employeeerrors.ErrUnknownDesignation
		}
	}
	return nil
}

func (s *service) Create(
	ctx context.Context,
	companyID string,
	req CreateEmployeeRequest,
) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("email", req.Email),
	)

	in, err := parseProfile(req.JoinDate, req.EmploymentStatus, req.BaseSalary, req.Allowances)
	if err != nil {
		s.logger.Warn("create employee invalid input", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	if err := s.checkOrgUnits(ctx, companyID, req.Department, req.Designation); err != nil {
		s.logger.Warn("create employee unknown org unit", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if req.EmployeeCode == "" {
		nextVal, err := s.counter.GetNextValue(ctx, companyID, counter.CounterEmployeeCode)
		if err != nil {
			s.logger.Error("create employee generate code failed", zap.Error(err))
			return EmployeeResponse{}, err
		}
		req.EmployeeCode = fmt.Sprintf("EMP-%06d", nextVal)
	}

	empl := &Employee{
		ID:                 uuid.New(),
		CompanyID:          uuid.MustParse(companyID),
		EmployeeCode:       req.EmployeeCode,
		FullName:           req.FullName,
		Email:              req.Email,
		Department:         req.Department,
		Designation:        req.Designation,
		JoinDate:           in.joinDate,
		EmploymentStatus:   in.status,
		BaseSalary:         in.baseSalary,
		Allowances:         in.allowances,
		AnnualLeaveBalance: DefaultAnnualLeaveBalance,
		SickLeaveBalance:   DefaultSickLeaveBalance,
		CasualLeaveBalance: DefaultCasualLeaveBalance,
	}

	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.EmployeeCreatedEvent{
			EventType:    events.EmployeeCreatedEventType,
			RequestID:    rid,
			EmployeeID:   empl.ID.String(),
			EmployeeCode: empl.EmployeeCode,
			CompanyID:    companyID,
			OccurredAt:   time.Now().UTC(),
		}
		outboxEvent, err := kafka.NewOutboxEvent(rid, kafka.AggregateEmployee, empl.ID.String(), event.EventType, events.EmployeeLifecycleTopic, event)
		if err != nil {
			s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
			return EmployeeResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, outboxEvent); err != nil {
			s.logger.Error("create employee outbox persist failed",
				zap.String("employee_id", empl.ID.String()),
				zap.Error(err),
			)
			return EmployeeResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx, companyID)

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
		zap.String("employee_code", empl.EmployeeCode),
	)

	return mapToResponse(*empl), nil
}

func (s *service) GetAll(
	ctx context.Context,
	companyID string,
) ([]EmployeeResponse, error) {
	s.logger.Debug("get all employees requested", zap.String("company_id", companyID))
	empls, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(empls), nil
}

// GetOptions serves the lightweight picker list from Redis, collapsing
// concurrent misses for the same company into one query.
func (s *service) GetOptions(ctx context.Context, companyID string) ([]EmployeeResponse, error) {
	cacheKey := GetEmployeeOptionsKey(companyID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []EmployeeResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		empls, err := s.repo.FindOptionsByCompany(ctx, companyID)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := make([]EmployeeResponse, len(empls))
		for i, e := range empls {
			resp[i] = mapToOptionResponse(e)
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, jsonData, employeeOptionsTTL).Err(); err != nil {
					s.logger.Warn("cache employee options failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}

		return resp, nil
	})

	if err != nil {
		s.logger.Error("get employee options failed", zap.String("company_id", companyID), zap.Error(err))
		return nil, err
	}

	return v.([]EmployeeResponse), nil
}

func (s *service) GetByID(
	ctx context.Context,
	companyID, id string,
) (EmployeeResponse, error) {
	s.logger.Debug("get employee by id requested",
		zap.String("company_id", companyID),
		zap.String("employee_id", id),
	)
	empl, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		s.logger.Warn("get employee by id failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*empl), nil
}

func (s *service) GetByCode(
	ctx context.Context,
	companyID, code string,
) (EmployeeResponse, error) {
	s.logger.Debug("get employee by code requested",
		zap.String("company_id", companyID),
		zap.String("employee_code", code),
	)
	empl, err := s.repo.FindByCodeAndCompany(ctx, companyID, code)
	if err != nil {
		s.logger.Warn("get employee by code failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*empl), nil
}

func (s *service) Update(
	ctx context.Context,
	companyID, id string,
	req UpdateEmployeeRequest,
) (EmployeeResponse, error) {
	s.logger.Debug("update employee requested",
		zap.String("company_id", companyID),
		zap.String("employee_id", id),
	)

	in, err := parseProfile(req.JoinDate, req.EmploymentStatus, req.BaseSalary, req.Allowances)
	if err != nil {
		s.logger.Warn("update employee invalid input", zap.Error(err))
		return EmployeeResponse{}, err
	}
	if err := s.checkOrgUnits(ctx, companyID, req.Department, req.Designation); err != nil {
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		s.logger.Warn("update employee fetch existing failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	empl.EmployeeCode = req.EmployeeCode
	empl.FullName = req.FullName
	empl.Email = req.Email
	empl.Department = req.Department
	empl.Designation = req.Designation
	empl.JoinDate = in.joinDate
	empl.EmploymentStatus = in.status
	empl.BaseSalary = in.baseSalary
	empl.Allowances = in.allowances

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx, companyID)

	s.logger.Info("update employee success", zap.String("employee_id", id))

	return mapToResponse(*empl), nil
}

// UpdateLeaveBalances overwrites the tracked balances. It goes through the same
// version check as leave approvals, so a concurrent approval makes it fail.
func (s *service) UpdateLeaveBalances(
	ctx context.Context,
	companyID, id string,
	req UpdateLeaveBalancesRequest,
) (EmployeeResponse, error) {
	s.logger.Debug("update leave balances requested",
		zap.String("company_id", companyID),
		zap.String("employee_id", id),
	)

	if req.AnnualLeaveBalance < 0 || req.SickLeaveBalance < 0 || req.CasualLeaveBalance < 0 {
		return EmployeeResponse{}, employeeerrors.ErrNegativeLeaveBalance
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update leave balances begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		s.logger.Warn("update leave balances fetch failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	empl.AnnualLeaveBalance = req.AnnualLeaveBalance
	empl.SickLeaveBalance = req.SickLeaveBalance
	empl.CasualLeaveBalance = req.CasualLeaveBalance

	if err := qtx.UpdateLeaveBalances(ctx, empl); err != nil {
		s.logger.Warn("update leave balances write failed",
			zap.String("employee_id", id),
			zap.Int64("version", empl.Version),
			zap.Error(err),
		)
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update leave balances commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.logger.Info("update leave balances success",
		zap.String("employee_id", id),
		zap.Int64("version", empl.Version),
	)

	return mapToResponse(*empl), nil
}

// Delete terminates the employee. Rows stay so historical payrolls and leave
// applications keep their reference.
func (s *service) Delete(
	ctx context.Context,
	companyID, id string,
) error {
	s.logger.Debug("delete employee requested",
		zap.String("company_id", companyID),
		zap.String("employee_id", id),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete employee begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Terminate(ctx, companyID, id); err != nil {
		s.logger.Error("delete employee failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete employee commit failed", zap.Error(err))
		return err
	}

	s.invalidateOptions(ctx, companyID)

	s.logger.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

func (s *service) invalidateOptions(ctx context.Context, companyID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetEmployeeOptionsKey(companyID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

func mapToResponse(empl Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:               empl.ID.String(),
		CompanyID:        empl.CompanyID.String(),
		EmployeeCode:     empl.EmployeeCode,
		FullName:         empl.FullName,
		Email:            empl.Email,
		Department:       empl.Department,
		Designation:      empl.Designation,
		EmploymentStatus: string(empl.EmploymentStatus),
		BaseSalary:       empl.BaseSalary.StringFixed(money.Scale),
		Allowances:       empl.Allowances.StringFixed(money.Scale),
		LeaveBalances: &LeaveBalancesResponse{
			Annual: empl.AnnualLeaveBalance,
			Sick:   empl.SickLeaveBalance,
			Casual: empl.CasualLeaveBalance,
		},
		Version: empl.Version,
	}
	if !empl.JoinDate.IsZero() {
		resp.JoinDate = empl.JoinDate.Format(dateLayout)
	}
	return resp
}

func mapToOptionResponse(empl Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:           empl.ID.String(),
		EmployeeCode: empl.EmployeeCode,
		FullName:     empl.FullName,
	}
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res
}
