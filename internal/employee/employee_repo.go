package employee

import (
	"context"
	"database/sql"
	"time"

	employeeerrors "go-ems/internal/employee/errors"
	"go-ems/internal/shared/database"
	"go-ems/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAllByCompany(ctx context.Context, companyID string) ([]Employee, error)
	FindOptionsByCompany(ctx context.Context, companyID string) ([]Employee, error)
	FindActiveByCompany(ctx context.Context, companyID string) ([]Employee, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Employee, error)
	FindByCodeAndCompany(ctx context.Context, companyID string, code string) (*Employee, error)
	Update(ctx context.Context, empl *Employee) error
	UpdateLeaveBalances(ctx context.Context, empl *Employee) error
	Terminate(ctx context.Context, companyID string, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return database.Conn(ctx, r.db, r.tx)
}

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.conn(ctx).Create(empl).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Employee, error) {
	var empls []Employee
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("employee_code ASC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindOptionsByCompany(ctx context.Context, companyID string) ([]Employee, error) {
	var empls []Employee
	err := r.conn(ctx).
		Select("id", "employee_code", "full_name").
		Scopes(tenant.Scope(companyID)).
		Where("employment_status = ?", StatusActive).
		Order("full_name ASC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindActiveByCompany(ctx context.Context, companyID string) ([]Employee, error) {
	var empls []Employee
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employment_status = ?", StatusActive).
		Order("employee_code ASC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Employee, error) {
	var empl Employee
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&empl, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) FindByCodeAndCompany(ctx context.Context, companyID string, code string) (*Employee, error) {
	var empl Employee
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&empl, "employee_code = ?", code).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

// Update writes profile and salary columns only. Leave balances and version
// are owned by UpdateLeaveBalances.
func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.conn(ctx).
		Model(empl).
		Select(
			"employee_code", "full_name", "email", "department", "designation",
			"join_date", "employment_status", "base_salary", "allowances", "updated_at",
		).
		Updates(empl).Error
}

// UpdateLeaveBalances is a conditional write on the version read by the caller.
// It returns ErrConcurrentBalanceUpdate when another writer got there first.
func (r *repository) UpdateLeaveBalances(ctx context.Context, empl *Employee) error {
	now := time.Now().UTC()
	res := r.conn(ctx).
		Model(&Employee{}).
		Where("id = ? AND company_id = ? AND version = ?", empl.ID, empl.CompanyID, empl.Version).
		Updates(map[string]any{
			"annual_leave_balance": empl.AnnualLeaveBalance,
			"sick_leave_balance":   empl.SickLeaveBalance,
			"casual_leave_balance": empl.CasualLeaveBalance,
			"version":              empl.Version + 1,
			"updated_at":           now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return employeeerrors.ErrConcurrentBalanceUpdate
	}

	empl.Version++
	empl.UpdatedAt = now
	return nil
}

func (r *repository) Terminate(ctx context.Context, companyID string, id string) error {
	res := r.conn(ctx).
		Model(&Employee{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Updates(map[string]any{
			"employment_status": StatusTerminated,
			"updated_at":        time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
