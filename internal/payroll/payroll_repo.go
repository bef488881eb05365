package payroll

import (
	"context"
	"database/sql"

	"go-ems/internal/shared/database"
	"go-ems/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Filter struct {
	EmployeeID string
	Period     string
	Status     Status
}

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, payroll *Payroll) error
	FindAll(ctx context.Context, companyID string, filter Filter) ([]Payroll, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Payroll, error)
	FindByIDForUpdate(ctx context.Context, companyID string, id string) (*Payroll, error)
	FindByEmployeeAndPeriod(ctx context.Context, companyID string, employeeID string, period string) (*Payroll, error)
	Update(ctx context.Context, payroll *Payroll) error
	ReplaceComponents(ctx context.Context, payroll *Payroll) error
	Delete(ctx context.Context, companyID string, id string) error
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

// Create inserts the payroll together with its components.
func (r *repository) Create(ctx context.Context, payroll *Payroll) error {
	return r.conn(ctx).Create(payroll).Error
}

func (r *repository) FindAll(ctx context.Context, companyID string, filter Filter) ([]Payroll, error) {
	var payrolls []Payroll
	q := r.conn(ctx).Scopes(tenant.Scope(companyID))
	if filter.EmployeeID != "" {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Period != "" {
		q = q.Where("period = ?", filter.Period)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	err := q.Order("period DESC, created_at DESC").Find(&payrolls).Error
	return payrolls, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Payroll, error) {
	var payroll Payroll
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("Components", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&payroll, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &payroll, nil
}

// FindByIDForUpdate locks the payroll row until the surrounding transaction ends.
// Components are not loaded.
func (r *repository) FindByIDForUpdate(ctx context.Context, companyID string, id string) (*Payroll, error) {
	var payroll Payroll
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Scopes(tenant.Scope(companyID)).
		First(&payroll, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &payroll, nil
}

func (r *repository) FindByEmployeeAndPeriod(ctx context.Context, companyID string, employeeID string, period string) (*Payroll, error) {
	var payroll Payroll
	err := r.conn(ctx).
		Scopes(tenant.Employee(companyID, employeeID)).
		Where("period = ?", period).
		First(&payroll).Error
	if err != nil {
		return nil, err
	}
	return &payroll, nil
}

func (r *repository) Update(ctx context.Context, payroll *Payroll) error {
	return r.conn(ctx).Omit(clause.Associations).Save(payroll).Error
}

func (r *repository) ReplaceComponents(ctx context.Context, payroll *Payroll) error {
	db := r.conn(ctx)
	if err := db.Where("payroll_id = ?", payroll.ID).Delete(&PayrollComponent{}).Error; err != nil {
		return err
	}
	if len(payroll.Components) == 0 {
		return nil
	}
	return db.Create(&payroll.Components).Error
}

func (r *repository) Delete(ctx context.Context, companyID string, id string) error {
	db := r.conn(ctx)
	if err := db.Where("payroll_id = ? AND company_id = ?", id, companyID).Delete(&PayrollComponent{}).Error; err != nil {
		return err
	}
	res := db.Scopes(tenant.Scope(companyID)).Delete(&Payroll{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
