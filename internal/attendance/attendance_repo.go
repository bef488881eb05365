package attendance

import (
	"context"
	"database/sql"
	"time"

	"go-ems/internal/shared/database"
	"go-ems/internal/tenant"

	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type Filter struct {
	EmployeeID string
	From       *time.Time
	To         *time.Time
	Status     Status
}

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	Update(ctx context.Context, a *Attendance) error
	FindByID(ctx context.Context, companyID, id string) (*Attendance, error)
	FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error)
	FindByEmployeeAndRange(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]Attendance, error)
	FindAll(ctx context.Context, companyID string, filter Filter) ([]Attendance, error)
	DeleteSystemLeaveDays(ctx context.Context, companyID, employeeID string, from, to time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return database.Conn(ctx, r.db, r.tx)
}

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.conn(ctx).Create(a).Error
}

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	return r.conn(ctx).Save(a).Error
}

func (r *repository) FindByID(ctx context.Context, companyID, id string) (*Attendance, error) {
	var a Attendance
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.conn(ctx).
		Scopes(tenant.Employee(companyID, employeeID)).
		Where("attendance_date = ?", date.Format(dateLayout)).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindByEmployeeAndRange(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]Attendance, error) {
	var rows []Attendance
	err := r.conn(ctx).
		Scopes(tenant.Employee(companyID, employeeID)).
		Where("attendance_date BETWEEN ? AND ?", from.Format(dateLayout), to.Format(dateLayout)).
		Order("attendance_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAll(ctx context.Context, companyID string, filter Filter) ([]Attendance, error) {
	var rows []Attendance
	q := r.conn(ctx).Scopes(tenant.Scope(companyID))
	if filter.EmployeeID != "" {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.From != nil {
		q = q.Where("attendance_date >= ?", filter.From.Format(dateLayout))
	}
	if filter.To != nil {
		q = q.Where("attendance_date <= ?", filter.To.Format(dateLayout))
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	err := q.Order("attendance_date DESC, check_in DESC").Find(&rows).Error
	return rows, err
}

// DeleteSystemLeaveDays removes LEAVE rows written by the leave consumer in [from, to].
// Rows recorded by hand are kept.
func (r *repository) DeleteSystemLeaveDays(ctx context.Context, companyID, employeeID string, from, to time.Time) (int64, error) {
	res := r.conn(ctx).
		Scopes(tenant.Employee(companyID, employeeID)).
		Where("attendance_date BETWEEN ? AND ?", from.Format(dateLayout), to.Format(dateLayout)).
		Where("source = ? AND status = ?", SourceSystem, StatusLeave).
		Delete(&Attendance{})
	return res.RowsAffected, res.Error
}
