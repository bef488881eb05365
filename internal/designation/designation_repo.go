package designation

import (
	"context"
	"database/sql"
	"strings"

	"go-ems/internal/shared/database"
	"go-ems/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=designation_repo.go -destination=mock/designation_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, d *Designation) error
	FindAllByCompany(ctx context.Context, companyID string, departmentID string) ([]Designation, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Designation, error)
	FindByName(ctx context.Context, companyID string, departmentID string, name string) (*Designation, error)
	Update(ctx context.Context, d *Designation) error
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

func (r *repository) Create(ctx context.Context, d *Designation) error {
	return r.conn(ctx).Omit("Department").Create(d).Error
}

// FindAllByCompany lists every designation when departmentID is empty.
func (r *repository) FindAllByCompany(ctx context.Context, companyID string, departmentID string) ([]Designation, error) {
	var rows []Designation
	q := r.conn(ctx).
		Preload("Department").
		Scopes(tenant.Scope(companyID))
	if departmentID != "" {
		q = q.Where("department_id = ?", departmentID)
	}
	err := q.Order("name ASC").Find(&rows).Error
	return rows, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Designation, error) {
	var d Designation
	err := r.conn(ctx).
		Preload("Department").
		Scopes(tenant.Scope(companyID)).
		First(&d, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// FindByName matches case-insensitively, across all departments when departmentID is empty.
func (r *repository) FindByName(ctx context.Context, companyID string, departmentID string, name string) (*Designation, error) {
	var d Designation
	q := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name)))
	if departmentID != "" {
		q = q.Where("department_id = ?", departmentID)
	}
	if err := q.First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repository) Update(ctx context.Context, d *Designation) error {
	// The preloaded Department must not be written back.
	return r.conn(ctx).Omit("Department").Save(d).Error
}

func (r *repository) Delete(ctx context.Context, companyID string, id string) error {
	res := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Designation{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
