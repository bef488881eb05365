package designation

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"go-ems/internal/department"
	designationerrors "go-ems/internal/designation/errors"
	"go-ems/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=designation_service.go -destination=mock/designation_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateDesignationRequest) (DesignationResponse, error)
	GetAll(ctx context.Context, companyID string, filter GetDesignationsFilterRequest) ([]DesignationResponse, error)
	GetByID(ctx context.Context, companyID, id string) (DesignationResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateDesignationRequest) (DesignationResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	db          *sql.DB
	repo        Repository
	departments department.Repository
	logger      *zap.Logger
}

func NewService(db *sql.DB, repo Repository, departments department.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("designation.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("designation.service")
	}
	return &service{db: db, repo: repo, departments: departments, logger: l}
}

// resolveDepartment loads the department inside tx so the designation cannot
// point at a department of another company.
func (s *service) resolveDepartment(ctx context.Context, tx *sql.Tx, companyID, departmentID string) (*department.Department, error) {
	if _, err := uuid.Parse(departmentID); err != nil {
		return nil, designationerrors.ErrInvalidDepartmentID
	}
	dept, err := s.departments.WithTx(tx).FindByIDAndCompany(ctx, companyID, departmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, designationerrors.ErrDepartmentNotFound
		}
		return nil, err
	}
	return dept, nil
}

func ensureNameFree(ctx context.Context, repo Repository, companyID, departmentID, name, selfID string) error {
	existing, err := repo.FindByName(ctx, companyID, departmentID, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if existing.ID.String() != selfID {
		return designationerrors.ErrDesignationAlreadyExists
	}
	return nil
}

func (s *service) Create(ctx context.Context, companyID string, req CreateDesignationRequest) (DesignationResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	cid, err := uuid.Parse(companyID)
	if err != nil {
		return DesignationResponse{}, designationerrors.ErrInvalidCompanyID
	}
	name := strings.TrimSpace(req.Name)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create designation begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return DesignationResponse{}, err
	}
	defer tx.Rollback()

	dept, err := s.resolveDepartment(ctx, tx, companyID, req.DepartmentID)
	if err != nil {
		return DesignationResponse{}, err
	}

	qtx := s.repo.WithTx(tx)
	if err := ensureNameFree(ctx, qtx, companyID, dept.ID.String(), name, ""); err != nil {
		return DesignationResponse{}, err
	}

	d := &Designation{
		ID:           uuid.New(),
		CompanyID:    cid,
		DepartmentID: dept.ID,
		Department:   &DesignationDepartment{ID: dept.ID, Name: dept.Name},
		Name:         name,
		Description:  strings.TrimSpace(req.Description),
	}
	if err := qtx.Create(ctx, d); err != nil {
		s.logger.Error("create designation persist failed", zap.String("request_id", rid), zap.Error(err))
		return DesignationResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create designation commit failed", zap.String("request_id", rid), zap.Error(err))
		return DesignationResponse{}, err
	}

	s.logger.Info("designation created",
		zap.String("request_id", rid),
		zap.String("designation_id", d.ID.String()),
		zap.String("department_id", dept.ID.String()),
	)
	return mapToResponse(*d), nil
}

func (s *service) GetAll(ctx context.Context, companyID string, filter GetDesignationsFilterRequest) ([]DesignationResponse, error) {
	rows, err := s.repo.FindAllByCompany(ctx, companyID, filter.DepartmentID)
	if err != nil {
		s.logger.Error("get designations failed", zap.String("company_id", companyID), zap.Error(err))
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (DesignationResponse, error) {
	d, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return DesignationResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*d), nil
}

func (s *service) Update(ctx context.Context, companyID, id string, req UpdateDesignationRequest) (DesignationResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	name := strings.TrimSpace(req.Name)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update designation begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return DesignationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	d, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return DesignationResponse{}, mapRepositoryError(err)
	}
	dept, err := s.resolveDepartment(ctx, tx, companyID, req.DepartmentID)
	if err != nil {
		return DesignationResponse{}, err
	}
	if err := ensureNameFree(ctx, qtx, companyID, dept.ID.String(), name, d.ID.String()); err != nil {
		return DesignationResponse{}, err
	}

	d.Name = name
	d.Description = strings.TrimSpace(req.Description)
	d.DepartmentID = dept.ID
	d.Department = &DesignationDepartment{ID: dept.ID, Name: dept.Name}

	if err := qtx.Update(ctx, d); err != nil {
		s.logger.Error("update designation persist failed", zap.String("request_id", rid), zap.Error(err))
		return DesignationResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update designation commit failed", zap.String("request_id", rid), zap.Error(err))
		return DesignationResponse{}, err
	}

	return mapToResponse(*d), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	rid := contextutil.GetRequestID(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete designation begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, companyID, id); err != nil {
		return mapRepositoryError(err)
	}

	return tx.Commit()
}

func mapToResponse(d Designation) DesignationResponse {
	resp := DesignationResponse{
		ID:          d.ID.String(),
		CompanyID:   d.CompanyID.String(),
		Name:        d.Name,
		Description: d.Description,
	}
	if d.DepartmentID != uuid.Nil {
		resp.DepartmentID = d.DepartmentID.String()
	}
	if d.Department != nil {
		resp.DepartmentName = d.Department.Name
	}
	if !d.CreatedAt.IsZero() {
		resp.CreatedAt = d.CreatedAt.Format(time.RFC3339)
	}
	if !d.UpdatedAt.IsZero() {
		resp.UpdatedAt = d.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(rows []Designation) []DesignationResponse {
	res := make([]DesignationResponse, len(rows))
	for i, d := range rows {
		res[i] = mapToResponse(d)
	}
	return res
}
