package department

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	departmenterrors "go-ems/internal/department/errors"
	"go-ems/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	DepartmentAllKeyPrefix = "departments:all:"
	departmentListTTL      = 30 * time.Minute
)

func GetDepartmentAllKey(companyID string) string {
	return DepartmentAllKeyPrefix + companyID
}

//go:generate mockgen -source=department_service.go -destination=mock/department_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateDepartmentRequest) (DepartmentResponse, error)
	GetAll(ctx context.Context, companyID string) ([]DepartmentResponse, error)
	GetByID(ctx context.Context, companyID, id string) (DepartmentResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateDepartmentRequest) (DepartmentResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("department.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("department.service")
	}
	return &service{db: db, repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

// ensureNameFree rejects name when another department in the company already uses it.
func ensureNameFree(ctx context.Context, repo Repository, companyID, name, selfID string) error {
	existing, err := repo.FindByName(ctx, companyID, name)
	if err != nil {
		if errors.Is(mapRepositoryError(err), departmenterrors.ErrDepartmentNotFound) {
			return nil
		}
		return err
	}
	if existing.ID.String() != selfID {
		return departmenterrors.ErrDepartmentAlreadyExists
	}
	return nil
}

func (s *service) Create(
	ctx context.Context,
	companyID string,
	req CreateDepartmentRequest,
) (DepartmentResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	cid, err := uuid.Parse(companyID)
	if err != nil {
		return DepartmentResponse{}, departmenterrors.ErrInvalidCompanyID
	}
	name := strings.TrimSpace(req.Name)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create department begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := ensureNameFree(ctx, qtx, companyID, name, ""); err != nil {
		s.logger.Warn("create department rejected", zap.String("request_id", rid), zap.String("name", name), zap.Error(err))
		return DepartmentResponse{}, err
	}

	dept := &Department{
		ID:          uuid.New(),
		CompanyID:   cid,
		Name:        name,
		Description: strings.TrimSpace(req.Description),
	}
	if err := qtx.Create(ctx, dept); err != nil {
		s.logger.Error("create department persist failed", zap.String("request_id", rid), zap.Error(err))
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create department commit failed", zap.String("request_id", rid), zap.Error(err))
		return DepartmentResponse{}, err
	}

	s.invalidateList(ctx, companyID)
	s.logger.Info("department created", zap.String("request_id", rid), zap.String("department_id", dept.ID.String()))
	return mapToResponse(*dept), nil
}

func (s *service) GetAll(
	ctx context.Context,
	companyID string,
) ([]DepartmentResponse, error) {
	cacheKey := GetDepartmentAllKey(companyID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []DepartmentResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		depts, err := s.repo.FindAllByCompany(ctx, companyID)
		if err != nil {
			return nil, err
		}

		resp := mapToListResponse(depts)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, jsonData, departmentListTTL).Err(); err != nil {
					s.logger.Warn("cache departments failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}

		return resp, nil
	})
	if err != nil {
		s.logger.Error("get departments failed", zap.String("company_id", companyID), zap.Error(err))
		return nil, err
	}

	return v.([]DepartmentResponse), nil
}

func (s *service) GetByID(
	ctx context.Context,
	companyID, id string,
) (DepartmentResponse, error) {
	dept, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*dept), nil
}

func (s *service) Update(
	ctx context.Context,
	companyID, id string,
	req UpdateDepartmentRequest,
) (DepartmentResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	name := strings.TrimSpace(req.Name)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update department begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dept, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}
	if err := ensureNameFree(ctx, qtx, companyID, name, dept.ID.String()); err != nil {
		s.logger.Warn("update department rejected", zap.String("request_id", rid), zap.String("name", name), zap.Error(err))
		return DepartmentResponse{}, err
	}

	dept.Name = name
	dept.Description = strings.TrimSpace(req.Description)

	if err := qtx.Update(ctx, dept); err != nil {
		s.logger.Error("update department persist failed", zap.String("request_id", rid), zap.Error(err))
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update department commit failed", zap.String("request_id", rid), zap.Error(err))
		return DepartmentResponse{}, err
	}

	s.invalidateList(ctx, companyID)
	return mapToResponse(*dept), nil
}

func (s *service) Delete(
	ctx context.Context,
	companyID, id string,
) error {
	rid := contextutil.GetRequestID(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete department begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, companyID, id); err != nil {
		s.logger.Warn("delete department failed", zap.String("request_id", rid), zap.String("department_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete department commit failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	s.invalidateList(ctx, companyID)
	return nil
}

func (s *service) invalidateList(ctx context.Context, companyID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetDepartmentAllKey(companyID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate department cache", zap.String("key", cacheKey), zap.Error(err))
	}
}

func mapToResponse(dept Department) DepartmentResponse {
	resp := DepartmentResponse{
		ID:          dept.ID.String(),
		CompanyID:   dept.CompanyID.String(),
		Name:        dept.Name,
		Description: dept.Description,
	}
	if !dept.CreatedAt.IsZero() {
		resp.CreatedAt = dept.CreatedAt.Format(time.RFC3339)
	}
	if !dept.UpdatedAt.IsZero() {
		resp.UpdatedAt = dept.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(depts []Department) []DepartmentResponse {
	res := make([]DepartmentResponse, len(depts))
	for i, d := range depts {
		res[i] = mapToResponse(d)
	}
	return res
}
