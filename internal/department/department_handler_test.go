package department_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"go-ems/internal/department"
	departmenterrors "go-ems/internal/department/errors"
	"go-ems/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	apperror.Init()
	os.Exit(m.Run())
}

type fakeDepartmentService struct {
	CreateFn  func(ctx context.Context, companyID string, req department.CreateDepartmentRequest) (department.DepartmentResponse, error)
	GetAllFn  func(ctx context.Context, companyID string) ([]department.DepartmentResponse, error)
	GetByIDFn func(ctx context.Context, companyID, id string) (department.DepartmentResponse, error)
	UpdateFn  func(ctx context.Context, companyID, id string, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error)
	DeleteFn  func(ctx context.Context, companyID, id string) error
}

func (f *fakeDepartmentService) Create(ctx context.Context, companyID string, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
	return f.CreateFn(ctx, companyID, req)
}
func (f *fakeDepartmentService) GetAll(ctx context.Context, companyID string) ([]department.DepartmentResponse, error) {
	return f.GetAllFn(ctx, companyID)
}
func (f *fakeDepartmentService) GetByID(ctx context.Context, companyID, id string) (department.DepartmentResponse, error) {
	return f.GetByIDFn(ctx, companyID, id)
}
func (f *fakeDepartmentService) Update(ctx context.Context, companyID, id string, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error) {
	return f.UpdateFn(ctx, companyID, id, req)
}
func (f *fakeDepartmentService) Delete(ctx context.Context, companyID, id string) error {
	return f.DeleteFn(ctx, companyID, id)
}

func TestDepartmentHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		companyID := uuid.New().String()
		svc := &fakeDepartmentService{
			CreateFn: func(ctx context.Context, cid string, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
				assert.Equal(t, companyID, cid)
				return department.DepartmentResponse{ID: uuid.New().String(), Name: req.Name, CompanyID: cid}, nil
			},
		}

		h := department.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/departments", strings.NewReader(`{"name":"People"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("company_id", companyID)

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("negative validation error", func(t *testing.T) {
		h := department.NewHandler(&fakeDepartmentService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/departments", strings.NewReader(`{}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("negative duplicate", func(t *testing.T) {
		svc := &fakeDepartmentService{
			CreateFn: func(ctx context.Context, cid string, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
				return department.DepartmentResponse{}, departmenterrors.ErrDepartmentAlreadyExists
			},
		}

		h := department.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/departments", strings.NewReader(`{"name":"People"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("company_id", uuid.New().String())

		h.Create(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("negative service error", func(t *testing.T) {
		svc := &fakeDepartmentService{
			CreateFn: func(ctx context.Context, cid string, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
				return department.DepartmentResponse{}, errors.New("failed")
			},
		}

		h := department.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/departments", strings.NewReader(`{"name":"People"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("company_id", uuid.New().String())

		h.Create(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestDepartmentHandler_GetAll(t *testing.T) {
	companyID := uuid.New().String()
	svc := &fakeDepartmentService{
		GetAllFn: func(ctx context.Context, cid string) ([]department.DepartmentResponse, error) {
			assert.Equal(t, companyID, cid)
			return []department.DepartmentResponse{{ID: uuid.New().String(), Name: "People"}}, nil
		},
	}

	h := department.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/departments", nil)
	c.Set("company_id", companyID)

	h.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "People")
}

func TestDepartmentHandler_GetByID(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		deptID := uuid.New().String()
		svc := &fakeDepartmentService{
			GetByIDFn: func(ctx context.Context, cid, id string) (department.DepartmentResponse, error) {
				assert.Equal(t, deptID, id)
				return department.DepartmentResponse{ID: id, Name: "People"}, nil
			},
		}

		h := department.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/departments/"+deptID, nil)
		c.Params = []gin.Param{{Key: "id", Value: deptID}}
		c.Set("company_id", uuid.New().String())

		h.GetById(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("negative not found", func(t *testing.T) {
		svc := &fakeDepartmentService{
			GetByIDFn: func(ctx context.Context, cid, id string) (department.DepartmentResponse, error) {
				return department.DepartmentResponse{}, departmenterrors.ErrDepartmentNotFound
			},
		}

		h := department.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/departments/x", nil)
		c.Params = []gin.Param{{Key: "id", Value: "x"}}

		h.GetById(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDepartmentHandler_Update(t *testing.T) {
	deptID := uuid.New().String()
	svc := &fakeDepartmentService{
		UpdateFn: func(ctx context.Context, cid, id string, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error) {
			assert.Equal(t, deptID, id)
			return department.DepartmentResponse{ID: id, Name: req.Name, CompanyID: cid}, nil
		},
	}

	h := department.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPut, "/departments/"+deptID, strings.NewReader(`{"name":"Finance"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = []gin.Param{{Key: "id", Value: deptID}}
	c.Set("company_id", uuid.New().String())

	h.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDepartmentHandler_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		companyID := uuid.New().String()
		deptID := uuid.New().String()
		svc := &fakeDepartmentService{
			DeleteFn: func(ctx context.Context, cid, id string) error {
				assert.Equal(t, companyID, cid)
				assert.Equal(t, deptID, id)
				return nil
			},
		}

		h := department.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodDelete, "/departments/"+deptID, nil)
		c.Params = []gin.Param{{Key: "id", Value: deptID}}
		c.Set("company_id", companyID)

		h.Delete(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("negative in use", func(t *testing.T) {
		svc := &fakeDepartmentService{
			DeleteFn: func(ctx context.Context, cid, id string) error {
				return departmenterrors.ErrDepartmentInUse
			},
		}

		h := department.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodDelete, "/departments/x", nil)
		c.Params = []gin.Param{{Key: "id", Value: "x"}}

		h.Delete(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}
