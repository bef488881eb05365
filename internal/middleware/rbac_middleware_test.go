package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-ems/internal/middleware"
	"go-ems/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeRBACService struct {
	enforceFn func(req rbac.EnforceRequest) (bool, error)
}

func (f *fakeRBACService) Enforce(req rbac.EnforceRequest) (bool, error) {
	return f.enforceFn(req)
}

func runRBAC(svc middleware.RBACService, setAuth bool) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if setAuth {
			c.Set("employee_id", "emp-1")
			c.Set("company_id", "company-1")
			c.Set("role", "MANAGER")
		}
		c.Next()
	})
	r.POST("/leaves/:id/approve", middleware.RBACAuthorize(svc, "leave", "approve"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/leaves/l-1/approve", nil))
	return w
}

func TestRBACAuthorize(t *testing.T) {
	t.Run("allowed", func(t *testing.T) {
		svc := &fakeRBACService{enforceFn: func(req rbac.EnforceRequest) (bool, error) {
			assert.Equal(t, "emp-1", req.EmployeeID)
			assert.Equal(t, "company-1", req.CompanyID)
			assert.Equal(t, "MANAGER", req.Role)
			assert.Equal(t, "leave", req.Resource)
			assert.Equal(t, "approve", req.Action)
			return true, nil
		}}

		w := runRBAC(svc, true)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("denied", func(t *testing.T) {
		svc := &fakeRBACService{enforceFn: func(req rbac.EnforceRequest) (bool, error) { return false, nil }}

		w := runRBAC(svc, true)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "FORBIDDEN", decodeEnvelope(t, w.Body.Bytes()).Error.Code)
	})

	t.Run("enforcer error", func(t *testing.T) {
		svc := &fakeRBACService{enforceFn: func(req rbac.EnforceRequest) (bool, error) { return false, errors.New("boom") }}

		w := runRBAC(svc, true)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("missing auth context", func(t *testing.T) {
		svc := &fakeRBACService{enforceFn: func(req rbac.EnforceRequest) (bool, error) {
			t.Fatal("enforce must not be called")
			return false, nil
		}}

		w := runRBAC(svc, false)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("real enforcer", func(t *testing.T) {
		enforcer, err := rbac.NewEnforcer()
		assert.NoError(t, err)

		w := runRBAC(rbac.NewService(enforcer), true)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}
