package middleware

import (
	"go-ems/internal/rbac"
	"go-ems/internal/shared/apperror"
	"go-ems/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type RBACService interface {
	Enforce(req rbac.EnforceRequest) (bool, error)
}

func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		employeeID := c.GetString("employee_id")
		companyID := c.GetString("company_id")
		if employeeID == "" || companyID == "" {
			abortWithAppError(c, apperror.ErrUnauthorized, "missing auth context")
			return
		}

		allowed, err := service.Enforce(rbac.EnforceRequest{
			EmployeeID: employeeID,
			CompanyID:  companyID,
			Role:       c.GetString("role"),
			Resource:   resource,
			Action:     action,
		})
		if err != nil {
			abortWithAppError(c, apperror.ErrInternal, nil)
			return
		}

		if !allowed {
			response.Error(c, apperror.ErrForbidden.HTTPStatus, apperror.ErrForbidden.Code, apperror.ErrForbidden.Message, gin.H{
				"required": resource + ":" + action,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
