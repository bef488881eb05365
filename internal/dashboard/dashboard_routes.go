package dashboard

import (
	"go-ems/internal/middleware"
	"go-ems/internal/rbac"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	rbacService rbac.Service,
	jwtSecret string,
	logger *zap.Logger,
) {
	dashboard := r.Group("/dashboard")
	dashboard.Use(middleware.AuthMiddleware(jwtSecret))
	dashboard.Use(middleware.ContextLogger(logger))
	{
		dashboard.GET("/summary",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "dashboard", "summary"),
			h.CompanySummary,
		)
		dashboard.GET("/employees/:id/monthly",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "dashboard", "read"),
			h.EmployeeMonthly,
		)
	}
}
