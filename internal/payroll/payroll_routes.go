package payroll

import (
	"go-ems/internal/middleware"
	"go-ems/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	rbacService rbac.Service,
	jwtSecret string,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	payrolls := r.Group("/payrolls")
	payrolls.Use(middleware.AuthMiddleware(jwtSecret))
	payrolls.Use(middleware.ContextLogger(logger))
	{
		payrolls.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "payroll", "read"),
			h.GetAll,
		)
		payrolls.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "payroll", "read"),
			h.GetByID,
		)
		payrolls.GET("/:id/breakdown",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "payroll", "read"),
			h.GetBreakdown,
		)
		payrolls.GET("/:id/payslip",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "payroll", "read"),
			h.DownloadPayslip,
		)
		payrolls.POST("",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "payroll", "create"),
			middleware.Idempotency(rdb, logger),
			h.Create,
		)
		payrolls.POST("/generate",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "payroll", "create"),
			middleware.Idempotency(rdb, logger),
			h.Generate,
		)
		payrolls.POST("/generate-bulk",
			middleware.RateLimitByUser(1, 2),
			middleware.RBACAuthorize(rbacService, "payroll", "create"),
			middleware.Idempotency(rdb, logger),
			h.GenerateBulk,
		)
		payrolls.PUT("/:id",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "payroll", "update"),
			h.Update,
		)
		payrolls.POST("/:id/approve",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "payroll", "approve"),
			h.Approve,
		)
		payrolls.POST("/:id/pay",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "payroll", "pay"),
			h.ProcessPayment,
		)
		payrolls.POST("/:id/cancel",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "payroll", "cancel"),
			h.Cancel,
		)
		payrolls.DELETE("/:id",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "payroll", "delete"),
			h.Delete,
		)
	}
}
