package attendance

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
	attendances := r.Group("/attendances")
	attendances.Use(middleware.AuthMiddleware(jwtSecret))
	attendances.Use(middleware.ContextLogger(logger))
	{
		attendances.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "attendance", "read"),
			h.GetAll,
		)
		attendances.GET("/summary",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "attendance", "read"),
			h.Summary,
		)
		attendances.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "attendance", "read"),
			h.GetByID,
		)
		attendances.POST("/check-in",
			middleware.RateLimitByUser(0.2, 2),
			middleware.RBACAuthorize(rbacService, "attendance", "checkin"),
			h.CheckIn,
		)
		attendances.POST("/check-out",
			middleware.RateLimitByUser(0.2, 2),
			middleware.RBACAuthorize(rbacService, "attendance", "checkin"),
			h.CheckOut,
		)
		attendances.POST("",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "attendance", "create"),
			middleware.Idempotency(rdb, logger),
			h.Create,
		)
		attendances.POST("/:id/approve",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "attendance", "approve"),
			h.Approve,
		)
	}
}
