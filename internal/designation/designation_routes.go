package designation

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
	designations := r.Group("/designations")
	designations.Use(middleware.AuthMiddleware(jwtSecret))
	designations.Use(middleware.ContextLogger(logger))
	{
		designations.GET("",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(rbacService, "designation", "read"),
			h.GetAll,
		)
		designations.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "designation", "create"),
			middleware.Idempotency(rdb, logger),
			h.Create,
		)
		designations.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "designation", "read"),
			h.GetById,
		)
		designations.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "designation", "update"),
			h.Update,
		)
		designations.DELETE("/:id",
			middleware.RateLimitByUser(0.05, 1),
			middleware.RBACAuthorize(rbacService, "designation", "delete"),
			h.Delete,
		)
	}
}
