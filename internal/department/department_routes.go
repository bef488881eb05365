package department

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
	departments := r.Group("/departments")
	departments.Use(middleware.AuthMiddleware(jwtSecret))
	departments.Use(middleware.ContextLogger(logger))
	{
		departments.GET("",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(rbacService, "department", "read"),
			h.GetAll,
		)
		departments.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "department", "create"),
			middleware.Idempotency(rdb, logger),
			h.Create,
		)
		departments.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "department", "read"),
			h.GetById,
		)
		departments.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "department", "update"),
			h.Update,
		)
		departments.DELETE("/:id",
			middleware.RateLimitByUser(0.05, 1),
			middleware.RBACAuthorize(rbacService, "department", "delete"),
			h.Delete,
		)
	}
}
