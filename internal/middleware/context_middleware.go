package middleware

import (
	"go-ems/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextLogger copies the JWT claims into the request context as an Actor
// and attaches a logger carrying them. Mount it after AuthMiddleware and RequestID.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := contextutil.Actor{
			UserID:     c.GetString("user_id"),
			EmployeeID: c.GetString("employee_id"),
			CompanyID:  c.GetString("company_id"),
			Role:       c.GetString("role"),
		}

		ctx := contextutil.WithActor(c.Request.Context(), actor)
		reqLogger := logger.With(zap.String("request_id", contextutil.GetRequestID(ctx)))
		reqLogger = reqLogger.With(contextutil.ActorFields(ctx)...)
		c.Request = c.Request.WithContext(contextutil.WithLogger(ctx, reqLogger))

		c.Next()
	}
}
