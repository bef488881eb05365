package contextutil

import (
	"context"

	"go.uber.org/zap"
)

type contextKey int

const (
	requestIDKey contextKey = iota
	actorKey
	loggerKey
)

// Actor is the authenticated caller as read from the JWT claims.
type Actor struct {
	UserID     string
	EmployeeID string
	CompanyID  string
	Role       string
}

func (a Actor) fields() []zap.Field {
	return []zap.Field{
		zap.String("user_id", a.UserID),
		zap.String("employee_id", a.EmployeeID),
		zap.String("company_id", a.CompanyID),
		zap.String("role", a.Role),
	}
}

func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey, rid)
}

func GetRequestID(ctx context.Context) string {
	rid, _ := ctx.Value(requestIDKey).(string)
	return rid
}

func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorKey, a)
}

// GetActor reports false for background work such as the Kafka consumer.
func GetActor(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(actorKey).(Actor)
	return a, ok
}

// ActorFields returns the actor as zap fields, or nothing when there is none.
func ActorFields(ctx context.Context) []zap.Field {
	if a, ok := GetActor(ctx); ok {
		return a.fields()
	}
	return nil
}

func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLogger returns the request-scoped logger, then defaultLogger, then a no-op logger.
func GetLogger(ctx context.Context, defaultLogger *zap.Logger) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok && l != nil {
			return l
		}
	}
	if defaultLogger != nil {
		return defaultLogger
	}
	return zap.NewNop()
}
