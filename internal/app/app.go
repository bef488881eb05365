package app

import (
	"go-ems/internal/config"
	"go-ems/internal/middleware"
	"go-ems/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// BuildApp connects the infrastructure and registers every module on router. The
// returned cleanup closes the connections it opened.
func BuildApp(router *gin.Engine, cfg config.Config, logger *zap.Logger) (func(), error) {
	gormDB, err := connection.ConnectGORMWithRetry(cfg.DB, logger)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	if cfg.DB.AutoMigrate {
		if err := Migrate(gormDB, logger); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
	}

	redisClient, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.DB.MaxRetries, logger)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	cleanup := func() {
		_ = redisClient.Close()
		_ = sqlDB.Close()
	}

	router.Use(middleware.RequestID())
	router.Use(middleware.RateLimitByIP(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst))

	if err := registerModules(router, cfg, sqlDB, gormDB, redisClient, logger); err != nil {
		cleanup()
		return nil, err
	}

	logger.Info("modules registered", zap.String("env", cfg.AppEnv))
	return cleanup, nil
}
