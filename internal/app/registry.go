package app

import (
	"database/sql"

	"go-ems/internal/attendance"
	"go-ems/internal/config"
	"go-ems/internal/dashboard"
	"go-ems/internal/department"
	"go-ems/internal/designation"
	"go-ems/internal/employee"
	"go-ems/internal/leave"
	"go-ems/internal/messaging/kafka"
	"go-ems/internal/payroll"
	"go-ems/internal/rbac"
	"go-ems/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	designationRepo := designation.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	payrollRepo := payroll.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer, logger)

	// --- Services ---
	attendanceService := attendance.NewService(db, attendanceRepo, logger)
	departmentService := department.NewService(db, departmentRepo, rdb, logger)
	designationService := designation.NewService(db, designationRepo, departmentRepo, logger)
	employeeService := employee.NewServiceWithCatalog(
		db,
		employeeRepo,
		counterRepo,
		outboxRepo,
		designation.NewCatalog(departmentRepo, designationRepo),
		rdb,
		logger,
	)
	leaveService := leave.NewService(db, leaveRepo, employeeRepo, outboxRepo, logger)
	payrollService := payroll.NewService(
		db,
		payrollRepo,
		employeeRepo,
		attendanceService,
		leaveService,
		counterRepo,
		outboxRepo,
		logger,
	)
	dashboardService := dashboard.NewService(employeeRepo, attendanceRepo, attendanceService, leaveRepo, payrollRepo, logger)

	// --- Handlers ---
	attendanceHandler := attendance.NewHandler(attendanceService, logger)
	dashboardHandler := dashboard.NewHandler(dashboardService, logger)
	departmentHandler := department.NewHandler(departmentService, logger)
	designationHandler := designation.NewHandler(designationService, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	leaveHandler := leave.NewHandler(leaveService, logger)
	payrollHandler := payroll.NewHandler(payrollService, logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		attendance.RegisterRoutes(api, attendanceHandler, rbacService, cfg.JWTSecret, rdb, logger)
		dashboard.RegisterRoutes(api, dashboardHandler, rbacService, cfg.JWTSecret, logger)
		department.RegisterRoutes(api, departmentHandler, rbacService, cfg.JWTSecret, rdb, logger)
		designation.RegisterRoutes(api, designationHandler, rbacService, cfg.JWTSecret, rdb, logger)
		employee.RegisterRoutes(api, employeeHandler, rbacService, cfg.JWTSecret, rdb, logger)
		leave.RegisterRoutes(api, leaveHandler, rbacService, cfg.JWTSecret, rdb, logger)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, cfg.JWTSecret, rdb, logger)
	}

	return nil
}
