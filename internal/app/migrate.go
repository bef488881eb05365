package app

import (
	"go-ems/internal/attendance"
	"go-ems/internal/department"
	"go-ems/internal/designation"
	"go-ems/internal/employee"
	"go-ems/internal/leave"
	"go-ems/internal/payroll"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Tables written through raw SQL rather than gorm models.
var infraDDL = []string{
	`CREATE TABLE IF NOT EXISTS outbox_events (
		id uuid PRIMARY KEY,
		request_id varchar(64),
		aggregate_type varchar(50) NOT NULL,
		aggregate_id uuid NOT NULL,
		event_type varchar(100) NOT NULL,
		topic varchar(150) NOT NULL,
		payload jsonb NOT NULL,
		status varchar(20) NOT NULL DEFAULT 'pending',
		retry_count int NOT NULL DEFAULT 0,
		next_retry_at timestamptz,
		error_message text,
		processed_at timestamptz,
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_outbox_events_status_created ON outbox_events (status, created_at)`,
	`CREATE TABLE IF NOT EXISTS company_counters (
		company_id uuid NOT NULL,
		counter_type varchar(50) NOT NULL,
		last_value bigint NOT NULL DEFAULT 0,
		updated_at timestamptz NOT NULL DEFAULT now(),
		PRIMARY KEY (company_id, counter_type)
	)`,
}

func migrateModels(db *gorm.DB) error {
	return db.AutoMigrate(
		&department.Department{},
		&designation.Designation{},
		&employee.Employee{},
		&attendance.Attendance{},
		&leave.Leave{},
		&payroll.Payroll{},
		&payroll.PayrollComponent{},
	)
}

// Migrate creates or updates every table the binaries use. Postgres only.
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	log := logger.Named("app.migrate")

	if err := migrateModels(db); err != nil {
		log.Error("auto migrate failed", zap.Error(err))
		return err
	}
	for _, stmt := range infraDDL {
		if err := db.Exec(stmt).Error; err != nil {
			log.Error("infra ddl failed", zap.Error(err))
			return err
		}
	}

	log.Info("schema migrated")
	return nil
}
