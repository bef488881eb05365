package employee

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type EmploymentStatus string

const (
	StatusActive     EmploymentStatus = "ACTIVE"
	StatusInactive   EmploymentStatus = "INACTIVE"
	StatusTerminated EmploymentStatus = "TERMINATED"
	StatusOnLeave    EmploymentStatus = "ON_LEAVE"
)

func (s EmploymentStatus) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusTerminated, StatusOnLeave:
		return true
	}
	return false
}

// Opening balances for a new hire, in days.
const (
	DefaultAnnualLeaveBalance = 21
	DefaultSickLeaveBalance   = 12
	DefaultCasualLeaveBalance = 12
)

// Employee is the aggregate the payroll and leave modules read from. Leave
// balances are written only through UpdateLeaveBalances, which checks Version.
type Employee struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID          uuid.UUID `gorm:"type:uuid;index;uniqueIndex:uq_employee_code,priority:1"`
	EmployeeCode       string    `gorm:"size:32;not null;uniqueIndex:uq_employee_code,priority:2"`
	FullName           string    `gorm:"not null"`
	Email              string    `gorm:"not null;uniqueIndex:uq_employee_email"`
	Department         string
	Designation        string
	JoinDate           time.Time        `gorm:"type:date"`
	EmploymentStatus   EmploymentStatus `gorm:"size:20;not null"`
	BaseSalary         decimal.Decimal  `gorm:"type:numeric(15,2);not null;default:0"`
	Allowances         decimal.Decimal  `gorm:"type:numeric(15,2);not null;default:0"`
	AnnualLeaveBalance int              `gorm:"not null;default:0"`
	SickLeaveBalance   int              `gorm:"not null;default:0"`
	CasualLeaveBalance int              `gorm:"not null;default:0"`
	Version            int64            `gorm:"not null;default:0"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (Employee) TableName() string { return "employees" }

func (e Employee) IsActive() bool { return e.EmploymentStatus == StatusActive }
