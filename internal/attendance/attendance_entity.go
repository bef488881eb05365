package attendance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusHalfDay Status = "HALF_DAY"
	StatusLate    Status = "LATE"
	StatusAbsent  Status = "ABSENT"
	StatusLeave   Status = "LEAVE"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPresent, StatusHalfDay, StatusLate, StatusAbsent, StatusLeave:
		return true
	}
	return false
}

const (
	SourceManual = "MANUAL"
	SourceSystem = "SYSTEM"
)

// Attendance is one day for one employee. (employee_id, attendance_date) is unique.
type Attendance struct {
	ID               uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID        uuid.UUID       `gorm:"column:company_id;type:uuid;not null;index"`
	EmployeeID       uuid.UUID       `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_attendance_employee_date,priority:1"`
	AttendanceDate   time.Time       `gorm:"column:attendance_date;type:date;not null;uniqueIndex:uq_attendance_employee_date,priority:2"`
	CheckIn          *time.Time      `gorm:"column:check_in"`
	CheckOut         *time.Time      `gorm:"column:check_out"`
	BreakStart       *time.Time      `gorm:"column:break_start"`
	BreakEnd         *time.Time      `gorm:"column:break_end"`
	HoursWorked      decimal.Decimal `gorm:"column:hours_worked;type:numeric(5,2);not null"`
	OvertimeHours    decimal.Decimal `gorm:"column:overtime_hours;type:numeric(5,2);not null"`
	BreakHours       decimal.Decimal `gorm:"column:break_hours;type:numeric(5,2);not null"`
	Status           Status          `gorm:"column:status;type:varchar(20);not null"`
	Source           string          `gorm:"column:source;type:varchar(30);not null"`
	CheckInLocation  *string         `gorm:"column:check_in_location;type:varchar(255)"`
	CheckOutLocation *string         `gorm:"column:check_out_location;type:varchar(255)"`
	Remarks          *string         `gorm:"column:remarks;type:text"`
	IsApproved       bool            `gorm:"column:is_approved;not null"`
	ApprovedBy       *uuid.UUID      `gorm:"column:approved_by;type:uuid"`
	ApprovedAt       *time.Time      `gorm:"column:approved_at"`
	CreatedAt        time.Time       `gorm:"column:created_at"`
	UpdatedAt        time.Time       `gorm:"column:updated_at"`
}

func (Attendance) TableName() string {
	return "attendances"
}

func (a *Attendance) applyHours(h Hours) {
	a.HoursWorked = h.Worked
	a.OvertimeHours = h.Overtime
	a.BreakHours = h.Break
	a.Status = h.Status
}
