package leave

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Leave struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index:idx_leaves_company_status"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_leaves_employee_dates"`

	LeaveType Type      `gorm:"type:varchar(30);not null"`
	StartDate time.Time `gorm:"type:date;not null;index:idx_leaves_employee_dates"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_leaves_employee_dates"`
	TotalDays int       `gorm:"type:int;not null"`
	Reason    string    `gorm:"type:text"`
	IsPaid    bool      `gorm:"not null"`

	HandoverTo       *uuid.UUID `gorm:"type:uuid"`
	HandoverNotes    *string    `gorm:"type:text"`
	EmergencyContact *string    `gorm:"type:varchar(150)"`
	EmergencyPhone   *string    `gorm:"type:varchar(30)"`
	DocumentPath     *string    `gorm:"type:varchar(255)"`

	Status          Status     `gorm:"type:varchar(20);not null;index:idx_leaves_company_status"`
	CreatedBy       uuid.UUID  `gorm:"type:uuid;not null"`
	ApprovedBy      *uuid.UUID `gorm:"type:uuid"`
	RejectionReason *string    `gorm:"type:text"`

	CreatedAt   time.Time
	UpdatedAt   time.Time
	ApprovedAt  *time.Time
	CancelledAt *time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index:idx_leaves_deleted_at"`
}
