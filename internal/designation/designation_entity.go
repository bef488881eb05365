package designation

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Designation is a job title inside one department.
type Designation struct {
	ID           uuid.UUID              `gorm:"type:uuid;primaryKey"`
	CompanyID    uuid.UUID              `gorm:"type:uuid;not null;index"`
	DepartmentID uuid.UUID              `gorm:"type:uuid;not null;index"`
	Department   *DesignationDepartment `gorm:"foreignKey:DepartmentID;references:ID;constraint:OnDelete:RESTRICT"`
	Name         string                 `gorm:"size:255;not null"`
	Description  string                 `gorm:"type:text"`
	CreatedAt    time.Time              `gorm:"autoCreateTime"`
	UpdatedAt    time.Time              `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt         `gorm:"index"`
}

func (Designation) TableName() string { return "designations" }

// DesignationDepartment is the read-only department columns preloaded with a designation.
type DesignationDepartment struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"column:name"`
}

func (DesignationDepartment) TableName() string {
	return "departments"
}
