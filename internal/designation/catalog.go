package designation

import (
	"context"
	"errors"

	"go-ems/internal/department"

	"gorm.io/gorm"
)

// Catalog answers whether department and designation names exist for a company.
// Employee records store the names, so lookups are by name.
type Catalog struct {
	departments  department.Repository
	designations Repository
}

func NewCatalog(departments department.Repository, designations Repository) *Catalog {
	return &Catalog{departments: departments, designations: designations}
}

func (c *Catalog) HasDepartment(ctx context.Context, companyID, name string) (bool, error) {
	_, err := c.departments.FindByName(ctx, companyID, name)
	return found(err)
}

// HasDesignation looks inside departmentName when it is set, otherwise in any department.
func (c *Catalog) HasDesignation(ctx context.Context, companyID, departmentName, name string) (bool, error) {
	departmentID := ""
	if departmentName != "" {
		dept, err := c.departments.FindByName(ctx, companyID, departmentName)
		if ok, err := found(err); !ok {
			return false, err
		}
		departmentID = dept.ID.String()
	}
	_, err := c.designations.FindByName(ctx, companyID, departmentID, name)
	return found(err)
}

func found(err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}
