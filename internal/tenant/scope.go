// Package tenant holds the gorm scopes that keep every query inside one company.
package tenant

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Scope filters on the current table's company_id. The column is table
// qualified so joined queries stay unambiguous.
func Scope(companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(eq("company_id", companyID))
	}
}

// Employee narrows Scope to the rows one employee owns.
func Employee(companyID, employeeID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(eq("company_id", companyID)).Where(eq("employee_id", employeeID))
	}
}

func eq(column string, value string) clause.Eq {
	return clause.Eq{Column: clause.Column{Table: clause.CurrentTable, Name: column}, Value: value}
}
