package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusApproved  Status = "APPROVED"
	StatusPaid      Status = "PAID"
	StatusCancelled Status = "CANCELLED"
)

var transitions = map[Status][]Status{
	StatusDraft:     {StatusApproved, StatusCancelled},
	StatusApproved:  {StatusPaid, StatusCancelled},
	StatusPaid:      {},
	StatusCancelled: {},
}

func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// Deletable is true only before approval or after cancellation.
func (s Status) Deletable() bool {
	return s == StatusDraft || s == StatusCancelled
}

type Payroll struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_payrolls_company_status"`
	EmployeeID  uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_payroll_employee_period,priority:1"`
	Period      string     `gorm:"type:varchar(7);not null;uniqueIndex:uq_payroll_employee_period,priority:2"`
	PeriodStart time.Time  `gorm:"type:date;not null"`
	PeriodEnd   time.Time  `gorm:"type:date;not null"`
	PayDate     *time.Time `gorm:"type:date"`

	WorkingDays   int             `gorm:"not null;default:0"`
	OvertimeHours decimal.Decimal `gorm:"type:numeric(7,2);not null;default:0"`
	LeaveDays     int             `gorm:"not null;default:0"`

	BaseSalary    decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0"`
	OvertimePay   decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0"`
	Bonuses       decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0"`
	Allowances    decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0"`
	Commissions   decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0"`
	TotalEarnings decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0"`

	TaxDeduction    decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0"`
	ProvidentFund   decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0"`
	Insurance       decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0"`
	LoanDeduction   decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0"`
	OtherDeductions decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0"`
	TotalDeductions decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0"`
	NetSalary       decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0"`

	// Monthly-scaled tax breakdown of the gross.
	TaxableIncome   decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0"`
	IncomeTax       decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0"`
	ProfessionalTax decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0"`
	OtherTaxes      decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0"`
	TotalTax        decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0"`
	TaxSlab         string          `gorm:"type:varchar(40)"`

	Status           Status     `gorm:"type:varchar(20);not null;index:idx_payrolls_company_status"`
	Notes            *string    `gorm:"type:text"`
	CreatedBy        uuid.UUID  `gorm:"type:uuid;not null"`
	ApprovedBy       *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt       *time.Time
	PaidAt           *time.Time
	PaymentReference *string `gorm:"type:varchar(40);uniqueIndex:uq_payroll_payment_reference"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Components []PayrollComponent `gorm:"foreignKey:PayrollID"`
}

type PayrollComponent struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PayrollID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	CompanyID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ComponentType ComponentType   `gorm:"type:varchar(20);not null"`
	ComponentName string          `gorm:"type:varchar(120);not null"`
	Amount        decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0"`
	Position      int             `gorm:"not null;default:0"`
	CreatedAt     time.Time
}
