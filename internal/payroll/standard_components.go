package payroll

import (
	"go-ems/internal/shared/money"

	"github.com/shopspring/decimal"
)

type ComponentType string

const (
	ComponentEarning   ComponentType = "EARNING"
	ComponentAllowance ComponentType = "ALLOWANCE"
	ComponentDeduction ComponentType = "DEDUCTION"
)

const (
	ComponentHRA             = "HRA"
	ComponentDA              = "DA"
	ComponentMedical         = "MEDICAL"
	ComponentTransport       = "TA"
	ComponentProvidentFund   = "PF"
	ComponentESI             = "ESI"
	ComponentIncomeTax       = "INCOME_TAX"
	ComponentProfessionalTax = "PROFESSIONAL_TAX"
	ComponentInsurance       = "INSURANCE"
	ComponentLoan            = "LOAN"
	ComponentOther           = "OTHER_DEDUCTIONS"
	ComponentBaseSalary      = "BASE_SALARY"
	ComponentOvertime        = "OVERTIME"
	ComponentBonus           = "BONUS"
	ComponentCommission      = "COMMISSION"
	ComponentAllowances      = "ALLOWANCES"
	ComponentTax             = "TAX"
)

var (
	medicalAllowance   = decimal.NewFromInt(1250)
	transportAllowance = decimal.NewFromInt(1600)
	esiGrossFactor     = decimal.RequireFromString("1.5")
	esiCeiling         = decimal.NewFromInt(21000)
)

type LineItem struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
	Type   ComponentType   `json:"type"`
}

// StandardComponents derives the default allowance and deduction lines from a base salary.
// ESI applies only while the approximated gross (base x 1.5) stays within the ceiling.
func StandardComponents(base decimal.Decimal) ([]LineItem, []LineItem) {
	allowances := []LineItem{
		{Name: ComponentHRA, Amount: money.Percent(base, "40"), Type: ComponentAllowance},
		{Name: ComponentDA, Amount: money.Percent(base, "10"), Type: ComponentAllowance},
		{Name: ComponentMedical, Amount: money.Round2(medicalAllowance), Type: ComponentAllowance},
		{Name: ComponentTransport, Amount: money.Round2(transportAllowance), Type: ComponentAllowance},
	}

	deductions := []LineItem{
		{Name: ComponentProvidentFund, Amount: money.Percent(base, "12"), Type: ComponentDeduction},
	}
	approxGross := base.Mul(esiGrossFactor)
	if approxGross.LessThanOrEqual(esiCeiling) {
		deductions = append(deductions, LineItem{
			Name:   ComponentESI,
			Amount: money.Percent(approxGross, "0.75"),
			Type:   ComponentDeduction,
		})
	}
	return allowances, deductions
}

func sumLines(lines []LineItem) decimal.Decimal {
	total := money.Zero
	for _, l := range lines {
		total = total.Add(l.Amount)
	}
	return total
}

func lineAmount(lines []LineItem, name string) decimal.Decimal {
	for _, l := range lines {
		if l.Name == name {
			return l.Amount
		}
	}
	return money.Zero
}
