package payroll

import (
	"go-ems/internal/shared/money"
	"go-ems/internal/tax"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	daysPerMonth     = decimal.NewFromInt(30)
	hoursPerDay      = decimal.NewFromInt(8)
	overtimeFactor   = decimal.RequireFromString("1.5")
	defaultInsurance = decimal.NewFromInt(500)
)

// HourlyRate is base/30/8 with each division rounded.
func HourlyRate(base decimal.Decimal) decimal.Decimal {
	daily := money.Round2(base.Div(daysPerMonth))
	return money.Round2(daily.Div(hoursPerDay))
}

func OvertimePay(base, overtimeHours decimal.Decimal) decimal.Decimal {
	return money.Round2(HourlyRate(base).Mul(overtimeFactor).Mul(overtimeHours))
}

// computeGenerated fills base salary, flat allowances, overtime pay and the default
// deductions from the employee record. p.OvertimeHours must already be set.
// Bonuses, commissions, loan and other deductions already on p are kept as they
// are and count toward gross pay and the totals.
func (p *Payroll) computeGenerated(base, flatAllowances decimal.Decimal) error {
	p.BaseSalary = money.Round2(base)
	p.Allowances = money.Round2(flatAllowances)
	p.OvertimeHours = money.Round2(p.OvertimeHours)
	p.OvertimePay = OvertimePay(p.BaseSalary, p.OvertimeHours)

	details, err := tax.Calculate(p.grossPay())
	if err != nil {
		return err
	}
	p.applyTax(details)

	_, deductionLines := StandardComponents(p.BaseSalary)
	p.TaxDeduction = details.TotalTax
	p.ProvidentFund = lineAmount(deductionLines, ComponentProvidentFund)
	p.Insurance = defaultInsurance
	p.RecalculateTotals()

	taxLines := []LineItem{{Name: ComponentIncomeTax, Amount: details.IncomeTax, Type: ComponentDeduction}}
	if details.ProfessionalTax.IsPositive() {
		taxLines = append(taxLines, LineItem{Name: ComponentProfessionalTax, Amount: details.ProfessionalTax, Type: ComponentDeduction})
	}
	p.setComponents(p.breakdownLines(taxLines))
	return nil
}

// computeSupplied recomputes tax details and totals for caller-supplied figures.
// A nil tax deduction defaults to the calculated total tax.
func (p *Payroll) computeSupplied(taxDeduction *decimal.Decimal) error {
	details, err := tax.Calculate(p.grossPay())
	if err != nil {
		return err
	}
	p.applyTax(details)

	p.TaxDeduction = details.TotalTax
	if taxDeduction != nil {
		p.TaxDeduction = money.Round2(*taxDeduction)
	}
	p.RecalculateTotals()
	p.setComponents(p.breakdownLines([]LineItem{{Name: ComponentTax, Amount: p.TaxDeduction, Type: ComponentDeduction}}))
	return nil
}

func (p *Payroll) grossPay() decimal.Decimal {
	return money.Sum(p.BaseSalary, p.OvertimePay, p.Bonuses, p.Allowances, p.Commissions)
}

// breakdownLines lists every non-zero figure behind the totals, base salary first.
func (p *Payroll) breakdownLines(taxLines []LineItem) []LineItem {
	lines := []LineItem{{Name: ComponentBaseSalary, Amount: p.BaseSalary, Type: ComponentEarning}}
	candidates := []LineItem{
		{Name: ComponentAllowances, Amount: p.Allowances, Type: ComponentAllowance},
		{Name: ComponentOvertime, Amount: p.OvertimePay, Type: ComponentEarning},
		{Name: ComponentBonus, Amount: p.Bonuses, Type: ComponentEarning},
		{Name: ComponentCommission, Amount: p.Commissions, Type: ComponentEarning},
	}
	candidates = append(candidates, taxLines...)
	candidates = append(candidates,
		LineItem{Name: ComponentProvidentFund, Amount: p.ProvidentFund, Type: ComponentDeduction},
		LineItem{Name: ComponentInsurance, Amount: p.Insurance, Type: ComponentDeduction},
		LineItem{Name: ComponentLoan, Amount: p.LoanDeduction, Type: ComponentDeduction},
		LineItem{Name: ComponentOther, Amount: p.OtherDeductions, Type: ComponentDeduction},
	)
	for _, l := range candidates {
		if !l.Amount.IsZero() {
			lines = append(lines, l)
		}
	}
	return lines
}

func (p *Payroll) setComponents(lines []LineItem) {
	p.Components = make([]PayrollComponent, len(lines))
	for i, l := range lines {
		p.Components[i] = PayrollComponent{
			ID:            uuid.New(),
			PayrollID:     p.ID,
			CompanyID:     p.CompanyID,
			ComponentType: l.Type,
			ComponentName: l.Name,
			Amount:        l.Amount,
			Position:      i,
		}
	}
}
