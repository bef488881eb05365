package payroll

import (
	"go-ems/internal/shared/money"
	"go-ems/internal/tax"
)

// RecalculateTotals derives the earning, deduction and net totals from the breakdown
// fields. Running it twice gives the same result.
func (p *Payroll) RecalculateTotals() {
	p.TotalEarnings = money.Round2(money.Sum(
		p.BaseSalary,
		p.OvertimePay,
		p.Bonuses,
		p.Allowances,
		p.Commissions,
	))
	p.TotalDeductions = money.Round2(money.Sum(
		p.TaxDeduction,
		p.ProvidentFund,
		p.Insurance,
		p.LoanDeduction,
		p.OtherDeductions,
	))
	p.NetSalary = p.TotalEarnings.Sub(p.TotalDeductions)
}

func (p *Payroll) applyTax(d tax.Details) {
	p.TaxableIncome = d.TaxableIncome
	p.IncomeTax = d.IncomeTax
	p.ProfessionalTax = d.ProfessionalTax
	p.OtherTaxes = d.OtherTaxes
	p.TotalTax = d.TotalTax
	p.TaxSlab = d.Slab
}

func (p *Payroll) editable() bool {
	return p.Status == StatusDraft
}
