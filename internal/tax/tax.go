// Package tax computes monthly income tax from a monthly gross salary using the
// annual progressive slab table, a 4% cess and the monthly professional tax.
package tax

import (
	"errors"

	"go-ems/internal/shared/money"

	"github.com/shopspring/decimal"
)

var ErrNegativeSalary = errors.New("tax: gross salary must not be negative")

var (
	StandardDeduction = decimal.NewFromInt(50000)
	cessPercent       = "4"
	monthsPerYear     = decimal.NewFromInt(12)
)

type slab struct {
	lower   decimal.Decimal
	upper   decimal.Decimal // zero means unbounded
	percent string
	label   string
}

// Slabs are ordered; the tax of a slab is charged only on the part of income inside it.
var slabs = []slab{
	{lower: decimal.Zero, upper: decimal.NewFromInt(250000), percent: "0", label: "0% (Up to ₹2.5L)"},
	{lower: decimal.NewFromInt(250000), upper: decimal.NewFromInt(500000), percent: "5", label: "5% (₹2.5L - ₹5L)"},
	{lower: decimal.NewFromInt(500000), upper: decimal.NewFromInt(1000000), percent: "20", label: "20% (₹5L - ₹10L)"},
	{lower: decimal.NewFromInt(1000000), percent: "30", label: "30% (Above ₹10L)"},
}

type professionalTier struct {
	minGross decimal.Decimal
	amount   decimal.Decimal
}

var professionalTiers = []professionalTier{
	{minGross: decimal.NewFromInt(21000), amount: decimal.NewFromInt(200)},
	{minGross: decimal.NewFromInt(15000), amount: decimal.NewFromInt(175)},
	{minGross: decimal.NewFromInt(10000), amount: decimal.NewFromInt(150)},
}

// Details is monthly-scaled.
type Details struct {
	TaxableIncome   decimal.Decimal `json:"taxable_income"`
	IncomeTax       decimal.Decimal `json:"income_tax"`
	ProfessionalTax decimal.Decimal `json:"professional_tax"`
	OtherTaxes      decimal.Decimal `json:"other_taxes"`
	TotalTax        decimal.Decimal `json:"total_tax"`
	Slab            string          `json:"tax_slab"`
}

func Calculate(monthlyGross decimal.Decimal) (Details, error) {
	if monthlyGross.IsNegative() {
		return Details{}, ErrNegativeSalary
	}

	annualGross := monthlyGross.Mul(monthsPerYear)
	annualTaxable := money.Max0(annualGross.Sub(StandardDeduction))

	annualTax := money.Round2(slabTax(annualTaxable))
	cess := money.Percent(annualTax, cessPercent)
	monthlyIncomeTax := money.Round2(annualTax.Add(cess).Div(monthsPerYear))
	professional := ProfessionalTax(monthlyGross)

	return Details{
		TaxableIncome:   money.Round2(annualTaxable.Div(monthsPerYear)),
		IncomeTax:       monthlyIncomeTax,
		ProfessionalTax: professional,
		OtherTaxes:      money.Zero,
		TotalTax:        monthlyIncomeTax.Add(professional),
		Slab:            SlabLabel(annualTaxable),
	}, nil
}

func slabTax(annualTaxable decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, s := range slabs {
		if annualTaxable.LessThanOrEqual(s.lower) {
			break
		}
		top := annualTaxable
		if !s.upper.IsZero() && annualTaxable.GreaterThan(s.upper) {
			top = s.upper
		}
		total = total.Add(money.Percent(top.Sub(s.lower), s.percent))
	}
	return total
}

// SlabLabel names the highest bracket an annual taxable income reaches.
func SlabLabel(annualTaxable decimal.Decimal) string {
	for _, s := range slabs {
		if s.upper.IsZero() || annualTaxable.LessThanOrEqual(s.upper) {
			return s.label
		}
	}
	return slabs[len(slabs)-1].label
}

func ProfessionalTax(monthlyGross decimal.Decimal) decimal.Decimal {
	for _, tier := range professionalTiers {
		if monthlyGross.GreaterThanOrEqual(tier.minGross) {
			return tier.amount
		}
	}
	return money.Zero
}
