// Package money holds the currency-scale helpers shared by tax and payroll.
package money

import "github.com/shopspring/decimal"

const Scale = 2

var (
	Zero    = decimal.Zero
	Hundred = decimal.NewFromInt(100)
)

// Round2 rounds half away from zero to two places. Amounts here are never negative,
// so this is half-up.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(Scale)
}

// Percent returns pct% of d, rounded.
func Percent(d decimal.Decimal, pct string) decimal.Decimal {
	return Round2(d.Mul(decimal.RequireFromString(pct)).Div(Hundred))
}

func Max0(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return Zero
	}
	return d
}

func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// Parse accepts an empty string as zero.
func Parse(s string) (decimal.Decimal, error) {
	if s == "" {
		return Zero, nil
	}
	return decimal.NewFromString(s)
}
