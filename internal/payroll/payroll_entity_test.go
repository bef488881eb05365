package payroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatus_Transitions(t *testing.T) {
	cases := []struct {
		from, to Status
		ok bool
	}{
		{StatusDraft, StatusApproved, true},
		{StatusDraft, StatusCancelled, true},
		{StatusDraft, StatusPaid, false},
		{StatusApproved, StatusPaid, true},
		{StatusApproved, StatusCancelled, true},
		{StatusApproved, StatusDraft, false},
		{StatusPaid, StatusCancelled, false},
		{StatusCancelled, StatusDraft, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}

	assert.True(t, StatusDraft.Deletable())
	assert.True(t, StatusCancelled.Deletable())
	assert.False(t, StatusApproved.Deletable())
	assert.False(t, StatusPaid.Deletable())
	assert.False(t, Status("PROCESSED").Valid())
}

func TestRecalculateTotals(t *testing.T) {
	p := &Payroll{
		BaseSalary:      d("50000"),
		OvertimePay:     d("1250.50"),
		Bonuses:         d("1000"),
		Allowances:      d("27850"),
		TaxDeduction:    d("4031.22"),
		ProvidentFund:   d("6000"),
		Insurance:       d("500"),
		OtherDeductions: d("0"),
	}

	p.RecalculateTotals()
	first := *p
	p.RecalculateTotals()

	assert.Equal(t, "80100.50", p.TotalEarnings.StringFixed(2))
	assert.Equal(t, "10531.22", p.TotalDeductions.StringFixed(2))
	assert.Equal(t, "69569.28", p.NetSalary.StringFixed(2))
	assert.True(t, first.NetSalary.Equal(p.NetSalary))
}

func TestPeriod(t *testing.T) {
	p, err := ParsePeriod("2024-02")
	assert.NoError(t, err)
	assert.Equal(t, "2024-02", p.String())

	from, to := p.Range()
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), to)

	_, err = ParsePeriod("2024-13")
	assert.Error(t, err)
	_, err = ParsePeriod("02/2024")
	assert.Error(t, err)
}
