package attendance

import (
	"time"

	"go-ems/internal/shared/money"

	"github.com/shopspring/decimal"
)

var (
	standardHours = decimal.NewFromInt(8)
	halfDayHours  = decimal.NewFromInt(4)
	secondsInHour = decimal.NewFromInt(3600)
)

type Hours struct {
	Worked   decimal.Decimal
	Overtime decimal.Decimal
	Break    decimal.Decimal
	Status   Status
}

// DeriveHours computes worked, overtime and break hours for one day and the
// status that follows from worked hours. A break counts only when both ends are set.
func DeriveHours(checkIn, checkOut time.Time, breakStart, breakEnd *time.Time) Hours {
	total := hoursBetween(checkIn, checkOut)

	brk := money.Zero
	if breakStart != nil && breakEnd != nil {
		brk = money.Max0(hoursBetween(*breakStart, *breakEnd))
	}

	worked := money.Max0(money.Round2(total.Sub(brk)))
	overtime := money.Max0(money.Round2(worked.Sub(standardHours)))

	return Hours{
		Worked:   worked,
		Overtime: overtime,
		Break:    money.Round2(brk),
		Status:   StatusFromHours(worked),
	}
}

func StatusFromHours(worked decimal.Decimal) Status {
	switch {
	case worked.GreaterThanOrEqual(standardHours):
		return StatusPresent
	case worked.GreaterThanOrEqual(halfDayHours):
		return StatusHalfDay
	case worked.IsPositive():
		return StatusLate
	default:
		return StatusAbsent
	}
}

func hoursBetween(from, to time.Time) decimal.Decimal {
	return decimal.NewFromInt(int64(to.Sub(from) / time.Second)).Div(secondsInHour)
}

type Summary struct {
	WorkingDays   int
	OvertimeHours decimal.Decimal
}

// Accumulate counts PRESENT days and sums overtime across every row given.
func Accumulate(rows []Attendance) Summary {
	sum := Summary{OvertimeHours: money.Zero}
	for _, row := range rows {
		if row.Status == StatusPresent {
			sum.WorkingDays++
		}
		sum.OvertimeHours = sum.OvertimeHours.Add(row.OvertimeHours)
	}
	sum.OvertimeHours = money.Round2(sum.OvertimeHours)
	return sum
}
