package payroll

import (
	"fmt"
	"strings"
	"time"

	payrollerrors "go-ems/internal/payroll/errors"
)

const periodLayout = "2006-01"

// Period is a calendar month.
type Period struct {
	Year  int
	Month time.Month
}

func ParsePeriod(v string) (Period, error) {
	t, err := time.Parse(periodLayout, strings.TrimSpace(v))
	if err != nil {
		return Period{}, payrollerrors.ErrInvalidPeriodFormat
	}
	return Period{Year: t.Year(), Month: t.Month()}, nil
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// Range returns the first and last day of the month.
func (p Period) Range() (time.Time, time.Time) {
	from := time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, -1)
}
