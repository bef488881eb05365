package leave

import (
	"time"

	"go-ems/internal/employee"
	leaveerrors "go-ems/internal/leave/errors"
)

type Type string

const (
	TypeAnnual    Type = "ANNUAL"
	TypeSick      Type = "SICK"
	TypeCasual    Type = "CASUAL"
	TypeMaternity Type = "MATERNITY"
	TypePaternity Type = "PATERNITY"
	TypeEmergency Type = "EMERGENCY"
)

func (t Type) Valid() bool {
	switch t {
	case TypeAnnual, TypeSick, TypeCasual, TypeMaternity, TypePaternity, TypeEmergency:
		return true
	}
	return false
}

// Tracked reports whether the type draws on a stored balance. The rest are unlimited.
func (t Type) Tracked() bool {
	return t == TypeAnnual || t == TypeSick || t == TypeCasual
}

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
)

var transitions = map[Status][]Status{
	StatusPending:   {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved:  {StatusCancelled},
	StatusRejected:  {StatusCancelled},
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

// TotalDays counts calendar days in [start, end], both ends included.
func TotalDays(start, end time.Time) int {
	return int(dayNumber(end)-dayNumber(start)) + 1
}

// dayNumber is the count of days since the Unix epoch for t's calendar date.
func dayNumber(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
}

// OverlapDays returns how many days of [start, end] fall inside [from, to].
func OverlapDays(start, end, from, to time.Time) int {
	if start.Before(from) {
		start = from
	}
	if end.After(to) {
		end = to
	}
	if end.Before(start) {
		return 0
	}
	return TotalDays(start, end)
}

type Balances struct {
	Annual int
	Sick   int
	Casual int
}

func balancesOf(e *employee.Employee) Balances {
	return Balances{
		Annual: e.AnnualLeaveBalance,
		Sick:   e.SickLeaveBalance,
		Casual: e.CasualLeaveBalance,
	}
}

func (b Balances) writeTo(e *employee.Employee) {
	e.AnnualLeaveBalance = b.Annual
	e.SickLeaveBalance = b.Sick
	e.CasualLeaveBalance = b.Casual
}

// Of returns the remaining days for t, or 0 for unlimited types.
func (b Balances) Of(t Type) int {
	switch t {
	case TypeAnnual:
		return b.Annual
	case TypeSick:
		return b.Sick
	case TypeCasual:
		return b.Casual
	default:
		return 0
	}
}

// Sufficient is always true for unlimited types.
func (b Balances) Sufficient(t Type, days int) bool {
	return !t.Tracked() || days <= b.Of(t)
}

func (b Balances) Debit(t Type, days int) (Balances, error) {
	if !b.Sufficient(t, days) {
		return b, leaveerrors.ErrInsufficientBalance
	}
	return b.add(t, -days), nil
}

func (b Balances) Credit(t Type, days int) Balances {
	return b.add(t, days)
}

func (b Balances) add(t Type, days int) Balances {
	switch t {
	case TypeAnnual:
		b.Annual += days
	case TypeSick:
		b.Sick += days
	case TypeCasual:
		b.Casual += days
	}
	return b
}
