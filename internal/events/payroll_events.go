package events

import "time"

const (
	PayrollLifecycleTopic = "ems.payroll.lifecycle.v1"

	PayrollApprovedEventType = "payroll.approved"
	PayrollPaidEventType     = "payroll.paid"
)

type PayrollEvent struct {
	EventType        string    `json:"event_type"`
	RequestID        string    `json:"request_id,omitempty"`
	PayrollID        string    `json:"payroll_id"`
	CompanyID        string    `json:"company_id"`
	EmployeeID       string    `json:"employee_id"`
	Period           string    `json:"period"`
	NetSalary        string    `json:"net_salary"`
	PaymentReference string    `json:"payment_reference,omitempty"`
	ActorID          string    `json:"actor_id,omitempty"`
	OccurredAt       time.Time `json:"occurred_at"`
}
