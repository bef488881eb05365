package events

import "time"

const (
	EmployeeLifecycleTopic = "ems.employee.lifecycle.v1"

	EmployeeCreatedEventType = "employee.created"
)

type EmployeeCreatedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeCode string    `json:"employee_code"`
	CompanyID    string    `json:"company_id"`
	OccurredAt   time.Time `json:"occurred_at"`
}
