package events

import "time"

const (
	LeaveLifecycleTopic = "ems.leave.lifecycle.v1"
	// LeaveDeadLetterTopic holds lifecycle messages the consumer gave up on.
	LeaveDeadLetterTopic = "ems.leave.lifecycle.v1.dlq"

	LeaveApprovedEventType  = "leave.approved"
	LeaveCancelledEventType = "leave.cancelled"
)

// LeaveEvent carries the inclusive date range as YYYY-MM-DD strings.
type LeaveEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	LeaveID    string    `json:"leave_id"`
	CompanyID  string    `json:"company_id"`
	EmployeeID string    `json:"employee_id"`
	LeaveType  string    `json:"leave_type"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	TotalDays  int       `json:"total_days"`
	ActorID    string    `json:"actor_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
