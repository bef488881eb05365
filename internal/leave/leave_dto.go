package leave

type CreateLeaveRequest struct {
	EmployeeID       string  `json:"employee_id" binding:"omitempty,uuid"`
	LeaveType        string  `json:"leave_type" binding:"required,oneof=ANNUAL SICK CASUAL MATERNITY PATERNITY EMERGENCY"`
	StartDate        string  `json:"start_date" binding:"required,isodate"`
	EndDate          string  `json:"end_date" binding:"required,isodate"`
	Reason           string  `json:"reason" binding:"max=1000"`
	IsPaid           *bool   `json:"is_paid"`
	HandoverTo       *string `json:"handover_to" binding:"omitempty,uuid"`
	HandoverNotes    *string `json:"handover_notes"`
	EmergencyContact *string `json:"emergency_contact" binding:"omitempty,max=150"`
	EmergencyPhone   *string `json:"emergency_phone" binding:"omitempty,max=30"`
	DocumentPath     *string `json:"document_path" binding:"omitempty,max=255"`
}

type UpdateLeaveRequest struct {
	LeaveType        string  `json:"leave_type" binding:"required,oneof=ANNUAL SICK CASUAL MATERNITY PATERNITY EMERGENCY"`
	StartDate        string  `json:"start_date" binding:"required,isodate"`
	EndDate          string  `json:"end_date" binding:"required,isodate"`
	Reason           string  `json:"reason" binding:"max=1000"`
	IsPaid           *bool   `json:"is_paid"`
	HandoverTo       *string `json:"handover_to" binding:"omitempty,uuid"`
	HandoverNotes    *string `json:"handover_notes"`
	EmergencyContact *string `json:"emergency_contact" binding:"omitempty,max=150"`
	EmergencyPhone   *string `json:"emergency_phone" binding:"omitempty,max=30"`
	DocumentPath     *string `json:"document_path" binding:"omitempty,max=255"`
}

type RejectLeaveRequest struct {
	RejectionReason string `json:"rejection_reason" binding:"required"`
}

type GetLeavesFilterRequest struct {
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED CANCELLED"`
}

type LeaveResponse struct {
	ID               string  `json:"id"`
	CompanyID        string  `json:"company_id"`
	EmployeeID       string  `json:"employee_id"`
	LeaveType        Type    `json:"leave_type"`
	StartDate        string  `json:"start_date"`
	EndDate          string  `json:"end_date"`
	TotalDays        int     `json:"total_days"`
	Reason           string  `json:"reason"`
	IsPaid           bool    `json:"is_paid"`
	HandoverTo       *string `json:"handover_to,omitempty"`
	HandoverNotes    *string `json:"handover_notes,omitempty"`
	EmergencyContact *string `json:"emergency_contact,omitempty"`
	EmergencyPhone   *string `json:"emergency_phone,omitempty"`
	DocumentPath     *string `json:"document_path,omitempty"`
	Status           Status  `json:"status"`
	CreatedBy        string  `json:"created_by"`
	ApprovedBy       *string `json:"approved_by,omitempty"`
	ApprovedAt       *string `json:"approved_at,omitempty"`
	RejectionReason  *string `json:"rejection_reason,omitempty"`
	CancelledAt      *string `json:"cancelled_at,omitempty"`
}

type BalanceResponse struct {
	EmployeeID string `json:"employee_id"`
	Annual     int    `json:"annual"`
	Sick       int    `json:"sick"`
	Casual     int    `json:"casual"`
}
