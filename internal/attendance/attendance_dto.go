package attendance

// Timestamps are RFC3339; dates are YYYY-MM-DD.

type CheckInRequest struct {
	Location *string `json:"location"`
	Source   string  `json:"source"`
	Remarks  *string `json:"remarks"`
}

type CheckOutRequest struct {
	Location   *string `json:"location"`
	BreakStart *string `json:"break_start"`
	BreakEnd   *string `json:"break_end"`
	Remarks    *string `json:"remarks"`
}

type CreateAttendanceRequest struct {
	EmployeeID       string  `json:"employee_id" binding:"required,uuid"`
	AttendanceDate   string  `json:"attendance_date" binding:"required,isodate"`
	CheckIn          *string `json:"check_in"`
	CheckOut         *string `json:"check_out"`
	BreakStart       *string `json:"break_start"`
	BreakEnd         *string `json:"break_end"`
	Status           string  `json:"status"`
	Source           string  `json:"source"`
	CheckInLocation  *string `json:"check_in_location"`
	CheckOutLocation *string `json:"check_out_location"`
	Remarks          *string `json:"remarks"`
}

type GetAttendanceFilterRequest struct {
	EmployeeID string `form:"employee_id"`
	From       string `form:"from"`
	To         string `form:"to"`
	Status     string `form:"status"`
}

type SummaryRequest struct {
	EmployeeID string `form:"employee_id"`
	From       string `form:"from" binding:"required,isodate"`
	To         string `form:"to" binding:"required,isodate"`
}

type AttendanceResponse struct {
	ID               string  `json:"id"`
	CompanyID        string  `json:"company_id"`
	EmployeeID       string  `json:"employee_id"`
	AttendanceDate   string  `json:"attendance_date"`
	CheckIn          *string `json:"check_in,omitempty"`
	CheckOut         *string `json:"check_out,omitempty"`
	BreakStart       *string `json:"break_start,omitempty"`
	BreakEnd         *string `json:"break_end,omitempty"`
	HoursWorked      string  `json:"hours_worked"`
	OvertimeHours    string  `json:"overtime_hours"`
	BreakHours       string  `json:"break_hours"`
	Status           Status  `json:"status"`
	Source           string  `json:"source"`
	CheckInLocation  *string `json:"check_in_location,omitempty"`
	CheckOutLocation *string `json:"check_out_location,omitempty"`
	Remarks          *string `json:"remarks,omitempty"`
	IsApproved       bool    `json:"is_approved"`
	ApprovedBy       *string `json:"approved_by,omitempty"`
	ApprovedAt       *string `json:"approved_at,omitempty"`
}

type SummaryResponse struct {
	EmployeeID    string `json:"employee_id"`
	From          string `json:"from"`
	To            string `json:"to"`
	WorkingDays   int    `json:"working_days"`
	OvertimeHours string `json:"overtime_hours"`
}
