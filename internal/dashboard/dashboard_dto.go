package dashboard

type MonthlyRequest struct {
	Period string `form:"period" binding:"omitempty,period"`
}

// CompanySummaryResponse is a point-in-time snapshot; Date and Period say which day and month it covers.
type CompanySummaryResponse struct {
	Date                  string         `json:"date"`
	Period                string         `json:"period"`
	TotalEmployees        int            `json:"total_employees"`
	EmployeesByStatus     map[string]int `json:"employees_by_status"`
	EmployeesByDepartment map[string]int `json:"employees_by_department"`
	AttendanceToday       int            `json:"attendance_today"`
	OnLeaveToday          int            `json:"on_leave_today"`
	PendingLeaves         int            `json:"pending_leaves"`
	ApprovedLeaves        int            `json:"approved_leaves"`
	PayrollsThisMonth     int            `json:"payrolls_this_month"`
	PayrollsByStatus      map[string]int `json:"payrolls_by_status"`
}

type LeaveBalancesResponse struct {
	Annual int `json:"annual"`
	Sick   int `json:"sick"`
	Casual int `json:"casual"`
}

type EmployeeMonthlyResponse struct {
	EmployeeID     string                `json:"employee_id"`
	EmployeeCode   string                `json:"employee_code"`
	FullName       string                `json:"full_name"`
	Department     string                `json:"department,omitempty"`
	Period         string                `json:"period"`
	WorkingDays    int                   `json:"working_days"`
	OvertimeHours  string                `json:"overtime_hours"`
	LeaveDaysTaken int                   `json:"leave_days_taken"`
	LeaveBalances  LeaveBalancesResponse `json:"leave_balances"`
}
