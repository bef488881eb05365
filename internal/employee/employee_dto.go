package employee

type CreateEmployeeRequest struct {
	EmployeeCode     string `json:"employee_code" binding:"omitempty,max=32"`
	FullName         string `json:"full_name" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	Department       string `json:"department"`
	Designation      string `json:"designation"`
	JoinDate         string `json:"join_date" binding:"required,isodate"`
	EmploymentStatus string `json:"employment_status" binding:"omitempty,oneof=ACTIVE INACTIVE TERMINATED ON_LEAVE"`
	BaseSalary       string `json:"base_salary" binding:"required,numeric"`
	Allowances       string `json:"allowances" binding:"omitempty,numeric"`
}

type UpdateEmployeeRequest struct {
	EmployeeCode     string `json:"employee_code" binding:"required,max=32"`
	FullName         string `json:"full_name" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	Department       string `json:"department"`
	Designation      string `json:"designation"`
	JoinDate         string `json:"join_date" binding:"required,isodate"`
	EmploymentStatus string `json:"employment_status" binding:"required,oneof=ACTIVE INACTIVE TERMINATED ON_LEAVE"`
	BaseSalary       string `json:"base_salary" binding:"required,numeric"`
	Allowances       string `json:"allowances" binding:"omitempty,numeric"`
}

type UpdateLeaveBalancesRequest struct {
	AnnualLeaveBalance int `json:"annual_leave_balance" binding:"min=0"`
	SickLeaveBalance   int `json:"sick_leave_balance" binding:"min=0"`
	CasualLeaveBalance int `json:"casual_leave_balance" binding:"min=0"`
}

type LeaveBalancesResponse struct {
	Annual int `json:"annual"`
	Sick   int `json:"sick"`
	Casual int `json:"casual"`
}

type EmployeeResponse struct {
	ID               string                 `json:"id"`
	CompanyID        string                 `json:"company_id,omitempty"`
	EmployeeCode     string                 `json:"employee_code"`
	FullName         string                 `json:"full_name"`
	Email            string                 `json:"email,omitempty"`
	Department       string                 `json:"department,omitempty"`
	Designation      string                 `json:"designation,omitempty"`
	JoinDate         string                 `json:"join_date,omitempty"`
	EmploymentStatus string                 `json:"employment_status,omitempty"`
	BaseSalary       string                 `json:"base_salary,omitempty"`
	Allowances       string                 `json:"allowances,omitempty"`
	LeaveBalances    *LeaveBalancesResponse `json:"leave_balances,omitempty"`
	Version          int64                  `json:"version,omitempty"`
}

type GetEmployeesFilterRequest struct {
	Q          string `form:"q"`
	Status     string `form:"status"`
	Department string `form:"department"`
	SortBy     string `form:"sort_by" binding:"omitempty,oneof=name email code join_date"`
	SortDir    string `form:"sort_dir" binding:"omitempty,oneof=asc desc"`
}
