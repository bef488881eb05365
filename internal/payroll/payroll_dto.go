package payroll

import "go-ems/internal/tax"

type GeneratePayrollRequest struct {
	EmployeeID      string `json:"employee_id" binding:"required,uuid"`
	Period          string `json:"period" binding:"required,period"`
	AttendanceBased *bool  `json:"attendance_based"`
	PayDate         string `json:"pay_date"`
}

type BulkGenerateRequest struct {
	Period          string `json:"period" binding:"required,period"`
	AttendanceBased *bool  `json:"attendance_based"`
	PayDate         string `json:"pay_date"`
}

// CreatePayrollRequest carries caller-supplied figures. An empty or zero base
// salary falls back to generation from the employee record, keeping the
// supplied bonuses, commissions, loan and other deductions.
type CreatePayrollRequest struct {
	EmployeeID      string  `json:"employee_id" binding:"required,uuid"`
	Period          string  `json:"period" binding:"required,period"`
	PayDate         string  `json:"pay_date"`
	AttendanceBased *bool   `json:"attendance_based"`
	BaseSalary      string  `json:"base_salary" binding:"omitempty,numeric"`
	OvertimePay     string  `json:"overtime_pay" binding:"omitempty,numeric"`
	Bonuses         string  `json:"bonuses" binding:"omitempty,numeric"`
	Allowances      string  `json:"allowances" binding:"omitempty,numeric"`
	Commissions     string  `json:"commissions" binding:"omitempty,numeric"`
	TaxDeduction    *string `json:"tax_deduction" binding:"omitempty,numeric"`
	ProvidentFund   string  `json:"provident_fund" binding:"omitempty,numeric"`
	Insurance       string  `json:"insurance" binding:"omitempty,numeric"`
	LoanDeduction   string  `json:"loan_deduction" binding:"omitempty,numeric"`
	OtherDeductions string  `json:"other_deductions" binding:"omitempty,numeric"`
	WorkingDays     int     `json:"working_days" binding:"gte=0"`
	OvertimeHours   string  `json:"overtime_hours" binding:"omitempty,numeric"`
	Notes           *string `json:"notes"`
}

type UpdatePayrollRequest struct {
	PayDate         string  `json:"pay_date"`
	BaseSalary      string  `json:"base_salary" binding:"required,numeric"`
	OvertimePay     string  `json:"overtime_pay" binding:"omitempty,numeric"`
	Bonuses         string  `json:"bonuses" binding:"omitempty,numeric"`
	Allowances      string  `json:"allowances" binding:"omitempty,numeric"`
	Commissions     string  `json:"commissions" binding:"omitempty,numeric"`
	TaxDeduction    *string `json:"tax_deduction" binding:"omitempty,numeric"`
	ProvidentFund   string  `json:"provident_fund" binding:"omitempty,numeric"`
	Insurance       string  `json:"insurance" binding:"omitempty,numeric"`
	LoanDeduction   string  `json:"loan_deduction" binding:"omitempty,numeric"`
	OtherDeductions string  `json:"other_deductions" binding:"omitempty,numeric"`
	WorkingDays     int     `json:"working_days" binding:"gte=0"`
	OvertimeHours   string  `json:"overtime_hours" binding:"omitempty,numeric"`
	Notes           *string `json:"notes"`
}

type GetPayrollsFilterRequest struct {
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	Period     string `form:"period" binding:"omitempty,period"`
	Status     string `form:"status" binding:"omitempty,oneof=DRAFT APPROVED PAID CANCELLED"`
}

type PayrollResponse struct {
	ID               string      `json:"id"`
	CompanyID        string      `json:"company_id"`
	EmployeeID       string      `json:"employee_id"`
	Period           string      `json:"period"`
	PeriodStart      string      `json:"period_start"`
	PeriodEnd        string      `json:"period_end"`
	PayDate          *string     `json:"pay_date,omitempty"`
	WorkingDays      int         `json:"working_days"`
	OvertimeHours    string      `json:"overtime_hours"`
	LeaveDays        int         `json:"leave_days"`
	BaseSalary       string      `json:"base_salary"`
	OvertimePay      string      `json:"overtime_pay"`
	Bonuses          string      `json:"bonuses"`
	Allowances       string      `json:"allowances"`
	Commissions      string      `json:"commissions"`
	TotalEarnings    string      `json:"total_earnings"`
	TaxDeduction     string      `json:"tax_deduction"`
	ProvidentFund    string      `json:"provident_fund"`
	Insurance        string      `json:"insurance"`
	LoanDeduction    string      `json:"loan_deduction"`
	OtherDeductions  string      `json:"other_deductions"`
	TotalDeductions  string      `json:"total_deductions"`
	NetSalary        string      `json:"net_salary"`
	TaxDetails       tax.Details `json:"tax_details"`
	Status           Status      `json:"status"`
	Notes            *string     `json:"notes,omitempty"`
	CreatedBy        string      `json:"created_by"`
	ApprovedBy       *string     `json:"approved_by,omitempty"`
	ApprovedAt       *string     `json:"approved_at,omitempty"`
	PaidAt           *string     `json:"paid_at,omitempty"`
	PaymentReference *string     `json:"payment_reference,omitempty"`
}

type ComponentResponse struct {
	Name   string        `json:"name"`
	Type   ComponentType `json:"type"`
	Amount string        `json:"amount"`
}

type PayrollBreakdownResponse struct {
	PayrollID       string              `json:"payroll_id"`
	Period          string              `json:"period"`
	Status          Status              `json:"status"`
	Earnings        []ComponentResponse `json:"earnings"`
	Deductions      []ComponentResponse `json:"deductions"`
	TaxDetails      tax.Details         `json:"tax_details"`
	TotalEarnings   string              `json:"total_earnings"`
	TotalDeductions string              `json:"total_deductions"`
	NetSalary       string              `json:"net_salary"`
}

type BulkFailure struct {
	EmployeeID string `json:"employee_id"`
	Error      string `json:"error"`
}

type BulkGenerateResponse struct {
	Period    string            `json:"period"`
	Generated []PayrollResponse `json:"generated"`
	Skipped   int               `json:"skipped"`
	Failed    []BulkFailure     `json:"failed"`
}
