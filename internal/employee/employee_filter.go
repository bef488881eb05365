package employee

import (
	"sort"
	"strings"
)

var employeeOrderings = map[string]func(a, b EmployeeResponse) bool{
	"name":      func(a, b EmployeeResponse) bool { return strings.ToLower(a.FullName) < strings.ToLower(b.FullName) },
	"email":     func(a, b EmployeeResponse) bool { return strings.ToLower(a.Email) < strings.ToLower(b.Email) },
	"code":      func(a, b EmployeeResponse) bool { return a.EmployeeCode < b.EmployeeCode },
	"join_date": func(a, b EmployeeResponse) bool { return a.JoinDate < b.JoinDate },
}

// Apply filters rows in memory and sorts them stably, by name ascending unless
// the request says otherwise. rows is not modified.
func (f GetEmployeesFilterRequest) Apply(rows []EmployeeResponse) []EmployeeResponse {
	q := strings.ToLower(strings.TrimSpace(f.Q))
	status := strings.ToUpper(strings.TrimSpace(f.Status))
	dept := strings.TrimSpace(f.Department)

	out := make([]EmployeeResponse, 0, len(rows))
	for _, e := range rows {
		if q != "" && !containsFold(q, e.FullName, e.Email, e.EmployeeCode) {
			continue
		}
		if status != "" && e.EmploymentStatus != status {
			continue
		}
		if dept != "" && !strings.EqualFold(e.Department, dept) {
			continue
		}
		out = append(out, e)
	}

	less, ok := employeeOrderings[f.SortBy]
	if !ok {
		less = employeeOrderings["name"]
	}
	desc := f.SortDir == "desc"
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

func containsFold(q string, fields ...string) bool {
	for _, v := range fields {
		if strings.Contains(strings.ToLower(v), q) {
			return true
		}
	}
	return false
}
