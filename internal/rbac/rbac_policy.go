package rbac

const (
	RoleAdmin    = "ADMIN"
	RoleHR       = "HR"
	RoleManager  = "MANAGER"
	RoleEmployee = "EMPLOYEE"
)

// Model matches a role against resource/action pairs. "*" in a policy matches anything.
const Model = `[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && (p.obj == "*" || r.obj == p.obj) && (p.act == "*" || r.act == p.act)
`

// Each role inherits everything granted to the role it is grouped under.
var roleHierarchy = [][]string{
	{RoleAdmin, RoleHR},
	{RoleHR, RoleManager},
	{RoleManager, RoleEmployee},
}

var defaultPolicies = [][]string{
	{RoleEmployee, "employee", "read"},
	{RoleEmployee, "department", "read"},
	{RoleEmployee, "designation", "read"},
	{RoleEmployee, "attendance", "checkin"},
	{RoleEmployee, "attendance", "read"},
	{RoleEmployee, "leave", "read"},
	{RoleEmployee, "leave", "create"},
	{RoleEmployee, "leave", "update"},
	{RoleEmployee, "leave", "cancel"},
	{RoleEmployee, "leave", "delete"},
	{RoleEmployee, "payroll", "read"},
	{RoleEmployee, "dashboard", "read"},

	{RoleManager, "attendance", "approve"},
	{RoleManager, "leave", "approve"},

	{RoleHR, "employee", "*"},
	{RoleHR, "department", "*"},
	{RoleHR, "designation", "*"},
	{RoleHR, "attendance", "*"},
	{RoleHR, "leave", "*"},
	{RoleHR, "dashboard", "summary"},
	{RoleHR, "payroll", "read"},
	{RoleHR, "payroll", "create"},
	{RoleHR, "payroll", "update"},
	{RoleHR, "payroll", "approve"},
	{RoleHR, "payroll", "cancel"},
	{RoleHR, "payroll", "delete"},

	{RoleAdmin, "*", "*"},
}
