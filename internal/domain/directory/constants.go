package directory

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
	RoleManager  = "manager"

	StatusActive      = "active"
	StatusDeactivated = "deactivated"
)

var Roles = []string{RoleAdmin, RoleEmployee, RoleManager}
