package directory

import "time"

type User struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Role       string     `json:"role"`
	Department string     `json:"department"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone,omitempty"`
	Avatar     string     `json:"avatar,omitempty"`
	Status     string     `json:"status"`
	EmployedOn *time.Time `json:"employedOn,omitempty"`
}

func (u User) IsActiveEmployee() bool {
	return u.Role == RoleEmployee && u.Status == StatusActive
}

// CanSupervise reports whether the user may be assigned as a supervisor.
func (u User) CanSupervise() bool {
	return u.Role == RoleAdmin || u.Role == RoleManager
}

// Filter narrows ListUsers. Empty fields match everything.
type Filter struct {
	Query      string
	Role       string
	Department string
	Status     string
}
