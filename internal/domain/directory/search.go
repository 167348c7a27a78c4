package directory

import "perfeval/internal/platform/textmatch"

func (f Filter) matches(u User) bool {
	if !textmatch.Contains(f.Query, u.Name, u.Department) {
		return false
	}
	if f.Role != "" && !textmatch.Equal(f.Role, u.Role) {
		return false
	}
	if f.Department != "" && !textmatch.Equal(f.Department, u.Department) {
		return false
	}
	if f.Status != "" && !textmatch.Equal(f.Status, u.Status) {
		return false
	}
	return true
}
