package apperror

import "strings"

// Issues collects field problems before they are turned into one
// validation error.
type Issues struct {
	list []FieldIssue
}

func (i *Issues) Add(field, reason string) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return
	}
	i.list = append(i.list, FieldIssue{Field: strings.TrimSpace(field), Reason: reason})
}

func (i *Issues) Required(field, value string) {
	if strings.TrimSpace(value) == "" {
		i.Add(field, "is required")
	}
}

func (i *Issues) Merge(other []FieldIssue) {
	i.list = append(i.list, other...)
}

func (i *Issues) Empty() bool {
	return len(i.list) == 0
}

func (i *Issues) List() []FieldIssue {
	out := make([]FieldIssue, len(i.list))
	copy(out, i.list)
	return out
}

// Err returns nil when nothing was collected.
func (i *Issues) Err(message string) error {
	if i.Empty() {
		return nil
	}
	return Validation(message, i.list...)
}
