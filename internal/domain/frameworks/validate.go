package frameworks

import (
	"fmt"
	"strings"

	"perfeval/internal/platform/apperror"
)

func validate(f Framework) []apperror.FieldIssue {
	var issues apperror.Issues
	issues.Required("name", f.Name)
	issues.Required("description", f.Description)
	if len(f.Questions) == 0 {
		issues.Add("questions", "must contain at least one question")
	}
	seen := make(map[string]bool, len(f.Questions))
	for i, q := range f.Questions {
		if strings.TrimSpace(q.Text) == "" {
			issues.Add(fmt.Sprintf("questions[%d].text", i), "is required")
		}
		if seen[q.ID] {
			issues.Add(fmt.Sprintf("questions[%d].id", i), "is duplicated")
		}
		seen[q.ID] = true
	}
	return issues.List()
}

func normalize(f Framework) Framework {
	f.Name = strings.TrimSpace(f.Name)
	f.Description = strings.TrimSpace(f.Description)
	questions := make([]Question, len(f.Questions))
	for i, q := range f.Questions {
		questions[i] = Question{
			ID:       strings.TrimSpace(q.ID),
			Category: strings.TrimSpace(q.Category),
			Text:     strings.TrimSpace(q.Text),
		}
	}
	f.Questions = questions
	return f
}
