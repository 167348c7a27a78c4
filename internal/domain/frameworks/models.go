package frameworks

import "time"

type Question struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Text     string `json:"text"`
}

type Framework struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Patch carries the fields of an update; nil fields are left unchanged.
type Patch struct {
	Name        *string
	Description *string
	Questions   *[]Question
}

// QuestionRef locates a question inside its framework.
type QuestionRef struct {
	FrameworkID string   `json:"frameworkId"`
	Question    Question `json:"question"`
}

func (f Framework) clone() Framework {
	out := f
	out.Questions = append([]Question(nil), f.Questions...)
	return out
}
