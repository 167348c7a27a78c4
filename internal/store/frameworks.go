package store

import (
	"context"

	"perfeval/internal/domain/frameworks"
)

func (m *Memory) ListFrameworks(_ context.Context) []frameworks.Framework {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]frameworks.Framework, 0, len(m.frameworkOrder))
	for _, id := range m.frameworkOrder {
		out = append(out, cloneFramework(m.frameworks[id]))
	}
	return out
}

func (m *Memory) GetFramework(_ context.Context, id string) (frameworks.Framework, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.frameworks[id]
	return cloneFramework(f), ok
}

func (m *Memory) FindQuestion(_ context.Context, questionID string) (frameworks.QuestionRef, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	frameworkID, ok := m.questionIndex[questionID]
	if !ok {
		return frameworks.QuestionRef{}, false
	}
	for _, q := range m.frameworks[frameworkID].Questions {
		if q.ID == questionID {
			return frameworks.QuestionRef{FrameworkID: frameworkID, Question: q}, true
		}
	}
	return frameworks.QuestionRef{}, false
}

// PutFramework inserts or replaces a framework and reindexes its questions.
func (m *Memory) PutFramework(ctx context.Context, f frameworks.Framework) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if prev, ok := m.frameworks[f.ID]; ok {
		m.unindexQuestions(prev)
	} else {
		m.frameworkOrder = append(m.frameworkOrder, f.ID)
	}
	m.frameworks[f.ID] = cloneFramework(f)
	for _, q := range f.Questions {
		m.questionIndex[q.ID] = f.ID
	}
	return nil
}

func (m *Memory) DeleteFramework(ctx context.Context, id string) bool {
	if ctx.Err() != nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.frameworks[id]
	if !ok {
		return false
	}
	m.unindexQuestions(f)
	delete(m.frameworks, id)
	m.frameworkOrder = removeID(m.frameworkOrder, id)
	return true
}

func (m *Memory) unindexQuestions(f frameworks.Framework) {
	for _, q := range f.Questions {
		if m.questionIndex[q.ID] == f.ID {
			delete(m.questionIndex, q.ID)
		}
	}
}

func cloneFramework(f frameworks.Framework) frameworks.Framework {
	f.Questions = append([]frameworks.Question(nil), f.Questions...)
	return f
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
