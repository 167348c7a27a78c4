package store

import (
	"context"
	"fmt"

	"perfeval/internal/domain/evaluation"
	"perfeval/internal/platform/apperror"
)

var errSubmissionExists = apperror.Conflict("submission already exists")

func (m *Memory) GetCycle(_ context.Context, id string) (evaluation.Cycle, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.cycles[id]
	if !ok {
		return evaluation.Cycle{}, false
	}
	return c.Clone(), true
}

func (m *Memory) ListCycles(_ context.Context) []evaluation.Cycle {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]evaluation.Cycle, 0, len(m.cycleOrder))
	for _, id := range m.cycleOrder {
		out = append(out, m.cycles[id].Clone())
	}
	return out
}

// InsertCycle validates every row before touching the indexes so a failed
// deployment leaves no trace.
func (m *Memory) InsertCycle(ctx context.Context, cycle evaluation.Cycle, subs []evaluation.Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.cycles[cycle.ID]; ok {
		return fmt.Errorf("cycle %q: %w", cycle.ID, evaluation.ErrCycleExists)
	}
	ids := make(map[string]bool, len(subs))
	slots := make(map[evaluation.SlotKey]bool, len(subs))
	for _, sub := range subs {
		if sub.CycleID != cycle.ID {
			return fmt.Errorf("submission %q belongs to cycle %q", sub.ID, sub.CycleID)
		}
		if _, taken := m.submissions[sub.ID]; taken || ids[sub.ID] {
			return fmt.Errorf("submission %q: %w", sub.ID, errSubmissionExists)
		}
		if _, taken := m.slots[sub.Slot()]; taken || slots[sub.Slot()] {
			return fmt.Errorf("slot for submission %q: %w", sub.ID, errSubmissionExists)
		}
		ids[sub.ID] = true
		slots[sub.Slot()] = true
	}

	m.cycles[cycle.ID] = cycle.Clone()
	m.cycleOrder = append(m.cycleOrder, cycle.ID)
	for _, sub := range subs {
		m.indexSubmission(sub.Clone())
	}
	return nil
}

// UpdateCycleStatus sets the status only while it still equals from.
func (m *Memory) UpdateCycleStatus(ctx context.Context, id, from, to string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.cycles[id]
	if !ok {
		return fmt.Errorf("cycle %q: %w", id, evaluation.ErrCycleNotFound)
	}
	if c.Status != from {
		return fmt.Errorf("cycle %q is %s, not %s: %w", id, c.Status, from, evaluation.ErrInvalidTransition)
	}
	c.Status = to
	m.cycles[id] = c
	return nil
}

func (m *Memory) GetSubmission(_ context.Context, id string) (evaluation.Submission, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sub, ok := m.submissions[id]
	if !ok {
		return evaluation.Submission{}, false
	}
	return sub.Clone(), true
}

func (m *Memory) FindSlot(_ context.Context, key evaluation.SlotKey) (evaluation.Submission, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.slots[key]
	if !ok {
		return evaluation.Submission{}, false
	}
	return m.submissions[id].Clone(), true
}

func (m *Memory) CompleteSubmission(ctx context.Context, sub evaluation.Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cycle, ok := m.cycles[sub.CycleID]
	if !ok {
		return fmt.Errorf("cycle %q: %w", sub.CycleID, evaluation.ErrCycleNotFound)
	}
	if cycle.Status == evaluation.CycleStatusCompleted {
		return evaluation.ErrCycleClosed
	}
	if id, ok := m.slots[sub.Slot()]; ok {
		if m.submissions[id].IsSubmitted() {
			return evaluation.ErrAlreadySubmitted
		}
		sub.ID = id
		m.submissions[id] = sub.Clone()
		return nil
	}
	if _, taken := m.submissions[sub.ID]; taken {
		return fmt.Errorf("submission %q: %w", sub.ID, errSubmissionExists)
	}
	m.indexSubmission(sub.Clone())
	return nil
}

func (m *Memory) SubmissionsForEvaluatee(_ context.Context, evaluateeID, cycleID string) []evaluation.Submission {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.collect(m.byEvaluatee[evaluateeID], func(s evaluation.Submission) bool {
		return s.CycleID == cycleID
	})
}

func (m *Memory) SubmissionsForCycle(_ context.Context, cycleID string) []evaluation.Submission {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.collect(m.byCycle[cycleID], nil)
}

func (m *Memory) SubmissionsByEvaluator(_ context.Context, evaluatorID string) []evaluation.Submission {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.collect(m.byEvaluator[evaluatorID], nil)
}

func (m *Memory) SubmissionsReceived(_ context.Context, evaluateeID string) []evaluation.Submission {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.collect(m.byEvaluatee[evaluateeID], nil)
}

func (m *Memory) CountSubmissions(_ context.Context, status string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, sub := range m.submissions {
		if sub.Status == status {
			n++
		}
	}
	return n
}

func (m *Memory) indexSubmission(sub evaluation.Submission) {
	m.submissions[sub.ID] = sub
	m.slots[sub.Slot()] = sub.ID
	m.byEvaluatee[sub.EvaluateeID] = append(m.byEvaluatee[sub.EvaluateeID], sub.ID)
	m.byEvaluator[sub.EvaluatorID] = append(m.byEvaluator[sub.EvaluatorID], sub.ID)
	m.byCycle[sub.CycleID] = append(m.byCycle[sub.CycleID], sub.ID)
}

func (m *Memory) collect(ids []string, keep func(evaluation.Submission) bool) []evaluation.Submission {
	out := make([]evaluation.Submission, 0, len(ids))
	for _, id := range ids {
		sub := m.submissions[id]
		if keep != nil && !keep(sub) {
			continue
		}
		out = append(out, sub.Clone())
	}
	return out
}
