package evaluation

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"perfeval/internal/platform/apperror"
	"perfeval/internal/platform/textmatch"
)

// ListCycles filters cycles by view (active hides completed cycles, history
// shows only completed ones) and by title. Newest start date first.
func (s *Service) ListCycles(ctx context.Context, filter CycleFilter) []Cycle {
	out := []Cycle{}
	for _, c := range s.store.ListCycles(ctx) {
		switch filter.View {
		case ViewActive:
			if c.Status == CycleStatusCompleted {
				continue
			}
		case ViewHistory:
			if c.Status != CycleStatusCompleted {
				continue
			}
		}
		if !textmatch.Contains(filter.Query, c.Title) {
			continue
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].ID < out[j].ID
		}
		return out[i].StartDate.After(out[j].StartDate)
	})
	return out
}

func (s *Service) SetCycleStatus(ctx context.Context, cycleID, status string) (Cycle, error) {
	if !oneOf(status, CycleStatuses) {
		return Cycle{}, apperror.Validation("invalid cycle status", apperror.FieldIssue{
			Field:  "status",
			Reason: "must be one of upcoming, active, completed",
		})
	}
	cycle, err := s.GetCycle(ctx, cycleID)
	if err != nil {
		return Cycle{}, err
	}
	if cycle.Status == status {
		return cycle, nil
	}
	if !oneOf(status, cycleTransitions[cycle.Status]) {
		return Cycle{}, fmt.Errorf("%s -> %s: %w", cycle.Status, status, ErrInvalidTransition)
	}
	if err := s.store.UpdateCycleStatus(ctx, cycleID, cycle.Status, status); err != nil {
		return Cycle{}, err
	}
	s.logger.Info("cycle status changed",
		zap.String("cycleId", cycleID),
		zap.String("from", cycle.Status),
		zap.String("to", status),
	)
	cycle.Status = status
	return cycle, nil
}

// PendingReviews is an evaluator's inbox: pending rows in active cycles.
func (s *Service) PendingReviews(ctx context.Context, evaluatorID string) ([]Submission, error) {
	if err := s.requireUser(ctx, evaluatorID); err != nil {
		return nil, err
	}
	active := make(map[string]bool)
	for _, c := range s.store.ListCycles(ctx) {
		if c.Status == CycleStatusActive {
			active[c.ID] = true
		}
	}
	out := []Submission{}
	for _, sub := range s.store.SubmissionsByEvaluator(ctx, evaluatorID) {
		if sub.Status == SubmissionStatusPending && active[sub.CycleID] {
			out = append(out, sub)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CycleID == out[j].CycleID {
			return out[i].EvaluateeID < out[j].EvaluateeID
		}
		return out[i].CycleID < out[j].CycleID
	})
	return out, nil
}

// History lists submitted evaluations an employee received, newest first,
// optionally limited to one evaluation type.
func (s *Service) History(ctx context.Context, evaluateeID, typ string) ([]Submission, error) {
	if typ != "" && !oneOf(typ, SubmissionTypes) {
		return nil, apperror.Validation("invalid history filter", apperror.FieldIssue{
			Field:  "type",
			Reason: "must be one of self, peer, supervisor, subordinate",
		})
	}
	if err := s.requireUser(ctx, evaluateeID); err != nil {
		return nil, err
	}
	out := []Submission{}
	for _, sub := range s.store.SubmissionsReceived(ctx, evaluateeID) {
		if !sub.IsSubmitted() || (typ != "" && sub.Type != typ) {
			continue
		}
		out = append(out, s.withQuestionText(ctx, sub))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].submittedTime().After(out[j].submittedTime())
	})
	return out, nil
}

// SubmittedCount is the number of submitted rows across all cycles.
func (s *Service) SubmittedCount(ctx context.Context) int {
	return s.store.CountSubmissions(ctx, SubmissionStatusSubmitted)
}

// SubmissionCounts tallies rows by status across all cycles.
func (s *Service) SubmissionCounts(ctx context.Context) Counts {
	return Counts{
		Submitted: s.store.CountSubmissions(ctx, SubmissionStatusSubmitted),
		Pending:   s.store.CountSubmissions(ctx, SubmissionStatusPending),
	}
}

// AdvanceCycles moves cycles along their dates: upcoming cycles whose start
// has passed become active, and active cycles whose end day has passed become
// completed. It returns the cycles it changed.
func (s *Service) AdvanceCycles(ctx context.Context, now time.Time) ([]Cycle, error) {
	var changed []Cycle
	for _, c := range s.store.ListCycles(ctx) {
		next := ""
		switch {
		case c.Status == CycleStatusUpcoming && !now.Before(c.StartDate):
			next = CycleStatusActive
		case c.Status == CycleStatusActive && now.After(c.EndDate.AddDate(0, 0, 1)):
			next = CycleStatusCompleted
		}
		if next == "" {
			continue
		}
		updated, err := s.SetCycleStatus(ctx, c.ID, next)
		if err != nil {
			if errors.Is(err, ErrInvalidTransition) {
				continue
			}
			return changed, err
		}
		changed = append(changed, updated)
	}
	return changed, nil
}
