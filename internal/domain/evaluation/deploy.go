package evaluation

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"perfeval/internal/platform/apperror"
)

// DeployCycle stores the cycle and materializes one pending submission per
// (evaluatee, evaluator, type): a self row for every evaluatee plus one row
// per assigned peer, supervisor and subordinate. Either everything is stored
// or nothing is.
func (s *Service) DeployCycle(ctx context.Context, cycle Cycle, assignments map[string]Assignment) (Deployment, error) {
	cycle = normalizeCycle(cycle)
	assignments = normalizeAssignments(assignments)
	if cycle.ID == "" {
		cycle.ID = s.newID()
	}
	if cycle.Status == "" {
		cycle.Status = CycleStatusActive
	}

	var issues apperror.Issues
	issues.Merge(validateCycle(cycle))
	issues.Merge(validateAssignments(assignments))
	if err := issues.Err("invalid cycle"); err != nil {
		return Deployment{}, err
	}

	if missing := s.questions.Missing(ctx, cycle.FrameworkIDs); len(missing) > 0 {
		return Deployment{}, fmt.Errorf("frameworks %s: %w", strings.Join(missing, ", "), ErrFrameworkNotFound)
	}
	if err := s.checkRoster(ctx, assignments); err != nil {
		return Deployment{}, err
	}
	if s.weights != nil {
		for _, evaluateeID := range sortedKeys(assignments) {
			if err := s.weights.CheckWeights(ctx, evaluateeID, cycle.ID); err != nil {
				return Deployment{}, err
			}
		}
	}
	if _, exists := s.store.GetCycle(ctx, cycle.ID); exists {
		return Deployment{}, fmt.Errorf("cycle %q: %w", cycle.ID, ErrCycleExists)
	}

	if cycle.PerformanceConfig != nil {
		cycle.PerformanceConfig.Locked = true
	}
	cycle.CreatedAt = s.now().UTC()
	submissions := PlanFanOut(cycle.ID, assignments, s.newID)

	if err := s.store.InsertCycle(ctx, cycle, submissions); err != nil {
		return Deployment{}, err
	}
	if s.observer != nil {
		s.observer.CycleDeployed(len(submissions))
	}
	s.logger.Info("cycle deployed",
		zap.String("cycleId", cycle.ID),
		zap.String("status", cycle.Status),
		zap.Int("evaluatees", len(assignments)),
		zap.Int("pendingSubmissions", len(submissions)),
	)
	return Deployment{Cycle: cycle.Clone(), Submissions: cloneAll(submissions)}, nil
}

// PlanFanOut builds the pending rows for a deployment. Evaluatees are visited
// in id order and repeated evaluator ids within a list collapse to one row.
func PlanFanOut(cycleID string, assignments map[string]Assignment, newID func() string) []Submission {
	var out []Submission
	row := func(evaluatorID, evaluateeID, typ string) Submission {
		return Submission{
			ID:          newID(),
			EvaluatorID: evaluatorID,
			EvaluateeID: evaluateeID,
			CycleID:     cycleID,
			Type:        typ,
			Status:      SubmissionStatusPending,
			Scores:      []Score{},
		}
	}
	for _, evaluateeID := range sortedKeys(assignments) {
		a := assignments[evaluateeID]
		out = append(out, row(evaluateeID, evaluateeID, TypeSelf))
		for _, id := range dedupe(a.PeerIDs) {
			out = append(out, row(id, evaluateeID, TypePeer))
		}
		for _, id := range dedupe(a.SupervisorIDs) {
			out = append(out, row(id, evaluateeID, TypeSupervisor))
		}
		for _, id := range dedupe(a.SubordinateIDs) {
			out = append(out, row(id, evaluateeID, TypeSubordinate))
		}
	}
	return out
}

// checkRoster verifies every referenced user exists and every supervisor
// holds a supervising role.
func (s *Service) checkRoster(ctx context.Context, assignments map[string]Assignment) error {
	var issues apperror.Issues
	for _, evaluateeID := range sortedKeys(assignments) {
		a := assignments[evaluateeID]
		ids := append([]string{evaluateeID}, a.PeerIDs...)
		ids = append(ids, a.SubordinateIDs...)
		for _, id := range dedupe(ids) {
			if err := s.requireUser(ctx, id); err != nil {
				return err
			}
		}
		for _, id := range dedupe(a.SupervisorIDs) {
			user, err := s.users.GetUser(ctx, id)
			if err != nil {
				return fmt.Errorf("user %q: %w", id, ErrUserNotFound)
			}
			if !user.CanSupervise() {
				issues.Add("assignments["+evaluateeID+"].supervisorIds", id+" is not an admin or manager")
			}
		}
	}
	return issues.Err("invalid assignments")
}

func sortedKeys(assignments map[string]Assignment) []string {
	keys := make([]string, 0, len(assignments))
	for k := range assignments {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func cloneAll(subs []Submission) []Submission {
	out := make([]Submission, len(subs))
	for i, sub := range subs {
		out[i] = sub.Clone()
	}
	return out
}
