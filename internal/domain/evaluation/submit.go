package evaluation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"perfeval/internal/platform/apperror"
)

// SubmitEvaluation files a completed evaluation. The pending row created at
// deploy time for the same evaluator, evaluatee, cycle and type is
// transitioned in place; a slot that was already submitted is rejected. When
// no slot exists only a self evaluation may be filed, as a new submitted row.
func (s *Service) SubmitEvaluation(ctx context.Context, sub Submission) (Submission, error) {
	sub = normalizeSubmission(sub)
	if issues := validateSubmission(sub); len(issues) > 0 {
		return Submission{}, apperror.Validation("invalid submission", issues...)
	}

	cycle, err := s.GetCycle(ctx, sub.CycleID)
	if err != nil {
		return Submission{}, err
	}
	if cycle.Status == CycleStatusCompleted {
		return Submission{}, ErrCycleClosed
	}
	if err := s.requireUser(ctx, sub.EvaluatorID); err != nil {
		return Submission{}, err
	}
	if err := s.requireUser(ctx, sub.EvaluateeID); err != nil {
		return Submission{}, err
	}

	slot, found := s.store.FindSlot(ctx, sub.Slot())
	switch {
	case found && slot.IsSubmitted():
		return Submission{}, ErrAlreadySubmitted
	case found:
		sub.ID = slot.ID
		if sub.FormID == "" {
			sub.FormID = slot.FormID
		}
	case sub.Type != TypeSelf:
		return Submission{}, fmt.Errorf("%s evaluation of %s by %s: %w", sub.Type, sub.EvaluateeID, sub.EvaluatorID, ErrNotAssigned)
	default:
		sub.ID = s.newID()
	}

	submittedAt := s.now().UTC()
	sub.Status = SubmissionStatusSubmitted
	sub.SubmittedAt = &submittedAt
	// Frameworks are edited in place, so the text seen at submit time is kept
	// on the row.
	for i := range sub.Scores {
		sub.Scores[i].QuestionText = s.questions.QuestionText(ctx, sub.Scores[i].QuestionID)
	}

	if err := s.store.CompleteSubmission(ctx, sub); err != nil {
		if errors.Is(err, ErrAlreadySubmitted) || errors.Is(err, ErrCycleClosed) {
			return Submission{}, err
		}
		return Submission{}, fmt.Errorf("store submission %s: %w", sub.ID, err)
	}
	if s.observer != nil {
		s.observer.EvaluationSubmitted()
	}
	s.logger.Info("evaluation submitted",
		zap.String("submissionId", sub.ID),
		zap.String("cycleId", sub.CycleID),
		zap.String("evaluateeId", sub.EvaluateeID),
		zap.String("type", sub.Type),
		zap.Bool("adHoc", !found),
	)
	return sub.Clone(), nil
}

func normalizeSubmission(sub Submission) Submission {
	sub.EvaluatorID = strings.TrimSpace(sub.EvaluatorID)
	sub.EvaluateeID = strings.TrimSpace(sub.EvaluateeID)
	sub.CycleID = strings.TrimSpace(sub.CycleID)
	sub.Type = strings.TrimSpace(sub.Type)
	sub.ImprovementAreas = strings.TrimSpace(sub.ImprovementAreas)
	sub.NextGoals = strings.TrimSpace(sub.NextGoals)
	sub.EmployeeComments = strings.TrimSpace(sub.EmployeeComments)
	scores := make([]Score, len(sub.Scores))
	for i, sc := range sub.Scores {
		scores[i] = Score{QuestionID: strings.TrimSpace(sc.QuestionID), Score: sc.Score}
	}
	sub.Scores = scores
	return sub
}
