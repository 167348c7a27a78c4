package evaluation

import (
	"context"

	"perfeval/internal/domain/directory"
)

type StoreAPI interface {
	GetCycle(ctx context.Context, id string) (Cycle, bool)
	ListCycles(ctx context.Context) []Cycle
	// InsertCycle stores the cycle and its submissions in one step; nothing
	// is stored when it fails.
	InsertCycle(ctx context.Context, cycle Cycle, submissions []Submission) error
	UpdateCycleStatus(ctx context.Context, id, from, to string) error

	GetSubmission(ctx context.Context, id string) (Submission, bool)
	FindSlot(ctx context.Context, key SlotKey) (Submission, bool)
	// CompleteSubmission replaces a pending row with its submitted form, or
	// inserts the row when it has no pending slot. It returns
	// ErrAlreadySubmitted when the slot was submitted first.
	CompleteSubmission(ctx context.Context, submission Submission) error
	SubmissionsForEvaluatee(ctx context.Context, evaluateeID, cycleID string) []Submission
	SubmissionsForCycle(ctx context.Context, cycleID string) []Submission
	SubmissionsByEvaluator(ctx context.Context, evaluatorID string) []Submission
	SubmissionsReceived(ctx context.Context, evaluateeID string) []Submission
	CountSubmissions(ctx context.Context, status string) int
}

// Directory is the user lookup the orchestrator depends on.
type Directory interface {
	GetUser(ctx context.Context, id string) (directory.User, error)
	ActiveEmployees(ctx context.Context) []directory.User
}

// QuestionBank resolves framework and question references.
type QuestionBank interface {
	Missing(ctx context.Context, frameworkIDs []string) []string
	QuestionText(ctx context.Context, questionID string) string
}

// WeightChecker validates an evaluatee's objective plan before deployment.
type WeightChecker interface {
	CheckWeights(ctx context.Context, userID, cycleID string) error
}

// Observer is told about completed mutations.
type Observer interface {
	CycleDeployed(pendingRows int)
	EvaluationSubmitted()
}
