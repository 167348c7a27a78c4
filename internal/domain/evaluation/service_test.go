package evaluation_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"perfeval/internal/domain/directory"
	"perfeval/internal/domain/evaluation"
	"perfeval/internal/domain/frameworks"
	"perfeval/internal/domain/objectives"
	"perfeval/internal/platform/apperror"
	"perfeval/internal/store"
)

var fixedNow = time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

type countingObserver struct {
	deployed, rows, submitted int
}

func (o *countingObserver) CycleDeployed(rows int) {
	o.deployed++
	o.rows += rows
}

func (o *countingObserver) EvaluationSubmitted() { o.submitted++ }

type fixture struct {
	svc      *evaluation.Service
	objs     *objectives.Service
	fws      *frameworks.Service
	observer *countingObserver
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	st := store.NewMemory()
	dir := directory.NewService(st, nil)
	for _, u := range []directory.User{
		{ID: "a", Name: "Ana", Role: directory.RoleEmployee, Email: "a@x.io"},
		{ID: "b", Name: "Ben", Role: directory.RoleEmployee, Email: "b@x.io"},
		{ID: "c", Name: "Cat", Role: directory.RoleEmployee, Email: "c@x.io"},
		{ID: "d", Name: "Dev", Role: directory.RoleEmployee, Email: "d@x.io"},
		{ID: "m", Name: "Max", Role: directory.RoleManager, Email: "m@x.io"},
	} {
		_, err := dir.Provision(ctx, u)
		require.NoError(t, err)
	}
	fws := frameworks.NewService(st, nil)
	_, err := fws.CreateFramework(ctx, frameworks.Framework{
		ID:          "cf-1",
		Name:        "Core",
		Description: "Core competencies",
		Questions: []frameworks.Question{
			{ID: "q1", Text: "Delivers on commitments?"},
			{ID: "q2", Text: "Communicates clearly?"},
		},
	})
	require.NoError(t, err)
	objs := objectives.NewService(st, nil)
	observer := &countingObserver{}
	svc := evaluation.NewService(st, dir, fws, nil,
		evaluation.WithClock(func() time.Time { return fixedNow }),
		evaluation.WithObserver(observer),
		evaluation.WithWeightChecker(objs),
	)
	return fixture{svc: svc, objs: objs, fws: fws, observer: observer}
}

func cycle(id string) evaluation.Cycle {
	return evaluation.Cycle{
		ID:           id,
		Title:        "Review " + id,
		StartDate:    time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
		Type:         evaluation.CycleTypeAnnual,
		Status:       evaluation.CycleStatusActive,
		Weights:      evaluation.Weights{Own: 60, Shared: 40},
		FrameworkIDs: []string{"cf-1"},
	}
}

func scores(values ...int) []evaluation.Score {
	out := make([]evaluation.Score, len(values))
	for i, v := range values {
		out[i] = evaluation.Score{QuestionID: []string{"q1", "q2"}[i%2], Score: v}
	}
	return out
}

func deployFour(t *testing.T, f fixture) {
	t.Helper()
	d, err := f.svc.DeployCycle(context.Background(), cycle("c1"), map[string]evaluation.Assignment{
		"a": {PeerIDs: []string{"b", "c"}, SupervisorIDs: []string{"m"}},
	})
	require.NoError(t, err)
	require.Len(t, d.Submissions, 4)
}

func TestSelfSubmissionCompletesPendingSlot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	deployFour(t, f)

	st, err := f.svc.EmployeeStatus(ctx, "a", "c1")
	require.NoError(t, err)
	assert.Equal(t, evaluation.SubmissionStatusPending, st.Status)
	assert.Equal(t, evaluation.Progress{Completed: 0, Total: 4}, st.Progress)

	sub, err := f.svc.SubmitEvaluation(ctx, evaluation.Submission{
		EvaluatorID: "a", EvaluateeID: "a", CycleID: "c1", Type: evaluation.TypeSelf, Scores: scores(4, 5),
	})
	require.NoError(t, err)
	require.NotNil(t, sub.SubmittedAt)
	assert.Equal(t, fixedNow, *sub.SubmittedAt)
	assert.Equal(t, "Delivers on commitments?", sub.Scores[0].QuestionText)

	st, err = f.svc.EmployeeStatus(ctx, "a", "c1")
	require.NoError(t, err)
	assert.Equal(t, evaluation.SubmissionStatusSubmitted, st.Status)
	assert.Equal(t, evaluation.Progress{Completed: 1, Total: 4}, st.Progress)
	require.NotNil(t, st.AvgScore)
	assert.InDelta(t, 4.5, *st.AvgScore, 1e-9)

	stats, err := f.svc.CycleStats(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalEmployees)
	assert.Equal(t, 1, stats.CompletedCount)
	assert.InDelta(t, 25.0, stats.CompletionRate, 1e-9)

	assert.Equal(t, 1, f.observer.deployed)
	assert.Equal(t, 4, f.observer.rows)
	assert.Equal(t, 1, f.observer.submitted)
}

func TestSubmitTwiceIsRejected(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	deployFour(t, f)
	sub := evaluation.Submission{EvaluatorID: "b", EvaluateeID: "a", CycleID: "c1", Type: evaluation.TypePeer, Scores: scores(3)}

	_, err := f.svc.SubmitEvaluation(ctx, sub)
	require.NoError(t, err)
	_, err = f.svc.SubmitEvaluation(ctx, sub)
	assert.ErrorIs(t, err, evaluation.ErrAlreadySubmitted)

	st, err := f.svc.EmployeeStatus(ctx, "a", "c1")
	require.NoError(t, err)
	assert.Equal(t, evaluation.Progress{Completed: 1, Total: 4}, st.Progress)
}

func TestSubmitWithoutSlotOnlyAcceptsSelf(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	deployFour(t, f)

	_, err := f.svc.SubmitEvaluation(ctx, evaluation.Submission{
		EvaluatorID: "d", EvaluateeID: "a", CycleID: "c1", Type: evaluation.TypePeer, Scores: scores(2),
	})
	assert.ErrorIs(t, err, evaluation.ErrNotAssigned)
	st, err := f.svc.EmployeeStatus(ctx, "a", "c1")
	require.NoError(t, err)
	assert.Equal(t, evaluation.Progress{Completed: 0, Total: 4}, st.Progress)

	sub, err := f.svc.SubmitEvaluation(ctx, evaluation.Submission{
		EvaluatorID: "d", EvaluateeID: "d", CycleID: "c1", Type: evaluation.TypeSelf, Scores: scores(3, 4),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, sub.ID)
	st, err = f.svc.EmployeeStatus(ctx, "d", "c1")
	require.NoError(t, err)
	assert.Equal(t, evaluation.Progress{Completed: 1, Total: 1}, st.Progress)
}

func TestEmployeeStatusIsStableBetweenSubmissions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	deployFour(t, f)
	_, err := f.svc.SubmitEvaluation(ctx, evaluation.Submission{
		EvaluatorID: "a", EvaluateeID: "a", CycleID: "c1", Type: evaluation.TypeSelf, Scores: scores(3, 5),
	})
	require.NoError(t, err)

	first, err := f.svc.EmployeeStatus(ctx, "a", "c1")
	require.NoError(t, err)
	second, err := f.svc.EmployeeStatus(ctx, "a", "c1")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, evaluation.SubmissionStatusSubmitted, second.Status)
	require.NotNil(t, second.AvgScore)
	assert.InDelta(t, 4.0, *second.AvgScore, 0.001)
	require.NotNil(t, second.SubmittedAt)
	assert.True(t, second.SubmittedAt.Equal(fixedNow))
}

func TestDeployCycleTrimsAssignmentIDs(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.DeployCycle(ctx, cycle("c-pad"), map[string]evaluation.Assignment{
		"a": {PeerIDs: []string{" a"}},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	_, err = f.svc.GetCycle(ctx, "c-pad")
	assert.ErrorIs(t, err, evaluation.ErrCycleNotFound)

	d, err := f.svc.DeployCycle(ctx, cycle("c-pad"), map[string]evaluation.Assignment{
		" a ": {PeerIDs: []string{" b", "b "}, SupervisorIDs: []string{"m "}},
	})
	require.NoError(t, err)
	require.Len(t, d.Submissions, 3)
	for _, sub := range d.Submissions {
		assert.Equal(t, "a", sub.EvaluateeID)
		assert.NotContains(t, sub.EvaluatorID, " ")
	}
	st, err := f.svc.EmployeeStatus(ctx, "a", "c-pad")
	require.NoError(t, err)
	assert.Equal(t, evaluation.Progress{Completed: 0, Total: 3}, st.Progress)
}

func TestSubmitValidatesScores(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	deployFour(t, f)

	for _, bad := range [][]evaluation.Score{
		nil,
		scores(0),
		scores(6),
		{{QuestionID: "q1", Score: 3}, {QuestionID: "q1", Score: 4}},
	} {
		_, err := f.svc.SubmitEvaluation(ctx, evaluation.Submission{
			EvaluatorID: "a", EvaluateeID: "a", CycleID: "c1", Type: evaluation.TypeSelf, Scores: bad,
		})
		assert.True(t, apperror.IsValidation(err), "scores %v", bad)
	}

	_, err := f.svc.SubmitEvaluation(ctx, evaluation.Submission{
		EvaluatorID: "b", EvaluateeID: "a", CycleID: "c1", Type: evaluation.TypeSelf, Scores: scores(3),
	})
	assert.True(t, apperror.IsValidation(err))

	_, err = f.svc.SubmitEvaluation(ctx, evaluation.Submission{
		EvaluatorID: "a", EvaluateeID: "a", CycleID: "nope", Type: evaluation.TypeSelf, Scores: scores(3),
	})
	assert.ErrorIs(t, err, evaluation.ErrCycleNotFound)

	_, err = f.svc.SubmitEvaluation(ctx, evaluation.Submission{
		EvaluatorID: "ghost", EvaluateeID: "a", CycleID: "c1", Type: evaluation.TypePeer, Scores: scores(3),
	})
	assert.ErrorIs(t, err, evaluation.ErrUserNotFound)
}

func TestCompletedCycleRejectsSubmissions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	deployFour(t, f)

	_, err := f.svc.SetCycleStatus(ctx, "c1", evaluation.CycleStatusCompleted)
	require.NoError(t, err)
	_, err = f.svc.SubmitEvaluation(ctx, evaluation.Submission{
		EvaluatorID: "a", EvaluateeID: "a", CycleID: "c1", Type: evaluation.TypeSelf, Scores: scores(3),
	})
	assert.ErrorIs(t, err, evaluation.ErrCycleClosed)

	pending, err := f.svc.PendingReviews(ctx, "b")
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestCycleStatusTransitions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := cycle("c1")
	c.Status = evaluation.CycleStatusUpcoming
	_, err := f.svc.DeployCycle(ctx, c, nil)
	require.NoError(t, err)

	got, err := f.svc.SetCycleStatus(ctx, "c1", evaluation.CycleStatusActive)
	require.NoError(t, err)
	assert.Equal(t, evaluation.CycleStatusActive, got.Status)

	_, err = f.svc.SetCycleStatus(ctx, "c1", evaluation.CycleStatusUpcoming)
	assert.ErrorIs(t, err, evaluation.ErrInvalidTransition)

	_, err = f.svc.SetCycleStatus(ctx, "c1", "archived")
	assert.True(t, apperror.IsValidation(err))

	_, err = f.svc.SetCycleStatus(ctx, "c1", evaluation.CycleStatusCompleted)
	require.NoError(t, err)
	_, err = f.svc.SetCycleStatus(ctx, "c1", evaluation.CycleStatusActive)
	assert.ErrorIs(t, err, evaluation.ErrInvalidTransition)
}

func TestDeployCycleRejectsAndStoresNothing(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		mutate      func(*evaluation.Cycle)
		assignments map[string]evaluation.Assignment
		check       func(t *testing.T, err error)
	}{
		{
			name:   "weights off",
			mutate: func(c *evaluation.Cycle) { c.Weights.Shared = 30 },
			check:  func(t *testing.T, err error) { assert.True(t, apperror.IsValidation(err)) },
		},
		{
			name:   "end before start",
			mutate: func(c *evaluation.Cycle) { c.EndDate = c.StartDate.AddDate(0, 0, -1) },
			check:  func(t *testing.T, err error) { assert.True(t, apperror.IsValidation(err)) },
		},
		{
			name:   "unknown framework",
			mutate: func(c *evaluation.Cycle) { c.FrameworkIDs = []string{"cf-9"} },
			check:  func(t *testing.T, err error) { assert.ErrorIs(t, err, evaluation.ErrFrameworkNotFound) },
		},
		{
			name:        "unknown peer",
			assignments: map[string]evaluation.Assignment{"a": {PeerIDs: []string{"ghost"}}},
			check:       func(t *testing.T, err error) { assert.ErrorIs(t, err, evaluation.ErrUserNotFound) },
		},
		{
			name:        "employee as supervisor",
			assignments: map[string]evaluation.Assignment{"a": {SupervisorIDs: []string{"b"}}},
			check:       func(t *testing.T, err error) { assert.True(t, apperror.IsValidation(err)) },
		},
		{
			name:        "self as peer",
			assignments: map[string]evaluation.Assignment{"a": {PeerIDs: []string{"a"}}},
			check:       func(t *testing.T, err error) { assert.True(t, apperror.IsValidation(err)) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			c := cycle("c1")
			if tt.mutate != nil {
				tt.mutate(&c)
			}
			assignments := tt.assignments
			if assignments == nil {
				assignments = map[string]evaluation.Assignment{"a": {PeerIDs: []string{"b"}}}
			}
			_, err := f.svc.DeployCycle(ctx, c, assignments)
			require.Error(t, err)
			tt.check(t, err)

			_, err = f.svc.GetCycle(ctx, "c1")
			assert.ErrorIs(t, err, evaluation.ErrCycleNotFound)
			assert.Zero(t, f.svc.SubmissionCounts(ctx).Pending)
			assert.Zero(t, f.observer.deployed)
		})
	}
}

func TestDeployCycleChecksObjectiveWeights(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.objs.CreateObjective(ctx, objectives.Objective{UserID: "a", CycleID: "c1", Title: "Half", Weight: 50, Type: objectives.TypeOwn})
	require.NoError(t, err)

	_, err = f.svc.DeployCycle(ctx, cycle("c1"), map[string]evaluation.Assignment{"a": {}})
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "assignments[a].objectives.own", appErr.Fields[0].Field)

	_, err = f.objs.CreateObjective(ctx, objectives.Objective{UserID: "a", CycleID: "c1", Title: "Rest", Weight: 50, Type: objectives.TypeOwn})
	require.NoError(t, err)
	d, err := f.svc.DeployCycle(ctx, cycle("c1"), map[string]evaluation.Assignment{"a": {}})
	require.NoError(t, err)
	assert.Len(t, d.Submissions, 1)

	_, err = f.svc.DeployCycle(ctx, cycle("c1"), map[string]evaluation.Assignment{"b": {}})
	assert.ErrorIs(t, err, evaluation.ErrCycleExists)
}

func TestInboxHistoryAndBreakdown(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	deployFour(t, f)

	inbox, err := f.svc.PendingReviews(ctx, "m")
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Equal(t, "a", inbox[0].EvaluateeID)

	_, err = f.svc.SubmitEvaluation(ctx, evaluation.Submission{
		EvaluatorID: "m", EvaluateeID: "a", CycleID: "c1", Type: evaluation.TypeSupervisor, Scores: scores(5, 4),
		NextGoals: "Lead the migration",
	})
	require.NoError(t, err)

	inbox, err = f.svc.PendingReviews(ctx, "m")
	require.NoError(t, err)
	assert.Empty(t, inbox)

	renamed := []frameworks.Question{{ID: "q1", Text: "Renamed"}, {ID: "q2", Text: "Also renamed"}}
	_, err = f.fws.UpdateFramework(ctx, "cf-1", frameworks.Patch{Questions: &renamed})
	require.NoError(t, err)

	history, err := f.svc.History(ctx, "a", "")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "Delivers on commitments?", history[0].Scores[0].QuestionText)
	assert.Equal(t, "Lead the migration", history[0].NextGoals)

	onlyPeers, err := f.svc.History(ctx, "a", evaluation.TypePeer)
	require.NoError(t, err)
	assert.Empty(t, onlyPeers)
	_, err = f.svc.History(ctx, "a", "boss")
	assert.True(t, apperror.IsValidation(err))

	b, err := f.svc.Breakdown(ctx, "a", "c1")
	require.NoError(t, err)
	require.NotNil(t, b.Self)
	assert.Len(t, b.Peers, 2)
	require.Len(t, b.Supervisors, 1)
	assert.True(t, b.Supervisors[0].IsSubmitted())
}

func TestEmployeeRowsAndCycleListing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	deployFour(t, f)
	_, err := f.svc.SubmitEvaluation(ctx, evaluation.Submission{
		EvaluatorID: "a", EvaluateeID: "a", CycleID: "c1", Type: evaluation.TypeSelf, Scores: scores(3),
	})
	require.NoError(t, err)

	rows, err := f.svc.EmployeeRows(ctx, "c1", "", "")
	require.NoError(t, err)
	assert.Len(t, rows, 4)

	submitted, err := f.svc.EmployeeRows(ctx, "c1", "", evaluation.SubmissionStatusSubmitted)
	require.NoError(t, err)
	require.Len(t, submitted, 1)
	assert.Equal(t, "Ana", submitted[0].Name)

	byName, err := f.svc.EmployeeRows(ctx, "c1", "be", "")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "b", byName[0].UserID)

	old := cycle("c0")
	old.StartDate = old.StartDate.AddDate(-1, 0, 0)
	old.EndDate = old.EndDate.AddDate(-1, 0, 0)
	_, err = f.svc.DeployCycle(ctx, old, nil)
	require.NoError(t, err)
	_, err = f.svc.SetCycleStatus(ctx, "c0", evaluation.CycleStatusCompleted)
	require.NoError(t, err)

	all := f.svc.ListCycles(ctx, evaluation.CycleFilter{View: evaluation.ViewAll})
	require.Len(t, all, 2)
	assert.Equal(t, "c1", all[0].ID)
	assert.Len(t, f.svc.ListCycles(ctx, evaluation.CycleFilter{View: evaluation.ViewActive}), 1)
	history := f.svc.ListCycles(ctx, evaluation.CycleFilter{View: evaluation.ViewHistory})
	require.Len(t, history, 1)
	assert.Equal(t, "c0", history[0].ID)
	assert.Empty(t, f.svc.ListCycles(ctx, evaluation.CycleFilter{Query: "missing"}))
}

func TestAdvanceCyclesFollowsDates(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	upcoming := cycle("c-next")
	upcoming.Status = evaluation.CycleStatusUpcoming
	upcoming.StartDate = time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	upcoming.EndDate = time.Date(2027, 6, 30, 0, 0, 0, 0, time.UTC)
	_, err := f.svc.DeployCycle(ctx, cycle("c-now"), map[string]evaluation.Assignment{"a": {}})
	require.NoError(t, err)
	_, err = f.svc.DeployCycle(ctx, upcoming, map[string]evaluation.Assignment{"a": {}})
	require.NoError(t, err)

	changed, err := f.svc.AdvanceCycles(ctx, fixedNow)
	require.NoError(t, err)
	assert.Empty(t, changed)

	changed, err = f.svc.AdvanceCycles(ctx, time.Date(2026, 7, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, changed, 2)

	now, err := f.svc.GetCycle(ctx, "c-now")
	require.NoError(t, err)
	assert.Equal(t, evaluation.CycleStatusCompleted, now.Status)
	next, err := f.svc.GetCycle(ctx, "c-next")
	require.NoError(t, err)
	assert.Equal(t, evaluation.CycleStatusActive, next.Status)
}
