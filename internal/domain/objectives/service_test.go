package objectives_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"perfeval/internal/domain/directory"
	"perfeval/internal/domain/evaluation"
	"perfeval/internal/domain/objectives"
	"perfeval/internal/platform/apperror"
	"perfeval/internal/store"
)

func setup(t *testing.T) (*objectives.Service, *store.Memory) {
	t.Helper()
	st := store.NewMemory()
	require.NoError(t, st.PutUser(context.Background(), directory.User{ID: "u1", Name: "U", Email: "u1@x.io", Role: directory.RoleEmployee}))
	return objectives.NewService(st, nil), st
}

func TestCreateObjectiveRejectsRunningSumAbove100(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t)

	_, err := svc.CreateObjective(ctx, objectives.Objective{UserID: "u1", CycleID: "c1", Title: "A", Weight: 70, Type: objectives.TypeOwn})
	require.NoError(t, err)
	_, err = svc.CreateObjective(ctx, objectives.Objective{UserID: "u1", CycleID: "c1", Title: "B", Weight: 40, Type: objectives.TypeOwn})
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.CreateObjective(ctx, objectives.Objective{UserID: "u1", CycleID: "c1", Title: "C", Weight: 40, Type: objectives.TypeShared})
	require.NoError(t, err)
	assert.Len(t, svc.ObjectivesFor(ctx, "u1", "c1"), 2)
}

func TestCreateObjectiveChecksOwnerAndCycle(t *testing.T) {
	ctx := context.Background()
	svc, st := setup(t)

	_, err := svc.CreateObjective(ctx, objectives.Objective{UserID: "ghost", CycleID: "c1", Title: "A", Weight: 10, Type: objectives.TypeOwn})
	assert.ErrorIs(t, err, objectives.ErrUserNotFound)

	require.NoError(t, st.InsertCycle(ctx, evaluation.Cycle{ID: "live", Status: evaluation.CycleStatusActive}, nil))
	_, err = svc.CreateObjective(ctx, objectives.Objective{UserID: "u1", CycleID: "live", Title: "A", Weight: 10, Type: objectives.TypeOwn})
	assert.ErrorIs(t, err, objectives.ErrCycleLocked)

	_, err = svc.CreateObjective(ctx, objectives.Objective{UserID: "u1", CycleID: "c1", Weight: 0, Type: "other"})
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Len(t, appErr.Fields, 3)
}

func TestUserWeightedScoreWithCycleWeights(t *testing.T) {
	ctx := context.Background()
	svc, st := setup(t)

	own, err := svc.CreateObjective(ctx, objectives.Objective{UserID: "u1", CycleID: "c1", Title: "Own", Weight: 100, Type: objectives.TypeOwn})
	require.NoError(t, err)
	shared, err := svc.CreateObjective(ctx, objectives.Objective{UserID: "u1", CycleID: "c1", Title: "Shared", Weight: 100, Type: objectives.TypeShared})
	require.NoError(t, err)
	_, err = svc.CreateKPI(ctx, objectives.KPI{ObjectiveID: own.ID, Title: "k", Weight: 100, Score: 80})
	require.NoError(t, err)
	_, err = svc.CreateKPI(ctx, objectives.KPI{ObjectiveID: shared.ID, Title: "k", Weight: 100, Score: 60})
	require.NoError(t, err)

	score := svc.UserWeightedScore(ctx, "u1", "c1")
	assert.InDelta(t, 80, score.Own, 1e-9)
	assert.InDelta(t, 60, score.Shared, 1e-9)
	assert.Nil(t, score.Overall)

	require.NoError(t, st.InsertCycle(ctx, evaluation.Cycle{ID: "c1", Status: evaluation.CycleStatusUpcoming, Weights: evaluation.Weights{Own: 50, Shared: 50}}, nil))
	score = svc.UserWeightedScore(ctx, "u1", "c1")
	require.NotNil(t, score.Overall)
	assert.InDelta(t, 70, *score.Overall, 1e-9)

	objScore, err := svc.ObjectiveWeightedScore(ctx, own.ID)
	require.NoError(t, err)
	assert.InDelta(t, 80, objScore, 1e-9)
	_, err = svc.ObjectiveWeightedScore(ctx, "missing")
	assert.ErrorIs(t, err, objectives.ErrObjectiveNotFound)
}

func TestCreateKPIRejectsOverflowAndCheckWeights(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t)

	obj, err := svc.CreateObjective(ctx, objectives.Objective{UserID: "u1", CycleID: "c1", Title: "Own", Weight: 100, Type: objectives.TypeOwn})
	require.NoError(t, err)
	_, err = svc.CreateKPI(ctx, objectives.KPI{ObjectiveID: obj.ID, Title: "a", Weight: 60})
	require.NoError(t, err)

	err = svc.CheckWeights(ctx, "u1", "c1")
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	require.Len(t, appErr.Fields, 1)
	assert.Equal(t, "assignments[u1].objectives["+obj.ID+"].kpis", appErr.Fields[0].Field)

	_, err = svc.CreateKPI(ctx, objectives.KPI{ObjectiveID: obj.ID, Title: "b", Weight: 50})
	assert.True(t, apperror.IsValidation(err))
	_, err = svc.CreateKPI(ctx, objectives.KPI{ObjectiveID: obj.ID, Title: "b", Weight: 40})
	require.NoError(t, err)
	assert.NoError(t, svc.CheckWeights(ctx, "u1", "c1"))
	assert.NoError(t, svc.CheckWeights(ctx, "u1", "other"))
}
