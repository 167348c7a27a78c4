package objectives

import "context"

type StoreAPI interface {
	UserExists(ctx context.Context, userID string) bool
	CycleInfo(ctx context.Context, cycleID string) (CycleInfo, bool)
	ObjectivesFor(ctx context.Context, userID, cycleID string) []Objective
	GetObjective(ctx context.Context, objectiveID string) (Objective, bool)
	KPIsFor(ctx context.Context, objectiveID string) []KPI
	InsertObjective(ctx context.Context, objective Objective) error
	InsertKPI(ctx context.Context, kpi KPI) error
}
