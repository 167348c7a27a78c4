package store

import (
	"context"

	"perfeval/internal/domain/objectives"
)

func (m *Memory) CycleInfo(_ context.Context, cycleID string) (objectives.CycleInfo, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.cycles[cycleID]
	if !ok {
		return objectives.CycleInfo{}, false
	}
	return objectives.CycleInfo{
		Status:       c.Status,
		OwnWeight:    c.Weights.Own,
		SharedWeight: c.Weights.Shared,
	}, true
}

func (m *Memory) ObjectivesFor(_ context.Context, userID, cycleID string) []objectives.Objective {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := m.objectivesByKey[planKey{userID: userID, cycleID: cycleID}]
	out := make([]objectives.Objective, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.objectives[id])
	}
	return out
}

func (m *Memory) GetObjective(_ context.Context, id string) (objectives.Objective, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.objectives[id]
	return o, ok
}

func (m *Memory) KPIsFor(_ context.Context, objectiveID string) []objectives.KPI {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := m.kpisByObjective[objectiveID]
	out := make([]objectives.KPI, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.kpis[id])
	}
	return out
}

func (m *Memory) InsertObjective(ctx context.Context, o objectives.Objective) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objectives[o.ID]; ok {
		return objectives.ErrObjectiveExists
	}
	m.objectives[o.ID] = o
	key := planKey{userID: o.UserID, cycleID: o.CycleID}
	m.objectivesByKey[key] = append(m.objectivesByKey[key], o.ID)
	return nil
}

func (m *Memory) InsertKPI(ctx context.Context, k objectives.KPI) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.kpis[k.ID]; ok {
		return objectives.ErrKPIExists
	}
	if _, ok := m.objectives[k.ObjectiveID]; !ok {
		return objectives.ErrObjectiveNotFound
	}
	m.kpis[k.ID] = k
	m.kpisByObjective[k.ObjectiveID] = append(m.kpisByObjective[k.ObjectiveID], k.ID)
	return nil
}
