// Package store holds the in-memory dataset behind every domain service.
// Entities are indexed by id and by the keys the services query on; every
// read returns copies and every write happens under one lock.
package store

import (
	"context"
	"sync"

	"perfeval/internal/domain/directory"
	"perfeval/internal/domain/evaluation"
	"perfeval/internal/domain/frameworks"
	"perfeval/internal/domain/objectives"
)

type planKey struct {
	userID  string
	cycleID string
}

type Memory struct {
	mu sync.RWMutex

	users      map[string]directory.User
	userOrder  []string
	emailIndex map[string]string

	objectives      map[string]objectives.Objective
	objectivesByKey map[planKey][]string
	kpis            map[string]objectives.KPI
	kpisByObjective map[string][]string

	frameworks     map[string]frameworks.Framework
	frameworkOrder []string
	questionIndex  map[string]string

	cycles     map[string]evaluation.Cycle
	cycleOrder []string

	submissions map[string]evaluation.Submission
	slots       map[evaluation.SlotKey]string
	byEvaluatee map[string][]string
	byEvaluator map[string][]string
	byCycle     map[string][]string
}

func NewMemory() *Memory {
	return &Memory{
		users:           map[string]directory.User{},
		emailIndex:      map[string]string{},
		objectives:      map[string]objectives.Objective{},
		objectivesByKey: map[planKey][]string{},
		kpis:            map[string]objectives.KPI{},
		kpisByObjective: map[string][]string{},
		frameworks:      map[string]frameworks.Framework{},
		questionIndex:   map[string]string{},
		cycles:          map[string]evaluation.Cycle{},
		submissions:     map[string]evaluation.Submission{},
		slots:           map[evaluation.SlotKey]string{},
		byEvaluatee:     map[string][]string{},
		byEvaluator:     map[string][]string{},
		byCycle:         map[string][]string{},
	}
}

// Ping reports whether the store can serve requests.
func (m *Memory) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return nil
}

var (
	_ directory.StoreAPI  = (*Memory)(nil)
	_ objectives.StoreAPI = (*Memory)(nil)
	_ frameworks.StoreAPI = (*Memory)(nil)
	_ evaluation.StoreAPI = (*Memory)(nil)
)
