// Package seed loads the demo organisation used by local runs and handler
// tests. Everything is created through the domain services so the data
// passes the same checks as API input.
package seed

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"perfeval/internal/domain/directory"
	"perfeval/internal/domain/evaluation"
	"perfeval/internal/domain/frameworks"
	"perfeval/internal/domain/objectives"
	"perfeval/internal/store"
)

const (
	CurrentCycleID  = "cycle-2025-annual"
	PreviousCycleID = "cycle-2024-annual"
	FrameworkID     = "cf-1"
)

var users = []directory.User{
	{ID: "emp1", Name: "Alex Johnson", Role: directory.RoleEmployee, Department: "Engineering", Email: "alex@company.com"},
	{ID: "admin1", Name: "Sarah Connor", Role: directory.RoleAdmin, Department: "HR", Email: "sarah@company.com"},
	{ID: "emp2", Name: "Priya Natarajan", Role: directory.RoleEmployee, Department: "Engineering", Email: "priya@company.com"},
	{ID: "emp3", Name: "Marcus Webb", Role: directory.RoleEmployee, Department: "Product", Email: "marcus@company.com"},
	{ID: "mgr1", Name: "Dana Whitfield", Role: directory.RoleManager, Department: "Engineering", Email: "dana@company.com"},
}

type plannedObjective struct {
	objective objectives.Objective
	kpis      []objectives.KPI
}

func kpi(id, title, description string, weight, achieved float64) objectives.KPI {
	return objectives.KPI{ID: id, Title: title, Description: description, Weight: weight, Score: achieved, Target: 100, Achieved: achieved}
}

var plan = []plannedObjective{
	{
		objective: objectives.Objective{ID: "obj-1", Title: "System Architecture Optimization", Description: "Enhance core infrastructure performance", Weight: 40},
		kpis: []objectives.KPI{
			kpi("kpi-1-1", "Latency Reduction", "Reduce avg latency by 25%", 30, 85),
			kpi("kpi-1-2", "Uptime Maintenance", "Achieve 99.99% availability", 25, 95),
			kpi("kpi-1-3", "Query Optimization", "Reduce expensive query counts", 15, 70),
			kpi("kpi-1-4", "Cache Implementation", "Increase cache hit ratio", 20, 88),
			kpi("kpi-1-5", "Load Balancing", "Even traffic distribution", 10, 90),
		},
	},
	{
		objective: objectives.Objective{ID: "obj-2", Title: "Product Integration & API", Description: "Streamline third-party connections", Weight: 30},
		kpis: []objectives.KPI{
			kpi("kpi-2-1", "API Version Migration", "Move to v3 schema", 30, 60),
			kpi("kpi-2-2", "Partner Integration", "Onboard 5 new partners", 25, 80),
			kpi("kpi-2-3", "Token Auth Revamp", "Secure JWT rotation", 25, 100),
			kpi("kpi-2-4", "Webhooks Stability", "Zero dropped events", 20, 75),
		},
	},
	{
		objective: objectives.Objective{ID: "obj-3", Title: "Security & Compliance", Description: "Ensure SOC2 readiness", Weight: 20},
		kpis: []objectives.KPI{
			kpi("kpi-3-1", "Encryption at Rest", "All DB volumes encrypted", 40, 100),
			kpi("kpi-3-2", "Security Audits", "Finish quarterly scans", 20, 90),
			kpi("kpi-3-3", "IAM Policy Review", "Principle of least privilege", 20, 85),
			kpi("kpi-3-4", "Phishing Training", "95% completion rate", 20, 100),
		},
	},
	{
		objective: objectives.Objective{ID: "obj-4", Title: "Mentorship & Culture", Description: "Dev-team growth and leadership", Weight: 10},
		kpis: []objectives.KPI{
			kpi("kpi-4-1", "Junior Dev Mentorship", "2 hours weekly per dev", 50, 100),
			kpi("kpi-4-2", "Internal Workshops", "Lead 2 sessions per quarter", 30, 66),
			kpi("kpi-4-3", "Culture Surveys", "Lead eNPS feedback loop", 20, 90),
		},
	},
}

var framework = frameworks.Framework{
	ID:          FrameworkID,
	Name:        "Strategic Thinking",
	Description: "Ability to align decisions with long-term company goals",
	Questions: []frameworks.Question{
		{ID: "q-s1", Category: "Strategic", Text: "Does the employee focus on high-impact tasks?"},
		{ID: "q-s2", Category: "Strategic", Text: "Ability to anticipate future bottlenecks."},
	},
}

func date(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

type filed struct {
	evaluator, evaluatee, typ string
	at                        string
	scores                    [2]int
}

// Load fills st with the demo organisation: five users, one competency
// framework, a completed 2024 cycle with its evaluations and an active 2025
// cycle part way through.
func Load(ctx context.Context, st *store.Memory, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("seed")

	dir := directory.NewService(st, logger)
	objs := objectives.NewService(st, logger)
	fws := frameworks.NewService(st, logger)

	var clock time.Time
	seq := 0
	evals := evaluation.NewService(st, dir, fws, logger,
		evaluation.WithClock(func() time.Time { return clock }),
		evaluation.WithIDs(func() string {
			seq++
			return fmt.Sprintf("sub-%03d", seq)
		}),
		evaluation.WithWeightChecker(objs),
	)

	for _, u := range users {
		if _, err := dir.Provision(ctx, u); err != nil {
			return fmt.Errorf("seed user %s: %w", u.ID, err)
		}
	}
	if _, err := fws.CreateFramework(ctx, framework); err != nil {
		return fmt.Errorf("seed framework: %w", err)
	}
	for _, p := range plan {
		o := p.objective
		o.UserID, o.CycleID, o.Type = "emp1", CurrentCycleID, objectives.TypeOwn
		if _, err := objs.CreateObjective(ctx, o); err != nil {
			return fmt.Errorf("seed objective %s: %w", o.ID, err)
		}
		for _, k := range p.kpis {
			k.ObjectiveID = o.ID
			if _, err := objs.CreateKPI(ctx, k); err != nil {
				return fmt.Errorf("seed kpi %s: %w", k.ID, err)
			}
		}
	}

	file := func(cycleID string, rows []filed) error {
		for _, r := range rows {
			at, err := time.Parse(time.RFC3339, r.at)
			if err != nil {
				return err
			}
			clock = at
			_, err = evals.SubmitEvaluation(ctx, evaluation.Submission{
				EvaluatorID: r.evaluator,
				EvaluateeID: r.evaluatee,
				CycleID:     cycleID,
				Type:        r.typ,
				Scores: []evaluation.Score{
					{QuestionID: "q-s1", Score: r.scores[0]},
					{QuestionID: "q-s2", Score: r.scores[1]},
				},
			})
			if err != nil {
				return fmt.Errorf("seed %s evaluation of %s by %s: %w", r.typ, r.evaluatee, r.evaluator, err)
			}
		}
		return nil
	}

	clock = date("2024-07-08")
	previous := evaluation.Cycle{
		ID:           PreviousCycleID,
		Title:        "Annual Performance Review 2024",
		StartDate:    date("2024-07-08"),
		EndDate:      date("2025-06-07"),
		Type:         evaluation.CycleTypeAnnual,
		Status:       evaluation.CycleStatusActive,
		Weights:      evaluation.Weights{Own: 50, Shared: 50},
		Competencies: evaluation.Competencies{Behavioral: true, Technical: true},
		FrameworkIDs: []string{FrameworkID},
	}
	if _, err := evals.DeployCycle(ctx, previous, map[string]evaluation.Assignment{
		"emp1": {PeerIDs: []string{"emp2"}, SupervisorIDs: []string{"admin1"}},
	}); err != nil {
		return fmt.Errorf("seed cycle %s: %w", previous.ID, err)
	}
	if err := file(PreviousCycleID, []filed{
		{evaluator: "emp1", evaluatee: "emp1", typ: evaluation.TypeSelf, at: "2025-05-20T08:30:00Z", scores: [2]int{4, 4}},
		{evaluator: "emp2", evaluatee: "emp1", typ: evaluation.TypePeer, at: "2025-05-22T14:00:00Z", scores: [2]int{4, 3}},
		{evaluator: "admin1", evaluatee: "emp1", typ: evaluation.TypeSupervisor, at: "2025-05-28T10:15:00Z", scores: [2]int{4, 4}},
	}); err != nil {
		return err
	}
	if _, err := evals.SetCycleStatus(ctx, PreviousCycleID, evaluation.CycleStatusCompleted); err != nil {
		return fmt.Errorf("seed close %s: %w", PreviousCycleID, err)
	}

	clock = date("2025-07-08")
	current := evaluation.Cycle{
		ID:           CurrentCycleID,
		Title:        "Annual Performance Review 2025",
		StartDate:    date("2025-07-08"),
		EndDate:      date("2026-06-07"),
		Type:         evaluation.CycleTypeAnnual,
		Status:       evaluation.CycleStatusActive,
		Weights:      evaluation.Weights{Own: 55, Shared: 45},
		Competencies: evaluation.Competencies{Behavioral: true, Technical: true},
		FrameworkIDs: []string{FrameworkID},
	}
	if _, err := evals.DeployCycle(ctx, current, map[string]evaluation.Assignment{
		"emp1": {PeerIDs: []string{"emp2"}, SupervisorIDs: []string{"admin1"}},
		"emp2": {PeerIDs: []string{"emp1", "emp3"}, SupervisorIDs: []string{"mgr1"}},
		"emp3": {PeerIDs: []string{"emp2"}, SupervisorIDs: []string{"mgr1"}},
	}); err != nil {
		return fmt.Errorf("seed cycle %s: %w", current.ID, err)
	}
	if err := file(CurrentCycleID, []filed{
		{evaluator: "emp2", evaluatee: "emp1", typ: evaluation.TypePeer, at: "2025-12-25T10:00:00Z", scores: [2]int{4, 5}},
		{evaluator: "admin1", evaluatee: "emp1", typ: evaluation.TypeSupervisor, at: "2025-12-26T09:00:00Z", scores: [2]int{5, 4}},
	}); err != nil {
		return err
	}

	logger.Info("demo data loaded",
		zap.Int("users", len(users)),
		zap.Int("objectives", len(plan)),
		zap.Int("submitted", evals.SubmittedCount(ctx)),
	)
	return nil
}
