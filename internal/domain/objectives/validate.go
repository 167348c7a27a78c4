package objectives

import (
	"fmt"

	"perfeval/internal/platform/apperror"
)

func validateObjective(o Objective) []apperror.FieldIssue {
	var issues apperror.Issues
	issues.Required("userId", o.UserID)
	issues.Required("cycleId", o.CycleID)
	issues.Required("title", o.Title)
	if o.Type != TypeOwn && o.Type != TypeShared {
		issues.Add("type", "must be own or shared")
	}
	if o.Weight <= 0 || o.Weight > WeightTotal {
		issues.Add("weight", "must be greater than 0 and at most 100")
	}
	return issues.List()
}

func validateKPI(k KPI) []apperror.FieldIssue {
	var issues apperror.Issues
	issues.Required("objectiveId", k.ObjectiveID)
	issues.Required("title", k.Title)
	if k.Weight <= 0 || k.Weight > WeightTotal {
		issues.Add("weight", "must be greater than 0 and at most 100")
	}
	if k.Score < 0 || k.Score > 100 {
		issues.Add("score", "must be between 0 and 100")
	}
	if k.Target < 0 {
		issues.Add("target", "must not be negative")
	}
	if k.Achieved < 0 {
		issues.Add("achieved", "must not be negative")
	}
	return issues.List()
}

// weightIssues reports every weight bucket of one user's cycle plan that does
// not sum to 100. Empty buckets are allowed.
func weightIssues(objs []Objective, kpisByObjective map[string][]KPI) []apperror.FieldIssue {
	var issues apperror.Issues
	totals := map[string]float64{}
	counts := map[string]int{}
	for _, o := range objs {
		totals[o.Type] += o.Weight
		counts[o.Type]++

		kpis := kpisByObjective[o.ID]
		if len(kpis) == 0 {
			continue
		}
		kpiTotal := 0.0
		for _, k := range kpis {
			kpiTotal += k.Weight
		}
		if !sumsTo(kpiTotal, WeightTotal) {
			issues.Add(fmt.Sprintf("objectives[%s].kpis", o.ID), fmt.Sprintf("kpi weights sum to %.2f, want 100", kpiTotal))
		}
	}
	for _, typ := range []string{TypeOwn, TypeShared} {
		if counts[typ] == 0 {
			continue
		}
		if !sumsTo(totals[typ], WeightTotal) {
			issues.Add("objectives."+typ, fmt.Sprintf("%s objective weights sum to %.2f, want 100", typ, totals[typ]))
		}
	}
	return issues.List()
}
