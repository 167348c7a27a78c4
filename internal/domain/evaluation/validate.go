package evaluation

import (
	"fmt"
	"math"
	"strings"

	"perfeval/internal/platform/apperror"
)

const weightTolerance = 0.01

func oneOf(value string, allowed []string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}

func normalizeCycle(c Cycle) Cycle {
	c.ID = strings.TrimSpace(c.ID)
	c.Title = strings.TrimSpace(c.Title)
	c.FrameworkIDs = dedupe(c.FrameworkIDs)
	return c
}

func validateCycle(c Cycle) []apperror.FieldIssue {
	var issues apperror.Issues
	issues.Required("title", c.Title)
	if c.StartDate.IsZero() {
		issues.Add("startDate", "is required")
	}
	if c.EndDate.IsZero() {
		issues.Add("endDate", "is required")
	}
	if !c.StartDate.IsZero() && !c.EndDate.IsZero() && c.EndDate.Before(c.StartDate) {
		issues.Add("startDate", "must be on or before endDate")
		issues.Add("endDate", "must be on or after startDate")
	}
	if !oneOf(c.Type, CycleTypes) {
		issues.Add("type", "must be one of annual, semi-annual, quarterly")
	}
	if !oneOf(c.Status, CycleStatuses) {
		issues.Add("status", "must be one of upcoming, active, completed")
	}
	if c.Weights.Own < 0 || c.Weights.Shared < 0 {
		issues.Add("weights", "must not be negative")
	} else if math.Abs(c.Weights.Own+c.Weights.Shared-100) > weightTolerance {
		issues.Add("weights", fmt.Sprintf("own and shared must sum to 100, got %.2f", c.Weights.Own+c.Weights.Shared))
	}
	if cfg := c.PerformanceConfig; cfg != nil {
		if math.Abs(cfg.OwnPercentage-c.Weights.Own) > weightTolerance || math.Abs(cfg.SharedPercentage-c.Weights.Shared) > weightTolerance {
			issues.Add("performanceConfig", "percentages must match the cycle weights")
		}
		divisions := 0.0
		for name, w := range cfg.DivisionWeights {
			if strings.TrimSpace(name) == "" {
				issues.Add("performanceConfig.divisionWeights", "division name is required")
			}
			if w < 0 {
				issues.Add("performanceConfig.divisionWeights."+name, "must not be negative")
			}
			divisions += w
		}
		if divisions-cfg.SharedPercentage > weightTolerance {
			issues.Add("performanceConfig.divisionWeights", fmt.Sprintf("division weights sum to %.2f, above shared %.2f", divisions, cfg.SharedPercentage))
		}
	}
	for i, id := range c.FrameworkIDs {
		if id == "" {
			issues.Add(fmt.Sprintf("customCompetencyFrameworkIds[%d]", i), "must not be empty")
		}
	}
	return issues.List()
}

func validateAssignments(assignments map[string]Assignment) []apperror.FieldIssue {
	var issues apperror.Issues
	for evaluateeID, a := range assignments {
		field := "assignments[" + evaluateeID + "]"
		if strings.TrimSpace(evaluateeID) == "" {
			issues.Add("assignments", "evaluatee id must not be empty")
			continue
		}
		check := func(name string, ids []string) {
			for _, id := range ids {
				if strings.TrimSpace(id) == "" {
					issues.Add(field+"."+name, "ids must not be empty")
				}
				if id == evaluateeID {
					issues.Add(field+"."+name, "must not include the evaluatee")
				}
			}
		}
		check("peerIds", a.PeerIDs)
		check("supervisorIds", a.SupervisorIDs)
		check("subordinateIds", a.SubordinateIDs)
	}
	return issues.List()
}

func validateSubmission(sub Submission) []apperror.FieldIssue {
	var issues apperror.Issues
	issues.Required("evaluatorId", sub.EvaluatorID)
	issues.Required("evaluateeId", sub.EvaluateeID)
	issues.Required("cycleId", sub.CycleID)
	if !oneOf(sub.Type, SubmissionTypes) {
		issues.Add("type", "must be one of self, peer, supervisor, subordinate")
	}
	if sub.Type == TypeSelf && sub.EvaluatorID != sub.EvaluateeID {
		issues.Add("evaluatorId", "must equal evaluateeId for a self evaluation")
	}
	if sub.Type != TypeSelf && sub.Type != "" && sub.EvaluatorID != "" && sub.EvaluatorID == sub.EvaluateeID {
		issues.Add("evaluatorId", "must differ from evaluateeId")
	}
	if len(sub.Scores) == 0 {
		issues.Add("scores", "must contain at least one score")
	}
	seen := make(map[string]bool, len(sub.Scores))
	for i, sc := range sub.Scores {
		if strings.TrimSpace(sc.QuestionID) == "" {
			issues.Add(fmt.Sprintf("scores[%d].questionId", i), "is required")
		} else if seen[sc.QuestionID] {
			issues.Add(fmt.Sprintf("scores[%d].questionId", i), "is duplicated")
		}
		seen[sc.QuestionID] = true
		if sc.Score < MinScore || sc.Score > MaxScore {
			issues.Add(fmt.Sprintf("scores[%d].score", i), fmt.Sprintf("must be between %d and %d", MinScore, MaxScore))
		}
	}
	return issues.List()
}

// dedupe trims ids and drops repeats, keeping first-seen order.
// normalizeAssignments trims evaluatee keys and evaluator ids so the
// self-assignment check and the fan-out see the same ids. Keys that collide
// after trimming have their lists merged.
func normalizeAssignments(assignments map[string]Assignment) map[string]Assignment {
	out := make(map[string]Assignment, len(assignments))
	trim := func(ids []string) []string {
		if len(ids) == 0 {
			return nil
		}
		trimmed := make([]string, len(ids))
		for i, id := range ids {
			trimmed[i] = strings.TrimSpace(id)
		}
		return trimmed
	}
	for evaluateeID, a := range assignments {
		key := strings.TrimSpace(evaluateeID)
		merged := out[key]
		merged.PeerIDs = append(merged.PeerIDs, trim(a.PeerIDs)...)
		merged.SupervisorIDs = append(merged.SupervisorIDs, trim(a.SupervisorIDs)...)
		merged.SubordinateIDs = append(merged.SubordinateIDs, trim(a.SubordinateIDs)...)
		out[key] = merged
	}
	return out
}

func dedupe(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
