package objectives

import "math"

// WeightedScore is Σ kpi.Score * kpi.Weight / 100. No KPIs yields 0.
func WeightedScore(kpis []KPI) float64 {
	total := 0.0
	for _, k := range kpis {
		total += k.Score * k.Weight / WeightTotal
	}
	return total
}

// CombineUserScore folds per-objective scores into own and shared totals.
func CombineUserScore(objs []Objective, kpisByObjective map[string][]KPI) (own, shared float64, breakdown []ObjectiveScore) {
	breakdown = make([]ObjectiveScore, 0, len(objs))
	for _, o := range objs {
		kpis := kpisByObjective[o.ID]
		score := WeightedScore(kpis)
		contribution := o.Weight / WeightTotal * score
		switch o.Type {
		case TypeShared:
			shared += contribution
		default:
			own += contribution
		}
		breakdown = append(breakdown, ObjectiveScore{
			ObjectiveID:   o.ID,
			Type:          o.Type,
			Weight:        o.Weight,
			WeightedScore: score,
			KPICount:      len(kpis),
		})
	}
	return own, shared, breakdown
}

// Overall applies the cycle's own/shared split to the bucket scores.
func Overall(own, shared, ownWeight, sharedWeight float64) float64 {
	return own*ownWeight/WeightTotal + shared*sharedWeight/WeightTotal
}

func sumsTo(total, want float64) bool {
	return math.Abs(total-want) <= weightTolerance
}

func exceeds(total, limit float64) bool {
	return total-limit > weightTolerance
}
