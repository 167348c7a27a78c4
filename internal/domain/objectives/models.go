package objectives

type Objective struct {
	ID          string  `json:"id"`
	UserID      string  `json:"userId"`
	CycleID     string  `json:"cycleId"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Weight      float64 `json:"weight"`
	Type        string  `json:"type"`
	Division    string  `json:"division,omitempty"`
}

type KPI struct {
	ID          string  `json:"id"`
	ObjectiveID string  `json:"objectiveId"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Weight      float64 `json:"weight"`
	Score       float64 `json:"score"`
	Target      float64 `json:"target"`
	Achieved    float64 `json:"achieved"`
}

type ObjectiveScore struct {
	ObjectiveID   string  `json:"objectiveId"`
	Type          string  `json:"type"`
	Weight        float64 `json:"weight"`
	WeightedScore float64 `json:"weightedScore"`
	KPICount      int     `json:"kpiCount"`
}

// UserScore is a user's weighted result for one cycle. Overall is only set
// when the cycle is known and carries own/shared weights.
type UserScore struct {
	UserID     string           `json:"userId"`
	CycleID    string           `json:"cycleId"`
	Own        float64          `json:"own"`
	Shared     float64          `json:"shared"`
	Overall    *float64         `json:"overall,omitempty"`
	Objectives []ObjectiveScore `json:"objectives"`
}

// CycleInfo is what this package needs to know about a cycle.
type CycleInfo struct {
	Status       string
	OwnWeight    float64
	SharedWeight float64
}
