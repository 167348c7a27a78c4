package evaluation

const (
	CycleStatusUpcoming  = "upcoming"
	CycleStatusActive    = "active"
	CycleStatusCompleted = "completed"

	CycleTypeAnnual     = "annual"
	CycleTypeSemiAnnual = "semi-annual"
	CycleTypeQuarterly  = "quarterly"

	SubmissionStatusPending   = "pending"
	SubmissionStatusSubmitted = "submitted"

	TypeSelf        = "self"
	TypePeer        = "peer"
	TypeSupervisor  = "supervisor"
	TypeSubordinate = "subordinate"

	MinScore = 1
	MaxScore = 5

	ViewActive  = "active"
	ViewHistory = "history"
	ViewAll     = "all"
)

var (
	CycleStatuses   = []string{CycleStatusUpcoming, CycleStatusActive, CycleStatusCompleted}
	CycleTypes      = []string{CycleTypeAnnual, CycleTypeSemiAnnual, CycleTypeQuarterly}
	SubmissionTypes = []string{TypeSelf, TypePeer, TypeSupervisor, TypeSubordinate}
)

// cycleTransitions lists the statuses each status may move to.
var cycleTransitions = map[string][]string{
	CycleStatusUpcoming:  {CycleStatusActive, CycleStatusCompleted},
	CycleStatusActive:    {CycleStatusCompleted},
	CycleStatusCompleted: nil,
}
