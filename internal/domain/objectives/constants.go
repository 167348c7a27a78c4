package objectives

const (
	TypeOwn    = "own"
	TypeShared = "shared"

	// WeightTotal is the sum every weight bucket must reach.
	WeightTotal = 100.0
	// weightTolerance absorbs float noise from fractional weights.
	weightTolerance = 0.01

	// Objectives may only change while their cycle has not started.
	cycleStatusUpcoming = "upcoming"
)
