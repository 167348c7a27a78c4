package reports

// Dashboard is the admin overview across every cycle.
type Dashboard struct {
	ActiveCycles   int     `json:"activeCycles"`
	UpcomingCycles int     `json:"upcomingCycles"`
	TotalEmployees int     `json:"totalEmployees"`
	TotalSubmitted int     `json:"totalSubmitted"`
	TotalExpected  int     `json:"totalExpected"`
	CompletionRate float64 `json:"completionRate"`
}
