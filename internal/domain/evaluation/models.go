package evaluation

import "time"

type Weights struct {
	Own    float64 `json:"own"`
	Shared float64 `json:"shared"`
}

type Competencies struct {
	Behavioral bool `json:"behavioral"`
	Technical  bool `json:"technical"`
	Leadership bool `json:"leadership"`
}

// PerformanceConfig splits the shared bucket across divisions. It is locked
// once the cycle is deployed.
type PerformanceConfig struct {
	OwnPercentage    float64            `json:"ownPercentage"`
	SharedPercentage float64            `json:"sharedPercentage"`
	DivisionWeights  map[string]float64 `json:"divisionWeights"`
	Locked           bool               `json:"locked"`
}

type Cycle struct {
	ID                string             `json:"id"`
	Title             string             `json:"title"`
	StartDate         time.Time          `json:"startDate"`
	EndDate           time.Time          `json:"endDate"`
	Type              string             `json:"type"`
	Status            string             `json:"status"`
	Weights           Weights            `json:"weights"`
	Competencies      Competencies       `json:"competencies"`
	FrameworkIDs      []string           `json:"customCompetencyFrameworkIds"`
	PerformanceConfig *PerformanceConfig `json:"performanceConfig,omitempty"`
	CreatedAt         time.Time          `json:"createdAt"`
}

// Assignment lists the evaluators of one evaluatee.
type Assignment struct {
	PeerIDs        []string `json:"peerIds"`
	SupervisorIDs  []string `json:"supervisorIds"`
	SubordinateIDs []string `json:"subordinateIds,omitempty"`
}

type Score struct {
	QuestionID   string `json:"questionId"`
	Score        int    `json:"score"`
	QuestionText string `json:"questionText,omitempty"`
}

type Signatures struct {
	Employee   string `json:"employee,omitempty"`
	Supervisor string `json:"supervisor,omitempty"`
	CEO        string `json:"ceo,omitempty"`
	Date       string `json:"date,omitempty"`
}

type Submission struct {
	ID               string      `json:"id"`
	EvaluatorID      string      `json:"evaluatorId"`
	EvaluateeID      string      `json:"evaluateeId"`
	CycleID          string      `json:"cycleId"`
	Type             string      `json:"type"`
	Status           string      `json:"status"`
	SubmittedAt      *time.Time  `json:"submittedAt,omitempty"`
	Scores           []Score     `json:"scores"`
	FormID           string      `json:"formId,omitempty"`
	ImprovementAreas string      `json:"improvementAreas,omitempty"`
	NextGoals        string      `json:"nextGoals,omitempty"`
	EmployeeComments string      `json:"employeeComments,omitempty"`
	Signatures       *Signatures `json:"signatures,omitempty"`
}

// SlotKey identifies the single row an evaluator fills for an evaluatee.
type SlotKey struct {
	EvaluatorID string
	EvaluateeID string
	CycleID     string
	Type        string
}

func (s Submission) Slot() SlotKey {
	return SlotKey{EvaluatorID: s.EvaluatorID, EvaluateeID: s.EvaluateeID, CycleID: s.CycleID, Type: s.Type}
}

func (s Submission) submittedTime() time.Time {
	if s.SubmittedAt == nil {
		return time.Time{}
	}
	return *s.SubmittedAt
}

func (s Submission) IsSubmitted() bool {
	return s.Status == SubmissionStatusSubmitted
}

// Average is the mean of the submission's scores, or nil without scores.
func (s Submission) Average() *float64 {
	if len(s.Scores) == 0 {
		return nil
	}
	total := 0
	for _, sc := range s.Scores {
		total += sc.Score
	}
	avg := float64(total) / float64(len(s.Scores))
	return &avg
}

func (s Submission) Clone() Submission {
	out := s
	out.Scores = append([]Score(nil), s.Scores...)
	if s.SubmittedAt != nil {
		at := *s.SubmittedAt
		out.SubmittedAt = &at
	}
	if s.Signatures != nil {
		sig := *s.Signatures
		out.Signatures = &sig
	}
	return out
}

func (c Cycle) Clone() Cycle {
	out := c
	out.FrameworkIDs = append([]string(nil), c.FrameworkIDs...)
	if c.PerformanceConfig != nil {
		cfg := *c.PerformanceConfig
		cfg.DivisionWeights = make(map[string]float64, len(c.PerformanceConfig.DivisionWeights))
		for k, v := range c.PerformanceConfig.DivisionWeights {
			cfg.DivisionWeights[k] = v
		}
		out.PerformanceConfig = &cfg
	}
	return out
}

type Progress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

type EmployeeStatus struct {
	UserID      string     `json:"userId"`
	CycleID     string     `json:"cycleId"`
	Status      string     `json:"status"`
	SubmittedAt *time.Time `json:"submittedAt,omitempty"`
	Progress    Progress   `json:"progress"`
	AvgScore    *float64   `json:"avgScore"`
}

type CycleStats struct {
	CycleID        string  `json:"cycleId"`
	TotalEmployees int     `json:"totalEmployees"`
	CompletedCount int     `json:"completedCount"`
	PendingCount   int     `json:"pendingCount"`
	CompletionRate float64 `json:"completionRate"`
}

// Breakdown groups the rows received by one evaluatee in a cycle.
type Breakdown struct {
	Self         *Submission  `json:"self,omitempty"`
	Peers        []Submission `json:"peers"`
	Supervisors  []Submission `json:"supervisors"`
	Subordinates []Submission `json:"subordinates"`
}

// EmployeeRow is one line of the admin status table.
type EmployeeRow struct {
	UserID     string         `json:"userId"`
	Name       string         `json:"name"`
	Department string         `json:"department"`
	Status     EmployeeStatus `json:"status"`
}

type CycleFilter struct {
	View  string
	Query string
}

// Deployment is the result of DeployCycle.
type Deployment struct {
	Cycle       Cycle        `json:"cycle"`
	Submissions []Submission `json:"submissions"`
}

type Counts struct {
	Submitted int `json:"submitted"`
	Pending   int `json:"pending"`
}
