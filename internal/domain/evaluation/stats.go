package evaluation

import (
	"context"

	"perfeval/internal/domain/directory"
	"perfeval/internal/platform/textmatch"
)

// BuildEmployeeStatus derives an evaluatee's status from the rows received
// in one cycle.
func BuildEmployeeStatus(userID, cycleID string, subs []Submission) EmployeeStatus {
	status := EmployeeStatus{
		UserID:  userID,
		CycleID: cycleID,
		Status:  SubmissionStatusPending,
	}
	total, count := 0, 0
	for _, sub := range subs {
		status.Progress.Total++
		if !sub.IsSubmitted() {
			continue
		}
		status.Progress.Completed++
		if sub.Type == TypeSelf && sub.EvaluatorID == userID && status.Status != SubmissionStatusSubmitted {
			status.Status = SubmissionStatusSubmitted
			status.SubmittedAt = sub.SubmittedAt
		}
		for _, sc := range sub.Scores {
			total += sc.Score
			count++
		}
	}
	if count > 0 {
		avg := float64(total) / float64(count)
		status.AvgScore = &avg
	}
	return status
}

// BuildCycleStats counts the employees who have submitted their self
// evaluation for the cycle.
func BuildCycleStats(cycleID string, employees []directory.User, cycleSubs []Submission) CycleStats {
	selfDone := make(map[string]bool)
	for _, sub := range cycleSubs {
		if sub.Type == TypeSelf && sub.IsSubmitted() && sub.EvaluatorID == sub.EvaluateeID {
			selfDone[sub.EvaluateeID] = true
		}
	}
	stats := CycleStats{CycleID: cycleID, TotalEmployees: len(employees)}
	for _, emp := range employees {
		if selfDone[emp.ID] {
			stats.CompletedCount++
		}
	}
	stats.PendingCount = stats.TotalEmployees - stats.CompletedCount
	if stats.TotalEmployees > 0 {
		stats.CompletionRate = float64(stats.CompletedCount) / float64(stats.TotalEmployees) * 100
	}
	return stats
}

// BuildBreakdown groups rows by evaluation type.
func BuildBreakdown(subs []Submission) Breakdown {
	b := Breakdown{
		Peers:        []Submission{},
		Supervisors:  []Submission{},
		Subordinates: []Submission{},
	}
	for _, sub := range subs {
		switch sub.Type {
		case TypeSelf:
			if b.Self == nil {
				self := sub
				b.Self = &self
			}
		case TypePeer:
			b.Peers = append(b.Peers, sub)
		case TypeSupervisor:
			b.Supervisors = append(b.Supervisors, sub)
		case TypeSubordinate:
			b.Subordinates = append(b.Subordinates, sub)
		}
	}
	return b
}

func (s *Service) EmployeeStatus(ctx context.Context, userID, cycleID string) (EmployeeStatus, error) {
	if _, err := s.GetCycle(ctx, cycleID); err != nil {
		return EmployeeStatus{}, err
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return EmployeeStatus{}, err
	}
	return BuildEmployeeStatus(userID, cycleID, s.store.SubmissionsForEvaluatee(ctx, userID, cycleID)), nil
}

func (s *Service) CycleStats(ctx context.Context, cycleID string) (CycleStats, error) {
	if _, err := s.GetCycle(ctx, cycleID); err != nil {
		return CycleStats{}, err
	}
	return BuildCycleStats(cycleID, s.users.ActiveEmployees(ctx), s.store.SubmissionsForCycle(ctx, cycleID)), nil
}

func (s *Service) Breakdown(ctx context.Context, userID, cycleID string) (Breakdown, error) {
	if _, err := s.GetCycle(ctx, cycleID); err != nil {
		return Breakdown{}, err
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return Breakdown{}, err
	}
	subs := s.store.SubmissionsForEvaluatee(ctx, userID, cycleID)
	for i := range subs {
		subs[i] = s.withQuestionText(ctx, subs[i])
	}
	return BuildBreakdown(subs), nil
}

// EmployeeRows lists active employees with their status in the cycle,
// optionally narrowed by name and by status (submitted or pending).
func (s *Service) EmployeeRows(ctx context.Context, cycleID, query, status string) ([]EmployeeRow, error) {
	if _, err := s.GetCycle(ctx, cycleID); err != nil {
		return nil, err
	}
	byEvaluatee := make(map[string][]Submission)
	for _, sub := range s.store.SubmissionsForCycle(ctx, cycleID) {
		byEvaluatee[sub.EvaluateeID] = append(byEvaluatee[sub.EvaluateeID], sub)
	}
	rows := []EmployeeRow{}
	for _, emp := range s.users.ActiveEmployees(ctx) {
		if !textmatch.Contains(query, emp.Name) {
			continue
		}
		st := BuildEmployeeStatus(emp.ID, cycleID, byEvaluatee[emp.ID])
		if status != "" && status != st.Status {
			continue
		}
		rows = append(rows, EmployeeRow{
			UserID:     emp.ID,
			Name:       emp.Name,
			Department: emp.Department,
			Status:     st,
		})
	}
	return rows, nil
}
