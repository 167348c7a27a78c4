package reports

import (
	"context"

	"go.uber.org/zap"

	"perfeval/internal/domain/directory"
	"perfeval/internal/domain/evaluation"
)

type Cycles interface {
	GetCycle(ctx context.Context, id string) (evaluation.Cycle, error)
	ListCycles(ctx context.Context, filter evaluation.CycleFilter) []evaluation.Cycle
	CycleStats(ctx context.Context, cycleID string) (evaluation.CycleStats, error)
	EmployeeRows(ctx context.Context, cycleID, query, status string) ([]evaluation.EmployeeRow, error)
	SubmissionCounts(ctx context.Context) evaluation.Counts
}

type People interface {
	ActiveEmployees(ctx context.Context) []directory.User
}

type Service struct {
	cycles Cycles
	people People
	logger *zap.Logger
}

func NewService(cycles Cycles, people People, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{cycles: cycles, people: people, logger: logger.Named("reports")}
}

func (s *Service) Dashboard(ctx context.Context) Dashboard {
	var d Dashboard
	for _, c := range s.cycles.ListCycles(ctx, evaluation.CycleFilter{View: evaluation.ViewAll}) {
		switch c.Status {
		case evaluation.CycleStatusActive:
			d.ActiveCycles++
		case evaluation.CycleStatusUpcoming:
			d.UpcomingCycles++
		}
	}
	d.TotalEmployees = len(s.people.ActiveEmployees(ctx))
	counts := s.cycles.SubmissionCounts(ctx)
	d.TotalSubmitted = counts.Submitted
	d.TotalExpected = counts.Submitted + counts.Pending
	if d.TotalExpected > 0 {
		d.CompletionRate = float64(d.TotalSubmitted) / float64(d.TotalExpected) * 100
	}
	return d
}
