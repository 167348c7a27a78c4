// Package jobs runs background work on a single worker goroutine and keeps a
// short history of finished runs.
package jobs

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const historySize = 50

type RunFunc func(context.Context) (any, error)

// Run describes one finished job.
type Run struct {
	Type       string    `json:"type"`
	Status     string    `json:"status"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	Details    any       `json:"details,omitempty"`
	Error      string    `json:"error,omitempty"`
}

type job struct {
	Type string
	Run  RunFunc
}

type Service struct {
	logger *zap.Logger
	queue  chan job
	now    func() time.Time

	mu      sync.Mutex
	history []Run
}

func New(logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		logger: logger.Named("jobs"),
		queue:  make(chan job, 128),
		now:    time.Now,
	}
}

// Start runs the worker until ctx is cancelled.
func (s *Service) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			if _, err := s.runJob(ctx, j); err != nil {
				s.logger.Warn("job run failed", zap.String("jobType", j.Type), zap.Error(err))
			}
		}
	}
}

// Schedule enqueues run every interval until ctx is cancelled. A
// non-positive interval disables the schedule.
func (s *Service) Schedule(ctx context.Context, jobType string, interval time.Duration, run RunFunc) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Enqueue(jobType, run)
		}
	}
}

func (s *Service) Enqueue(jobType string, run RunFunc) bool {
	select {
	case s.queue <- job{Type: jobType, Run: run}:
		return true
	default:
		s.logger.Warn("job queue full", zap.String("jobType", jobType))
		return false
	}
}

func (s *Service) RunNow(ctx context.Context, jobType string, run RunFunc) (any, error) {
	return s.runJob(ctx, job{Type: jobType, Run: run})
}

// History returns finished runs, newest first.
func (s *Service) History() []Run {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Run, len(s.history))
	for i, r := range s.history {
		out[len(s.history)-1-i] = r
	}
	return out
}

func (s *Service) runJob(ctx context.Context, j job) (any, error) {
	run := Run{Type: j.Type, StartedAt: s.now().UTC()}
	details, err := j.Run(ctx)
	run.FinishedAt = s.now().UTC()
	run.Details = details
	run.Status = "completed"
	if err != nil {
		run.Status = "failed"
		run.Error = err.Error()
	}

	s.mu.Lock()
	s.history = append(s.history, run)
	if len(s.history) > historySize {
		s.history = s.history[len(s.history)-historySize:]
	}
	s.mu.Unlock()

	s.logger.Debug("job finished",
		zap.String("jobType", j.Type),
		zap.String("status", run.Status),
		zap.Duration("took", run.FinishedAt.Sub(run.StartedAt)),
	)
	return details, err
}
