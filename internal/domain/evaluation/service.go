package evaluation

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type Service struct {
	store     StoreAPI
	users     Directory
	questions QuestionBank
	weights   WeightChecker
	observer  Observer
	logger    *zap.Logger
	now       func() time.Time
	newID     func() string
}

type Option func(*Service)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDs replaces the id generator used for new submissions and cycles.
func WithIDs(newID func() string) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

func WithObserver(o Observer) Option {
	return func(s *Service) {
		s.observer = o
	}
}

// WithWeightChecker enables objective weight validation at deploy time.
func WithWeightChecker(w WeightChecker) Option {
	return func(s *Service) {
		s.weights = w
	}
}

func NewService(store StoreAPI, users Directory, questions QuestionBank, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		store:     store,
		users:     users,
		questions: questions,
		logger:    logger.Named("evaluation"),
		now:       time.Now,
		newID:     newUUID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) GetCycle(ctx context.Context, id string) (Cycle, error) {
	cycle, ok := s.store.GetCycle(ctx, id)
	if !ok {
		return Cycle{}, fmt.Errorf("cycle %q: %w", id, ErrCycleNotFound)
	}
	return cycle, nil
}

func (s *Service) GetSubmission(ctx context.Context, id string) (Submission, error) {
	sub, ok := s.store.GetSubmission(ctx, id)
	if !ok {
		return Submission{}, fmt.Errorf("submission %q: %w", id, ErrSubmissionNotFound)
	}
	return s.withQuestionText(ctx, sub), nil
}

// withQuestionText fills display text for scores that carry no snapshot.
func (s *Service) withQuestionText(ctx context.Context, sub Submission) Submission {
	if s.questions == nil {
		return sub
	}
	for i := range sub.Scores {
		if sub.Scores[i].QuestionText == "" {
			sub.Scores[i].QuestionText = s.questions.QuestionText(ctx, sub.Scores[i].QuestionID)
		}
	}
	return sub
}

func (s *Service) requireUser(ctx context.Context, id string) error {
	if _, err := s.users.GetUser(ctx, id); err != nil {
		return fmt.Errorf("user %q: %w", id, ErrUserNotFound)
	}
	return nil
}
