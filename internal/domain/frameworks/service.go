package frameworks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"perfeval/internal/platform/apperror"
	"perfeval/internal/platform/textmatch"
)

type Service struct {
	store  StoreAPI
	logger *zap.Logger
	now    func() time.Time

	writeMu sync.Mutex
}

func NewService(store StoreAPI, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger.Named("frameworks"), now: time.Now}
}

// ListFrameworks returns frameworks whose name or description contains query.
func (s *Service) ListFrameworks(ctx context.Context, query string) []Framework {
	all := s.store.ListFrameworks(ctx)
	out := make([]Framework, 0, len(all))
	for _, f := range all {
		if textmatch.Contains(query, f.Name, f.Description) {
			out = append(out, f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (s *Service) GetFramework(ctx context.Context, id string) (Framework, error) {
	f, ok := s.store.GetFramework(ctx, id)
	if !ok {
		return Framework{}, fmt.Errorf("framework %q: %w", id, ErrFrameworkNotFound)
	}
	return f, nil
}

func (s *Service) CreateFramework(ctx context.Context, framework Framework) (Framework, error) {
	framework = normalize(framework)
	if framework.ID == "" {
		framework.ID = uuid.NewString()
	}
	assignQuestionIDs(framework.Questions)
	if issues := validate(framework); len(issues) > 0 {
		return Framework{}, apperror.Validation("invalid framework", issues...)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if _, exists := s.store.GetFramework(ctx, framework.ID); exists {
		return Framework{}, ErrFrameworkExists
	}
	if issues := s.questionConflicts(ctx, framework); len(issues) > 0 {
		return Framework{}, apperror.Validation("invalid framework", issues...)
	}
	now := s.now().UTC()
	framework.CreatedAt = now
	framework.UpdatedAt = now
	if err := s.store.PutFramework(ctx, framework); err != nil {
		return Framework{}, err
	}
	s.logger.Info("framework created",
		zap.String("frameworkId", framework.ID),
		zap.Int("questions", len(framework.Questions)),
	)
	return framework.clone(), nil
}

func (s *Service) UpdateFramework(ctx context.Context, id string, patch Patch) (Framework, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	current, ok := s.store.GetFramework(ctx, id)
	if !ok {
		return Framework{}, fmt.Errorf("framework %q: %w", id, ErrFrameworkNotFound)
	}
	next := current.clone()
	if patch.Name != nil {
		next.Name = *patch.Name
	}
	if patch.Description != nil {
		next.Description = *patch.Description
	}
	if patch.Questions != nil {
		next.Questions = append([]Question(nil), (*patch.Questions)...)
	}
	next = normalize(next)
	assignQuestionIDs(next.Questions)
	if issues := validate(next); len(issues) > 0 {
		return Framework{}, apperror.Validation("invalid framework", issues...)
	}
	if issues := s.questionConflicts(ctx, next); len(issues) > 0 {
		return Framework{}, apperror.Validation("invalid framework", issues...)
	}
	next.UpdatedAt = s.now().UTC()
	if err := s.store.PutFramework(ctx, next); err != nil {
		return Framework{}, err
	}
	s.logger.Info("framework updated", zap.String("frameworkId", id))
	return next.clone(), nil
}

func (s *Service) DeleteFramework(ctx context.Context, id string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if !s.store.DeleteFramework(ctx, id) {
		return fmt.Errorf("framework %q: %w", id, ErrFrameworkNotFound)
	}
	s.logger.Info("framework deleted", zap.String("frameworkId", id))
	return nil
}

func (s *Service) FindQuestion(ctx context.Context, questionID string) (QuestionRef, error) {
	ref, ok := s.store.FindQuestion(ctx, questionID)
	if !ok {
		return QuestionRef{}, fmt.Errorf("question %q: %w", questionID, ErrQuestionNotFound)
	}
	return ref, nil
}

// QuestionText resolves a question id to its current text.
func (s *Service) QuestionText(ctx context.Context, questionID string) string {
	ref, ok := s.store.FindQuestion(ctx, questionID)
	if !ok {
		return MissingQuestionText
	}
	return ref.Question.Text
}

// Missing returns the ids that do not name a stored framework.
func (s *Service) Missing(ctx context.Context, ids []string) []string {
	var missing []string
	for _, id := range ids {
		if _, ok := s.store.GetFramework(ctx, id); !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

// questionConflicts rejects question ids already owned by another framework,
// since score rows resolve questions by id alone.
func (s *Service) questionConflicts(ctx context.Context, f Framework) []apperror.FieldIssue {
	var issues apperror.Issues
	for i, q := range f.Questions {
		ref, ok := s.store.FindQuestion(ctx, q.ID)
		if ok && ref.FrameworkID != f.ID {
			issues.Add(fmt.Sprintf("questions[%d].id", i), "is already used by framework "+ref.FrameworkID)
		}
	}
	return issues.List()
}

func assignQuestionIDs(questions []Question) {
	for i := range questions {
		if questions[i].ID == "" {
			questions[i].ID = uuid.NewString()
		}
	}
}
