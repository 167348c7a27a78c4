package objectives

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"perfeval/internal/platform/apperror"
)

type Service struct {
	store  StoreAPI
	logger *zap.Logger

	// writeMu serializes the sum check and the insert that follows it.
	writeMu sync.Mutex
}

func NewService(store StoreAPI, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger.Named("objectives")}
}

func (s *Service) ObjectivesFor(ctx context.Context, userID, cycleID string) []Objective {
	return s.store.ObjectivesFor(ctx, userID, cycleID)
}

func (s *Service) KPIsFor(ctx context.Context, objectiveID string) []KPI {
	return s.store.KPIsFor(ctx, objectiveID)
}

func (s *Service) GetObjective(ctx context.Context, objectiveID string) (Objective, error) {
	obj, ok := s.store.GetObjective(ctx, objectiveID)
	if !ok {
		return Objective{}, fmt.Errorf("objective %q: %w", objectiveID, ErrObjectiveNotFound)
	}
	return obj, nil
}

func (s *Service) ObjectiveWeightedScore(ctx context.Context, objectiveID string) (float64, error) {
	if _, err := s.GetObjective(ctx, objectiveID); err != nil {
		return 0, err
	}
	return WeightedScore(s.store.KPIsFor(ctx, objectiveID)), nil
}

func (s *Service) UserWeightedScore(ctx context.Context, userID, cycleID string) UserScore {
	objs := s.store.ObjectivesFor(ctx, userID, cycleID)
	kpis := make(map[string][]KPI, len(objs))
	for _, o := range objs {
		kpis[o.ID] = s.store.KPIsFor(ctx, o.ID)
	}
	own, shared, breakdown := CombineUserScore(objs, kpis)
	score := UserScore{
		UserID:     userID,
		CycleID:    cycleID,
		Own:        own,
		Shared:     shared,
		Objectives: breakdown,
	}
	if info, ok := s.store.CycleInfo(ctx, cycleID); ok && info.OwnWeight+info.SharedWeight > 0 {
		overall := Overall(own, shared, info.OwnWeight, info.SharedWeight)
		score.Overall = &overall
	}
	return score
}

func (s *Service) CreateObjective(ctx context.Context, objective Objective) (Objective, error) {
	objective.Title = strings.TrimSpace(objective.Title)
	if issues := validateObjective(objective); len(issues) > 0 {
		return Objective{}, apperror.Validation("invalid objective", issues...)
	}
	if !s.store.UserExists(ctx, objective.UserID) {
		return Objective{}, fmt.Errorf("objective owner %q: %w", objective.UserID, ErrUserNotFound)
	}
	if info, ok := s.store.CycleInfo(ctx, objective.CycleID); ok && info.Status != cycleStatusUpcoming {
		return Objective{}, ErrCycleLocked
	}
	if objective.ID == "" {
		objective.ID = uuid.NewString()
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if _, exists := s.store.GetObjective(ctx, objective.ID); exists {
		return Objective{}, ErrObjectiveExists
	}
	total := objective.Weight
	for _, o := range s.store.ObjectivesFor(ctx, objective.UserID, objective.CycleID) {
		if o.Type == objective.Type {
			total += o.Weight
		}
	}
	if exceeds(total, WeightTotal) {
		return Objective{}, apperror.Validation("invalid objective", apperror.FieldIssue{
			Field:  "weight",
			Reason: fmt.Sprintf("%s objective weights would sum to %.2f, limit is 100", objective.Type, total),
		})
	}
	if err := s.store.InsertObjective(ctx, objective); err != nil {
		return Objective{}, err
	}
	s.logger.Info("objective created",
		zap.String("objectiveId", objective.ID),
		zap.String("userId", objective.UserID),
		zap.String("cycleId", objective.CycleID),
	)
	return objective, nil
}

func (s *Service) CreateKPI(ctx context.Context, kpi KPI) (KPI, error) {
	kpi.Title = strings.TrimSpace(kpi.Title)
	if issues := validateKPI(kpi); len(issues) > 0 {
		return KPI{}, apperror.Validation("invalid kpi", issues...)
	}
	objective, err := s.GetObjective(ctx, kpi.ObjectiveID)
	if err != nil {
		return KPI{}, err
	}
	if info, ok := s.store.CycleInfo(ctx, objective.CycleID); ok && info.Status != cycleStatusUpcoming {
		return KPI{}, ErrCycleLocked
	}
	if kpi.ID == "" {
		kpi.ID = uuid.NewString()
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	total := kpi.Weight
	for _, k := range s.store.KPIsFor(ctx, kpi.ObjectiveID) {
		if k.ID == kpi.ID {
			return KPI{}, ErrKPIExists
		}
		total += k.Weight
	}
	if exceeds(total, WeightTotal) {
		return KPI{}, apperror.Validation("invalid kpi", apperror.FieldIssue{
			Field:  "weight",
			Reason: fmt.Sprintf("kpi weights would sum to %.2f, limit is 100", total),
		})
	}
	if err := s.store.InsertKPI(ctx, kpi); err != nil {
		return KPI{}, err
	}
	s.logger.Info("kpi created", zap.String("kpiId", kpi.ID), zap.String("objectiveId", kpi.ObjectiveID))
	return kpi, nil
}

// CheckWeights validates that a user's plan for the cycle is complete: every
// non-empty objective type sums to 100 and every objective with KPIs has KPI
// weights summing to 100.
func (s *Service) CheckWeights(ctx context.Context, userID, cycleID string) error {
	objs := s.store.ObjectivesFor(ctx, userID, cycleID)
	if len(objs) == 0 {
		return nil
	}
	kpis := make(map[string][]KPI, len(objs))
	for _, o := range objs {
		kpis[o.ID] = s.store.KPIsFor(ctx, o.ID)
	}
	issues := weightIssues(objs, kpis)
	if len(issues) == 0 {
		return nil
	}
	for i := range issues {
		issues[i].Field = "assignments[" + userID + "]." + issues[i].Field
	}
	return apperror.Validation("objective weights are inconsistent", issues...)
}
