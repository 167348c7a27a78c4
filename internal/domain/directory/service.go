package directory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"perfeval/internal/platform/apperror"
)

type Service struct {
	store  StoreAPI
	logger *zap.Logger
}

func NewService(store StoreAPI, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger.Named("directory")}
}

func (s *Service) ListUsers(ctx context.Context, filter Filter) []User {
	all := s.store.ListUsers(ctx)
	out := make([]User, 0, len(all))
	for _, u := range all {
		if filter.matches(u) {
			out = append(out, u)
		}
	}
	sortUsers(out)
	return out
}

func (s *Service) GetUser(ctx context.Context, id string) (User, error) {
	user, ok := s.store.GetUser(ctx, strings.TrimSpace(id))
	if !ok {
		return User{}, fmt.Errorf("user %q: %w", id, ErrUserNotFound)
	}
	return user, nil
}

func (s *Service) FindUserByEmail(ctx context.Context, email string) (User, error) {
	user, ok := s.store.UserByEmail(ctx, email)
	if !ok {
		return User{}, ErrUserNotFound
	}
	return user, nil
}

// ActiveEmployees returns users with the employee role and active status.
func (s *Service) ActiveEmployees(ctx context.Context) []User {
	return s.ListUsers(ctx, Filter{Role: RoleEmployee, Status: StatusActive})
}

// Provision adds a user to the directory. It backs seeding; the HTTP API
// keeps the directory read-only.
func (s *Service) Provision(ctx context.Context, user User) (User, error) {
	var issues apperror.Issues
	issues.Required("id", user.ID)
	issues.Required("name", user.Name)
	issues.Required("email", user.Email)
	if !validRole(user.Role) {
		issues.Add("role", "must be one of admin, employee, manager")
	}
	if user.Status == "" {
		user.Status = StatusActive
	}
	if user.Status != StatusActive && user.Status != StatusDeactivated {
		issues.Add("status", "must be active or deactivated")
	}
	if err := issues.Err("invalid user"); err != nil {
		return User{}, err
	}
	if _, ok := s.store.GetUser(ctx, user.ID); ok {
		return User{}, ErrUserExists
	}
	if _, ok := s.store.UserByEmail(ctx, user.Email); ok {
		return User{}, ErrUserExists
	}
	if err := s.store.PutUser(ctx, user); err != nil {
		return User{}, err
	}
	s.logger.Debug("user provisioned", zap.String("userId", user.ID), zap.String("role", user.Role))
	return user, nil
}

func validRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

func sortUsers(users []User) {
	sort.SliceStable(users, func(i, j int) bool {
		if users[i].Name == users[j].Name {
			return users[i].ID < users[j].ID
		}
		return users[i].Name < users[j].Name
	})
}
