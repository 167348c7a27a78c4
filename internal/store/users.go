package store

import (
	"context"

	"perfeval/internal/domain/directory"
	"perfeval/internal/platform/textmatch"
)

func (m *Memory) ListUsers(_ context.Context) []directory.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]directory.User, 0, len(m.userOrder))
	for _, id := range m.userOrder {
		out = append(out, cloneUser(m.users[id]))
	}
	return out
}

func (m *Memory) GetUser(_ context.Context, id string) (directory.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	return cloneUser(u), ok
}

func (m *Memory) UserByEmail(_ context.Context, email string) (directory.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.emailIndex[textmatch.Fold(email)]
	if !ok {
		return directory.User{}, false
	}
	return cloneUser(m.users[id]), true
}

func (m *Memory) UserExists(_ context.Context, id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.users[id]
	return ok
}

func (m *Memory) PutUser(ctx context.Context, user directory.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if prev, ok := m.users[user.ID]; ok {
		delete(m.emailIndex, textmatch.Fold(prev.Email))
	} else {
		m.userOrder = append(m.userOrder, user.ID)
	}
	m.users[user.ID] = cloneUser(user)
	m.emailIndex[textmatch.Fold(user.Email)] = user.ID
	return nil
}

func cloneUser(u directory.User) directory.User {
	if u.EmployedOn != nil {
		at := *u.EmployedOn
		u.EmployedOn = &at
	}
	return u
}
