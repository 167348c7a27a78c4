package directory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"perfeval/internal/domain/directory"
	"perfeval/internal/platform/apperror"
	"perfeval/internal/store"
)

func newDirectory(t *testing.T) *directory.Service {
	t.Helper()
	svc := directory.NewService(store.NewMemory(), nil)
	for _, u := range []directory.User{
		{ID: "e2", Name: "Zoe", Role: directory.RoleEmployee, Department: "Sales", Email: "zoe@x.io"},
		{ID: "e1", Name: "Alex", Role: directory.RoleEmployee, Department: "Engineering", Email: "alex@x.io"},
		{ID: "e3", Name: "Gone", Role: directory.RoleEmployee, Department: "Sales", Email: "gone@x.io", Status: directory.StatusDeactivated},
		{ID: "m1", Name: "Mia", Role: directory.RoleManager, Department: "Engineering", Email: "mia@x.io"},
	} {
		_, err := svc.Provision(context.Background(), u)
		require.NoError(t, err)
	}
	return svc
}

func TestListUsersFiltersAndSorts(t *testing.T) {
	ctx := context.Background()
	svc := newDirectory(t)

	all := svc.ListUsers(ctx, directory.Filter{})
	require.Len(t, all, 4)
	assert.Equal(t, "Alex", all[0].Name)

	eng := svc.ListUsers(ctx, directory.Filter{Department: "engineering"})
	assert.Len(t, eng, 2)

	found := svc.ListUsers(ctx, directory.Filter{Query: "SAL"})
	assert.Len(t, found, 2)

	managers := svc.ListUsers(ctx, directory.Filter{Role: directory.RoleManager})
	require.Len(t, managers, 1)
	assert.True(t, managers[0].CanSupervise())
}

func TestActiveEmployeesSkipsDeactivatedAndManagers(t *testing.T) {
	active := newDirectory(t).ActiveEmployees(context.Background())
	require.Len(t, active, 2)
	for _, u := range active {
		assert.True(t, u.IsActiveEmployee())
	}
}

func TestLookups(t *testing.T) {
	ctx := context.Background()
	svc := newDirectory(t)

	u, err := svc.FindUserByEmail(ctx, "ALEX@x.io")
	require.NoError(t, err)
	assert.Equal(t, "e1", u.ID)

	_, err = svc.GetUser(ctx, "nobody")
	assert.ErrorIs(t, err, directory.ErrUserNotFound)
	assert.True(t, apperror.IsNotFound(err))
}

func TestProvisionRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	svc := newDirectory(t)

	_, err := svc.Provision(ctx, directory.User{ID: "x", Name: "X", Email: "x@x.io", Role: "ceo"})
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.Provision(ctx, directory.User{ID: "x", Name: "X", Email: "alex@x.io", Role: directory.RoleEmployee})
	assert.ErrorIs(t, err, directory.ErrUserExists)

	u, err := svc.Provision(ctx, directory.User{ID: "x", Name: "X", Email: "x@x.io", Role: directory.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, directory.StatusActive, u.Status)
}
