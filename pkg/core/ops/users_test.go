package ops

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/harbourline/venue-cli/pkg/core/model"
)

type fakeUsersGateway struct {
	users      []model.User
	fetchCalls int
	created    []NewUserInput
	rolesSet   map[int64][]string
	forcedOut  []int64
}

func (f *fakeUsersGateway) FetchUsers(ctx context.Context) ([]model.User, error) {
	f.fetchCalls++
	return f.users, nil
}

func (f *fakeUsersGateway) CreateUser(ctx context.Context, fullName, email string, roles []string) error {
	f.created = append(f.created, NewUserInput{FullName: fullName, Email: email, Roles: roles})
	return nil
}

func (f *fakeUsersGateway) SetUserRoles(ctx context.Context, userID int64, roles []string) error {
	if f.rolesSet == nil {
		f.rolesSet = make(map[int64][]string)
	}
	f.rolesSet[userID] = roles
	return nil
}

func (f *fakeUsersGateway) ForceLogout(ctx context.Context, userID int64) error {
	f.forcedOut = append(f.forcedOut, userID)
	return nil
}

func TestUsers_CreateValidatesInput(t *testing.T) {
	gw := &fakeUsersGateway{}
	vm := NewUsers(gw, zap.NewNop())
	ctx := context.Background()

	cases := []NewUserInput{
		{Email: "a@example.com", Roles: []string{"Bartender"}},
		{FullName: "Alice Ash", Roles: []string{"Bartender"}},
		{FullName: "Alice Ash", Email: "not-an-email", Roles: []string{"Bartender"}},
		{FullName: "Alice Ash", Email: "a@example.com"},
	}
	for _, input := range cases {
		assert.Error(t, vm.Create(ctx, input))
	}
	assert.Empty(t, gw.created)

	valid := NewUserInput{FullName: "Alice Ash", Email: "a@example.com", Roles: []string{"Bartender"}}
	require.NoError(t, vm.Create(ctx, valid))
	require.Len(t, gw.created, 1)
	assert.Equal(t, 1, gw.fetchCalls)
}

func TestUsers_SetRoles(t *testing.T) {
	gw := &fakeUsersGateway{}
	vm := NewUsers(gw, zap.NewNop())
	ctx := context.Background()

	assert.Error(t, vm.SetRoles(ctx, 5, nil))
	assert.Empty(t, gw.rolesSet)

	require.NoError(t, vm.SetRoles(ctx, 5, []string{"Manager", "Bartender"}))
	assert.Equal(t, []string{"Manager", "Bartender"}, gw.rolesSet[5])
	assert.Equal(t, 1, gw.fetchCalls)
}

func TestUsers_ForceLogoutDoesNotRefetch(t *testing.T) {
	gw := &fakeUsersGateway{}
	vm := NewUsers(gw, zap.NewNop())

	require.NoError(t, vm.ForceLogout(context.Background(), 5))
	assert.Equal(t, []int64{5}, gw.forcedOut)
	// Forcing a logout changes nothing in the user list.
	assert.Zero(t, gw.fetchCalls)
}
