package ops

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/harbourline/venue-cli/pkg/core/model"
)

// UsersGateway is what the user-admin view-model needs from the transport
// layer.
type UsersGateway interface {
	FetchUsers(ctx context.Context) ([]model.User, error)
	CreateUser(ctx context.Context, fullName, email string, roles []string) error
	SetUserRoles(ctx context.Context, userID int64, roles []string) error
	ForceLogout(ctx context.Context, userID int64) error
}

// NewUserInput is a create request, validated before the call goes out.
type NewUserInput struct {
	FullName string   `validate:"required"`
	Email    string   `validate:"required,email"`
	Roles    []string `validate:"required,min=1"`
}

// UsersViewModel caches the staff account list for the admin views.
type UsersViewModel struct {
	recorder
	gateway UsersGateway
	logger  *zap.Logger

	mu    sync.Mutex
	users []model.User
}

// NewUsers builds a user-admin view-model.
func NewUsers(gateway UsersGateway, logger *zap.Logger) *UsersViewModel {
	return &UsersViewModel{gateway: gateway, logger: logger}
}

// Fetch loads the staff accounts, replacing the cache.
func (vm *UsersViewModel) Fetch(ctx context.Context) ([]model.User, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.fetchLocked(ctx)
}

func (vm *UsersViewModel) fetchLocked(ctx context.Context) ([]model.User, error) {
	users, err := vm.gateway.FetchUsers(ctx)
	if err != nil {
		return nil, vm.record(err)
	}
	vm.users = users
	vm.record(nil)
	return users, nil
}

// Users returns the cached list.
func (vm *UsersViewModel) Users() []model.User {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.users
}

// Create adds a staff account, then re-fetches.
func (vm *UsersViewModel) Create(ctx context.Context, input NewUserInput) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if err := validate.Struct(input); err != nil {
		return vm.record(fmt.Errorf("invalid user: %w", err))
	}
	if err := vm.gateway.CreateUser(ctx, input.FullName, input.Email, input.Roles); err != nil {
		return vm.record(err)
	}
	vm.logger.Info("user created", zap.String("email", input.Email))

	if _, err := vm.fetchLocked(ctx); err != nil {
		return err
	}
	return vm.record(nil)
}

// SetRoles replaces a user's role set, then re-fetches.
func (vm *UsersViewModel) SetRoles(ctx context.Context, userID int64, roles []string) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if len(roles) == 0 {
		return vm.record(fmt.Errorf("at least one role is required"))
	}
	if err := vm.gateway.SetUserRoles(ctx, userID, roles); err != nil {
		return vm.record(err)
	}
	if _, err := vm.fetchLocked(ctx); err != nil {
		return err
	}
	return vm.record(nil)
}

// ForceLogout invalidates another user's sessions server-side. The target
// sees it as a session expiry on their next request.
func (vm *UsersViewModel) ForceLogout(ctx context.Context, userID int64) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if err := vm.gateway.ForceLogout(ctx, userID); err != nil {
		return vm.record(err)
	}
	vm.logger.Info("forced logout", zap.Int64("user_id", userID))
	return vm.record(nil)
}
