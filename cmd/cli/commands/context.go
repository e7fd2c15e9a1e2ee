package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/harbourline/venue-cli/internal/config"
	"github.com/harbourline/venue-cli/pkg/api"
	"github.com/harbourline/venue-cli/pkg/core/ops"
	"github.com/harbourline/venue-cli/pkg/core/schedule"
	"github.com/harbourline/venue-cli/pkg/session"
)

// AppContext holds the wired application dependencies shared by all
// commands.
type AppContext struct {
	Ctx      context.Context
	Cfg      *config.Config
	Logger   *zap.Logger
	Client   *api.Client
	Sessions *session.Store

	Schedule      *schedule.ViewModel
	Inventory     *ops.InventoryViewModel
	Bookings      *ops.BookingsViewModel
	Logs          *ops.LogsViewModel
	Leave         *ops.LeaveViewModel
	Warnings      *ops.WarningsViewModel
	Announcements *ops.AnnouncementsViewModel
	Users         *ops.UsersViewModel
}

// RequireRole checks the cached profile for a role before a gated command
// issues any call. This is a round-trip saver, not a security boundary;
// the server re-validates.
func (app *AppContext) RequireRole(role string) bool {
	profile, ok := app.Sessions.Profile()
	return ok && profile.HasRole(role)
}
