package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/harbourline/venue-cli/cmd/cli/commands"
	"github.com/harbourline/venue-cli/internal/config"
	"github.com/harbourline/venue-cli/pkg/api"
	"github.com/harbourline/venue-cli/pkg/core/ops"
	"github.com/harbourline/venue-cli/pkg/core/schedule"
	"github.com/harbourline/venue-cli/pkg/session"
	"github.com/harbourline/venue-cli/pkg/utils/logging"
)

var (
	env     string
	verbose bool
	app     = &commands.AppContext{}
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "venue-cli",
		Short: "Venue CLI - Manage rotas, swaps, stock and staff for a venue",
		Long:  `A CLI tool for venue staff and managers: view your rota, request and approve shift swaps, volunteer for relinquished shifts, and run day-to-day venue admin.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose console logging")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.LoginCmd(app))
	rootCmd.AddCommand(commands.LogoutCmd(app))
	rootCmd.AddCommand(commands.WhoamiCmd(app))
	rootCmd.AddCommand(commands.RegisterPushCmd(app))

	rootCmd.AddCommand(commands.MyScheduleCmd(app))
	rootCmd.AddCommand(commands.RequestSwapCmd(app))
	rootCmd.AddCommand(commands.RelinquishCmd(app))
	rootCmd.AddCommand(commands.ManageSwapsCmd(app))
	rootCmd.AddCommand(commands.DecideSwapCmd(app))
	rootCmd.AddCommand(commands.ManageVolunteeredCmd(app))
	rootCmd.AddCommand(commands.DecideVolunteeredCmd(app))
	rootCmd.AddCommand(commands.RequiredStaffCmd(app))
	rootCmd.AddCommand(commands.SetRequiredStaffCmd(app))
	rootCmd.AddCommand(commands.ConsolidatedCmd(app))

	rootCmd.AddCommand(commands.InventoryCmd(app))
	rootCmd.AddCommand(commands.CountCmd(app))
	rootCmd.AddCommand(commands.SubmitCountsCmd(app))
	rootCmd.AddCommand(commands.LogsCmd(app))
	rootCmd.AddCommand(commands.LogEntryCmd(app))

	rootCmd.AddCommand(commands.BookingsCmd(app))
	rootCmd.AddCommand(commands.AddBookingCmd(app))
	rootCmd.AddCommand(commands.CancelBookingCmd(app))

	rootCmd.AddCommand(commands.LeaveCmd(app))
	rootCmd.AddCommand(commands.RequestLeaveCmd(app))

	rootCmd.AddCommand(commands.WarningsCmd(app))
	rootCmd.AddCommand(commands.IssueWarningCmd(app))
	rootCmd.AddCommand(commands.AckWarningCmd(app))
	rootCmd.AddCommand(commands.AnnouncementsCmd(app))
	rootCmd.AddCommand(commands.PostAnnouncementCmd(app))
	rootCmd.AddCommand(commands.ReadAnnouncementCmd(app))

	rootCmd.AddCommand(commands.UsersCmd(app))
	rootCmd.AddCommand(commands.AddUserCmd(app))
	rootCmd.AddCommand(commands.SetRolesCmd(app))
	rootCmd.AddCommand(commands.ForceLogoutCmd(app))

	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, session store and the API client.
func initApp() error {
	var err error
	app.Ctx = context.Background()

	// A .env alongside the binary can carry VENUE_API_BASE_URL and friends.
	godotenv.Load()

	app.Logger, err = logging.InitLogger(env, verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	app.Logger.Info("Loading configuration")
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully")

	sessionPath, err := session.DefaultPath()
	if err != nil {
		return fmt.Errorf("failed to resolve session path: %w", err)
	}
	app.Sessions = session.NewStore(sessionPath)

	app.Client = api.New(app.Cfg.APIBaseURL, app.Sessions, app.Logger)

	app.Schedule, err = schedule.New(app.Client, app.Logger, app.Cfg.Closures)
	if err != nil {
		return fmt.Errorf("failed to build schedule view model: %w", err)
	}

	app.Inventory = ops.NewInventory(app.Client, app.Logger)
	app.Bookings = ops.NewBookings(app.Client, app.Logger)
	app.Logs = ops.NewLogs(app.Client, app.Logger)
	app.Leave = ops.NewLeave(app.Client, app.Logger)
	app.Warnings = ops.NewWarnings(app.Client, app.Logger)
	app.Announcements = ops.NewAnnouncements(app.Client, app.Logger)
	app.Users = ops.NewUsers(app.Client, app.Logger)
	app.Logger.Info("Application initialized")

	return nil
}
