package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/harbourline/venue-cli/pkg/session"
)

// LoginCmd creates the login command.
func LoginCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "login <email>",
		Short: "Sign in and store the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email := args[0]

			fmt.Print("Password: ")
			password, err := readPassword()
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}

			result, err := app.Client.Login(app.Ctx, email, password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			if err := app.Sessions.Save(session.Session{Token: result.Token, Profile: result.Profile}); err != nil {
				return fmt.Errorf("signed in but failed to store session: %w", err)
			}

			app.Logger.Info("signed in",
				zap.Int64("user_id", result.Profile.ID),
				zap.Strings("roles", result.Profile.Roles))
			fmt.Printf("\nSigned in as %s (%s)\n", result.Profile.FullName, strings.Join(result.Profile.Roles, ", "))
			return nil
		},
	}
}

// LogoutCmd creates the logout command.
func LogoutCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Best effort server-side; the local session is cleared either way.
			if err := app.Client.Logout(app.Ctx); err != nil {
				app.Logger.Warn("server logout failed", zap.Error(err))
			}
			if err := app.Sessions.Clear(); err != nil {
				return fmt.Errorf("failed to clear session: %w", err)
			}
			fmt.Println("Signed out.")
			return nil
		},
	}
}

// WhoamiCmd creates the whoami command.
func WhoamiCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, ok := app.Sessions.Profile()
			if !ok {
				fmt.Println("Not signed in.")
				return nil
			}
			fmt.Printf("%s (id %d) - %s\n", profile.FullName, profile.ID, strings.Join(profile.Roles, ", "))
			return nil
		},
	}
}

// RegisterPushCmd creates the register-push command.
func RegisterPushCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "register-push <device_token>",
		Short: "Register a device token for push notifications",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Client.RegisterPushToken(app.Ctx, args[0]); err != nil {
				return fmt.Errorf("failed to register push token: %w", err)
			}
			fmt.Println("Push token registered.")
			return nil
		},
	}
}

func readPassword() (string, error) {
	if term.IsTerminal(int(syscall.Stdin)) {
		raw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
