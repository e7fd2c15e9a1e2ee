package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harbourline/venue-cli/pkg/core/ops"
)

// UsersCmd creates the users command.
func UsersCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List staff accounts (managers)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.RequireRole(roleManager) {
				return fmt.Errorf("this command requires the %s role", roleManager)
			}
			users, err := app.Users.Fetch(app.Ctx)
			if err != nil {
				return err
			}

			fmt.Printf("\n%d users:\n", len(users))
			for _, u := range users {
				status := ""
				if !u.Active {
					status = " [inactive]"
				}
				fmt.Printf("  #%d %s <%s> - %s%s\n", u.ID, u.FullName, u.Email, strings.Join(u.Roles, ", "), status)
			}
			fmt.Println()
			return nil
		},
	}
}

// AddUserCmd creates the addUser command.
func AddUserCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "addUser <full_name> <email> <role,role...>",
		Short: "Create a staff account (managers)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.RequireRole(roleManager) {
				return fmt.Errorf("this command requires the %s role", roleManager)
			}
			input := ops.NewUserInput{
				FullName: args[0],
				Email:    args[1],
				Roles:    strings.Split(args[2], ","),
			}
			if err := app.Users.Create(app.Ctx, input); err != nil {
				return err
			}
			fmt.Println("User created.")
			return nil
		},
	}
}

// SetRolesCmd creates the setRoles command.
func SetRolesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "setRoles <user_id> <role,role...>",
		Short: "Replace a user's roles (managers)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.RequireRole(roleManager) {
				return fmt.Errorf("this command requires the %s role", roleManager)
			}
			userID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("user_id must be a number: %w", err)
			}
			if err := app.Users.SetRoles(app.Ctx, userID, strings.Split(args[1], ",")); err != nil {
				return err
			}
			fmt.Println("Roles updated.")
			return nil
		},
	}
}

// ForceLogoutCmd creates the forceLogout command.
func ForceLogoutCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "forceLogout <user_id>",
		Short: "Invalidate another user's sessions (managers)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.RequireRole(roleManager) {
				return fmt.Errorf("this command requires the %s role", roleManager)
			}
			userID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("user_id must be a number: %w", err)
			}
			if err := app.Users.ForceLogout(app.Ctx, userID); err != nil {
				return err
			}
			fmt.Println("User sessions invalidated; they will be signed out on their next request.")
			return nil
		},
	}
}
