package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harbourline/venue-cli/pkg/core/model"
)

// RequiredStaffCmd creates the requiredStaff command.
func RequiredStaffCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "requiredStaff <role>",
		Short: "Show per-date min/max staffing for a role (managers)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.RequireRole(roleManager) {
				return fmt.Errorf("this command requires the %s role", roleManager)
			}
			role := args[0]
			weekOffset, _ := cmd.Flags().GetInt("week")

			view, err := app.Schedule.FetchRequiredStaff(app.Ctx, role, weekOffset)
			if err != nil {
				return err
			}

			fmt.Printf("\nRequired %s staffing, week %+d:\n", role, weekOffset)
			for _, date := range view.DisplayDates {
				if item, ok := view.Existing[date]; ok {
					fmt.Printf("  %s  min %d  max %d\n", date, item.Min, item.Max)
				} else {
					fmt.Printf("  %s  (not set)\n", date)
				}
			}
			fmt.Println()
			return nil
		},
	}
	cmd.Flags().IntP("week", "w", 0, "Week offset from the current week")
	return cmd
}

// SetRequiredStaffCmd creates the setRequiredStaff command. Requirements
// are given as date=min:max pairs and must cover every display date from
// the preceding requiredStaff fetch.
func SetRequiredStaffCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "setRequiredStaff <date=min:max> [date=min:max ...]",
		Short: "Save per-date min/max staffing for the last fetched role/week (managers)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.RequireRole(roleManager) {
				return fmt.Errorf("this command requires the %s role", roleManager)
			}

			items := make([]model.RequiredStaffItem, 0, len(args))
			for _, arg := range args {
				item, err := parseRequirement(arg)
				if err != nil {
					return err
				}
				items = append(items, item)
			}

			if err := app.Schedule.SubmitRequiredStaff(app.Ctx, items); err != nil {
				return err
			}
			fmt.Printf("Saved staffing requirements for %d dates.\n", len(items))
			return nil
		},
	}
}

func parseRequirement(arg string) (model.RequiredStaffItem, error) {
	date, counts, ok := strings.Cut(arg, "=")
	if !ok {
		return model.RequiredStaffItem{}, fmt.Errorf("expected date=min:max, got %q", arg)
	}
	minStr, maxStr, ok := strings.Cut(counts, ":")
	if !ok {
		return model.RequiredStaffItem{}, fmt.Errorf("expected date=min:max, got %q", arg)
	}
	minVal, err := strconv.Atoi(minStr)
	if err != nil {
		return model.RequiredStaffItem{}, fmt.Errorf("invalid min in %q: %w", arg, err)
	}
	maxVal, err := strconv.Atoi(maxStr)
	if err != nil {
		return model.RequiredStaffItem{}, fmt.Errorf("invalid max in %q: %w", arg, err)
	}
	return model.RequiredStaffItem{Date: date, Min: minVal, Max: maxVal}, nil
}
