package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harbourline/venue-cli/pkg/core/schedule"
)

// ManageVolunteeredCmd creates the manageVolunteered command.
func ManageVolunteeredCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manageVolunteered",
		Short: "Review relinquished shifts and their volunteers (managers)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.RequireRole(roleManager) {
				return fmt.Errorf("this command requires the %s role", roleManager)
			}
			weekOffset, _ := cmd.Flags().GetInt("week")

			view, err := app.Schedule.FetchManageVolunteered(app.Ctx, weekOffset)
			if err != nil {
				return err
			}

			fmt.Printf("\nActionable (%d):\n", len(view.Actionable))
			for _, shift := range view.Actionable {
				fmt.Printf("  #%d %s %s relinquished by %s", shift.ID, shift.Date, shift.Shift, shift.Requester.FullName)
				if shift.Reason != "" {
					fmt.Printf(" (%s)", shift.Reason)
				}
				fmt.Println()

				if len(shift.Volunteers) == 0 {
					fmt.Println("     no volunteers yet; only cancel is available")
					continue
				}
				names := make([]string, 0, len(shift.Volunteers))
				for _, v := range shift.Volunteers {
					name := v.FullName
					if shift.IsEligible(v.ID) {
						name += "*"
					}
					names = append(names, fmt.Sprintf("%s (%d)", name, v.ID))
				}
				fmt.Printf("     volunteers: %s  (* = eligible)\n", strings.Join(names, ", "))
				if !shift.CanAssign() {
					fmt.Println("     none eligible; only cancel is available")
				}
			}

			fmt.Printf("\nHistory (%d):\n", len(view.History))
			for _, shift := range view.History {
				fmt.Printf("  #%d %s %s - %s %s\n",
					shift.ID, shift.Date, shift.Shift, shift.Status, toneMark(shift.Status.Tone()))
			}
			fmt.Println()
			return nil
		},
	}
	cmd.Flags().IntP("week", "w", 0, "Week offset from the current week")
	return cmd
}

// DecideVolunteeredCmd creates the decideVolunteered command.
func DecideVolunteeredCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decideVolunteered <shift_id> <assign|cancel>",
		Short: "Assign a volunteered shift or cancel the cycle (managers)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.RequireRole(roleManager) {
				return fmt.Errorf("this command requires the %s role", roleManager)
			}
			shiftID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("shift_id must be a number: %w", err)
			}

			var action schedule.VolunteerAction
			switch strings.ToLower(args[1]) {
			case "assign":
				action = schedule.VolunteerAssign
			case "cancel":
				action = schedule.VolunteerCancel
			default:
				return fmt.Errorf("action must be assign or cancel, got %q", args[1])
			}

			volunteerFlag, _ := cmd.Flags().GetInt64("volunteer")
			var volunteer *int64
			if volunteerFlag > 0 {
				volunteer = &volunteerFlag
			}

			if err := app.Schedule.DecideVolunteered(app.Ctx, shiftID, action, volunteer); err != nil {
				return err
			}
			fmt.Printf("Volunteered shift #%d: %s\n", shiftID, action)
			return nil
		},
	}
	cmd.Flags().Int64("volunteer", 0, "Eligible volunteer to assign the shift to (required for assign)")
	return cmd
}
