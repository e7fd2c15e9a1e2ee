package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/harbourline/venue-cli/pkg/core/model"
	"github.com/harbourline/venue-cli/pkg/core/schedule"
)

// MyScheduleCmd creates the mySchedule command.
func MyScheduleCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mySchedule",
		Short: "Show your shifts for a week (Tue-Sun)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			weekOffset, _ := cmd.Flags().GetInt("week")

			view, err := app.Schedule.FetchAssignedShifts(app.Ctx, weekOffset)
			if err != nil {
				return err
			}
			printWeek(app, view)
			return nil
		},
	}
	cmd.Flags().IntP("week", "w", 0, "Week offset from the current week (0=this week, 1=next, -1=last)")
	return cmd
}

func printWeek(app *AppContext, view *schedule.AssignedWeekView) {
	fmt.Printf("\nWeek at offset %+d:\n\n", view.Offset)
	for _, date := range view.DisplayDates() {
		line := date
		if label, closed := view.ClosedDates[date]; closed {
			line += " [" + label + "]"
		}
		fmt.Println(line)

		shifts := view.ShiftsForDate(date)
		if len(shifts) == 0 {
			fmt.Println("  (day off)")
			continue
		}
		for _, shift := range shifts {
			fmt.Printf("  #%d %s", shift.ID, shift.Type)
			if shift.StartTime != "" && shift.EndTime != "" {
				fmt.Printf(" %s-%s", shift.StartTime, shift.EndTime)
			}
			if shift.Status != model.StatusAssigned {
				fmt.Printf(" (%s)", shift.Status)
			}
			fmt.Println()
		}
	}
	fmt.Println()
}

// RequestSwapCmd creates the requestSwap command.
func RequestSwapCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "requestSwap <schedule_id>",
		Short: "Request a swap for one of your assigned shifts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scheduleID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("schedule_id must be a number: %w", err)
			}

			part, _ := cmd.Flags().GetString("part")
			coverFlag, _ := cmd.Flags().GetInt64("cover")
			var cover *int64
			if coverFlag > 0 {
				cover = &coverFlag
			}

			if err := app.Schedule.RequestSwap(app.Ctx, scheduleID, cover, model.SwapPart(part)); err != nil {
				return err
			}
			fmt.Println("Swap requested. The shift now shows as Pending until a manager decides.")
			return nil
		},
	}
	cmd.Flags().String("part", string(model.SwapFull), "Which part to swap: full, day, or night (day/night only for Double shifts)")
	cmd.Flags().Int64("cover", 0, "Staff id of the desired coverer (omit to leave the request open)")
	return cmd
}

// RelinquishCmd creates the relinquish command.
func RelinquishCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "relinquish <schedule_id>",
		Short: "Give up an assigned shift to the volunteer pool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scheduleID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("schedule_id must be a number: %w", err)
			}
			reason, _ := cmd.Flags().GetString("reason")

			if err := app.Schedule.RelinquishShift(app.Ctx, scheduleID, reason); err != nil {
				return err
			}
			fmt.Println("Shift relinquished. It is now open for volunteers.")
			return nil
		},
	}
	cmd.Flags().String("reason", "", "Optional reason shown to managers and volunteers")
	return cmd
}
