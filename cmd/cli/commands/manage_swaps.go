package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harbourline/venue-cli/pkg/core/model"
	"github.com/harbourline/venue-cli/pkg/core/schedule"
)

const roleManager = "Manager"

// ManageSwapsCmd creates the manageSwaps command.
func ManageSwapsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manageSwaps",
		Short: "Review pending swap requests and swap history (managers)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.RequireRole(roleManager) {
				return fmt.Errorf("this command requires the %s role", roleManager)
			}
			weekOffset, _ := cmd.Flags().GetInt("week")

			view, err := app.Schedule.FetchManageSwaps(app.Ctx, weekOffset)
			if err != nil {
				return err
			}

			fmt.Printf("\nPending swaps (%d):\n", len(view.Pending))
			for _, swap := range view.Pending {
				fmt.Printf("  #%d %s %s %s requested by %s%s\n",
					swap.ID, swap.Date, swap.Shift, swap.Part,
					swap.Requester.FullName, coverNote(swap))
			}

			fmt.Printf("\nHistory (%d):\n", len(view.History))
			for _, swap := range view.History {
				fmt.Printf("  #%d %s %s - %s %s\n",
					swap.ID, swap.Date, swap.Shift, swap.Status, toneMark(swap.Status.Tone()))
			}
			fmt.Println()
			return nil
		},
	}
	cmd.Flags().IntP("week", "w", 0, "Week offset from the current week")
	return cmd
}

func coverNote(swap model.SwapRecord) string {
	if swap.HasPinnedCover() {
		return " (cover: " + swap.DesiredCoverName + ")"
	}
	return " (open request)"
}

func toneMark(tone model.Tone) string {
	switch tone {
	case model.TonePositive:
		return "+"
	case model.ToneNegative:
		return "-"
	default:
		return "."
	}
}

// DecideSwapCmd creates the decideSwap command.
func DecideSwapCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decideSwap <swap_id> <approve|deny>",
		Short: "Approve or deny a pending swap (managers)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.RequireRole(roleManager) {
				return fmt.Errorf("this command requires the %s role", roleManager)
			}
			swapID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("swap_id must be a number: %w", err)
			}

			var action schedule.SwapAction
			switch strings.ToLower(args[1]) {
			case "approve":
				action = schedule.SwapApprove
			case "deny":
				action = schedule.SwapDeny
			default:
				return fmt.Errorf("action must be approve or deny, got %q", args[1])
			}

			covererFlag, _ := cmd.Flags().GetInt64("coverer")
			var coverer *int64
			if covererFlag > 0 {
				coverer = &covererFlag
			}

			if err := app.Schedule.DecideSwap(app.Ctx, swapID, action, coverer); err != nil {
				return err
			}
			fmt.Printf("Swap #%d: %s\n", swapID, action)
			return nil
		},
	}
	cmd.Flags().Int64("coverer", 0, "Staff id who covers (required to approve an open request)")
	return cmd
}
