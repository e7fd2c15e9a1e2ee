package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var consolidatedViewTypes = []string{"boh", "foh", "managers"}

// ConsolidatedCmd creates the consolidated command.
func ConsolidatedCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "consolidated <boh|foh|managers>",
		Short: "Show the whole category's schedule for a week",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			viewType := strings.ToLower(args[0])
			valid := false
			for _, v := range consolidatedViewTypes {
				if viewType == v {
					valid = true
					break
				}
			}
			if !valid {
				return fmt.Errorf("view type must be one of %s", strings.Join(consolidatedViewTypes, ", "))
			}

			weekOffset, _ := cmd.Flags().GetInt("week")
			view, err := app.Schedule.FetchConsolidated(app.Ctx, viewType, weekOffset)
			if err != nil {
				return err
			}

			dates := view.Dates()
			fmt.Printf("\n%s schedule, week %+d:\n\n", strings.ToUpper(viewType), weekOffset)
			for _, user := range view.Users {
				fmt.Println(user.FullName)
				for _, date := range dates {
					shifts := view.ShiftsFor(user.ID, date)
					if len(shifts) == 0 {
						continue
					}
					parts := make([]string, 0, len(shifts))
					for _, s := range shifts {
						parts = append(parts, string(s.Type))
					}
					fmt.Printf("  %s  %s\n", date, strings.Join(parts, ", "))
				}
			}
			fmt.Println()
			return nil
		},
	}
	cmd.Flags().IntP("week", "w", 0, "Week offset from the current week")
	return cmd
}
