package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// WarningsCmd creates the warnings command.
func WarningsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "warnings",
		Short: "List HR warnings visible to you",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			warnings, err := app.Warnings.Fetch(app.Ctx)
			if err != nil {
				return err
			}

			fmt.Printf("\n%d warnings:\n", len(warnings))
			for _, w := range warnings {
				ack := ""
				if w.Acknowledged {
					ack = " [acknowledged]"
				}
				fmt.Printf("  #%d %s %s: %s%s\n", w.ID, w.Date, w.StaffName, w.Reason, ack)
			}
			fmt.Println()
			return nil
		},
	}
}

// IssueWarningCmd creates the issueWarning command.
func IssueWarningCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "issueWarning <staff_id> <reason>",
		Short: "Issue an HR warning (managers)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.RequireRole(roleManager) {
				return fmt.Errorf("this command requires the %s role", roleManager)
			}
			staffID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("staff_id must be a number: %w", err)
			}
			if err := app.Warnings.Issue(app.Ctx, staffID, args[1]); err != nil {
				return err
			}
			fmt.Println("Warning issued.")
			return nil
		},
	}
}

// AckWarningCmd creates the ackWarning command.
func AckWarningCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "ackWarning <warning_id>",
		Short: "Acknowledge a warning issued to you",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			warningID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("warning_id must be a number: %w", err)
			}
			if err := app.Warnings.Acknowledge(app.Ctx, warningID); err != nil {
				return err
			}
			fmt.Println("Warning acknowledged.")
			return nil
		},
	}
}

// AnnouncementsCmd creates the announcements command.
func AnnouncementsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "announcements",
		Short: "List venue announcements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			announcements, err := app.Announcements.Fetch(app.Ctx)
			if err != nil {
				return err
			}

			fmt.Printf("\n%d announcements:\n", len(announcements))
			for _, a := range announcements {
				marker := "*"
				if a.ReadByMe {
					marker = " "
				}
				fmt.Printf(" %s #%d %s [%s] %s\n", marker, a.ID, a.Date, a.Author, a.Title)
			}
			fmt.Println()
			return nil
		},
	}
}

// PostAnnouncementCmd creates the postAnnouncement command.
func PostAnnouncementCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "postAnnouncement <title> <body>",
		Short: "Publish an announcement (managers)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.RequireRole(roleManager) {
				return fmt.Errorf("this command requires the %s role", roleManager)
			}
			if err := app.Announcements.Post(app.Ctx, args[0], args[1]); err != nil {
				return err
			}
			fmt.Println("Announcement posted.")
			return nil
		},
	}
}

// ReadAnnouncementCmd creates the readAnnouncement command.
func ReadAnnouncementCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "readAnnouncement <announcement_id>",
		Short: "Mark an announcement as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			announcementID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("announcement_id must be a number: %w", err)
			}
			if err := app.Announcements.MarkRead(app.Ctx, announcementID); err != nil {
				return err
			}
			fmt.Println("Marked as read.")
			return nil
		},
	}
}
