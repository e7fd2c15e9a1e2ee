package commands

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/harbourline/venue-cli/pkg/core/ops"
)

// LeaveCmd creates the leave command.
func LeaveCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "leave",
		Short: "List your leave requests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			requests, err := app.Leave.Fetch(app.Ctx)
			if err != nil {
				return err
			}

			fmt.Printf("\n%d leave requests:\n", len(requests))
			for _, r := range requests {
				line := fmt.Sprintf("  #%d %s to %s - %s", r.ID, r.StartDate, r.EndDate, r.Status)
				if r.DocumentName != "" {
					line += " (doc: " + r.DocumentName + ")"
				}
				fmt.Println(line)
			}
			fmt.Println()
			return nil
		},
	}
}

// RequestLeaveCmd creates the requestLeave command.
func RequestLeaveCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "requestLeave <start_date> <end_date> <reason>",
		Short: "Submit a leave request, optionally with a supporting document",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ops.LeaveInput{StartDate: args[0], EndDate: args[1], Reason: args[2]}

			var doc *ops.LeaveDocument
			if docPath, _ := cmd.Flags().GetString("document"); docPath != "" {
				file, err := os.Open(docPath)
				if err != nil {
					return fmt.Errorf("failed to open document: %w", err)
				}
				defer file.Close()

				contentType := mime.TypeByExtension(filepath.Ext(docPath))
				if contentType == "" {
					contentType = "application/octet-stream"
				}
				doc = &ops.LeaveDocument{
					Filename:    filepath.Base(docPath),
					ContentType: contentType,
					Reader:      file,
				}
			}

			if err := app.Leave.Submit(app.Ctx, input, doc); err != nil {
				return err
			}
			fmt.Println("Leave request submitted.")
			return nil
		},
	}
	cmd.Flags().String("document", "", "Path to a supporting document to upload")
	return cmd
}
