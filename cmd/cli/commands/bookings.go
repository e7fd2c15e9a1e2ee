package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/harbourline/venue-cli/pkg/core/ops"
)

// BookingsCmd creates the bookings command.
func BookingsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "bookings <date>",
		Short: "List bookings for a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bookings, err := app.Bookings.Fetch(app.Ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\n%d bookings:\n", len(bookings))
			for _, b := range bookings {
				line := fmt.Sprintf("  #%d %s %s - %s, party of %d", b.ID, b.Date, b.Time, b.Name, b.PartySize)
				if b.Cancelled {
					line += " [cancelled]"
				}
				fmt.Println(line)
			}
			fmt.Println()
			return nil
		},
	}
}

// AddBookingCmd creates the addBooking command.
func AddBookingCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "addBooking <date> <time> <name> <party_size>",
		Short: "Create a booking",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			partySize, err := strconv.Atoi(args[3])
			if err != nil {
				return fmt.Errorf("party_size must be a number: %w", err)
			}
			phone, _ := cmd.Flags().GetString("phone")
			notes, _ := cmd.Flags().GetString("notes")

			input := ops.NewBookingInput{
				Date:      args[0],
				Time:      args[1],
				Name:      args[2],
				PartySize: partySize,
				Phone:     phone,
				Notes:     notes,
			}
			if err := app.Bookings.Create(app.Ctx, input); err != nil {
				return err
			}
			fmt.Println("Booking created.")
			return nil
		},
	}
	cmd.Flags().String("phone", "", "Contact phone number")
	cmd.Flags().String("notes", "", "Free-text notes")
	return cmd
}

// CancelBookingCmd creates the cancelBooking command.
func CancelBookingCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "cancelBooking <booking_id>",
		Short: "Cancel a booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bookingID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("booking_id must be a number: %w", err)
			}
			if err := app.Bookings.Cancel(app.Ctx, bookingID); err != nil {
				return err
			}
			fmt.Println("Booking cancelled.")
			return nil
		},
	}
}
