package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harbourline/venue-cli/pkg/core/model"
	"github.com/harbourline/venue-cli/pkg/core/ops"
)

func newLogInput(kind, date string, productID int64, quantity, amount float64, note string) ops.LogInput {
	return ops.LogInput{
		Kind:      model.LogKind(kind),
		Date:      date,
		ProductID: productID,
		Quantity:  quantity,
		Amount:    amount,
		Note:      note,
	}
}

// InventoryCmd creates the inventory command.
func InventoryCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "inventory [location_id]",
		Short: "List counted products at a location",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			locationID := app.Cfg.DefaultLocationID
			if len(args) > 0 {
				parsed, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("location_id must be a number: %w", err)
				}
				locationID = parsed
			}
			if locationID == 0 {
				return fmt.Errorf("no location given and no defaultLocationID configured")
			}

			products, err := app.Inventory.Fetch(app.Ctx, locationID)
			if err != nil {
				return err
			}

			fmt.Printf("\n%d products:\n", len(products))
			for _, p := range products {
				fmt.Printf("  #%d %-30s %8.2f %-6s @ %.2f\n", p.ID, p.Name, p.LastQty, p.Unit, p.Price)
			}
			fmt.Println()
			return nil
		},
	}
}

// CountCmd creates the count command: pencil an entry, then submit the
// batch with submitCounts.
func CountCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "count <product_id> <quantity>",
		Short: "Pencil in a count for a product (local until submitCounts)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			productID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("product_id must be a number: %w", err)
			}
			quantity, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("quantity must be a number: %w", err)
			}

			var price *float64
			if priceFlag, _ := cmd.Flags().GetString("price"); priceFlag != "" {
				parsed, err := strconv.ParseFloat(priceFlag, 64)
				if err != nil {
					return fmt.Errorf("price must be a number: %w", err)
				}
				price = &parsed
			}

			app.Inventory.PencilCount(productID, quantity, price)
			fmt.Printf("Penciled: product %d -> %.2f (%d entries pending)\n",
				productID, quantity, len(app.Inventory.PendingEntries()))
			return nil
		},
	}
	cmd.Flags().String("price", "", "New price for the product (optional)")
	return cmd
}

// SubmitCountsCmd creates the submitCounts command.
func SubmitCountsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "submitCounts",
		Short: "Submit all penciled counts for the current location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pending := app.Inventory.PendingEntries()
			if err := app.Inventory.Submit(app.Ctx); err != nil {
				return err
			}
			fmt.Printf("Submitted %d counts.\n", len(pending))
			return nil
		},
	}
}

// LogsCmd creates the logs command.
func LogsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs <date>",
		Short: "List sales/delivery entries for a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.Logs.Fetch(app.Ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("\n%d entries:\n", len(entries))
			for _, e := range entries {
				line := fmt.Sprintf("  #%d %-8s %-25s x%.2f", e.ID, e.Kind, e.Product, e.Quantity)
				if e.Amount > 0 {
					line += fmt.Sprintf("  %.2f", e.Amount)
				}
				if e.Note != "" {
					line += "  (" + e.Note + ")"
				}
				fmt.Println(line)
			}
			fmt.Println()
			return nil
		},
	}
	return cmd
}

// LogEntryCmd creates the logEntry command.
func LogEntryCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logEntry <sale|delivery> <date> <product_id> <quantity>",
		Short: "Record a sale or delivery entry",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			productID, err := strconv.ParseInt(args[2], 10, 64)
			if err != nil {
				return fmt.Errorf("product_id must be a number: %w", err)
			}
			quantity, err := strconv.ParseFloat(args[3], 64)
			if err != nil {
				return fmt.Errorf("quantity must be a number: %w", err)
			}
			amount, _ := cmd.Flags().GetFloat64("amount")
			note, _ := cmd.Flags().GetString("note")

			input := newLogInput(strings.ToLower(args[0]), args[1], productID, quantity, amount, note)
			if err := app.Logs.Submit(app.Ctx, input); err != nil {
				return err
			}
			fmt.Println("Entry recorded.")
			return nil
		},
	}
	cmd.Flags().Float64("amount", 0, "Monetary amount for the entry")
	cmd.Flags().String("note", "", "Free-text note")
	return cmd
}
