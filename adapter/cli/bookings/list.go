package bookings

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wayfarerhq/wayfarer/adapter/cli"
)

var listLimit int

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List upcoming bookings",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.Source == nil {
			fmt.Println("Listing bookings requires a database connection.")
			return nil
		}

		records, err := app.Source.UpcomingBookings(cmd.Context(), app.CurrentUserID, listLimit)
		if err != nil {
			return fmt.Errorf("failed to list bookings: %w", err)
		}
		if len(records) == 0 {
			fmt.Println("No upcoming bookings.")
			return nil
		}

		for _, rec := range records {
			when := "(no date)"
			if at, ok := rec.PrimaryTime(); ok {
				when = at.Format("Mon Jan 2 3:04 PM")
			}
			line := fmt.Sprintf("%-8s %-30s %s", rec.BookingType, rec.Title, when)
			if rec.Destination != "" {
				line += "  -> " + rec.Destination
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "maximum bookings to list")
}
