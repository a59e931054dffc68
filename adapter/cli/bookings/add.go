package bookings

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/wayfarerhq/wayfarer/adapter/cli"
	"github.com/wayfarerhq/wayfarer/internal/scheduling/domain"
)

var (
	addType        string
	addTitle       string
	addTime        string
	addDestination string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a booking record",
	Long: `Add a confirmed booking to the schedule store.

Examples:
  wayfarer bookings add --type flight --title "UA 212 to Denver" --time "2026-03-14T14:00" --destination "Denver"
  wayfarer bookings add --type doctor --title "Dr. Okafor" --time "2026-03-15T10:30"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.Store == nil {
			fmt.Println("Adding bookings requires a database connection.")
			return nil
		}

		at, err := time.ParseInLocation("2006-01-02T15:04", addTime, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --time, use YYYY-MM-DDTHH:MM: %w", err)
		}

		rec := domain.BookingRecord{
			ID:          uuid.New().String(),
			BookingType: domain.ItemKind(addType),
			Title:       addTitle,
			Status:      domain.BookingStatusConfirmed,
			Destination: addDestination,
		}
		switch rec.BookingType {
		case domain.ItemKindFlight:
			rec.DepartDate = &at
		case domain.ItemKindRide:
			rec.ScheduledTime = &at
		case domain.ItemKindDoctor:
			rec.AppointmentTime = &at
		default:
			return fmt.Errorf("unknown booking type %q (want flight, ride, or doctor)", addType)
		}

		if err := app.Store.SaveBooking(cmd.Context(), app.CurrentUserID, rec); err != nil {
			return fmt.Errorf("failed to save booking: %w", err)
		}
		fmt.Printf("Added %s %q at %s\n", rec.BookingType, rec.Title, at.Format("Mon Jan 2 3:04 PM"))
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addType, "type", "t", "", "booking type: flight, ride, or doctor")
	addCmd.Flags().StringVar(&addTitle, "title", "", "booking title")
	addCmd.Flags().StringVar(&addTime, "time", "", "booking time (YYYY-MM-DDTHH:MM)")
	addCmd.Flags().StringVarP(&addDestination, "destination", "d", "", "destination (flights)")
	_ = addCmd.MarkFlagRequired("type")
	_ = addCmd.MarkFlagRequired("title")
	_ = addCmd.MarkFlagRequired("time")
}
