package events

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/wayfarerhq/wayfarer/adapter/cli"
	"github.com/wayfarerhq/wayfarer/internal/scheduling/domain"
)

var (
	addTitle       string
	addDescription string
	addStart       string
	addEnd         string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a calendar event",
	Long: `Add a calendar event to the schedule store.

Examples:
  wayfarer events add --title "Team standup" --start "2026-03-14T09:00" --end "2026-03-14T09:30"
  wayfarer events add --title "Lunch with Sam" --start "2026-03-14T12:00"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.Store == nil {
			fmt.Println("Adding events requires a database connection.")
			return nil
		}

		start, err := time.ParseInLocation("2006-01-02T15:04", addStart, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --start, use YYYY-MM-DDTHH:MM: %w", err)
		}

		rec := domain.CalendarEventRecord{
			ID:          uuid.New().String(),
			Title:       addTitle,
			Description: addDescription,
			Start:       start,
		}
		if addEnd != "" {
			end, err := time.ParseInLocation("2006-01-02T15:04", addEnd, time.Local)
			if err != nil {
				return fmt.Errorf("invalid --end, use YYYY-MM-DDTHH:MM: %w", err)
			}
			rec.End = &end
		}

		if err := app.Store.SaveEvent(cmd.Context(), app.CurrentUserID, rec); err != nil {
			return fmt.Errorf("failed to save event: %w", err)
		}
		fmt.Printf("Added event %q at %s\n", rec.Title, start.Format("Mon Jan 2 3:04 PM"))
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addTitle, "title", "", "event title")
	addCmd.Flags().StringVar(&addDescription, "description", "", "event description")
	addCmd.Flags().StringVar(&addStart, "start", "", "start time (YYYY-MM-DDTHH:MM)")
	addCmd.Flags().StringVar(&addEnd, "end", "", "end time (YYYY-MM-DDTHH:MM)")
	_ = addCmd.MarkFlagRequired("title")
	_ = addCmd.MarkFlagRequired("start")
}
