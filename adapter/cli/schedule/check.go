package schedule

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wayfarerhq/wayfarer/adapter/cli"
	"github.com/wayfarerhq/wayfarer/internal/scheduling/application/queries"
	"github.com/wayfarerhq/wayfarer/internal/scheduling/domain"
)

var (
	checkType        string
	checkTime        string
	checkDestination string
	checkIntent      string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check a proposed booking time for calendar conflicts",
	Long: `Check whether a proposed flight, ride, or doctor booking collides
with anything already on your schedule.

Examples:
  wayfarer schedule check --type ride --time "2026-03-14T14:00" --intent "ride to the airport"
  wayfarer schedule check --type doctor --time "2026-03-14T10:00"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CheckConflictsHandler == nil {
			fmt.Println("Conflict checking requires a database connection.")
			return nil
		}

		requested, err := parseLocalTime(checkTime)
		if err != nil {
			return fmt.Errorf("invalid --time, use YYYY-MM-DDTHH:MM: %w", err)
		}

		kind := domain.ItemKind(checkType)
		switch kind {
		case domain.ItemKindFlight, domain.ItemKindRide, domain.ItemKindDoctor:
		default:
			return fmt.Errorf("unknown booking type %q (want flight, ride, or doctor)", checkType)
		}

		assessment, err := app.CheckConflictsHandler.Handle(cmd.Context(), queries.CheckConflictsQuery{
			UserID:        app.CurrentUserID,
			BookingType:   kind,
			RequestedTime: requested,
			Destination:   checkDestination,
			Intent:        checkIntent,
		})
		if err != nil {
			return fmt.Errorf("conflict check failed: %w", err)
		}

		printAssessment(assessment)
		return nil
	},
}

func printAssessment(a *domain.ConflictAssessment) {
	switch a.Outcome {
	case domain.OutcomeClear:
		fmt.Printf("No conflicts at %s.\n", a.OriginalTime.Format("Mon Jan 2 3:04 PM"))
	case domain.OutcomeCheckFailed:
		fmt.Println("Could not check for conflicts.")
	case domain.OutcomeConflict:
		for _, c := range a.Conflicts {
			fmt.Printf("[%s] %s\n", c.Severity, c.Description)
		}
		if a.AdjustedTime != nil {
			fmt.Printf("Suggested time: %s\n", a.AdjustedTime.Format("Mon Jan 2 3:04 PM"))
		}
		if a.Explanation != "" {
			fmt.Println(a.Explanation)
		}
	}
	for _, w := range a.Warnings {
		fmt.Printf("Note: %s\n", w)
	}
}

func parseLocalTime(value string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02T15:04", value, time.Local); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

func init() {
	checkCmd.Flags().StringVarP(&checkType, "type", "t", "", "booking type: flight, ride, or doctor")
	checkCmd.Flags().StringVar(&checkTime, "time", "", "requested time (YYYY-MM-DDTHH:MM)")
	checkCmd.Flags().StringVarP(&checkDestination, "destination", "d", "", "booking destination")
	checkCmd.Flags().StringVarP(&checkIntent, "intent", "i", "", "free-text intent from the chat")
	_ = checkCmd.MarkFlagRequired("type")
	_ = checkCmd.MarkFlagRequired("time")
}
