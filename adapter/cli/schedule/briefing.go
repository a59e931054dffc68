package schedule

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wayfarerhq/wayfarer/adapter/cli"
	"github.com/wayfarerhq/wayfarer/internal/scheduling/application/queries"
	"github.com/wayfarerhq/wayfarer/internal/scheduling/domain"
)

var briefingCmd = &cobra.Command{
	Use:   "briefing [day|week|month|year]",
	Short: "Show a natural-language schedule briefing",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.GetBriefingHandler == nil {
			fmt.Println("Briefings require a database connection.")
			return nil
		}

		period := domain.PeriodDay
		if len(args) == 1 {
			var err error
			period, err = domain.ParseBriefingPeriod(args[0])
			if err != nil {
				return err
			}
		}

		briefing, err := app.GetBriefingHandler.Handle(cmd.Context(), queries.GetBriefingQuery{
			UserID: app.CurrentUserID,
			Period: period,
		})
		if err != nil {
			return fmt.Errorf("failed to build briefing: %w", err)
		}

		fmt.Printf("Briefing for %s (%s to %s)\n",
			briefing.Period.Phrase(),
			briefing.Start.Format("Jan 2"),
			briefing.End.Format("Jan 2"),
		)
		fmt.Println(strings.Repeat("=", 60))
		fmt.Println(briefing.Summary)

		if len(briefing.BusyPeriods) > 0 {
			fmt.Println("\nBusy periods:")
			for _, bp := range briefing.BusyPeriods {
				fmt.Printf("  %s - %s  %s\n",
					bp.Start.Format("Mon 3:04 PM"),
					bp.End.Format("3:04 PM"),
					bp.Description,
				)
			}
		}
		if len(briefing.Gaps) > 0 {
			fmt.Println("\nFree time:")
			for _, gap := range briefing.Gaps {
				fmt.Printf("  %s - %s  (%d minutes)\n",
					gap.Start.Format("Mon 3:04 PM"),
					gap.End.Format("3:04 PM"),
					gap.DurationMin,
				)
			}
		}
		return nil
	},
}
