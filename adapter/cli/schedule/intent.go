package schedule

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wayfarerhq/wayfarer/adapter/cli"
	"github.com/wayfarerhq/wayfarer/internal/scheduling/application/queries"
)

var intentCmd = &cobra.Command{
	Use:   "intent <message>",
	Short: "Classify a chat message as a briefing request",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.DetectIntentHandler == nil {
			fmt.Println("Intent detection is unavailable.")
			return nil
		}

		message := strings.Join(args, " ")
		intent := app.DetectIntentHandler.Handle(queries.DetectIntentQuery{Message: message})
		if !intent.IsBriefing {
			fmt.Println("Not a briefing request.")
			return nil
		}
		fmt.Printf("Briefing request for period: %s\n", intent.Period)
		return nil
	},
}
