// Package schedule contains the schedule command group: conflict checks,
// briefings, and intent classification.
package schedule

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for schedule operations.
var Cmd = &cobra.Command{
	Use:   "schedule",
	Short: "Check conflicts and review your schedule",
}

func init() {
	Cmd.AddCommand(checkCmd)
	Cmd.AddCommand(briefingCmd)
	Cmd.AddCommand(intentCmd)
}
