// Package events contains the calendar event command group.
package events

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for calendar events.
var Cmd = &cobra.Command{
	Use:   "events",
	Short: "Manage calendar events",
}

func init() {
	Cmd.AddCommand(addCmd)
}
