// Package bookings contains the booking record command group used to
// seed and inspect the schedule the engine checks against.
package bookings

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for booking records.
var Cmd = &cobra.Command{
	Use:   "bookings",
	Short: "Manage booking records",
}

func init() {
	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(listCmd)
}
