package cli

import (
	"github.com/wayfarerhq/wayfarer/internal/app"
	"github.com/wayfarerhq/wayfarer/internal/scheduling/application/queries"
	"github.com/wayfarerhq/wayfarer/internal/scheduling/domain"
)

// App holds the CLI application dependencies.
type App struct {
	// Query handlers
	CheckConflictsHandler *queries.CheckConflictsHandler
	GetBriefingHandler    *queries.GetBriefingHandler
	DetectIntentHandler   *queries.DetectIntentHandler

	// Data access for seeding and listing
	Source domain.ScheduleSource
	Store  app.ScheduleStore

	// CurrentUserID scopes all commands to one user.
	CurrentUserID string
}

var currentApp *App

// SetApp installs the application dependencies for the command tree.
func SetApp(a *App) {
	currentApp = a
}

// GetApp returns the installed application, or nil when running without
// a container.
func GetApp() *App {
	return currentApp
}
