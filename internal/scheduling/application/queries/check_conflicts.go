package queries

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wayfarerhq/wayfarer/internal/scheduling/application/services"
	"github.com/wayfarerhq/wayfarer/internal/scheduling/domain"
	"github.com/wayfarerhq/wayfarer/internal/shared/infrastructure/eventbus"
)

const (
	// upcomingBookingsLimit caps how many bookings a conflict check pulls.
	upcomingBookingsLimit = 50

	// eventFetchWindow is how far around the requested time calendar
	// events are fetched. The widest rule (the crowding warning) looks a
	// day out in both directions.
	eventFetchWindow = 24 * time.Hour
)

// CheckFailedWarning is the warning attached when the schedule could not
// be consulted.
const CheckFailedWarning = "Could not check for schedule conflicts; your calendar may be unavailable."

// CheckConflictsQuery contains the parameters for a conflict check.
type CheckConflictsQuery struct {
	UserID        string
	BookingType   domain.ItemKind
	RequestedTime time.Time
	Destination   string
	Intent        string
}

// CheckConflictsHandler handles the CheckConflictsQuery.
type CheckConflictsHandler struct {
	source    domain.ScheduleSource
	detector  *services.ConflictDetector
	publisher eventbus.Publisher
	logger    *slog.Logger
}

// NewCheckConflictsHandler creates a new CheckConflictsHandler.
func NewCheckConflictsHandler(
	source domain.ScheduleSource,
	detector *services.ConflictDetector,
	publisher eventbus.Publisher,
	logger *slog.Logger,
) *CheckConflictsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CheckConflictsHandler{
		source:    source,
		detector:  detector,
		publisher: publisher,
		logger:    logger,
	}
}

// Handle fetches the user's bookings and calendar events, runs the
// conflict rules, and publishes an event when a conflict is found.
//
// A fetch failure never surfaces as an error: the booking flow must not be
// blocked by the engine, so the result degrades to a CheckFailed
// assessment with a warning instead.
func (h *CheckConflictsHandler) Handle(ctx context.Context, query CheckConflictsQuery) (*domain.ConflictAssessment, error) {
	var (
		bookings []domain.BookingRecord
		events   []domain.CalendarEventRecord
	)

	// Both fetches are read-only; issue them concurrently and join.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		bookings, err = h.source.UpcomingBookings(gctx, query.UserID, upcomingBookingsLimit)
		return err
	})
	g.Go(func() error {
		var err error
		events, err = h.source.CalendarEvents(gctx,
			query.UserID,
			query.RequestedTime.Add(-eventFetchWindow),
			query.RequestedTime.Add(eventFetchWindow),
		)
		return err
	})

	if err := g.Wait(); err != nil {
		h.logger.Warn("conflict check degraded, schedule fetch failed",
			"user_id", query.UserID,
			"booking_type", query.BookingType,
			"error", err,
		)
		assessment := domain.FailedAssessment(query.RequestedTime, CheckFailedWarning)
		return &assessment, nil
	}

	items := append(services.NormalizeBookings(bookings), services.NormalizeEvents(events)...)

	assessment := h.detector.Detect(services.ConflictRequest{
		UserID:        query.UserID,
		BookingType:   query.BookingType,
		RequestedTime: query.RequestedTime,
		Destination:   query.Destination,
		Intent:        query.Intent,
	}, items)

	if assessment.HasConflict() && h.publisher != nil {
		event := domain.NewConflictDetected(query.UserID, query.BookingType, assessment.Conflicts[0])
		if err := eventbus.PublishDomainEvent(ctx, h.publisher, event); err != nil {
			h.logger.Warn("failed to publish conflict event", "error", err)
		}
	}

	return &assessment, nil
}
