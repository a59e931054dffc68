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

// briefingBookingsLimit caps how many bookings a briefing pulls; a year
// view can legitimately cover more records than a conflict check.
const briefingBookingsLimit = 200

// BriefingCache stores rendered briefings for a short while. Lookups and
// stores are best-effort; implementations must not fail the briefing.
type BriefingCache interface {
	Get(ctx context.Context, userID string, period domain.BriefingPeriod) (*domain.ScheduleBriefing, bool)
	Set(ctx context.Context, userID string, briefing *domain.ScheduleBriefing)
}

// GetBriefingQuery contains the parameters for a schedule briefing.
type GetBriefingQuery struct {
	UserID string
	Period domain.BriefingPeriod
}

// GetBriefingHandler handles the GetBriefingQuery.
type GetBriefingHandler struct {
	source    domain.ScheduleSource
	builder   *services.BriefingBuilder
	cache     BriefingCache
	publisher eventbus.Publisher
	logger    *slog.Logger
	now       func() time.Time
}

// NewGetBriefingHandler creates a new GetBriefingHandler. Cache and
// publisher may be nil.
func NewGetBriefingHandler(
	source domain.ScheduleSource,
	builder *services.BriefingBuilder,
	cache BriefingCache,
	publisher eventbus.Publisher,
	logger *slog.Logger,
) *GetBriefingHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &GetBriefingHandler{
		source:    source,
		builder:   builder,
		cache:     cache,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Handle builds the briefing for the query's period. Fetch failures
// degrade to an empty briefing with the apology summary; a briefing
// request never errors out to the chat layer.
func (h *GetBriefingHandler) Handle(ctx context.Context, query GetBriefingQuery) (*domain.ScheduleBriefing, error) {
	if h.cache != nil {
		if briefing, ok := h.cache.Get(ctx, query.UserID, query.Period); ok {
			h.logger.Debug("briefing served from cache",
				"user_id", query.UserID,
				"period", query.Period,
			)
			return briefing, nil
		}
	}

	window := query.Period.Window(h.now())

	var (
		bookings []domain.BookingRecord
		events   []domain.CalendarEventRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		bookings, err = h.source.UpcomingBookings(gctx, query.UserID, briefingBookingsLimit)
		return err
	})
	g.Go(func() error {
		var err error
		events, err = h.source.CalendarEvents(gctx, query.UserID, window.Start, window.End)
		return err
	})

	if err := g.Wait(); err != nil {
		h.logger.Warn("briefing degraded, schedule fetch failed",
			"user_id", query.UserID,
			"period", query.Period,
			"error", err,
		)
		return h.builder.EmptyBriefing(query.Period, window), nil
	}

	items := make([]domain.ScheduleItem, 0, len(bookings)+len(events))
	for _, item := range services.NormalizeBookings(bookings) {
		if window.Contains(item.Start) {
			items = append(items, item)
		}
	}
	items = append(items, services.NormalizeEvents(events)...)

	briefing := h.builder.Build(query.Period, window, items)

	if h.cache != nil {
		h.cache.Set(ctx, query.UserID, briefing)
	}
	if h.publisher != nil {
		event := domain.NewBriefingGenerated(query.UserID, briefing)
		if err := eventbus.PublishDomainEvent(ctx, h.publisher, event); err != nil {
			h.logger.Warn("failed to publish briefing event", "error", err)
		}
	}

	return briefing, nil
}
