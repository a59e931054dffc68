package resilience

import (
	"context"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/wayfarerhq/wayfarer/internal/scheduling/domain"
)

// BreakerConfig tunes the circuit breakers guarding schedule fetches.
type BreakerConfig struct {
	// MaxRequests is the number of probe requests allowed in half-open state.
	MaxRequests uint32
	// Interval is the cyclic period of the closed state.
	Interval time.Duration
	// Timeout is the period of the open state.
	Timeout time.Duration
	// FailureThreshold trips the breaker after this many consecutive failures.
	FailureThreshold uint32
}

// DefaultBreakerConfig returns settings matched to a flaky-but-usually-fast
// data store: trip after 5 consecutive failures, probe again after 30s.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
	}
}

// BreakerSource wraps a domain.ScheduleSource with circuit breakers, one
// per call family so a failing bookings store doesn't block event reads.
// An open breaker surfaces as a fetch error, which the query layer already
// degrades gracefully.
type BreakerSource struct {
	inner    domain.ScheduleSource
	bookings *gobreaker.CircuitBreaker[[]domain.BookingRecord]
	events   *gobreaker.CircuitBreaker[[]domain.CalendarEventRecord]
}

// NewBreakerSource wraps source with circuit breakers.
func NewBreakerSource(source domain.ScheduleSource, cfg BreakerConfig, logger *slog.Logger) *BreakerSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &BreakerSource{
		inner:    source,
		bookings: newBreaker[[]domain.BookingRecord]("schedule-source-bookings", cfg, logger),
		events:   newBreaker[[]domain.CalendarEventRecord]("schedule-source-events", cfg, logger),
	}
}

func newBreaker[T any](name string, cfg BreakerConfig, logger *slog.Logger) *gobreaker.CircuitBreaker[T] {
	return gobreaker.NewCircuitBreaker[T](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})
}

// UpcomingBookings delegates through the bookings breaker.
func (s *BreakerSource) UpcomingBookings(ctx context.Context, userID string, limit int) ([]domain.BookingRecord, error) {
	return s.bookings.Execute(func() ([]domain.BookingRecord, error) {
		return s.inner.UpcomingBookings(ctx, userID, limit)
	})
}

// CalendarEvents delegates through the events breaker.
func (s *BreakerSource) CalendarEvents(ctx context.Context, userID string, start, end time.Time) ([]domain.CalendarEventRecord, error) {
	return s.events.Execute(func() ([]domain.CalendarEventRecord, error) {
		return s.inner.CalendarEvents(ctx, userID, start, end)
	})
}
