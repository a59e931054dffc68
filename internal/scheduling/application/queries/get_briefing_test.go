package queries

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarerhq/wayfarer/internal/scheduling/application/services"
	"github.com/wayfarerhq/wayfarer/internal/scheduling/domain"
)

type mockBriefingCache struct {
	stored map[string]*domain.ScheduleBriefing
}

func newMockBriefingCache() *mockBriefingCache {
	return &mockBriefingCache{stored: make(map[string]*domain.ScheduleBriefing)}
}

func (m *mockBriefingCache) key(userID string, period domain.BriefingPeriod) string {
	return userID + ":" + string(period)
}

func (m *mockBriefingCache) Get(_ context.Context, userID string, period domain.BriefingPeriod) (*domain.ScheduleBriefing, bool) {
	briefing, ok := m.stored[m.key(userID, period)]
	return briefing, ok
}

func (m *mockBriefingCache) Set(_ context.Context, userID string, briefing *domain.ScheduleBriefing) {
	m.stored[m.key(userID, briefing.Period)] = briefing
}

func newBriefingHandler(source domain.ScheduleSource, cache BriefingCache, publisher *mockPublisher, now time.Time) *GetBriefingHandler {
	handler := NewGetBriefingHandler(source, services.NewBriefingBuilder(), cache, publisher, nil)
	handler.now = func() time.Time { return now }
	return handler
}

func TestGetBriefing_DayView(t *testing.T) {
	now := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)
	depart := time.Date(2026, 3, 14, 14, 0, 0, 0, time.UTC)
	eventStart := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	source := &mockScheduleSource{
		bookings: []domain.BookingRecord{{
			ID:          "f1",
			BookingType: domain.ItemKindFlight,
			Title:       "Flight UA-441",
			Status:      domain.BookingStatusConfirmed,
			DepartDate:  &depart,
		}},
		events: []domain.CalendarEventRecord{{
			ID:    "e1",
			Title: "Standup",
			Start: eventStart,
		}},
	}
	publisher := &mockPublisher{}
	handler := newBriefingHandler(source, nil, publisher, now)

	briefing, err := handler.Handle(context.Background(), GetBriefingQuery{
		UserID: "user-1",
		Period: domain.PeriodDay,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.PeriodDay, briefing.Period)
	require.Len(t, briefing.Items, 2)
	assert.Equal(t, "e1", briefing.Items[0].ID)
	assert.Equal(t, "f1", briefing.Items[1].ID)
	assert.Contains(t, briefing.Summary, "You have 2 events scheduled for today.")

	require.Len(t, publisher.routingKeys, 1)
	assert.Equal(t, domain.RoutingKeyBriefingGenerated, publisher.routingKeys[0])
}

func TestGetBriefing_FiltersBookingsOutsideWindow(t *testing.T) {
	now := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)
	nextWeek := now.AddDate(0, 0, 10)

	source := &mockScheduleSource{
		bookings: []domain.BookingRecord{{
			ID:          "far",
			BookingType: domain.ItemKindFlight,
			Title:       "Flight next week",
			Status:      domain.BookingStatusConfirmed,
			DepartDate:  &nextWeek,
		}},
	}
	handler := newBriefingHandler(source, nil, &mockPublisher{}, now)

	briefing, err := handler.Handle(context.Background(), GetBriefingQuery{
		UserID: "user-1",
		Period: domain.PeriodDay,
	})

	require.NoError(t, err)
	assert.Empty(t, briefing.Items)
	assert.Equal(t, "You have no scheduled events for today.", briefing.Summary)
}

func TestGetBriefing_FetchFailureDegrades(t *testing.T) {
	now := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)
	source := &mockScheduleSource{bookingsErr: errors.New("connection refused")}
	handler := newBriefingHandler(source, nil, &mockPublisher{}, now)

	briefing, err := handler.Handle(context.Background(), GetBriefingQuery{
		UserID: "user-1",
		Period: domain.PeriodWeek,
	})

	// The chat layer gets an apologetic empty briefing, never an error.
	require.NoError(t, err)
	assert.Equal(t, services.ApologySummary, briefing.Summary)
	assert.Empty(t, briefing.Items)
	assert.Equal(t, domain.PeriodWeek, briefing.Period)
}

func TestGetBriefing_ServedFromCache(t *testing.T) {
	now := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)
	cache := newMockBriefingCache()
	cached := &domain.ScheduleBriefing{Period: domain.PeriodDay, Summary: "cached"}
	cache.Set(context.Background(), "user-1", cached)

	// The source errors; a cache hit must short-circuit before any fetch.
	source := &mockScheduleSource{bookingsErr: errors.New("should not be called")}
	handler := newBriefingHandler(source, cache, &mockPublisher{}, now)

	briefing, err := handler.Handle(context.Background(), GetBriefingQuery{
		UserID: "user-1",
		Period: domain.PeriodDay,
	})

	require.NoError(t, err)
	assert.Same(t, cached, briefing)
}

func TestGetBriefing_StoresInCache(t *testing.T) {
	now := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)
	cache := newMockBriefingCache()
	handler := newBriefingHandler(&mockScheduleSource{}, cache, &mockPublisher{}, now)

	_, err := handler.Handle(context.Background(), GetBriefingQuery{
		UserID: "user-1",
		Period: domain.PeriodMonth,
	})

	require.NoError(t, err)
	stored, ok := cache.Get(context.Background(), "user-1", domain.PeriodMonth)
	require.True(t, ok)
	assert.Equal(t, domain.PeriodMonth, stored.Period)
}

func TestDetectIntent_Handle(t *testing.T) {
	handler := NewDetectIntentHandler(services.NewIntentDetector())

	intent := handler.Handle(DetectIntentQuery{Message: "what's my schedule this week"})
	assert.True(t, intent.IsBriefing)
	assert.Equal(t, domain.PeriodWeek, intent.Period)

	intent = handler.Handle(DetectIntentQuery{Message: "book a table for two"})
	assert.False(t, intent.IsBriefing)
}
