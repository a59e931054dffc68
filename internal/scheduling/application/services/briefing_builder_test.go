package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarerhq/wayfarer/internal/scheduling/domain"
)

func dayWindow(t *testing.T) domain.TimeRange {
	t.Helper()
	return domain.PeriodDay.Window(time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC))
}

func timedItem(t *testing.T, id string, start, end time.Time) domain.ScheduleItem {
	t.Helper()
	item, err := domain.NewScheduleItem(id, domain.ItemKindEvent, id, start, &end, "")
	require.NoError(t, err)
	return item
}

func TestBuild_EmptySummaries(t *testing.T) {
	builder := NewBriefingBuilder()
	now := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		period domain.BriefingPeriod
		want   string
	}{
		{domain.PeriodDay, "You have no scheduled events for today."},
		{domain.PeriodWeek, "You have no scheduled events for the week."},
		{domain.PeriodMonth, "You have no scheduled events for the month."},
		{domain.PeriodYear, "You have no scheduled events for the year."},
	}

	for _, tc := range tests {
		t.Run(string(tc.period), func(t *testing.T) {
			briefing := builder.Build(tc.period, tc.period.Window(now), nil)
			assert.Equal(t, tc.want, briefing.Summary)
			assert.Empty(t, briefing.Items)
			assert.Empty(t, briefing.BusyPeriods)
			assert.Empty(t, briefing.Gaps)
		})
	}
}

func TestBuild_MergesCloseItemsIntoBusyPeriods(t *testing.T) {
	builder := NewBriefingBuilder()
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	items := []domain.ScheduleItem{
		// 9:00-10:00 and 10:20-11:00 merge (20-minute gap); the 13:00
		// item starts a new block.
		timedItem(t, "Standup", base, base.Add(time.Hour)),
		timedItem(t, "Design review", base.Add(80*time.Minute), base.Add(2*time.Hour)),
		timedItem(t, "Dentist", base.Add(4*time.Hour), base.Add(5*time.Hour)),
	}

	briefing := builder.Build(domain.PeriodDay, dayWindow(t), items)

	require.Len(t, briefing.BusyPeriods, 2)
	assert.Equal(t, base, briefing.BusyPeriods[0].Start)
	assert.Equal(t, base.Add(2*time.Hour), briefing.BusyPeriods[0].End)
	assert.Equal(t, "Standup, Design review", briefing.BusyPeriods[0].Description)
	assert.Equal(t, "Dentist", briefing.BusyPeriods[1].Description)
}

func TestBuild_ExactThresholdGapStillMerges(t *testing.T) {
	builder := NewBriefingBuilder()
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	items := []domain.ScheduleItem{
		timedItem(t, "A", base, base.Add(time.Hour)),
		timedItem(t, "B", base.Add(90*time.Minute), base.Add(2*time.Hour)),
	}

	briefing := builder.Build(domain.PeriodDay, dayWindow(t), items)

	require.Len(t, briefing.BusyPeriods, 1)
	assert.Equal(t, "A, B", briefing.BusyPeriods[0].Description)
}

func TestBuild_DetectsGaps(t *testing.T) {
	builder := NewBriefingBuilder()
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	items := []domain.ScheduleItem{
		// Two-hour gap from 10:00 to 12:00; the 45-minute gap after the
		// second item is below the reporting floor.
		timedItem(t, "Morning sync", base, base.Add(time.Hour)),
		timedItem(t, "Lunch", base.Add(3*time.Hour), base.Add(4*time.Hour)),
		timedItem(t, "1:1", base.Add(4*time.Hour+45*time.Minute), base.Add(5*time.Hour)),
	}

	briefing := builder.Build(domain.PeriodDay, dayWindow(t), items)

	require.Len(t, briefing.Gaps, 1)
	assert.Equal(t, base.Add(time.Hour), briefing.Gaps[0].Start)
	assert.Equal(t, base.Add(3*time.Hour), briefing.Gaps[0].End)
	assert.Equal(t, 120, briefing.Gaps[0].DurationMin)
	assert.Contains(t, briefing.Summary, "You have free time from 10:00 AM to 12:00 PM.")
}

func TestBuild_NoGapsForMonthAndYear(t *testing.T) {
	builder := NewBriefingBuilder()
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	items := []domain.ScheduleItem{
		timedItem(t, "A", base, base.Add(time.Hour)),
		timedItem(t, "B", base.AddDate(0, 0, 3), base.AddDate(0, 0, 3).Add(time.Hour)),
	}

	for _, period := range []domain.BriefingPeriod{domain.PeriodMonth, domain.PeriodYear} {
		t.Run(string(period), func(t *testing.T) {
			briefing := builder.Build(period, period.Window(base), items)
			assert.Empty(t, briefing.Gaps)
		})
	}
}

func TestBuild_DaySummaryListsItemsInOrder(t *testing.T) {
	builder := NewBriefingBuilder()
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	// Deliberately out of order; the summary must be chronological.
	items := []domain.ScheduleItem{
		timedItem(t, "Lunch", base.Add(3*time.Hour), base.Add(4*time.Hour)),
		timedItem(t, "Standup", base, base.Add(30*time.Minute)),
	}

	briefing := builder.Build(domain.PeriodDay, dayWindow(t), items)

	assert.Contains(t, briefing.Summary, "You have 2 events scheduled for today.")
	assert.Contains(t, briefing.Summary, "Standup at 9:00 AM, then Lunch at 12:00 PM")
}

func TestBuild_SingleEventSummary(t *testing.T) {
	builder := NewBriefingBuilder()
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	briefing := builder.Build(domain.PeriodDay, dayWindow(t),
		[]domain.ScheduleItem{timedItem(t, "Standup", base, base.Add(30*time.Minute))})

	assert.Contains(t, briefing.Summary, "You have 1 event scheduled for today.")
}

func TestBuild_WeekSummaryTruncates(t *testing.T) {
	builder := NewBriefingBuilder()
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	var items []domain.ScheduleItem
	for i := 0; i < 7; i++ {
		start := base.AddDate(0, 0, i)
		items = append(items, timedItem(t, start.Format("Jan 2"), start, start.Add(time.Hour)))
	}

	briefing := builder.Build(domain.PeriodWeek, domain.PeriodWeek.Window(base), items)

	assert.Contains(t, briefing.Summary, "You have 7 events scheduled for the week.")
	assert.Contains(t, briefing.Summary, "+2 more.")
}

func TestEmptyBriefing_UsesApologySummary(t *testing.T) {
	builder := NewBriefingBuilder()
	window := dayWindow(t)

	briefing := builder.EmptyBriefing(domain.PeriodDay, window)

	assert.Equal(t, ApologySummary, briefing.Summary)
	assert.Equal(t, window.Start, briefing.Start)
	assert.Equal(t, window.End, briefing.End)
	assert.NotNil(t, briefing.Items)
	assert.Empty(t, briefing.Items)
}
