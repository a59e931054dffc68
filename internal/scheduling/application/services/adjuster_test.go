package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarerhq/wayfarer/internal/scheduling/domain"
)

func makeItem(t *testing.T, id string, kind domain.ItemKind, start time.Time, end *time.Time) domain.ScheduleItem {
	t.Helper()
	item, err := domain.NewScheduleItem(id, kind, id, start, end, "")
	require.NoError(t, err)
	return item
}

func TestAdjuster_FindSlot_PreferredIsFree(t *testing.T) {
	adjuster := NewAdjuster(domain.DefaultBufferPolicy())
	preferred := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	slot, ok := adjuster.FindSlot(preferred, 45*time.Minute, nil)

	require.True(t, ok)
	assert.Equal(t, preferred, slot)
}

func TestAdjuster_FindSlot_JumpsPastConflict(t *testing.T) {
	adjuster := NewAdjuster(domain.DefaultBufferPolicy())
	preferred := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	// Existing event 10:30 to 11:00 blocks a 45-minute slot at 10:00.
	eventEnd := time.Date(2026, 3, 14, 11, 0, 0, 0, time.UTC)
	items := []domain.ScheduleItem{
		makeItem(t, "standup", domain.ItemKindEvent, eventEnd.Add(-30*time.Minute), &eventEnd),
	}

	slot, ok := adjuster.FindSlot(preferred, 45*time.Minute, items)

	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 14, 11, 30, 0, 0, time.UTC), slot)
}

func TestAdjuster_FindSlot_SkipsSeveralItems(t *testing.T) {
	adjuster := NewAdjuster(domain.DefaultBufferPolicy())
	base := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	// Back-to-back hour events at 10, 12 and 13; the 11:30 probe collides
	// with the 12:00 event, so the slot lands after the 14:00 end.
	var items []domain.ScheduleItem
	for _, offset := range []time.Duration{0, 2 * time.Hour, 3 * time.Hour} {
		end := base.Add(offset + time.Hour)
		items = append(items, makeItem(t, end.Format("15:04"), domain.ItemKindEvent, base.Add(offset), &end))
	}

	slot, ok := adjuster.FindSlot(base, 45*time.Minute, items)

	require.True(t, ok)
	assert.Equal(t, base.Add(4*time.Hour+30*time.Minute), slot)
	assert.False(t, slot.Before(base))
	window := domain.TimeRange{Start: slot, End: slot.Add(45 * time.Minute)}
	for _, item := range items {
		assert.False(t, window.Overlaps(item.Range()), "slot overlaps %s", item.ID)
	}
}

func TestAdjuster_FindSlot_Exhausted(t *testing.T) {
	adjuster := NewAdjuster(domain.DefaultBufferPolicy())
	base := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	// A wall of abutting two-hour events longer than the probe limit.
	var items []domain.ScheduleItem
	for i := 0; i < MaxSlotProbes+2; i++ {
		start := base.Add(time.Duration(i) * 2 * time.Hour)
		end := start.Add(2 * time.Hour)
		items = append(items, makeItem(t, end.Format("Jan2 15:04"), domain.ItemKindEvent, start, &end))
	}

	_, ok := adjuster.FindSlot(base, 45*time.Minute, items)

	assert.False(t, ok)
}

func TestAdjuster_IdealRideTime(t *testing.T) {
	adjuster := NewAdjuster(domain.DefaultBufferPolicy())
	departure := time.Date(2026, 3, 14, 14, 0, 0, 0, time.UTC)

	// Domestic: one hour travel plus 90 minutes check-in.
	assert.Equal(t, time.Date(2026, 3, 14, 11, 30, 0, 0, time.UTC), adjuster.IdealRideTime(departure, false))
	// International: one hour travel plus three hours check-in.
	assert.Equal(t, time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC), adjuster.IdealRideTime(departure, true))
}
