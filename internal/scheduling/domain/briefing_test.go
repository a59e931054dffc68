package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBriefingPeriod(t *testing.T) {
	tests := []struct {
		input   string
		want    BriefingPeriod
		wantErr bool
	}{
		{"day", PeriodDay, false},
		{"week", PeriodWeek, false},
		{"month", PeriodMonth, false},
		{"year", PeriodYear, false},
		{"today", PeriodDay, false},
		{"fortnight", "", true},
		{"", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseBriefingPeriod(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestBriefingPeriod_Phrase(t *testing.T) {
	assert.Equal(t, "today", PeriodDay.Phrase())
	assert.Equal(t, "the week", PeriodWeek.Phrase())
	assert.Equal(t, "the month", PeriodMonth.Phrase())
	assert.Equal(t, "the year", PeriodYear.Phrase())
}

func TestBriefingPeriod_Window(t *testing.T) {
	// Mid-afternoon anchor; windows must snap to the start of the day.
	now := time.Date(2026, 3, 14, 15, 30, 0, 0, time.UTC)
	dayStart := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		period BriefingPeriod
		end    time.Time
	}{
		{PeriodDay, dayStart.AddDate(0, 0, 1).Add(-time.Millisecond)},
		{PeriodWeek, dayStart.AddDate(0, 0, 7).Add(-time.Millisecond)},
		{PeriodMonth, dayStart.AddDate(0, 1, 0).Add(-time.Millisecond)},
		{PeriodYear, dayStart.AddDate(1, 0, 0).Add(-time.Millisecond)},
	}

	for _, tc := range tests {
		t.Run(string(tc.period), func(t *testing.T) {
			window := tc.period.Window(now)
			assert.Equal(t, dayStart, window.Start)
			assert.Equal(t, tc.end, window.End)
		})
	}
}

func TestBriefingPeriod_WindowContainsEarlierToday(t *testing.T) {
	now := time.Date(2026, 3, 14, 15, 30, 0, 0, time.UTC)
	window := PeriodDay.Window(now)

	// An event this morning still belongs to today's briefing.
	assert.True(t, window.Contains(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)))
	assert.False(t, window.Contains(time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)))
}
