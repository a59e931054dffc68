package domain

import (
	"fmt"
	"time"
)

// BriefingPeriod selects the window a schedule briefing covers.
type BriefingPeriod string

const (
	PeriodDay   BriefingPeriod = "day"
	PeriodWeek  BriefingPeriod = "week"
	PeriodMonth BriefingPeriod = "month"
	PeriodYear  BriefingPeriod = "year"
)

// ParseBriefingPeriod validates a period string.
func ParseBriefingPeriod(s string) (BriefingPeriod, error) {
	switch BriefingPeriod(s) {
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodYear:
		return BriefingPeriod(s), nil
	case "today":
		return PeriodDay, nil
	default:
		return "", fmt.Errorf("unknown briefing period %q", s)
	}
}

// Phrase returns the period as used in summary sentences.
func (p BriefingPeriod) Phrase() string {
	switch p {
	case PeriodDay:
		return "today"
	case PeriodWeek:
		return "the week"
	case PeriodMonth:
		return "the month"
	case PeriodYear:
		return "the year"
	default:
		return string(p)
	}
}

// Window computes the [start, end] range the period covers, anchored at
// now's day. Day runs to end of today; the longer periods run from the
// start of today to end of day N-1 units out.
func (p BriefingPeriod) Window(now time.Time) TimeRange {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var end time.Time
	switch p {
	case PeriodWeek:
		end = dayStart.AddDate(0, 0, 7)
	case PeriodMonth:
		end = dayStart.AddDate(0, 1, 0)
	case PeriodYear:
		end = dayStart.AddDate(1, 0, 0)
	default:
		end = dayStart.AddDate(0, 0, 1)
	}
	// End-of-day boundary: one millisecond before midnight.
	end = end.Add(-time.Millisecond)
	return TimeRange{Start: dayStart, End: end}
}

// BusyPeriod is a run of schedule items merged into one block because the
// gaps between them were within the merge threshold.
type BusyPeriod struct {
	Start       time.Time
	End         time.Time
	Description string
}

// Gap is a free interval between consecutive schedule items long enough
// to surface to the user as available time.
type Gap struct {
	Start       time.Time
	End         time.Time
	DurationMin int
}

// ScheduleBriefing is a rendered overview of a period of the schedule.
type ScheduleBriefing struct {
	Period      BriefingPeriod
	Start       time.Time
	End         time.Time
	Items       []ScheduleItem
	Summary     string
	BusyPeriods []BusyPeriod
	Gaps        []Gap
}

// BriefingIntent is the result of classifying a chat message.
type BriefingIntent struct {
	IsBriefing bool
	Period     BriefingPeriod
}
