package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/wayfarerhq/wayfarer/internal/scheduling/domain"
)

const (
	// busyMergeThreshold merges items into one busy period when the gap
	// between them is at most this long.
	busyMergeThreshold = 30 * time.Minute

	// minGapDuration is the shortest free interval worth reporting.
	minGapDuration = time.Hour

	// longGapDuration is the threshold for calling a gap out in the
	// day-view summary sentence.
	longGapDuration = 2 * time.Hour

	// maxSummaryItems caps how many items the summary spells out.
	maxSummaryItems = 5
)

// emptySummary is the fixed sentence used when nothing is scheduled.
func emptySummary(period domain.BriefingPeriod) string {
	return fmt.Sprintf("You have no scheduled events for %s.", period.Phrase())
}

// ApologySummary is the fixed summary used when a briefing could not be
// assembled at all.
const ApologySummary = "Sorry, I couldn't put together your schedule briefing right now. Please try again in a moment."

// BriefingBuilder renders schedule briefings from normalized items. It is
// stateless and safe for concurrent use.
type BriefingBuilder struct{}

// NewBriefingBuilder creates a briefing builder.
func NewBriefingBuilder() *BriefingBuilder {
	return &BriefingBuilder{}
}

// Build assembles the briefing for a period window from the items inside
// it. Items are sorted, merged into busy periods, and scanned for gaps
// (day and week views only; longer periods are too coarse for gaps to
// mean anything).
func (b *BriefingBuilder) Build(period domain.BriefingPeriod, window domain.TimeRange, items []domain.ScheduleItem) *domain.ScheduleBriefing {
	sorted := make([]domain.ScheduleItem, len(items))
	copy(sorted, items)
	domain.SortItems(sorted)

	briefing := &domain.ScheduleBriefing{
		Period:      period,
		Start:       window.Start,
		End:         window.End,
		Items:       sorted,
		BusyPeriods: mergeBusyPeriods(sorted),
	}
	if period == domain.PeriodDay || period == domain.PeriodWeek {
		briefing.Gaps = detectGaps(sorted)
	}
	briefing.Summary = b.summarize(period, sorted, briefing.Gaps)
	return briefing
}

// EmptyBriefing returns the degraded briefing used when the schedule could
// not be read.
func (b *BriefingBuilder) EmptyBriefing(period domain.BriefingPeriod, window domain.TimeRange) *domain.ScheduleBriefing {
	return &domain.ScheduleBriefing{
		Period:      period,
		Start:       window.Start,
		End:         window.End,
		Items:       []domain.ScheduleItem{},
		Summary:     ApologySummary,
		BusyPeriods: []domain.BusyPeriod{},
		Gaps:        []domain.Gap{},
	}
}

// mergeBusyPeriods collapses time-sorted items into busy blocks. A new
// block starts whenever the gap to the next item exceeds the merge
// threshold; descriptions concatenate the merged titles.
func mergeBusyPeriods(sorted []domain.ScheduleItem) []domain.BusyPeriod {
	periods := make([]domain.BusyPeriod, 0, len(sorted))
	for _, item := range sorted {
		if len(periods) > 0 {
			last := &periods[len(periods)-1]
			if item.Start.Sub(last.End) <= busyMergeThreshold {
				if item.End.After(last.End) {
					last.End = item.End
				}
				last.Description += ", " + item.Title
				continue
			}
		}
		periods = append(periods, domain.BusyPeriod{
			Start:       item.Start,
			End:         item.End,
			Description: item.Title,
		})
	}
	return periods
}

// detectGaps finds free intervals of at least an hour between consecutive
// items.
func detectGaps(sorted []domain.ScheduleItem) []domain.Gap {
	gaps := make([]domain.Gap, 0)
	for i := 1; i < len(sorted); i++ {
		free := sorted[i].Start.Sub(sorted[i-1].End)
		if free < minGapDuration {
			continue
		}
		gaps = append(gaps, domain.Gap{
			Start:       sorted[i-1].End,
			End:         sorted[i].Start,
			DurationMin: int(free.Minutes()),
		})
	}
	return gaps
}

func (b *BriefingBuilder) summarize(period domain.BriefingPeriod, sorted []domain.ScheduleItem, gaps []domain.Gap) string {
	if len(sorted) == 0 {
		return emptySummary(period)
	}

	var sb strings.Builder
	if len(sorted) == 1 {
		fmt.Fprintf(&sb, "You have 1 event scheduled for %s.", period.Phrase())
	} else {
		fmt.Fprintf(&sb, "You have %d events scheduled for %s.", len(sorted), period.Phrase())
	}

	shown := sorted
	if len(shown) > maxSummaryItems {
		shown = shown[:maxSummaryItems]
	}

	if period == domain.PeriodDay {
		parts := make([]string, len(shown))
		for i, item := range shown {
			parts[i] = fmt.Sprintf("%s at %s", item.Title, formatClock(item.Start))
		}
		fmt.Fprintf(&sb, " Coming up: %s.", strings.Join(parts, ", then "))
	} else {
		for _, item := range shown {
			fmt.Fprintf(&sb, "\n%s: %s — %s", item.Start.Format("Mon Jan 2"), formatClock(item.Start), item.Kind)
		}
	}

	if extra := len(sorted) - len(shown); extra > 0 {
		fmt.Fprintf(&sb, " +%d more.", extra)
	}

	if period == domain.PeriodDay {
		if sentence, ok := freeTimeSentence(gaps); ok {
			sb.WriteString(" " + sentence)
		}
	}
	return sb.String()
}

// freeTimeSentence names the day's long gaps, if any.
func freeTimeSentence(gaps []domain.Gap) (string, bool) {
	var stretches []string
	for _, gap := range gaps {
		if time.Duration(gap.DurationMin)*time.Minute >= longGapDuration {
			stretches = append(stretches, fmt.Sprintf("from %s to %s", formatClock(gap.Start), formatClock(gap.End)))
		}
	}
	if len(stretches) == 0 {
		return "", false
	}
	return fmt.Sprintf("You have free time %s.", strings.Join(stretches, " and ")), true
}
