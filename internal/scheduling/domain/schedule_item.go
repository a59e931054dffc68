package domain

import (
	"errors"
	"sort"
	"time"
)

var ErrInvalidTimeRange = errors.New("end time must be after start time")

// ItemKind classifies a schedule item by the kind of record it came from.
type ItemKind string

const (
	ItemKindFlight ItemKind = "flight"
	ItemKindRide   ItemKind = "ride"
	ItemKindDoctor ItemKind = "doctor"
	ItemKindEvent  ItemKind = "event"
)

// Estimated durations applied when a source record carries no end time.
const (
	FlightDuration      = 6 * time.Hour
	RideDuration        = time.Hour
	AppointmentDuration = 45 * time.Minute
	EventDuration       = time.Hour
)

// EstimatedDuration returns the default duration assumed for a kind.
func (k ItemKind) EstimatedDuration() time.Duration {
	switch k {
	case ItemKindFlight:
		return FlightDuration
	case ItemKindRide:
		return RideDuration
	case ItemKindDoctor:
		return AppointmentDuration
	default:
		return EventDuration
	}
}

// TimeRange represents a time period with start and end.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Overlaps checks if two time ranges overlap. Ranges are half-open,
// so back-to-back ranges do not overlap.
func (t TimeRange) Overlaps(other TimeRange) bool {
	return t.Start.Before(other.End) && other.Start.Before(t.End)
}

// Duration returns the duration of the time range.
func (t TimeRange) Duration() time.Duration {
	return t.End.Sub(t.Start)
}

// Contains checks if a time falls within the range.
func (t TimeRange) Contains(at time.Time) bool {
	return !at.Before(t.Start) && at.Before(t.End)
}

// ScheduleItem is the uniform view of a commitment on the user's calendar,
// whether it originated as a booking or a generic calendar event.
type ScheduleItem struct {
	ID          string
	Kind        ItemKind
	Title       string
	Start       time.Time
	End         time.Time
	Destination string
}

// NewScheduleItem builds an item, deriving the end time from the kind's
// estimated duration when none is given.
func NewScheduleItem(id string, kind ItemKind, title string, start time.Time, end *time.Time, destination string) (ScheduleItem, error) {
	itemEnd := start.Add(kind.EstimatedDuration())
	if end != nil && end.After(start) {
		itemEnd = *end
	}
	if !itemEnd.After(start) {
		return ScheduleItem{}, ErrInvalidTimeRange
	}
	return ScheduleItem{
		ID:          id,
		Kind:        kind,
		Title:       title,
		Start:       start,
		End:         itemEnd,
		Destination: destination,
	}, nil
}

// Range returns the item's occupied time range.
func (s ScheduleItem) Range() TimeRange {
	return TimeRange{Start: s.Start, End: s.End}
}

// Duration returns the item's duration.
func (s ScheduleItem) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// OverlapsWith checks if this item overlaps another.
func (s ScheduleItem) OverlapsWith(other ScheduleItem) bool {
	return s.Range().Overlaps(other.Range())
}

// SortItems orders items chronologically by start time, in place.
func SortItems(items []ScheduleItem) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].Start.Before(items[j].Start)
	})
}
