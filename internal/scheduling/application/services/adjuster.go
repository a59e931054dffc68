package services

import (
	"time"

	"github.com/wayfarerhq/wayfarer/internal/scheduling/domain"
)

// MaxSlotProbes bounds the forward slot search.
const MaxSlotProbes = 24

// Adjuster proposes adjusted booking times once a conflict has been found.
type Adjuster struct {
	policy domain.BufferPolicy
}

// NewAdjuster creates an adjuster over the given buffer policy.
func NewAdjuster(policy domain.BufferPolicy) *Adjuster {
	return &Adjuster{policy: policy}
}

// FindSlot searches forward from preferred for the first free slot of the
// given duration. When a candidate collides with an item, the next probe
// starts at that item's end plus the appointment buffer.
//
// The scan is greedy: it returns the first feasible slot it reaches, which
// after several jumps is not necessarily the earliest possible one. That
// tradeoff is deliberate; the bounded, append-only schedules this runs
// against don't justify an optimal search.
func (a *Adjuster) FindSlot(preferred time.Time, duration time.Duration, items []domain.ScheduleItem) (time.Time, bool) {
	sorted := make([]domain.ScheduleItem, len(items))
	copy(sorted, items)
	domain.SortItems(sorted)

	candidate := preferred
	for probe := 0; probe < MaxSlotProbes; probe++ {
		window := domain.TimeRange{Start: candidate, End: candidate.Add(duration)}
		blocked := false
		for _, item := range sorted {
			if window.Overlaps(item.Range()) {
				candidate = item.End.Add(a.policy.AppointmentBuffer)
				blocked = true
				break
			}
		}
		if !blocked {
			return candidate, true
		}
	}
	return time.Time{}, false
}

// IdealRideTime computes when a ride should leave so the rider arrives at
// the airport with the full check-in lead for the flight.
func (a *Adjuster) IdealRideTime(flightStart time.Time, international bool) time.Time {
	return flightStart.Add(-a.policy.AirportLead(international))
}
