package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/wayfarerhq/wayfarer/internal/scheduling/domain"
)

const (
	// rideFlightWindow is how far ahead of a requested ride the detector
	// looks for a flight the ride might be feeding.
	rideFlightWindow = 6 * time.Hour

	// sameTimeThreshold treats a ride booked this close to a flight's
	// departure as booked "at flight time".
	sameTimeThreshold = 30 * time.Minute

	// flightLeadWindow is how close before a flight a prior commitment's
	// end is worth warning about.
	flightLeadWindow = 3 * time.Hour

	// crowdedScheduleCount is the number of surrounding items beyond
	// which a generic crowding warning is added.
	crowdedScheduleCount = 3
)

// ConflictRequest describes the booking the user is about to confirm.
type ConflictRequest struct {
	UserID        string
	BookingType   domain.ItemKind
	RequestedTime time.Time
	Destination   string
	Intent        string
}

// ConflictDetector applies the type-specific conflict rules against a
// normalized schedule. It is stateless; concurrent use is safe.
type ConflictDetector struct {
	policy     domain.BufferPolicy
	classifier domain.DestinationClassifier
	adjuster   *Adjuster
}

// NewConflictDetector creates a detector with the given policy and
// destination classifier.
func NewConflictDetector(policy domain.BufferPolicy, classifier domain.DestinationClassifier) *ConflictDetector {
	if classifier == nil {
		classifier = domain.NewTokenClassifier(nil)
	}
	return &ConflictDetector{
		policy:     policy,
		classifier: classifier,
		adjuster:   NewAdjuster(policy),
	}
}

// Detect runs the rule set matching the requested booking's kind and
// assembles the assessment, including the generic crowding warning.
func (d *ConflictDetector) Detect(req ConflictRequest, items []domain.ScheduleItem) domain.ConflictAssessment {
	var assessment domain.ConflictAssessment
	switch req.BookingType {
	case domain.ItemKindRide:
		assessment = d.checkRideAgainstFlights(req, items)
	case domain.ItemKindFlight:
		assessment = d.checkFlightLeadIn(req, items)
	default:
		assessment = d.checkAppointmentOverlap(req, items)
	}

	if warning, ok := crowdedScheduleWarning(req.RequestedTime, items); ok {
		assessment.Warnings = append(assessment.Warnings, warning)
	}
	return assessment
}

// checkRideAgainstFlights covers a requested ride that may be feeding an
// upcoming flight. Rules in priority order: booked essentially at flight
// time is a hard conflict; a ride after departure is presumed post-arrival
// and fine; an airport-bound ride leaving with less than the full
// travel-plus-check-in lead is a soft conflict.
func (d *ConflictDetector) checkRideAgainstFlights(req ConflictRequest, items []domain.ScheduleItem) domain.ConflictAssessment {
	flight, ok := nearestFlight(req.RequestedTime, items)
	if !ok {
		return domain.ClearAssessment(req.RequestedTime)
	}

	international := d.classifier.IsInternational(flight.Destination, flight.Title)
	lead := d.policy.AirportLead(international)
	suggested := d.adjuster.IdealRideTime(flight.Start, international)
	delta := flight.Start.Sub(req.RequestedTime)

	absDelta := delta
	if absDelta < 0 {
		absDelta = -absDelta
	}

	switch {
	case absDelta < sameTimeThreshold:
		conflict := domain.ScheduleConflict{
			Severity:      domain.SeverityHard,
			Item:          flight,
			RequestedTime: req.RequestedTime,
			ConflictTime:  flight.Start,
			Description: fmt.Sprintf("Your ride is booked at essentially the same time as your flight %q departing at %s.",
				flight.Title, formatClock(flight.Start)),
			SuggestedTime: &suggested,
			Explanation:   d.rideExplanation(req.RequestedTime, suggested, international),
		}
		return domain.ConflictAssessment{
			Outcome:      domain.OutcomeConflict,
			Conflicts:    []domain.ScheduleConflict{conflict},
			OriginalTime: req.RequestedTime,
			AdjustedTime: &suggested,
			Explanation:  conflict.Explanation,
		}

	case delta < 0:
		// Ride leaves after departure; presumably meeting the arrival.
		return domain.ClearAssessment(req.RequestedTime)

	case d.isAirportBound(req) && delta < lead:
		conflict := domain.ScheduleConflict{
			Severity:      domain.SeveritySoft,
			Item:          flight,
			RequestedTime: req.RequestedTime,
			ConflictTime:  flight.Start,
			Description: fmt.Sprintf("Your ride leaves only %d minutes before flight %q; that is tighter than the recommended lead.",
				int(delta.Minutes()), flight.Title),
			SuggestedTime: &suggested,
			Explanation:   d.rideExplanation(req.RequestedTime, suggested, international),
		}
		return domain.ConflictAssessment{
			Outcome:      domain.OutcomeConflict,
			Conflicts:    []domain.ScheduleConflict{conflict},
			OriginalTime: req.RequestedTime,
			AdjustedTime: &suggested,
			Explanation:  conflict.Explanation,
		}
	}

	return domain.ClearAssessment(req.RequestedTime)
}

// checkAppointmentOverlap covers doctor visits and any other booking that
// occupies a plain interval: the first overlap with anything already on
// the schedule is a hard conflict, with a slot search for a replacement.
func (d *ConflictDetector) checkAppointmentOverlap(req ConflictRequest, items []domain.ScheduleItem) domain.ConflictAssessment {
	requested := domain.TimeRange{
		Start: req.RequestedTime,
		End:   req.RequestedTime.Add(req.BookingType.EstimatedDuration()),
	}

	for _, item := range items {
		if !requested.Overlaps(item.Range()) {
			continue
		}

		conflict := domain.ScheduleConflict{
			Severity:      domain.SeverityHard,
			Item:          item,
			RequestedTime: req.RequestedTime,
			ConflictTime:  item.Start,
			Description: fmt.Sprintf("The requested time overlaps %q (%s to %s).",
				item.Title, formatClock(item.Start), formatClock(item.End)),
		}
		assessment := domain.ConflictAssessment{
			Outcome:      domain.OutcomeConflict,
			Conflicts:    []domain.ScheduleConflict{conflict},
			OriginalTime: req.RequestedTime,
		}

		if adjusted, ok := d.adjuster.FindSlot(req.RequestedTime, domain.AppointmentDuration, items); ok {
			assessment.AdjustedTime = &adjusted
			assessment.Conflicts[0].SuggestedTime = &adjusted
			assessment.Explanation = fmt.Sprintf("The next free slot after %q is %s.",
				item.Title, formatClock(adjusted))
			assessment.Conflicts[0].Explanation = assessment.Explanation
		} else {
			assessment.Warnings = append(assessment.Warnings,
				"No free slot could be found near the requested time.")
		}
		return assessment
	}

	return domain.ClearAssessment(req.RequestedTime)
}

// checkFlightLeadIn warns when prior commitments end shortly before a
// requested flight. These are advisory only.
func (d *ConflictDetector) checkFlightLeadIn(req ConflictRequest, items []domain.ScheduleItem) domain.ConflictAssessment {
	var conflicts []domain.ScheduleConflict
	for _, item := range items {
		if item.Kind == domain.ItemKindFlight {
			continue
		}
		lead := req.RequestedTime.Sub(item.End)
		if lead <= 0 || lead >= flightLeadWindow {
			continue
		}
		conflicts = append(conflicts, domain.ScheduleConflict{
			Severity:      domain.SeveritySoft,
			Item:          item,
			RequestedTime: req.RequestedTime,
			ConflictTime:  item.End,
			Description: fmt.Sprintf("%q ends only %d minutes before your flight.",
				item.Title, int(lead.Minutes())),
		})
	}

	if len(conflicts) == 0 {
		return domain.ClearAssessment(req.RequestedTime)
	}
	return domain.ConflictAssessment{
		Outcome:      domain.OutcomeConflict,
		Conflicts:    conflicts,
		OriginalTime: req.RequestedTime,
		Explanation:  conflicts[0].Description,
	}
}

// isAirportBound reports whether the ride's own destination or the chat
// intent mentions an airport.
func (d *ConflictDetector) isAirportBound(req ConflictRequest) bool {
	text := strings.ToLower(req.Destination + " " + req.Intent)
	return strings.Contains(text, "airport")
}

// rideExplanation states the old and new ride time and decomposes the
// buffer into its travel and check-in parts.
func (d *ConflictDetector) rideExplanation(original, suggested time.Time, international bool) string {
	class := "domestic"
	if international {
		class = "international"
	}
	return fmt.Sprintf("Moving your ride from %s to %s leaves %s to reach the airport plus %s for %s check-in.",
		formatClock(original),
		formatClock(suggested),
		formatDuration(d.policy.TravelToAirport),
		formatDuration(d.policy.CheckIn(international)),
		class,
	)
}

// nearestFlight finds the chronologically nearest flight whose departure
// falls inside the ride lookahead window. Flights slightly in the past are
// included so a ride booked just after departure time still trips the
// same-time rule.
func nearestFlight(requested time.Time, items []domain.ScheduleItem) (domain.ScheduleItem, bool) {
	var (
		nearest domain.ScheduleItem
		best    time.Duration
		found   bool
	)
	for _, item := range items {
		if item.Kind != domain.ItemKindFlight {
			continue
		}
		delta := item.Start.Sub(requested)
		if delta > rideFlightWindow || delta < -sameTimeThreshold {
			continue
		}
		abs := delta
		if abs < 0 {
			abs = -abs
		}
		if !found || abs < best {
			nearest, best, found = item, abs, true
		}
	}
	return nearest, found
}

// crowdedScheduleWarning adds a generic note when more than three other
// items sit within a day of the requested time.
func crowdedScheduleWarning(requested time.Time, items []domain.ScheduleItem) (string, bool) {
	window := domain.TimeRange{
		Start: requested.Add(-24 * time.Hour),
		End:   requested.Add(24 * time.Hour),
	}
	count := 0
	for _, item := range items {
		if window.Contains(item.Start) {
			count++
		}
	}
	if count <= crowdedScheduleCount {
		return "", false
	}
	return fmt.Sprintf("You have %d other events within a day of this time.", count), true
}

func formatClock(t time.Time) string {
	return t.Format("3:04 PM")
}

// formatDuration renders a duration as whole hours when it divides evenly,
// minutes otherwise.
func formatDuration(d time.Duration) string {
	if d%time.Hour == 0 {
		hours := int(d.Hours())
		if hours == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", hours)
	}
	return fmt.Sprintf("%d minutes", int(d.Minutes()))
}
