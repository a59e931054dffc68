package domain

import (
	"context"
	"time"
)

// BookingStatus tracks the lifecycle of a booking record.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// BookingRecord is a booking as persisted by the booking subsystem.
// The primary date field depends on the booking type: flights use
// DepartDate, rides ScheduledTime, doctor appointments AppointmentTime.
type BookingRecord struct {
	ID              string
	BookingType     ItemKind
	Title           string
	Status          BookingStatus
	DepartDate      *time.Time
	ScheduledTime   *time.Time
	AppointmentTime *time.Time
	Destination     string
}

// PrimaryTime returns the record's primary date field, or false when the
// record carries no usable date.
func (b BookingRecord) PrimaryTime() (time.Time, bool) {
	switch b.BookingType {
	case ItemKindFlight:
		if b.DepartDate != nil {
			return *b.DepartDate, true
		}
	case ItemKindRide:
		if b.ScheduledTime != nil {
			return *b.ScheduledTime, true
		}
	case ItemKindDoctor:
		if b.AppointmentTime != nil {
			return *b.AppointmentTime, true
		}
	}
	return time.Time{}, false
}

// CalendarEventRecord is a generic calendar entry owned by the user.
type CalendarEventRecord struct {
	ID          string
	Title       string
	Description string
	Start       time.Time
	End         *time.Time
}

// ScheduleSource provides read access to the user's existing commitments.
// Implementations are owned by the persistence layer; the engine only reads.
type ScheduleSource interface {
	// UpcomingBookings returns up to limit future bookings for a user.
	UpcomingBookings(ctx context.Context, userID string, limit int) ([]BookingRecord, error)

	// CalendarEvents returns events whose start falls within [start, end).
	CalendarEvents(ctx context.Context, userID string, start, end time.Time) ([]CalendarEventRecord, error)
}
