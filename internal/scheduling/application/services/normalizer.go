package services

import (
	"strconv"

	"github.com/wayfarerhq/wayfarer/internal/scheduling/domain"
)

// NormalizeBookings converts booking records into schedule items. Records
// without a usable date field are dropped silently; cancelled bookings do
// not occupy calendar time and are skipped as well. Output order is not
// guaranteed.
func NormalizeBookings(records []domain.BookingRecord) []domain.ScheduleItem {
	items := make([]domain.ScheduleItem, 0, len(records))
	for _, rec := range records {
		if rec.Status == domain.BookingStatusCancelled {
			continue
		}
		start, ok := rec.PrimaryTime()
		if !ok {
			continue
		}
		item, err := domain.NewScheduleItem(rec.ID, rec.BookingType, rec.Title, start, nil, rec.Destination)
		if err != nil {
			continue
		}
		items = append(items, item)
	}
	return items
}

// NormalizeEvents converts calendar event records into schedule items.
// Events without an end time get the default one-hour duration.
func NormalizeEvents(records []domain.CalendarEventRecord) []domain.ScheduleItem {
	items := make([]domain.ScheduleItem, 0, len(records))
	for i, rec := range records {
		id := rec.ID
		if id == "" {
			id = "event-" + strconv.Itoa(i)
		}
		item, err := domain.NewScheduleItem(id, domain.ItemKindEvent, rec.Title, rec.Start, rec.End, "")
		if err != nil {
			continue
		}
		items = append(items, item)
	}
	return items
}
