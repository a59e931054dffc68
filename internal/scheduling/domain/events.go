package domain

import (
	"time"

	sharedDomain "github.com/wayfarerhq/wayfarer/internal/shared/domain"
)

const (
	SubjectType = "Schedule"

	RoutingKeyConflictDetected  = "scheduling.conflict.detected"
	RoutingKeyBriefingGenerated = "scheduling.briefing.generated"
)

// ConflictDetected is emitted when a conflict check finds a collision.
type ConflictDetected struct {
	sharedDomain.BaseEvent
	BookingType   string     `json:"booking_type"`
	Severity      string     `json:"severity"`
	RequestedTime time.Time  `json:"requested_time"`
	ConflictTime  time.Time  `json:"conflict_time"`
	SuggestedTime *time.Time `json:"suggested_time,omitempty"`
	ItemID        string     `json:"item_id"`
	ItemTitle     string     `json:"item_title"`
}

// NewConflictDetected creates a ConflictDetected event from the leading conflict.
func NewConflictDetected(userID string, bookingType ItemKind, conflict ScheduleConflict) ConflictDetected {
	return ConflictDetected{
		BaseEvent:     sharedDomain.NewBaseEvent(userID, SubjectType, RoutingKeyConflictDetected),
		BookingType:   string(bookingType),
		Severity:      string(conflict.Severity),
		RequestedTime: conflict.RequestedTime,
		ConflictTime:  conflict.ConflictTime,
		SuggestedTime: conflict.SuggestedTime,
		ItemID:        conflict.Item.ID,
		ItemTitle:     conflict.Item.Title,
	}
}

// BriefingGenerated is emitted after a schedule briefing is built.
type BriefingGenerated struct {
	sharedDomain.BaseEvent
	Period    string    `json:"period"`
	ItemCount int       `json:"item_count"`
	GapCount  int       `json:"gap_count"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
}

// NewBriefingGenerated creates a BriefingGenerated event.
func NewBriefingGenerated(userID string, briefing *ScheduleBriefing) BriefingGenerated {
	return BriefingGenerated{
		BaseEvent: sharedDomain.NewBaseEvent(userID, SubjectType, RoutingKeyBriefingGenerated),
		Period:    string(briefing.Period),
		ItemCount: len(briefing.Items),
		GapCount:  len(briefing.Gaps),
		Start:     briefing.Start,
		End:       briefing.End,
	}
}
