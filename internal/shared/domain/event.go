package domain

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent represents something that happened in the domain.
type DomainEvent interface {
	EventID() uuid.UUID
	SubjectID() string
	SubjectType() string
	RoutingKey() string
	OccurredAt() time.Time
}

// BaseEvent provides common event functionality.
type BaseEvent struct {
	ID        uuid.UUID `json:"event_id"`
	Subject   string    `json:"subject_id"`
	Type      string    `json:"subject_type"`
	Key       string    `json:"routing_key"`
	At        time.Time `json:"occurred_at"`
}

// NewBaseEvent creates a new base event for a subject.
func NewBaseEvent(subjectID, subjectType, routingKey string) BaseEvent {
	return BaseEvent{
		ID:      uuid.New(),
		Subject: subjectID,
		Type:    subjectType,
		Key:     routingKey,
		At:      time.Now().UTC(),
	}
}

func (e BaseEvent) EventID() uuid.UUID    { return e.ID }
func (e BaseEvent) SubjectID() string     { return e.Subject }
func (e BaseEvent) SubjectType() string   { return e.Type }
func (e BaseEvent) RoutingKey() string    { return e.Key }
func (e BaseEvent) OccurredAt() time.Time { return e.At }
