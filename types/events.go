package types

import (
	"context"
	"encoding/json"
	"time"

	"github.com/WarikanHQ/warikan-backend/errors"
)

type EventType string

const (
	CategoryPlan        = "PLAN"
	CategoryParticipant = "PARTICIPANT"
	CategorySchedule    = "SCHEDULE"
	CategoryRole        = "ROLE"
)

const (
	// Plan events
	EventTypePlanCreated       EventType = CategoryPlan + "_CREATED"
	EventTypePlanUpdated       EventType = CategoryPlan + "_UPDATED"
	EventTypePlanDeleted       EventType = CategoryPlan + "_DELETED"
	EventTypePlanAmountUpdated EventType = CategoryPlan + "_AMOUNT_UPDATED"

	// Participant events
	EventTypeParticipantAdded   EventType = CategoryParticipant + "_ADDED"
	EventTypeParticipantUpdated EventType = CategoryParticipant + "_UPDATED"
	EventTypeParticipantRemoved EventType = CategoryParticipant + "_REMOVED"

	// Schedule events
	EventTypeScheduleCreated         EventType = CategorySchedule + "_CREATED"
	EventTypeScheduleUpdated         EventType = CategorySchedule + "_UPDATED"
	EventTypeScheduleDeleted         EventType = CategorySchedule + "_DELETED"
	EventTypeScheduleResponseAdded   EventType = CategorySchedule + "_RESPONSE_ADDED"
	EventTypeScheduleResponseUpdated EventType = CategorySchedule + "_RESPONSE_UPDATED"
	EventTypeScheduleResponseRemoved EventType = CategorySchedule + "_RESPONSE_REMOVED"

	// Role registry events
	EventTypeRoleUpdated EventType = CategoryRole + "_UPDATED"
)

// BaseEvent carries the fields common to every published event. SubjectID is
// the aggregate the event belongs to (plan ID or schedule event ID) and names
// the pub/sub channel.
type BaseEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	SubjectID string    `json:"subjectId"`
	Timestamp time.Time `json:"timestamp"`
	Version   int       `json:"version"`
}

// EventMetadata for tracking and debugging.
type EventMetadata struct {
	CorrelationID string `json:"correlationId,omitempty"`
	Source        string `json:"source"`
}

type Event struct {
	BaseEvent
	Metadata EventMetadata   `json:"metadata"`
	Payload  json.RawMessage `json:"payload"`
}

func (e Event) Validate() error {
	if e.ID == "" {
		return errors.ValidationFailed("invalid event", "event ID is required")
	}
	if e.Type == "" {
		return errors.ValidationFailed("invalid event", "event type is required")
	}
	if e.SubjectID == "" {
		return errors.ValidationFailed("invalid event", "subject ID is required")
	}
	if e.Timestamp.IsZero() {
		return errors.ValidationFailed("invalid event", "timestamp is required")
	}
	return nil
}

// EventPublisher publishes change events for live-updating clients. Mutations
// are already durable before publish; failures are logged, never surfaced.
type EventPublisher interface {
	Publish(ctx context.Context, subjectID string, event Event) error
	Subscribe(ctx context.Context, subjectID string, clientID string, filters ...EventType) (<-chan Event, error)
	Unsubscribe(ctx context.Context, subjectID string, clientID string) error
}
