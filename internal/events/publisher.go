// Package events provides helpers for constructing and publishing change
// events with a consistent structure.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/WarikanHQ/warikan-backend/errors"
	"github.com/WarikanHQ/warikan-backend/types"
	"github.com/google/uuid"
)

// PublishEventWithContext constructs a standard types.Event and publishes it
// on the subject's channel.
func PublishEventWithContext(publisher types.EventPublisher, ctx context.Context, eventType types.EventType, subjectID string, data map[string]interface{}, source string) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return errors.Wrap(err, errors.ServerError, "Failed to marshal event data")
	}

	event := types.Event{
		BaseEvent: types.BaseEvent{
			ID:        uuid.New().String(),
			Type:      eventType,
			SubjectID: subjectID,
			Timestamp: time.Now(),
			Version:   1,
		},
		Metadata: types.EventMetadata{
			Source: source,
		},
		Payload: payload,
	}

	if err := publisher.Publish(ctx, subjectID, event); err != nil {
		return errors.Wrap(err, errors.ServerError, "Failed to publish event")
	}

	return nil
}
