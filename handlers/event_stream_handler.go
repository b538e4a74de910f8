package handlers

import (
	"context"
	"io"

	"github.com/WarikanHQ/warikan-backend/errors"
	"github.com/WarikanHQ/warikan-backend/logger"
	"github.com/WarikanHQ/warikan-backend/middleware"
	"github.com/WarikanHQ/warikan-backend/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EventStreamHandler exposes the pub/sub change feed as Server-Sent Events so
// browser clients can live-update a plan or schedule without polling.
type EventStreamHandler struct {
	publisher types.EventPublisher
}

func NewEventStreamHandler(publisher types.EventPublisher) *EventStreamHandler {
	return &EventStreamHandler{publisher: publisher}
}

// StreamPlanEventsHandler godoc
// @Summary Stream plan change events
// @Description Server-Sent Events stream of changes to one plan (updates, participants, amounts).
// @Tags plans
// @Produce text/event-stream
// @Param id path string true "Plan ID"
// @Success 200 {string} string "SSE stream of plan events"
// @Failure 500 {object} docs.ErrorResponse "Internal server error"
// @Router /plans/{id}/events [get]
// @Security BearerAuth
func (h *EventStreamHandler) StreamPlanEventsHandler(c *gin.Context) {
	h.stream(c, c.Param("id"))
}

// StreamScheduleEventsHandler godoc
// @Summary Stream schedule change events
// @Description Server-Sent Events stream of changes to one schedule event (updates, responses).
// @Tags schedules
// @Produce text/event-stream
// @Param id path string true "Schedule event ID"
// @Success 200 {string} string "SSE stream of schedule events"
// @Failure 500 {object} docs.ErrorResponse "Internal server error"
// @Router /schedules/{id}/events [get]
// @Security BearerAuth
func (h *EventStreamHandler) StreamScheduleEventsHandler(c *gin.Context) {
	h.stream(c, c.Param("id"))
}

func (h *EventStreamHandler) stream(c *gin.Context, subjectID string) {
	log := logger.GetLogger()

	// One subscription per connection. The authenticated user ID keeps
	// reconnects from stacking subscriptions; anonymous test clients fall
	// back to a throwaway ID.
	clientID := c.GetString(string(middleware.UserIDKey))
	if clientID == "" {
		clientID = uuid.New().String()
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	eventChan, err := h.publisher.Subscribe(c.Request.Context(), subjectID, clientID)
	if err != nil {
		log.Errorw("Failed to subscribe to events",
			"error", err,
			"subjectId", subjectID,
			"clientId", clientID)
		if err := c.Error(errors.Wrap(err, errors.ServerError, "Failed to subscribe to events")); err != nil {
			log.Errorw("Failed to add subscription error", "error", err)
		}
		return
	}
	defer func() {
		// The request context is gone once the client disconnects.
		if err := h.publisher.Unsubscribe(context.Background(), subjectID, clientID); err != nil {
			log.Warnw("Failed to unsubscribe client",
				"error", err,
				"subjectId", subjectID,
				"clientId", clientID)
		}
	}()

	log.Debugw("Event stream opened", "subjectId", subjectID, "clientId", clientID)

	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-eventChan:
			if !ok {
				return false
			}
			c.SSEvent(string(event.Type), event)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})

	log.Debugw("Event stream closed", "subjectId", subjectID, "clientId", clientID)
}
