package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/WarikanHQ/warikan-backend/middleware"
	"github.com/WarikanHQ/warikan-backend/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// streamStubPublisher hands the handler a prepared event channel and records
// the subscription lifecycle.
type streamStubPublisher struct {
	stubPublisher
	events       chan types.Event
	subscribedTo string
	unsubscribed bool
}

func (p *streamStubPublisher) Subscribe(ctx context.Context, subjectID, clientID string, filters ...types.EventType) (<-chan types.Event, error) {
	p.subscribedTo = subjectID
	return p.events, nil
}

func (p *streamStubPublisher) Unsubscribe(ctx context.Context, subjectID, clientID string) error {
	p.unsubscribed = true
	return nil
}

// sseRecorder adds the CloseNotify gin's Stream helper requires of the
// response writer.
type sseRecorder struct {
	*httptest.ResponseRecorder
	closeNotify chan bool
}

func (r *sseRecorder) CloseNotify() <-chan bool { return r.closeNotify }

func newSSERecorder() *sseRecorder {
	return &sseRecorder{
		ResponseRecorder: httptest.NewRecorder(),
		closeNotify:      make(chan bool),
	}
}

func eventStreamTestRouter(pub *streamStubPublisher) *gin.Engine {
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	h := NewEventStreamHandler(pub)
	r.GET("/v1/plans/:id/events", h.StreamPlanEventsHandler)
	r.GET("/v1/schedules/:id/events", h.StreamScheduleEventsHandler)
	return r
}

func TestStreamPlanEventsHandler(t *testing.T) {
	pub := &streamStubPublisher{events: make(chan types.Event, 2)}

	payload, err := json.Marshal(gin.H{"name": "Year-end party"})
	require.NoError(t, err)
	pub.events <- types.Event{
		BaseEvent: types.BaseEvent{
			ID:        "evt-1",
			Type:      types.EventTypePlanUpdated,
			SubjectID: "plan-1",
			Timestamp: time.Now(),
			Version:   1,
		},
		Payload: payload,
	}
	close(pub.events)

	w := newSSERecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/plans/plan-1/events", nil)
	eventStreamTestRouter(pub).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	assert.Equal(t, "plan-1", pub.subscribedTo)
	assert.True(t, pub.unsubscribed, "closing the stream must release the subscription")

	body := w.Body.String()
	assert.Contains(t, body, string(types.EventTypePlanUpdated))
	assert.Contains(t, body, "evt-1")
	assert.Contains(t, body, "Year-end party")
}

func TestStreamScheduleEventsHandler(t *testing.T) {
	pub := &streamStubPublisher{events: make(chan types.Event, 1)}
	pub.events <- types.Event{
		BaseEvent: types.BaseEvent{
			ID:        "evt-2",
			Type:      types.EventTypeScheduleResponseAdded,
			SubjectID: "sched-1",
			Timestamp: time.Now(),
			Version:   1,
		},
	}
	close(pub.events)

	w := newSSERecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/schedules/sched-1/events", nil)
	eventStreamTestRouter(pub).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sched-1", pub.subscribedTo)
	assert.True(t, pub.unsubscribed)
	assert.Contains(t, w.Body.String(), string(types.EventTypeScheduleResponseAdded))
}
