package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/WarikanHQ/warikan-backend/logger"
	"github.com/WarikanHQ/warikan-backend/types"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisEventService implements the EventPublisher interface using Redis
// Pub/Sub. Events are published per subject (a plan or a schedule event) so
// clients watching one aggregate only receive its changes.
type RedisEventService struct {
	redisClient   *redis.Client
	log           *zap.SugaredLogger
	metrics       *EventMetrics
	mu            sync.RWMutex
	subscriptions map[string]subscription // Key: subjectID:clientID
}

var _ types.EventPublisher = (*RedisEventService)(nil)

type EventMetrics struct {
	publishLatency   prometheus.Histogram
	subscribeLatency prometheus.Histogram
	errorCount       prometheus.Counter
	eventCount       *prometheus.CounterVec
}

type subscription struct {
	pubsub    *redis.PubSub
	cancelCtx context.CancelFunc
}

var (
	eventMetricsOnce sync.Once
	eventMetrics     *EventMetrics
)

// initEventMetrics registers the collectors once; promauto panics on
// duplicate registration and tests construct multiple services.
func initEventMetrics() *EventMetrics {
	eventMetricsOnce.Do(func() {
		eventMetrics = newEventMetrics()
	})
	return eventMetrics
}

func newEventMetrics() *EventMetrics {
	return &EventMetrics{
		publishLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "warikan_event_publish_duration_seconds",
			Help:    "Time taken to publish events",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}),
		subscribeLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "warikan_event_subscribe_duration_seconds",
			Help:    "Time taken to establish subscriptions",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}),
		errorCount: promauto.NewCounter(prometheus.CounterOpts{
			Name: "warikan_event_errors_total",
			Help: "Total number of event processing errors",
		}),
		eventCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "warikan_events_processed_total",
			Help: "Total number of events processed",
		}, []string{"event_type"}),
	}
}

// NewRedisEventService returns a new instance of RedisEventService.
func NewRedisEventService(redisClient *redis.Client) *RedisEventService {
	return &RedisEventService{
		redisClient:   redisClient,
		log:           logger.GetLogger(),
		metrics:       initEventMetrics(),
		subscriptions: make(map[string]subscription),
	}
}

func eventChannel(subjectID string) string {
	return fmt.Sprintf("events:%s", subjectID)
}

// Publish serializes the event and publishes it on the subject's Redis
// channel.
func (r *RedisEventService) Publish(ctx context.Context, subjectID string, event types.Event) error {
	startTime := time.Now()
	defer func() {
		r.metrics.publishLatency.Observe(time.Since(startTime).Seconds())
	}()

	// Set default values if missing
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.Version == 0 {
		event.Version = 1
	}

	if err := event.Validate(); err != nil {
		r.metrics.errorCount.Inc()
		return fmt.Errorf("invalid event: %w", err)
	}

	channel := eventChannel(subjectID)

	data, err := json.Marshal(event)
	if err != nil {
		r.metrics.errorCount.Inc()
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	r.metrics.eventCount.WithLabelValues(string(event.Type)).Inc()

	r.log.Debugw("Publishing event",
		"channel", channel,
		"eventType", event.Type,
		"eventID", event.ID,
		"payloadSize", len(data),
	)

	// Use context timeout to prevent blocking indefinitely
	publishCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := r.redisClient.Publish(publishCtx, channel, data).Err(); err != nil {
		r.metrics.errorCount.Inc()
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// Subscribe opens a filtered event stream for one client on one subject. A
// second subscribe with the same subject and client replaces the first.
func (r *RedisEventService) Subscribe(ctx context.Context, subjectID string, clientID string, filters ...types.EventType) (<-chan types.Event, error) {
	startTime := time.Now()
	defer func() {
		r.metrics.subscribeLatency.Observe(time.Since(startTime).Seconds())
	}()

	subscriptionKey := fmt.Sprintf("%s:%s", subjectID, clientID)
	r.mu.Lock()
	_, exists := r.subscriptions[subscriptionKey]
	r.mu.Unlock()
	if exists {
		if err := r.Unsubscribe(ctx, subjectID, clientID); err != nil {
			r.log.Warnw("Failed to clean up existing subscription",
				"error", err,
				"subjectId", subjectID,
				"clientId", clientID)
		}
	}

	pubsub := r.redisClient.Subscribe(ctx, eventChannel(subjectID))

	eventChan := make(chan types.Event, 100)

	subCtx, cancel := context.WithCancel(context.Background())

	r.mu.Lock()
	r.subscriptions[subscriptionKey] = subscription{
		pubsub:    pubsub,
		cancelCtx: cancel,
	}
	r.mu.Unlock()

	go r.processSubscription(subCtx, pubsub, eventChan, subjectID, clientID, subscriptionKey, filters)

	return eventChan, nil
}

func (r *RedisEventService) processSubscription(
	ctx context.Context,
	pubsub *redis.PubSub,
	eventChan chan types.Event,
	subjectID string,
	clientID string,
	subscriptionKey string,
	filters []types.EventType,
) {
	defer func() {
		close(eventChan)

		r.mu.Lock()
		delete(r.subscriptions, subscriptionKey)
		r.mu.Unlock()

		if err := pubsub.Close(); err != nil {
			r.log.Warnw("Error closing Redis pubsub", "error", err)
		}
	}()

	ch := pubsub.Channel()

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				r.log.Infow("Redis pubsub channel closed",
					"subjectId", subjectID,
					"clientId", clientID)
				return
			}

			var event types.Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				r.log.Errorw("Failed to unmarshal event",
					"error", err,
					"payload", msg.Payload)
				r.metrics.errorCount.Inc()
				continue
			}

			if len(filters) > 0 {
				matched := false
				for _, filter := range filters {
					if event.Type == filter {
						matched = true
						break
					}
				}
				if !matched {
					continue
				}
			}

			// Non-blocking send; a slow client drops events rather than
			// stalling the subscription.
			select {
			case eventChan <- event:
				r.metrics.eventCount.WithLabelValues(string(event.Type)).Inc()
			default:
				r.log.Warnw("Event channel full, dropping event",
					"eventType", event.Type,
					"eventID", event.ID,
					"subjectId", subjectID,
					"clientId", clientID)
			}

		case <-ctx.Done():
			r.log.Infow("Subscription context canceled",
				"subjectId", subjectID,
				"clientId", clientID)
			return
		}
	}
}

func (r *RedisEventService) Unsubscribe(ctx context.Context, subjectID string, clientID string) error {
	key := fmt.Sprintf("%s:%s", subjectID, clientID)

	r.mu.Lock()
	sub, exists := r.subscriptions[key]
	if !exists {
		r.mu.Unlock()
		return nil // Already unsubscribed
	}

	// Remove from map immediately to prevent concurrent access
	delete(r.subscriptions, key)
	r.mu.Unlock()

	sub.cancelCtx()

	if err := sub.pubsub.Close(); err != nil {
		r.log.Errorw("Failed to close Redis subscription",
			"error", err,
			"subjectId", subjectID,
			"clientId", clientID)
		return fmt.Errorf("failed to unsubscribe: %w", err)
	}

	r.log.Debugw("Successfully unsubscribed",
		"subjectId", subjectID,
		"clientId", clientID)

	return nil
}

// Shutdown closes all active subscriptions.
func (r *RedisEventService) Shutdown(ctx context.Context) error {
	r.log.Info("Shutting down event service")

	r.mu.Lock()
	for key, sub := range r.subscriptions {
		r.log.Debugw("Closing subscription during shutdown", "key", key)
		sub.cancelCtx()
		if err := sub.pubsub.Close(); err != nil {
			r.log.Warnw("Error closing subscription", "key", key, "error", err)
		}
	}
	r.subscriptions = make(map[string]subscription)
	r.mu.Unlock()

	return nil
}

// HealthCheck verifies the Redis connection backing the event service.
func (r *RedisEventService) HealthCheck(ctx context.Context) error {
	if err := r.redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("event service unhealthy: %w", err)
	}
	return nil
}
