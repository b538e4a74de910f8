package models

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/WarikanHQ/warikan-backend/errors"
	"github.com/WarikanHQ/warikan-backend/internal/events"
	"github.com/WarikanHQ/warikan-backend/internal/store"
	"github.com/WarikanHQ/warikan-backend/internal/tally"
	"github.com/WarikanHQ/warikan-backend/logger"
	"github.com/WarikanHQ/warikan-backend/types"
)

// ScheduleModel handles schedule events, availability responses, and the vote
// tally computed from them.
type ScheduleModel struct {
	store          store.ScheduleStore
	eventPublisher types.EventPublisher
	dedupeVotes    bool
}

func NewScheduleModel(store store.ScheduleStore, eventPublisher types.EventPublisher, dedupeVotes bool) *ScheduleModel {
	return &ScheduleModel{
		store:          store,
		eventPublisher: eventPublisher,
		dedupeVotes:    dedupeVotes,
	}
}

func (m *ScheduleModel) CreateEvent(ctx context.Context, create *types.ScheduleEventCreate) (*types.ScheduleEvent, error) {
	log := logger.GetLogger()

	event := &types.ScheduleEvent{
		Title:       create.Title,
		Description: create.Description,
		Location:    create.Location,
		Budget:      create.Budget,
		Candidates:  create.Candidates,
	}
	if event.Candidates == nil {
		event.Candidates = []time.Time{}
	}

	id, err := m.store.CreateEvent(ctx, event)
	if err != nil {
		log.Errorw("Failed to create schedule event", "title", create.Title, "error", err)
		return nil, errors.NewDatabaseError(err)
	}

	created, err := m.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	m.publishEvent(ctx, types.EventTypeScheduleCreated, id, map[string]interface{}{
		"title": created.Title,
	})

	return created, nil
}

// GetEvent retrieves a schedule event. Optional fields always come back as
// their defaults rather than null so clients never see a half-initialized
// event.
func (m *ScheduleModel) GetEvent(ctx context.Context, id string) (*types.ScheduleEvent, error) {
	event, err := m.store.GetEvent(ctx, id)
	if err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return nil, errors.ScheduleEventNotFound(id)
		}
		return nil, errors.NewDatabaseError(err)
	}

	if event.Candidates == nil {
		event.Candidates = []time.Time{}
	}

	return event, nil
}

func (m *ScheduleModel) UpdateEvent(ctx context.Context, id string, update *types.ScheduleEventUpdate) (*types.ScheduleEvent, error) {
	log := logger.GetLogger()

	event, err := m.store.UpdateEvent(ctx, id, update)
	if err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return nil, errors.ScheduleEventNotFound(id)
		}
		log.Errorw("Failed to update schedule event", "eventId", id, "error", err)
		return nil, errors.NewDatabaseError(err)
	}

	if event.Candidates == nil {
		event.Candidates = []time.Time{}
	}

	m.publishEvent(ctx, types.EventTypeScheduleUpdated, id, nil)

	return event, nil
}

func (m *ScheduleModel) DeleteEvent(ctx context.Context, id string) error {
	if err := m.store.SoftDeleteEvent(ctx, id); err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return errors.ScheduleEventNotFound(id)
		}
		return errors.NewDatabaseError(err)
	}

	m.publishEvent(ctx, types.EventTypeScheduleDeleted, id, nil)
	return nil
}

func (m *ScheduleModel) AddResponse(ctx context.Context, eventID string, create *types.ScheduleResponseCreate) (*types.ScheduleResponse, error) {
	log := logger.GetLogger()

	if _, err := m.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}

	source := create.Source
	if source == "" {
		source = types.ParticipantSourceWeb
	}

	response := &types.ScheduleResponse{
		EventID:        eventID,
		RespondentName: create.RespondentName,
		Available:      create.Available,
		Source:         source,
	}
	if response.Available == nil {
		response.Available = []time.Time{}
	}

	id, err := m.store.AddResponse(ctx, response)
	if err != nil {
		log.Errorw("Failed to add schedule response", "eventId", eventID, "error", err)
		return nil, errors.NewDatabaseError(err)
	}

	added, err := m.store.GetResponse(ctx, eventID, id)
	if err != nil {
		return nil, errors.NewDatabaseError(err)
	}

	m.publishEvent(ctx, types.EventTypeScheduleResponseAdded, eventID, map[string]interface{}{
		"responseId":     id,
		"respondentName": added.RespondentName,
	})

	return added, nil
}

func (m *ScheduleModel) ListResponses(ctx context.Context, eventID string) ([]*types.ScheduleResponse, error) {
	if _, err := m.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}

	responses, err := m.store.ListResponses(ctx, eventID)
	if err != nil {
		return nil, errors.NewDatabaseError(err)
	}
	if responses == nil {
		responses = []*types.ScheduleResponse{}
	}
	return responses, nil
}

func (m *ScheduleModel) UpdateResponse(ctx context.Context, eventID, responseID string, update *types.ScheduleResponseUpdate) (*types.ScheduleResponse, error) {
	response, err := m.store.UpdateResponse(ctx, eventID, responseID, update)
	if err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFound("Schedule response", responseID)
		}
		return nil, errors.NewDatabaseError(err)
	}

	m.publishEvent(ctx, types.EventTypeScheduleResponseUpdated, eventID, map[string]interface{}{
		"responseId": responseID,
	})

	return response, nil
}

func (m *ScheduleModel) RemoveResponse(ctx context.Context, eventID, responseID string) error {
	if err := m.store.RemoveResponse(ctx, eventID, responseID); err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return errors.NotFound("Schedule response", responseID)
		}
		return errors.NewDatabaseError(err)
	}

	m.publishEvent(ctx, types.EventTypeScheduleResponseRemoved, eventID, map[string]interface{}{
		"responseId": responseID,
	})

	return nil
}

// GetTally counts availability votes per candidate for an event. Every
// candidate appears in the result, zero-voted ones included; leading candidates
// are all those tied at the maximum.
func (m *ScheduleModel) GetTally(ctx context.Context, eventID string) (*types.TallyResponse, error) {
	event, err := m.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	responses, err := m.store.ListResponses(ctx, eventID)
	if err != nil {
		return nil, errors.NewDatabaseError(err)
	}

	votes := make([]tally.Response, len(responses))
	for i, r := range responses {
		votes[i] = tally.Response{Available: r.Available}
	}

	result := tally.Tally(event.Candidates, votes, tally.Options{Dedupe: m.dedupeVotes})

	counts := make([]types.CandidateTally, len(result.Counts))
	for i, c := range result.Counts {
		counts[i] = types.CandidateTally{Candidate: c.Candidate, Votes: c.Votes}
	}
	leading := result.Leading
	if leading == nil {
		leading = []time.Time{}
	}

	return &types.TallyResponse{
		EventID:  eventID,
		Counts:   counts,
		MaxVotes: result.MaxCount,
		Leading:  leading,
	}, nil
}

func (m *ScheduleModel) publishEvent(ctx context.Context, eventType types.EventType, eventID string, data map[string]interface{}) {
	log := logger.GetLogger()

	if err := events.PublishEventWithContext(
		m.eventPublisher,
		ctx,
		eventType,
		eventID,
		data,
		"schedule-model",
	); err != nil {
		log.Warnw("Failed to publish schedule event",
			"error", err,
			"eventType", eventType,
			"scheduleEventId", eventID,
		)
	}
}
