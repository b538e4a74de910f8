package postgres

import (
	"context"
	"errors"

	"github.com/WarikanHQ/warikan-backend/internal/store"
	"github.com/WarikanHQ/warikan-backend/types"
	"github.com/jackc/pgx/v5"
)

var _ store.ScheduleStore = (*ScheduleStore)(nil)

// ScheduleStore implements store.ScheduleStore using PostgreSQL. Candidate and
// availability date-times are timestamptz arrays, kept in submission order.
type ScheduleStore struct {
	db DB
}

// NewScheduleStore creates a new ScheduleStore instance.
func NewScheduleStore(db DB) *ScheduleStore {
	return &ScheduleStore{db: db}
}

// CreateEvent inserts a schedule event and returns its generated ID.
func (s *ScheduleStore) CreateEvent(ctx context.Context, event *types.ScheduleEvent) (string, error) {
	query := `
		INSERT INTO schedule_events (title, description, location, budget, candidates)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	var id string
	err := s.db.QueryRow(ctx, query,
		event.Title,
		event.Description,
		event.Location,
		event.Budget,
		event.Candidates,
	).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

// GetEvent retrieves a schedule event by ID.
func (s *ScheduleStore) GetEvent(ctx context.Context, id string) (*types.ScheduleEvent, error) {
	query := `
		SELECT id, title, description, location, budget, candidates, created_at, updated_at
		FROM schedule_events
		WHERE id = $1 AND deleted_at IS NULL`

	event := &types.ScheduleEvent{}
	err := s.db.QueryRow(ctx, query, id).Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.Location,
		&event.Budget,
		&event.Candidates,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return event, nil
}

// UpdateEvent applies a partial update and returns the updated event.
func (s *ScheduleStore) UpdateEvent(ctx context.Context, id string, update *types.ScheduleEventUpdate) (*types.ScheduleEvent, error) {
	query := `
		UPDATE schedule_events
		SET title = COALESCE($1, title),
			description = COALESCE($2, description),
			location = COALESCE($3, location),
			budget = COALESCE($4, budget),
			candidates = COALESCE($5, candidates),
			updated_at = NOW()
		WHERE id = $6 AND deleted_at IS NULL
		RETURNING id, title, description, location, budget, candidates, created_at, updated_at`

	event := &types.ScheduleEvent{}
	err := s.db.QueryRow(ctx, query,
		update.Title,
		update.Description,
		update.Location,
		update.Budget,
		update.Candidates,
		id,
	).Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.Location,
		&event.Budget,
		&event.Candidates,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return event, nil
}

// SoftDeleteEvent marks a schedule event as deleted.
func (s *ScheduleStore) SoftDeleteEvent(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE schedule_events SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// AddResponse inserts an availability response and returns its generated ID.
func (s *ScheduleStore) AddResponse(ctx context.Context, response *types.ScheduleResponse) (string, error) {
	query := `
		INSERT INTO schedule_responses (event_id, respondent_name, available, source)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	var id string
	err := s.db.QueryRow(ctx, query,
		response.EventID,
		response.RespondentName,
		response.Available,
		response.Source,
	).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

// GetResponse retrieves one response, scoped to its event.
func (s *ScheduleStore) GetResponse(ctx context.Context, eventID, responseID string) (*types.ScheduleResponse, error) {
	query := `
		SELECT id, event_id, respondent_name, available, source, created_at, updated_at
		FROM schedule_responses
		WHERE id = $1 AND event_id = $2`

	response := &types.ScheduleResponse{}
	err := s.db.QueryRow(ctx, query, responseID, eventID).Scan(
		&response.ID,
		&response.EventID,
		&response.RespondentName,
		&response.Available,
		&response.Source,
		&response.CreatedAt,
		&response.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return response, nil
}

// ListResponses retrieves an event's responses in submission order.
func (s *ScheduleStore) ListResponses(ctx context.Context, eventID string) ([]*types.ScheduleResponse, error) {
	query := `
		SELECT id, event_id, respondent_name, available, source, created_at, updated_at
		FROM schedule_responses
		WHERE event_id = $1
		ORDER BY created_at, id`

	rows, err := s.db.Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var responses []*types.ScheduleResponse
	for rows.Next() {
		response := &types.ScheduleResponse{}
		err := rows.Scan(
			&response.ID,
			&response.EventID,
			&response.RespondentName,
			&response.Available,
			&response.Source,
			&response.CreatedAt,
			&response.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		responses = append(responses, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return responses, nil
}

// UpdateResponse applies a partial update and returns the updated response.
func (s *ScheduleStore) UpdateResponse(ctx context.Context, eventID, responseID string, update *types.ScheduleResponseUpdate) (*types.ScheduleResponse, error) {
	query := `
		UPDATE schedule_responses
		SET respondent_name = COALESCE($1, respondent_name),
			available = COALESCE($2, available),
			updated_at = NOW()
		WHERE id = $3 AND event_id = $4
		RETURNING id, event_id, respondent_name, available, source, created_at, updated_at`

	response := &types.ScheduleResponse{}
	err := s.db.QueryRow(ctx, query,
		update.RespondentName,
		update.Available,
		responseID,
		eventID,
	).Scan(
		&response.ID,
		&response.EventID,
		&response.RespondentName,
		&response.Available,
		&response.Source,
		&response.CreatedAt,
		&response.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return response, nil
}

// RemoveResponse deletes a response from an event.
func (s *ScheduleStore) RemoveResponse(ctx context.Context, eventID, responseID string) error {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM schedule_responses WHERE id = $1 AND event_id = $2`, responseID, eventID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
