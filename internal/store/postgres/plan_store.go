package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/WarikanHQ/warikan-backend/internal/store"
	"github.com/WarikanHQ/warikan-backend/types"
	"github.com/jackc/pgx/v5"
)

// Ensure PlanStore implements the store.PlanStore interface.
var _ store.PlanStore = (*PlanStore)(nil)

// PlanStore implements store.PlanStore using PostgreSQL.
type PlanStore struct {
	db DB
}

// NewPlanStore creates a new PlanStore instance.
func NewPlanStore(db DB) *PlanStore {
	return &PlanStore{db: db}
}

// CreatePlan inserts a new plan and returns its generated ID.
func (s *PlanStore) CreatePlan(ctx context.Context, plan *types.Plan) (string, error) {
	overrides, err := marshalRoleOverrides(plan.RoleOverrides)
	if err != nil {
		return "", err
	}

	query := `
		INSERT INTO plans (name, event_date, total_amount, role_overrides, schedule_event_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	var id string
	err = s.db.QueryRow(ctx, query,
		plan.Name,
		plan.EventDate,
		plan.TotalAmount,
		overrides,
		plan.ScheduleEventID,
	).Scan(&id)
	if err != nil {
		return "", err
	}

	return id, nil
}

// GetPlan retrieves a plan by its ID.
func (s *PlanStore) GetPlan(ctx context.Context, id string) (*types.Plan, error) {
	query := `
		SELECT id, name, event_date, total_amount, role_overrides, schedule_event_id, created_at, updated_at
		FROM plans
		WHERE id = $1 AND deleted_at IS NULL`

	plan := &types.Plan{}
	var overrides []byte
	err := s.db.QueryRow(ctx, query, id).Scan(
		&plan.ID,
		&plan.Name,
		&plan.EventDate,
		&plan.TotalAmount,
		&overrides,
		&plan.ScheduleEventID,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}

	if err := plan.UnmarshalRoleOverrides(overrides); err != nil {
		return nil, fmt.Errorf("failed to parse role overrides: %w", err)
	}

	return plan, nil
}

// ListPlans retrieves plans ordered by event date, newest first.
func (s *PlanStore) ListPlans(ctx context.Context, limit, offset int) ([]*types.Plan, int, error) {
	var total int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM plans WHERE deleted_at IS NULL`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, name, event_date, total_amount, role_overrides, schedule_event_id, created_at, updated_at
		FROM plans
		WHERE deleted_at IS NULL
		ORDER BY event_date DESC, created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := s.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var plans []*types.Plan
	for rows.Next() {
		plan := &types.Plan{}
		var overrides []byte
		err := rows.Scan(
			&plan.ID,
			&plan.Name,
			&plan.EventDate,
			&plan.TotalAmount,
			&overrides,
			&plan.ScheduleEventID,
			&plan.CreatedAt,
			&plan.UpdatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		if err := plan.UnmarshalRoleOverrides(overrides); err != nil {
			return nil, 0, fmt.Errorf("failed to parse role overrides: %w", err)
		}
		plans = append(plans, plan)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return plans, total, nil
}

// UpdatePlan applies a partial update and returns the updated plan.
func (s *PlanStore) UpdatePlan(ctx context.Context, id string, update *types.PlanUpdate) (*types.Plan, error) {
	var overrides []byte
	if update.RoleOverrides != nil {
		var err error
		overrides, err = json.Marshal(update.RoleOverrides)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal role overrides: %w", err)
		}
	}

	query := `
		UPDATE plans
		SET name = COALESCE($1, name),
			event_date = COALESCE($2, event_date),
			role_overrides = COALESCE($3, role_overrides),
			schedule_event_id = COALESCE($4, schedule_event_id),
			updated_at = NOW()
		WHERE id = $5 AND deleted_at IS NULL
		RETURNING id, name, event_date, total_amount, role_overrides, schedule_event_id, created_at, updated_at`

	plan := &types.Plan{}
	var storedOverrides []byte
	err := s.db.QueryRow(ctx, query,
		update.Name,
		update.EventDate,
		overrides,
		update.ScheduleEventID,
		id,
	).Scan(
		&plan.ID,
		&plan.Name,
		&plan.EventDate,
		&plan.TotalAmount,
		&storedOverrides,
		&plan.ScheduleEventID,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}

	if err := plan.UnmarshalRoleOverrides(storedOverrides); err != nil {
		return nil, fmt.Errorf("failed to parse role overrides: %w", err)
	}

	return plan, nil
}

// SoftDeletePlan marks a plan as deleted.
func (s *PlanStore) SoftDeletePlan(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE plans SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// SetPlanAmount atomically replaces the stored total and the item list.
// When items exist their sum is the authoritative total; the caller passes the
// recomputed value in total.
func (s *PlanStore) SetPlanAmount(ctx context.Context, planID string, total int64, items []types.AmountItemInput) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	tag, err := tx.Exec(ctx,
		`UPDATE plans SET total_amount = $1, updated_at = NOW() WHERE id = $2 AND deleted_at IS NULL`,
		total, planID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM amount_items WHERE plan_id = $1`, planID); err != nil {
		return err
	}

	for i, item := range items {
		_, err := tx.Exec(ctx,
			`INSERT INTO amount_items (plan_id, name, amount, position) VALUES ($1, $2, $3, $4)`,
			planID, item.Name, item.Amount, i)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// ListAmountItems retrieves a plan's amount items in position order.
func (s *PlanStore) ListAmountItems(ctx context.Context, planID string) ([]*types.AmountItem, error) {
	query := `
		SELECT id, plan_id, name, amount, position
		FROM amount_items
		WHERE plan_id = $1
		ORDER BY position`

	rows, err := s.db.Query(ctx, query, planID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*types.AmountItem
	for rows.Next() {
		item := &types.AmountItem{}
		if err := rows.Scan(&item.ID, &item.PlanID, &item.Name, &item.Amount, &item.Position); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// AddParticipant inserts a participant and returns its generated ID.
func (s *PlanStore) AddParticipant(ctx context.Context, p *types.Participant) (string, error) {
	roleKey, customRoleID := roleRefColumns(p.Role)

	query := `
		INSERT INTO participants (plan_id, name, role_kind, role_key, custom_role_id, use_fixed_amount, fixed_amount, collected, source)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	var id string
	err := s.db.QueryRow(ctx, query,
		p.PlanID,
		p.Name,
		p.Role.Kind,
		roleKey,
		customRoleID,
		p.UseFixedAmount,
		p.FixedAmount,
		p.Collected,
		p.Source,
	).Scan(&id)
	if err != nil {
		return "", err
	}

	return id, nil
}

const participantColumns = `id, plan_id, name, role_kind, role_key, custom_role_id, use_fixed_amount, fixed_amount, collected, source, created_at, updated_at`

// GetParticipant retrieves one participant, scoped to its plan.
func (s *PlanStore) GetParticipant(ctx context.Context, planID, participantID string) (*types.Participant, error) {
	query := `
		SELECT ` + participantColumns + `
		FROM participants
		WHERE id = $1 AND plan_id = $2`

	row := s.db.QueryRow(ctx, query, participantID, planID)
	p, err := scanParticipant(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// ListParticipants retrieves a plan's participants in insertion order. The
// order matters: allocation remainder ties break on it.
func (s *PlanStore) ListParticipants(ctx context.Context, planID string) ([]*types.Participant, error) {
	query := `
		SELECT ` + participantColumns + `
		FROM participants
		WHERE plan_id = $1
		ORDER BY created_at, id`

	rows, err := s.db.Query(ctx, query, planID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var participants []*types.Participant
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return participants, nil
}

// UpdateParticipant applies a partial update and returns the updated row.
func (s *PlanStore) UpdateParticipant(ctx context.Context, planID, participantID string, update *types.ParticipantUpdate) (*types.Participant, error) {
	var roleKind *types.RoleKind
	var roleKey, customRoleID *string
	if update.Role != nil {
		roleKind = &update.Role.Kind
		roleKey, customRoleID = roleRefColumns(*update.Role)
	}

	query := `
		UPDATE participants
		SET name = COALESCE($1, name),
			role_kind = COALESCE($2, role_kind),
			role_key = CASE WHEN $2::text IS NULL THEN role_key ELSE $3 END,
			custom_role_id = CASE WHEN $2::text IS NULL THEN custom_role_id ELSE $4 END,
			use_fixed_amount = COALESCE($5, use_fixed_amount),
			fixed_amount = COALESCE($6, fixed_amount),
			collected = COALESCE($7, collected),
			updated_at = NOW()
		WHERE id = $8 AND plan_id = $9
		RETURNING ` + participantColumns

	row := s.db.QueryRow(ctx, query,
		update.Name,
		roleKind,
		roleKey,
		customRoleID,
		update.UseFixedAmount,
		update.FixedAmount,
		update.Collected,
		participantID,
		planID,
	)
	p, err := scanParticipant(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// RemoveParticipant deletes a participant from a plan.
func (s *PlanStore) RemoveParticipant(ctx context.Context, planID, participantID string) error {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM participants WHERE id = $1 AND plan_id = $2`, participantID, planID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// roleRefColumns splits a RoleRef into its nullable column values.
func roleRefColumns(ref types.RoleRef) (roleKey, customRoleID *string) {
	switch ref.Kind {
	case types.RoleKindStandard:
		key := string(ref.StandardKey)
		return &key, nil
	case types.RoleKindCustom:
		id := ref.CustomID
		return nil, &id
	}
	return nil, nil
}

func scanParticipant(row pgx.Row) (*types.Participant, error) {
	p := &types.Participant{}
	var roleKey, customRoleID *string
	err := row.Scan(
		&p.ID,
		&p.PlanID,
		&p.Name,
		&p.Role.Kind,
		&roleKey,
		&customRoleID,
		&p.UseFixedAmount,
		&p.FixedAmount,
		&p.Collected,
		&p.Source,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if roleKey != nil {
		p.Role.StandardKey = types.StandardRoleKey(*roleKey)
	}
	if customRoleID != nil {
		p.Role.CustomID = *customRoleID
	}
	return p, nil
}

func marshalRoleOverrides(overrides map[string]types.RoleOverride) ([]byte, error) {
	if overrides == nil {
		return []byte("{}"), nil
	}
	data, err := json.Marshal(overrides)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal role overrides: %w", err)
	}
	return data, nil
}
