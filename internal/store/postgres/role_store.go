package postgres

import (
	"context"
	"errors"

	"github.com/WarikanHQ/warikan-backend/internal/store"
	"github.com/WarikanHQ/warikan-backend/types"
	"github.com/jackc/pgx/v5"
)

var _ store.RoleStore = (*RoleStore)(nil)

// RoleStore implements store.RoleStore using PostgreSQL.
type RoleStore struct {
	db DB
}

// NewRoleStore creates a new RoleStore instance.
func NewRoleStore(db DB) *RoleStore {
	return &RoleStore{db: db}
}

// ListRoleSettings returns the persisted standard-role overrides. Roles that
// were never edited have no row here.
func (s *RoleStore) ListRoleSettings(ctx context.Context) (map[types.StandardRoleKey]types.RoleSetting, error) {
	query := `
		SELECT key, name, multiplier, updated_at
		FROM role_settings`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settings := make(map[types.StandardRoleKey]types.RoleSetting)
	for rows.Next() {
		var setting types.RoleSetting
		if err := rows.Scan(&setting.Key, &setting.Name, &setting.Multiplier, &setting.UpdatedAt); err != nil {
			return nil, err
		}
		settings[setting.Key] = setting
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return settings, nil
}

// UpsertRoleSetting persists an edited standard-role setting.
func (s *RoleStore) UpsertRoleSetting(ctx context.Context, setting *types.RoleSetting) error {
	query := `
		INSERT INTO role_settings (key, name, multiplier, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (key) DO UPDATE
		SET name = EXCLUDED.name,
			multiplier = EXCLUDED.multiplier,
			updated_at = NOW()`

	_, err := s.db.Exec(ctx, query, setting.Key, setting.Name, setting.Multiplier)
	return err
}

// CreateCustomRole inserts a custom role and returns its generated ID.
func (s *RoleStore) CreateCustomRole(ctx context.Context, role *types.CustomRole) (string, error) {
	query := `
		INSERT INTO custom_roles (name, multiplier)
		VALUES ($1, $2)
		RETURNING id`

	var id string
	if err := s.db.QueryRow(ctx, query, role.Name, role.Multiplier).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

// GetCustomRole retrieves a custom role by ID.
func (s *RoleStore) GetCustomRole(ctx context.Context, id string) (*types.CustomRole, error) {
	query := `
		SELECT id, name, multiplier, created_at, updated_at
		FROM custom_roles
		WHERE id = $1 AND deleted_at IS NULL`

	role := &types.CustomRole{}
	err := s.db.QueryRow(ctx, query, id).Scan(
		&role.ID, &role.Name, &role.Multiplier, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return role, nil
}

// ListCustomRoles retrieves all live custom roles in creation order.
func (s *RoleStore) ListCustomRoles(ctx context.Context) ([]*types.CustomRole, error) {
	query := `
		SELECT id, name, multiplier, created_at, updated_at
		FROM custom_roles
		WHERE deleted_at IS NULL
		ORDER BY created_at, id`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []*types.CustomRole
	for rows.Next() {
		role := &types.CustomRole{}
		if err := rows.Scan(&role.ID, &role.Name, &role.Multiplier, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return roles, nil
}

// UpdateCustomRole applies a partial update and returns the updated role.
func (s *RoleStore) UpdateCustomRole(ctx context.Context, id string, update *types.CustomRoleUpdate) (*types.CustomRole, error) {
	query := `
		UPDATE custom_roles
		SET name = COALESCE($1, name),
			multiplier = COALESCE($2, multiplier),
			updated_at = NOW()
		WHERE id = $3 AND deleted_at IS NULL
		RETURNING id, name, multiplier, created_at, updated_at`

	role := &types.CustomRole{}
	err := s.db.QueryRow(ctx, query, update.Name, update.Multiplier, id).Scan(
		&role.ID, &role.Name, &role.Multiplier, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return role, nil
}

// DeleteCustomRole soft-deletes a custom role. Participants still referencing
// it resolve to the default multiplier afterwards.
func (s *RoleStore) DeleteCustomRole(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE custom_roles SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
