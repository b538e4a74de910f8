package models

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/WarikanHQ/warikan-backend/errors"
	"github.com/WarikanHQ/warikan-backend/internal/events"
	"github.com/WarikanHQ/warikan-backend/internal/store"
	"github.com/WarikanHQ/warikan-backend/logger"
	"github.com/WarikanHQ/warikan-backend/types"
)

// RoleModel is the role registry: the closed set of standard roles plus
// user-created custom roles. Participants reference roles by key or ID and
// resolve to a multiplier only at allocation time.
type RoleModel struct {
	store          store.RoleStore
	eventPublisher types.EventPublisher
}

func NewRoleModel(store store.RoleStore, eventPublisher types.EventPublisher) *RoleModel {
	return &RoleModel{
		store:          store,
		eventPublisher: eventPublisher,
	}
}

// ListRoles returns the merged registry: every standard role with its current
// effective setting, in display order, followed by custom roles.
func (m *RoleModel) ListRoles(ctx context.Context) ([]types.RoleView, error) {
	settings, err := m.effectiveSettings(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]types.RoleView, 0, len(types.StandardRoleKeys))
	for _, key := range types.StandardRoleKeys {
		setting := settings[key]
		views = append(views, types.RoleView{
			Kind:        types.RoleKindStandard,
			StandardKey: key,
			Name:        setting.Name,
			Multiplier:  setting.Multiplier,
		})
	}

	customRoles, err := m.store.ListCustomRoles(ctx)
	if err != nil {
		return nil, errors.NewDatabaseError(err)
	}
	for _, role := range customRoles {
		views = append(views, types.RoleView{
			Kind:       types.RoleKindCustom,
			CustomID:   role.ID,
			Name:       role.Name,
			Multiplier: role.Multiplier,
		})
	}

	return views, nil
}

// UpdateRoleSetting edits a standard role's name or multiplier. The key set is
// closed; unknown keys are rejected.
func (m *RoleModel) UpdateRoleSetting(ctx context.Context, key types.StandardRoleKey, update *types.RoleSettingUpdate) (*types.RoleSetting, error) {
	log := logger.GetLogger()

	if !types.IsValidStandardRoleKey(key) {
		return nil, errors.ValidationFailed(
			"Unknown role key",
			fmt.Sprintf("%q is not a standard role", key),
		)
	}
	if err := validateMultiplier(update.Multiplier); err != nil {
		return nil, err
	}

	settings, err := m.effectiveSettings(ctx)
	if err != nil {
		return nil, err
	}
	setting := settings[key]
	if update.Name != nil {
		setting.Name = *update.Name
	}
	if update.Multiplier != nil {
		setting.Multiplier = *update.Multiplier
	}

	if err := m.store.UpsertRoleSetting(ctx, &setting); err != nil {
		log.Errorw("Failed to update role setting", "key", key, "error", err)
		return nil, errors.NewDatabaseError(err)
	}

	m.publishEvent(ctx, types.EventTypeRoleUpdated, string(key), map[string]interface{}{
		"name":       setting.Name,
		"multiplier": setting.Multiplier,
	})

	return &setting, nil
}

// CreateCustomRole adds a user-defined role. The multiplier defaults to 1.0
// when omitted.
func (m *RoleModel) CreateCustomRole(ctx context.Context, create *types.CustomRoleCreate) (*types.CustomRole, error) {
	log := logger.GetLogger()

	if err := validateMultiplier(create.Multiplier); err != nil {
		return nil, err
	}

	role := &types.CustomRole{
		Name:       create.Name,
		Multiplier: 1.0,
	}
	if create.Multiplier != nil {
		role.Multiplier = *create.Multiplier
	}

	id, err := m.store.CreateCustomRole(ctx, role)
	if err != nil {
		log.Errorw("Failed to create custom role", "name", create.Name, "error", err)
		return nil, errors.NewDatabaseError(err)
	}

	created, err := m.store.GetCustomRole(ctx, id)
	if err != nil {
		return nil, errors.NewDatabaseError(err)
	}

	m.publishEvent(ctx, types.EventTypeRoleUpdated, id, map[string]interface{}{
		"name":       created.Name,
		"multiplier": created.Multiplier,
	})

	return created, nil
}

func (m *RoleModel) GetCustomRole(ctx context.Context, id string) (*types.CustomRole, error) {
	role, err := m.store.GetCustomRole(ctx, id)
	if err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFound("Custom role", id)
		}
		return nil, errors.NewDatabaseError(err)
	}
	return role, nil
}

func (m *RoleModel) UpdateCustomRole(ctx context.Context, id string, update *types.CustomRoleUpdate) (*types.CustomRole, error) {
	if err := validateMultiplier(update.Multiplier); err != nil {
		return nil, err
	}

	role, err := m.store.UpdateCustomRole(ctx, id, update)
	if err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFound("Custom role", id)
		}
		return nil, errors.NewDatabaseError(err)
	}

	m.publishEvent(ctx, types.EventTypeRoleUpdated, id, map[string]interface{}{
		"name":       role.Name,
		"multiplier": role.Multiplier,
	})

	return role, nil
}

// DeleteCustomRole removes a custom role. Participants still referencing it
// fall back to a full share at allocation time.
func (m *RoleModel) DeleteCustomRole(ctx context.Context, id string) error {
	if err := m.store.DeleteCustomRole(ctx, id); err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return errors.NotFound("Custom role", id)
		}
		return errors.NewDatabaseError(err)
	}

	m.publishEvent(ctx, types.EventTypeRoleUpdated, id, nil)
	return nil
}

// Resolver loads the registry once and returns a lookup for resolving
// participant roles to multipliers. Allocation resolves every participant
// through one snapshot so a concurrent registry edit cannot split a single
// computation.
func (m *RoleModel) Resolver(ctx context.Context) (*RoleResolver, error) {
	settings, err := m.effectiveSettings(ctx)
	if err != nil {
		return nil, err
	}

	customRoles, err := m.store.ListCustomRoles(ctx)
	if err != nil {
		return nil, errors.NewDatabaseError(err)
	}
	custom := make(map[string]*types.CustomRole, len(customRoles))
	for _, role := range customRoles {
		custom[role.ID] = role
	}

	return &RoleResolver{settings: settings, custom: custom}, nil
}

// RoleResolver resolves role references to effective multipliers against a
// single registry snapshot.
type RoleResolver struct {
	settings map[types.StandardRoleKey]types.RoleSetting
	custom   map[string]*types.CustomRole
}

// Multiplier resolves a role reference, applying per-plan overrides on top of
// the registry value. A dangling custom reference resolves to a full share.
func (r *RoleResolver) Multiplier(ref types.RoleRef, overrides map[string]types.RoleOverride) float64 {
	var multiplier float64
	var overrideKey string

	switch ref.Kind {
	case types.RoleKindCustom:
		overrideKey = ref.CustomID
		if role, ok := r.custom[ref.CustomID]; ok {
			multiplier = role.Multiplier
		} else {
			multiplier = 1.0
		}
	default:
		overrideKey = string(ref.StandardKey)
		if setting, ok := r.settings[ref.StandardKey]; ok {
			multiplier = setting.Multiplier
		} else {
			multiplier = 1.0
		}
	}

	if override, ok := overrides[overrideKey]; ok && override.Multiplier != nil {
		multiplier = *override.Multiplier
	}

	return multiplier
}

// effectiveSettings merges the shipped defaults with persisted edits.
func (m *RoleModel) effectiveSettings(ctx context.Context) (map[types.StandardRoleKey]types.RoleSetting, error) {
	settings := types.DefaultRoleSettings()

	stored, err := m.store.ListRoleSettings(ctx)
	if err != nil {
		return nil, errors.NewDatabaseError(err)
	}
	for key, setting := range stored {
		if types.IsValidStandardRoleKey(key) {
			settings[key] = setting
		}
	}

	return settings, nil
}

func validateMultiplier(multiplier *float64) error {
	if multiplier != nil && *multiplier < 0 {
		return errors.ValidationFailed(
			"Invalid multiplier",
			"multiplier must be zero or positive",
		)
	}
	return nil
}

func (m *RoleModel) publishEvent(ctx context.Context, eventType types.EventType, subjectID string, data map[string]interface{}) {
	log := logger.GetLogger()

	if err := events.PublishEventWithContext(
		m.eventPublisher,
		ctx,
		eventType,
		subjectID,
		data,
		"role-model",
	); err != nil {
		log.Warnw("Failed to publish role event",
			"error", err,
			"eventType", eventType,
			"subjectId", subjectID,
		)
	}
}
