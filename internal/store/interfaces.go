// Package store defines the persistence interfaces the models depend on.
// Implementations live in the postgres subpackage; tests substitute mocks.
package store

import (
	"context"

	"github.com/WarikanHQ/warikan-backend/types"
)

// RoleStore handles the role registry: standard role settings and custom roles.
type RoleStore interface {
	// ListRoleSettings returns the persisted standard-role overrides, keyed by
	// role key. Missing keys fall back to the shipped defaults.
	ListRoleSettings(ctx context.Context) (map[types.StandardRoleKey]types.RoleSetting, error)
	UpsertRoleSetting(ctx context.Context, setting *types.RoleSetting) error

	CreateCustomRole(ctx context.Context, role *types.CustomRole) (string, error)
	GetCustomRole(ctx context.Context, id string) (*types.CustomRole, error)
	ListCustomRoles(ctx context.Context) ([]*types.CustomRole, error)
	UpdateCustomRole(ctx context.Context, id string, update *types.CustomRoleUpdate) (*types.CustomRole, error)
	DeleteCustomRole(ctx context.Context, id string) error
}

// PlanStore handles plans, their participants, and their amount items.
type PlanStore interface {
	CreatePlan(ctx context.Context, plan *types.Plan) (string, error)
	GetPlan(ctx context.Context, id string) (*types.Plan, error)
	ListPlans(ctx context.Context, limit, offset int) ([]*types.Plan, int, error)
	UpdatePlan(ctx context.Context, id string, update *types.PlanUpdate) (*types.Plan, error)
	SoftDeletePlan(ctx context.Context, id string) error

	// SetPlanAmount replaces the plan's amount specification atomically:
	// the stored total and the item list (which may be empty).
	SetPlanAmount(ctx context.Context, planID string, total int64, items []types.AmountItemInput) error
	ListAmountItems(ctx context.Context, planID string) ([]*types.AmountItem, error)

	AddParticipant(ctx context.Context, participant *types.Participant) (string, error)
	GetParticipant(ctx context.Context, planID, participantID string) (*types.Participant, error)
	ListParticipants(ctx context.Context, planID string) ([]*types.Participant, error)
	UpdateParticipant(ctx context.Context, planID, participantID string, update *types.ParticipantUpdate) (*types.Participant, error)
	RemoveParticipant(ctx context.Context, planID, participantID string) error
}

// ScheduleStore handles schedule events and their availability responses.
type ScheduleStore interface {
	CreateEvent(ctx context.Context, event *types.ScheduleEvent) (string, error)
	GetEvent(ctx context.Context, id string) (*types.ScheduleEvent, error)
	UpdateEvent(ctx context.Context, id string, update *types.ScheduleEventUpdate) (*types.ScheduleEvent, error)
	SoftDeleteEvent(ctx context.Context, id string) error

	AddResponse(ctx context.Context, response *types.ScheduleResponse) (string, error)
	GetResponse(ctx context.Context, eventID, responseID string) (*types.ScheduleResponse, error)
	ListResponses(ctx context.Context, eventID string) ([]*types.ScheduleResponse, error)
	UpdateResponse(ctx context.Context, eventID, responseID string, update *types.ScheduleResponseUpdate) (*types.ScheduleResponse, error)
	RemoveResponse(ctx context.Context, eventID, responseID string) error
}
