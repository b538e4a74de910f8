package models

import (
	"context"

	"github.com/WarikanHQ/warikan-backend/logger"
	"github.com/WarikanHQ/warikan-backend/types"
	"github.com/stretchr/testify/mock"
)

func init() {
	logger.IsTest = true
}

type MockRoleStore struct {
	mock.Mock
}

func (m *MockRoleStore) ListRoleSettings(ctx context.Context) (map[types.StandardRoleKey]types.RoleSetting, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[types.StandardRoleKey]types.RoleSetting), args.Error(1)
}

func (m *MockRoleStore) UpsertRoleSetting(ctx context.Context, setting *types.RoleSetting) error {
	args := m.Called(ctx, setting)
	return args.Error(0)
}

func (m *MockRoleStore) CreateCustomRole(ctx context.Context, role *types.CustomRole) (string, error) {
	args := m.Called(ctx, role)
	return args.String(0), args.Error(1)
}

func (m *MockRoleStore) GetCustomRole(ctx context.Context, id string) (*types.CustomRole, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.CustomRole), args.Error(1)
}

func (m *MockRoleStore) ListCustomRoles(ctx context.Context) ([]*types.CustomRole, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*types.CustomRole), args.Error(1)
}

func (m *MockRoleStore) UpdateCustomRole(ctx context.Context, id string, update *types.CustomRoleUpdate) (*types.CustomRole, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.CustomRole), args.Error(1)
}

func (m *MockRoleStore) DeleteCustomRole(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPlanStore struct {
	mock.Mock
}

func (m *MockPlanStore) CreatePlan(ctx context.Context, plan *types.Plan) (string, error) {
	args := m.Called(ctx, plan)
	return args.String(0), args.Error(1)
}

func (m *MockPlanStore) GetPlan(ctx context.Context, id string) (*types.Plan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Plan), args.Error(1)
}

func (m *MockPlanStore) ListPlans(ctx context.Context, limit, offset int) ([]*types.Plan, int, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*types.Plan), args.Int(1), args.Error(2)
}

func (m *MockPlanStore) UpdatePlan(ctx context.Context, id string, update *types.PlanUpdate) (*types.Plan, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Plan), args.Error(1)
}

func (m *MockPlanStore) SoftDeletePlan(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPlanStore) SetPlanAmount(ctx context.Context, planID string, total int64, items []types.AmountItemInput) error {
	args := m.Called(ctx, planID, total, items)
	return args.Error(0)
}

func (m *MockPlanStore) ListAmountItems(ctx context.Context, planID string) ([]*types.AmountItem, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*types.AmountItem), args.Error(1)
}

func (m *MockPlanStore) AddParticipant(ctx context.Context, participant *types.Participant) (string, error) {
	args := m.Called(ctx, participant)
	return args.String(0), args.Error(1)
}

func (m *MockPlanStore) GetParticipant(ctx context.Context, planID, participantID string) (*types.Participant, error) {
	args := m.Called(ctx, planID, participantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Participant), args.Error(1)
}

func (m *MockPlanStore) ListParticipants(ctx context.Context, planID string) ([]*types.Participant, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*types.Participant), args.Error(1)
}

func (m *MockPlanStore) UpdateParticipant(ctx context.Context, planID, participantID string, update *types.ParticipantUpdate) (*types.Participant, error) {
	args := m.Called(ctx, planID, participantID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Participant), args.Error(1)
}

func (m *MockPlanStore) RemoveParticipant(ctx context.Context, planID, participantID string) error {
	args := m.Called(ctx, planID, participantID)
	return args.Error(0)
}

type MockScheduleStore struct {
	mock.Mock
}

func (m *MockScheduleStore) CreateEvent(ctx context.Context, event *types.ScheduleEvent) (string, error) {
	args := m.Called(ctx, event)
	return args.String(0), args.Error(1)
}

func (m *MockScheduleStore) GetEvent(ctx context.Context, id string) (*types.ScheduleEvent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ScheduleEvent), args.Error(1)
}

func (m *MockScheduleStore) UpdateEvent(ctx context.Context, id string, update *types.ScheduleEventUpdate) (*types.ScheduleEvent, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ScheduleEvent), args.Error(1)
}

func (m *MockScheduleStore) SoftDeleteEvent(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockScheduleStore) AddResponse(ctx context.Context, response *types.ScheduleResponse) (string, error) {
	args := m.Called(ctx, response)
	return args.String(0), args.Error(1)
}

func (m *MockScheduleStore) GetResponse(ctx context.Context, eventID, responseID string) (*types.ScheduleResponse, error) {
	args := m.Called(ctx, eventID, responseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ScheduleResponse), args.Error(1)
}

func (m *MockScheduleStore) ListResponses(ctx context.Context, eventID string) ([]*types.ScheduleResponse, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*types.ScheduleResponse), args.Error(1)
}

func (m *MockScheduleStore) UpdateResponse(ctx context.Context, eventID, responseID string, update *types.ScheduleResponseUpdate) (*types.ScheduleResponse, error) {
	args := m.Called(ctx, eventID, responseID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ScheduleResponse), args.Error(1)
}

func (m *MockScheduleStore) RemoveResponse(ctx context.Context, eventID, responseID string) error {
	args := m.Called(ctx, eventID, responseID)
	return args.Error(0)
}

// stubPublisher records published events without asserting on them; mutations
// treat publishing as fire-and-forget so tests only inspect it when relevant.
type stubPublisher struct {
	published []types.Event
}

func (p *stubPublisher) Publish(_ context.Context, _ string, event types.Event) error {
	p.published = append(p.published, event)
	return nil
}

func (p *stubPublisher) Subscribe(context.Context, string, string, ...types.EventType) (<-chan types.Event, error) {
	return nil, nil
}

func (p *stubPublisher) Unsubscribe(context.Context, string, string) error {
	return nil
}
