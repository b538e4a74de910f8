package models

import (
	"context"
	"testing"
	"time"

	apperrors "github.com/WarikanHQ/warikan-backend/errors"
	"github.com/WarikanHQ/warikan-backend/internal/store"
	"github.com/WarikanHQ/warikan-backend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newPlanModelForTest(planStore *MockPlanStore, roleStore *MockRoleStore) *PlanModel {
	publisher := &stubPublisher{}
	return NewPlanModel(planStore, NewRoleModel(roleStore, publisher), publisher)
}

func standardRole(key types.StandardRoleKey) types.RoleRef {
	return types.RoleRef{Kind: types.RoleKindStandard, StandardKey: key}
}

func TestPlanModel_GetPlan(t *testing.T) {
	ctx := context.Background()

	t.Run("not found maps to typed error", func(t *testing.T) {
		mockStore := new(MockPlanStore)
		model := newPlanModelForTest(mockStore, new(MockRoleStore))

		mockStore.On("GetPlan", ctx, "missing").Return(nil, store.ErrNotFound).Once()

		_, err := model.GetPlan(ctx, "missing")
		require.Error(t, err)
		appErr, ok := err.(*apperrors.AppError)
		require.True(t, ok)
		assert.Equal(t, apperrors.NotFoundError, appErr.Type)
	})

	t.Run("empty collections come back non-nil", func(t *testing.T) {
		mockStore := new(MockPlanStore)
		model := newPlanModelForTest(mockStore, new(MockRoleStore))

		mockStore.On("GetPlan", ctx, "plan-1").Return(&types.Plan{ID: "plan-1"}, nil).Once()
		mockStore.On("ListParticipants", ctx, "plan-1").Return(nil, nil).Once()
		mockStore.On("ListAmountItems", ctx, "plan-1").Return(nil, nil).Once()

		resp, err := model.GetPlan(ctx, "plan-1")
		require.NoError(t, err)
		assert.NotNil(t, resp.Participants)
		assert.NotNil(t, resp.Items)
	})
}

func TestPlanModel_SetAmount(t *testing.T) {
	ctx := context.Background()

	t.Run("item sum becomes the stored total", func(t *testing.T) {
		mockStore := new(MockPlanStore)
		model := newPlanModelForTest(mockStore, new(MockRoleStore))

		items := []types.AmountItemInput{
			{Name: "Food", Amount: 10000},
			{Name: "Drinks", Amount: 5000},
		}
		mockStore.On("SetPlanAmount", ctx, "plan-1", int64(15000), items).Return(nil).Once()

		err := model.SetAmount(ctx, "plan-1", &types.PlanAmountUpdate{Items: items})
		require.NoError(t, err)
		mockStore.AssertExpectations(t)
	})

	t.Run("plain total stored with empty item list", func(t *testing.T) {
		mockStore := new(MockPlanStore)
		model := newPlanModelForTest(mockStore, new(MockRoleStore))

		total := int64(8000)
		mockStore.On("SetPlanAmount", ctx, "plan-1", int64(8000), []types.AmountItemInput(nil)).
			Return(nil).Once()

		err := model.SetAmount(ctx, "plan-1", &types.PlanAmountUpdate{Total: &total})
		require.NoError(t, err)
	})

	t.Run("both total and items rejected", func(t *testing.T) {
		mockStore := new(MockPlanStore)
		model := newPlanModelForTest(mockStore, new(MockRoleStore))

		total := int64(8000)
		err := model.SetAmount(ctx, "plan-1", &types.PlanAmountUpdate{
			Total: &total,
			Items: []types.AmountItemInput{{Name: "Food", Amount: 8000}},
		})
		require.Error(t, err)
		mockStore.AssertNotCalled(t, "SetPlanAmount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("neither total nor items rejected", func(t *testing.T) {
		mockStore := new(MockPlanStore)
		model := newPlanModelForTest(mockStore, new(MockRoleStore))

		err := model.SetAmount(ctx, "plan-1", &types.PlanAmountUpdate{})
		require.Error(t, err)
	})
}

func TestPlanModel_AddParticipant(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults role and source", func(t *testing.T) {
		mockStore := new(MockPlanStore)
		model := newPlanModelForTest(mockStore, new(MockRoleStore))

		mockStore.On("GetPlan", ctx, "plan-1").Return(&types.Plan{ID: "plan-1"}, nil).Once()
		mockStore.On("AddParticipant", ctx, mock.MatchedBy(func(p *types.Participant) bool {
			return p.Role.Kind == types.RoleKindStandard &&
				p.Role.StandardKey == types.RoleMember &&
				p.Source == types.ParticipantSourceManual
		})).Return("part-1", nil).Once()
		mockStore.On("GetParticipant", ctx, "plan-1", "part-1").
			Return(&types.Participant{ID: "part-1", Name: "Sato"}, nil).Once()

		participant, err := model.AddParticipant(ctx, "plan-1", &types.ParticipantCreate{Name: "Sato"})
		require.NoError(t, err)
		assert.Equal(t, "part-1", participant.ID)
		mockStore.AssertExpectations(t)
	})

	t.Run("unknown standard role rejected", func(t *testing.T) {
		mockStore := new(MockPlanStore)
		model := newPlanModelForTest(mockStore, new(MockRoleStore))

		mockStore.On("GetPlan", ctx, "plan-1").Return(&types.Plan{ID: "plan-1"}, nil).Once()

		_, err := model.AddParticipant(ctx, "plan-1", &types.ParticipantCreate{
			Name: "Sato",
			Role: types.RoleRef{Kind: types.RoleKindStandard, StandardKey: "intern"},
		})
		require.Error(t, err)
		mockStore.AssertNotCalled(t, "AddParticipant", mock.Anything, mock.Anything)
	})

	t.Run("custom role without ID rejected", func(t *testing.T) {
		mockStore := new(MockPlanStore)
		model := newPlanModelForTest(mockStore, new(MockRoleStore))

		mockStore.On("GetPlan", ctx, "plan-1").Return(&types.Plan{ID: "plan-1"}, nil).Once()

		_, err := model.AddParticipant(ctx, "plan-1", &types.ParticipantCreate{
			Name: "Sato",
			Role: types.RoleRef{Kind: types.RoleKindCustom},
		})
		require.Error(t, err)
	})
}

func TestPlanModel_GetAllocation(t *testing.T) {
	ctx := context.Background()

	expectRegistry := func(roleStore *MockRoleStore) {
		roleStore.On("ListRoleSettings", mock.Anything).
			Return(map[types.StandardRoleKey]types.RoleSetting{}, nil).Once()
		roleStore.On("ListCustomRoles", mock.Anything).
			Return([]*types.CustomRole{}, nil).Once()
	}

	t.Run("proportional split with role weights", func(t *testing.T) {
		mockStore := new(MockPlanStore)
		roleStore := new(MockRoleStore)
		model := newPlanModelForTest(mockStore, roleStore)

		mockStore.On("GetPlan", ctx, "plan-1").
			Return(&types.Plan{ID: "plan-1", TotalAmount: 10000}, nil).Once()
		mockStore.On("ListParticipants", ctx, "plan-1").Return([]*types.Participant{
			{ID: "p1", Name: "Sato", Role: standardRole(types.RoleOrganizer)},
			{ID: "p2", Name: "Suzuki", Role: standardRole(types.RoleMember)},
			{ID: "p3", Name: "Tanaka", Role: standardRole(types.RoleJunior)},
		}, nil).Once()
		mockStore.On("ListAmountItems", ctx, "plan-1").Return([]*types.AmountItem{}, nil).Once()
		expectRegistry(roleStore)

		resp, err := model.GetAllocation(ctx, "plan-1")
		require.NoError(t, err)
		assert.Equal(t, int64(10000), resp.Total)

		// Weights 1.5 : 1.0 : 0.5 over 10000.
		require.Len(t, resp.Charges, 3)
		assert.Equal(t, int64(5000), resp.Charges[0].Amount)
		assert.Equal(t, int64(3333), resp.Charges[1].Amount)
		assert.Equal(t, int64(1667), resp.Charges[2].Amount)

		var sum int64
		for _, c := range resp.Charges {
			sum += c.Amount
		}
		assert.Equal(t, resp.Total, sum)
	})

	t.Run("item sum overrides stored total", func(t *testing.T) {
		mockStore := new(MockPlanStore)
		roleStore := new(MockRoleStore)
		model := newPlanModelForTest(mockStore, roleStore)

		mockStore.On("GetPlan", ctx, "plan-1").
			Return(&types.Plan{ID: "plan-1", TotalAmount: 99999}, nil).Once()
		mockStore.On("ListParticipants", ctx, "plan-1").Return([]*types.Participant{
			{ID: "p1", Name: "Sato", Role: standardRole(types.RoleMember)},
			{ID: "p2", Name: "Suzuki", Role: standardRole(types.RoleMember)},
		}, nil).Once()
		mockStore.On("ListAmountItems", ctx, "plan-1").Return([]*types.AmountItem{
			{Name: "Food", Amount: 6000},
			{Name: "Drinks", Amount: 4000},
		}, nil).Once()
		expectRegistry(roleStore)

		resp, err := model.GetAllocation(ctx, "plan-1")
		require.NoError(t, err)
		assert.Equal(t, int64(10000), resp.Total)
		assert.Equal(t, int64(5000), resp.Charges[0].Amount)
		assert.Equal(t, int64(5000), resp.Charges[1].Amount)
	})

	t.Run("fixed amounts exceeding total is an error", func(t *testing.T) {
		mockStore := new(MockPlanStore)
		roleStore := new(MockRoleStore)
		model := newPlanModelForTest(mockStore, roleStore)

		mockStore.On("GetPlan", ctx, "plan-1").
			Return(&types.Plan{ID: "plan-1", TotalAmount: 10000}, nil).Once()
		mockStore.On("ListParticipants", ctx, "plan-1").Return([]*types.Participant{
			{ID: "p1", Name: "Sato", UseFixedAmount: true, FixedAmount: 7000},
			{ID: "p2", Name: "Suzuki", UseFixedAmount: true, FixedAmount: 5000},
		}, nil).Once()
		mockStore.On("ListAmountItems", ctx, "plan-1").Return([]*types.AmountItem{}, nil).Once()
		expectRegistry(roleStore)

		_, err := model.GetAllocation(ctx, "plan-1")
		require.Error(t, err)
		appErr, ok := err.(*apperrors.AppError)
		require.True(t, ok)
		assert.Equal(t, apperrors.OverAllocatedError, appErr.Type)
	})

	t.Run("unallocatable remainder returns partial result with error", func(t *testing.T) {
		mockStore := new(MockPlanStore)
		roleStore := new(MockRoleStore)
		model := newPlanModelForTest(mockStore, roleStore)

		zero := 0.0
		mockStore.On("GetPlan", ctx, "plan-1").Return(&types.Plan{
			ID:          "plan-1",
			TotalAmount: 10000,
			RoleOverrides: map[string]types.RoleOverride{
				"member": {Multiplier: &zero},
			},
		}, nil).Once()
		mockStore.On("ListParticipants", ctx, "plan-1").Return([]*types.Participant{
			{ID: "p1", Name: "Sato", UseFixedAmount: true, FixedAmount: 4000},
			{ID: "p2", Name: "Suzuki", Role: standardRole(types.RoleMember)},
		}, nil).Once()
		mockStore.On("ListAmountItems", ctx, "plan-1").Return([]*types.AmountItem{}, nil).Once()
		expectRegistry(roleStore)

		resp, err := model.GetAllocation(ctx, "plan-1")
		require.Error(t, err)
		appErr, ok := err.(*apperrors.AppError)
		require.True(t, ok)
		assert.Equal(t, apperrors.UnallocatedRemainderType, appErr.Type)

		require.NotNil(t, resp)
		assert.Equal(t, int64(6000), resp.Unallocated)
		assert.Equal(t, int64(4000), resp.Charges[0].Amount)
		assert.Equal(t, int64(0), resp.Charges[1].Amount)
	})

	t.Run("plan override changes a weight", func(t *testing.T) {
		mockStore := new(MockPlanStore)
		roleStore := new(MockRoleStore)
		model := newPlanModelForTest(mockStore, roleStore)

		three := 3.0
		mockStore.On("GetPlan", ctx, "plan-1").Return(&types.Plan{
			ID:          "plan-1",
			TotalAmount: 8000,
			RoleOverrides: map[string]types.RoleOverride{
				"organizer": {Multiplier: &three},
			},
		}, nil).Once()
		mockStore.On("ListParticipants", ctx, "plan-1").Return([]*types.Participant{
			{ID: "p1", Name: "Sato", Role: standardRole(types.RoleOrganizer)},
			{ID: "p2", Name: "Suzuki", Role: standardRole(types.RoleMember)},
		}, nil).Once()
		mockStore.On("ListAmountItems", ctx, "plan-1").Return([]*types.AmountItem{}, nil).Once()
		expectRegistry(roleStore)

		resp, err := model.GetAllocation(ctx, "plan-1")
		require.NoError(t, err)
		assert.Equal(t, int64(6000), resp.Charges[0].Amount)
		assert.Equal(t, int64(2000), resp.Charges[1].Amount)
	})
}

func TestPlanModel_CreatePlan_PublishesEvent(t *testing.T) {
	mockStore := new(MockPlanStore)
	publisher := &stubPublisher{}
	model := NewPlanModel(mockStore, NewRoleModel(new(MockRoleStore), publisher), publisher)
	ctx := context.Background()

	eventDate := time.Date(2026, 9, 18, 19, 0, 0, 0, time.UTC)
	mockStore.On("CreatePlan", ctx, mock.Anything).Return("plan-1", nil).Once()
	mockStore.On("GetPlan", ctx, "plan-1").
		Return(&types.Plan{ID: "plan-1", Name: "Year-end party", EventDate: eventDate}, nil).Once()

	plan, err := model.CreatePlan(ctx, &types.PlanCreate{Name: "Year-end party", EventDate: eventDate})
	require.NoError(t, err)
	assert.Equal(t, "plan-1", plan.ID)

	require.Len(t, publisher.published, 1)
	assert.Equal(t, types.EventTypePlanCreated, publisher.published[0].Type)
	assert.Equal(t, "plan-1", publisher.published[0].SubjectID)
}
