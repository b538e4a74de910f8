package models

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/WarikanHQ/warikan-backend/errors"
	"github.com/WarikanHQ/warikan-backend/internal/allocation"
	"github.com/WarikanHQ/warikan-backend/internal/events"
	"github.com/WarikanHQ/warikan-backend/internal/store"
	"github.com/WarikanHQ/warikan-backend/logger"
	"github.com/WarikanHQ/warikan-backend/types"
)

// PlanModel handles plans, their participants and amount items, and exposes
// the allocation computed from them.
type PlanModel struct {
	store          store.PlanStore
	roleModel      *RoleModel
	eventPublisher types.EventPublisher
}

func NewPlanModel(store store.PlanStore, roleModel *RoleModel, eventPublisher types.EventPublisher) *PlanModel {
	return &PlanModel{
		store:          store,
		roleModel:      roleModel,
		eventPublisher: eventPublisher,
	}
}

func (m *PlanModel) CreatePlan(ctx context.Context, create *types.PlanCreate) (*types.Plan, error) {
	log := logger.GetLogger()

	plan := &types.Plan{
		Name:            create.Name,
		EventDate:       create.EventDate,
		TotalAmount:     create.TotalAmount,
		ScheduleEventID: create.ScheduleEventID,
	}

	id, err := m.store.CreatePlan(ctx, plan)
	if err != nil {
		log.Errorw("Failed to create plan", "name", create.Name, "error", err)
		return nil, errors.NewDatabaseError(err)
	}

	created, err := m.store.GetPlan(ctx, id)
	if err != nil {
		return nil, errors.NewDatabaseError(err)
	}

	m.publishEvent(ctx, types.EventTypePlanCreated, id, map[string]interface{}{
		"name": created.Name,
	})

	return created, nil
}

// GetPlan returns a plan with its participants and amount items.
func (m *PlanModel) GetPlan(ctx context.Context, id string) (*types.PlanResponse, error) {
	plan, err := m.store.GetPlan(ctx, id)
	if err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return nil, errors.PlanNotFound(id)
		}
		return nil, errors.NewDatabaseError(err)
	}

	participants, err := m.store.ListParticipants(ctx, id)
	if err != nil {
		return nil, errors.NewDatabaseError(err)
	}

	items, err := m.store.ListAmountItems(ctx, id)
	if err != nil {
		return nil, errors.NewDatabaseError(err)
	}

	if participants == nil {
		participants = []*types.Participant{}
	}
	if items == nil {
		items = []*types.AmountItem{}
	}

	return &types.PlanResponse{
		Plan:         *plan,
		Participants: participants,
		Items:        items,
	}, nil
}

func (m *PlanModel) ListPlans(ctx context.Context, limit, offset int) ([]*types.Plan, int, error) {
	plans, total, err := m.store.ListPlans(ctx, limit, offset)
	if err != nil {
		return nil, 0, errors.NewDatabaseError(err)
	}
	if plans == nil {
		plans = []*types.Plan{}
	}
	return plans, total, nil
}

func (m *PlanModel) UpdatePlan(ctx context.Context, id string, update *types.PlanUpdate) (*types.Plan, error) {
	log := logger.GetLogger()

	if err := validateRoleOverrides(update.RoleOverrides); err != nil {
		return nil, err
	}

	plan, err := m.store.UpdatePlan(ctx, id, update)
	if err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return nil, errors.PlanNotFound(id)
		}
		log.Errorw("Failed to update plan", "planId", id, "error", err)
		return nil, errors.NewDatabaseError(err)
	}

	m.publishEvent(ctx, types.EventTypePlanUpdated, id, nil)

	return plan, nil
}

func (m *PlanModel) DeletePlan(ctx context.Context, id string) error {
	if err := m.store.SoftDeletePlan(ctx, id); err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return errors.PlanNotFound(id)
		}
		return errors.NewDatabaseError(err)
	}

	m.publishEvent(ctx, types.EventTypePlanDeleted, id, nil)
	return nil
}

// SetAmount replaces the plan's amount specification. A request carries either
// a single total or an item list; when items are present their sum becomes the
// stored total.
func (m *PlanModel) SetAmount(ctx context.Context, planID string, update *types.PlanAmountUpdate) error {
	log := logger.GetLogger()

	if update.Total != nil && len(update.Items) > 0 {
		return errors.ValidationFailed(
			"Invalid amount update",
			"supply either a total or an item list, not both",
		)
	}
	if update.Total == nil && len(update.Items) == 0 {
		return errors.ValidationFailed(
			"Invalid amount update",
			"a total or an item list is required",
		)
	}

	var total int64
	if update.Total != nil {
		total = *update.Total
	} else {
		for _, item := range update.Items {
			if item.Amount < 0 {
				return errors.ValidationFailed(
					"Invalid amount update",
					fmt.Sprintf("item %q has a negative amount", item.Name),
				)
			}
			total += item.Amount
		}
	}

	if err := m.store.SetPlanAmount(ctx, planID, total, update.Items); err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return errors.PlanNotFound(planID)
		}
		log.Errorw("Failed to set plan amount", "planId", planID, "error", err)
		return errors.NewDatabaseError(err)
	}

	m.publishEvent(ctx, types.EventTypePlanAmountUpdated, planID, map[string]interface{}{
		"total": total,
	})

	return nil
}

func (m *PlanModel) AddParticipant(ctx context.Context, planID string, create *types.ParticipantCreate) (*types.Participant, error) {
	log := logger.GetLogger()

	if _, err := m.store.GetPlan(ctx, planID); err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return nil, errors.PlanNotFound(planID)
		}
		return nil, errors.NewDatabaseError(err)
	}

	role, err := normalizeRoleRef(create.Role)
	if err != nil {
		return nil, err
	}

	source := create.Source
	if source == "" {
		source = types.ParticipantSourceManual
	}

	participant := &types.Participant{
		PlanID:         planID,
		Name:           create.Name,
		Role:           role,
		UseFixedAmount: create.UseFixedAmount,
		FixedAmount:    create.FixedAmount,
		Source:         source,
	}

	id, err := m.store.AddParticipant(ctx, participant)
	if err != nil {
		log.Errorw("Failed to add participant", "planId", planID, "error", err)
		return nil, errors.NewDatabaseError(err)
	}

	added, err := m.store.GetParticipant(ctx, planID, id)
	if err != nil {
		return nil, errors.NewDatabaseError(err)
	}

	m.publishEvent(ctx, types.EventTypeParticipantAdded, planID, map[string]interface{}{
		"participantId": id,
		"name":          added.Name,
	})

	return added, nil
}

func (m *PlanModel) UpdateParticipant(ctx context.Context, planID, participantID string, update *types.ParticipantUpdate) (*types.Participant, error) {
	if update.Role != nil {
		role, err := normalizeRoleRef(*update.Role)
		if err != nil {
			return nil, err
		}
		update.Role = &role
	}
	if update.FixedAmount != nil && *update.FixedAmount < 0 {
		return nil, errors.ValidationFailed(
			"Invalid participant update",
			"fixed amount must be zero or positive",
		)
	}

	participant, err := m.store.UpdateParticipant(ctx, planID, participantID, update)
	if err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFound("Participant", participantID)
		}
		return nil, errors.NewDatabaseError(err)
	}

	m.publishEvent(ctx, types.EventTypeParticipantUpdated, planID, map[string]interface{}{
		"participantId": participantID,
	})

	return participant, nil
}

func (m *PlanModel) RemoveParticipant(ctx context.Context, planID, participantID string) error {
	if err := m.store.RemoveParticipant(ctx, planID, participantID); err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return errors.NotFound("Participant", participantID)
		}
		return errors.NewDatabaseError(err)
	}

	m.publishEvent(ctx, types.EventTypeParticipantRemoved, planID, map[string]interface{}{
		"participantId": participantID,
	})

	return nil
}

// GetAllocation computes each participant's charge for a plan. When amount
// items exist their sum is the authoritative total, overriding the stored one.
// Role multipliers resolve through a single registry snapshot with the plan's
// overrides applied. On an unallocatable remainder the partial result is
// returned alongside the error.
func (m *PlanModel) GetAllocation(ctx context.Context, planID string) (*types.AllocationResponse, error) {
	plan, err := m.store.GetPlan(ctx, planID)
	if err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return nil, errors.PlanNotFound(planID)
		}
		return nil, errors.NewDatabaseError(err)
	}

	participants, err := m.store.ListParticipants(ctx, planID)
	if err != nil {
		return nil, errors.NewDatabaseError(err)
	}

	items, err := m.store.ListAmountItems(ctx, planID)
	if err != nil {
		return nil, errors.NewDatabaseError(err)
	}

	resolver, err := m.roleModel.Resolver(ctx)
	if err != nil {
		return nil, err
	}

	shares := make([]allocation.Share, len(participants))
	for i, p := range participants {
		if p.UseFixedAmount {
			shares[i] = allocation.Share{Fixed: true, FixedAmount: p.FixedAmount}
		} else {
			shares[i] = allocation.Share{Weight: resolver.Multiplier(p.Role, plan.RoleOverrides)}
		}
	}

	var charges []int64
	total := plan.TotalAmount
	var allocErr error
	if len(items) > 0 {
		amounts := make([]int64, len(items))
		for i, item := range items {
			amounts[i] = item.Amount
		}
		charges, total, allocErr = allocation.AllocateItems(amounts, shares)
	} else {
		charges, allocErr = allocation.Allocate(total, shares)
	}

	if allocErr != nil {
		var over *allocation.OverAllocatedError
		if stderrors.As(allocErr, &over) {
			return nil, errors.OverAllocated(over.FixedTotal, over.Total)
		}
		var unallocated *allocation.UnallocatedError
		if stderrors.As(allocErr, &unallocated) {
			resp := buildAllocationResponse(planID, total, participants, charges)
			resp.Unallocated = unallocated.Remainder
			return resp, errors.UnallocatedRemainder(unallocated.Remainder)
		}
		return nil, errors.Wrap(allocErr, errors.ServerError, "Allocation failed")
	}

	return buildAllocationResponse(planID, total, participants, charges), nil
}

func buildAllocationResponse(planID string, total int64, participants []*types.Participant, charges []int64) *types.AllocationResponse {
	rows := make([]types.ParticipantCharge, len(participants))
	for i, p := range participants {
		rows[i] = types.ParticipantCharge{
			ParticipantID: p.ID,
			Name:          p.Name,
			Amount:        charges[i],
			Fixed:         p.UseFixedAmount,
		}
	}
	return &types.AllocationResponse{
		PlanID:  planID,
		Total:   total,
		Charges: rows,
	}
}

// normalizeRoleRef validates a role reference and fills the default. An empty
// reference means a plain member.
func normalizeRoleRef(ref types.RoleRef) (types.RoleRef, error) {
	switch ref.Kind {
	case "":
		if ref.StandardKey != "" {
			ref.Kind = types.RoleKindStandard
			break
		}
		return types.RoleRef{Kind: types.RoleKindStandard, StandardKey: types.RoleMember}, nil
	case types.RoleKindStandard, types.RoleKindCustom:
	default:
		return types.RoleRef{}, errors.ValidationFailed(
			"Invalid role reference",
			fmt.Sprintf("unknown role kind %q", ref.Kind),
		)
	}

	if ref.Kind == types.RoleKindStandard {
		if !types.IsValidStandardRoleKey(ref.StandardKey) {
			return types.RoleRef{}, errors.ValidationFailed(
				"Invalid role reference",
				fmt.Sprintf("%q is not a standard role", ref.StandardKey),
			)
		}
		ref.CustomID = ""
	} else {
		if ref.CustomID == "" {
			return types.RoleRef{}, errors.ValidationFailed(
				"Invalid role reference",
				"custom role reference requires an ID",
			)
		}
		ref.StandardKey = ""
	}

	return ref, nil
}

func validateRoleOverrides(overrides map[string]types.RoleOverride) error {
	for key, override := range overrides {
		if override.Multiplier != nil && *override.Multiplier < 0 {
			return errors.ValidationFailed(
				"Invalid role override",
				fmt.Sprintf("override for %q has a negative multiplier", key),
			)
		}
	}
	return nil
}

func (m *PlanModel) publishEvent(ctx context.Context, eventType types.EventType, planID string, data map[string]interface{}) {
	log := logger.GetLogger()

	if err := events.PublishEventWithContext(
		m.eventPublisher,
		ctx,
		eventType,
		planID,
		data,
		"plan-model",
	); err != nil {
		log.Warnw("Failed to publish plan event",
			"error", err,
			"eventType", eventType,
			"planId", planID,
		)
	}
}
