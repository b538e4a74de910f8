package handlers

import (
	"net/http"
	"strconv"

	"github.com/WarikanHQ/warikan-backend/errors"
	"github.com/WarikanHQ/warikan-backend/logger"
	"github.com/WarikanHQ/warikan-backend/models"
	"github.com/WarikanHQ/warikan-backend/types"
	"github.com/gin-gonic/gin"
)

// PaginationParams defines pagination parameters
type PaginationParams struct {
	Limit  int
	Offset int
}

type PlanHandler struct {
	planModel *models.PlanModel
}

func NewPlanHandler(model *models.PlanModel) *PlanHandler {
	return &PlanHandler{planModel: model}
}

// CreatePlanHandler godoc
// @Summary Create a new plan
// @Description Creates a plan with a name, event date and optional initial total.
// @Tags plans
// @Accept json
// @Produce json
// @Param request body docs.PlanCreateRequest true "Plan details"
// @Success 201 {object} docs.PlanResponse "Successfully created plan"
// @Failure 400 {object} docs.ErrorResponse "Bad request - Invalid input data"
// @Failure 500 {object} docs.ErrorResponse "Internal server error"
// @Router /plans [post]
// @Security BearerAuth
func (h *PlanHandler) CreatePlanHandler(c *gin.Context) {
	log := logger.GetLogger()
	var req types.PlanCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Errorw("Invalid request body", "error", err)
		if err := c.Error(errors.ValidationFailed("Invalid request body", err.Error())); err != nil {
			log.Errorw("Failed to add validation error", "error", err)
		}
		return
	}

	plan, err := h.planModel.CreatePlan(c.Request.Context(), &req)
	if err != nil {
		if err := c.Error(err); err != nil {
			log.Errorw("Failed to create plan", "error", err)
		}
		return
	}

	c.JSON(http.StatusCreated, plan)
}

// ListPlansHandler godoc
// @Summary List plans
// @Description Retrieves plans ordered by event date descending, with pagination.
// @Tags plans
// @Accept json
// @Produce json
// @Param limit query int false "Number of plans to return (default 50)"
// @Param offset query int false "Offset for pagination (default 0)"
// @Success 200 {object} docs.PlanListResponse "List of plans with total count"
// @Failure 500 {object} docs.ErrorResponse "Internal server error"
// @Router /plans [get]
// @Security BearerAuth
func (h *PlanHandler) ListPlansHandler(c *gin.Context) {
	log := logger.GetLogger()

	params := getPaginationParams(c, 50, 0)

	plans, total, err := h.planModel.ListPlans(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		log.Errorw("Failed to list plans", "error", err)
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"plans":  plans,
		"total":  total,
		"limit":  params.Limit,
		"offset": params.Offset,
	})
}

// GetPlanHandler godoc
// @Summary Get a plan
// @Description Retrieves a plan together with its participants and amount items.
// @Tags plans
// @Accept json
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} docs.PlanDetailResponse "Plan with participants and items"
// @Failure 404 {object} docs.ErrorResponse "Not found - Plan not found"
// @Failure 500 {object} docs.ErrorResponse "Internal server error"
// @Router /plans/{id} [get]
// @Security BearerAuth
func (h *PlanHandler) GetPlanHandler(c *gin.Context) {
	log := logger.GetLogger()
	planID := c.Param("id")
	if planID == "" {
		if err := c.Error(errors.ValidationFailed("Plan ID missing", "plan id is required")); err != nil {
			log.Errorw("Failed to add validation error", "error", err)
		}
		return
	}

	plan, err := h.planModel.GetPlan(c.Request.Context(), planID)
	if err != nil {
		if err := c.Error(err); err != nil {
			log.Errorw("Failed to get plan", "error", err)
		}
		return
	}

	c.JSON(http.StatusOK, plan)
}

// UpdatePlanHandler godoc
// @Summary Update a plan
// @Description Updates a plan's name, event date, role overrides or schedule link.
// @Tags plans
// @Accept json
// @Produce json
// @Param id path string true "Plan ID"
// @Param request body docs.PlanUpdateRequest true "Fields to update"
// @Success 200 {object} docs.PlanResponse "Successfully updated plan"
// @Failure 400 {object} docs.ErrorResponse "Bad request - Invalid input data"
// @Failure 404 {object} docs.ErrorResponse "Not found - Plan not found"
// @Failure 500 {object} docs.ErrorResponse "Internal server error"
// @Router /plans/{id} [put]
// @Security BearerAuth
func (h *PlanHandler) UpdatePlanHandler(c *gin.Context) {
	log := logger.GetLogger()
	planID := c.Param("id")

	var req types.PlanUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Errorw("Invalid request body", "error", err)
		if err := c.Error(errors.ValidationFailed("Invalid request body", err.Error())); err != nil {
			log.Errorw("Failed to add validation error", "error", err)
		}
		return
	}

	plan, err := h.planModel.UpdatePlan(c.Request.Context(), planID, &req)
	if err != nil {
		if err := c.Error(err); err != nil {
			log.Errorw("Failed to update plan", "error", err)
		}
		return
	}

	c.JSON(http.StatusOK, plan)
}

// DeletePlanHandler godoc
// @Summary Delete a plan
// @Description Soft-deletes a plan. Its participants and items stop being served.
// @Tags plans
// @Accept json
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} docs.StatusResponse "Plan deleted successfully"
// @Failure 404 {object} docs.ErrorResponse "Not found - Plan not found"
// @Failure 500 {object} docs.ErrorResponse "Internal server error"
// @Router /plans/{id} [delete]
// @Security BearerAuth
func (h *PlanHandler) DeletePlanHandler(c *gin.Context) {
	log := logger.GetLogger()
	planID := c.Param("id")

	if err := h.planModel.DeletePlan(c.Request.Context(), planID); err != nil {
		if err := c.Error(err); err != nil {
			log.Errorw("Failed to delete plan", "error", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Plan deleted successfully",
	})
}

// SetPlanAmountHandler godoc
// @Summary Replace a plan's amount specification
// @Description Sets either a single total or a list of amount items whose sum becomes the total. Supplying both is rejected.
// @Tags plans
// @Accept json
// @Produce json
// @Param id path string true "Plan ID"
// @Param request body docs.PlanAmountRequest true "Total or items"
// @Success 200 {object} docs.PlanDetailResponse "Plan with the new amount applied"
// @Failure 400 {object} docs.ErrorResponse "Bad request - both or neither of total/items supplied"
// @Failure 404 {object} docs.ErrorResponse "Not found - Plan not found"
// @Failure 500 {object} docs.ErrorResponse "Internal server error"
// @Router /plans/{id}/amount [put]
// @Security BearerAuth
func (h *PlanHandler) SetPlanAmountHandler(c *gin.Context) {
	log := logger.GetLogger()
	planID := c.Param("id")

	var req types.PlanAmountUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Errorw("Invalid request body", "error", err)
		if err := c.Error(errors.ValidationFailed("Invalid request body", err.Error())); err != nil {
			log.Errorw("Failed to add validation error", "error", err)
		}
		return
	}

	if err := h.planModel.SetAmount(c.Request.Context(), planID, &req); err != nil {
		if err := c.Error(err); err != nil {
			log.Errorw("Failed to set plan amount", "error", err)
		}
		return
	}

	plan, err := h.planModel.GetPlan(c.Request.Context(), planID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, plan)
}

// AddParticipantHandler godoc
// @Summary Add a participant to a plan
// @Description Adds a participant with a role reference or a fixed amount.
// @Tags participants
// @Accept json
// @Produce json
// @Param id path string true "Plan ID"
// @Param request body docs.ParticipantCreateRequest true "Participant details"
// @Success 201 {object} docs.ParticipantResponse "Successfully added participant"
// @Failure 400 {object} docs.ErrorResponse "Bad request - Invalid input data or role reference"
// @Failure 404 {object} docs.ErrorResponse "Not found - Plan not found"
// @Failure 500 {object} docs.ErrorResponse "Internal server error"
// @Router /plans/{id}/participants [post]
// @Security BearerAuth
func (h *PlanHandler) AddParticipantHandler(c *gin.Context) {
	log := logger.GetLogger()
	planID := c.Param("id")

	var req types.ParticipantCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Errorw("Invalid request body", "error", err)
		if err := c.Error(errors.ValidationFailed("Invalid request body", err.Error())); err != nil {
			log.Errorw("Failed to add validation error", "error", err)
		}
		return
	}

	participant, err := h.planModel.AddParticipant(c.Request.Context(), planID, &req)
	if err != nil {
		if err := c.Error(err); err != nil {
			log.Errorw("Failed to add participant", "error", err)
		}
		return
	}

	c.JSON(http.StatusCreated, participant)
}

// UpdateParticipantHandler godoc
// @Summary Update a participant
// @Description Updates a participant's name, role, fixed amount or collected flag.
// @Tags participants
// @Accept json
// @Produce json
// @Param id path string true "Plan ID"
// @Param participantID path string true "Participant ID"
// @Param request body docs.ParticipantUpdateRequest true "Fields to update"
// @Success 200 {object} docs.ParticipantResponse "Successfully updated participant"
// @Failure 400 {object} docs.ErrorResponse "Bad request - Invalid input data"
// @Failure 404 {object} docs.ErrorResponse "Not found - Plan or participant not found"
// @Failure 500 {object} docs.ErrorResponse "Internal server error"
// @Router /plans/{id}/participants/{participantID} [put]
// @Security BearerAuth
func (h *PlanHandler) UpdateParticipantHandler(c *gin.Context) {
	log := logger.GetLogger()
	planID := c.Param("id")
	participantID := c.Param("participantID")

	if participantID == "" {
		if err := c.Error(errors.ValidationFailed("Missing parameters", "participant ID is required")); err != nil {
			log.Errorw("Failed to add validation error", "error", err)
		}
		return
	}

	var req types.ParticipantUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Errorw("Invalid request body", "error", err)
		if err := c.Error(errors.ValidationFailed("Invalid request body", err.Error())); err != nil {
			log.Errorw("Failed to add validation error", "error", err)
		}
		return
	}

	participant, err := h.planModel.UpdateParticipant(c.Request.Context(), planID, participantID, &req)
	if err != nil {
		if err := c.Error(err); err != nil {
			log.Errorw("Failed to update participant", "error", err)
		}
		return
	}

	c.JSON(http.StatusOK, participant)
}

// RemoveParticipantHandler godoc
// @Summary Remove a participant from a plan
// @Description Removes a participant. Subsequent allocations redistribute among the rest.
// @Tags participants
// @Accept json
// @Produce json
// @Param id path string true "Plan ID"
// @Param participantID path string true "Participant ID"
// @Success 200 {object} docs.StatusResponse "Participant removed successfully"
// @Failure 404 {object} docs.ErrorResponse "Not found - Plan or participant not found"
// @Failure 500 {object} docs.ErrorResponse "Internal server error"
// @Router /plans/{id}/participants/{participantID} [delete]
// @Security BearerAuth
func (h *PlanHandler) RemoveParticipantHandler(c *gin.Context) {
	log := logger.GetLogger()
	planID := c.Param("id")
	participantID := c.Param("participantID")

	if err := h.planModel.RemoveParticipant(c.Request.Context(), planID, participantID); err != nil {
		if err := c.Error(err); err != nil {
			log.Errorw("Failed to remove participant", "error", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Participant removed successfully",
	})
}

// GetAllocationHandler godoc
// @Summary Compute per-participant charges for a plan
// @Description Runs the allocation engine over the plan's current participants and amounts. Nothing is persisted.
// @Tags plans
// @Accept json
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} docs.AllocationResponse "Per-participant charges summing to the plan total"
// @Failure 404 {object} docs.ErrorResponse "Not found - Plan not found"
// @Failure 422 {object} docs.ErrorResponse "Unprocessable - fixed amounts exceed the total, or the remainder cannot be distributed"
// @Failure 500 {object} docs.ErrorResponse "Internal server error"
// @Router /plans/{id}/allocation [get]
// @Security BearerAuth
func (h *PlanHandler) GetAllocationHandler(c *gin.Context) {
	log := logger.GetLogger()
	planID := c.Param("id")
	if planID == "" {
		if err := c.Error(errors.ValidationFailed("Plan ID missing", "plan id is required")); err != nil {
			log.Errorw("Failed to add validation error", "error", err)
		}
		return
	}

	allocation, err := h.planModel.GetAllocation(c.Request.Context(), planID)
	if err != nil {
		if err := c.Error(err); err != nil {
			log.Errorw("Failed to compute allocation", "error", err, "planID", planID)
		}
		return
	}

	c.JSON(http.StatusOK, allocation)
}

// getPaginationParams extracts and validates pagination parameters from the request
// This is an internal helper and does not need Swagger annotations.
func getPaginationParams(c *gin.Context, defaultLimit, defaultOffset int) PaginationParams {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}

	offset, err := strconv.Atoi(c.DefaultQuery("offset", strconv.Itoa(defaultOffset)))
	if err != nil || offset < 0 {
		offset = defaultOffset
	}

	return PaginationParams{
		Limit:  limit,
		Offset: offset,
	}
}
