package handlers

import (
	"net/http"

	"github.com/WarikanHQ/warikan-backend/errors"
	"github.com/WarikanHQ/warikan-backend/logger"
	"github.com/WarikanHQ/warikan-backend/models"
	"github.com/WarikanHQ/warikan-backend/types"
	"github.com/gin-gonic/gin"
)

type ScheduleHandler struct {
	scheduleModel *models.ScheduleModel
}

func NewScheduleHandler(model *models.ScheduleModel) *ScheduleHandler {
	return &ScheduleHandler{scheduleModel: model}
}

// CreateEventHandler godoc
// @Summary Create a schedule event
// @Description Creates a date-voting event with a list of candidate date-times.
// @Tags schedules
// @Accept json
// @Produce json
// @Param request body docs.ScheduleEventCreateRequest true "Event details"
// @Success 201 {object} docs.ScheduleEventResponse "Successfully created event"
// @Failure 400 {object} docs.ErrorResponse "Bad request - Invalid input data"
// @Failure 500 {object} docs.ErrorResponse "Internal server error"
// @Router /schedules [post]
// @Security BearerAuth
func (h *ScheduleHandler) CreateEventHandler(c *gin.Context) {
	log := logger.GetLogger()

	var req types.ScheduleEventCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Errorw("Invalid request body", "error", err)
		if err := c.Error(errors.ValidationFailed("Invalid request body", err.Error())); err != nil {
			log.Errorw("Failed to add validation error", "error", err)
		}
		return
	}

	event, err := h.scheduleModel.CreateEvent(c.Request.Context(), &req)
	if err != nil {
		if err := c.Error(err); err != nil {
			log.Errorw("Failed to create schedule event", "error", err)
		}
		return
	}

	c.JSON(http.StatusCreated, event)
}

// GetEventHandler godoc
// @Summary Get a schedule event
// @Tags schedules
// @Accept json
// @Produce json
// @Param id path string true "Schedule event ID"
// @Success 200 {object} docs.ScheduleEventResponse "Event details"
// @Failure 404 {object} docs.ErrorResponse "Not found - Event not found"
// @Failure 500 {object} docs.ErrorResponse "Internal server error"
// @Router /schedules/{id} [get]
// @Security BearerAuth
func (h *ScheduleHandler) GetEventHandler(c *gin.Context) {
	log := logger.GetLogger()
	eventID := c.Param("id")

	event, err := h.scheduleModel.GetEvent(c.Request.Context(), eventID)
	if err != nil {
		if err := c.Error(err); err != nil {
			log.Errorw("Failed to get schedule event", "error", err)
		}
		return
	}

	c.JSON(http.StatusOK, event)
}

// UpdateEventHandler godoc
// @Summary Update a schedule event
// @Description Updates an event's title, description, location, budget or candidate list. Replacing candidates does not touch existing responses; stale votes simply stop matching.
// @Tags schedules
// @Accept json
// @Produce json
// @Param id path string true "Schedule event ID"
// @Param request body docs.ScheduleEventUpdateRequest true "Fields to update"
// @Success 200 {object} docs.ScheduleEventResponse "Updated event"
// @Failure 400 {object} docs.ErrorResponse "Bad request - Invalid input data"
// @Failure 404 {object} docs.ErrorResponse "Not found - Event not found"
// @Failure 500 {object} docs.ErrorResponse "Internal server error"
// @Router /schedules/{id} [put]
// @Security BearerAuth
func (h *ScheduleHandler) UpdateEventHandler(c *gin.Context) {
	log := logger.GetLogger()
	eventID := c.Param("id")

	var req types.ScheduleEventUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Errorw("Invalid request body", "error", err)
		if err := c.Error(errors.ValidationFailed("Invalid request body", err.Error())); err != nil {
			log.Errorw("Failed to add validation error", "error", err)
		}
		return
	}

	event, err := h.scheduleModel.UpdateEvent(c.Request.Context(), eventID, &req)
	if err != nil {
		if err := c.Error(err); err != nil {
			log.Errorw("Failed to update schedule event", "error", err)
		}
		return
	}

	c.JSON(http.StatusOK, event)
}

// DeleteEventHandler godoc
// @Summary Delete a schedule event
// @Tags schedules
// @Accept json
// @Produce json
// @Param id path string true "Schedule event ID"
// @Success 200 {object} docs.StatusResponse "Event deleted successfully"
// @Failure 404 {object} docs.ErrorResponse "Not found - Event not found"
// @Failure 500 {object} docs.ErrorResponse "Internal server error"
// @Router /schedules/{id} [delete]
// @Security BearerAuth
func (h *ScheduleHandler) DeleteEventHandler(c *gin.Context) {
	log := logger.GetLogger()
	eventID := c.Param("id")

	if err := h.scheduleModel.DeleteEvent(c.Request.Context(), eventID); err != nil {
		if err := c.Error(err); err != nil {
			log.Errorw("Failed to delete schedule event", "error", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Schedule event deleted successfully",
	})
}

// AddResponseHandler godoc
// @Summary Submit availability for a schedule event
// @Description Records a respondent's available date-times. The same name may respond more than once; the tally decides how duplicates count.
// @Tags schedules
// @Accept json
// @Produce json
// @Param id path string true "Schedule event ID"
// @Param request body docs.ScheduleResponseCreateRequest true "Respondent availability"
// @Success 201 {object} docs.ScheduleResponseResponse "Successfully recorded response"
// @Failure 400 {object} docs.ErrorResponse "Bad request - Invalid input data"
// @Failure 404 {object} docs.ErrorResponse "Not found - Event not found"
// @Failure 500 {object} docs.ErrorResponse "Internal server error"
// @Router /schedules/{id}/responses [post]
// @Security BearerAuth
func (h *ScheduleHandler) AddResponseHandler(c *gin.Context) {
	log := logger.GetLogger()
	eventID := c.Param("id")

	var req types.ScheduleResponseCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Errorw("Invalid request body", "error", err)
		if err := c.Error(errors.ValidationFailed("Invalid request body", err.Error())); err != nil {
			log.Errorw("Failed to add validation error", "error", err)
		}
		return
	}

	response, err := h.scheduleModel.AddResponse(c.Request.Context(), eventID, &req)
	if err != nil {
		if err := c.Error(err); err != nil {
			log.Errorw("Failed to add schedule response", "error", err)
		}
		return
	}

	c.JSON(http.StatusCreated, response)
}

// ListResponsesHandler godoc
// @Summary List responses for a schedule event
// @Tags schedules
// @Accept json
// @Produce json
// @Param id path string true "Schedule event ID"
// @Success 200 {array} docs.ScheduleResponseResponse "Responses in submission order"
// @Failure 404 {object} docs.ErrorResponse "Not found - Event not found"
// @Failure 500 {object} docs.ErrorResponse "Internal server error"
// @Router /schedules/{id}/responses [get]
// @Security BearerAuth
func (h *ScheduleHandler) ListResponsesHandler(c *gin.Context) {
	log := logger.GetLogger()
	eventID := c.Param("id")

	responses, err := h.scheduleModel.ListResponses(c.Request.Context(), eventID)
	if err != nil {
		log.Errorw("Failed to list schedule responses", "error", err, "eventID", eventID)
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, responses)
}

// UpdateResponseHandler godoc
// @Summary Update a schedule response
// @Tags schedules
// @Accept json
// @Produce json
// @Param id path string true "Schedule event ID"
// @Param responseID path string true "Response ID"
// @Param request body docs.ScheduleResponseUpdateRequest true "Fields to update"
// @Success 200 {object} docs.ScheduleResponseResponse "Updated response"
// @Failure 400 {object} docs.ErrorResponse "Bad request - Invalid input data"
// @Failure 404 {object} docs.ErrorResponse "Not found - Event or response not found"
// @Failure 500 {object} docs.ErrorResponse "Internal server error"
// @Router /schedules/{id}/responses/{responseID} [put]
// @Security BearerAuth
func (h *ScheduleHandler) UpdateResponseHandler(c *gin.Context) {
	log := logger.GetLogger()
	eventID := c.Param("id")
	responseID := c.Param("responseID")

	var req types.ScheduleResponseUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Errorw("Invalid request body", "error", err)
		if err := c.Error(errors.ValidationFailed("Invalid request body", err.Error())); err != nil {
			log.Errorw("Failed to add validation error", "error", err)
		}
		return
	}

	response, err := h.scheduleModel.UpdateResponse(c.Request.Context(), eventID, responseID, &req)
	if err != nil {
		if err := c.Error(err); err != nil {
			log.Errorw("Failed to update schedule response", "error", err)
		}
		return
	}

	c.JSON(http.StatusOK, response)
}

// RemoveResponseHandler godoc
// @Summary Remove a schedule response
// @Tags schedules
// @Accept json
// @Produce json
// @Param id path string true "Schedule event ID"
// @Param responseID path string true "Response ID"
// @Success 200 {object} docs.StatusResponse "Response removed successfully"
// @Failure 404 {object} docs.ErrorResponse "Not found - Event or response not found"
// @Failure 500 {object} docs.ErrorResponse "Internal server error"
// @Router /schedules/{id}/responses/{responseID} [delete]
// @Security BearerAuth
func (h *ScheduleHandler) RemoveResponseHandler(c *gin.Context) {
	log := logger.GetLogger()
	eventID := c.Param("id")
	responseID := c.Param("responseID")

	if err := h.scheduleModel.RemoveResponse(c.Request.Context(), eventID, responseID); err != nil {
		if err := c.Error(err); err != nil {
			log.Errorw("Failed to remove schedule response", "error", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Response removed successfully",
	})
}

// GetTallyHandler godoc
// @Summary Tally votes for a schedule event
// @Description Counts votes per candidate in chronological order. Every candidate appears, zero-voted ones included; Leading lists all candidates tied at the maximum. Recomputed on every call.
// @Tags schedules
// @Accept json
// @Produce json
// @Param id path string true "Schedule event ID"
// @Success 200 {object} docs.TallyResponse "Vote counts and leading candidates"
// @Failure 404 {object} docs.ErrorResponse "Not found - Event not found"
// @Failure 500 {object} docs.ErrorResponse "Internal server error"
// @Router /schedules/{id}/tally [get]
// @Security BearerAuth
func (h *ScheduleHandler) GetTallyHandler(c *gin.Context) {
	log := logger.GetLogger()
	eventID := c.Param("id")
	if eventID == "" {
		if err := c.Error(errors.ValidationFailed("Event ID missing", "schedule event id is required")); err != nil {
			log.Errorw("Failed to add validation error", "error", err)
		}
		return
	}

	tally, err := h.scheduleModel.GetTally(c.Request.Context(), eventID)
	if err != nil {
		if err := c.Error(err); err != nil {
			log.Errorw("Failed to tally schedule votes", "error", err, "eventID", eventID)
		}
		return
	}

	c.JSON(http.StatusOK, tally)
}
