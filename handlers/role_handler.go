package handlers

import (
	"net/http"

	"github.com/WarikanHQ/warikan-backend/errors"
	"github.com/WarikanHQ/warikan-backend/logger"
	"github.com/WarikanHQ/warikan-backend/models"
	"github.com/WarikanHQ/warikan-backend/types"
	"github.com/gin-gonic/gin"
)

type RoleHandler struct {
	roleModel *models.RoleModel
}

func NewRoleHandler(model *models.RoleModel) *RoleHandler {
	return &RoleHandler{roleModel: model}
}

// ListRolesHandler godoc
// @Summary List all roles
// @Description Returns the five standard roles with their current names and multipliers, followed by all custom roles.
// @Tags roles
// @Accept json
// @Produce json
// @Success 200 {array} docs.RoleViewResponse "Merged role registry"
// @Failure 500 {object} docs.ErrorResponse "Internal server error"
// @Router /roles [get]
// @Security BearerAuth
func (h *RoleHandler) ListRolesHandler(c *gin.Context) {
	log := logger.GetLogger()

	roles, err := h.roleModel.ListRoles(c.Request.Context())
	if err != nil {
		log.Errorw("Failed to list roles", "error", err)
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, roles)
}

// UpdateRoleSettingHandler godoc
// @Summary Edit a standard role
// @Description Updates the display name and/or multiplier of one of the built-in roles. Keys are fixed; only name and multiplier change.
// @Tags roles
// @Accept json
// @Produce json
// @Param key path string true "Standard role key (organizer, senior, member, junior, guest)"
// @Param request body docs.RoleSettingUpdateRequest true "Fields to update"
// @Success 200 {object} docs.RoleSettingResponse "Updated role setting"
// @Failure 400 {object} docs.ErrorResponse "Bad request - Unknown key or negative multiplier"
// @Failure 500 {object} docs.ErrorResponse "Internal server error"
// @Router /roles/settings/{key} [put]
// @Security BearerAuth
func (h *RoleHandler) UpdateRoleSettingHandler(c *gin.Context) {
	log := logger.GetLogger()
	key := types.StandardRoleKey(c.Param("key"))

	var req types.RoleSettingUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Errorw("Invalid request body", "error", err)
		if err := c.Error(errors.ValidationFailed("Invalid request body", err.Error())); err != nil {
			log.Errorw("Failed to add validation error", "error", err)
		}
		return
	}

	setting, err := h.roleModel.UpdateRoleSetting(c.Request.Context(), key, &req)
	if err != nil {
		if err := c.Error(err); err != nil {
			log.Errorw("Failed to update role setting", "error", err)
		}
		return
	}

	c.JSON(http.StatusOK, setting)
}

// CreateCustomRoleHandler godoc
// @Summary Create a custom role
// @Description Creates a user-defined role with its own multiplier (default 1.0).
// @Tags roles
// @Accept json
// @Produce json
// @Param request body docs.CustomRoleCreateRequest true "Custom role details"
// @Success 201 {object} docs.CustomRoleResponse "Successfully created custom role"
// @Failure 400 {object} docs.ErrorResponse "Bad request - Invalid input data"
// @Failure 500 {object} docs.ErrorResponse "Internal server error"
// @Router /roles/custom [post]
// @Security BearerAuth
func (h *RoleHandler) CreateCustomRoleHandler(c *gin.Context) {
	log := logger.GetLogger()

	var req types.CustomRoleCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Errorw("Invalid request body", "error", err)
		if err := c.Error(errors.ValidationFailed("Invalid request body", err.Error())); err != nil {
			log.Errorw("Failed to add validation error", "error", err)
		}
		return
	}

	role, err := h.roleModel.CreateCustomRole(c.Request.Context(), &req)
	if err != nil {
		if err := c.Error(err); err != nil {
			log.Errorw("Failed to create custom role", "error", err)
		}
		return
	}

	c.JSON(http.StatusCreated, role)
}

// GetCustomRoleHandler godoc
// @Summary Get a custom role
// @Tags roles
// @Accept json
// @Produce json
// @Param roleID path string true "Custom role ID"
// @Success 200 {object} docs.CustomRoleResponse "Custom role details"
// @Failure 404 {object} docs.ErrorResponse "Not found - Custom role not found"
// @Failure 500 {object} docs.ErrorResponse "Internal server error"
// @Router /roles/custom/{roleID} [get]
// @Security BearerAuth
func (h *RoleHandler) GetCustomRoleHandler(c *gin.Context) {
	log := logger.GetLogger()
	roleID := c.Param("roleID")

	role, err := h.roleModel.GetCustomRole(c.Request.Context(), roleID)
	if err != nil {
		if err := c.Error(err); err != nil {
			log.Errorw("Failed to get custom role", "error", err)
		}
		return
	}

	c.JSON(http.StatusOK, role)
}

// UpdateCustomRoleHandler godoc
// @Summary Update a custom role
// @Description Updates a custom role's name and/or multiplier. Participants referencing it pick up the change on the next allocation.
// @Tags roles
// @Accept json
// @Produce json
// @Param roleID path string true "Custom role ID"
// @Param request body docs.CustomRoleUpdateRequest true "Fields to update"
// @Success 200 {object} docs.CustomRoleResponse "Updated custom role"
// @Failure 400 {object} docs.ErrorResponse "Bad request - Invalid input data"
// @Failure 404 {object} docs.ErrorResponse "Not found - Custom role not found"
// @Failure 500 {object} docs.ErrorResponse "Internal server error"
// @Router /roles/custom/{roleID} [put]
// @Security BearerAuth
func (h *RoleHandler) UpdateCustomRoleHandler(c *gin.Context) {
	log := logger.GetLogger()
	roleID := c.Param("roleID")

	var req types.CustomRoleUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Errorw("Invalid request body", "error", err)
		if err := c.Error(errors.ValidationFailed("Invalid request body", err.Error())); err != nil {
			log.Errorw("Failed to add validation error", "error", err)
		}
		return
	}

	role, err := h.roleModel.UpdateCustomRole(c.Request.Context(), roleID, &req)
	if err != nil {
		if err := c.Error(err); err != nil {
			log.Errorw("Failed to update custom role", "error", err)
		}
		return
	}

	c.JSON(http.StatusOK, role)
}

// DeleteCustomRoleHandler godoc
// @Summary Delete a custom role
// @Description Soft-deletes a custom role. Participants still referencing it fall back to a full share.
// @Tags roles
// @Accept json
// @Produce json
// @Param roleID path string true "Custom role ID"
// @Success 200 {object} docs.StatusResponse "Custom role deleted successfully"
// @Failure 404 {object} docs.ErrorResponse "Not found - Custom role not found"
// @Failure 500 {object} docs.ErrorResponse "Internal server error"
// @Router /roles/custom/{roleID} [delete]
// @Security BearerAuth
func (h *RoleHandler) DeleteCustomRoleHandler(c *gin.Context) {
	log := logger.GetLogger()
	roleID := c.Param("roleID")

	if err := h.roleModel.DeleteCustomRole(c.Request.Context(), roleID); err != nil {
		if err := c.Error(err); err != nil {
			log.Errorw("Failed to delete custom role", "error", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Custom role deleted successfully",
	})
}
