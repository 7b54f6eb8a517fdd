package projects_controllers

import (
	"net/http"

	projects_dto "taskboard/internal/features/projects/dto"
	projects_services "taskboard/internal/features/projects/services"
	users_middleware "taskboard/internal/features/users/middleware"
	validation_utils "taskboard/internal/util/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MembershipController struct {
	membershipService *projects_services.MembershipService
}

func (c *MembershipController) RegisterRoutes(router *gin.RouterGroup) {
	membershipRoutes := router.Group("/projects/:project_id/memberships")

	membershipRoutes.GET("", c.GetMembers)
	membershipRoutes.POST("", c.AddMember)
	membershipRoutes.DELETE("/:user_id", c.RemoveMember)
}

// GetMembers
// @Summary List project members
// @Tags memberships
// @Produce json
// @Param project_id path string true "Project ID"
// @Success 200 {object} projects_dto.GetMembersResponseDTO
// @Failure 403 {object} map[string]string
// @Security BearerAuth
// @Router /projects/{project_id}/memberships [get]
func (c *MembershipController) GetMembers(ctx *gin.Context) {
	user, exists := users_middleware.GetUserFromContext(ctx)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"msg": "Authentication required"})
		return
	}

	projectID, err := uuid.Parse(ctx.Param("project_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid project ID"})
		return
	}

	response, err := c.membershipService.GetMembers(projectID, user)
	if err != nil {
		c.respondMembershipError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// AddMember
// @Summary Add a member to a project
// @Description Add a user to the project with the given role, manager only
// @Tags memberships
// @Accept json
// @Produce json
// @Param project_id path string true "Project ID"
// @Param request body projects_dto.AddMemberRequestDTO true "Member data"
// @Success 200 {object} map[string]projects_dto.MembershipResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /projects/{project_id}/memberships [post]
func (c *MembershipController) AddMember(ctx *gin.Context) {
	user, exists := users_middleware.GetUserFromContext(ctx)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"msg": "Authentication required"})
		return
	}

	projectID, err := uuid.Parse(ctx.Param("project_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid project ID"})
		return
	}

	var request projects_dto.AddMemberRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		validation_utils.RespondBindingError(ctx, err)
		return
	}

	if !request.Role.IsValid() {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"errors": gin.H{"role": "Must be one of: DEVELOPER, MANAGER"},
		})
		return
	}

	membership, err := c.membershipService.AddMember(projectID, &request, user)
	if err != nil {
		c.respondMembershipError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"membership": membership})
}

// RemoveMember
// @Summary Remove a member from a project
// @Description Remove a user's membership, manager only. Removing a
// @Description non-member succeeds without effect.
// @Tags memberships
// @Produce json
// @Param project_id path string true "Project ID"
// @Param user_id path string true "User ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Security BearerAuth
// @Router /projects/{project_id}/memberships/{user_id} [delete]
func (c *MembershipController) RemoveMember(ctx *gin.Context) {
	user, exists := users_middleware.GetUserFromContext(ctx)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"msg": "Authentication required"})
		return
	}

	projectID, err := uuid.Parse(ctx.Param("project_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid project ID"})
		return
	}

	memberUserID, err := uuid.Parse(ctx.Param("user_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid user ID"})
		return
	}

	message, err := c.membershipService.RemoveMember(projectID, memberUserID, user)
	if err != nil {
		c.respondMembershipError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"msg": message})
}

func (c *MembershipController) respondMembershipError(ctx *gin.Context, err error) {
	switch err.Error() {
	case "you do not have access to this project",
		"you do not have access to change this project's memberships":
		ctx.JSON(http.StatusForbidden, gin.H{"msg": err.Error()})
	case "the specified user does not exist":
		ctx.JSON(http.StatusNotFound, gin.H{"msg": err.Error()})
	case "the specified user is already a member of this project":
		ctx.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"msg": "Internal server error"})
	}
}
