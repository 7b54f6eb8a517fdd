package projects_controllers

import (
	"net/http"

	projects_dto "taskboard/internal/features/projects/dto"
	projects_services "taskboard/internal/features/projects/services"
	users_middleware "taskboard/internal/features/users/middleware"
	pagination_utils "taskboard/internal/util/pagination"
	validation_utils "taskboard/internal/util/validation"

	"github.com/gin-gonic/gin"
)

type ProjectController struct {
	projectService *projects_services.ProjectService
}

func (c *ProjectController) RegisterRoutes(router *gin.RouterGroup) {
	projectRoutes := router.Group("/projects")

	projectRoutes.GET("", c.GetProjects)
	projectRoutes.POST("", c.CreateProject)
}

// GetProjects
// @Summary List projects the authenticated user is a member of
// @Tags projects
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Success 200 {object} pagination_utils.Page[projects_dto.ProjectResponseDTO]
// @Security BearerAuth
// @Router /projects [get]
func (c *ProjectController) GetProjects(ctx *gin.Context) {
	user, exists := users_middleware.GetUserFromContext(ctx)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"msg": "Authentication required"})
		return
	}

	pageRequest := pagination_utils.ParsePageRequest(ctx)

	page, err := c.projectService.GetUserProjects(user, pageRequest)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"msg": "Failed to get projects"})
		return
	}

	ctx.JSON(http.StatusOK, page)
}

// CreateProject
// @Summary Create a project
// @Description Create a project; the creator becomes its MANAGER
// @Tags projects
// @Accept json
// @Produce json
// @Param request body projects_dto.CreateProjectRequestDTO true "Project data"
// @Success 200 {object} map[string]projects_dto.ProjectResponseDTO
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /projects [post]
func (c *ProjectController) CreateProject(ctx *gin.Context) {
	user, exists := users_middleware.GetUserFromContext(ctx)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"msg": "Authentication required"})
		return
	}

	var request projects_dto.CreateProjectRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		validation_utils.RespondBindingError(ctx, err)
		return
	}

	project, err := c.projectService.CreateProject(&request, user)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"msg": "Failed to create project"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"project": project})
}
