package tasks_controllers

import (
	"net/http"
	"strings"

	tasks_dto "taskboard/internal/features/tasks/dto"
	tasks_services "taskboard/internal/features/tasks/services"
	users_middleware "taskboard/internal/features/users/middleware"
	pagination_utils "taskboard/internal/util/pagination"
	validation_utils "taskboard/internal/util/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TaskController struct {
	taskService *tasks_services.TaskService
}

func (c *TaskController) RegisterRoutes(router *gin.RouterGroup) {
	taskRoutes := router.Group("/projects/:project_id/tasks")

	taskRoutes.GET("", c.GetTasks)
	taskRoutes.GET("/myself", c.GetMyTasks)
	taskRoutes.POST("", c.CreateTask)
	taskRoutes.PUT("/:task_id", c.UpdateTask)
	taskRoutes.DELETE("/:task_id", c.DeleteTask)
}

// GetTasks
// @Summary List all tasks in a project
// @Tags tasks
// @Produce json
// @Param project_id path string true "Project ID"
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Success 200 {object} pagination_utils.Page[tasks_dto.TaskResponseDTO]
// @Failure 403 {object} map[string]string
// @Security BearerAuth
// @Router /projects/{project_id}/tasks [get]
func (c *TaskController) GetTasks(ctx *gin.Context) {
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

	page, err := c.taskService.ListProjectTasks(projectID, user, pagination_utils.ParsePageRequest(ctx))
	if err != nil {
		c.respondTaskError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, page)
}

// GetMyTasks
// @Summary List the project's tasks assigned to the authenticated user
// @Tags tasks
// @Produce json
// @Param project_id path string true "Project ID"
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Success 200 {object} pagination_utils.Page[tasks_dto.TaskResponseDTO]
// @Failure 403 {object} map[string]string
// @Security BearerAuth
// @Router /projects/{project_id}/tasks/myself [get]
func (c *TaskController) GetMyTasks(ctx *gin.Context) {
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

	page, err := c.taskService.ListMyTasks(projectID, user, pagination_utils.ParsePageRequest(ctx))
	if err != nil {
		c.respondTaskError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, page)
}

// CreateTask
// @Summary Create a task in a project
// @Description Create a task; the creator is always added as an assignee
// @Tags tasks
// @Accept json
// @Produce json
// @Param project_id path string true "Project ID"
// @Param request body tasks_dto.CreateTaskRequestDTO true "Task data"
// @Success 200 {object} map[string]tasks_dto.TaskResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Security BearerAuth
// @Router /projects/{project_id}/tasks [post]
func (c *TaskController) CreateTask(ctx *gin.Context) {
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

	var request tasks_dto.CreateTaskRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		validation_utils.RespondBindingError(ctx, err)
		return
	}

	task, err := c.taskService.CreateTask(projectID, &request, user)
	if err != nil {
		c.respondTaskError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"task": task})
}

// UpdateTask
// @Summary Update a task
// @Description Update any subset of title, description and assignees
// @Tags tasks
// @Accept json
// @Produce json
// @Param project_id path string true "Project ID"
// @Param task_id path string true "Task ID"
// @Param request body tasks_dto.UpdateTaskRequestDTO true "Fields to update"
// @Success 200 {object} map[string]tasks_dto.TaskResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Security BearerAuth
// @Router /projects/{project_id}/tasks/{task_id} [put]
func (c *TaskController) UpdateTask(ctx *gin.Context) {
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

	taskID, err := uuid.Parse(ctx.Param("task_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid task ID"})
		return
	}

	var request tasks_dto.UpdateTaskRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		validation_utils.RespondBindingError(ctx, err)
		return
	}

	task, err := c.taskService.UpdateTask(projectID, taskID, &request, user)
	if err != nil {
		c.respondTaskError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"task": task})
}

// DeleteTask
// @Summary Delete a task
// @Tags tasks
// @Param project_id path string true "Project ID"
// @Param task_id path string true "Task ID"
// @Success 204
// @Failure 403 {object} map[string]string
// @Security BearerAuth
// @Router /projects/{project_id}/tasks/{task_id} [delete]
func (c *TaskController) DeleteTask(ctx *gin.Context) {
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

	taskID, err := uuid.Parse(ctx.Param("task_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid task ID"})
		return
	}

	if err := c.taskService.DeleteTask(projectID, taskID, user); err != nil {
		c.respondTaskError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (c *TaskController) respondTaskError(ctx *gin.Context, err error) {
	message := err.Error()

	switch {
	case message == "you do not have access to this project",
		message == "you don't have access to this task",
		message == "this task doesn't belong to this project":
		ctx.JSON(http.StatusForbidden, gin.H{"msg": message})
	case strings.HasSuffix(message, "is not a member of this project"):
		ctx.JSON(http.StatusBadRequest, gin.H{"msg": message})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"msg": "Internal server error"})
	}
}
