package tasks_services

import (
	"errors"
	"fmt"
	"time"

	projects_services "taskboard/internal/features/projects/services"
	tasks_dto "taskboard/internal/features/tasks/dto"
	tasks_models "taskboard/internal/features/tasks/models"
	tasks_repositories "taskboard/internal/features/tasks/repositories"
	users_enums "taskboard/internal/features/users/enums"
	users_models "taskboard/internal/features/users/models"
	pagination_utils "taskboard/internal/util/pagination"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskService struct {
	taskRepository    *tasks_repositories.TaskRepository
	projectService    *projects_services.ProjectService
	membershipService *projects_services.MembershipService
}

func (s *TaskService) ListProjectTasks(
	projectID uuid.UUID,
	user *users_models.User,
	pageRequest pagination_utils.PageRequest,
) (*pagination_utils.Page[tasks_dto.TaskResponseDTO], error) {
	if err := s.validateProjectAccess(projectID, user); err != nil {
		return nil, err
	}

	return s.paginateTasks(s.taskRepository.GetTasksQuery(projectID), pageRequest)
}

// ListMyTasks returns the project's tasks the user is assigned to.
func (s *TaskService) ListMyTasks(
	projectID uuid.UUID,
	user *users_models.User,
	pageRequest pagination_utils.PageRequest,
) (*pagination_utils.Page[tasks_dto.TaskResponseDTO], error) {
	if err := s.validateProjectAccess(projectID, user); err != nil {
		return nil, err
	}

	return s.paginateTasks(s.taskRepository.GetMyTasksQuery(projectID, user.ID), pageRequest)
}

// CreateTask creates a task in the project. The creator is always added
// to the assignee set, and every requested assignee must already be a
// project member or the whole operation is rejected.
func (s *TaskService) CreateTask(
	projectID uuid.UUID,
	request *tasks_dto.CreateTaskRequestDTO,
	creator *users_models.User,
) (*tasks_dto.TaskResponseDTO, error) {
	if err := s.validateProjectAccess(projectID, creator); err != nil {
		return nil, err
	}

	if err := s.validateAssigneesAreMembers(projectID, request.Assignees); err != nil {
		return nil, err
	}

	assigneeIDs := appendUnique(request.Assignees, creator.ID)

	task := &tasks_models.Task{
		ID:          uuid.New(),
		Title:       request.Title,
		Description: request.Description,
		ProjectID:   projectID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.taskRepository.CreateTaskWithAssignments(task, assigneeIDs); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.toTaskResponse(task, assigneeIDs), nil
}

// UpdateTask applies the provided fields. Unlike creation, the caller is
// not implicitly added to the assignee set.
func (s *TaskService) UpdateTask(
	projectID uuid.UUID,
	taskID uuid.UUID,
	request *tasks_dto.UpdateTaskRequestDTO,
	user *users_models.User,
) (*tasks_dto.TaskResponseDTO, error) {
	task, err := s.checkTaskAccess(projectID, taskID, user)
	if err != nil {
		return nil, err
	}

	if request.Assignees != nil {
		if err := s.validateAssigneesAreMembers(projectID, *request.Assignees); err != nil {
			return nil, err
		}
	}

	if request.Title != nil {
		task.Title = *request.Title
	}
	if request.Description != nil {
		task.Description = *request.Description
	}

	if err := s.taskRepository.UpdateTaskWithAssignments(task, request.Assignees); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	assigneeIDs, err := s.taskRepository.GetAssigneeIDs(task.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task assignees: %w", err)
	}

	return s.toTaskResponse(task, assigneeIDs), nil
}

func (s *TaskService) DeleteTask(
	projectID uuid.UUID,
	taskID uuid.UUID,
	user *users_models.User,
) error {
	if _, err := s.checkTaskAccess(projectID, taskID, user); err != nil {
		return err
	}

	if err := s.taskRepository.DeleteTask(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// checkTaskAccess resolves the task and authorizes the user against it.
// A missing task, a task from another project and a project the user is
// not a member of are indistinguishable to the caller.
func (s *TaskService) checkTaskAccess(
	projectID uuid.UUID,
	taskID uuid.UUID,
	user *users_models.User,
) (*tasks_models.Task, error) {
	task, err := s.taskRepository.GetTaskByID(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	role, err := s.projectService.GetUserProjectRole(projectID, user.ID)
	if err != nil {
		return nil, err
	}

	if task == nil || task.ProjectID != projectID || role == nil {
		return nil, errors.New("this task doesn't belong to this project")
	}

	if *role == users_enums.ProjectRoleManager {
		return task, nil
	}

	isAssigned, err := s.taskRepository.IsUserAssigned(task.ID, user.ID)
	if err != nil {
		return nil, err
	}
	if !isAssigned {
		return nil, errors.New("you don't have access to this task")
	}

	return task, nil
}

func (s *TaskService) validateProjectAccess(
	projectID uuid.UUID,
	user *users_models.User,
) error {
	project, err := s.projectService.GetProjectWithCache(projectID)
	if err != nil && err.Error() != "project not found" {
		return err
	}

	if project != nil {
		canAccess, _, err := s.projectService.CanUserAccessProject(projectID, user)
		if err != nil {
			return err
		}
		if canAccess {
			return nil
		}
	}

	// Missing projects and foreign projects look the same to the caller
	return errors.New("you do not have access to this project")
}

// validateAssigneesAreMembers rejects the first requested assignee that
// is not a project member.
func (s *TaskService) validateAssigneesAreMembers(
	projectID uuid.UUID,
	assigneeIDs []uuid.UUID,
) error {
	if len(assigneeIDs) == 0 {
		return nil
	}

	memberIDs, err := s.membershipService.GetMemberUserIDs(projectID, assigneeIDs)
	if err != nil {
		return fmt.Errorf("failed to check project members: %w", err)
	}

	memberSet := make(map[uuid.UUID]bool, len(memberIDs))
	for _, memberID := range memberIDs {
		memberSet[memberID] = true
	}

	for _, assigneeID := range assigneeIDs {
		if !memberSet[assigneeID] {
			return fmt.Errorf("user %s is not a member of this project", assigneeID)
		}
	}

	return nil
}

func (s *TaskService) paginateTasks(
	query *gorm.DB,
	pageRequest pagination_utils.PageRequest,
) (*pagination_utils.Page[tasks_dto.TaskResponseDTO], error) {
	page, err := pagination_utils.Paginate[tasks_models.Task](query, pageRequest)
	if err != nil {
		return nil, fmt.Errorf("failed to get tasks: %w", err)
	}

	taskIDs := make([]uuid.UUID, len(page.Results))
	for i, task := range page.Results {
		taskIDs[i] = task.ID
	}

	assigneesByTask, err := s.taskRepository.GetAssigneesForTasks(taskIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get task assignees: %w", err)
	}

	return pagination_utils.MapPage(page, func(task tasks_models.Task) tasks_dto.TaskResponseDTO {
		return *s.toTaskResponse(&task, assigneesByTask[task.ID])
	}), nil
}

func (s *TaskService) toTaskResponse(
	task *tasks_models.Task,
	assigneeIDs []uuid.UUID,
) *tasks_dto.TaskResponseDTO {
	if assigneeIDs == nil {
		assigneeIDs = []uuid.UUID{}
	}

	return &tasks_dto.TaskResponseDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		ProjectID:   task.ProjectID,
		Assignees:   assigneeIDs,
	}
}

func appendUnique(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids)+1)
	result := make([]uuid.UUID, 0, len(ids)+1)

	for _, existing := range append(ids, id) {
		if seen[existing] {
			continue
		}
		seen[existing] = true
		result = append(result, existing)
	}

	return result
}
