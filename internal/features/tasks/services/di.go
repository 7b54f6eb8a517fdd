package tasks_services

import (
	projects_services "taskboard/internal/features/projects/services"
	tasks_repositories "taskboard/internal/features/tasks/repositories"
)

var taskRepository = &tasks_repositories.TaskRepository{}

var taskService = &TaskService{
	taskRepository,
	projects_services.GetProjectService(),
	projects_services.GetMembershipService(),
}

func GetTaskService() *TaskService {
	return taskService
}
