package tasks_controllers

import (
	tasks_services "taskboard/internal/features/tasks/services"
)

var taskController = &TaskController{
	tasks_services.GetTaskService(),
}

func GetTaskController() *TaskController {
	return taskController
}
