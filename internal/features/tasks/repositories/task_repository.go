package tasks_repositories

import (
	"errors"
	"time"

	tasks_models "taskboard/internal/features/tasks/models"
	"taskboard/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskRepository struct{}

// CreateTaskWithAssignments persists the task and its assignment rows in
// one transaction.
func (r *TaskRepository) CreateTaskWithAssignments(
	task *tasks_models.Task,
	assigneeIDs []uuid.UUID,
) error {
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(task).Error; err != nil {
			return err
		}

		for _, userID := range assigneeIDs {
			assignment := &tasks_models.TaskAssignment{UserID: userID, TaskID: task.ID}
			if err := tx.Create(assignment).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *TaskRepository) GetTaskByID(taskID uuid.UUID) (*tasks_models.Task, error) {
	var task tasks_models.Task

	if err := storage.GetDb().Where("id = ?", taskID).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &task, nil
}

// UpdateTaskWithAssignments saves the task and, when assigneeIDs is
// non-nil, replaces the full assignee set, all in one transaction.
func (r *TaskRepository) UpdateTaskWithAssignments(
	task *tasks_models.Task,
	assigneeIDs *[]uuid.UUID,
) error {
	return storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(task).Error; err != nil {
			return err
		}

		if assigneeIDs == nil {
			return nil
		}

		err := tx.
			Where("task_id = ?", task.ID).
			Delete(&tasks_models.TaskAssignment{}).Error
		if err != nil {
			return err
		}

		for _, userID := range *assigneeIDs {
			assignment := &tasks_models.TaskAssignment{UserID: userID, TaskID: task.ID}
			if err := tx.Create(assignment).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *TaskRepository) DeleteTask(taskID uuid.UUID) error {
	return storage.GetDb().Transaction(func(tx *gorm.DB) error {
		err := tx.
			Where("task_id = ?", taskID).
			Delete(&tasks_models.TaskAssignment{}).Error
		if err != nil {
			return err
		}

		return tx.Where("id = ?", taskID).Delete(&tasks_models.Task{}).Error
	})
}

// GetTasksQuery builds the query for all tasks in the project; the
// caller paginates it.
func (r *TaskRepository) GetTasksQuery(projectID uuid.UUID) *gorm.DB {
	return storage.GetDb().
		Model(&tasks_models.Task{}).
		Where("project_id = ?", projectID).
		Order("created_at ASC")
}

// GetMyTasksQuery builds the query for the project's tasks assigned to
// the user.
func (r *TaskRepository) GetMyTasksQuery(projectID, userID uuid.UUID) *gorm.DB {
	return storage.GetDb().
		Model(&tasks_models.Task{}).
		Select("tasks.*").
		Joins("JOIN task_assignments ta ON ta.task_id = tasks.id").
		Where("tasks.project_id = ? AND ta.user_id = ?", projectID, userID).
		Order("tasks.created_at ASC")
}

func (r *TaskRepository) GetAssigneeIDs(taskID uuid.UUID) ([]uuid.UUID, error) {
	var assigneeIDs []uuid.UUID

	err := storage.GetDb().
		Model(&tasks_models.TaskAssignment{}).
		Where("task_id = ?", taskID).
		Pluck("user_id", &assigneeIDs).Error

	return assigneeIDs, err
}

// GetAssigneesForTasks returns assignee IDs for each of the given tasks
// in one query.
func (r *TaskRepository) GetAssigneesForTasks(
	taskIDs []uuid.UUID,
) (map[uuid.UUID][]uuid.UUID, error) {
	assigneesByTask := make(map[uuid.UUID][]uuid.UUID)
	if len(taskIDs) == 0 {
		return assigneesByTask, nil
	}

	var assignments []tasks_models.TaskAssignment

	err := storage.GetDb().
		Where("task_id IN ?", taskIDs).
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}

	for _, assignment := range assignments {
		assigneesByTask[assignment.TaskID] = append(
			assigneesByTask[assignment.TaskID],
			assignment.UserID,
		)
	}

	return assigneesByTask, nil
}

func (r *TaskRepository) IsUserAssigned(taskID, userID uuid.UUID) (bool, error) {
	var count int64

	err := storage.GetDb().
		Model(&tasks_models.TaskAssignment{}).
		Where("task_id = ? AND user_id = ?", taskID, userID).
		Count(&count).Error

	return count > 0, err
}
