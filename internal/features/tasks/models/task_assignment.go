package tasks_models

import (
	"github.com/google/uuid"
)

// TaskAssignment is a pure join row: its existence means the user is
// assigned to the task. Rows are removed together with their task.
type TaskAssignment struct {
	UserID uuid.UUID `json:"user_id" gorm:"column:user_id;primaryKey"`
	TaskID uuid.UUID `json:"task_id" gorm:"column:task_id;primaryKey"`
}

func (TaskAssignment) TableName() string {
	return "task_assignments"
}
