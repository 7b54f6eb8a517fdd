package tasks_models

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID          uuid.UUID `json:"id"          gorm:"column:id;primaryKey"`
	Title       string    `json:"title"       gorm:"column:title;not null"`
	Description string    `json:"description" gorm:"column:description"`
	ProjectID   uuid.UUID `json:"project_id"  gorm:"column:project_id;not null;index"`
	CreatedAt   time.Time `json:"createdAt"   gorm:"column:created_at"`
}

func (Task) TableName() string {
	return "tasks"
}
