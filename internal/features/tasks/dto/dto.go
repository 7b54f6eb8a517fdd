package tasks_dto

import (
	"github.com/google/uuid"
)

type CreateTaskRequestDTO struct {
	Title       string      `json:"title" binding:"required,min=1,max=80"`
	Description string      `json:"description"`
	Assignees   []uuid.UUID `json:"assignees"`
}

// UpdateTaskRequestDTO uses pointers so absent fields are left untouched.
type UpdateTaskRequestDTO struct {
	Title       *string      `json:"title" binding:"omitempty,min=1,max=80"`
	Description *string      `json:"description"`
	Assignees   *[]uuid.UUID `json:"assignees"`
}

type TaskResponseDTO struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	ProjectID   uuid.UUID   `json:"project_id"`
	Assignees   []uuid.UUID `json:"assignees"`
}
