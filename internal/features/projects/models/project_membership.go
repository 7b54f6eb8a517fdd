package projects_models

import (
	"time"

	users_enums "taskboard/internal/features/users/enums"

	"github.com/google/uuid"
)

// ProjectMembership grants a user access to a project. A user has at
// most one membership per project, enforced by the composite unique index.
type ProjectMembership struct {
	ID        uuid.UUID               `json:"-"         gorm:"column:id;primaryKey"`
	UserID    uuid.UUID               `json:"user_id"   gorm:"column:user_id;uniqueIndex:idx_memberships_user_project"`
	ProjectID uuid.UUID               `json:"-"         gorm:"column:project_id;uniqueIndex:idx_memberships_user_project"`
	Role      users_enums.ProjectRole `json:"role"      gorm:"column:role;not null"`
	CreatedAt time.Time               `json:"createdAt" gorm:"column:created_at"`
}

func (ProjectMembership) TableName() string {
	return "project_memberships"
}
