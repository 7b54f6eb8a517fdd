package projects_repositories

import (
	"errors"
	"time"

	projects_models "taskboard/internal/features/projects/models"
	"taskboard/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectRepository struct{}

// CreateProjectWithManager persists the project and its creator's MANAGER
// membership in one transaction, so no project ever exists without a manager.
func (r *ProjectRepository) CreateProjectWithManager(
	project *projects_models.Project,
	membership *projects_models.ProjectMembership,
) error {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	if project.CreatedAt.IsZero() {
		project.CreatedAt = time.Now().UTC()
	}

	membership.ProjectID = project.ID
	if membership.ID == uuid.Nil {
		membership.ID = uuid.New()
	}
	if membership.CreatedAt.IsZero() {
		membership.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}

		return tx.Create(membership).Error
	})
}

func (r *ProjectRepository) GetProjectByID(projectID uuid.UUID) (*projects_models.Project, error) {
	var project projects_models.Project

	if err := storage.GetDb().Where("id = ?", projectID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &project, nil
}

// GetProjectsQueryForUser builds the query for all projects the user is a
// member of; the caller paginates it.
func (r *ProjectRepository) GetProjectsQueryForUser(userID uuid.UUID) *gorm.DB {
	return storage.GetDb().
		Model(&projects_models.Project{}).
		Select("projects.*").
		Joins("JOIN project_memberships pm ON pm.project_id = projects.id").
		Where("pm.user_id = ?", userID).
		Order("projects.created_at ASC")
}
