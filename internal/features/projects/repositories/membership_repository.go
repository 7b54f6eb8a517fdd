package projects_repositories

import (
	"errors"
	"time"

	projects_models "taskboard/internal/features/projects/models"
	users_enums "taskboard/internal/features/users/enums"
	"taskboard/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MembershipRepository struct{}

func (r *MembershipRepository) CreateMembership(membership *projects_models.ProjectMembership) error {
	if membership.ID == uuid.Nil {
		membership.ID = uuid.New()
	}

	if membership.CreatedAt.IsZero() {
		membership.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(membership).Error
}

func (r *MembershipRepository) GetMembershipByUserAndProject(
	userID, projectID uuid.UUID,
) (*projects_models.ProjectMembership, error) {
	var membership projects_models.ProjectMembership

	err := storage.GetDb().
		Where("user_id = ? AND project_id = ?", userID, projectID).
		First(&membership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &membership, nil
}

func (r *MembershipRepository) GetUserProjectRole(
	projectID, userID uuid.UUID,
) (*users_enums.ProjectRole, error) {
	membership, err := r.GetMembershipByUserAndProject(userID, projectID)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, nil
	}

	return &membership.Role, nil
}

func (r *MembershipRepository) GetProjectMemberships(
	projectID uuid.UUID,
) ([]projects_models.ProjectMembership, error) {
	var memberships []projects_models.ProjectMembership

	err := storage.GetDb().
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&memberships).Error

	return memberships, err
}

func (r *MembershipRepository) GetMembershipsForProjects(
	projectIDs []uuid.UUID,
) ([]projects_models.ProjectMembership, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}

	var memberships []projects_models.ProjectMembership

	err := storage.GetDb().
		Where("project_id IN ?", projectIDs).
		Order("created_at ASC").
		Find(&memberships).Error

	return memberships, err
}

// GetMemberUserIDs returns the subset of userIDs that hold a membership
// in the project.
func (r *MembershipRepository) GetMemberUserIDs(
	projectID uuid.UUID,
	userIDs []uuid.UUID,
) ([]uuid.UUID, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	var memberIDs []uuid.UUID

	err := storage.GetDb().
		Model(&projects_models.ProjectMembership{}).
		Where("project_id = ? AND user_id IN ?", projectID, userIDs).
		Pluck("user_id", &memberIDs).Error

	return memberIDs, err
}

func (r *MembershipRepository) RemoveMember(userID, projectID uuid.UUID) error {
	return storage.GetDb().
		Where("user_id = ? AND project_id = ?", userID, projectID).
		Delete(&projects_models.ProjectMembership{}).Error
}
