package projects_services

import (
	"errors"
	"fmt"

	projects_dto "taskboard/internal/features/projects/dto"
	projects_models "taskboard/internal/features/projects/models"
	projects_repositories "taskboard/internal/features/projects/repositories"
	users_models "taskboard/internal/features/users/models"
	users_services "taskboard/internal/features/users/services"

	"github.com/google/uuid"
)

type MembershipService struct {
	membershipRepository *projects_repositories.MembershipRepository
	userService          *users_services.UserService
	projectService       *ProjectService
}

func (s *MembershipService) GetMembers(
	projectID uuid.UUID,
	user *users_models.User,
) (*projects_dto.GetMembersResponseDTO, error) {
	canAccess, _, err := s.projectService.CanUserAccessProject(projectID, user)
	if err != nil {
		return nil, err
	}
	if !canAccess {
		return nil, errors.New("you do not have access to this project")
	}

	memberships, err := s.membershipRepository.GetProjectMemberships(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project memberships: %w", err)
	}

	membershipList := make([]projects_dto.MembershipResponseDTO, len(memberships))
	for i, membership := range memberships {
		membershipList[i] = projects_dto.MembershipResponseDTO{
			UserID: membership.UserID,
			Role:   membership.Role,
		}
	}

	return &projects_dto.GetMembersResponseDTO{Memberships: membershipList}, nil
}

func (s *MembershipService) AddMember(
	projectID uuid.UUID,
	request *projects_dto.AddMemberRequestDTO,
	addedBy *users_models.User,
) (*projects_dto.MembershipResponseDTO, error) {
	if err := s.validateCanManageMemberships(projectID, addedBy); err != nil {
		return nil, err
	}

	targetUser, err := s.userService.GetUserByID(request.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if targetUser == nil {
		return nil, errors.New("the specified user does not exist")
	}

	existingMembership, err := s.membershipRepository.GetMembershipByUserAndProject(
		targetUser.ID,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing membership: %w", err)
	}
	if existingMembership != nil {
		return nil, errors.New("the specified user is already a member of this project")
	}

	membership := &projects_models.ProjectMembership{
		UserID:    targetUser.ID,
		ProjectID: projectID,
		Role:      request.Role,
	}

	if err := s.membershipRepository.CreateMembership(membership); err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	return &projects_dto.MembershipResponseDTO{
		UserID: membership.UserID,
		Role:   membership.Role,
	}, nil
}

// RemoveMember deletes the membership row. Removing a user who is not a
// member is a successful no-op with an explanatory message.
func (s *MembershipService) RemoveMember(
	projectID uuid.UUID,
	memberUserID uuid.UUID,
	removedBy *users_models.User,
) (string, error) {
	if err := s.validateCanManageMemberships(projectID, removedBy); err != nil {
		return "", err
	}

	existingMembership, err := s.membershipRepository.GetMembershipByUserAndProject(
		memberUserID,
		projectID,
	)
	if err != nil {
		return "", fmt.Errorf("failed to check existing membership: %w", err)
	}

	if existingMembership == nil {
		return "The specified user is not a member of this project", nil
	}

	if err := s.membershipRepository.RemoveMember(memberUserID, projectID); err != nil {
		return "", fmt.Errorf("failed to remove member: %w", err)
	}

	return "User removed from project", nil
}

// GetMemberUserIDs returns the subset of userIDs holding a membership in
// the project.
func (s *MembershipService) GetMemberUserIDs(
	projectID uuid.UUID,
	userIDs []uuid.UUID,
) ([]uuid.UUID, error) {
	return s.membershipRepository.GetMemberUserIDs(projectID, userIDs)
}

func (s *MembershipService) validateCanManageMemberships(
	projectID uuid.UUID,
	user *users_models.User,
) error {
	// Membership existence is checked before role so a non-member and a
	// non-manager member get the same outcome.
	canManage, err := s.projectService.CanUserManageProject(projectID, user)
	if err != nil {
		return err
	}

	if !canManage {
		return errors.New("you do not have access to change this project's memberships")
	}

	return nil
}
