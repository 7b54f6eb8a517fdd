package projects_services

import (
	"errors"
	"fmt"
	"time"

	projects_dto "taskboard/internal/features/projects/dto"
	projects_models "taskboard/internal/features/projects/models"
	projects_repositories "taskboard/internal/features/projects/repositories"
	users_enums "taskboard/internal/features/users/enums"
	users_models "taskboard/internal/features/users/models"
	cache_utils "taskboard/internal/util/cache"
	pagination_utils "taskboard/internal/util/pagination"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

type ProjectService struct {
	projectRepository    *projects_repositories.ProjectRepository
	membershipRepository *projects_repositories.MembershipRepository

	projectCacheUtil *cache_utils.CacheUtil[projects_models.Project]
	singleflight     singleflight.Group // Prevents thundering herd on DB calls
}

// CreateProject persists the project together with a MANAGER membership
// for its creator. Any authenticated user may create a project.
func (s *ProjectService) CreateProject(
	request *projects_dto.CreateProjectRequestDTO,
	creator *users_models.User,
) (*projects_dto.ProjectResponseDTO, error) {
	project := &projects_models.Project{
		ID:        uuid.New(),
		Name:      request.Name,
		CreatedAt: time.Now().UTC(),
	}

	membership := &projects_models.ProjectMembership{
		UserID:    creator.ID,
		ProjectID: project.ID,
		Role:      users_enums.ProjectRoleManager,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.projectRepository.CreateProjectWithManager(project, membership); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	// Pre-warm cache with new project for immediate availability
	s.projectCacheUtil.Set(project.ID.String(), project)

	return &projects_dto.ProjectResponseDTO{
		ID:   project.ID,
		Name: project.Name,
		Memberships: []projects_dto.MembershipResponseDTO{
			{UserID: membership.UserID, Role: membership.Role},
		},
	}, nil
}

func (s *ProjectService) GetUserProjects(
	user *users_models.User,
	pageRequest pagination_utils.PageRequest,
) (*pagination_utils.Page[projects_dto.ProjectResponseDTO], error) {
	query := s.projectRepository.GetProjectsQueryForUser(user.ID)

	page, err := pagination_utils.Paginate[projects_models.Project](query, pageRequest)
	if err != nil {
		return nil, fmt.Errorf("failed to get user projects: %w", err)
	}

	projectIDs := make([]uuid.UUID, len(page.Results))
	for i, project := range page.Results {
		projectIDs[i] = project.ID
	}

	memberships, err := s.membershipRepository.GetMembershipsForProjects(projectIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get project memberships: %w", err)
	}

	membershipsByProject := make(map[uuid.UUID][]projects_dto.MembershipResponseDTO)
	for _, membership := range memberships {
		membershipsByProject[membership.ProjectID] = append(
			membershipsByProject[membership.ProjectID],
			projects_dto.MembershipResponseDTO{UserID: membership.UserID, Role: membership.Role},
		)
	}

	return pagination_utils.MapPage(page, func(project projects_models.Project) projects_dto.ProjectResponseDTO {
		return projects_dto.ProjectResponseDTO{
			ID:          project.ID,
			Name:        project.Name,
			Memberships: membershipsByProject[project.ID],
		}
	}), nil
}

func (s *ProjectService) GetUserProjectRole(
	projectID uuid.UUID,
	userID uuid.UUID,
) (*users_enums.ProjectRole, error) {
	return s.membershipRepository.GetUserProjectRole(projectID, userID)
}

// CanUserAccessProject reports whether the user holds any membership in
// the project, and if so which role.
func (s *ProjectService) CanUserAccessProject(
	projectID uuid.UUID,
	user *users_models.User,
) (bool, *users_enums.ProjectRole, error) {
	role, err := s.membershipRepository.GetUserProjectRole(projectID, user.ID)
	if err != nil {
		return false, nil, err
	}

	return role != nil, role, nil
}

// CanUserManageProject reports whether the user holds a MANAGER
// membership in the project.
func (s *ProjectService) CanUserManageProject(
	projectID uuid.UUID,
	user *users_models.User,
) (bool, error) {
	role, err := s.membershipRepository.GetUserProjectRole(projectID, user.ID)
	if err != nil {
		return false, err
	}

	if role == nil {
		return false, nil
	}

	return *role == users_enums.ProjectRoleManager, nil
}

// GetProjectWithCache resolves a project through the cache, collapsing
// concurrent lookups of the same ID into one database query.
func (s *ProjectService) GetProjectWithCache(projectID uuid.UUID) (*projects_models.Project, error) {
	projectIDStr := projectID.String()

	if cachedProject := s.projectCacheUtil.Get(projectIDStr); cachedProject != nil {
		if cachedProject.IsNotExists {
			return nil, errors.New("project not found")
		}

		return cachedProject, nil
	}

	result, err, _ := s.singleflight.Do(projectIDStr, func() (any, error) {
		return s.projectRepository.GetProjectByID(projectID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	project, ok := result.(*projects_models.Project)
	if !ok || project == nil {
		// Cache the miss to prevent repeated DB hits for bogus IDs
		s.projectCacheUtil.Set(projectIDStr, &projects_models.Project{
			ID:          projectID,
			IsNotExists: true,
		})
		return nil, errors.New("project not found")
	}

	s.projectCacheUtil.Set(projectIDStr, project)

	return project, nil
}
