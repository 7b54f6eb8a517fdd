package projects_services

import (
	"taskboard/internal/cache"
	projects_models "taskboard/internal/features/projects/models"
	projects_repositories "taskboard/internal/features/projects/repositories"
	users_services "taskboard/internal/features/users/services"
	cache_utils "taskboard/internal/util/cache"

	"golang.org/x/sync/singleflight"
)

var projectRepository = &projects_repositories.ProjectRepository{}
var membershipRepository = &projects_repositories.MembershipRepository{}

var projectService = &ProjectService{
	projectRepository,
	membershipRepository,
	cache_utils.NewCacheUtil[projects_models.Project](cache.GetCache(), "tb_project:"),
	singleflight.Group{},
}

var membershipService = &MembershipService{
	membershipRepository,
	users_services.GetUserService(),
	projectService,
}

func GetProjectService() *ProjectService {
	return projectService
}

func GetMembershipService() *MembershipService {
	return membershipService
}
