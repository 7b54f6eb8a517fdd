package projects_controllers

import (
	"encoding/json"
	"testing"

	projects_dto "taskboard/internal/features/projects/dto"
	projects_testing "taskboard/internal/features/projects/testing"
	users_enums "taskboard/internal/features/users/enums"
	users_testing "taskboard/internal/features/users/testing"
	pagination_utils "taskboard/internal/util/pagination"
	test_utils "taskboard/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createProjectTestRouter() *gin.Engine {
	return projects_testing.CreateTestRouter(
		GetProjectController(),
		GetMembershipController(),
	)
}

func TestCreateProject_CreatorBecomesManager(t *testing.T) {
	router := createProjectTestRouter()
	user := users_testing.CreateTestUser()

	project := projects_testing.CreateTestProjectViaAPI(t, router, user.AccessToken, "Website redesign")

	assert.Equal(t, "Website redesign", project.Name)
	require.Len(t, project.Memberships, 1)
	assert.Equal(t, user.ID, project.Memberships[0].UserID)
	assert.Equal(t, users_enums.ProjectRoleManager, project.Memberships[0].Role)
}

func TestCreateProject_EmptyName_Fails(t *testing.T) {
	router := createProjectTestRouter()
	user := users_testing.CreateTestUser()

	resp := test_utils.MakePostRequest(
		t, router, "/api/v1/projects", "Bearer "+user.AccessToken,
		map[string]string{"name": ""}, 400,
	)

	var body struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(resp.Body, &body))
	assert.Contains(t, body.Errors, "name")
}

func TestCreateProject_WithoutToken_Fails(t *testing.T) {
	router := createProjectTestRouter()

	test_utils.MakePostRequest(
		t, router, "/api/v1/projects", "",
		map[string]string{"name": "Secret project"}, 401,
	)
}

func TestGetProjects_ReturnsOnlyOwnProjects(t *testing.T) {
	router := createProjectTestRouter()
	user := users_testing.CreateTestUser()
	otherUser := users_testing.CreateTestUser()

	mine := projects_testing.CreateTestProjectViaAPI(t, router, user.AccessToken, "Mine")
	projects_testing.CreateTestProjectViaAPI(t, router, otherUser.AccessToken, "Not mine")

	var page pagination_utils.Page[projects_dto.ProjectResponseDTO]
	test_utils.MakeGetRequestAndUnmarshal(
		t, router, "/api/v1/projects", "Bearer "+user.AccessToken, 200, &page,
	)

	require.Len(t, page.Results, 1)
	assert.Equal(t, mine.ID, page.Results[0].ID)
	assert.Equal(t, int64(1), page.Total)
}

func TestGetProjects_Pagination(t *testing.T) {
	router := createProjectTestRouter()
	user := users_testing.CreateTestUser()

	for i := 0; i < 5; i++ {
		projects_testing.CreateTestProjectViaAPI(t, router, user.AccessToken, "Project")
	}

	var page pagination_utils.Page[projects_dto.ProjectResponseDTO]
	test_utils.MakeGetRequestAndUnmarshal(
		t, router, "/api/v1/projects?page=2&per_page=2", "Bearer "+user.AccessToken, 200, &page,
	)

	assert.Len(t, page.Results, 2)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 3, page.Pages)
	assert.Equal(t, 2, page.PerPage)
	assert.Equal(t, int64(5), page.Total)
}

func TestGetProjects_IncludesMemberships(t *testing.T) {
	router := createProjectTestRouter()
	manager := users_testing.CreateTestUser()
	developer := users_testing.CreateTestUser()

	project := projects_testing.CreateTestProjectViaAPI(t, router, manager.AccessToken, "Team project")
	projects_testing.AddMemberViaAPI(
		t, router, manager.AccessToken, project.ID, developer.ID, users_enums.ProjectRoleDeveloper,
	)

	var page pagination_utils.Page[projects_dto.ProjectResponseDTO]
	test_utils.MakeGetRequestAndUnmarshal(
		t, router, "/api/v1/projects", "Bearer "+developer.AccessToken, 200, &page,
	)

	require.Len(t, page.Results, 1)
	assert.Len(t, page.Results[0].Memberships, 2)
}
