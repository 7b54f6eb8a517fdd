package tasks_controllers

import (
	"fmt"
	"testing"

	projects_controllers "taskboard/internal/features/projects/controllers"
	projects_dto "taskboard/internal/features/projects/dto"
	projects_testing "taskboard/internal/features/projects/testing"
	tasks_dto "taskboard/internal/features/tasks/dto"
	users_enums "taskboard/internal/features/users/enums"
	users_testing "taskboard/internal/features/users/testing"
	pagination_utils "taskboard/internal/util/pagination"
	test_utils "taskboard/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTaskTestRouter() *gin.Engine {
	return projects_testing.CreateTestRouter(
		projects_controllers.GetProjectController(),
		projects_controllers.GetMembershipController(),
		GetTaskController(),
	)
}

func tasksURL(projectID uuid.UUID) string {
	return fmt.Sprintf("/api/v1/projects/%s/tasks", projectID)
}

func taskURL(projectID, taskID uuid.UUID) string {
	return fmt.Sprintf("/api/v1/projects/%s/tasks/%s", projectID, taskID)
}

func createTaskViaAPI(
	t *testing.T,
	router *gin.Engine,
	accessToken string,
	projectID uuid.UUID,
	body map[string]any,
) *tasks_dto.TaskResponseDTO {
	t.Helper()

	var response struct {
		Task tasks_dto.TaskResponseDTO `json:"task"`
	}
	test_utils.MakePostRequestAndUnmarshal(
		t, router, tasksURL(projectID), "Bearer "+accessToken, body, 200, &response,
	)

	return &response.Task
}

// setupProjectWithDeveloper creates a project owned by a manager and adds
// a developer to it.
func setupProjectWithDeveloper(
	t *testing.T,
	router *gin.Engine,
) (*users_testing.TestUser, *users_testing.TestUser, *projects_dto.ProjectResponseDTO) {
	t.Helper()

	manager := users_testing.CreateTestUser()
	developer := users_testing.CreateTestUser()

	project := projects_testing.CreateTestProjectViaAPI(t, router, manager.AccessToken, "Team")
	projects_testing.AddMemberViaAPI(
		t, router, manager.AccessToken, project.ID, developer.ID, users_enums.ProjectRoleDeveloper,
	)

	return manager, developer, project
}

func TestCreateTask_CreatorIsAlwaysAssigned(t *testing.T) {
	router := createTaskTestRouter()
	manager, _, project := setupProjectWithDeveloper(t, router)

	task := createTaskViaAPI(t, router, manager.AccessToken, project.ID, map[string]any{
		"title": "Set up CI",
	})

	assert.Equal(t, "Set up CI", task.Title)
	assert.Equal(t, project.ID, task.ProjectID)
	assert.Equal(t, []uuid.UUID{manager.ID}, task.Assignees)
}

func TestCreateTask_CreatorNotDuplicatedInAssignees(t *testing.T) {
	router := createTaskTestRouter()
	manager, developer, project := setupProjectWithDeveloper(t, router)

	task := createTaskViaAPI(t, router, manager.AccessToken, project.ID, map[string]any{
		"title":     "Pairing task",
		"assignees": []uuid.UUID{developer.ID, manager.ID},
	})

	assert.ElementsMatch(t, []uuid.UUID{developer.ID, manager.ID}, task.Assignees)
	assert.Len(t, task.Assignees, 2)
}

func TestCreateTask_NonMemberAssignee_RejectsWholeRequest(t *testing.T) {
	router := createTaskTestRouter()
	manager, _, project := setupProjectWithDeveloper(t, router)
	outsider := users_testing.CreateTestUser()

	resp := test_utils.MakePostRequest(
		t, router, tasksURL(project.ID), "Bearer "+manager.AccessToken,
		map[string]any{
			"title":     "Doomed task",
			"assignees": []uuid.UUID{outsider.ID},
		}, 400,
	)
	assert.Contains(t, string(resp.Body), "is not a member of this project")

	// Nothing was persisted
	var page pagination_utils.Page[tasks_dto.TaskResponseDTO]
	test_utils.MakeGetRequestAndUnmarshal(
		t, router, tasksURL(project.ID), "Bearer "+manager.AccessToken, 200, &page,
	)
	assert.Empty(t, page.Results)
}

func TestCreateTask_NonMemberDenied(t *testing.T) {
	router := createTaskTestRouter()
	owner := users_testing.CreateTestUser()
	outsider := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProjectViaAPI(t, router, owner.AccessToken, "Closed")

	resp := test_utils.MakePostRequest(
		t, router, tasksURL(project.ID), "Bearer "+outsider.AccessToken,
		map[string]any{"title": "Sneaky task"}, 403,
	)

	assert.Contains(t, string(resp.Body), "you do not have access to this project")
}

func TestCreateTask_UnknownProject_LooksLikeNoAccess(t *testing.T) {
	router := createTaskTestRouter()
	user := users_testing.CreateTestUser()

	resp := test_utils.MakePostRequest(
		t, router, tasksURL(uuid.New()), "Bearer "+user.AccessToken,
		map[string]any{"title": "Task in the void"}, 403,
	)

	assert.Contains(t, string(resp.Body), "you do not have access to this project")
}

func TestGetTasks_ListsAllProjectTasks(t *testing.T) {
	router := createTaskTestRouter()
	manager, developer, project := setupProjectWithDeveloper(t, router)

	createTaskViaAPI(t, router, manager.AccessToken, project.ID, map[string]any{"title": "First"})
	createTaskViaAPI(t, router, developer.AccessToken, project.ID, map[string]any{"title": "Second"})

	var page pagination_utils.Page[tasks_dto.TaskResponseDTO]
	test_utils.MakeGetRequestAndUnmarshal(
		t, router, tasksURL(project.ID), "Bearer "+developer.AccessToken, 200, &page,
	)

	require.Len(t, page.Results, 2)
	assert.Equal(t, "First", page.Results[0].Title)
	assert.Equal(t, "Second", page.Results[1].Title)
}

func TestGetMyTasks_ReturnsOnlyAssignedTasks(t *testing.T) {
	router := createTaskTestRouter()
	manager, developer, project := setupProjectWithDeveloper(t, router)

	createTaskViaAPI(t, router, manager.AccessToken, project.ID, map[string]any{"title": "Manager only"})
	mine := createTaskViaAPI(t, router, manager.AccessToken, project.ID, map[string]any{
		"title":     "Developer task",
		"assignees": []uuid.UUID{developer.ID},
	})

	var page pagination_utils.Page[tasks_dto.TaskResponseDTO]
	test_utils.MakeGetRequestAndUnmarshal(
		t, router, tasksURL(project.ID)+"/myself", "Bearer "+developer.AccessToken, 200, &page,
	)

	require.Len(t, page.Results, 1)
	assert.Equal(t, mine.ID, page.Results[0].ID)
}

func TestUpdateTask_DeveloperNeedsAssignment(t *testing.T) {
	router := createTaskTestRouter()
	manager, developer, project := setupProjectWithDeveloper(t, router)

	task := createTaskViaAPI(t, router, manager.AccessToken, project.ID, map[string]any{
		"title": "Locked task",
	})

	resp := test_utils.MakePutRequest(
		t, router, taskURL(project.ID, task.ID), "Bearer "+developer.AccessToken,
		map[string]any{"title": "Hijacked"}, 403,
	)
	assert.Contains(t, string(resp.Body), "you don't have access to this task")

	// Once assigned, the developer can edit it
	test_utils.MakePutRequest(
		t, router, taskURL(project.ID, task.ID), "Bearer "+manager.AccessToken,
		map[string]any{"assignees": []uuid.UUID{developer.ID}}, 200,
	)

	var response struct {
		Task tasks_dto.TaskResponseDTO `json:"task"`
	}
	test_utils.MakePutRequestAndUnmarshal(
		t, router, taskURL(project.ID, task.ID), "Bearer "+developer.AccessToken,
		map[string]any{"title": "Renamed by developer"}, 200, &response,
	)
	assert.Equal(t, "Renamed by developer", response.Task.Title)
}

func TestUpdateTask_PartialUpdateKeepsOtherFields(t *testing.T) {
	router := createTaskTestRouter()
	manager, _, project := setupProjectWithDeveloper(t, router)

	task := createTaskViaAPI(t, router, manager.AccessToken, project.ID, map[string]any{
		"title":       "Original",
		"description": "Original description",
	})

	var response struct {
		Task tasks_dto.TaskResponseDTO `json:"task"`
	}
	test_utils.MakePutRequestAndUnmarshal(
		t, router, taskURL(project.ID, task.ID), "Bearer "+manager.AccessToken,
		map[string]any{"title": "Renamed"}, 200, &response,
	)

	assert.Equal(t, "Renamed", response.Task.Title)
	assert.Equal(t, "Original description", response.Task.Description)
	assert.Equal(t, []uuid.UUID{manager.ID}, response.Task.Assignees)
}

func TestUpdateTask_ReplacingAssignees_DoesNotReAddCaller(t *testing.T) {
	router := createTaskTestRouter()
	manager, developer, project := setupProjectWithDeveloper(t, router)

	task := createTaskViaAPI(t, router, manager.AccessToken, project.ID, map[string]any{
		"title": "Handover",
	})

	var response struct {
		Task tasks_dto.TaskResponseDTO `json:"task"`
	}
	test_utils.MakePutRequestAndUnmarshal(
		t, router, taskURL(project.ID, task.ID), "Bearer "+manager.AccessToken,
		map[string]any{"assignees": []uuid.UUID{developer.ID}}, 200, &response,
	)

	assert.Equal(t, []uuid.UUID{developer.ID}, response.Task.Assignees)
}

func TestUpdateTask_NonMemberAssignee_Fails(t *testing.T) {
	router := createTaskTestRouter()
	manager, _, project := setupProjectWithDeveloper(t, router)
	outsider := users_testing.CreateTestUser()

	task := createTaskViaAPI(t, router, manager.AccessToken, project.ID, map[string]any{
		"title": "Guarded task",
	})

	resp := test_utils.MakePutRequest(
		t, router, taskURL(project.ID, task.ID), "Bearer "+manager.AccessToken,
		map[string]any{"assignees": []uuid.UUID{outsider.ID}}, 400,
	)

	assert.Contains(t, string(resp.Body), "is not a member of this project")
}

func TestUpdateTask_CrossProjectTask_Denied(t *testing.T) {
	router := createTaskTestRouter()
	manager, _, project := setupProjectWithDeveloper(t, router)

	otherManager := users_testing.CreateTestUser()
	otherProject := projects_testing.CreateTestProjectViaAPI(t, router, otherManager.AccessToken, "Other")
	otherTask := createTaskViaAPI(t, router, otherManager.AccessToken, otherProject.ID, map[string]any{
		"title": "Elsewhere",
	})

	// A task addressed through the wrong project is invisible
	resp := test_utils.MakePutRequest(
		t, router, taskURL(project.ID, otherTask.ID), "Bearer "+manager.AccessToken,
		map[string]any{"title": "Stolen"}, 403,
	)

	assert.Contains(t, string(resp.Body), "this task doesn't belong to this project")
}

func TestUpdateTask_UnknownTask_Denied(t *testing.T) {
	router := createTaskTestRouter()
	manager, _, project := setupProjectWithDeveloper(t, router)

	resp := test_utils.MakePutRequest(
		t, router, taskURL(project.ID, uuid.New()), "Bearer "+manager.AccessToken,
		map[string]any{"title": "Ghost"}, 403,
	)

	assert.Contains(t, string(resp.Body), "this task doesn't belong to this project")
}

func TestDeleteTask_ManagerCanDelete(t *testing.T) {
	router := createTaskTestRouter()
	manager, _, project := setupProjectWithDeveloper(t, router)

	task := createTaskViaAPI(t, router, manager.AccessToken, project.ID, map[string]any{
		"title": "Short lived",
	})

	test_utils.MakeDeleteRequest(
		t, router, taskURL(project.ID, task.ID), "Bearer "+manager.AccessToken, 204,
	)

	// Deleted tasks are indistinguishable from tasks that never existed
	test_utils.MakeDeleteRequest(
		t, router, taskURL(project.ID, task.ID), "Bearer "+manager.AccessToken, 403,
	)
}

func TestDeleteTask_UnassignedDeveloperDenied(t *testing.T) {
	router := createTaskTestRouter()
	manager, developer, project := setupProjectWithDeveloper(t, router)

	task := createTaskViaAPI(t, router, manager.AccessToken, project.ID, map[string]any{
		"title": "Protected",
	})

	resp := test_utils.MakeDeleteRequest(
		t, router, taskURL(project.ID, task.ID), "Bearer "+developer.AccessToken, 403,
	)

	assert.Contains(t, string(resp.Body), "you don't have access to this task")
}

func TestDeleteTask_AssignedDeveloperCanDelete(t *testing.T) {
	router := createTaskTestRouter()
	_, developer, project := setupProjectWithDeveloper(t, router)

	task := createTaskViaAPI(t, router, developer.AccessToken, project.ID, map[string]any{
		"title": "My own task",
	})

	test_utils.MakeDeleteRequest(
		t, router, taskURL(project.ID, task.ID), "Bearer "+developer.AccessToken, 204,
	)
}
