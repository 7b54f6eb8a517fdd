package projects_testing

import (
	"fmt"
	"testing"

	projects_dto "taskboard/internal/features/projects/dto"
	users_enums "taskboard/internal/features/users/enums"
	users_middleware "taskboard/internal/features/users/middleware"
	users_services "taskboard/internal/features/users/services"
	test_utils "taskboard/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ControllerInterface interface {
	RegisterRoutes(router *gin.RouterGroup)
}

// CreateTestRouter builds a router with the given controllers mounted
// behind auth at /api/v1, mirroring the production route layout.
func CreateTestRouter(controllers ...ControllerInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()

	protectedRoutes := router.Group("/api/v1")
	protectedRoutes.Use(users_middleware.AuthMiddleware(users_services.GetUserService()))

	for _, controller := range controllers {
		controller.RegisterRoutes(protectedRoutes)
	}

	return router
}

func CreateTestProjectViaAPI(
	t *testing.T,
	router *gin.Engine,
	accessToken string,
	name string,
) *projects_dto.ProjectResponseDTO {
	t.Helper()

	var response struct {
		Project projects_dto.ProjectResponseDTO `json:"project"`
	}

	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects",
		"Bearer "+accessToken,
		map[string]string{"name": name},
		200,
		&response,
	)

	return &response.Project
}

func AddMemberViaAPI(
	t *testing.T,
	router *gin.Engine,
	accessToken string,
	projectID uuid.UUID,
	userID uuid.UUID,
	role users_enums.ProjectRole,
) {
	t.Helper()

	test_utils.MakePostRequest(
		t,
		router,
		fmt.Sprintf("/api/v1/projects/%s/memberships", projectID),
		"Bearer "+accessToken,
		map[string]any{"user_id": userID, "role": role},
		200,
	)
}
