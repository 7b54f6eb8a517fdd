package users_controllers

import (
	"encoding/json"
	"fmt"
	"testing"

	users_dto "taskboard/internal/features/users/dto"
	test_utils "taskboard/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func createAuthTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	// No rate limiting in tests
	GetAuthController().SetLoginLimiter(rate.NewLimiter(rate.Inf, 0))

	router := gin.New()
	GetAuthController().RegisterRoutes(router.Group(""))

	return router
}

func uniqueUsername() string {
	return fmt.Sprintf("user-%s", uuid.New().String()[:8])
}

func signUpTestUser(t *testing.T, router *gin.Engine) (string, users_dto.TokenPairResponseDTO) {
	t.Helper()

	username := uniqueUsername()

	var tokens users_dto.TokenPairResponseDTO
	test_utils.MakePostRequestAndUnmarshal(t, router, "/auth/signup", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	}, 201, &tokens)

	return username, tokens
}

func TestSignUp_ReturnsTokenPair(t *testing.T) {
	router := createAuthTestRouter()

	_, tokens := signUpTestUser(t, router)

	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.NotEqual(t, tokens.AccessToken, tokens.RefreshToken)
}

func TestSignUp_DuplicateUsername_Fails(t *testing.T) {
	router := createAuthTestRouter()

	username, _ := signUpTestUser(t, router)

	resp := test_utils.MakePostRequest(t, router, "/auth/signup", "", map[string]string{
		"username": username,
		"email":    uniqueUsername() + "@example.com",
		"password": "password123",
	}, 400)

	assert.Contains(t, string(resp.Body), "username already exists")
}

func TestSignUp_DuplicateEmail_Fails(t *testing.T) {
	router := createAuthTestRouter()

	username, _ := signUpTestUser(t, router)

	resp := test_utils.MakePostRequest(t, router, "/auth/signup", "", map[string]string{
		"username": uniqueUsername(),
		"email":    username + "@example.com",
		"password": "password123",
	}, 400)

	assert.Contains(t, string(resp.Body), "email already exists")
}

func TestSignUp_ValidationErrors(t *testing.T) {
	router := createAuthTestRouter()

	tests := []struct {
		name          string
		body          map[string]string
		expectedField string
	}{
		{
			name: "missing username",
			body: map[string]string{
				"email":    uniqueUsername() + "@example.com",
				"password": "password123",
			},
			expectedField: "username",
		},
		{
			name: "invalid email",
			body: map[string]string{
				"username": uniqueUsername(),
				"email":    "not-an-email",
				"password": "password123",
			},
			expectedField: "email",
		},
		{
			name: "short password",
			body: map[string]string{
				"username": uniqueUsername(),
				"email":    uniqueUsername() + "@example.com",
				"password": "short",
			},
			expectedField: "password",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			resp := test_utils.MakePostRequest(t, router, "/auth/signup", "", test.body, 400)

			var body struct {
				Errors map[string]string `json:"errors"`
			}
			require.NoError(t, json.Unmarshal(resp.Body, &body))
			assert.Contains(t, body.Errors, test.expectedField)
		})
	}
}

func TestSignUp_MalformedJSON_Fails(t *testing.T) {
	router := createAuthTestRouter()

	resp := test_utils.MakePostRequest(t, router, "/auth/signup", "", "{not json", 400)

	assert.Contains(t, string(resp.Body), "Invalid request format")
}

func TestLogin_ValidCredentials_ReturnsTokenPair(t *testing.T) {
	router := createAuthTestRouter()

	username, _ := signUpTestUser(t, router)

	var tokens users_dto.TokenPairResponseDTO
	test_utils.MakePostRequestAndUnmarshal(t, router, "/auth/login", "", map[string]string{
		"username": username,
		"password": "password123",
	}, 200, &tokens)

	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
}

func TestLogin_WrongPassword_Fails(t *testing.T) {
	router := createAuthTestRouter()

	username, _ := signUpTestUser(t, router)

	resp := test_utils.MakePostRequest(t, router, "/auth/login", "", map[string]string{
		"username": username,
		"password": "wrongpassword",
	}, 400)

	assert.Contains(t, string(resp.Body), "bad credentials")
}

func TestLogin_UnknownUsername_Fails(t *testing.T) {
	router := createAuthTestRouter()

	resp := test_utils.MakePostRequest(t, router, "/auth/login", "", map[string]string{
		"username": uniqueUsername(),
		"password": "password123",
	}, 400)

	assert.Contains(t, string(resp.Body), "bad credentials")
}

func TestRefresh_WithRefreshToken_ReturnsAccessToken(t *testing.T) {
	router := createAuthTestRouter()

	_, tokens := signUpTestUser(t, router)

	resp := test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method:         "POST",
		URL:            "/auth/refresh",
		Token:          "Bearer " + tokens.RefreshToken,
		ExpectedStatus: 200,
	})

	var body users_dto.AccessTokenResponseDTO
	require.NoError(t, json.Unmarshal(resp.Body, &body))
	assert.NotEmpty(t, body.AccessToken)
}

func TestRefresh_WithAccessToken_Fails(t *testing.T) {
	router := createAuthTestRouter()

	_, tokens := signUpTestUser(t, router)

	// An access token must not be usable as a refresh token
	test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method:         "POST",
		URL:            "/auth/refresh",
		Token:          "Bearer " + tokens.AccessToken,
		ExpectedStatus: 401,
	})
}

func TestRefresh_WithoutToken_Fails(t *testing.T) {
	router := createAuthTestRouter()

	test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method:         "POST",
		URL:            "/auth/refresh",
		ExpectedStatus: 401,
	})
}
