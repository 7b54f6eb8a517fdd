package users_testing

import (
	"fmt"
	"time"

	users_models "taskboard/internal/features/users/models"
	users_repositories "taskboard/internal/features/users/repositories"
	users_services "taskboard/internal/features/users/services"

	"github.com/google/uuid"
)

type TestUser struct {
	ID           uuid.UUID
	Username     string
	Email        string
	AccessToken  string
	RefreshToken string
}

// CreateTestUser inserts a user directly through the repository and
// issues real tokens for it, bypassing the signup endpoint.
func CreateTestUser() *TestUser {
	userID := uuid.New()
	username := fmt.Sprintf("user-%s", userID.String()[:8])

	user := &users_models.User{
		ID:             userID,
		Username:       username,
		Email:          username + "@test.com",
		HashedPassword: "$2a$10$test",
		CreatedAt:      time.Now().UTC(),
	}

	userRepository := &users_repositories.UserRepository{}
	if err := userRepository.CreateUser(user); err != nil {
		panic(err)
	}

	tokens, err := users_services.GetUserService().GenerateTokenPair(user)
	if err != nil {
		panic(err)
	}

	return &TestUser{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}
}
