package users_controllers

import (
	"time"

	users_services "taskboard/internal/features/users/services"

	"golang.org/x/time/rate"
)

var authController = &AuthController{
	users_services.GetUserService(),
	rate.NewLimiter(rate.Every(time.Second), 10),
}

func GetAuthController() *AuthController {
	return authController
}
