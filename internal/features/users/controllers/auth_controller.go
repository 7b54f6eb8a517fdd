package users_controllers

import (
	"net/http"
	"strings"

	users_dto "taskboard/internal/features/users/dto"
	users_services "taskboard/internal/features/users/services"
	validation_utils "taskboard/internal/util/validation"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type AuthController struct {
	userService  *users_services.UserService
	loginLimiter *rate.Limiter
}

func (c *AuthController) RegisterRoutes(router *gin.RouterGroup) {
	authRoutes := router.Group("/auth")

	authRoutes.POST("/signup", c.SignUp)
	authRoutes.POST("/login", c.Login)
	authRoutes.POST("/refresh", c.Refresh)
}

func (c *AuthController) SetLoginLimiter(limiter *rate.Limiter) {
	c.loginLimiter = limiter
}

// SignUp
// @Summary Register a new user
// @Description Register a new user and return an access/refresh token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body users_dto.SignUpRequestDTO true "User signup data"
// @Success 201 {object} users_dto.TokenPairResponseDTO
// @Failure 400 {object} map[string]string
// @Router /auth/signup [post]
func (c *AuthController) SignUp(ctx *gin.Context) {
	var request users_dto.SignUpRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		validation_utils.RespondBindingError(ctx, err)
		return
	}

	response, err := c.userService.SignUp(&request)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, response)
}

// Login
// @Summary Authenticate a user
// @Description Authenticate with username and password, returns a token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body users_dto.LoginRequestDTO true "User credentials"
// @Success 200 {object} users_dto.TokenPairResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 429 {object} map[string]string "Rate limit exceeded"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	// We use rate limiter to prevent brute force attacks
	if !c.loginLimiter.Allow() {
		ctx.JSON(
			http.StatusTooManyRequests,
			gin.H{"msg": "Rate limit exceeded. Please try again later."},
		)
		return
	}

	var request users_dto.LoginRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		validation_utils.RespondBindingError(ctx, err)
		return
	}

	response, err := c.userService.Login(&request)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// Refresh
// @Summary Get a new access token
// @Description Exchange a refresh token (Authorization header) for an access token
// @Tags auth
// @Produce json
// @Success 200 {object} users_dto.AccessTokenResponseDTO
// @Failure 401 {object} map[string]string
// @Router /auth/refresh [post]
func (c *AuthController) Refresh(ctx *gin.Context) {
	token := ctx.GetHeader("Authorization")
	if token == "" {
		ctx.JSON(http.StatusUnauthorized, gin.H{"msg": "Refresh token required"})
		return
	}

	token = strings.TrimPrefix(token, "Bearer ")

	response, err := c.userService.Refresh(token)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"msg": "Invalid refresh token"})
		return
	}

	ctx.JSON(http.StatusOK, response)
}
