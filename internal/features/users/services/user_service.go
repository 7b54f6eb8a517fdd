package users_services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	users_dto "taskboard/internal/features/users/dto"
	users_models "taskboard/internal/features/users/models"
	users_repositories "taskboard/internal/features/users/repositories"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"

	accessTokenTTL  = time.Hour
	refreshTokenTTL = 30 * 24 * time.Hour
)

type UserService struct {
	userRepository      *users_repositories.UserRepository
	secretKeyRepository *users_repositories.SecretKeyRepository
}

func NewUserService(
	userRepository *users_repositories.UserRepository,
	secretKeyRepository *users_repositories.SecretKeyRepository,
) *UserService {
	return &UserService{
		userRepository:      userRepository,
		secretKeyRepository: secretKeyRepository,
	}
}

func (s *UserService) SignUp(request *users_dto.SignUpRequestDTO) (*users_dto.TokenPairResponseDTO, error) {
	existingUser, err := s.userRepository.GetUserByUsername(request.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, errors.New("user with this username already exists")
	}

	existingUser, err = s.userRepository.GetUserByEmail(request.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, errors.New("user with this email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &users_models.User{
		ID:             uuid.New(),
		Username:       request.Username,
		Email:          request.Email,
		HashedPassword: string(hashedPassword),
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.userRepository.CreateUser(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.GenerateTokenPair(user)
}

func (s *UserService) Login(request *users_dto.LoginRequestDTO) (*users_dto.TokenPairResponseDTO, error) {
	user, err := s.userRepository.GetUserByUsername(request.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user == nil {
		return nil, errors.New("bad credentials")
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(request.Password))
	if err != nil {
		return nil, errors.New("bad credentials")
	}

	return s.GenerateTokenPair(user)
}

func (s *UserService) Refresh(refreshToken string) (*users_dto.AccessTokenResponseDTO, error) {
	user, err := s.GetUserFromRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.generateToken(user, tokenTypeAccess, accessTokenTTL)
	if err != nil {
		return nil, err
	}

	return &users_dto.AccessTokenResponseDTO{AccessToken: accessToken}, nil
}

func (s *UserService) GetUserFromAccessToken(token string) (*users_models.User, error) {
	return s.getUserFromToken(token, tokenTypeAccess)
}

func (s *UserService) GetUserFromRefreshToken(token string) (*users_models.User, error) {
	return s.getUserFromToken(token, tokenTypeRefresh)
}

func (s *UserService) getUserFromToken(token string, expectedType string) (*users_models.User, error) {
	secretKey, err := s.secretKeyRepository.GetSecretKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret key: %w", err)
	}

	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})

	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok || !parsedToken.Valid {
		return nil, errors.New("invalid token")
	}

	if tokenType, ok := claims["type"].(string); !ok || tokenType != expectedType {
		return nil, errors.New("invalid token type")
	}

	userIDStr, ok := claims["sub"].(string)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, errors.New("invalid token claims")
	}

	user, err := s.userRepository.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user does not exist")
	}

	return user, nil
}

func (s *UserService) GenerateTokenPair(user *users_models.User) (*users_dto.TokenPairResponseDTO, error) {
	accessToken, err := s.generateToken(user, tokenTypeAccess, accessTokenTTL)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateToken(user, tokenTypeRefresh, refreshTokenTTL)
	if err != nil {
		return nil, err
	}

	return &users_dto.TokenPairResponseDTO{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *UserService) generateToken(
	user *users_models.User,
	tokenType string,
	ttl time.Duration,
) (string, error) {
	secretKey, err := s.secretKeyRepository.GetSecretKey()
	if err != nil {
		return "", fmt.Errorf("failed to get secret key: %w", err)
	}

	now := time.Now().UTC()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID.String(),
		"type": tokenType,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	})

	tokenString, err := token.SignedString([]byte(secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return tokenString, nil
}

func (s *UserService) GetUserByID(userID uuid.UUID) (*users_models.User, error) {
	return s.userRepository.GetUserByID(userID)
}
