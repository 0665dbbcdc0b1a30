package services

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/kodipay/kodipay-server/internal/models"
	"github.com/kodipay/kodipay-server/internal/repositories"
	"github.com/kodipay/kodipay-server/internal/utils"
)

// AuthResult is handed back to the controller after any successful
// register/login/refresh so it can respond with identity plus token pair.
type AuthResult struct {
	User         *models.User
	Token        string
	RefreshToken string
}

// ---------------------------------------------------------------------
// AuthService interface
// ---------------------------------------------------------------------

type AuthService interface {
	Register(ctx context.Context, firstName, lastName, phoneNumber, password string, role models.RoleType) (*AuthResult, error)
	Login(ctx context.Context, phoneNumber, password string) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
}

// ---------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------

type authService struct {
	users repositories.UserRepository
	jwt   JWTService
}

func NewAuthService(users repositories.UserRepository, jwtSvc JWTService) AuthService {
	return &authService{users: users, jwt: jwtSvc}
}

func (s *authService) Register(ctx context.Context, firstName, lastName, phoneNumber, password string, role models.RoleType) (*AuthResult, error) {
	existing, err := s.users.GetByPhone(ctx, phoneNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, utils.NewAppError(http.StatusConflict, utils.ErrCodePhoneExists,
			"User already exists", utils.ErrPhoneExists)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	if role == "" {
		role = models.RoleTenant
	}

	user := &models.User{
		ID:           uuid.New(),
		FirstName:    firstName,
		LastName:     lastName,
		PhoneNumber:  phoneNumber,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issue(user)
}

func (s *authService) Login(ctx context.Context, phoneNumber, password string) (*AuthResult, error) {
	user, err := s.users.GetByPhone(ctx, phoneNumber)
	if err != nil {
		return nil, err
	}
	// Same failure for unknown phone and wrong password.
	if user == nil || !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, utils.NewAppError(http.StatusUnauthorized, utils.ErrCodeInvalidCredentials,
			"Invalid credentials", utils.ErrInvalidCredentials)
	}

	return s.issue(user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	claims, err := s.jwt.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, utils.NewAppError(http.StatusUnauthorized, utils.ErrCodeUnauthorized,
			"Invalid or expired refresh token", err)
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound,
			"User not found", nil)
	}

	return s.issue(user)
}

func (s *authService) issue(user *models.User) (*AuthResult, error) {
	access, refresh, err := s.jwt.GenerateTokenPair(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: access, RefreshToken: refresh}, nil
}
