package auth

import (
	"context"
	"fmt"

	"github.com/talenttrack/talenttrack-backend-go/internal/domain/auth"
	"github.com/talenttrack/talenttrack-backend-go/internal/domain/user"
	"github.com/talenttrack/talenttrack-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	users user.UserRepository
	jwt   jwt.Service
}

func NewAuthService(users user.UserRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		users: users,
		jwt:   jwtService,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	userData, err := a.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if err == user.ErrUserNotFound {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	if !userData.Active {
		return auth.TokenResponse{}, auth.ErrUserInactive
	}

	if userData.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	roles, err := a.users.RolesForUser(ctx, userData.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to load user roles: %w", err)
	}

	var tokenResponse auth.TokenResponse
	tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.jwt.GenerateAccessToken(
		userData.ID, userData.CompanyID, userData.EmployeeID, roles, userData.IsSuperadmin,
	)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, err = a.jwt.GenerateRefreshToken(userData.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create refresh token: %w", err)
	}

	tokenResponse.UserID = userData.ID
	tokenResponse.CompanyID = userData.CompanyID
	tokenResponse.EmployeeID = userData.EmployeeID
	tokenResponse.Roles = roles
	tokenResponse.IsSuperadmin = userData.IsSuperadmin

	return tokenResponse, nil
}
