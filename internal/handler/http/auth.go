package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/talenttrack/talenttrack-backend-go/internal/domain/auth"
	"github.com/talenttrack/talenttrack-backend-go/internal/handler/http/response"
	"github.com/talenttrack/talenttrack-backend-go/internal/pkg/jwt"
	"github.com/talenttrack/talenttrack-backend-go/internal/pkg/validator"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	jwtService  jwt.Service
	authService auth.AuthService
}

func NewAuthHandler(jwtService jwt.Service, authService auth.AuthService) AuthHandler {
	return &AuthHandlerImpl{
		jwtService:  jwtService,
		authService: authService,
	}
}

// Login implements AuthHandler.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	var details validator.ValidationErrors
	if validator.IsEmpty(loginReq.Username) {
		details = append(details, validator.ValidationError{Field: "username", Message: "is required"})
	}
	if validator.IsEmpty(loginReq.Password) {
		details = append(details, validator.ValidationError{Field: "password", Message: "is required"})
	}
	if len(details) > 0 {
		response.HandleError(w, details)
		return
	}

	tokenResponse, err := a.authService.Login(r.Context(), loginReq)
	if err != nil {
		slog.Error("login error", "error", err)
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, a.jwtService.RefreshTokenCookie(tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn))
	response.Success(w, tokenResponse)
}
