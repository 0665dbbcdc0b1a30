package controllers

import (
	"net/http"

	"github.com/kodipay/kodipay-server/internal/dtos"
	"github.com/kodipay/kodipay-server/internal/models"
	"github.com/kodipay/kodipay-server/internal/services"
	"github.com/kodipay/kodipay-server/internal/utils"
)

type AuthController struct {
	authService services.AuthService
}

func NewAuthController(authService services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Register -> POST /api/auth/register
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req dtos.RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := c.authService.Register(
		r.Context(), req.FirstName, req.LastName, req.PhoneNumber, req.Password,
		models.RoleType(req.Role),
	)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, authResponse(result))
}

// Login -> POST /api/auth/login
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req dtos.LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := c.authService.Login(r.Context(), req.PhoneNumber, req.Password)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, authResponse(result))
}

// Refresh -> POST /api/auth/refresh
func (c *AuthController) Refresh(w http.ResponseWriter, r *http.Request) {
	var req dtos.RefreshRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := c.authService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, authResponse(result))
}

func authResponse(result *services.AuthResult) dtos.AuthResponse {
	return dtos.AuthResponse{
		User:         dtos.NewUserResponse(result.User),
		Token:        result.Token,
		RefreshToken: result.RefreshToken,
	}
}
