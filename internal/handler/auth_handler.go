package handler

import (
	"hope4ever-backend/internal/dto"
	"hope4ever-backend/internal/middleware"
	"hope4ever-backend/internal/service"
	"hope4ever-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register handles user registration
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	profile, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, profile)
}

// Login handles user authentication
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, token)
}

// Me returns the profile of the bearer of the request's token
func (h *AuthHandler) Me(c *gin.Context) {
	token, ok := middleware.BearerToken(c)
	if !ok {
		respondError(c, service.ErrUnauthenticated)
		return
	}

	profile, err := h.authService.CurrentUser(c.Request.Context(), token)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, profile)
}

// Roles lists the role reference data
func (h *AuthHandler) Roles(c *gin.Context) {
	roles, err := h.authService.Roles(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, roles)
}
