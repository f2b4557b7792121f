package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authdto "taskhub-backend/internal/auth/dto"
	"taskhub-backend/internal/auth/usecase"
	"taskhub-backend/pkg/response"
)

const passwordUpdated = "Your password has been updated."

// AuthHandler handles token and password HTTP requests
type AuthHandler struct {
	authUsecase usecase.AuthUsecase
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authUsecase usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
	}
}

// Login issues a token pair
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req authdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	resp, err := h.authUsecase.Login(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// RefreshToken issues a new access token
// POST /api/auth/token/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req authdto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	resp, err := h.authUsecase.RefreshToken(c.Request.Context(), req.Refresh)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// VerifyToken
// POST /api/auth/token/verify
func (h *AuthHandler) VerifyToken(c *gin.Context) {
	var req authdto.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	if err := h.authUsecase.VerifyToken(c.Request.Context(), req.Token); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}

// DecodeToken returns the profile and permissions behind a token
// POST /api/auth/decode
func (h *AuthHandler) DecodeToken(c *gin.Context) {
	var req authdto.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	resp, err := h.authUsecase.DecodeToken(c.Request.Context(), req.Token)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ChangePassword
// POST /api/auth/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req authdto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	if err := h.authUsecase.ChangePassword(c.Request.Context(), CurrentUser(c), &req); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, authdto.MessageResponse{Message: passwordUpdated})
}
