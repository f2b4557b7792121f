package dto

import authdomain "taskhub-backend/internal/auth/domain"

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenPairResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type RefreshTokenRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

type AccessTokenResponse struct {
	Access string `json:"access"`
}

// TokenRequest carries a token for verify and decode.
type TokenRequest struct {
	Token string `json:"token" binding:"required"`
}

type DecodeResponse struct {
	authdomain.Profile
	Permissions []string `json:"permissions"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=5,max=128"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
