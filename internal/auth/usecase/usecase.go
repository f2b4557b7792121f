package usecase

import (
	"context"

	authdomain "taskhub-backend/internal/auth/domain"
	authdto "taskhub-backend/internal/auth/dto"
)

// AuthUsecase defines the interface for authentication logic
type AuthUsecase interface {
	// Login checks credentials and issues an access/refresh pair
	Login(ctx context.Context, req *authdto.LoginRequest) (*authdto.TokenPairResponse, error)

	// RefreshToken mints a new access token from a refresh token
	RefreshToken(ctx context.Context, refreshToken string) (*authdto.AccessTokenResponse, error)

	// VerifyToken succeeds for any valid token of either kind
	VerifyToken(ctx context.Context, tokenString string) error

	// ValidateToken resolves the user behind an access token
	ValidateToken(ctx context.Context, tokenString string) (*authdomain.User, error)

	// DecodeToken returns the subject profile and permission descriptors
	DecodeToken(ctx context.Context, tokenString string) (*authdto.DecodeResponse, error)

	// ChangePassword replaces the password of user after checking the old one
	ChangePassword(ctx context.Context, user *authdomain.User, req *authdto.ChangePasswordRequest) error
}
