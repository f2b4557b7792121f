package usecase

import (
	"errors"

	"taskhub-backend/internal/auth/token"
	"taskhub-backend/pkg/apperror"
)

var (
	// ErrInvalidCredentials covers unknown email, wrong password and
	// inactive account alike.
	ErrInvalidCredentials = apperror.Authentication("no_active_account", "No active account found with the given credentials")

	ErrTokenNotValid = apperror.Authentication("token_not_valid", "Token is invalid")
	ErrTokenExpired  = apperror.Authentication("token_expired", "Token is expired")
	ErrWrongKind     = apperror.Authentication("token_not_valid", "Token has wrong type")
	ErrUserNotFound  = apperror.Authentication("token_not_valid", "User not found")
	ErrUserInactive  = apperror.Authentication("user_inactive", "User is inactive")
)

func tokenError(err error) error {
	if errors.Is(err, token.ErrExpiredToken) {
		return ErrTokenExpired
	}
	return ErrTokenNotValid
}
