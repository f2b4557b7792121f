package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	authdomain "taskhub-backend/internal/auth/domain"
	authdto "taskhub-backend/internal/auth/dto"
	"taskhub-backend/internal/auth/policy"
	"taskhub-backend/internal/auth/repository"
	"taskhub-backend/internal/auth/token"
	"taskhub-backend/pkg/apperror"
)

// authUsecase implements AuthUsecase interface
type authUsecase struct {
	userRepo repository.UserRepository
	tokens   *token.Manager
	logger   zerolog.Logger
	now      func() time.Time

	// checkPassword must run for every login attempt, known email or not.
	checkPassword func(password, hash string) bool
}

// dummyHash stands in for the stored hash when no account matches.
var dummyHash = sync.OnceValue(func() string {
	hash, _ := repository.HashPassword("no-such-account")
	return hash
})

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(userRepo repository.UserRepository, tokens *token.Manager, logger zerolog.Logger) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger.With().Str("component", "auth_usecase").Logger(),
		now:      time.Now,

		checkPassword: repository.CheckPasswordHash,
	}
}

func (u *authUsecase) Login(ctx context.Context, req *authdto.LoginRequest) (*authdto.TokenPairResponse, error) {
	user, err := u.userRepo.FindByEmail(ctx, authdomain.NormalizeEmail(req.Email))
	if err != nil {
		u.logger.Error().Err(err).Msg("failed to find user by email")
		return nil, apperror.Internal(err)
	}

	hash := dummyHash()
	if user != nil {
		hash = user.Password
	}
	matched := u.checkPassword(req.Password, hash)
	if user == nil || !user.IsActive || !matched {
		return nil, ErrInvalidCredentials
	}

	pair, err := u.tokens.IssuePair(user)
	if err != nil {
		u.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to issue tokens")
		return nil, apperror.Internal(err)
	}

	if err := u.userRepo.UpdateLastLogin(ctx, user.ID, u.now()); err != nil {
		u.logger.Warn().Err(err).Str("user_id", user.ID).Msg("failed to update last login")
	}

	u.logger.Info().Str("user_id", user.ID).Msg("user logged in")
	return &authdto.TokenPairResponse{
		Access:  pair.Access,
		Refresh: pair.Refresh,
	}, nil
}

func (u *authUsecase) RefreshToken(ctx context.Context, refreshToken string) (*authdto.AccessTokenResponse, error) {
	user, err := u.resolve(ctx, refreshToken, token.KindRefresh)
	if err != nil {
		return nil, err
	}

	access, err := u.tokens.IssueAccess(user)
	if err != nil {
		u.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to issue access token")
		return nil, apperror.Internal(err)
	}
	return &authdto.AccessTokenResponse{Access: access}, nil
}

func (u *authUsecase) VerifyToken(ctx context.Context, tokenString string) error {
	_, err := u.resolve(ctx, tokenString, "")
	return err
}

func (u *authUsecase) ValidateToken(ctx context.Context, tokenString string) (*authdomain.User, error) {
	return u.resolve(ctx, tokenString, token.KindAccess)
}

func (u *authUsecase) DecodeToken(ctx context.Context, tokenString string) (*authdto.DecodeResponse, error) {
	user, err := u.resolve(ctx, tokenString, "")
	if err != nil {
		return nil, err
	}
	return &authdto.DecodeResponse{
		Profile:     user.Profile(),
		Permissions: policy.Permissions(user.Actor()),
	}, nil
}

// resolve parses tokenString and loads its subject. An empty kind accepts
// both access and refresh tokens.
func (u *authUsecase) resolve(ctx context.Context, tokenString string, kind token.Kind) (*authdomain.User, error) {
	claims, err := u.tokens.Parse(tokenString)
	if err != nil {
		return nil, tokenError(err)
	}
	if kind != "" && claims.Kind != kind {
		return nil, ErrWrongKind
	}

	user, err := u.userRepo.FindByID(ctx, claims.Subject)
	if err != nil {
		u.logger.Error().Err(err).Str("user_id", claims.Subject).Msg("failed to find token subject")
		return nil, apperror.Internal(err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}
	return user, nil
}

func (u *authUsecase) ChangePassword(ctx context.Context, user *authdomain.User, req *authdto.ChangePasswordRequest) error {
	if !repository.CheckPasswordHash(req.OldPassword, user.Password) {
		return apperror.FieldError("old_password", "Old password is not correct")
	}

	hash, err := repository.HashPassword(req.NewPassword)
	if err != nil {
		u.logger.Error().Err(err).Msg("failed to hash password")
		return apperror.Internal(err)
	}
	if err := u.userRepo.UpdatePassword(ctx, user.ID, hash); err != nil {
		u.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to update password")
		return apperror.Internal(err)
	}

	u.logger.Info().Str("user_id", user.ID).Msg("password changed")
	return nil
}
