package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	authdomain "taskhub-backend/internal/auth/domain"
	"taskhub-backend/internal/auth/policy"
	"taskhub-backend/internal/auth/repository"
	userdto "taskhub-backend/internal/user/dto"
	"taskhub-backend/pkg/apperror"
)

const errEmailTaken = "Email already exists"

var (
	ErrUserNotFound = apperror.NotFound("User not found")
	ErrForbidden    = apperror.Forbidden("You do not have permission to perform this action.")
)

// userUsecase implements UserUsecase interface
type userUsecase struct {
	userRepo repository.UserRepository
	tasks    OwnedTasks
	logger   zerolog.Logger
}

// NewUserUsecase creates a new instance of userUsecase
func NewUserUsecase(userRepo repository.UserRepository, tasks OwnedTasks, logger zerolog.Logger) UserUsecase {
	return &userUsecase{
		userRepo: userRepo,
		tasks:    tasks,
		logger:   logger.With().Str("component", "user_usecase").Logger(),
	}
}

func (u *userUsecase) ListUsers(ctx context.Context, actor *authdomain.User, query ListQuery) ([]*authdomain.User, int64, error) {
	users, total, err := u.userRepo.List(ctx, repository.UserFilter{
		Scope:   policy.ScopeFor(actor.Actor()),
		Search:  query.Search,
		OrderBy: query.Ordering,
		Offset:  query.Page.Offset(),
		Limit:   query.Page.Limit(),
	})
	if err != nil {
		u.logger.Error().Err(err).Msg("failed to list users")
		return nil, 0, apperror.Internal(err)
	}
	if err := query.Page.Check(total); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// GetUser hides accounts outside the scope as not found.
func (u *userUsecase) GetUser(ctx context.Context, actor *authdomain.User, id string) (*authdomain.User, error) {
	user, err := u.userRepo.FindByID(ctx, id)
	if err != nil {
		u.logger.Error().Err(err).Str("user_id", id).Msg("failed to find user")
		return nil, apperror.Internal(err)
	}
	if user == nil || !policy.ScopeFor(actor.Actor()).Allows(user.ID) {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (u *userUsecase) CreateUser(ctx context.Context, req *userdto.CreateUserRequest) (*authdomain.User, error) {
	email := authdomain.NormalizeEmail(req.Email)

	existing, err := u.userRepo.FindByEmail(ctx, email)
	if err != nil {
		u.logger.Error().Err(err).Msg("failed to check email")
		return nil, apperror.Internal(err)
	}
	if existing != nil {
		return nil, apperror.FieldError("email", errEmailTaken)
	}

	hash, err := repository.HashPassword(req.Password)
	if err != nil {
		u.logger.Error().Err(err).Msg("failed to hash password")
		return nil, apperror.Internal(err)
	}

	user := &authdomain.User{
		Email:     email,
		Password:  hash,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsActive:  true,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperror.FieldError("email", errEmailTaken)
		}
		u.logger.Error().Err(err).Msg("failed to create user")
		return nil, apperror.Internal(err)
	}

	u.logger.Info().Str("user_id", user.ID).Msg("user registered")
	return user, nil
}

func (u *userUsecase) UpdateUser(ctx context.Context, actor *authdomain.User, id string, decode BodyDecoder) (*authdomain.User, error) {
	user, err := u.GetUser(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !policy.Can(actor.Actor(), policy.ActionUpdate, user.ID) {
		return nil, ErrForbidden
	}

	req := &userdto.UpdateUserRequest{}
	if err := decode(req); err != nil {
		return nil, err
	}

	changes := repository.UserChanges{FirstName: req.FirstName, LastName: req.LastName}
	if err := u.userRepo.Update(ctx, user.ID, changes); err != nil {
		u.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to update user")
		return nil, apperror.Internal(err)
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	return user, nil
}

// DeleteUser runs the admin gate before the lookup.
func (u *userUsecase) DeleteUser(ctx context.Context, actor *authdomain.User, id string) error {
	if !policy.IsAdmin(actor.Actor()) {
		return ErrForbidden
	}

	user, err := u.userRepo.FindByID(ctx, id)
	if err != nil {
		u.logger.Error().Err(err).Str("user_id", id).Msg("failed to find user")
		return apperror.Internal(err)
	}
	if user == nil {
		return ErrUserNotFound
	}

	if u.tasks != nil {
		if err := u.tasks.DeleteByOwner(ctx, user.ID); err != nil {
			u.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to delete user tasks")
			return apperror.Internal(err)
		}
	}
	if err := u.userRepo.Delete(ctx, user.ID); err != nil {
		u.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to delete user")
		return apperror.Internal(err)
	}

	u.logger.Info().Str("user_id", user.ID).Str("actor_id", actor.ID).Msg("user deleted")
	return nil
}
