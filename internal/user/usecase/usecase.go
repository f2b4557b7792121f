package usecase

import (
	"context"

	authdomain "taskhub-backend/internal/auth/domain"
	userdto "taskhub-backend/internal/user/dto"
	"taskhub-backend/pkg/pagination"
)

// UserUsecase defines the interface for account management
type UserUsecase interface {
	// ListUsers returns the accounts visible to actor
	ListUsers(ctx context.Context, actor *authdomain.User, query ListQuery) ([]*authdomain.User, int64, error)

	// GetUser retrieves an account inside the actor's scope
	GetUser(ctx context.Context, actor *authdomain.User, id string) (*authdomain.User, error)

	// CreateUser registers a new account
	CreateUser(ctx context.Context, req *userdto.CreateUserRequest) (*authdomain.User, error)

	// UpdateUser applies name changes to an account inside the actor's
	// scope. The body is decoded after the account is resolved.
	UpdateUser(ctx context.Context, actor *authdomain.User, id string, decode BodyDecoder) (*authdomain.User, error)

	// DeleteUser removes an account. Admin only.
	DeleteUser(ctx context.Context, actor *authdomain.User, id string) error
}

// BodyDecoder fills dst from the request body and validates it.
type BodyDecoder func(dst any) error

type ListQuery struct {
	Search   string
	Ordering string
	Page     pagination.Page
}

// OwnedTasks removes the tasks of a deleted account. Leave it nil when the
// store cascades the delete itself.
type OwnedTasks interface {
	DeleteByOwner(ctx context.Context, ownerID string) error
}
