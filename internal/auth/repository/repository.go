package repository

import (
	"context"
	"errors"
	"time"

	authdomain "taskhub-backend/internal/auth/domain"
	"taskhub-backend/internal/auth/policy"
)

// ErrDuplicateEmail is returned by Create when the email is taken.
var ErrDuplicateEmail = errors.New("email already exists")

// UserFilter selects a page of users.
type UserFilter struct {
	Scope  policy.Scope
	Search string
	// OrderBy is a whitelisted column, optionally prefixed with "-".
	OrderBy string
	Offset  int
	Limit   int
}

// UserChanges lists the mutable profile fields. Nil fields are kept.
type UserChanges struct {
	FirstName *string
	LastName  *string
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create inserts user. ErrDuplicateEmail if the email is taken.
	Create(ctx context.Context, user *authdomain.User) error

	// FindByEmail and FindByID return nil, nil when no row matches
	FindByEmail(ctx context.Context, email string) (*authdomain.User, error)
	FindByID(ctx context.Context, id string) (*authdomain.User, error)

	// List returns the users inside the filter scope and the total count
	List(ctx context.Context, filter UserFilter) ([]*authdomain.User, int64, error)

	Update(ctx context.Context, id string, changes UserChanges) error
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	UpdatePassword(ctx context.Context, id, hash string) error
	Delete(ctx context.Context, id string) error
}

// Orderable user columns.
var UserOrderFields = map[string]bool{
	"created_at": true,
	"email":      true,
	"firstname":  true,
	"lastname":   true,
}

const DefaultUserOrder = "-created_at"
