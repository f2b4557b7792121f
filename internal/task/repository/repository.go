package repository

import (
	"context"

	"taskhub-backend/internal/auth/policy"
	"taskhub-backend/internal/task/domain"
)

// TaskFilter selects a page of tasks, newest first.
type TaskFilter struct {
	Scope  policy.Scope
	Search string
	Offset int
	Limit  int
}

// TaskChanges lists the mutable task fields. Nil fields are kept.
type TaskChanges struct {
	Title       *string
	Description *string
	IsCompleted *bool
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(ctx context.Context, task *domain.Task) error

	// FindByID finds a task by its ID, nil if absent
	FindByID(ctx context.Context, id string) (*domain.Task, error)

	// List returns the tasks inside the filter scope and the total count
	List(ctx context.Context, filter TaskFilter) ([]*domain.Task, int64, error)

	// Update applies changes and returns the stored task
	Update(ctx context.Context, id string, changes TaskChanges) (*domain.Task, error)

	// Delete deletes a task by ID
	Delete(ctx context.Context, id string) error

	// DeleteByOwner deletes every task of a user
	DeleteByOwner(ctx context.Context, ownerID string) error
}
