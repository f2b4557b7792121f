package usecase

import (
	"context"

	authdomain "taskhub-backend/internal/auth/domain"
	"taskhub-backend/internal/task/domain"
	"taskhub-backend/pkg/pagination"
)

// TaskUsecase defines the interface for task business logic
type TaskUsecase interface {
	// CreateTask creates a task owned by actor
	CreateTask(ctx context.Context, actor *authdomain.User, req TaskCreateRequest) (*domain.Task, error)

	// GetTaskByID retrieves a task by ID (with ownership check)
	GetTaskByID(ctx context.Context, actor *authdomain.User, taskID string) (*domain.Task, error)

	// GetTasks lists the tasks visible to actor
	GetTasks(ctx context.Context, actor *authdomain.User, search string, page pagination.Page) ([]*domain.Task, int64, error)

	// UpdateTask applies a partial update. The body is decoded only once
	// the task is found and the actor may change it.
	UpdateTask(ctx context.Context, actor *authdomain.User, taskID string, decode BodyDecoder) (*domain.Task, error)

	// DeleteTask deletes a task
	DeleteTask(ctx context.Context, actor *authdomain.User, taskID string) error
}

// BodyDecoder fills dst from the request body and validates it.
type BodyDecoder func(dst any) error

// TaskCreateRequest is the body of a create call. Owner and timestamps
// are not accepted.
type TaskCreateRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description"`
	IsCompleted bool   `json:"is_completed"`
}

// TaskUpdateRequest represents the fields that can be updated
type TaskUpdateRequest struct {
	Title       *string `json:"title,omitempty" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty"`
	IsCompleted *bool   `json:"is_completed,omitempty"`
}
