package usecase

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	authdomain "taskhub-backend/internal/auth/domain"
	"taskhub-backend/internal/auth/policy"
	"taskhub-backend/internal/task/domain"
	"taskhub-backend/internal/task/repository"
	"taskhub-backend/pkg/apperror"
	"taskhub-backend/pkg/pagination"
)

const errBlank = "This field may not be blank."

var (
	ErrTaskNotFound = apperror.NotFound("Task not found")
	ErrForbidden    = apperror.Forbidden("You do not have permission to perform this action.")
)

// taskUsecase implements TaskUsecase interface
type taskUsecase struct {
	taskRepo repository.TaskRepository
	logger   zerolog.Logger
}

// NewTaskUsecase creates a new instance of taskUsecase
func NewTaskUsecase(taskRepo repository.TaskRepository, logger zerolog.Logger) TaskUsecase {
	return &taskUsecase{
		taskRepo: taskRepo,
		logger:   logger.With().Str("component", "task_usecase").Logger(),
	}
}

func (u *taskUsecase) CreateTask(ctx context.Context, actor *authdomain.User, req TaskCreateRequest) (*domain.Task, error) {
	if !policy.Can(actor.Actor(), policy.ActionCreate, "") {
		return nil, ErrForbidden
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperror.FieldError("title", errBlank)
	}

	task := &domain.Task{
		UserID:      actor.ID,
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		IsCompleted: req.IsCompleted,
	}
	if err := u.taskRepo.Create(ctx, task); err != nil {
		u.logger.Error().Err(err).Str("user_id", actor.ID).Msg("failed to create task")
		return nil, apperror.Internal(err)
	}

	u.logger.Debug().Str("task_id", task.ID).Str("user_id", actor.ID).Msg("task created")
	return task, nil
}

// authorize loads the task, then checks the policy against its owner.
// Existence is not hidden: a foreign task is 403, a missing one 404.
func (u *taskUsecase) authorize(ctx context.Context, actor *authdomain.User, taskID string, action policy.Action) (*domain.Task, error) {
	task, err := u.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		u.logger.Error().Err(err).Str("task_id", taskID).Msg("failed to find task")
		return nil, apperror.Internal(err)
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}
	if !policy.Can(actor.Actor(), action, task.UserID) {
		return nil, ErrForbidden
	}
	return task, nil
}

func (u *taskUsecase) GetTaskByID(ctx context.Context, actor *authdomain.User, taskID string) (*domain.Task, error) {
	return u.authorize(ctx, actor, taskID, policy.ActionRead)
}

func (u *taskUsecase) GetTasks(ctx context.Context, actor *authdomain.User, search string, page pagination.Page) ([]*domain.Task, int64, error) {
	tasks, total, err := u.taskRepo.List(ctx, repository.TaskFilter{
		Scope:  policy.ScopeFor(actor.Actor()),
		Search: search,
		Offset: page.Offset(),
		Limit:  page.Limit(),
	})
	if err != nil {
		u.logger.Error().Err(err).Msg("failed to list tasks")
		return nil, 0, apperror.Internal(err)
	}
	if err := page.Check(total); err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

func (u *taskUsecase) UpdateTask(ctx context.Context, actor *authdomain.User, taskID string, decode BodyDecoder) (*domain.Task, error) {
	task, err := u.authorize(ctx, actor, taskID, policy.ActionUpdate)
	if err != nil {
		return nil, err
	}

	var updates TaskUpdateRequest
	if err := decode(&updates); err != nil {
		return nil, err
	}
	if updates.Title != nil {
		title := strings.TrimSpace(*updates.Title)
		if title == "" {
			return nil, apperror.FieldError("title", errBlank)
		}
		updates.Title = &title
	}
	if updates.Description != nil {
		description := strings.TrimSpace(*updates.Description)
		updates.Description = &description
	}

	updated, err := u.taskRepo.Update(ctx, task.ID, repository.TaskChanges{
		Title:       updates.Title,
		Description: updates.Description,
		IsCompleted: updates.IsCompleted,
	})
	if err != nil {
		u.logger.Error().Err(err).Str("task_id", task.ID).Msg("failed to update task")
		return nil, apperror.Internal(err)
	}
	if updated == nil {
		return nil, ErrTaskNotFound
	}
	return updated, nil
}

func (u *taskUsecase) DeleteTask(ctx context.Context, actor *authdomain.User, taskID string) error {
	task, err := u.authorize(ctx, actor, taskID, policy.ActionDelete)
	if err != nil {
		return err
	}
	if err := u.taskRepo.Delete(ctx, task.ID); err != nil {
		u.logger.Error().Err(err).Str("task_id", task.ID).Msg("failed to delete task")
		return apperror.Internal(err)
	}

	u.logger.Debug().Str("task_id", task.ID).Str("user_id", actor.ID).Msg("task deleted")
	return nil
}
