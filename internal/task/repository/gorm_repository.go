package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskhub-backend/internal/task/domain"
	"taskhub-backend/pkg/database"
)

// gormTaskRepository implements TaskRepository using GORM
type gormTaskRepository struct {
	db *gorm.DB
}

// NewGormTaskRepository creates a new GORM-based TaskRepository
func NewGormTaskRepository(db *gorm.DB) TaskRepository {
	return &gormTaskRepository{db: db}
}

func (r *gormTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *gormTaskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	if uuid.Validate(id) != nil {
		return nil, nil
	}

	var task domain.Task
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &task, nil
}

func (r *gormTaskRepository) List(ctx context.Context, filter TaskFilter) ([]*domain.Task, int64, error) {
	if filter.Scope.Empty() {
		return []*domain.Task{}, 0, nil
	}

	scoped := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&domain.Task{})
		if !filter.Scope.Unrestricted {
			q = q.Where("user_id = ?", filter.Scope.OwnerID)
		}
		for _, term := range database.SearchTerms(filter.Search) {
			q = q.Where("LOWER(title) LIKE ?", database.ContainsPattern(term))
		}
		return q
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tasks []*domain.Task
	err := scoped().
		Order("created_at DESC").
		Order("id").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&tasks).Error
	return tasks, total, err
}

func (r *gormTaskRepository) Update(ctx context.Context, id string, changes TaskChanges) (*domain.Task, error) {
	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if changes.Title != nil {
		updates["title"] = *changes.Title
	}
	if changes.Description != nil {
		updates["description"] = *changes.Description
	}
	if changes.IsCompleted != nil {
		updates["is_completed"] = *changes.IsCompleted
	}

	db := r.db.WithContext(ctx)
	if err := db.Model(&domain.Task{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *gormTaskRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.Task{}, "id = ?", id).Error
}

func (r *gormTaskRepository) DeleteByOwner(ctx context.Context, ownerID string) error {
	return r.db.WithContext(ctx).Delete(&domain.Task{}, "user_id = ?", ownerID).Error
}
