package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskhub-backend/internal/task/domain"
	"taskhub-backend/pkg/database"
)

type memoryTaskRepository struct {
	mu    sync.RWMutex
	tasks map[string]domain.Task
	now   func() time.Time
}

// NewMemoryTaskRepository keeps tasks in process memory.
func NewMemoryTaskRepository() TaskRepository {
	return &memoryTaskRepository{
		tasks: make(map[string]domain.Task),
		now:   time.Now,
	}
}

func (r *memoryTaskRepository) Create(_ context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	now := r.now()
	task.CreatedAt = now
	task.UpdatedAt = now
	r.tasks[task.ID] = *task
	return nil
}

func (r *memoryTaskRepository) FindByID(_ context.Context, id string) (*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tasks[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r *memoryTaskRepository) List(_ context.Context, filter TaskFilter) ([]*domain.Task, int64, error) {
	if filter.Scope.Empty() {
		return []*domain.Task{}, 0, nil
	}

	terms := database.SearchTerms(filter.Search)

	r.mu.RLock()
	matched := make([]*domain.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		if !filter.Scope.Allows(t.UserID) {
			continue
		}
		if !database.MatchesTerms(terms, t.Title) {
			continue
		}
		t := t
		matched = append(matched, &t)
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if c := matched[i].CreatedAt.Compare(matched[j].CreatedAt); c != 0 {
			return c > 0
		}
		return matched[i].ID < matched[j].ID
	})

	total := int64(len(matched))
	if filter.Offset < 0 || filter.Offset >= len(matched) {
		return []*domain.Task{}, total, nil
	}
	end := len(matched)
	if filter.Limit > 0 && filter.Limit < end-filter.Offset {
		end = filter.Offset + filter.Limit
	}
	return matched[filter.Offset:end], total, nil
}

func (r *memoryTaskRepository) Update(_ context.Context, id string, changes TaskChanges) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok {
		return nil, nil
	}
	if changes.Title != nil {
		t.Title = *changes.Title
	}
	if changes.Description != nil {
		t.Description = *changes.Description
	}
	if changes.IsCompleted != nil {
		t.IsCompleted = *changes.IsCompleted
	}
	t.UpdatedAt = r.now()
	r.tasks[id] = t
	return &t, nil
}

func (r *memoryTaskRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.tasks, id)
	return nil
}

func (r *memoryTaskRepository) DeleteByOwner(_ context.Context, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, t := range r.tasks {
		if t.UserID == ownerID {
			delete(r.tasks, id)
		}
	}
	return nil
}
