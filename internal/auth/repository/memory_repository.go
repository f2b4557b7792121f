package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	authdomain "taskhub-backend/internal/auth/domain"
	"taskhub-backend/pkg/database"
)

// memoryUserRepository keeps users in process memory. Selected with
// STORAGE=memory and used by tests.
type memoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]authdomain.User
	now   func() time.Time
}

func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{
		users: make(map[string]authdomain.User),
		now:   time.Now,
	}
}

func (r *memoryUserRepository) Create(_ context.Context, user *authdomain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return ErrDuplicateEmail
		}
	}

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := r.now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = *user
	return nil
}

func (r *memoryUserRepository) FindByEmail(_ context.Context, email string) (*authdomain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *memoryUserRepository) FindByID(_ context.Context, id string) (*authdomain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *memoryUserRepository) List(_ context.Context, filter UserFilter) ([]*authdomain.User, int64, error) {
	if filter.Scope.Empty() {
		return []*authdomain.User{}, 0, nil
	}

	r.mu.RLock()
	matched := make([]*authdomain.User, 0, len(r.users))
	terms := database.SearchTerms(filter.Search)
	for _, u := range r.users {
		if !filter.Scope.Allows(u.ID) {
			continue
		}
		if !database.MatchesTerms(terms, u.Email, u.FirstName, u.LastName) {
			continue
		}
		u := u
		matched = append(matched, &u)
	}
	r.mu.RUnlock()

	sortUsers(matched, filter.OrderBy)

	total := int64(len(matched))
	return window(matched, filter.Offset, filter.Limit), total, nil
}

func sortUsers(users []*authdomain.User, orderBy string) {
	if orderBy == "" {
		orderBy = DefaultUserOrder
	}
	field, desc := strings.CutPrefix(orderBy, "-")
	if !UserOrderFields[field] {
		field, desc = "created_at", true
	}

	less := func(a, b *authdomain.User) int {
		switch field {
		case "email":
			return strings.Compare(a.Email, b.Email)
		case "firstname":
			return strings.Compare(a.FirstName, b.FirstName)
		case "lastname":
			return strings.Compare(a.LastName, b.LastName)
		default:
			return a.CreatedAt.Compare(b.CreatedAt)
		}
	}

	sort.SliceStable(users, func(i, j int) bool {
		c := less(users[i], users[j])
		if c == 0 {
			return users[i].ID < users[j].ID
		}
		if desc {
			return c > 0
		}
		return c < 0
	})
}

func window[T any](items []T, offset, limit int) []T {
	if offset < 0 || offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && limit < end-offset {
		end = offset + limit
	}
	return items[offset:end]
}

func (r *memoryUserRepository) Update(_ context.Context, id string, changes UserChanges) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil
	}
	if changes.FirstName != nil {
		u.FirstName = *changes.FirstName
	}
	if changes.LastName != nil {
		u.LastName = *changes.LastName
	}
	u.UpdatedAt = r.now()
	r.users[id] = u
	return nil
}

func (r *memoryUserRepository) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.users[id]; ok {
		u.LastLogin = &at
		r.users[id] = u
	}
	return nil
}

func (r *memoryUserRepository) UpdatePassword(_ context.Context, id, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.users[id]; ok {
		u.Password = hash
		u.UpdatedAt = r.now()
		r.users[id] = u
	}
	return nil
}

func (r *memoryUserRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.users, id)
	return nil
}
