package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	authdomain "taskhub-backend/internal/auth/domain"
	"taskhub-backend/pkg/database"
)

// userRepository implements UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of userRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) Create(ctx context.Context, user *authdomain.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var taken int64
		if err := tx.Model(&authdomain.User{}).Where("email = ?", user.Email).Count(&taken).Error; err != nil {
			return err
		}
		if taken > 0 {
			return ErrDuplicateEmail
		}

		if err := tx.Create(user).Error; err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				return ErrDuplicateEmail
			}
			return err
		}
		return nil
	})
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*authdomain.User, error) {
	var user authdomain.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*authdomain.User, error) {
	if uuid.Validate(id) != nil {
		return nil, nil
	}

	var user authdomain.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, filter UserFilter) ([]*authdomain.User, int64, error) {
	if filter.Scope.Empty() {
		return []*authdomain.User{}, 0, nil
	}

	scoped := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&authdomain.User{})
		if !filter.Scope.Unrestricted {
			q = q.Where("id = ?", filter.Scope.OwnerID)
		}
		for _, term := range database.SearchTerms(filter.Search) {
			p := database.ContainsPattern(term)
			q = q.Where("LOWER(email) LIKE ? OR LOWER(firstname) LIKE ? OR LOWER(lastname) LIKE ?", p, p, p)
		}
		return q
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []*authdomain.User
	err := scoped().
		Order(userOrderClause(filter.OrderBy)).
		Order("id").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&users).Error
	return users, total, err
}

func userOrderClause(orderBy string) string {
	if orderBy == "" {
		orderBy = DefaultUserOrder
	}
	field, desc := strings.CutPrefix(orderBy, "-")
	if !UserOrderFields[field] {
		return userOrderClause(DefaultUserOrder)
	}
	if desc {
		return field + " DESC"
	}
	return field + " ASC"
}

func (r *userRepository) Update(ctx context.Context, id string, changes UserChanges) error {
	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if changes.FirstName != nil {
		updates["firstname"] = *changes.FirstName
	}
	if changes.LastName != nil {
		updates["lastname"] = *changes.LastName
	}
	return r.db.WithContext(ctx).Model(&authdomain.User{}).Where("id = ?", id).Updates(updates).Error
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&authdomain.User{}).Where("id = ?", id).
		Update("last_login", at).Error
}

func (r *userRepository) UpdatePassword(ctx context.Context, id, hash string) error {
	return r.db.WithContext(ctx).Model(&authdomain.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"password":   hash,
			"updated_at": time.Now(),
		}).Error
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&authdomain.User{}, "id = ?", id).Error
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares a password with a hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
