package domain

import (
	"strings"
	"time"

	"taskhub-backend/internal/auth/policy"
)

type User struct {
	ID        string     `json:"id" gorm:"primaryKey;type:uuid"`
	Email     string     `json:"email" gorm:"uniqueIndex;not null"`
	Password  string     `json:"-" gorm:"not null"` // bcrypt hash, never serialized
	FirstName string     `json:"firstname" gorm:"column:firstname;not null"`
	LastName  string     `json:"lastname" gorm:"column:lastname;not null"`
	IsAdmin   bool       `json:"is_admin" gorm:"not null"`
	IsActive  bool       `json:"-" gorm:"not null"`
	LastLogin *time.Time `json:"-"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Actor is the policy identity of the user.
func (u *User) Actor() *policy.Actor {
	if u == nil {
		return nil
	}
	return &policy.Actor{ID: u.ID, Admin: u.IsAdmin}
}

// Profile is the public view of a user.
type Profile struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstname"`
	LastName  string    `json:"lastname"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	IsAdmin   bool      `json:"is_admin"`
}

func (u *User) Profile() Profile {
	return Profile{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		IsAdmin:   u.IsAdmin,
	}
}

// NormalizeEmail is the canonical form used for lookups and uniqueness.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
