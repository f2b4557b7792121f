package domain

import "time"

// Task is a to-do item owned by exactly one user
type Task struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid"`
	UserID      string    `json:"owner" gorm:"type:uuid;index;not null"` // fixed at creation
	Title       string    `json:"title" gorm:"size:255;not null"`
	Description string    `json:"description"`
	IsCompleted bool      `json:"is_completed" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
