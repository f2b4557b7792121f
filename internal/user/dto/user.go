package dto

import authdomain "taskhub-backend/internal/auth/domain"

type CreateUserRequest struct {
	Email     string `json:"email" binding:"required,email,max=255"`
	FirstName string `json:"firstname" binding:"required,max=150"`
	LastName  string `json:"lastname" binding:"required,max=150"`
	Password  string `json:"password" binding:"required,max=128"`
}

// UpdateUserRequest accepts only name fields. Anything else in the body
// is ignored.
type UpdateUserRequest struct {
	FirstName *string `json:"firstname" binding:"omitempty,max=150"`
	LastName  *string `json:"lastname" binding:"omitempty,max=150"`
}

type CreatedUserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
}

type UpdatedUserResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
}

func NewCreatedUserResponse(u *authdomain.User) CreatedUserResponse {
	return CreatedUserResponse{ID: u.ID, Email: u.Email, FirstName: u.FirstName, LastName: u.LastName}
}

func NewUpdatedUserResponse(u *authdomain.User) UpdatedUserResponse {
	return UpdatedUserResponse{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName}
}
