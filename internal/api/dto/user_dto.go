package dto

import (
	"time"

	"github.com/spec-kit/jobify-service/internal/domain"
)

// TokenRequest payload for POST /jwt.
type TokenRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// TokenResponse carries an issued credential.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserCreateRequest payload for POST /user.
type UserCreateRequest struct {
	Email  string `json:"email" validate:"required,email"`
	Name   string `json:"name"`
	Image  string `json:"image"`
	Status string `json:"status" validate:"omitempty,oneof=active blocked"`
}

// UserUpdateRequest payload for PATCH /updateUser/:email.
type UserUpdateRequest struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// StatusUpdateRequest payload for PATCH /updateStatus/:id.
type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required,oneof=active blocked"`
}

// RoleUpdateRequest payload for PATCH /updateRole/:id.
type RoleUpdateRequest struct {
	Role string `json:"role" validate:"required,oneof=none admin superAdmin"`
}

// UserResponse is the public shape of a user record.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Image     string    `json:"image"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Image:     u.Image,
		Role:      string(u.Role),
		Status:    string(u.Status),
		CreatedAt: u.CreatedAt,
	}
}
