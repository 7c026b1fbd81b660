package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/taskloom/taskloom-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	DisplayName string `json:"display_name" validate:"required,min=3,max=20"`
	Email       string `json:"email"        validate:"required,email"`
	Password    string `json:"password"     validate:"required,min=6,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// Token is the JWT bearer token used for API authorization
	Token string `json:"token"`

	// ExpiresAt is the ISO 8601 timestamp when the token expires
	ExpiresAt string `json:"expires_at,omitempty"`
}

// CreateTaskRequest defines the payload for task creation.
type CreateTaskRequest struct {
	Title       string     `json:"title"       validate:"required,max=200"`
	Description string     `json:"description" validate:"required"`
	Deadline    time.Time  `json:"deadline"    validate:"required"`
	Status      string     `json:"status"      validate:"omitempty,oneof=pending in_progress completed"`
	Priority    string     `json:"priority"    validate:"required,oneof=low medium high"`
	CategoryID  *uuid.UUID `json:"category_id"`
	Visibility  string     `json:"visibility"  validate:"omitempty,oneof=private public"`
}

// UpdateTaskRequest defines the payload for task updates. Absent fields
// leave the stored value unchanged, mirroring the PUT semantics of the
// route surface.
type UpdateTaskRequest struct {
	Title       *string    `json:"title"       validate:"omitempty,min=1,max=200"`
	Description *string    `json:"description"`
	Deadline    *time.Time `json:"deadline"`
	Status      *string    `json:"status"      validate:"omitempty,oneof=pending in_progress completed"`
	Priority    *string    `json:"priority"    validate:"omitempty,oneof=low medium high"`
	CategoryID  *uuid.UUID `json:"category_id"`
	Visibility  *string    `json:"visibility"  validate:"omitempty,oneof=private public"`
}

// TaskListResponse wraps a paginated task listing.
type TaskListResponse struct {
	Tasks      []*domain.Task `json:"tasks"`
	Page       int            `json:"page"`
	TotalPages int            `json:"total_pages"`
	Total      int            `json:"total"`
}

// CreateCategoryRequest defines the payload for category creation.
type CreateCategoryRequest struct {
	Name          string `json:"name"           validate:"required,max=100"`
	Description   string `json:"description"    validate:"required"`
	PriorityLevel int    `json:"priority_level" validate:"required,gte=1,lte=5"`
}

// UpdateCategoryRequest defines the payload for category updates.
type UpdateCategoryRequest struct {
	Name          *string `json:"name"           validate:"omitempty,min=1,max=100"`
	Description   *string `json:"description"`
	PriorityLevel *int    `json:"priority_level" validate:"omitempty,gte=1,lte=5"`
}

// UpdateProfileRequest defines the payload for profile updates.
type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name" validate:"omitempty,min=3,max=20"`
	Email       *string `json:"email"        validate:"omitempty,email"`
}

// ChangePasswordRequest defines the payload for password changes.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=6,max=72"`
}
