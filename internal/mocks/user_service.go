package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskloom/taskloom-api/internal/domain"
	"github.com/taskloom/taskloom-api/internal/service"
)

// MockUserService implements service.UserService for testing
type MockUserService struct {
	// RegisterFn allows test cases to mock the Register behavior
	RegisterFn func(ctx context.Context, user *domain.User) error

	// UpdateProfileFn allows test cases to mock the UpdateProfile behavior
	UpdateProfileFn func(ctx context.Context, userID uuid.UUID, update service.ProfileUpdate) (*domain.User, error)

	// ChangePasswordFn allows test cases to mock the ChangePassword behavior
	ChangePasswordFn func(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error

	// DeactivateFn allows test cases to mock the Deactivate behavior
	DeactivateFn func(ctx context.Context, userID uuid.UUID) error

	// Default values used when functions aren't explicitly defined
	User *domain.User
	Err  error
}

var _ service.UserService = (*MockUserService)(nil)

// Register implements the service.UserService interface
func (m *MockUserService) Register(ctx context.Context, user *domain.User) error {
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, user)
	}
	return m.Err
}

// UpdateProfile implements the service.UserService interface
func (m *MockUserService) UpdateProfile(ctx context.Context, userID uuid.UUID, update service.ProfileUpdate) (*domain.User, error) {
	if m.UpdateProfileFn != nil {
		return m.UpdateProfileFn(ctx, userID, update)
	}
	return m.User, m.Err
}

// ChangePassword implements the service.UserService interface
func (m *MockUserService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	if m.ChangePasswordFn != nil {
		return m.ChangePasswordFn(ctx, userID, currentPassword, newPassword)
	}
	return m.Err
}

// Deactivate implements the service.UserService interface
func (m *MockUserService) Deactivate(ctx context.Context, userID uuid.UUID) error {
	if m.DeactivateFn != nil {
		return m.DeactivateFn(ctx, userID)
	}
	return m.Err
}
