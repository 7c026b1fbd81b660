package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/taskloom/taskloom-api/internal/domain"
	"github.com/taskloom/taskloom-api/internal/store"
)

// MockUserStore implements store.UserStore for testing
type MockUserStore struct {
	// CreateFn allows test cases to mock the Create behavior
	CreateFn func(ctx context.Context, user *domain.User) error

	// GetByIDFn allows test cases to mock the GetByID behavior
	GetByIDFn func(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmailFn allows test cases to mock the GetByEmail behavior
	GetByEmailFn func(ctx context.Context, email string) (*domain.User, error)

	// GetByDisplayNameFn allows test cases to mock the GetByDisplayName behavior
	GetByDisplayNameFn func(ctx context.Context, displayName string) (*domain.User, error)

	// UpdateFn allows test cases to mock the Update behavior
	UpdateFn func(ctx context.Context, user *domain.User) error

	// Default values used when functions aren't explicitly defined
	User *domain.User
	Err  error
}

var _ store.UserStore = (*MockUserStore)(nil)

// Create implements the store.UserStore interface
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	return m.Err
}

// GetByID implements the store.UserStore interface
func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return m.User, m.Err
}

// GetByEmail implements the store.UserStore interface
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return m.User, m.Err
}

// GetByDisplayName implements the store.UserStore interface
func (m *MockUserStore) GetByDisplayName(ctx context.Context, displayName string) (*domain.User, error) {
	if m.GetByDisplayNameFn != nil {
		return m.GetByDisplayNameFn(ctx, displayName)
	}
	return m.User, m.Err
}

// Update implements the store.UserStore interface
func (m *MockUserStore) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, user)
	}
	return m.Err
}

// WithTx implements the store.UserStore interface. The mock has no real
// transaction state, so it returns itself.
func (m *MockUserStore) WithTx(_ *sql.Tx) store.UserStore {
	return m
}
