package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskloom/taskloom-api/internal/domain"
	"github.com/taskloom/taskloom-api/internal/store"
)

// MockCategoryStore implements store.CategoryStore for testing
type MockCategoryStore struct {
	// CreateFn allows test cases to mock the Create behavior
	CreateFn func(ctx context.Context, category *domain.Category) error

	// GetByIDFn allows test cases to mock the GetByID behavior
	GetByIDFn func(ctx context.Context, id uuid.UUID) (*domain.Category, error)

	// GetByNameFn allows test cases to mock the GetByName behavior
	GetByNameFn func(ctx context.Context, name string) (*domain.Category, error)

	// ListFn allows test cases to mock the List behavior
	ListFn func(ctx context.Context) ([]*domain.Category, error)

	// UpdateFn allows test cases to mock the Update behavior
	UpdateFn func(ctx context.Context, category *domain.Category) error

	// DeleteFn allows test cases to mock the Delete behavior
	DeleteFn func(ctx context.Context, id uuid.UUID) error

	// Default values used when functions aren't explicitly defined
	Category   *domain.Category
	Categories []*domain.Category
	Err        error
}

var _ store.CategoryStore = (*MockCategoryStore)(nil)

// Create implements the store.CategoryStore interface
func (m *MockCategoryStore) Create(ctx context.Context, category *domain.Category) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, category)
	}
	return m.Err
}

// GetByID implements the store.CategoryStore interface
func (m *MockCategoryStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return m.Category, m.Err
}

// GetByName implements the store.CategoryStore interface
func (m *MockCategoryStore) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	if m.GetByNameFn != nil {
		return m.GetByNameFn(ctx, name)
	}
	return m.Category, m.Err
}

// List implements the store.CategoryStore interface
func (m *MockCategoryStore) List(ctx context.Context) ([]*domain.Category, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return m.Categories, m.Err
}

// Update implements the store.CategoryStore interface
func (m *MockCategoryStore) Update(ctx context.Context, category *domain.Category) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, category)
	}
	return m.Err
}

// Delete implements the store.CategoryStore interface
func (m *MockCategoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.Err
}
