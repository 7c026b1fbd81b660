package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskloom/taskloom-api/internal/domain"
	"github.com/taskloom/taskloom-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing
type MockTaskStore struct {
	// CreateFn allows test cases to mock the Create behavior
	CreateFn func(ctx context.Context, task *domain.Task) error

	// GetByIDFn allows test cases to mock the GetByID behavior
	GetByIDFn func(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// ListByOwnerFn allows test cases to mock the ListByOwner behavior
	ListByOwnerFn func(ctx context.Context, ownerID uuid.UUID, filter store.TaskFilter, page store.Page) ([]*domain.Task, int, error)

	// ListPublicFn allows test cases to mock the ListPublic behavior
	ListPublicFn func(ctx context.Context, filter store.TaskFilter, page store.Page) ([]*domain.Task, int, error)

	// UpdateFn allows test cases to mock the Update behavior
	UpdateFn func(ctx context.Context, task *domain.Task) error

	// DeleteFn allows test cases to mock the Delete behavior
	DeleteFn func(ctx context.Context, id uuid.UUID) error

	// Default values used when functions aren't explicitly defined
	Task  *domain.Task
	Tasks []*domain.Task
	Total int
	Err   error
}

var _ store.TaskStore = (*MockTaskStore)(nil)

// Create implements the store.TaskStore interface
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	return m.Err
}

// GetByID implements the store.TaskStore interface
func (m *MockTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return m.Task, m.Err
}

// ListByOwner implements the store.TaskStore interface
func (m *MockTaskStore) ListByOwner(ctx context.Context, ownerID uuid.UUID, filter store.TaskFilter, page store.Page) ([]*domain.Task, int, error) {
	if m.ListByOwnerFn != nil {
		return m.ListByOwnerFn(ctx, ownerID, filter, page)
	}
	return m.Tasks, m.Total, m.Err
}

// ListPublic implements the store.TaskStore interface
func (m *MockTaskStore) ListPublic(ctx context.Context, filter store.TaskFilter, page store.Page) ([]*domain.Task, int, error) {
	if m.ListPublicFn != nil {
		return m.ListPublicFn(ctx, filter, page)
	}
	return m.Tasks, m.Total, m.Err
}

// Update implements the store.TaskStore interface
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}
	return m.Err
}

// Delete implements the store.TaskStore interface
func (m *MockTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.Err
}
