package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskloom/taskloom-api/internal/domain"
)

// TaskFilter narrows task listings. Zero values mean "no filter".
type TaskFilter struct {
	Status     domain.TaskStatus
	Priority   domain.TaskPriority
	CategoryID *uuid.UUID
	Visibility domain.Visibility
}

// Page describes pagination bounds for list operations.
type Page struct {
	Number int // 1-based page number
	Size   int // rows per page
}

// Offset returns the row offset for the page.
func (p Page) Offset() int {
	if p.Number < 1 {
		return 0
	}
	return (p.Number - 1) * p.Size
}

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task to the store.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// ListByOwner retrieves tasks owned by the given user, newest first,
	// optionally filtered and paginated. The returned count is the total
	// number of matching rows ignoring pagination.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, filter TaskFilter, page Page) ([]*domain.Task, int, error)

	// ListPublic retrieves public tasks visible to everyone, newest first,
	// optionally filtered and paginated.
	ListPublic(ctx context.Context, filter TaskFilter, page Page) ([]*domain.Task, int, error)

	// Update modifies an existing task. OwnerID is never changed.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task from the store by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
