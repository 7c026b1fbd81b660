package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/taskloom/taskloom-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
//
// Account records are never hard-deleted; deactivation flips IsActive via
// Update instead.
type UserStore interface {
	// Create saves a new user to the store. The user's HashedPassword must
	// already be populated by the caller.
	// Returns ErrEmailExists or ErrDisplayNameExists on uniqueness conflicts.
	// Returns validation errors from the domain User if data is invalid.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their (lowercased) email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByDisplayName retrieves a user by their display name.
	// Returns ErrUserNotFound if the user does not exist.
	GetByDisplayName(ctx context.Context, displayName string) (*domain.User, error)

	// Update modifies an existing user's details. The caller must provide a
	// complete user object including HashedPassword.
	// Returns ErrUserNotFound if the user does not exist.
	// Returns ErrEmailExists or ErrDisplayNameExists on uniqueness conflicts.
	Update(ctx context.Context, user *domain.User) error

	// WithTx returns a new UserStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller,
	// typically through RunInTransaction.
	WithTx(tx *sql.Tx) UserStore
}
