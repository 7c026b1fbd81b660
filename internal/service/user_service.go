// Package service contains application services that coordinate domain
// entities, stores and transactions on behalf of the API handlers.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/taskloom/taskloom-api/internal/domain"
	"github.com/taskloom/taskloom-api/internal/service/auth"
	"github.com/taskloom/taskloom-api/internal/store"
)

// ErrPasswordMismatch is returned when the supplied current password does
// not verify against the stored hash.
var ErrPasswordMismatch = errors.New("current password is incorrect")

// ProfileUpdate carries the optional profile fields to change. Nil fields
// are left untouched.
type ProfileUpdate struct {
	DisplayName *string
	Email       *string
}

// UserService defines account-level operations that require read-modify-write
// atomicity over the user record.
type UserService interface {
	// Register persists a new account. The email and display name are
	// checked for uniqueness inside the same transaction as the insert;
	// the database constraints remain the authority under concurrent
	// signups. Returns store.ErrEmailExists or store.ErrDisplayNameExists
	// on a collision.
	Register(ctx context.Context, user *domain.User) error

	// UpdateProfile applies the given profile changes and returns the
	// updated user with credential material cleared.
	UpdateProfile(ctx context.Context, userID uuid.UUID, update ProfileUpdate) (*domain.User, error)

	// ChangePassword verifies the current password and replaces it with the
	// new one. Returns ErrPasswordMismatch if the current password is wrong.
	ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error

	// Deactivate flips the account's IsActive flag. Every token held for the
	// account stops passing the auth gate on its next use.
	Deactivate(ctx context.Context, userID uuid.UUID) error
}

// UserServiceImpl implements UserService backed by a UserStore and a
// database handle for transactions.
type UserServiceImpl struct {
	db        *sql.DB
	userStore store.UserStore
	hasher    auth.PasswordHasher
	logger    *slog.Logger
}

// NewUserService creates a new UserService with the given dependencies.
func NewUserService(
	db *sql.DB,
	userStore store.UserStore,
	hasher auth.PasswordHasher,
	log *slog.Logger,
) *UserServiceImpl {
	if log == nil {
		log = slog.Default()
	}
	return &UserServiceImpl{
		db:        db,
		userStore: userStore,
		hasher:    hasher,
		logger:    log.With(slog.String("component", "user_service")),
	}
}

var _ UserService = (*UserServiceImpl)(nil)

// Register implements UserService.Register
func (s *UserServiceImpl) Register(ctx context.Context, user *domain.User) error {
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		if _, err := txStore.GetByEmail(ctx, user.Email); err == nil {
			return store.ErrEmailExists
		} else if !errors.Is(err, store.ErrUserNotFound) {
			return fmt.Errorf("failed to check email uniqueness: %w", err)
		}

		if _, err := txStore.GetByDisplayName(ctx, user.DisplayName); err == nil {
			return store.ErrDisplayNameExists
		} else if !errors.Is(err, store.ErrUserNotFound) {
			return fmt.Errorf("failed to check display name uniqueness: %w", err)
		}

		return txStore.Create(ctx, user)
	})
	if err != nil {
		return err
	}

	s.logger.Info("user registered", slog.String("user_id", user.ID.String()))
	return nil
}

// UpdateProfile implements UserService.UpdateProfile
func (s *UserServiceImpl) UpdateProfile(
	ctx context.Context,
	userID uuid.UUID,
	update ProfileUpdate,
) (*domain.User, error) {
	var updated *domain.User

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		user, err := txStore.GetByID(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to retrieve user for update: %w", err)
		}

		if update.DisplayName != nil {
			user.DisplayName = *update.DisplayName
		}
		if update.Email != nil {
			user.Email = domain.NormalizeEmail(*update.Email)
		}

		if err := user.Validate(); err != nil {
			return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
		}

		if err := txStore.Update(ctx, user); err != nil {
			return err
		}

		updated = user.Sanitized()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("profile updated", slog.String("user_id", userID.String()))
	return updated, nil
}

// ChangePassword implements UserService.ChangePassword
func (s *UserServiceImpl) ChangePassword(
	ctx context.Context,
	userID uuid.UUID,
	currentPassword, newPassword string,
) error {
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		user, err := txStore.GetByID(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to retrieve user for password change: %w", err)
		}

		if err := s.hasher.Compare(user.HashedPassword, currentPassword); err != nil {
			return ErrPasswordMismatch
		}

		hashed, err := s.hasher.Hash(newPassword)
		if err != nil {
			return fmt.Errorf("failed to hash new password: %w", err)
		}
		user.HashedPassword = hashed

		return txStore.Update(ctx, user)
	})
	if err != nil {
		return err
	}

	s.logger.Info("password changed", slog.String("user_id", userID.String()))
	return nil
}

// Deactivate implements UserService.Deactivate
func (s *UserServiceImpl) Deactivate(ctx context.Context, userID uuid.UUID) error {
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		user, err := txStore.GetByID(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to retrieve user for deactivation: %w", err)
		}

		user.IsActive = false
		return txStore.Update(ctx, user)
	})
	if err != nil {
		return err
	}

	s.logger.Info("account deactivated", slog.String("user_id", userID.String()))
	return nil
}
