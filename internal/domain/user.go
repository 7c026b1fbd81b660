package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common user validation errors
var (
	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrInvalidDisplayName  = errors.New("display name must be 3-20 characters of letters, digits, '_' or '-'")
	ErrPasswordTooShort    = errors.New("password must be at least 6 characters long")
	ErrPasswordTooLong     = errors.New("password must be at most 72 characters long")
	ErrEmptyPassword       = errors.New("password cannot be empty")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

var (
	displayNameRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{3,20}$`)
	emailRegex       = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// User represents a registered account capable of authenticating.
// It contains identity information and authentication details.
type User struct {
	ID             uuid.UUID `json:"id"`
	DisplayName    string    `json:"display_name"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // Plaintext password, only populated during registration/updates
	HashedPassword string    `json:"-"` // Never expose the password hash in JSON
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new User with the given display name, email and password.
// It generates a new UUID, lowercases the email, and sets the timestamps.
// Returns an error if validation fails.
//
// NOTE: This function only sets up the user structure with the plaintext
// password. The caller is responsible for hashing it before storage.
func NewUser(displayName, email, password string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:          uuid.New(),
		DisplayName: strings.TrimSpace(displayName),
		Email:       NormalizeEmail(email),
		Password:    password,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// NormalizeEmail trims whitespace and lowercases an email address so that
// uniqueness checks and lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}
	if !emailRegex.MatchString(u.Email) {
		return ErrInvalidEmail
	}

	if !displayNameRegex.MatchString(u.DisplayName) {
		return ErrInvalidDisplayName
	}

	if u.Password != "" {
		if len(u.Password) < 6 {
			return ErrPasswordTooShort
		}
		if len(u.Password) > 72 { // bcrypt's practical input limit
			return ErrPasswordTooLong
		}
	} else if u.HashedPassword == "" {
		// Persisted users must always carry a hash.
		return ErrEmptyHashedPassword
	}

	return nil
}

// Sanitized returns a copy of the user with all credential material cleared.
// Handlers attach this copy to the request context and serialize it in
// profile responses.
func (u *User) Sanitized() *User {
	clone := *u
	clone.Password = ""
	clone.HashedPassword = ""
	return &clone
}
