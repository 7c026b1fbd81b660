package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskloom/taskloom-api/internal/api/shared"
	"github.com/taskloom/taskloom-api/internal/domain"
	"github.com/taskloom/taskloom-api/internal/mocks"
	"github.com/taskloom/taskloom-api/internal/store"
	"golang.org/x/crypto/bcrypt"
)

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeErrorResponse(t *testing.T, rec *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()
	var resp shared.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestRegister(t *testing.T) {
	t.Parallel()

	validBody := map[string]string{
		"display_name": "alice_01",
		"email":        "alice@example.com",
		"password":     "Passw0rd!",
	}

	t.Run("creates account and issues token", func(t *testing.T) {
		t.Parallel()

		handler := NewAuthHandler(
			&mocks.MockUserStore{},
			&mocks.MockUserService{},
			&mocks.MockJWTService{Token: "signed-token"},
			&mocks.MockPasswordHasher{HashedPassword: "$2a$10$hash"},
			time.Hour,
		)

		rec := postJSON(t, handler.Register, "/api/auth/register", validBody)
		require.Equal(t, http.StatusCreated, rec.Code)

		var resp AuthResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "signed-token", resp.Token)
		assert.NotEqual(t, uuid.Nil, resp.UserID)
		assert.NotEmpty(t, resp.ExpiresAt)
	})

	t.Run("plaintext password never reaches the service", func(t *testing.T) {
		t.Parallel()

		var stored *domain.User
		userService := &mocks.MockUserService{
			RegisterFn: func(_ context.Context, user *domain.User) error {
				stored = user
				return nil
			},
		}

		handler := NewAuthHandler(
			&mocks.MockUserStore{},
			userService,
			&mocks.MockJWTService{Token: "signed-token"},
			&mocks.MockPasswordHasher{HashedPassword: "$2a$10$hash"},
			time.Hour,
		)

		rec := postJSON(t, handler.Register, "/api/auth/register", validBody)
		require.Equal(t, http.StatusCreated, rec.Code)

		require.NotNil(t, stored)
		assert.Empty(t, stored.Password)
		assert.Equal(t, "$2a$10$hash", stored.HashedPassword)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		t.Parallel()

		handler := NewAuthHandler(
			&mocks.MockUserStore{},
			&mocks.MockUserService{Err: store.ErrEmailExists},
			&mocks.MockJWTService{Token: "signed-token"},
			&mocks.MockPasswordHasher{HashedPassword: "$2a$10$hash"},
			time.Hour,
		)

		rec := postJSON(t, handler.Register, "/api/auth/register", validBody)
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "Email already exists", decodeErrorResponse(t, rec).Message)
	})

	t.Run("duplicate display name conflicts", func(t *testing.T) {
		t.Parallel()

		handler := NewAuthHandler(
			&mocks.MockUserStore{},
			&mocks.MockUserService{Err: store.ErrDisplayNameExists},
			&mocks.MockJWTService{Token: "signed-token"},
			&mocks.MockPasswordHasher{HashedPassword: "$2a$10$hash"},
			time.Hour,
		)

		rec := postJSON(t, handler.Register, "/api/auth/register", validBody)
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "Display name already exists", decodeErrorResponse(t, rec).Message)
	})

	tests := []struct {
		name string
		body map[string]string
	}{
		{
			name: "password below minimum",
			body: map[string]string{
				"display_name": "alice_01",
				"email":        "alice@example.com",
				"password":     "five5",
			},
		},
		{
			name: "malformed email",
			body: map[string]string{
				"display_name": "alice_01",
				"email":        "not-an-email",
				"password":     "Passw0rd!",
			},
		},
		{
			name: "missing display name",
			body: map[string]string{
				"email":    "alice@example.com",
				"password": "Passw0rd!",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handler := NewAuthHandler(
				&mocks.MockUserStore{},
				&mocks.MockUserService{},
				&mocks.MockJWTService{},
				&mocks.MockPasswordHasher{},
				time.Hour,
			)

			rec := postJSON(t, handler.Register, "/api/auth/register", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("Passw0rd!"), bcrypt.MinCost)
	require.NoError(t, err)

	user, err := domain.NewUser("alice_01", "alice@example.com", "Passw0rd!")
	require.NoError(t, err)
	user.Password = ""
	user.HashedPassword = string(hash)

	realHasher := func() *mocks.MockPasswordHasher {
		return &mocks.MockPasswordHasher{
			CompareFn: func(hashedPassword, password string) error {
				return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
			},
		}
	}

	t.Run("valid credentials issue a token", func(t *testing.T) {
		t.Parallel()

		handler := NewAuthHandler(
			&mocks.MockUserStore{User: user},
			&mocks.MockUserService{},
			&mocks.MockJWTService{Token: "signed-token"},
			realHasher(),
			time.Hour,
		)

		rec := postJSON(t, handler.Login, "/api/auth/login", map[string]string{
			"email":    "Alice@Example.com",
			"password": "Passw0rd!",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp AuthResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, user.ID, resp.UserID)
		assert.Equal(t, "signed-token", resp.Token)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		t.Parallel()

		handler := NewAuthHandler(
			&mocks.MockUserStore{User: user},
			&mocks.MockUserService{},
			&mocks.MockJWTService{},
			realHasher(),
			time.Hour,
		)

		rec := postJSON(t, handler.Login, "/api/auth/login", map[string]string{
			"email":    "alice@example.com",
			"password": "wrong-password",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid credentials", decodeErrorResponse(t, rec).Message)
	})

	t.Run("unknown email answers like a wrong password", func(t *testing.T) {
		t.Parallel()

		handler := NewAuthHandler(
			&mocks.MockUserStore{Err: store.ErrUserNotFound},
			&mocks.MockUserService{},
			&mocks.MockJWTService{},
			realHasher(),
			time.Hour,
		)

		rec := postJSON(t, handler.Login, "/api/auth/login", map[string]string{
			"email":    "nobody@example.com",
			"password": "Passw0rd!",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid credentials", decodeErrorResponse(t, rec).Message)
	})

	t.Run("deactivated account is refused even with valid credentials", func(t *testing.T) {
		t.Parallel()

		inactive := *user
		inactive.IsActive = false

		handler := NewAuthHandler(
			&mocks.MockUserStore{User: &inactive},
			&mocks.MockUserService{},
			&mocks.MockJWTService{},
			realHasher(),
			time.Hour,
		)

		rec := postJSON(t, handler.Login, "/api/auth/login", map[string]string{
			"email":    "alice@example.com",
			"password": "Passw0rd!",
		})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
