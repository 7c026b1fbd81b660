package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskloom/taskloom-api/internal/api/shared"
	"github.com/taskloom/taskloom-api/internal/domain"
	"github.com/taskloom/taskloom-api/internal/mocks"
	"github.com/taskloom/taskloom-api/internal/service/auth"
	"github.com/taskloom/taskloom-api/internal/store"
)

func activeUser(t *testing.T) *domain.User {
	t.Helper()
	user, err := domain.NewUser("alice_01", "alice@example.com", "Passw0rd!")
	require.NoError(t, err)
	user.Password = ""
	user.HashedPassword = "$2a$10$somethinghashed"
	return user
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()
	var resp shared.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	user := activeUser(t)

	inactive := activeUser(t)
	inactive.IsActive = false

	tests := []struct {
		name        string
		authHeader  string
		jwtService  *mocks.MockJWTService
		userStore   *mocks.MockUserStore
		wantStatus  int
		wantMessage string
		wantNext    bool
	}{
		{
			name:        "missing authorization header",
			authHeader:  "",
			jwtService:  &mocks.MockJWTService{},
			userStore:   &mocks.MockUserStore{},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Authorization header required",
		},
		{
			name:        "wrong scheme",
			authHeader:  "Basic dXNlcjpwYXNz",
			jwtService:  &mocks.MockJWTService{},
			userStore:   &mocks.MockUserStore{},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid authorization format",
		},
		{
			name:        "expired token",
			authHeader:  "Bearer some-token",
			jwtService:  &mocks.MockJWTService{ValidateErr: auth.ErrExpiredToken},
			userStore:   &mocks.MockUserStore{},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Token expired",
		},
		{
			name:        "invalid token",
			authHeader:  "Bearer some-token",
			jwtService:  &mocks.MockJWTService{ValidateErr: auth.ErrInvalidToken},
			userStore:   &mocks.MockUserStore{},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid token",
		},
		{
			name:        "malformed payload",
			authHeader:  "Bearer some-token",
			jwtService:  &mocks.MockJWTService{ValidateErr: auth.ErrMalformedPayload},
			userStore:   &mocks.MockUserStore{},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid token",
		},
		{
			name:       "identity not found answers like a bad token",
			authHeader: "Bearer some-token",
			jwtService: &mocks.MockJWTService{
				Claims: &auth.Claims{UserID: user.ID, TokenType: "access"},
			},
			userStore:   &mocks.MockUserStore{Err: store.ErrUserNotFound},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid token",
		},
		{
			name:       "store failure is a server error",
			authHeader: "Bearer some-token",
			jwtService: &mocks.MockJWTService{
				Claims: &auth.Claims{UserID: user.ID, TokenType: "access"},
			},
			userStore:   &mocks.MockUserStore{Err: errors.New("connection refused")},
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Authentication error",
		},
		{
			name:       "deactivated account",
			authHeader: "Bearer some-token",
			jwtService: &mocks.MockJWTService{
				Claims: &auth.Claims{UserID: inactive.ID, TokenType: "access"},
			},
			userStore:   &mocks.MockUserStore{User: inactive},
			wantStatus:  http.StatusForbidden,
			wantMessage: "Account is deactivated",
		},
		{
			name:       "valid token and active account",
			authHeader: "Bearer some-token",
			jwtService: &mocks.MockJWTService{
				Claims: &auth.Claims{UserID: user.ID, TokenType: "access"},
			},
			userStore:  &mocks.MockUserStore{User: user},
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			middleware := NewAuthMiddleware(tt.jwtService, tt.userStore)

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			middleware.Authenticate(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantNext, nextCalled)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, decodeError(t, rec).Message)
			}
		})
	}
}

func TestAuthenticateAttachesSanitizedUser(t *testing.T) {
	t.Parallel()

	user := activeUser(t)
	middleware := NewAuthMiddleware(
		&mocks.MockJWTService{Claims: &auth.Claims{UserID: user.ID, TokenType: "access"}},
		&mocks.MockUserStore{User: user},
	)

	var gotID uuid.UUID
	var gotUser *domain.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetUserID(r)
		require.True(t, ok)
		gotID = id

		u, ok := GetUser(r)
		require.True(t, ok)
		gotUser = u
	})

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	middleware.Authenticate(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, user.ID, gotID)
	require.NotNil(t, gotUser)
	assert.Empty(t, gotUser.HashedPassword, "context user must not carry credentials")
	assert.Equal(t, user.Email, gotUser.Email)
}

func TestAuthenticateOptional(t *testing.T) {
	t.Parallel()

	user := activeUser(t)

	t.Run("no header passes through anonymously", func(t *testing.T) {
		t.Parallel()

		middleware := NewAuthMiddleware(
			&mocks.MockJWTService{ValidateErr: auth.ErrInvalidToken},
			&mocks.MockUserStore{Err: errors.New("store must not be called")},
		)

		nextCalled := false
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			nextCalled = true
			_, ok := GetUserID(r)
			assert.False(t, ok, "anonymous request must not carry an identity")
		})

		rec := httptest.NewRecorder()
		middleware.AuthenticateOptional(next).
			ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tasks/abc", nil))

		assert.True(t, nextCalled)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("valid token resolves the identity", func(t *testing.T) {
		t.Parallel()

		middleware := NewAuthMiddleware(
			&mocks.MockJWTService{Claims: &auth.Claims{UserID: user.ID, TokenType: "access"}},
			&mocks.MockUserStore{User: user},
		)

		var gotID uuid.UUID
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := GetUserID(r)
			require.True(t, ok)
			gotID = id
		})

		req := httptest.NewRequest(http.MethodGet, "/api/tasks/abc", nil)
		req.Header.Set("Authorization", "Bearer some-token")
		middleware.AuthenticateOptional(next).ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, user.ID, gotID)
	})

	t.Run("bad token is still rejected", func(t *testing.T) {
		t.Parallel()

		middleware := NewAuthMiddleware(
			&mocks.MockJWTService{ValidateErr: auth.ErrInvalidToken},
			&mocks.MockUserStore{User: user},
		)

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("next must not run for a rejected token")
		})

		req := httptest.NewRequest(http.MethodGet, "/api/tasks/abc", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rec := httptest.NewRecorder()
		middleware.AuthenticateOptional(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid token", decodeError(t, rec).Message)
	})
}

func TestGetUserIDMissing(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.Background())

	_, ok := GetUserID(req)
	assert.False(t, ok)
}
