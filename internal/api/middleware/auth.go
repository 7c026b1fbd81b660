package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/taskloom/taskloom-api/internal/api/shared"
	"github.com/taskloom/taskloom-api/internal/domain"
	"github.com/taskloom/taskloom-api/internal/observability/metrics"
	"github.com/taskloom/taskloom-api/internal/redact"
	"github.com/taskloom/taskloom-api/internal/service/auth"
	"github.com/taskloom/taskloom-api/internal/store"
)

// AuthMiddleware provides JWT authentication for routes.
//
// Verification runs in order: header presence, signature and expiry,
// payload shape, identity resolution, and the active-account check. Each
// failure is terminal for the request. Unknown identities answer 401, the
// same as a bad token, so the response never reveals whether an account
// exists; store failures answer 500 and are never conflated with not-found.
type AuthMiddleware struct {
	jwtService auth.JWTService
	userStore  store.UserStore
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService, userStore store.UserStore) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		userStore:  userStore,
	}
}

// Authenticate validates JWT tokens from the Authorization header, resolves
// the identity against the user store, and attaches the sanitized user and
// its ID to the request context for authorized requests.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Step 1: the Bearer scheme is the sole credential carrier.
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			metrics.AuthFailuresTotal.WithLabelValues("missing_credentials").Inc()
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			metrics.AuthFailuresTotal.WithLabelValues("missing_credentials").Inc()
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		// Steps 2-3: signature, expiry and payload shape.
		claims, err := m.jwtService.ValidateToken(r.Context(), parts[1])
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				metrics.AuthFailuresTotal.WithLabelValues("expired_token").Inc()
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
			case errors.Is(err, auth.ErrInvalidToken),
				errors.Is(err, auth.ErrTokenNotYetValid),
				errors.Is(err, auth.ErrMalformedPayload):
				metrics.AuthFailuresTotal.WithLabelValues("invalid_token").Inc()
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			default:
				slog.Error("failed to validate token", "error", redact.Error(err))
				shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			}
			return
		}

		// Step 4: resolve the identity. 401, not 404, so the response does
		// not leak whether an account exists for a forged subject.
		user, err := m.userStore.GetByID(r.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				metrics.AuthFailuresTotal.WithLabelValues("identity_not_found").Inc()
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
				return
			}
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
				"Authentication error", err)
			return
		}

		// Step 5: deactivated accounts are denied everything.
		if !user.IsActive {
			metrics.AuthFailuresTotal.WithLabelValues("account_inactive").Inc()
			shared.RespondWithError(w, r, http.StatusForbidden, "Account is deactivated")
			return
		}

		ctx := context.WithValue(r.Context(), shared.UserIDContextKey, user.ID)
		ctx = context.WithValue(ctx, shared.UserContextKey, user.Sanitized())

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AuthenticateOptional behaves like Authenticate when credentials are
// present, but lets requests without an Authorization header through
// anonymously. Routes serving publicly readable resources use it so the
// ownership check can still distinguish owners from everyone else.
func (m *AuthMiddleware) AuthenticateOptional(next http.Handler) http.Handler {
	authenticated := m.Authenticate(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			next.ServeHTTP(w, r)
			return
		}
		authenticated.ServeHTTP(w, r)
	})
}

// GetUserID extracts the authenticated user's ID from the request context.
// Returns the user ID and a boolean indicating if it was found.
func GetUserID(r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	return userID, ok
}

// GetUser extracts the sanitized authenticated user from the request context.
func GetUser(r *http.Request) (*domain.User, bool) {
	user, ok := r.Context().Value(shared.UserContextKey).(*domain.User)
	return user, ok
}
