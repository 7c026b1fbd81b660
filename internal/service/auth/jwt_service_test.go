package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskloom/taskloom-api/internal/config"
)

const (
	testSecret  = "test-jwt-secret-that-is-32-chars-long"
	wrongSecret = "wrong-jwt-secret-that-is-32-chars-xx"
)

// newFixedTimeService builds a service whose clock is pinned to the given
// instant, so expiry behavior is deterministic.
func newFixedTimeService(secret string, lifetime time.Duration, now time.Time) *hmacJWTService {
	return &hmacJWTService{
		signingKey:    []byte(secret),
		tokenLifetime: lifetime,
		timeFunc:      func() time.Time { return now },
		clockSkew:     2 * time.Minute,
	}
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	t.Run("rejects short secret", func(t *testing.T) {
		t.Parallel()

		_, err := NewJWTService(config.AuthConfig{
			JWTSecret:            "too-short",
			TokenLifetimeMinutes: 60,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "32 characters")
	})

	t.Run("accepts valid config", func(t *testing.T) {
		t.Parallel()

		svc, err := NewJWTService(config.AuthConfig{
			JWTSecret:            testSecret,
			TokenLifetimeMinutes: 60,
		})
		require.NoError(t, err)
		require.NotNil(t, svc)
	})
}

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tokenLifetime := 60 * time.Minute
	userID := uuid.New()

	svc := newFixedTimeService(testSecret, tokenLifetime, fixedTime)

	token, err := svc.GenerateToken(context.Background(), userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Len(t, strings.Split(token, "."), 3, "JWT should have three segments")

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "access", claims.TokenType)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, fixedTime.Add(tokenLifetime).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tokenLifetime := 60 * time.Minute
	userID := uuid.New()

	tests := []struct {
		name      string
		setupFunc func(t *testing.T) (JWTService, string)
		wantErr   error
	}{
		{
			name: "valid token",
			setupFunc: func(t *testing.T) (JWTService, string) {
				svc := newFixedTimeService(testSecret, tokenLifetime, fixedTime)
				token, err := svc.GenerateToken(context.Background(), userID)
				require.NoError(t, err)
				return svc, token
			},
			wantErr: nil,
		},
		{
			name: "expired token",
			setupFunc: func(t *testing.T) (JWTService, string) {
				genSvc := newFixedTimeService(testSecret, tokenLifetime, fixedTime)
				token, err := genSvc.GenerateToken(context.Background(), userID)
				require.NoError(t, err)

				// Validate well past the expiry plus clock skew.
				valSvc := newFixedTimeService(testSecret, tokenLifetime,
					fixedTime.Add(tokenLifetime+time.Hour))
				return valSvc, token
			},
			wantErr: ErrExpiredToken,
		},
		{
			name: "token within clock skew still passes",
			setupFunc: func(t *testing.T) (JWTService, string) {
				genSvc := newFixedTimeService(testSecret, tokenLifetime, fixedTime)
				token, err := genSvc.GenerateToken(context.Background(), userID)
				require.NoError(t, err)

				valSvc := newFixedTimeService(testSecret, tokenLifetime,
					fixedTime.Add(tokenLifetime+time.Minute))
				return valSvc, token
			},
			wantErr: nil,
		},
		{
			name: "wrong signing key",
			setupFunc: func(t *testing.T) (JWTService, string) {
				genSvc := newFixedTimeService(wrongSecret, tokenLifetime, fixedTime)
				token, err := genSvc.GenerateToken(context.Background(), userID)
				require.NoError(t, err)

				valSvc := newFixedTimeService(testSecret, tokenLifetime, fixedTime)
				return valSvc, token
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "tampered token",
			setupFunc: func(t *testing.T) (JWTService, string) {
				svc := newFixedTimeService(testSecret, tokenLifetime, fixedTime)
				token, err := svc.GenerateToken(context.Background(), userID)
				require.NoError(t, err)

				parts := strings.Split(token, ".")
				require.Len(t, parts, 3)
				flipped := byte('A')
				if parts[1][len(parts[1])-1] == flipped {
					flipped = 'B'
				}
				parts[1] = parts[1][:len(parts[1])-1] + string(flipped)
				return svc, strings.Join(parts, ".")
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "malformed token",
			setupFunc: func(t *testing.T) (JWTService, string) {
				svc := newFixedTimeService(testSecret, tokenLifetime, fixedTime)
				return svc, "not.a.jwt"
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "empty token",
			setupFunc: func(t *testing.T) (JWTService, string) {
				svc := newFixedTimeService(testSecret, tokenLifetime, fixedTime)
				return svc, ""
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "token without subject claim",
			setupFunc: func(t *testing.T) (JWTService, string) {
				svc := newFixedTimeService(testSecret, tokenLifetime, fixedTime)
				token, err := svc.GenerateToken(context.Background(), uuid.Nil)
				require.NoError(t, err)
				return svc, token
			},
			wantErr: ErrMalformedPayload,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc, token := tt.setupFunc(t)
			claims, err := svc.ValidateToken(context.Background(), token)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, claims)
			assert.Equal(t, userID, claims.UserID)
		})
	}
}
