package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjgrant/bookrec-api/internal/config"
)

const testSecret = "test-secret-thirty-two-chars-long!!"

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:            testSecret,
		TokenLifetimeMinutes: 60,
	}
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	t.Run("accepts a sufficiently long secret", func(t *testing.T) {
		t.Parallel()
		svc, err := NewJWTService(testAuthConfig())
		require.NoError(t, err)
		assert.NotNil(t, svc)
	})

	t.Run("rejects a short secret", func(t *testing.T) {
		t.Parallel()
		cfg := testAuthConfig()
		cfg.JWTSecret = "too short"
		svc, err := NewJWTService(cfg)
		assert.Error(t, err)
		assert.Nil(t, svc)
	})
}

func TestJWTRoundTrip(t *testing.T) {
	t.Parallel()

	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	userID := uuid.New()
	token, err := svc.GenerateToken(context.Background(), userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.True(t, claims.ExpiresAt.After(claims.IssuedAt))
}

func TestValidateTokenFailures(t *testing.T) {
	t.Parallel()

	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	t.Run("malformed token", func(t *testing.T) {
		t.Parallel()
		claims, err := svc.ValidateToken(context.Background(), "not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.Nil(t, claims)
	})

	t.Run("token signed with a different key", func(t *testing.T) {
		t.Parallel()

		other := testAuthConfig()
		other.JWTSecret = strings.Repeat("x", 32)
		otherSvc, err := NewJWTService(other)
		require.NoError(t, err)

		token, err := otherSvc.GenerateToken(context.Background(), uuid.New())
		require.NoError(t, err)

		claims, err := svc.ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.Nil(t, claims)
	})

	t.Run("expired token", func(t *testing.T) {
		t.Parallel()

		base := time.Now()
		impl := &hmacJWTService{
			signingKey:    []byte(testSecret),
			tokenLifetime: time.Minute,
			timeFunc:      func() time.Time { return base },
			clockSkew:     0,
		}

		token, err := impl.GenerateToken(context.Background(), uuid.New())
		require.NoError(t, err)

		// Move the clock past expiry before validating.
		impl.timeFunc = func() time.Time { return base.Add(2 * time.Minute) }

		claims, err := impl.ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, ErrExpiredToken)
		assert.Nil(t, claims)
	})

	t.Run("expiry within clock skew is tolerated", func(t *testing.T) {
		t.Parallel()

		base := time.Now()
		impl := &hmacJWTService{
			signingKey:    []byte(testSecret),
			tokenLifetime: time.Minute,
			timeFunc:      func() time.Time { return base },
			clockSkew:     2 * time.Minute,
		}

		token, err := impl.GenerateToken(context.Background(), uuid.New())
		require.NoError(t, err)

		impl.timeFunc = func() time.Time { return base.Add(90 * time.Second) }

		_, err = impl.ValidateToken(context.Background(), token)
		assert.NoError(t, err)
	})
}
