package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/smartsite/task-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 60}
}

func TestNewJWTService(t *testing.T) {
	_, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	_, err = NewJWTService(config.AuthConfig{JWTSecret: "short", TokenLifetimeMinutes: 60})
	assert.Error(t, err)

	_, err = NewJWTService(config.AuthConfig{JWTSecret: testSecret})
	assert.Error(t, err)
}

func TestGenerateAndValidateToken(t *testing.T) {
	ctx := context.Background()
	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	token, err := svc.GenerateToken(ctx, "alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, claims.IssuedAt.Add(time.Hour), claims.ExpiresAt, time.Second)
}

func TestGenerateToken_EmptyActor(t *testing.T) {
	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	_, err = svc.GenerateToken(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyActor)
}

func TestValidateToken_Failures(t *testing.T) {
	ctx := context.Background()
	issuedAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	issuer, err := newJWTService(testAuthConfig(), func() time.Time { return issuedAt })
	require.NoError(t, err)
	token, err := issuer.GenerateToken(ctx, "alice")
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		later, err := newJWTService(testAuthConfig(), func() time.Time {
			return issuedAt.Add(2 * time.Hour)
		})
		require.NoError(t, err)

		_, err = later.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, ErrExpiredToken)
		assert.True(t, IsTokenError(err))
	})

	t.Run("within clock skew", func(t *testing.T) {
		skewed, err := newJWTService(testAuthConfig(), func() time.Time {
			return issuedAt.Add(time.Hour + time.Minute)
		})
		require.NoError(t, err)

		_, err = skewed.ValidateToken(ctx, token)
		assert.NoError(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := newJWTService(
			config.AuthConfig{JWTSecret: "fedcba9876543210fedcba9876543210", TokenLifetimeMinutes: 60},
			func() time.Time { return issuedAt },
		)
		require.NoError(t, err)

		_, err = other.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := issuer.ValidateToken(ctx, "not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong token type", func(t *testing.T) {
		claims := jwtCustomClaims{
			TokenType: "refresh",
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "alice",
				IssuedAt:  jwt.NewNumericDate(issuedAt),
				ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
			},
		}
		refresh, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = issuer.ValidateToken(ctx, refresh)
		assert.ErrorIs(t, err, ErrWrongTokenType)
	})

	t.Run("unsigned token", func(t *testing.T) {
		claims := jwtCustomClaims{
			TokenType:        TokenTypeAccess,
			RegisteredClaims: jwt.RegisteredClaims{Subject: "mallory"},
		}
		none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = issuer.ValidateToken(ctx, none)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
