package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chasecee/cut-calc/config"
)

func newTestAuthService(t *testing.T) AuthService {
	t.Helper()
	hash, err := HashPassword("correct-horse")
	require.NoError(t, err)

	return NewAuthService(config.AuthConfig{
		AdminUsername:     "admin",
		AdminPasswordHash: hash,
		JWTSecretKey:      "test-secret",
		TokenTTL:          time.Hour,
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(t)

	t.Run("valid credentials", func(t *testing.T) {
		token, expiresIn, err := svc.Login(ctx, "admin", "correct-horse")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, int64(3600), expiresIn)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "admin", "battery-staple")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("wrong username", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "root", "correct-horse")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unconfigured credential rejects everything", func(t *testing.T) {
		empty := NewAuthService(config.AuthConfig{JWTSecretKey: "s", TokenTTL: time.Hour})
		_, _, err := empty.Login(ctx, "admin", "anything")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_ValidateToken(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(t)

	t.Run("valid token", func(t *testing.T) {
		token, _, err := svc.Login(ctx, "admin", "correct-horse")
		require.NoError(t, err)

		claims, err := svc.ValidateToken(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, "admin", claims.Subject)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ValidateToken(ctx, "not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token signed with different secret", func(t *testing.T) {
		hash, err := HashPassword("correct-horse")
		require.NoError(t, err)
		other := NewAuthService(config.AuthConfig{
			AdminUsername:     "admin",
			AdminPasswordHash: hash,
			JWTSecretKey:      "different-secret",
			TokenTTL:          time.Hour,
		})

		token, _, err := other.Login(ctx, "admin", "correct-horse")
		require.NoError(t, err)

		_, err = svc.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		hash, err := HashPassword("correct-horse")
		require.NoError(t, err)
		shortLived := NewAuthService(config.AuthConfig{
			AdminUsername:     "admin",
			AdminPasswordHash: hash,
			JWTSecretKey:      "test-secret",
			TokenTTL:          -time.Minute,
		})

		token, _, err := shortLived.Login(ctx, "admin", "correct-horse")
		require.NoError(t, err)

		_, err = svc.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secret")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "secret", hash)
}
