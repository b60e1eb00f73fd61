package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-api/internal/model"
	"storefront-api/internal/repository"
)

func TestNewTokenService_RejectsBadConfig(t *testing.T) {
	users := repository.NewMemoryUserStore()

	_, err := NewTokenService("  ", 0, users)
	assert.Error(t, err)

	_, err = NewTokenService("secret", -time.Second, users)
	assert.Error(t, err)
}

func TestTokenService_IssueAndValidate(t *testing.T) {
	ctx := context.Background()
	users := repository.NewMemoryUserStore()
	alice := seedUser(t, users, "alice@example.com", "pw", model.RoleUser)

	svc, err := NewTokenService("jwt-secret", 0, users)
	require.NoError(t, err)

	token, err := svc.Issue(alice.Identity())
	require.NoError(t, err)

	identity, ok, err := svc.Validate(ctx, token)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, alice.Identity(), identity)

	t.Run("claims carry id and role without exp by default", func(t *testing.T) {
		claims := jwt.MapClaims{}
		_, _, err := jwt.NewParser().ParseUnverified(token, claims)
		require.NoError(t, err)

		assert.Equal(t, alice.ID, claims["id"])
		assert.Equal(t, model.RoleUser, claims["role"])
		assert.Contains(t, claims, "iat")
		assert.NotContains(t, claims, "exp")
	})
}

func TestTokenService_Validate_Rejections(t *testing.T) {
	ctx := context.Background()
	users := repository.NewMemoryUserStore()
	alice := seedUser(t, users, "alice@example.com", "pw", model.RoleUser)

	svc, err := NewTokenService("jwt-secret", 0, users)
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		other, err := NewTokenService("another-secret", 0, users)
		require.NoError(t, err)
		token, err := other.Issue(alice.Identity())
		require.NoError(t, err)

		_, ok, err := svc.Validate(ctx, token)
		assert.ErrorIs(t, err, model.ErrInvalidToken)
		assert.False(t, ok)
	})

	t.Run("malformed", func(t *testing.T) {
		_, _, err := svc.Validate(ctx, "not.a.jwt")
		assert.ErrorIs(t, err, model.ErrInvalidToken)
	})

	t.Run("unsigned algorithm none", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"id": alice.ID, "role": model.RoleAdmin}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, _, err = svc.Validate(ctx, token)
		assert.ErrorIs(t, err, model.ErrInvalidToken)
	})

	t.Run("missing id claim", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"role": model.RoleUser}).
			SignedString([]byte("jwt-secret"))
		require.NoError(t, err)

		_, _, err = svc.Validate(ctx, token)
		assert.ErrorIs(t, err, model.ErrInvalidToken)
	})

	t.Run("expired when ttl is set", func(t *testing.T) {
		expiring, err := NewTokenService("jwt-secret", time.Minute, users)
		require.NoError(t, err)
		token, err := expiring.Issue(alice.Identity())
		require.NoError(t, err)

		expiring.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
		_, _, err = expiring.Validate(ctx, token)
		assert.ErrorIs(t, err, model.ErrInvalidToken)
	})
}

func TestTokenService_Validate_RefetchesUser(t *testing.T) {
	ctx := context.Background()
	users := repository.NewMemoryUserStore()
	bob := seedUser(t, users, "bob@example.com", "pw", model.RoleUser)

	svc, err := NewTokenService("jwt-secret", 0, users)
	require.NoError(t, err)
	token, err := svc.Issue(bob.Identity())
	require.NoError(t, err)

	t.Run("role comes from the current record", func(t *testing.T) {
		users.Delete(bob.ID)
		promoted := bob
		promoted.Role = model.RoleAdmin
		require.NoError(t, users.Create(ctx, promoted))

		identity, ok, err := svc.Validate(ctx, token)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, model.RoleAdmin, identity.Role)
	})

	t.Run("deleted user is unauthenticated, not an error", func(t *testing.T) {
		users.Delete(bob.ID)

		identity, ok, err := svc.Validate(ctx, token)
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, model.Identity{}, identity)
	})
}
