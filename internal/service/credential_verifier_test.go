package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-api/internal/model"
	"storefront-api/internal/repository"
)

type failingUserStore struct {
	*repository.MemoryUserStore
}

func (failingUserStore) FindByEmail(context.Context, string) (model.User, error) {
	return model.User{}, errors.New("connection refused")
}

func TestCredentialVerifier_Verify(t *testing.T) {
	ctx := context.Background()
	users := repository.NewMemoryUserStore()
	alice := seedUser(t, users, "alice@example.com", "correct horse", model.RoleUser)

	t.Run("correct password returns sanitized identity", func(t *testing.T) {
		v := NewCredentialVerifier(users)

		identity, err := v.Verify(ctx, "alice@example.com", "correct horse")
		require.NoError(t, err)
		assert.Equal(t, model.Identity{ID: alice.ID, Role: model.RoleUser}, identity)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		v := NewCredentialVerifier(users)

		_, wrongPassword := v.Verify(ctx, "alice@example.com", "battery staple")
		_, unknownEmail := v.Verify(ctx, "bob@example.com", "correct horse")

		assert.ErrorIs(t, wrongPassword, model.ErrInvalidCredentials)
		assert.ErrorIs(t, unknownEmail, model.ErrInvalidCredentials)
		assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
	})

	t.Run("email match is exact", func(t *testing.T) {
		v := NewCredentialVerifier(users)

		_, err := v.Verify(ctx, "Alice@Example.com", "correct horse")
		assert.ErrorIs(t, err, model.ErrInvalidCredentials)
	})

	t.Run("comparison only sees equal-length buffers", func(t *testing.T) {
		v := NewCredentialVerifier(users)
		var lengths [][2]int
		v.compare = func(x, y []byte) int {
			lengths = append(lengths, [2]int{len(x), len(y)})
			return subtle.ConstantTimeCompare(x, y)
		}

		_, _ = v.Verify(ctx, "alice@example.com", "correct horse")
		_, _ = v.Verify(ctx, "alice@example.com", "x")

		require.Len(t, lengths, 2)
		for _, pair := range lengths {
			assert.Equal(t, [2]int{PasswordHashLength, PasswordHashLength}, pair)
		}
	})

	t.Run("malformed stored hash is an internal error", func(t *testing.T) {
		broken := repository.NewMemoryUserStore()
		require.NoError(t, broken.Create(ctx, model.User{
			ID:           "u-broken",
			Email:        "broken@example.com",
			PasswordHash: []byte("short"),
			Salt:         []byte("salt"),
			Role:         model.RoleUser,
		}))
		v := NewCredentialVerifier(broken)
		called := false
		v.compare = func(x, y []byte) int {
			called = true
			return 0
		}

		_, err := v.Verify(ctx, "broken@example.com", "anything")
		assert.ErrorIs(t, err, model.ErrInternal)
		assert.False(t, called)
	})

	t.Run("empty salt is an internal error", func(t *testing.T) {
		broken := repository.NewMemoryUserStore()
		require.NoError(t, broken.Create(ctx, model.User{
			ID:           "u-nosalt",
			Email:        "nosalt@example.com",
			PasswordHash: make([]byte, PasswordHashLength),
			Role:         model.RoleUser,
		}))

		_, err := NewCredentialVerifier(broken).Verify(ctx, "nosalt@example.com", "anything")
		assert.ErrorIs(t, err, model.ErrInternal)
	})

	t.Run("store failure is an internal error", func(t *testing.T) {
		v := NewCredentialVerifier(failingUserStore{users})

		_, err := v.Verify(ctx, "alice@example.com", "correct horse")
		assert.ErrorIs(t, err, model.ErrInternal)
		assert.NotErrorIs(t, err, model.ErrInvalidCredentials)
	})
}

func TestHashPassword(t *testing.T) {
	salt := []byte("0123456789abcdef")

	first, err := HashPassword("secret", salt)
	require.NoError(t, err)
	second, err := HashPassword("secret", salt)
	require.NoError(t, err)

	assert.Len(t, first, PasswordHashLength)
	assert.Equal(t, first, second)

	other, err := HashPassword("secret", []byte("fedcba9876543210"))
	require.NoError(t, err)
	assert.NotEqual(t, first, other)

	_, err = HashPassword("secret", nil)
	assert.Error(t, err)
}
