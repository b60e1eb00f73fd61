package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/pbkdf2"

	"storefront-api/internal/model"
)

const (
	PBKDF2Iterations   = 310000
	PasswordHashLength = 32
	SaltLength         = 16
)

type userByEmailFinder interface {
	FindByEmail(ctx context.Context, email string) (model.User, error)
}

// CredentialVerifier checks an email/password pair against the stored
// PBKDF2-HMAC-SHA256 hash.
type CredentialVerifier struct {
	users userByEmailFinder
	// compare is always called with two PasswordHashLength buffers.
	compare   func(x, y []byte) int
	dummySalt []byte
}

func NewCredentialVerifier(users userByEmailFinder) *CredentialVerifier {
	dummySalt := make([]byte, SaltLength)
	_, _ = rand.Read(dummySalt)

	return &CredentialVerifier{
		users:     users,
		compare:   subtle.ConstantTimeCompare,
		dummySalt: dummySalt,
	}
}

// Verify returns the sanitized identity on success. Unknown emails and wrong
// passwords both yield model.ErrInvalidCredentials.
func (v *CredentialVerifier) Verify(ctx context.Context, email string, password string) (model.Identity, error) {
	user, err := v.users.FindByEmail(ctx, email)
	if errors.Is(err, model.ErrUserNotFound) {
		// Spend the same derivation cost as a real check.
		_, _ = HashPassword(password, v.dummySalt)
		return model.Identity{}, model.ErrInvalidCredentials
	}
	if err != nil {
		return model.Identity{}, fmt.Errorf("%w: load user: %v", model.ErrInternal, err)
	}

	if len(user.PasswordHash) != PasswordHashLength {
		return model.Identity{}, fmt.Errorf("%w: stored hash for user %s has length %d", model.ErrInternal, user.ID, len(user.PasswordHash))
	}

	derived, err := HashPassword(password, user.Salt)
	if err != nil {
		return model.Identity{}, fmt.Errorf("%w: %v", model.ErrInternal, err)
	}

	if v.compare(user.PasswordHash, derived) != 1 {
		return model.Identity{}, model.ErrInvalidCredentials
	}

	return user.Identity(), nil
}

// HashPassword derives the PasswordHashLength-byte key for password and salt.
func HashPassword(password string, salt []byte) ([]byte, error) {
	if len(salt) == 0 {
		return nil, errors.New("password salt is empty")
	}
	return pbkdf2.Key([]byte(password), salt, PBKDF2Iterations, PasswordHashLength, sha256.New), nil
}

func NewSalt() ([]byte, error) {
	salt := make([]byte, SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	return salt, nil
}
