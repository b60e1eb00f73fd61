package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"storefront-api/internal/model"
)

type userByIDFinder interface {
	FindByID(ctx context.Context, id string) (model.User, error)
}

type tokenClaims struct {
	ID   string `json:"id"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService mints and checks stateless HS256 bearer tokens. Tokens are
// never stored; rotating the secret is the only way to revoke them.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	users  userByIDFinder
	now    func() time.Time
}

// NewTokenService builds the issuer/validator. A zero ttl mints tokens without exp.
func NewTokenService(secret string, ttl time.Duration, users userByIDFinder) (*TokenService, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("token signing secret is required")
	}
	if ttl < 0 {
		return nil, errors.New("token ttl cannot be negative")
	}

	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		users:  users,
		now:    time.Now,
	}, nil
}

func (s *TokenService) Issue(identity model.Identity) (string, error) {
	now := s.now()
	claims := tokenClaims{
		ID:   identity.ID,
		Role: identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("%w: sign token: %v", model.ErrInternal, err)
	}
	return signed, nil
}

// Validate verifies the signature and re-reads the user so the returned role is
// current. ok is false when the token is sound but its user no longer exists.
func (s *TokenService) Validate(ctx context.Context, tokenString string) (identity model.Identity, ok bool, err error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return model.Identity{}, false, model.ErrInvalidToken
	}

	if strings.TrimSpace(claims.ID) == "" {
		return model.Identity{}, false, model.ErrInvalidToken
	}

	user, err := s.users.FindByID(ctx, claims.ID)
	if errors.Is(err, model.ErrUserNotFound) {
		return model.Identity{}, false, nil
	}
	if err != nil {
		return model.Identity{}, false, fmt.Errorf("%w: load token user: %v", model.ErrInternal, err)
	}

	return user.Identity(), true, nil
}
