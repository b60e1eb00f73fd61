package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"storefront-api/internal/metrics"
	"storefront-api/internal/model"
)

// Strategy is the closed set of ways a request can prove who it is.
type Strategy uint8

const (
	// StrategyLocal is email + password; only the login and signup endpoints use it.
	StrategyLocal Strategy = iota + 1
	// StrategyToken is a signed bearer token from the jwt cookie or Authorization header.
	StrategyToken
)

func (s Strategy) String() string {
	switch s {
	case StrategyLocal:
		return "local"
	case StrategyToken:
		return "token"
	default:
		return "unknown"
	}
}

// Attempt is one authentication request. Which fields matter depends on Strategy.
type Attempt struct {
	Strategy Strategy
	Email    string
	Password string
	Token    string
	// PreviousSessionID is destroyed when a local login succeeds.
	PreviousSessionID string
}

// Result of a successful attempt. Token and Session are only set by StrategyLocal.
type Result struct {
	Identity model.Identity
	Token    string
	Session  *model.Session
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     string
}

type AuthService struct {
	users    UserStore
	verifier *CredentialVerifier
	tokens   *TokenService
	sessions *SessionService
}

func NewAuthService(users UserStore, verifier *CredentialVerifier, tokens *TokenService, sessions *SessionService) *AuthService {
	return &AuthService{users: users, verifier: verifier, tokens: tokens, sessions: sessions}
}

func (s *AuthService) Sessions() *SessionService {
	return s.sessions
}

// Authenticate dispatches on attempt.Strategy. Failures are model.ErrInvalidCredentials,
// model.ErrInvalidToken, model.ErrUnauthenticated or a wrapped model.ErrInternal.
func (s *AuthService) Authenticate(ctx context.Context, attempt Attempt) (Result, error) {
	var (
		result Result
		err    error
	)

	switch attempt.Strategy {
	case StrategyLocal:
		result, err = s.authenticateLocal(ctx, attempt)
	case StrategyToken:
		result, err = s.authenticateToken(ctx, attempt)
	default:
		err = fmt.Errorf("%w: unsupported authentication strategy %d", model.ErrInternal, attempt.Strategy)
	}

	metrics.RecordAuthAttempt(attempt.Strategy.String(), outcomeOf(err))
	return result, err
}

func (s *AuthService) authenticateLocal(ctx context.Context, attempt Attempt) (Result, error) {
	identity, err := s.verifier.Verify(ctx, attempt.Email, attempt.Password)
	if err != nil {
		return Result{}, err
	}

	return s.login(ctx, identity, attempt.PreviousSessionID)
}

func (s *AuthService) authenticateToken(ctx context.Context, attempt Attempt) (Result, error) {
	if strings.TrimSpace(attempt.Token) == "" {
		return Result{}, model.ErrUnauthenticated
	}

	identity, ok, err := s.tokens.Validate(ctx, attempt.Token)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return Result{}, model.ErrUnauthenticated
	}

	return Result{Identity: identity}, nil
}

// login populates both mechanisms: a fresh session and a bearer token.
func (s *AuthService) login(ctx context.Context, identity model.Identity, previousSessionID string) (Result, error) {
	if previousSessionID != "" {
		if err := s.sessions.Destroy(ctx, previousSessionID); err != nil {
			slog.Warn("failed to destroy previous session", "error", err)
		}
	}

	token, err := s.tokens.Issue(identity)
	if err != nil {
		return Result{}, err
	}

	session, err := s.sessions.Establish(ctx, identity)
	if err != nil {
		return Result{}, err
	}

	return Result{Identity: identity, Token: token, Session: &session}, nil
}

// Register creates a user with a fresh salt. Role defaults to model.RoleUser.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (model.User, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" || !strings.Contains(email, "@") {
		return model.User{}, fmt.Errorf("%w: a valid email is required", model.ErrInvalidInput)
	}
	if input.Password == "" {
		return model.User{}, fmt.Errorf("%w: password is required", model.ErrInvalidInput)
	}

	role := strings.ToLower(strings.TrimSpace(input.Role))
	if role == "" {
		role = model.RoleUser
	}
	if role != model.RoleUser && role != model.RoleAdmin {
		return model.User{}, fmt.Errorf("%w: unknown role %q", model.ErrInvalidInput, input.Role)
	}

	salt, err := NewSalt()
	if err != nil {
		return model.User{}, fmt.Errorf("%w: %v", model.ErrInternal, err)
	}
	hash, err := HashPassword(input.Password, salt)
	if err != nil {
		return model.User{}, fmt.Errorf("%w: %v", model.ErrInternal, err)
	}

	now := time.Now().UTC()
	user := model.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Salt:         salt,
		Role:         role,
		Name:         strings.TrimSpace(input.Name),
		Addresses:    []model.Address{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

// Signup registers an ordinary user and logs them in the same way a local login does.
func (s *AuthService) Signup(ctx context.Context, req model.SignupRequest, previousSessionID string) (Result, error) {
	user, err := s.Register(ctx, RegisterInput{Email: req.Email, Password: req.Password, Name: req.Name, Role: model.RoleUser})
	if err != nil {
		return Result{}, err
	}

	return s.login(ctx, user.Identity(), previousSessionID)
}

// RestoreSession returns the identity stored in the session verbatim.
func (s *AuthService) RestoreSession(ctx context.Context, sid string) (model.Identity, error) {
	return s.sessions.Restore(ctx, sid)
}

func (s *AuthService) Logout(ctx context.Context, sid string) error {
	return s.sessions.Destroy(ctx, sid)
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, model.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, model.ErrInvalidToken):
		return "invalid_token"
	case errors.Is(err, model.ErrUnauthenticated):
		return "unauthenticated"
	default:
		return "error"
	}
}
