package service

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront-api/internal/model"
)

const sessionIDBytes = 32

// SessionService owns server-side sessions. The cookie carries only
// "<sid>.<hmac>"; the stored identity is trusted without re-reading the user.
type SessionService struct {
	store  SessionStore
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionService(store SessionStore, secret string, ttl time.Duration) (*SessionService, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("session secret is required")
	}
	if ttl <= 0 {
		return nil, errors.New("session ttl must be positive")
	}

	return &SessionService{store: store, secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

// Establish stores a new session holding only {id, role}. The window is fixed:
// ExpiresAt is never extended by later requests.
func (s *SessionService) Establish(ctx context.Context, identity model.Identity) (model.Session, error) {
	sid, err := newSessionID()
	if err != nil {
		return model.Session{}, fmt.Errorf("%w: %v", model.ErrInternal, err)
	}

	now := s.now().UTC()
	session := model.Session{
		ID:        sid,
		Identity:  model.Identity{ID: identity.ID, Role: identity.Role},
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.store.Set(ctx, session); err != nil {
		return model.Session{}, fmt.Errorf("%w: %v", model.ErrInternal, err)
	}
	return session, nil
}

func (s *SessionService) Restore(ctx context.Context, sid string) (model.Identity, error) {
	session, err := s.store.Get(ctx, sid)
	if errors.Is(err, model.ErrSessionNotFound) {
		return model.Identity{}, model.ErrSessionNotFound
	}
	if err != nil {
		return model.Identity{}, fmt.Errorf("%w: %v", model.ErrInternal, err)
	}

	if session.Expired(s.now()) {
		return model.Identity{}, model.ErrSessionNotFound
	}
	return session.Identity, nil
}

func (s *SessionService) Destroy(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	if err := s.store.Destroy(ctx, sid); err != nil {
		return fmt.Errorf("%w: %v", model.ErrInternal, err)
	}
	return nil
}

func (s *SessionService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.store.CleanExpired(ctx, s.now().UTC())
}

// StartCleanupTicker purges expired sessions every interval until ctx ends.
func (s *SessionService) StartCleanupTicker(ctx context.Context, interval time.Duration, onPurge func(int64, error)) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := s.PurgeExpired(ctx)
			if onPurge != nil {
				onPurge(removed, err)
			}
		}
	}
}

// CookieValue signs sid for the client-visible cookie.
func (s *SessionService) CookieValue(sid string) string {
	return sid + "." + s.sign(sid)
}

// ParseCookie returns the sid when the signature matches.
func (s *SessionService) ParseCookie(value string) (string, bool) {
	sid, signature, found := strings.Cut(value, ".")
	if !found || sid == "" || signature == "" {
		return "", false
	}

	if !hmac.Equal([]byte(signature), []byte(s.sign(sid))) {
		return "", false
	}
	return sid, true
}

func (s *SessionService) sign(sid string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(sid))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func newSessionID() (string, error) {
	buf := make([]byte, sessionIDBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
