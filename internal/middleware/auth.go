package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"storefront-api/internal/model"
	"storefront-api/internal/service"
)

const (
	TokenCookieName   = "jwt"
	SessionCookieName = "sid"
)

type contextKey string

const (
	identityContextKey        contextKey = "identity"
	sessionIdentityContextKey contextKey = "session_identity"
	sessionIDContextKey       contextKey = "session_id"
)

type authenticator interface {
	Authenticate(ctx context.Context, attempt service.Attempt) (service.Result, error)
}

type sessionRestorer interface {
	ParseCookie(value string) (string, bool)
	Restore(ctx context.Context, sid string) (model.Identity, error)
}

// Gate guards protected routes with the token strategy and makes the session,
// when one exists, visible to handlers.
type Gate struct {
	auth     authenticator
	sessions sessionRestorer
}

func NewGate(auth authenticator, sessions sessionRestorer) *Gate {
	return &Gate{auth: auth, sessions: sessions}
}

// RequireToken rejects the request with a bare 401 unless a valid bearer token
// is present. The session cookie alone never satisfies it.
func (g *Gate) RequireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		result, err := g.auth.Authenticate(r.Context(), service.Attempt{
			Strategy: service.StrategyToken,
			Token:    TokenFromRequest(r),
		})
		if errors.Is(err, model.ErrInternal) {
			slog.Error("token authentication failed", "error", err, "path", r.URL.Path)
			writeJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong!")
			return
		}
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
			return
		}

		noteAccount(r.Context(), result.Identity, "token")
		ctx := context.WithValue(r.Context(), identityContextKey, result.Identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// LoadSession restores the identity behind a correctly signed sid cookie. It
// never rejects a request.
func (g *Gate) LoadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		sid, ok := g.sessions.ParseCookie(cookie.Value)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), sessionIDContextKey, sid)
		identity, err := g.sessions.Restore(ctx, sid)
		switch {
		case err == nil:
			noteAccount(ctx, identity, "session")
			ctx = context.WithValue(ctx, sessionIdentityContextKey, identity)
		case !errors.Is(err, model.ErrSessionNotFound):
			slog.Warn("session restore failed", "error", err)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// TokenFromRequest prefers the jwt cookie and falls back to an Authorization
// bearer header.
func TokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(TokenCookieName); err == nil && strings.TrimSpace(cookie.Value) != "" {
		return strings.TrimSpace(cookie.Value)
	}

	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

func IdentityFromContext(ctx context.Context) (model.Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(model.Identity)
	return identity, ok
}

func SessionIdentityFromContext(ctx context.Context) (model.Identity, bool) {
	identity, ok := ctx.Value(sessionIdentityContextKey).(model.Identity)
	return identity, ok
}

// SessionIDFromContext returns the sid of a correctly signed cookie, even if
// the session itself has expired.
func SessionIDFromContext(ctx context.Context) string {
	sid, _ := ctx.Value(sessionIDContextKey).(string)
	return sid
}
