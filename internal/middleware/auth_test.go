package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-api/internal/model"
	"storefront-api/internal/repository"
	"storefront-api/internal/service"
)

type gateFixture struct {
	gate     *Gate
	users    *repository.MemoryUserStore
	tokens   *service.TokenService
	sessions *service.SessionService
}

func newGateFixture(t *testing.T) gateFixture {
	t.Helper()

	users := repository.NewMemoryUserStore()
	tokens, err := service.NewTokenService("jwt-secret", 0, users)
	require.NoError(t, err)
	sessions, err := service.NewSessionService(repository.NewMemorySessionStore(), "session-secret", 24*time.Hour)
	require.NoError(t, err)

	auth := service.NewAuthService(users, service.NewCredentialVerifier(users), tokens, sessions)
	return gateFixture{gate: NewGate(auth, sessions), users: users, tokens: tokens, sessions: sessions}
}

func (f gateFixture) addUser(t *testing.T, id string, role string) model.Identity {
	t.Helper()

	require.NoError(t, f.users.Create(context.Background(), model.User{ID: id, Email: id + "@example.com", Role: role}))
	return model.Identity{ID: id, Role: role}
}

func identityEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		_, _ = fmt.Fprintf(w, "%s:%s", identity.ID, identity.Role)
	})
}

func TestGate_RequireToken(t *testing.T) {
	f := newGateFixture(t)
	alice := f.addUser(t, "alice", model.RoleUser)
	token, err := f.tokens.Issue(alice)
	require.NoError(t, err)

	handler := f.gate.RequireToken(identityEcho())

	t.Run("no credentials", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"success":false,"error":{"code":"UNAUTHORIZED","message":"Unauthorized"}}`, rec.Body.String())
	})

	t.Run("jwt cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: token})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "alice:user", rec.Body.String())
	})

	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("cookie wins over header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: "forged"})
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("session cookie alone is not enough", func(t *testing.T) {
		session, err := f.sessions.Establish(context.Background(), alice)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: f.sessions.CookieValue(session.ID)})
		rec := httptest.NewRecorder()
		f.gate.LoadSession(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("deleted user", func(t *testing.T) {
		ghost := f.addUser(t, "ghost", model.RoleUser)
		ghostToken, err := f.tokens.Issue(ghost)
		require.NoError(t, err)
		f.users.Delete(ghost.ID)

		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		req.Header.Set("Authorization", "Bearer "+ghostToken)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

type brokenAuthenticator struct{}

func (brokenAuthenticator) Authenticate(context.Context, service.Attempt) (service.Result, error) {
	return service.Result{}, fmt.Errorf("%w: database unavailable", model.ErrInternal)
}

func TestGate_RequireToken_StoreFailure(t *testing.T) {
	gate := NewGate(brokenAuthenticator{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/orders/own", nil)
	req.Header.Set("Authorization", "Bearer anything")
	rec := httptest.NewRecorder()
	gate.RequireToken(identityEcho()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "database")
}

func TestGate_LoadSession(t *testing.T) {
	f := newGateFixture(t)
	bob := model.Identity{ID: "bob", Role: model.RoleAdmin}
	session, err := f.sessions.Establish(context.Background(), bob)
	require.NoError(t, err)

	var gotIdentity model.Identity
	var gotOK bool
	var gotSID string
	handler := f.gate.LoadSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotIdentity, gotOK = SessionIdentityFromContext(r.Context())
		gotSID = SessionIDFromContext(r.Context())
	}))

	serve := func(cookie string) {
		gotIdentity, gotOK, gotSID = model.Identity{}, false, ""
		req := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
		if cookie != "" {
			req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: cookie})
		}
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	serve(f.sessions.CookieValue(session.ID))
	assert.True(t, gotOK)
	assert.Equal(t, bob, gotIdentity)
	assert.Equal(t, session.ID, gotSID)

	serve(session.ID + ".forged")
	assert.False(t, gotOK)
	assert.Empty(t, gotSID)

	serve("")
	assert.False(t, gotOK)

	require.NoError(t, f.sessions.Destroy(context.Background(), session.ID))
	serve(f.sessions.CookieValue(session.ID))
	assert.False(t, gotOK)
	assert.Equal(t, session.ID, gotSID)
}

func TestTokenFromRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, TokenFromRequest(req))

	req.Header.Set("Authorization", "Basic dXNlcjpwdw==")
	assert.Empty(t, TokenFromRequest(req))

	req.Header.Set("Authorization", "bearer abc")
	assert.Equal(t, "abc", TokenFromRequest(req))

	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: "from-cookie"})
	assert.Equal(t, "from-cookie", TokenFromRequest(req))
}

func TestRecovery(t *testing.T) {
	handler := Recovery(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":{"code":"INTERNAL_ERROR","message":"Something went wrong!"}}`, rec.Body.String())
}

func TestSecurityHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	SecurityHeaders(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}
