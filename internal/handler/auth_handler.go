package handler

import (
	"log/slog"
	"net/http"
	"time"

	"storefront-api/internal/middleware"
	"storefront-api/internal/model"
	"storefront-api/internal/service"
)

type CookieOptions struct {
	Secure     bool
	TokenTTL   time.Duration
	SessionTTL time.Duration
}

type AuthHandler struct {
	service *service.AuthService
	cookies CookieOptions
	now     func() time.Time
}

func NewAuthHandler(service *service.AuthService, cookies CookieOptions) *AuthHandler {
	return &AuthHandler{service: service, cookies: cookies, now: time.Now}
}

// Login runs the local strategy. On failure no cookie is set or cleared.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload model.LoginRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.service.Authenticate(r.Context(), service.Attempt{
		Strategy:          service.StrategyLocal,
		Email:             payload.Email,
		Password:          payload.Password,
		PreviousSessionID: middleware.SessionIDFromContext(r.Context()),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	h.setLoginCookies(w, result)
	writeSuccess(w, http.StatusOK, result.Identity, nil)
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var payload model.SignupRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.service.Signup(r.Context(), payload, middleware.SessionIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	h.setLoginCookies(w, result)
	writeSuccess(w, http.StatusCreated, result.Identity, nil)
}

// Check answers behind the token gate with the identity it attached.
func (h *AuthHandler) Check(w http.ResponseWriter, r *http.Request) {
	identity, err := actorFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, identity, nil)
}

// Session returns what the session store holds, without consulting the user table.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.SessionIdentityFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthenticated)
		return
	}

	writeSuccess(w, http.StatusOK, identity, nil)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Logout(r.Context(), middleware.SessionIDFromContext(r.Context())); err != nil {
		slog.Warn("logout could not destroy session", "error", err)
	}

	h.clearCookie(w, middleware.TokenCookieName)
	h.clearCookie(w, middleware.SessionCookieName)
	writeSuccess(w, http.StatusOK, map[string]any{"logged_out": true}, nil)
}

func (h *AuthHandler) setLoginCookies(w http.ResponseWriter, result service.Result) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    result.Token,
		Path:     "/",
		Expires:  h.now().Add(h.cookies.TokenTTL),
		MaxAge:   int(h.cookies.TokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	if result.Session != nil {
		http.SetCookie(w, &http.Cookie{
			Name:     middleware.SessionCookieName,
			Value:    h.service.Sessions().CookieValue(result.Session.ID),
			Path:     "/",
			Expires:  result.Session.ExpiresAt,
			MaxAge:   int(h.cookies.SessionTTL.Seconds()),
			HttpOnly: true,
			Secure:   h.cookies.Secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

func (h *AuthHandler) clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
