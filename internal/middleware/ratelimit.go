package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type clientLimiter struct {
	general  *rate.Limiter
	auth     *rate.Limiter
	lastSeen time.Time
}

type RateLimitMiddleware struct {
	generalRPM int
	authRPM    int
	trustProxy bool
	mu         sync.Mutex
	clients    map[string]*clientLimiter
}

// NewRateLimitMiddleware builds per-client limiters. A non-positive generalRPM
// disables the general budget; authRPM falls back to 10. Clients are keyed by
// the connection address unless trustProxy is set, in which case
// X-Forwarded-For and X-Real-IP written by the proxy in front are honoured.
func NewRateLimitMiddleware(generalRPM int, authRPM int, trustProxy bool) *RateLimitMiddleware {
	if authRPM <= 0 {
		authRPM = 10
	}

	return &RateLimitMiddleware{
		generalRPM: generalRPM,
		authRPM:    authRPM,
		trustProxy: trustProxy,
		clients:    map[string]*clientLimiter{},
	}
}

func (m *RateLimitMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isProbe(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		clientIP := extractClientIP(r, m.trustProxy)
		limiter := m.getLimiter(clientIP)

		target := limiter.general
		if isAuthPath(r.URL.Path) {
			target = limiter.auth
		}

		if target != nil && !target.Allow() {
			w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(target)))
			writeJSONError(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (m *RateLimitMiddleware) getLimiter(clientIP string) *clientLimiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	if limiter, exists := m.clients[clientIP]; exists {
		limiter.lastSeen = time.Now()
		m.gcLocked()
		return limiter
	}

	var general *rate.Limiter
	if m.generalRPM > 0 {
		general = rate.NewLimiter(rate.Every(time.Minute/time.Duration(m.generalRPM)), m.generalRPM)
	}
	auth := rate.NewLimiter(rate.Every(time.Minute/time.Duration(m.authRPM)), m.authRPM)
	created := &clientLimiter{general: general, auth: auth, lastSeen: time.Now()}
	m.clients[clientIP] = created
	m.gcLocked()

	return created
}

func (m *RateLimitMiddleware) gcLocked() {
	if len(m.clients) < 1000 {
		return
	}

	cutoff := time.Now().Add(-10 * time.Minute)
	for ip, limiter := range m.clients {
		if limiter.lastSeen.Before(cutoff) {
			delete(m.clients, ip)
		}
	}
}

// isAuthPath matches the credential endpoints, which get the stricter budget.
func isAuthPath(path string) bool {
	lower := strings.ToLower(path)
	return lower == "/auth" || strings.HasPrefix(lower, "/auth/") || lower == "/create-payment-intent"
}

func isProbe(path string) bool {
	return path == "/health" || path == "/metrics"
}

// retryAfterSeconds is how long until the limiter has one token again.
func retryAfterSeconds(l *rate.Limiter) int {
	r := l.Reserve()
	if !r.OK() {
		return 60
	}
	delay := r.Delay()
	r.Cancel()
	return max(1, int(math.Ceil(delay.Seconds())))
}

func extractClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		forwarded := strings.TrimSpace(r.Header.Get("X-Forwarded-For"))
		if forwarded != "" {
			parts := strings.Split(forwarded, ",")
			if first := strings.TrimSpace(parts[0]); first != "" {
				return first
			}
		}

		realIP := strings.TrimSpace(r.Header.Get("X-Real-IP"))
		if realIP != "" {
			return realIP
		}
	}

	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}

	if strings.TrimSpace(r.RemoteAddr) == "" {
		return "unknown"
	}

	return r.RemoteAddr
}
