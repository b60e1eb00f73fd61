package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestCanonicalRoute(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"/":                      "/",
		"/products":              "/products",
		"/products/0b6c":         "/products/:id",
		"/orders/own":            "/orders/own",
		"/auth/login":            "/auth/login",
		"/create-payment-intent": "/create-payment-intent",
		"/static/js/main.js":     "static",
	}

	for in, want := range cases {
		require.Equal(t, want, canonicalRoute(in), in)
	}
}

func TestInstrumentHandlerCountsRequests(t *testing.T) {
	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/brands", "418"))

	handler := InstrumentHandler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/brands", nil))

	after := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/brands", "418"))
	require.Equal(t, before+1, after)
}

func TestHandlerExposesAuthCounters(t *testing.T) {
	RecordAuthAttempt("local", "success")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, strings.Contains(rec.Body.String(), "storefront_auth_attempts_total"))
}
