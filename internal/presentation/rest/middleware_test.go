package rest_test

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/guestrisk/internal/presentation/rest"
)

func TestTenantRateLimiter(t *testing.T) {
	router := newTestRouter(t, rest.NewTenantRateLimiter(0.001, 2, testLogger()))
	tenantA := map[string]string{rest.TenantHeader: "restaurant_a"}

	for range 2 {
		rec := doRequest(t, router, http.MethodGet, "/api/v1/demo-scenarios", "", tenantA)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := doRequest(t, router, http.MethodGet, "/api/v1/demo-scenarios", "", tenantA)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))

	t.Run("other tenants keep their budget", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/api/v1/demo-scenarios", "",
			map[string]string{rest.TenantHeader: "restaurant_b"})
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("health is not limited", func(t *testing.T) {
		for range 5 {
			rec := doRequest(t, router, http.MethodGet, "/healthz", "", tenantA)
			assert.Equal(t, http.StatusOK, rec.Code)
		}
	})
}

func TestTenantRateLimiter_KeysOnClientAddress(t *testing.T) {
	router := newTestRouter(t, rest.NewTenantRateLimiter(0.001, 1, testLogger()))

	send := func(remoteAddr string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/demo-scenarios", nil)
		req.Header.Set(rest.TenantHeader, "restaurant_a")
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec.Code
	}

	require.Equal(t, http.StatusOK, send("198.51.100.7:4000"))
	assert.Equal(t, http.StatusTooManyRequests, send("198.51.100.7:4001"))
	assert.Equal(t, http.StatusOK, send("203.0.113.9:4000"))
}

func TestTenantRateLimiter_EvictsIdleLimiters(t *testing.T) {
	limiter := rest.NewTenantRateLimiter(0.001, 1, testLogger())
	now := time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)
	limiter.SetClock(func() time.Time { return now })
	router := newTestRouter(t, limiter)

	for i := range 50 {
		rec := doRequest(t, router, http.MethodGet, "/api/v1/demo-scenarios", "",
			map[string]string{rest.TenantHeader: fmt.Sprintf("rotating-%d", i)})
		require.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Equal(t, 50, limiter.Len())

	now = now.Add(rest.DefaultLimiterIdleTimeout)
	rec := doRequest(t, router, http.MethodGet, "/api/v1/demo-scenarios", "",
		map[string]string{rest.TenantHeader: "restaurant_a"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, limiter.Len())

	t.Run("active limiters survive a sweep", func(t *testing.T) {
		now = now.Add(rest.DefaultLimiterIdleTimeout / 2)
		doRequest(t, router, http.MethodGet, "/api/v1/demo-scenarios", "",
			map[string]string{rest.TenantHeader: "restaurant_b"})
		now = now.Add(rest.DefaultLimiterIdleTimeout / 2)
		rec := doRequest(t, router, http.MethodGet, "/api/v1/demo-scenarios", "",
			map[string]string{rest.TenantHeader: "restaurant_b"})
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, 1, limiter.Len())
	})
}

func TestCORS(t *testing.T) {
	router := newTestRouter(t, nil)

	t.Run("preflight", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodOptions, "/api/v1/predict-guest-behavior", "", map[string]string{
			"Origin":                         "https://app.example.com",
			"Access-Control-Request-Method":  "POST",
			"Access-Control-Request-Headers": "Content-Type, X-Tenant-ID",
		})
		assert.Contains(t, []int{http.StatusOK, http.StatusNoContent}, rec.Code)
		assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
		assert.Equal(t, "POST", rec.Header().Get("Access-Control-Allow-Methods"))
		allowed := strings.ToLower(rec.Header().Get("Access-Control-Allow-Headers"))
		assert.Contains(t, allowed, "content-type")
		assert.Contains(t, allowed, "x-tenant-id")
		assert.Empty(t, rec.Body.String())
	})

	t.Run("simple request", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/api/v1/demo-scenarios", "", map[string]string{"Origin": "https://app.example.com"})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRecoverer(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))

	h := rest.Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}), rest.RequestLogger(logger), rest.Recoverer)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/predict-guest-behavior", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "internal error", decodeBody[rest.ErrorResponse](t, rec).Detail)
	assert.Contains(t, logs.String(), "panic in http handler")
	assert.Contains(t, logs.String(), `"status":500`)
}

func TestRecoverer_PassesThroughHandlerErrors(t *testing.T) {
	h := rest.Recoverer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestRequestLogger_IncludesRequestID(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))

	h := rest.Chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}), chimiddleware.RequestID, rest.RequestLogger(logger))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(chimiddleware.RequestIDHeader, "req-42")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, logs.String(), `"request_id":"req-42"`)
	assert.Contains(t, logs.String(), `"status":202`)
	assert.Contains(t, logs.String(), `"path":"/healthz"`)
}

func TestChain_Order(t *testing.T) {
	var order []string
	mark := func(name string) rest.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := rest.Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}), mark("outer"), mark("inner"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestRouter_Metrics(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("# HELP guestrisk_predictions_total\n"))
	})
	router := rest.NewRouter(newAPIHandler(t), rest.NewHealthHandler(testLogger(), nil), metrics, nil, testLogger())

	rec := doRequest(t, router, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "guestrisk_predictions_total")
}
