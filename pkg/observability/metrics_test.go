package observability

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitMetricsServesCounters(t *testing.T) {
	provider, handler, err := InitMetrics(MetricsConfig{ServiceName: "guestrisk", ServiceVersion: "test"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	counter, err := provider.Meter("test").Int64Counter("guestrisk_test_events")
	require.NoError(t, err)
	counter.Add(context.Background(), 3)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(body), "guestrisk_test_events_total")
	assert.Contains(t, string(body), "go_goroutines")
}

func TestInitMetricsIsolatedRegistries(t *testing.T) {
	_, _, err := InitMetrics(MetricsConfig{ServiceName: "a"})
	require.NoError(t, err)
	_, _, err = InitMetrics(MetricsConfig{ServiceName: "b"})
	require.NoError(t, err)
}
