package rest_test

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/bibbank/guestrisk/internal/application/usecase"
	"github.com/bibbank/guestrisk/internal/domain/model"
	"github.com/bibbank/guestrisk/internal/domain/service"
	"github.com/bibbank/guestrisk/internal/infrastructure/messaging"
	"github.com/bibbank/guestrisk/internal/infrastructure/metrics"
	"github.com/bibbank/guestrisk/internal/infrastructure/sentiment"
	"github.com/bibbank/guestrisk/internal/presentation/rest"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubModelStatus struct {
	status model.EngineStatus
}

func (s stubModelStatus) Status() model.EngineStatus { return s.status }

func newAPIHandler(t *testing.T) *rest.GuestRiskHandler {
	t.Helper()
	logger := testLogger()

	recorder, err := metrics.NewRecorder(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)
	analyzer := sentiment.NewLexiconAnalyzer()
	scorer := service.NewBlendedScorer(
		service.NewFeatureMapper(), service.NewHeuristicScorer(), nil,
		service.DefaultANNWeight, logger,
	)
	predictGuest := usecase.NewPredictGuest(
		scorer, service.NewSmartTagger(), analyzer,
		messaging.NewLogPublisher(logger, slog.LevelDebug), recorder, logger,
	)

	return rest.NewGuestRiskHandler(
		predictGuest,
		usecase.NewPredictBatch(predictGuest),
		usecase.NewAnalyzeTags(service.NewCRMTagger(), analyzer, recorder),
		usecase.NewListDemoScenarios(),
		logger,
	)
}

func newTestRouter(t *testing.T, limiter *rest.TenantRateLimiter) http.Handler {
	t.Helper()
	health := rest.NewHealthHandler(testLogger(), stubModelStatus{status: model.EngineUnavailable})
	return rest.NewRouter(newAPIHandler(t), health, nil, limiter, testLogger())
}

func doRequest(t *testing.T, h http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}
