package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/bibbank/guestrisk/internal/application/usecase"
	"github.com/bibbank/guestrisk/internal/domain/model"
	"github.com/bibbank/guestrisk/internal/domain/service"
	"github.com/bibbank/guestrisk/internal/domain/valueobject"
	"github.com/bibbank/guestrisk/pkg/events"
)

// --- Mock implementations ---

type mockScorer struct {
	scoreFn func(ctx context.Context, r *model.Reservation) (service.Blend, error)
	calls   int
}

func (m *mockScorer) Score(ctx context.Context, r *model.Reservation) (service.Blend, error) {
	m.calls++
	return m.scoreFn(ctx, r)
}

type mockEventPublisher struct {
	publishFn func(ctx context.Context, evts ...events.DomainEvent) error
	published []events.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	if m.publishFn != nil {
		return m.publishFn(ctx, evts...)
	}
	m.published = append(m.published, evts...)
	return nil
}

type recordedPrediction struct {
	riskLabel string
	source    string
}

type mockMetrics struct {
	predictions []recordedPrediction
	fallbacks   []string
	tagCounts   []int
	mu          sync.Mutex
}

func (m *mockMetrics) RecordPrediction(_ context.Context, riskLabel, source string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.predictions = append(m.predictions, recordedPrediction{riskLabel: riskLabel, source: source})
}

func (m *mockMetrics) RecordFallback(_ context.Context, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fallbacks = append(m.fallbacks, reason)
}

func (m *mockMetrics) RecordTagAnalysis(_ context.Context, tagCount int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tagCounts = append(m.tagCounts, tagCount)
}

type stubSentiment struct {
	texts  []string
	result model.Sentiment
}

func (s *stubSentiment) Analyze(text string) model.Sentiment {
	s.texts = append(s.texts, text)
	if s.result.Label.String() == "" {
		return model.NeutralSentiment()
	}
	return s.result
}

// --- Fixtures ---

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type predictDeps struct {
	publisher *mockEventPublisher
	metrics   *mockMetrics
	sentiment *stubSentiment
}

// newHeuristicPredictGuest wires the real scorer without a network.
func newHeuristicPredictGuest(t *testing.T) (*usecase.PredictGuest, predictDeps) {
	t.Helper()
	scorer := service.NewBlendedScorer(
		service.NewFeatureMapper(), service.NewHeuristicScorer(), nil,
		service.DefaultANNWeight, discardLogger(),
	)
	return newPredictGuest(t, scorer)
}

func newPredictGuest(t *testing.T, scorer service.Scorer) (*usecase.PredictGuest, predictDeps) {
	t.Helper()
	deps := predictDeps{
		publisher: &mockEventPublisher{},
		metrics:   &mockMetrics{},
		sentiment: &stubSentiment{},
	}
	uc := usecase.NewPredictGuest(scorer, service.NewSmartTagger(), deps.sentiment, deps.publisher, deps.metrics, discardLogger())
	return uc, deps
}

func blendedScore(reliability, confidence float64) *mockScorer {
	return &mockScorer{
		scoreFn: func(context.Context, *model.Reservation) (service.Blend, error) {
			return service.Blend{
				Source:      valueobject.ScoreSourceBlended,
				Reliability: reliability,
				NoShowRisk:  1 - reliability,
				Confidence:  confidence,
			}, nil
		},
	}
}
