package model_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/guestrisk/internal/domain/event"
	"github.com/bibbank/guestrisk/internal/domain/model"
	"github.com/bibbank/guestrisk/internal/domain/valueobject"
)

func newParams(t *testing.T, risk float64) model.PredictionParams {
	t.Helper()
	r, err := model.NewReservation(validParams())
	require.NoError(t, err)

	return model.PredictionParams{
		Reservation:   r,
		Reliability:   1 - risk,
		NoShowRisk:    risk,
		Confidence:    0.55,
		RiskLabel:     valueobject.RiskLabelFromRisk(risk),
		BehavioralTag: valueobject.TagLowRisk,
		SpendTier:     valueobject.SpendTierStandard,
		Source:        valueobject.ScoreSourceHeuristic,
		Explanation:   "Short lead time",
		Sentiment:     model.NeutralSentiment(),
	}
}

func TestNewPrediction_LowRiskEmitsCompletedOnly(t *testing.T) {
	p, err := model.NewPrediction(newParams(t, 0.25))
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, p.ID())
	assert.Equal(t, "restaurant_001", p.TenantID())
	assert.Equal(t, 25, p.DisplayRiskScore())
	assert.NotNil(t, p.SmartTags())
	assert.False(t, p.PredictedAt().IsZero())
	assert.False(t, p.Raised(event.EventTypeHighRiskGuestDetected))

	evts := p.DomainEvents()
	require.Len(t, evts, 1)
	assert.Equal(t, event.EventTypePredictionCompleted, evts[0].EventType())
	assert.Equal(t, p.ID(), evts[0].AggregateID())
	assert.Contains(t, string(evts[0].Payload()), `"risk_label":"Low Risk"`)

	assert.Empty(t, p.DomainEvents(), "events are cleared after being read")
}

func TestNewPrediction_HighRiskEmitsAlert(t *testing.T) {
	p, err := model.NewPrediction(newParams(t, 0.9))
	require.NoError(t, err)
	assert.True(t, p.Raised(event.EventTypeHighRiskGuestDetected))

	evts := p.DomainEvents()
	require.Len(t, evts, 2)
	assert.Equal(t, event.EventTypeHighRiskGuestDetected, evts[1].EventType())
	assert.Equal(t, event.AggregateTypePrediction, evts[1].AggregateType())
	for _, evt := range evts {
		assert.Equal(t, "restaurant_001", evt.TenantID())
	}
}

func TestNewPrediction_Validation(t *testing.T) {
	t.Run("scores must sum to one", func(t *testing.T) {
		params := newParams(t, 0.3)
		params.NoShowRisk = 0.5
		_, err := model.NewPrediction(params)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must sum to 1")
	})

	t.Run("confidence out of range", func(t *testing.T) {
		params := newParams(t, 0.3)
		params.Confidence = 1.5
		_, err := model.NewPrediction(params)
		require.Error(t, err)
	})

	t.Run("missing labels", func(t *testing.T) {
		params := newParams(t, 0.3)
		params.SpendTier = valueobject.SpendTier{}
		_, err := model.NewPrediction(params)
		require.Error(t, err)
	})

	t.Run("missing reservation", func(t *testing.T) {
		params := newParams(t, 0.3)
		params.Reservation = nil
		_, err := model.NewPrediction(params)
		require.Error(t, err)
	})
}

func TestDisplayRiskScore_Rounds(t *testing.T) {
	p, err := model.NewPrediction(newParams(t, 0.834))
	require.NoError(t, err)
	assert.Equal(t, 83, p.DisplayRiskScore())
}

func TestSentimentFromPolarity(t *testing.T) {
	s := model.SentimentFromPolarity(0.6)
	assert.InDelta(t, 0.8, s.Score, 1e-9)
	assert.Equal(t, "positive", s.Label.String())

	s = model.SentimentFromPolarity(-0.65)
	assert.InDelta(t, 0.175, s.Score, 1e-9)
	assert.Equal(t, "negative", s.Label.String())

	s = model.SentimentFromPolarity(3)
	assert.InDelta(t, 1.0, s.Score, 1e-9)

	neutral := model.NeutralSentiment()
	assert.Equal(t, 0.5, neutral.Score)
	assert.Equal(t, "neutral", neutral.Label.String())
}
