package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/guestrisk/internal/application/dto"
	"github.com/bibbank/guestrisk/internal/domain/event"
	"github.com/bibbank/guestrisk/internal/domain/model"
	"github.com/bibbank/guestrisk/internal/domain/service"
	"github.com/bibbank/guestrisk/internal/domain/valueobject"
	"github.com/bibbank/guestrisk/pkg/events"
)

func serialNoShowRequest() dto.PredictRequest {
	req := dto.NewPredictRequest()
	req.GuestName = "Alex Petrov"
	req.PartySize = 6
	req.EstimatedSpendPerCover = 35
	req.PreviousCancellations = 5
	return req
}

func TestPredictGuest_Execute(t *testing.T) {
	t.Run("heuristic-only serial no-show is high risk", func(t *testing.T) {
		uc, deps := newHeuristicPredictGuest(t)

		resp, err := uc.Execute(context.Background(), serialNoShowRequest())
		require.NoError(t, err)

		assert.Equal(t, "Alex Petrov", resp.GuestName)
		assert.Equal(t, model.DefaultTenantID, resp.TenantID)
		assert.InDelta(t, 0.10, resp.ReliabilityScore, 1e-9)
		assert.InDelta(t, 0.90, resp.NoShowRisk, 1e-9)
		assert.InDelta(t, service.HeuristicOnlyConfidence, resp.Confidence, 1e-9)
		assert.Equal(t, "High Risk", resp.RiskLabel)
		assert.Equal(t, "Likely No-Show", resp.AITag)
		assert.Equal(t, "Budget", resp.SpendTag)
		assert.Equal(t, "heuristic", resp.Source)
		assert.Equal(t, 90, resp.AIPrediction.RiskScore)
		assert.Equal(t, resp.RiskLabel, resp.AIPrediction.RiskLabel)
		assert.Equal(t, "Same-day booking + High cancel history (5x) + Low spend", resp.Explanation)
		assert.Equal(t, resp.Explanation, resp.AIPrediction.Explanation)
		assert.NotNil(t, resp.SmartTags)
		assert.Empty(t, resp.SmartTags)
		assert.Nil(t, resp.ReservationID)
		assert.NotEmpty(t, resp.PredictedAt)

		require.Len(t, deps.publisher.published, 2)
		assert.Equal(t, event.EventTypePredictionCompleted, deps.publisher.published[0].EventType())
		assert.Equal(t, event.EventTypeHighRiskGuestDetected, deps.publisher.published[1].EventType())
		assert.Equal(t, resp.PredictionID, deps.publisher.published[0].AggregateID())

		require.Len(t, deps.metrics.predictions, 1)
		assert.Equal(t, recordedPrediction{riskLabel: "High Risk", source: "heuristic"}, deps.metrics.predictions[0])
		assert.Equal(t, []string{service.FallbackModelUnavailable}, deps.metrics.fallbacks)
	})

	t.Run("blended low risk publishes only the completion event", func(t *testing.T) {
		uc, deps := newPredictGuest(t, blendedScore(0.8, 0.9))

		req := dto.NewPredictRequest()
		req.GuestName = "Maria Garcia"
		req.Notes = "Birthday dinner, one guest is vegan"

		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, "blended", resp.Source)
		assert.Equal(t, "Low Risk", resp.RiskLabel)
		assert.Equal(t, 20, resp.AIPrediction.RiskScore)
		require.Len(t, resp.SmartTags, 2)
		assert.Equal(t, dto.SmartTagResponse{Category: "Dietary", Label: "Vegan", Color: "green", Matched: "vegan"}, resp.SmartTags[0])
		assert.Equal(t, "Birthday", resp.SmartTags[1].Label)

		require.Len(t, deps.publisher.published, 1)
		assert.Empty(t, deps.metrics.fallbacks)
		assert.Equal(t, []string{req.Notes}, deps.sentiment.texts)
	})

	t.Run("sentiment of the notes is returned", func(t *testing.T) {
		uc, deps := newPredictGuest(t, blendedScore(0.5, 0.8))
		deps.sentiment.result = model.SentimentFromPolarity(-0.65)

		req := dto.NewPredictRequest()
		req.GuestName = "Karen Mitchell"
		req.Notes = "Last visit was terrible."

		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, dto.SentimentResponse{Score: 0.175, Label: "negative", Emoji: valueobject.SentimentNegative.Emoji()}, resp.Sentiment)
	})

	t.Run("echoes reservation details and tenant", func(t *testing.T) {
		uc, _ := newPredictGuest(t, blendedScore(0.7, 0.8))

		id, at, table := "res-42", "19:30", 12
		req := dto.NewPredictRequest()
		req.TenantID = "restaurant_001"
		req.GuestName = "Elena Rossi"
		req.ReservationID = &id
		req.ReservationTime = &at
		req.TableNumber = &table

		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "restaurant_001", resp.TenantID)
		require.NotNil(t, resp.ReservationID)
		assert.Equal(t, id, *resp.ReservationID)
		require.NotNil(t, resp.ReservationTime)
		assert.Equal(t, at, *resp.ReservationTime)
		require.NotNil(t, resp.TableNumber)
		assert.Equal(t, table, *resp.TableNumber)
	})

	t.Run("publish failure does not fail the prediction", func(t *testing.T) {
		uc, deps := newHeuristicPredictGuest(t)
		deps.publisher.publishFn = func(context.Context, ...events.DomainEvent) error {
			return errors.New("broker down")
		}

		_, err := uc.Execute(context.Background(), serialNoShowRequest())
		require.NoError(t, err)
	})

	t.Run("scorer error is wrapped", func(t *testing.T) {
		scorer := &mockScorer{
			scoreFn: func(context.Context, *model.Reservation) (service.Blend, error) {
				return service.Blend{}, fmt.Errorf("failed to preprocess reservation: %w", model.ErrPreprocessingMismatch)
			},
		}
		uc, deps := newPredictGuest(t, scorer)

		_, err := uc.Execute(context.Background(), serialNoShowRequest())
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrPreprocessingMismatch)
		assert.Empty(t, deps.publisher.published)
		assert.Empty(t, deps.metrics.predictions)
	})
}

func TestPredictGuest_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*dto.PredictRequest)
		wantMsg string
	}{
		{name: "missing guest name", mutate: func(r *dto.PredictRequest) { r.GuestName = "" }, wantMsg: "guest_name is required"},
		{name: "party of zero", mutate: func(r *dto.PredictRequest) { r.PartySize = 0 }, wantMsg: "party_size must be at least 1"},
		{name: "party above twenty", mutate: func(r *dto.PredictRequest) { r.PartySize = 21 }, wantMsg: "party_size must be at most 20"},
		{name: "too many children", mutate: func(r *dto.PredictRequest) { r.Children = 11 }, wantMsg: "children must be at most 10"},
		{name: "negative spend", mutate: func(r *dto.PredictRequest) { r.EstimatedSpendPerCover = -1 }, wantMsg: "estimated_spend_per_cover"},
		{name: "negative cancellations", mutate: func(r *dto.PredictRequest) { r.PreviousCancellations = -1 }, wantMsg: "previous_cancellations"},
		{
			name: "malformed reservation date",
			mutate: func(r *dto.PredictRequest) {
				d := "next friday"
				r.ReservationDate = &d
			},
			wantMsg: "invalid reservation date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scorer := blendedScore(0.8, 0.9)
			uc, _ := newPredictGuest(t, scorer)

			req := dto.NewPredictRequest()
			req.GuestName = "Noah Williams"
			tt.mutate(&req)

			_, err := uc.Execute(context.Background(), req)
			require.Error(t, err)
			assert.ErrorIs(t, err, model.ErrMalformedInput)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Zero(t, scorer.calls)
		})
	}
}
