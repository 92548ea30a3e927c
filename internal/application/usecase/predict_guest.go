package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/bibbank/guestrisk/internal/application/dto"
	"github.com/bibbank/guestrisk/internal/domain/model"
	"github.com/bibbank/guestrisk/internal/domain/port"
	"github.com/bibbank/guestrisk/internal/domain/service"
)

var tracer = otel.Tracer("github.com/bibbank/guestrisk/internal/application/usecase")

// PredictGuest is the use case for predicting how one guest will behave.
type PredictGuest struct {
	scorer    service.Scorer
	tagger    *service.SmartTagger
	sentiment port.SentimentAnalyzer
	publisher port.EventPublisher
	metrics   port.PredictionMetrics
	logger    *slog.Logger
}

// NewPredictGuest creates a new PredictGuest use case.
func NewPredictGuest(
	scorer service.Scorer,
	tagger *service.SmartTagger,
	sentiment port.SentimentAnalyzer,
	publisher port.EventPublisher,
	metrics port.PredictionMetrics,
	logger *slog.Logger,
) *PredictGuest {
	return &PredictGuest{
		scorer:    scorer,
		tagger:    tagger,
		sentiment: sentiment,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// Execute scores the reservation, classifies it, analyses the notes and
// publishes the prediction events.
func (uc *PredictGuest) Execute(ctx context.Context, req dto.PredictRequest) (dto.PredictionResponse, error) {
	start := time.Now()
	ctx, span := tracer.Start(ctx, "PredictGuest.Execute")
	defer span.End()

	// 1. Validate and build the reservation.
	if err := req.Validate(); err != nil {
		return dto.PredictionResponse{}, failSpan(span, err)
	}
	reservation, err := model.NewReservation(req.ReservationParams())
	if err != nil {
		return dto.PredictionResponse{}, failSpan(span, fmt.Errorf("invalid reservation: %w", err))
	}
	span.SetAttributes(attribute.String("tenant_id", reservation.TenantID()))

	// 2. Score via the blended scorer.
	blend, err := uc.scorer.Score(ctx, reservation)
	if err != nil {
		return dto.PredictionResponse{}, failSpan(span, fmt.Errorf("failed to score reservation: %w", err))
	}

	// 3. Classify, explain and analyse the notes.
	cls := service.Classify(reservation, blend.NoShowRisk)
	prediction, err := model.NewPrediction(model.PredictionParams{
		Reservation:   reservation,
		Reliability:   blend.Reliability,
		NoShowRisk:    blend.NoShowRisk,
		Confidence:    blend.Confidence,
		RiskLabel:     cls.RiskLabel,
		BehavioralTag: cls.BehavioralTag,
		SpendTier:     cls.SpendTier,
		Source:        blend.Source,
		Explanation:   service.Explain(reservation),
		SmartTags:     uc.tagger.Extract(reservation.Notes()),
		Sentiment:     uc.sentiment.Analyze(reservation.Notes()),
	})
	if err != nil {
		return dto.PredictionResponse{}, failSpan(span, fmt.Errorf("failed to build prediction: %w", err))
	}
	span.SetAttributes(
		attribute.String("risk_label", prediction.RiskLabel().String()),
		attribute.String("source", string(prediction.Source())),
	)

	// 4. Record metrics.
	uc.metrics.RecordPrediction(ctx, prediction.RiskLabel().String(), string(prediction.Source()), time.Since(start))
	if blend.Fallback != "" {
		uc.metrics.RecordFallback(ctx, blend.Fallback)
	}

	// 5. Publish domain events. A publish failure never fails the prediction.
	if events := prediction.DomainEvents(); len(events) > 0 {
		if err := uc.publisher.Publish(ctx, events...); err != nil {
			uc.logger.WarnContext(ctx, "failed to publish prediction events",
				"error", err,
				"prediction_id", prediction.ID(),
				"tenant_id", prediction.TenantID(),
			)
		}
	}

	uc.logger.DebugContext(ctx, "guest behavior predicted",
		"prediction_id", prediction.ID(),
		"tenant_id", prediction.TenantID(),
		"risk_label", prediction.RiskLabel().String(),
		"source", string(prediction.Source()),
	)

	return dto.FromPrediction(prediction, req.ReservationID), nil
}

func failSpan(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(otelcodes.Error, err.Error())
	return err
}
