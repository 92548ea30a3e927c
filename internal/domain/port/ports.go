package port

import (
	"context"
	"time"

	"github.com/bibbank/guestrisk/internal/domain/model"
	"github.com/bibbank/guestrisk/pkg/events"
)

// ReliabilityModel defines the port for the frozen network that estimates
// P(guest shows up) from a mapped feature record.
type ReliabilityModel interface {
	// Init loads the model once. Concurrent callers wait for the first load
	// and every later call returns the terminal status.
	Init(ctx context.Context) model.EngineStatus

	// Status reports the current lifecycle status without triggering a load.
	Status() model.EngineStatus

	// Predict returns the reliability for one record. It returns
	// model.ErrModelUnavailable when the model is not available.
	Predict(ctx context.Context, record model.FeatureRecord) (float64, error)
}

// ReferenceSource defines the port for the reference dataset the
// preprocessing pipeline is fitted on.
type ReferenceSource interface {
	// Load returns every reference row in the fitted column order.
	Load(ctx context.Context) ([]model.FeatureRecord, error)
}

// SentimentAnalyzer scores the tone of free text.
type SentimentAnalyzer interface {
	Analyze(text string) model.Sentiment
}

// EventPublisher defines the port for publishing domain events.
type EventPublisher interface {
	// Publish sends one or more domain events to the messaging infrastructure.
	Publish(ctx context.Context, events ...events.DomainEvent) error
}

// PredictionMetrics records prediction outcomes.
type PredictionMetrics interface {
	RecordPrediction(ctx context.Context, riskLabel, source string, duration time.Duration)
	RecordFallback(ctx context.Context, reason string)
	RecordTagAnalysis(ctx context.Context, tagCount int)
}
