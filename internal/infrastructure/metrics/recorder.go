package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MeterName is the instrumentation scope of the guest risk instruments.
const MeterName = "github.com/bibbank/guestrisk"

// Recorder implements port.PredictionMetrics with OpenTelemetry instruments.
type Recorder struct {
	predictions metric.Int64Counter
	latency     metric.Float64Histogram
	fallbacks   metric.Int64Counter
	tagAnalyses metric.Int64Counter
	tags        metric.Int64Counter
}

// NewRecorder creates the instruments on meter.
func NewRecorder(meter metric.Meter) (*Recorder, error) {
	predictions, err := meter.Int64Counter("guestrisk_predictions",
		metric.WithDescription("Guest behavior predictions by risk label and score source."),
	)
	if err != nil {
		return nil, fmt.Errorf("creating predictions counter: %w", err)
	}

	latency, err := meter.Float64Histogram("guestrisk_prediction_duration",
		metric.WithDescription("Time to score one reservation."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25),
	)
	if err != nil {
		return nil, fmt.Errorf("creating prediction latency histogram: %w", err)
	}

	fallbacks, err := meter.Int64Counter("guestrisk_heuristic_fallbacks",
		metric.WithDescription("Predictions served by the heuristic alone, by reason."),
	)
	if err != nil {
		return nil, fmt.Errorf("creating fallback counter: %w", err)
	}

	tagAnalyses, err := meter.Int64Counter("guestrisk_tag_analyses",
		metric.WithDescription("CRM tag analysis requests."),
	)
	if err != nil {
		return nil, fmt.Errorf("creating tag analysis counter: %w", err)
	}

	tags, err := meter.Int64Counter("guestrisk_tags_extracted",
		metric.WithDescription("CRM tags extracted across all analyses."),
	)
	if err != nil {
		return nil, fmt.Errorf("creating extracted tags counter: %w", err)
	}

	return &Recorder{
		predictions: predictions,
		latency:     latency,
		fallbacks:   fallbacks,
		tagAnalyses: tagAnalyses,
		tags:        tags,
	}, nil
}

// RecordPrediction counts one prediction and its latency.
func (r *Recorder) RecordPrediction(ctx context.Context, riskLabel, source string, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("risk_label", riskLabel),
		attribute.String("source", source),
	)
	r.predictions.Add(ctx, 1, attrs)
	r.latency.Record(ctx, duration.Seconds(), attrs)
}

// RecordFallback counts one heuristic-only prediction.
func (r *Recorder) RecordFallback(ctx context.Context, reason string) {
	r.fallbacks.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

// RecordTagAnalysis counts one analysis and the tags it produced.
func (r *Recorder) RecordTagAnalysis(ctx context.Context, tagCount int) {
	r.tagAnalyses.Add(ctx, 1)
	r.tags.Add(ctx, int64(tagCount))
}
