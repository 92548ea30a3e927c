package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/shopspring/decimal"

	"github.com/bibbank/guestrisk/internal/domain/model"
	"github.com/bibbank/guestrisk/internal/domain/port"
	"github.com/bibbank/guestrisk/internal/domain/valueobject"
)

// DefaultANNWeight is the share of the network reliability in the blend.
const DefaultANNWeight = 0.20

// HeuristicOnlyConfidence is reported when the network did not take part.
const HeuristicOnlyConfidence = 0.55

// Fallback reasons reported on a heuristic-only Blend.
const (
	FallbackModelUnavailable = "model_unavailable"
	FallbackInferenceError   = "inference_error"
)

// Blend is the calibrated score of one reservation.
type Blend struct {
	Source      valueobject.ScoreSource
	Fallback    string
	Reliability float64
	NoShowRisk  float64
	Confidence  float64
	Heuristic   float64
	Network     float64
}

// BlendedScorer combines the network reliability with the heuristic.
// The heuristic always runs. If the network is unavailable or its forward
// pass fails, the heuristic alone is used.
type BlendedScorer struct {
	mapper    *FeatureMapper
	heuristic *HeuristicScorer
	model     port.ReliabilityModel
	logger    *slog.Logger
	annWeight float64
}

// NewBlendedScorer creates a BlendedScorer with the given network weight (0.0–1.0).
// A nil model means heuristic-only scoring.
func NewBlendedScorer(
	mapper *FeatureMapper,
	heuristic *HeuristicScorer,
	reliabilityModel port.ReliabilityModel,
	annWeight float64,
	logger *slog.Logger,
) *BlendedScorer {
	if annWeight < 0 || annWeight > 1 {
		annWeight = DefaultANNWeight
	}
	return &BlendedScorer{
		mapper:    mapper,
		heuristic: heuristic,
		model:     reliabilityModel,
		annWeight: annWeight,
		logger:    logger,
	}
}

// Score evaluates a reservation. The only error it returns is a
// preprocessing mismatch or a mapping failure, both invariant violations.
func (b *BlendedScorer) Score(ctx context.Context, r *model.Reservation) (Blend, error) {
	heuristic := b.heuristic.Score(r)

	if b.model == nil {
		return heuristicOnly(heuristic, FallbackModelUnavailable), nil
	}

	switch b.model.Init(ctx) {
	case model.EngineAvailable:
	case model.EngineUnavailable, model.EngineNotLoaded:
		return heuristicOnly(heuristic, FallbackModelUnavailable), nil
	}

	record, err := b.mapper.Map(r)
	if err != nil {
		return Blend{}, fmt.Errorf("failed to map reservation: %w", err)
	}

	network, err := b.model.Predict(ctx, record)
	if err != nil {
		if errors.Is(err, model.ErrPreprocessingMismatch) {
			return Blend{}, fmt.Errorf("failed to preprocess reservation: %w", err)
		}
		b.logger.Warn("network inference failed, using heuristic-only scoring",
			"error", err,
			"tenant_id", r.TenantID(),
		)
		return heuristicOnly(heuristic, FallbackInferenceError), nil
	}

	// Blend: reliability = w * network + (1 - w) * heuristic
	blended := b.annWeight*network + (1-b.annWeight)*heuristic
	confidence := 0.5 + (1-math.Abs(network-heuristic))*0.4

	out := newBlend(blended, confidence)
	out.Source = valueobject.ScoreSourceBlended
	out.Heuristic = heuristic
	out.Network = round3(network)
	return out, nil
}

func heuristicOnly(heuristic float64, reason string) Blend {
	out := newBlend(heuristic, HeuristicOnlyConfidence)
	out.Source = valueobject.ScoreSourceHeuristic
	out.Fallback = reason
	out.Heuristic = heuristic
	return out
}

func newBlend(reliability, confidence float64) Blend {
	rel := decimal.NewFromFloat(min(1, max(0, reliability))).Round(3)
	return Blend{
		Reliability: rel.InexactFloat64(),
		NoShowRisk:  decimal.NewFromInt(1).Sub(rel).InexactFloat64(),
		Confidence:  round3(confidence),
	}
}

func round3(v float64) float64 {
	return decimal.NewFromFloat(v).Round(3).InexactFloat64()
}
