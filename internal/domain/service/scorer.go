package service

import (
	"context"

	"github.com/bibbank/guestrisk/internal/domain/model"
)

// Scorer defines the interface for reliability scoring strategies.
// BlendedScorer (network + heuristic) implements this.
type Scorer interface {
	Score(ctx context.Context, r *model.Reservation) (Blend, error)
}
