package service

import (
	"github.com/shopspring/decimal"

	"github.com/bibbank/guestrisk/internal/domain/model"
)

// Bounds of the heuristic reliability score.
const (
	HeuristicBaseline = 0.65
	HeuristicMin      = 0.05
	HeuristicMax      = 0.98
)

// HeuristicScorer is a domain service that estimates guest reliability using
// additive rules over the reservation history.
type HeuristicScorer struct{}

// NewHeuristicScorer creates a new HeuristicScorer instance.
func NewHeuristicScorer() *HeuristicScorer {
	return &HeuristicScorer{}
}

// Score returns the reliability of a reservation in [HeuristicMin, HeuristicMax],
// rounded to three decimals. Every applicable rule stacks on a 0.65 baseline.
func (s *HeuristicScorer) Score(r *model.Reservation) float64 {
	score := HeuristicBaseline

	// Rule: Repeat guest.
	if r.IsRepeatGuest() {
		score += 0.10
	}

	// Rule: Completed visits.
	switch completions := r.PreviousCompletions(); {
	case completions >= 5:
		score += 0.12
	case completions >= 3:
		score += 0.08
	case completions >= 1:
		score += 0.03
	}

	// Rule: Cancellation history.
	switch cancellations := r.PreviousCancellations(); {
	case cancellations >= 5:
		score -= 0.45
	case cancellations >= 3:
		score -= 0.30
	case cancellations == 2:
		score -= 0.20
	case cancellations == 1:
		score -= 0.10
	}

	// Rule: Lead time.
	switch days := r.BookingAdvanceDays(); {
	case days >= 30:
		score -= 0.10
	case days >= 14:
		score -= 0.05
	case days == 0:
		score -= 0.03
	}

	// Rule: Spend per cover.
	switch spend := r.EstimatedSpendPerCover(); {
	case spend >= 150:
		score += 0.08
	case spend >= 80:
		score += 0.03
	case spend < 40:
		score -= 0.05
	}

	// Rule: Large parties.
	switch party := r.PartySize(); {
	case party >= 8:
		score -= 0.05
	case party >= 6:
		score -= 0.02
	}

	score = min(HeuristicMax, max(HeuristicMin, score))
	return decimal.NewFromFloat(score).Round(3).InexactFloat64()
}
