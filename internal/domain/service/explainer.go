package service

import (
	"fmt"
	"strings"

	"github.com/bibbank/guestrisk/internal/domain/model"
)

// MaxExplanationFactors is the number of factors surfaced in an explanation.
const MaxExplanationFactors = 3

// DefaultExplanation is used when no factor applies.
const DefaultExplanation = "Standard profile"

const explanationSeparator = " + "

// Explain builds a short human-readable reason for a prediction. Factors are
// evaluated in a fixed order (lead time, history, guest type, spend, channel)
// and only the first MaxExplanationFactors are kept.
func Explain(r *model.Reservation) string {
	factors := make([]string, 0, 8)

	switch days := r.BookingAdvanceDays(); {
	case days <= 1:
		factors = append(factors, "Same-day booking")
	case days <= 3:
		factors = append(factors, "Short lead time")
	case days >= 14:
		factors = append(factors, "Long advance booking")
	}

	switch n := r.PreviousCancellations(); {
	case n >= 3:
		factors = append(factors, fmt.Sprintf("High cancel history (%dx)", n))
	case n >= 1:
		factors = append(factors, fmt.Sprintf("Past cancellation (%dx)", n))
	}

	switch n := r.PreviousCompletions(); {
	case n >= 5:
		factors = append(factors, fmt.Sprintf("Strong visit history (%dx)", n))
	case n >= 2:
		factors = append(factors, fmt.Sprintf("Return visitor (%dx)", n))
	}

	if r.IsRepeatGuest() {
		factors = append(factors, "Repeat guest")
	}

	switch spend := r.EstimatedSpendPerCover(); {
	case spend >= HighSpendThreshold:
		factors = append(factors, "High spend")
	case spend < 40:
		factors = append(factors, "Low spend")
	}

	switch strings.ToLower(strings.TrimSpace(r.BookingChannel())) {
	case "walk-in":
		factors = append(factors, "Walk-in")
	case "corporate":
		factors = append(factors, "Corporate booking")
	}

	if len(factors) == 0 {
		return DefaultExplanation
	}
	if len(factors) > MaxExplanationFactors {
		factors = factors[:MaxExplanationFactors]
	}
	return strings.Join(factors, explanationSeparator)
}
