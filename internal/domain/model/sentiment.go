package model

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bibbank/guestrisk/internal/domain/valueobject"
)

// Sentiment is the tone of a piece of free text, normalized to [0,1].
type Sentiment struct {
	Label valueobject.SentimentLabel
	Score float64
}

// NeutralSentiment is returned for empty text.
func NeutralSentiment() Sentiment {
	return Sentiment{Score: 0.5, Label: valueobject.SentimentNeutral}
}

// SentimentFromPolarity normalizes a polarity in [-1,1] to a score rounded to
// three decimals and labels it.
func SentimentFromPolarity(polarity float64) Sentiment {
	polarity = min(1, max(-1, polarity))
	score := decimal.NewFromFloat((polarity + 1) / 2).Round(3).InexactFloat64()
	return Sentiment{Score: score, Label: valueobject.SentimentLabelFromScore(score)}
}

// IsBlank reports whether text carries nothing to analyse.
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}
