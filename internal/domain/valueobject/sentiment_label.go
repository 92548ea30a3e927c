package valueobject

import "fmt"

// Sentiment thresholds on the normalized [0,1] score.
const (
	SentimentPositiveThreshold = 0.65
	SentimentNegativeThreshold = 0.35
)

// SentimentLabel classifies the tone of free-text reservation notes.
type SentimentLabel struct {
	value string
	emoji string
}

var (
	SentimentPositive = SentimentLabel{value: "positive", emoji: "\U0001F7E2"}
	SentimentNeutral  = SentimentLabel{value: "neutral", emoji: "\U0001F7E1"}
	SentimentNegative = SentimentLabel{value: "negative", emoji: "\U0001F534"}
)

// SentimentLabelFromString reconstructs a label from its string representation.
func SentimentLabelFromString(s string) (SentimentLabel, error) {
	switch s {
	case "positive":
		return SentimentPositive, nil
	case "neutral":
		return SentimentNeutral, nil
	case "negative":
		return SentimentNegative, nil
	default:
		return SentimentLabel{}, fmt.Errorf("invalid sentiment label: %s", s)
	}
}

// SentimentLabelFromScore maps a normalized score to a label.
func SentimentLabelFromScore(score float64) SentimentLabel {
	switch {
	case score >= SentimentPositiveThreshold:
		return SentimentPositive
	case score <= SentimentNegativeThreshold:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// String returns the string representation.
func (s SentimentLabel) String() string {
	return s.value
}

// Emoji returns the colour-coded indicator for the label.
func (s SentimentLabel) Emoji() string {
	return s.emoji
}

// Equal checks equality with another SentimentLabel.
func (s SentimentLabel) Equal(other SentimentLabel) bool {
	return s.value == other.value
}

// ScoreSource records which engines produced a reliability score.
type ScoreSource string

const (
	ScoreSourceBlended   ScoreSource = "blended"
	ScoreSourceHeuristic ScoreSource = "heuristic"
)
