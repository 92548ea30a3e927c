package sentiment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bibbank/guestrisk/internal/domain/valueobject"
	"github.com/bibbank/guestrisk/internal/infrastructure/sentiment"
)

func TestLexiconAnalyzer_Analyze(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantLabel valueobject.SentimentLabel
		wantScore float64
	}{
		{
			name:      "empty text is neutral",
			text:      "",
			wantLabel: valueobject.SentimentNeutral,
			wantScore: 0.5,
		},
		{
			name:      "whitespace is neutral",
			text:      "   ",
			wantLabel: valueobject.SentimentNeutral,
			wantScore: 0.5,
		},
		{
			name:      "no scored words is neutral",
			text:      "Table for two at the window.",
			wantLabel: valueobject.SentimentNeutral,
			wantScore: 0.5,
		},
		{
			name:      "complaint is negative",
			text:      "Last visit was terrible. Waiters were slow. Giving one more chance.",
			wantLabel: valueobject.SentimentNegative,
			wantScore: 0.175,
		},
		{
			name:      "praise is positive",
			text:      "The food was excellent and the staff were great",
			wantLabel: valueobject.SentimentPositive,
			wantScore: 0.95,
		},
		{
			name:      "negation softens and flips",
			text:      "not good",
			wantLabel: valueobject.SentimentNegative,
			wantScore: 0.325,
		},
	}

	a := sentiment.NewLexiconAnalyzer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.Analyze(tt.text)
			assert.True(t, tt.wantLabel.Equal(got.Label), "expected %s, got %s", tt.wantLabel, got.Label)
			assert.InDelta(t, tt.wantScore, got.Score, 0.0005)
		})
	}
}

func TestLexiconAnalyzer_Polarity(t *testing.T) {
	a := sentiment.NewLexiconAnalyzer()

	assert.InDelta(t, 0.0, a.Polarity("reservation at eight"), 1e-9)
	assert.InDelta(t, -0.65, a.Polarity("terrible and slow"), 1e-9)
	assert.InDelta(t, 1.0, a.Polarity("very excellent"), 1e-9, "intensified polarity is clamped")
	assert.InDelta(t, 0.91, a.Polarity("very good"), 1e-9)
	assert.InDelta(t, -0.35, a.Polarity("not good"), 1e-9)
}

func TestLexiconAnalyzer_ModifiersStopAtSentenceEnd(t *testing.T) {
	a := sentiment.NewLexiconAnalyzer()
	assert.InDelta(t, 0.7, a.Polarity("Not today. Good service"), 1e-9)
}
