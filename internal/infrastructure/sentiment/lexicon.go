// Package sentiment scores the tone of free-text reservation notes.
package sentiment

import (
	"strings"
	"unicode"

	"github.com/bibbank/guestrisk/internal/domain/model"
)

// negationFlip scales a negated word's polarity.
const negationFlip = -0.5

// polarities maps lowercase words to a polarity in [-1,1].
var polarities = map[string]float64{
	"amazing":       0.6,
	"awesome":       1.0,
	"awful":         -1.0,
	"bad":           -0.7,
	"beautiful":     0.85,
	"best":          1.0,
	"better":        0.5,
	"bland":         -0.5,
	"broken":        -0.4,
	"cold":          -0.6,
	"delicious":     1.0,
	"dirty":         -0.6,
	"disappointed":  -0.75,
	"disappointing": -0.6,
	"enjoy":         0.4,
	"enjoyed":       0.5,
	"excellent":     1.0,
	"excited":       0.4,
	"fantastic":     0.4,
	"favorite":      0.5,
	"favourite":     0.5,
	"fine":          0.4,
	"friendly":      0.4,
	"good":          0.7,
	"great":         0.8,
	"happy":         0.8,
	"horrible":      -1.0,
	"late":          -0.3,
	"love":          0.5,
	"loved":         0.7,
	"lovely":        0.5,
	"nice":          0.6,
	"noisy":         -0.3,
	"outstanding":   0.5,
	"perfect":       1.0,
	"pleasant":      0.73,
	"poor":          -0.4,
	"quiet":         0.2,
	"rude":          -0.3,
	"sad":           -0.5,
	"slow":          -0.3,
	"special":       0.36,
	"terrible":      -1.0,
	"unhappy":       -0.6,
	"upset":         -0.4,
	"wonderful":     1.0,
	"worst":         -1.0,
	"wrong":         -0.5,
}

// intensifiers multiply the polarity of the word that follows them.
var intensifiers = map[string]float64{
	"extremely":  1.5,
	"really":     1.3,
	"so":         1.3,
	"super":      1.4,
	"too":        1.2,
	"truly":      1.3,
	"very":       1.3,
	"absolutely": 1.5,
}

var negations = map[string]bool{
	"not":     true,
	"never":   true,
	"no":      true,
	"isn't":   true,
	"wasn't":  true,
	"don't":   true,
	"didn't":  true,
	"aren't":  true,
	"weren't": true,
}

// LexiconAnalyzer implements port.SentimentAnalyzer with a word polarity
// lexicon. Polarity is the mean of the scored words, with the preceding
// intensifier and negation applied.
type LexiconAnalyzer struct {
	polarities   map[string]float64
	intensifiers map[string]float64
	negations    map[string]bool
}

// NewLexiconAnalyzer creates an analyzer with the built-in lexicon.
func NewLexiconAnalyzer() *LexiconAnalyzer {
	return &LexiconAnalyzer{
		polarities:   polarities,
		intensifiers: intensifiers,
		negations:    negations,
	}
}

// Analyze scores text. Empty text is neutral.
func (a *LexiconAnalyzer) Analyze(text string) model.Sentiment {
	if model.IsBlank(text) {
		return model.NeutralSentiment()
	}
	return model.SentimentFromPolarity(a.Polarity(text))
}

// Polarity returns the raw polarity of text in [-1,1]. Text with no scored
// words has polarity 0.
func (a *LexiconAnalyzer) Polarity(text string) float64 {
	tokens := tokenize(text)

	var sum float64
	var scored int
	for i, tok := range tokens {
		p, ok := a.polarities[tok]
		if !ok {
			continue
		}

		// Modifiers only reach back across the same sentence.
		j := i - 1
		if j >= 0 && tokens[j] != "" {
			if m, ok := a.intensifiers[tokens[j]]; ok {
				p *= m
				j--
			}
		}
		if j >= 0 && tokens[j] != "" && a.negations[tokens[j]] {
			p *= negationFlip
		}

		sum += min(1, max(-1, p))
		scored++
	}

	if scored == 0 {
		return 0
	}
	return min(1, max(-1, sum/float64(scored)))
}

// tokenize lowercases text and splits it into words. Sentence punctuation
// becomes an empty token so modifiers do not cross sentences.
func tokenize(text string) []string {
	var tokens []string
	var b strings.Builder

	flush := func() {
		if b.Len() > 0 {
			tokens = append(tokens, b.String())
			b.Reset()
		}
	}

	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || r == '\'':
			b.WriteRune(r)
		case r == '.' || r == '!' || r == '?' || r == ';':
			flush()
			tokens = append(tokens, "")
		default:
			flush()
		}
	}
	flush()
	return tokens
}
