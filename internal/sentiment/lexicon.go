// Package sentiment turns raw headlines into one time-decayed, source-weighted
// sentiment score.
package sentiment

import (
	"strings"

	"github.com/jonreiter/govader"
)

// LexiconScorer scores a headline with the VADER lexicon. The compound
// score is already normalized to [-1, 1].
type LexiconScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewLexiconScorer() *LexiconScorer {
	return &LexiconScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Compound returns the VADER compound polarity for the text, zero for
// empty input.
func (s *LexiconScorer) Compound(text string) float64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}
	return clamp(s.analyzer.PolarityScores(text).Compound, -1, 1)
}
