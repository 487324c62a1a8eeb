// Package sentiment scores the tone of resume and job text with VADER.
package sentiment

import (
	"math"
	"strings"
	"sync"

	"github.com/jonreiter/govader"
)

// analyzer loads the VADER lexicon once; it is read-only afterwards
var analyzer = sync.OnceValue(govader.NewSentimentIntensityAnalyzer)

// Scores are polarity measurements of a text
type Scores struct {
	// Compound is the normalized overall polarity in [-1, 1]
	Compound float64 `json:"compound"`
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
}

// Analyze scores text. Empty or sentiment-free text has a compound of 0.
func Analyze(text string) Scores {
	if strings.TrimSpace(text) == "" {
		return Scores{}
	}
	s := analyzer().PolarityScores(text)
	return Scores{
		Compound: s.Compound,
		Positive: s.Positive,
		Negative: s.Negative,
		Neutral:  s.Neutral,
	}
}

// Compatibility is 1 - |compound(a) - compound(b)| / 2, in [0, 1]
func Compatibility(a, b string) float64 {
	return CompoundCompatibility(Analyze(a).Compound, Analyze(b).Compound)
}

// CompoundCompatibility compares two compound scores
func CompoundCompatibility(a, b float64) float64 {
	c := 1 - math.Abs(a-b)/2
	return math.Max(0, math.Min(1, c))
}
