// Package ranking combines similarity signals into ensemble scores and applies the
// experience, location and education adjustments used by the recommendation pipelines.
package ranking

import (
	"fmt"
	"math"

	"github.com/jonathan/job-matcher/internal/types"
)

// Default weights for the text signals
const (
	tfidfWeight     = 0.3
	countWeight     = 0.2
	skillWeight     = 0.4
	sentimentWeight = 0.1
)

// Job recommendation blend
const (
	jobEnsembleWeight   = 0.5
	jobExperienceWeight = 0.3
	jobLocationWeight   = 0.2
)

// Candidate recommendation blend
const (
	candidateEnsembleWeight   = 0.6
	candidateExperienceWeight = 0.2
	candidateEducationWeight  = 0.2
)

// weightTolerance is the slack allowed when checking that weights sum to one
const weightTolerance = 1e-9

// DefaultWeights returns a fresh copy of the default text signal weights
func DefaultWeights() types.Weights {
	return types.Weights{
		types.SignalTFIDF:     tfidfWeight,
		types.SignalCount:     countWeight,
		types.SignalSkills:    skillWeight,
		types.SignalSentiment: sentimentWeight,
	}
}

// ValidateWeights checks that every signal has a non-negative weight and that they sum to one
func ValidateWeights(w types.Weights) error {
	total := 0.0
	for _, name := range types.AllSignals {
		v, ok := w[name]
		if !ok {
			return fmt.Errorf("missing weight for %s", name)
		}
		if v < 0 || math.IsNaN(v) {
			return fmt.Errorf("weight for %s must be non-negative, got %v", name, v)
		}
		total += v
	}
	if len(w) != len(types.AllSignals) {
		return fmt.Errorf("unknown signals in weights: expected %d entries, got %d", len(types.AllSignals), len(w))
	}
	if math.Abs(total-1) > weightTolerance {
		return fmt.Errorf("weights must sum to 1, got %v", total)
	}
	return nil
}

// EnsembleScore is the weighted sum of the bundle's signals. Omitted signals are
// dropped and the remaining weights scaled by total/present so the score stays in [0, 1].
func EnsembleScore(b types.FeatureBundle, w types.Weights) float64 {
	var total, present, sum float64
	for _, name := range types.AllSignals {
		weight := w[name]
		total += weight
		v, ok := b.Value(name)
		if !ok {
			continue
		}
		present += weight
		sum += weight * v
	}
	if present == 0 {
		return 0
	}
	return clamp01(sum * total / present)
}

// JobRecommendationScore blends the ensemble with experience and location fit
func JobRecommendationScore(ensemble, experienceMatch, locationMatch float64) float64 {
	return clamp01(jobEnsembleWeight*ensemble +
		jobExperienceWeight*experienceMatch +
		jobLocationWeight*locationMatch)
}

// CandidateRecommendationScore blends the ensemble with experience and education bonuses
func CandidateRecommendationScore(ensemble, experienceBonus, educationBonus float64) float64 {
	return clamp01(candidateEnsembleWeight*ensemble +
		candidateExperienceWeight*experienceBonus +
		candidateEducationWeight*educationBonus)
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
