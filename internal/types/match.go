// Package types provides type definitions for structured data used throughout the job matcher.
//
//nolint:revive // types is a standard Go package name pattern
package types

// SignalName identifies one text signal inside a FeatureBundle
type SignalName string

// Signal names, also used as JSON keys and weight keys
const (
	SignalTFIDF     SignalName = "tfidf_similarity"
	SignalCount     SignalName = "count_similarity"
	SignalSkills    SignalName = "skill_match_ratio"
	SignalSentiment SignalName = "sentiment_compatibility"
)

// AllSignals lists the text signals in their canonical order
var AllSignals = []SignalName{SignalTFIDF, SignalCount, SignalSkills, SignalSentiment}

// Lexical sources for the tfidf_similarity signal
const (
	LexicalSourceTFIDF     = "tfidf"
	LexicalSourceEmbedding = "embedding"
)

// Weights maps each text signal to its ensemble weight
type Weights map[SignalName]float64

// FeatureBundle holds the independent similarity signals for one (resume, job) pair.
// Every value lies in [0, 1]. A bundle is never mutated once produced.
type FeatureBundle struct {
	TFIDFSimilarity        float64 `json:"tfidf_similarity"`
	CountSimilarity        float64 `json:"count_similarity"`
	SkillMatchRatio        float64 `json:"skill_match_ratio"`
	SentimentCompatibility float64 `json:"sentiment_compatibility"`

	// LexicalSource reports which strategy produced TFIDFSimilarity
	LexicalSource string   `json:"lexical_source"`
	MatchedSkills []string `json:"matched_skills"`
	MissingSkills []string `json:"missing_skills"`
	// Omitted lists signals that could not be computed and were left out of the ensemble
	Omitted []SignalName `json:"omitted,omitempty"`
	// Notes records signal-level degradations (fallbacks, defaults)
	Notes []string `json:"notes,omitempty"`
}

// Value returns the named signal and whether it was computed.
func (b FeatureBundle) Value(name SignalName) (float64, bool) {
	if b.IsOmitted(name) {
		return 0, false
	}
	switch name {
	case SignalTFIDF:
		return b.TFIDFSimilarity, true
	case SignalCount:
		return b.CountSimilarity, true
	case SignalSkills:
		return b.SkillMatchRatio, true
	case SignalSentiment:
		return b.SentimentCompatibility, true
	default:
		return 0, false
	}
}

// IsOmitted reports whether the named signal was left out.
func (b FeatureBundle) IsOmitted(name SignalName) bool {
	for _, o := range b.Omitted {
		if o == name {
			return true
		}
	}
	return false
}

// Adjustments are the out-of-text factors folded in by the ranking pipelines.
// Nil fields were not used for the score.
type Adjustments struct {
	ExperienceMatch *float64 `json:"experience_match,omitempty"`
	LocationMatch   *float64 `json:"location_match,omitempty"`
	ExperienceBonus *float64 `json:"experience_bonus,omitempty"`
	EducationBonus  *float64 `json:"education_bonus,omitempty"`
}

// MatchScore is a FeatureBundle plus its ensemble score and any pipeline adjustments
type MatchScore struct {
	Features      FeatureBundle `json:"matching_details"`
	EnsembleScore float64       `json:"ensemble_score"`
	Adjustments   Adjustments   `json:"adjustments"`
	// FinalScore is the pipeline score; equals EnsembleScore for single-pair scoring
	FinalScore float64 `json:"score"`
}

// Float64 returns a pointer to v, for populating Adjustments.
func Float64(v float64) *float64 {
	return &v
}
