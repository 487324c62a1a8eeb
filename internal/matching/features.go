package matching

import (
	"context"

	"github.com/jonathan/job-matcher/internal/parsing"
	"github.com/jonathan/job-matcher/internal/sentiment"
	"github.com/jonathan/job-matcher/internal/types"
)

// Features describes a single document
type Features struct {
	parsing.TextStats
	Sentiment  sentiment.Scores `json:"sentiment"`
	Skills     types.SkillSet   `json:"skills"`
	SkillCount int              `json:"skill_count"`
	Notes      []string         `json:"notes,omitempty"`
}

// Features extracts surface statistics, sentiment and skills from text
func (s *Scorer) Features(ctx context.Context, text string) (Features, error) {
	var b types.FeatureBundle
	plain := s.plainText(text, "document", &b)

	skillSet, err := s.extractor.Extract(ctx, plain)
	if err != nil {
		b.Notes = append(b.Notes, "entity recognition unavailable, vocabulary skills only")
	}
	if err := ctx.Err(); err != nil {
		return Features{}, err
	}

	return Features{
		TextStats:  parsing.Stats(plain),
		Sentiment:  sentiment.Analyze(plain),
		Skills:     skillSet,
		SkillCount: skillSet.Len(),
		Notes:      b.Notes,
	}, nil
}
