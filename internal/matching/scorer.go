// Package matching computes the similarity signals between a resume and a job description.
package matching

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/job-matcher/internal/parsing"
	"github.com/jonathan/job-matcher/internal/sentiment"
	"github.com/jonathan/job-matcher/internal/similarity"
	"github.com/jonathan/job-matcher/internal/skills"
	"github.com/jonathan/job-matcher/internal/types"
)

// Scorer produces FeatureBundles. It holds no per-call state and is safe for concurrent use.
type Scorer struct {
	extractor *skills.Extractor
	lexical   similarity.Strategy
	logger    *zap.Logger
}

// Option configures a Scorer
type Option func(*Scorer)

// WithLexicalStrategy replaces the local tf-idf strategy for the tfidf_similarity signal
func WithLexicalStrategy(strategy similarity.Strategy) Option {
	return func(s *Scorer) { s.lexical = strategy }
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Scorer) { s.logger = logger }
}

// NewScorer creates a scorer; a nil extractor uses the default vocabulary
func NewScorer(extractor *skills.Extractor, opts ...Option) *Scorer {
	if extractor == nil {
		extractor = skills.NewExtractor(nil)
	}
	s := &Scorer{
		extractor: extractor,
		lexical:   similarity.TFIDFStrategy{},
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Pair is a resume and job with optionally declared skills, merged into the extracted sets
type Pair struct {
	ResumeText   string
	JobText      string
	ResumeSkills []string
	JobSkills    []string
}

// ScorePair computes the four signals for a resume and a job description
func (s *Scorer) ScorePair(ctx context.Context, resumeText, jobText string) (types.FeatureBundle, error) {
	return s.Score(ctx, Pair{ResumeText: resumeText, JobText: jobText})
}

// Score computes the four signals for a pair. Signals fail independently:
// a signal that cannot be computed is listed in Omitted and the rest are still returned.
// Only an empty pair or a cancelled context is an error.
func (s *Scorer) Score(ctx context.Context, p Pair) (types.FeatureBundle, error) {
	if strings.TrimSpace(p.ResumeText) == "" && strings.TrimSpace(p.JobText) == "" {
		return types.FeatureBundle{}, &InputError{Message: "resume and job text are both empty"}
	}

	var b types.FeatureBundle
	resume := s.plainText(p.ResumeText, "resume", &b)
	job := s.plainText(p.JobText, "job", &b)

	docs := similarity.Documents{
		Resume:           resume,
		Job:              job,
		ResumeNormalized: parsing.Normalize(resume),
		JobNormalized:    parsing.Normalize(job),
	}

	s.scoreLexical(ctx, docs, &b)
	b.CountSimilarity = similarity.Count(docs.ResumeNormalized, docs.JobNormalized)
	s.scoreSkills(ctx, p, resume, job, &b)
	b.SentimentCompatibility = sentiment.Compatibility(resume, job)

	if err := ctx.Err(); err != nil {
		return types.FeatureBundle{}, err
	}
	return b, nil
}

// plainText strips markup, keeping the raw text if the markup is unreadable
func (s *Scorer) plainText(text, side string, b *types.FeatureBundle) string {
	plain, err := parsing.StripHTML(text)
	if err != nil {
		b.Notes = append(b.Notes, fmt.Sprintf("%s markup could not be parsed, scored as plain text", side))
		return text
	}
	return plain
}

func (s *Scorer) scoreLexical(ctx context.Context, docs similarity.Documents, b *types.FeatureBundle) {
	if docs.ResumeNormalized == "" || docs.JobNormalized == "" {
		b.TFIDFSimilarity = 0
		b.LexicalSource = types.LexicalSourceTFIDF
		return
	}

	res, err := s.lexical.Similarity(ctx, docs)
	if err != nil {
		s.logger.Warn("lexical similarity unavailable", zap.Error(err))
		b.Omitted = append(b.Omitted, types.SignalTFIDF)
		b.Notes = append(b.Notes, "lexical similarity unavailable: "+err.Error())
		return
	}
	if res.Degraded != nil {
		b.Notes = append(b.Notes, "lexical similarity fell back to "+res.Source+": "+res.Degraded.Error())
	}
	b.TFIDFSimilarity = res.Value
	b.LexicalSource = res.Source
}

func (s *Scorer) scoreSkills(ctx context.Context, p Pair, resume, job string, b *types.FeatureBundle) {
	resumeSkills, err := s.extractor.Extract(ctx, resume)
	if err != nil {
		b.Notes = append(b.Notes, "resume entity recognition unavailable, vocabulary skills only")
	}
	resumeSkills.Union(s.extractor.Canonicalize(p.ResumeSkills))

	jobSkills, err := s.extractor.Extract(ctx, job)
	if err != nil {
		b.Notes = append(b.Notes, "job entity recognition unavailable, vocabulary skills only")
	}
	jobSkills.Union(s.extractor.Canonicalize(p.JobSkills))

	matched := jobSkills.Intersect(resumeSkills)
	b.MatchedSkills = matched.Sorted()
	b.MissingSkills = jobSkills.Difference(resumeSkills).Sorted()
	if jobSkills.Len() > 0 {
		b.SkillMatchRatio = float64(matched.Len()) / float64(jobSkills.Len())
	}
}
