// Package recommend ranks pools of jobs for a candidate and pools of candidates for a job.
package recommend

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/job-matcher/internal/matching"
	"github.com/jonathan/job-matcher/internal/parsing"
	"github.com/jonathan/job-matcher/internal/ranking"
	"github.com/jonathan/job-matcher/internal/types"
)

// Default result counts
const (
	DefaultJobsTopK       = 10
	DefaultCandidatesTopK = 20
)

// PairScorer computes the text signals of a resume and job pair
type PairScorer interface {
	Score(ctx context.Context, p matching.Pair) (types.FeatureBundle, error)
}

// Options bound a single recommendation call
type Options struct {
	// TopK is the number of results; zero selects the endpoint default
	TopK int `json:"top_k,omitempty" validate:"gte=0"`
	// MaxPool caps how many pool entries are scored; zero means no cap
	MaxPool int `json:"max_pool,omitempty" validate:"gte=0"`
	// Timeout caps elapsed scoring time; zero means no limit
	Timeout time.Duration `json:"timeout,omitempty" validate:"gte=0"`
}

func (o Options) validate() error {
	switch {
	case o.TopK < 0:
		return &OptionsError{Field: "top_k", Message: "must be positive"}
	case o.MaxPool < 0:
		return &OptionsError{Field: "max_pool", Message: "must not be negative"}
	case o.Timeout < 0:
		return &OptionsError{Field: "timeout", Message: "must not be negative"}
	}
	return nil
}

func (o Options) topK(fallback int) int {
	if o.TopK == 0 {
		return fallback
	}
	return o.TopK
}

// Pipeline scores pools on a bounded worker pool. It is safe for concurrent use.
type Pipeline struct {
	scorer  PairScorer
	weights types.Weights
	workers int
	logger  *zap.Logger
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithWorkers sets how many entries are scored concurrently
func WithWorkers(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(p *Pipeline) { p.logger = logger }
}

// NewPipeline creates a pipeline over scorer with the default ensemble weights
func NewPipeline(scorer PairScorer, opts ...Option) *Pipeline {
	p := &Pipeline{
		scorer:  scorer,
		weights: ranking.DefaultWeights(),
		workers: runtime.GOMAXPROCS(0),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// RecommendJobs ranks jobs for a candidate by
// 0.5*ensemble + 0.3*experience_match + 0.2*location_match
func (p *Pipeline) RecommendJobs(ctx context.Context, candidate types.CandidateProfile, jobs []types.JobPosting, opts Options) (*types.Recommendation, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	candidateYears := candidateExperience(candidate)

	return p.rank(ctx, len(jobs), opts.topK(DefaultJobsTopK), opts, func(ctx context.Context, i int) (types.RankedResult, error) {
		job := jobs[i]
		bundle, err := p.scorer.Score(ctx, matching.Pair{
			ResumeText:   candidate.ResumeText,
			JobText:      JobText(job),
			ResumeSkills: candidate.Skills,
			JobSkills:    job.RequiredSkills,
		})
		if err != nil {
			return types.RankedResult{}, err
		}

		ensemble := ranking.EnsembleScore(bundle, p.weights)
		experience := ranking.ExperienceMatch(candidateYears, requiredExperience(job))
		location := ranking.LocationMatch(candidate.Location, job.Location)
		match := types.MatchScore{
			Features:      bundle,
			EnsembleScore: ensemble,
			Adjustments: types.Adjustments{
				ExperienceMatch: types.Float64(experience),
				LocationMatch:   types.Float64(location),
			},
			FinalScore: ranking.JobRecommendationScore(ensemble, experience, location),
		}
		return types.RankedResult{
			ID:      job.ID,
			Name:    job.Title,
			Company: job.Company,
			Score:   match.FinalScore,
			Match:   match,
			Notes:   ranking.Explain(match),
		}, nil
	})
}

// RecommendCandidates ranks candidates for a job by
// 0.6*ensemble + 0.2*experience_bonus + 0.2*education_bonus
func (p *Pipeline) RecommendCandidates(ctx context.Context, job types.JobPosting, candidates []types.CandidateProfile, opts Options) (*types.Recommendation, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	jobText := JobText(job)

	return p.rank(ctx, len(candidates), opts.topK(DefaultCandidatesTopK), opts, func(ctx context.Context, i int) (types.RankedResult, error) {
		candidate := candidates[i]
		bundle, err := p.scorer.Score(ctx, matching.Pair{
			ResumeText:   candidate.ResumeText,
			JobText:      jobText,
			ResumeSkills: candidate.Skills,
			JobSkills:    job.RequiredSkills,
		})
		if err != nil {
			return types.RankedResult{}, err
		}

		ensemble := ranking.EnsembleScore(bundle, p.weights)
		expBonus := ranking.ExperienceBonus(candidateExperience(candidate))
		eduBonus := ranking.EducationBonus(candidate.EducationLevel)
		match := types.MatchScore{
			Features:      bundle,
			EnsembleScore: ensemble,
			Adjustments: types.Adjustments{
				ExperienceBonus: types.Float64(expBonus),
				EducationBonus:  types.Float64(eduBonus),
			},
			FinalScore: ranking.CandidateRecommendationScore(ensemble, expBonus, eduBonus),
		}
		return types.RankedResult{
			ID:    candidate.ID,
			Name:  candidate.Name,
			Score: match.FinalScore,
			Match: match,
			Notes: ranking.Explain(match),
		}, nil
	})
}

// JobText is the text a job is scored on: title, description and declared skills
func JobText(job types.JobPosting) string {
	parts := make([]string, 0, 3)
	for _, s := range []string{job.Title, job.Description, strings.Join(job.RequiredSkills, " ")} {
		if strings.TrimSpace(s) != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n")
}

func candidateExperience(c types.CandidateProfile) float64 {
	if c.ExperienceYears != nil {
		return *c.ExperienceYears
	}
	years, _ := parsing.ExtractExperienceYears(c.ResumeText)
	return years
}

func requiredExperience(j types.JobPosting) float64 {
	if j.RequiredExperience != nil {
		return *j.RequiredExperience
	}
	years, _ := parsing.ExtractExperienceYears(j.Description)
	return years
}

type scoreFunc func(ctx context.Context, i int) (types.RankedResult, error)

// rank scores entries [0, poolSize) and returns the topK by descending score.
// Results are stored by input index, so equal scores keep input order
// regardless of which worker finished first.
func (p *Pipeline) rank(ctx context.Context, poolSize, topK int, opts Options, score scoreFunc) (*types.Recommendation, error) {
	considered := poolSize
	if opts.MaxPool > 0 && considered > opts.MaxPool {
		considered = opts.MaxPool
	}

	rec := &types.Recommendation{
		Results:    []types.RankedResult{},
		PoolSize:   poolSize,
		Considered: considered,
		Complete:   true,
	}
	if considered < poolSize {
		rec.Complete = false
		rec.Reason = fmt.Sprintf("pool capped at %d of %d entries", considered, poolSize)
	}
	if considered == 0 {
		return rec, nil
	}

	runCtx, cancel := ctx, context.CancelFunc(func() {})
	if opts.Timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
	}
	defer cancel()

	results := make([]*types.RankedResult, considered)
	errs := make([]error, considered)

	var g errgroup.Group
	g.SetLimit(p.workers)
	for i := 0; i < considered; i++ {
		if runCtx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := runCtx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			r, err := score(runCtx, i)
			if err != nil {
				errs[i] = err
				return nil
			}
			results[i] = &r
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	deadlineHit := runCtx.Err() != nil

	var firstErr error
	for i := range results {
		switch {
		case results[i] != nil:
			rec.Scored++
		case errs[i] != nil && !(deadlineHit && errors.Is(errs[i], context.DeadlineExceeded)):
			rec.Failed++
			if firstErr == nil {
				firstErr = errs[i]
			}
			p.logger.Warn("pool entry could not be scored", zap.Int("index", i), zap.Error(errs[i]))
		}
	}

	if rec.Scored == 0 {
		cause := firstErr
		if cause == nil && deadlineHit {
			cause = context.DeadlineExceeded
		}
		return nil, &PipelineError{Attempted: considered, Failed: rec.Failed, Cause: cause}
	}

	if rec.Scored+rec.Failed < considered {
		rec.Complete = false
		reason := fmt.Sprintf("deadline exceeded after scoring %d of %d entries", rec.Scored, considered)
		if rec.Reason != "" {
			reason = rec.Reason + "; " + reason
		}
		rec.Reason = reason
	}

	ranked := make([]types.RankedResult, 0, rec.Scored)
	for _, r := range results {
		if r != nil {
			ranked = append(ranked, *r)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if topK < len(ranked) {
		ranked = ranked[:topK]
	}
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	rec.Results = ranked

	p.logger.Debug("ranked pool",
		zap.Int("pool_size", rec.PoolSize),
		zap.Int("scored", rec.Scored),
		zap.Int("failed", rec.Failed),
		zap.Bool("complete", rec.Complete))
	return rec, nil
}
