package recommend

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-matcher/internal/matching"
	"github.com/jonathan/job-matcher/internal/types"
)

// fixedScores returns a score function that yields scores[i] for entry i
func fixedScores(scores []float64) scoreFunc {
	return func(_ context.Context, i int) (types.RankedResult, error) {
		return types.RankedResult{ID: fmt.Sprintf("e%d", i), Score: scores[i]}, nil
	}
}

func ids(rec *types.Recommendation) []string {
	out := make([]string, len(rec.Results))
	for i, r := range rec.Results {
		out[i] = r.ID
	}
	return out
}

func newTestPipeline() *Pipeline {
	return NewPipeline(matching.NewScorer(nil), WithWorkers(4))
}

func TestRank_TopK(t *testing.T) {
	rec, err := newTestPipeline().rank(context.Background(), 3, 2, Options{}, fixedScores([]float64{0.2, 0.9, 0.5}))
	require.NoError(t, err)

	assert.Equal(t, []string{"e1", "e2"}, ids(rec))
	assert.Equal(t, 1, rec.Results[0].Rank)
	assert.Equal(t, 2, rec.Results[1].Rank)
	assert.True(t, rec.Complete)
	assert.Equal(t, 3, rec.Scored)
}

func TestRank_TopKLargerThanPool(t *testing.T) {
	rec, err := newTestPipeline().rank(context.Background(), 2, 10, Options{}, fixedScores([]float64{0.3, 0.6}))
	require.NoError(t, err)

	assert.Equal(t, []string{"e1", "e0"}, ids(rec))
}

func TestRank_TiesKeepInputOrder(t *testing.T) {
	scores := []float64{0.5, 0.7, 0.5, 0.5, 0.7, 0.5}
	// later entries finish first
	score := func(_ context.Context, i int) (types.RankedResult, error) {
		time.Sleep(time.Duration(len(scores)-i) * time.Millisecond)
		return types.RankedResult{ID: fmt.Sprintf("e%d", i), Score: scores[i]}, nil
	}

	for run := 0; run < 5; run++ {
		rec, err := NewPipeline(nil, WithWorkers(len(scores))).rank(context.Background(), len(scores), 10, Options{}, score)
		require.NoError(t, err)
		assert.Equal(t, []string{"e1", "e4", "e0", "e2", "e3", "e5"}, ids(rec))
	}
}

func TestRank_SortedDescending(t *testing.T) {
	scores := []float64{0.1, 0.8, 0.3, 0.3, 0.95, 0, 0.6}
	rec, err := newTestPipeline().rank(context.Background(), len(scores), 10, Options{}, fixedScores(scores))
	require.NoError(t, err)

	for i := 1; i < len(rec.Results); i++ {
		assert.GreaterOrEqual(t, rec.Results[i-1].Score, rec.Results[i].Score)
	}
}

func TestRank_EmptyPool(t *testing.T) {
	rec, err := newTestPipeline().rank(context.Background(), 0, 10, Options{}, fixedScores(nil))
	require.NoError(t, err)

	assert.NotNil(t, rec.Results)
	assert.Empty(t, rec.Results)
	assert.True(t, rec.Complete)
}

func TestRank_AllFailed(t *testing.T) {
	boom := errors.New("scoring failed")
	score := func(context.Context, int) (types.RankedResult, error) {
		return types.RankedResult{}, boom
	}

	_, err := newTestPipeline().rank(context.Background(), 3, 10, Options{}, score)

	var pipeErr *PipelineError
	require.ErrorAs(t, err, &pipeErr)
	assert.Equal(t, 3, pipeErr.Attempted)
	assert.Equal(t, 3, pipeErr.Failed)
	assert.ErrorIs(t, err, boom)
}

func TestRank_PartialFailure(t *testing.T) {
	score := func(_ context.Context, i int) (types.RankedResult, error) {
		if i == 1 {
			return types.RankedResult{}, errors.New("bad entry")
		}
		return types.RankedResult{ID: fmt.Sprintf("e%d", i), Score: float64(i) / 10}, nil
	}

	rec, err := newTestPipeline().rank(context.Background(), 3, 10, Options{}, score)
	require.NoError(t, err)

	assert.Equal(t, []string{"e2", "e0"}, ids(rec))
	assert.Equal(t, 2, rec.Scored)
	assert.Equal(t, 1, rec.Failed)
	assert.True(t, rec.Complete)
}

func TestRank_MaxPool(t *testing.T) {
	rec, err := newTestPipeline().rank(context.Background(), 4, 10, Options{MaxPool: 2}, fixedScores([]float64{0.1, 0.2, 0.9, 0.8}))
	require.NoError(t, err)

	assert.Equal(t, []string{"e1", "e0"}, ids(rec))
	assert.Equal(t, 4, rec.PoolSize)
	assert.Equal(t, 2, rec.Considered)
	assert.Equal(t, 2, rec.Scored)
	assert.False(t, rec.Complete)
	assert.Contains(t, rec.Reason, "capped")
}

func TestRank_TimeoutReturnsPartialResult(t *testing.T) {
	score := func(ctx context.Context, i int) (types.RankedResult, error) {
		if i >= 2 {
			<-ctx.Done()
			return types.RankedResult{}, ctx.Err()
		}
		return types.RankedResult{ID: fmt.Sprintf("e%d", i), Score: 0.5}, nil
	}

	rec, err := NewPipeline(nil, WithWorkers(5)).rank(context.Background(), 5, 10, Options{Timeout: 50 * time.Millisecond}, score)
	require.NoError(t, err)

	assert.Equal(t, []string{"e0", "e1"}, ids(rec))
	assert.Equal(t, 2, rec.Scored)
	assert.Equal(t, 0, rec.Failed)
	assert.False(t, rec.Complete)
	assert.Contains(t, rec.Reason, "deadline")
}

func TestRank_TimeoutBeforeAnyScore(t *testing.T) {
	score := func(ctx context.Context, _ int) (types.RankedResult, error) {
		<-ctx.Done()
		return types.RankedResult{}, ctx.Err()
	}

	_, err := newTestPipeline().rank(context.Background(), 3, 10, Options{Timeout: 10 * time.Millisecond}, score)

	var pipeErr *PipelineError
	require.ErrorAs(t, err, &pipeErr)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRank_ParentCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestPipeline().rank(ctx, 3, 10, Options{}, fixedScores([]float64{1, 2, 3}))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOptions_Validate(t *testing.T) {
	var optErr *OptionsError
	p := newTestPipeline()

	_, err := p.RecommendJobs(context.Background(), types.CandidateProfile{}, nil, Options{TopK: -1})
	require.ErrorAs(t, err, &optErr)
	assert.Equal(t, "top_k", optErr.Field)

	_, err = p.RecommendCandidates(context.Background(), types.JobPosting{}, nil, Options{MaxPool: -1})
	require.ErrorAs(t, err, &optErr)

	_, err = p.RecommendCandidates(context.Background(), types.JobPosting{}, nil, Options{Timeout: -time.Second})
	require.ErrorAs(t, err, &optErr)
}

func TestOptions_DefaultTopK(t *testing.T) {
	assert.Equal(t, DefaultJobsTopK, Options{}.topK(DefaultJobsTopK))
	assert.Equal(t, 3, Options{TopK: 3}.topK(DefaultJobsTopK))
}

func TestJobText(t *testing.T) {
	job := types.JobPosting{Title: "Backend Engineer", Description: "Build APIs", RequiredSkills: []string{"go", "sql"}}
	assert.Equal(t, "Backend Engineer\nBuild APIs\ngo sql", JobText(job))
	assert.Equal(t, "", JobText(types.JobPosting{}))
}
