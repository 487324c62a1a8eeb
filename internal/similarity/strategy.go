package similarity

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/job-matcher/internal/types"
)

// Documents is a resume and job pair in both raw and normalized form
type Documents struct {
	Resume           string
	Job              string
	ResumeNormalized string
	JobNormalized    string
}

// Result is a lexical similarity and the source that produced it
type Result struct {
	Value  float64
	Source string
	// Degraded holds the primary failure when a fallback produced the value
	Degraded error
}

// Strategy computes the tf-idf signal of a pair
type Strategy interface {
	Similarity(ctx context.Context, docs Documents) (Result, error)
}

// TFIDFStrategy is the local tf-idf vectorizer. It never fails.
type TFIDFStrategy struct{}

// Similarity scores the normalized texts
func (TFIDFStrategy) Similarity(_ context.Context, docs Documents) (Result, error) {
	return Result{Value: TFIDF(docs.ResumeNormalized, docs.JobNormalized), Source: types.LexicalSourceTFIDF}, nil
}

// Embedder turns texts into dense vectors, one per input in order
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}

// EmbeddingStrategy scores the raw texts by embedding cosine
type EmbeddingStrategy struct {
	Embedder Embedder
}

// ErrEmptyDocument is returned when a side has no text to embed
var ErrEmptyDocument = errors.New("document is empty")

// Similarity embeds both texts and returns their cosine clamped to [0, 1]
func (s EmbeddingStrategy) Similarity(ctx context.Context, docs Documents) (Result, error) {
	if docs.Resume == "" || docs.Job == "" {
		return Result{Source: types.LexicalSourceEmbedding}, ErrEmptyDocument
	}

	vectors, err := s.Embedder.Embed(ctx, []string{docs.Resume, docs.Job})
	if err != nil {
		return Result{}, err
	}
	if len(vectors) != 2 {
		return Result{}, fmt.Errorf("embedder returned %d vectors for 2 texts", len(vectors))
	}
	return Result{Value: Cosine(vectors[0], vectors[1]), Source: types.LexicalSourceEmbedding}, nil
}

// FallbackStrategy tries Primary and, on error, Secondary. A nil Secondary
// passes the primary error through so the caller can omit the signal.
type FallbackStrategy struct {
	Primary   Strategy
	Secondary Strategy
	Logger    *zap.Logger
}

// Similarity returns the first successful result
func (s FallbackStrategy) Similarity(ctx context.Context, docs Documents) (Result, error) {
	res, err := s.Primary.Similarity(ctx, docs)
	if err == nil {
		return res, nil
	}
	if s.Secondary == nil || ctx.Err() != nil {
		return Result{}, err
	}

	if s.Logger != nil {
		s.Logger.Warn("lexical similarity provider failed, falling back", zap.Error(err))
	}
	res, secondaryErr := s.Secondary.Similarity(ctx, docs)
	if secondaryErr != nil {
		return Result{}, secondaryErr
	}
	res.Degraded = err
	return res, nil
}
