package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/job-matcher/internal/db"
	"github.com/jonathan/job-matcher/internal/embedding"
	"github.com/jonathan/job-matcher/internal/llm"
	"github.com/jonathan/job-matcher/internal/matching"
	"github.com/jonathan/job-matcher/internal/recommend"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrUnavailable indicates an optional backend (database, LLM) is not configured
type ErrUnavailable struct {
	Feature string
}

func (e *ErrUnavailable) Error() string {
	return e.Feature + " is not configured"
}

// UpstreamError wraps a failure reported by an external provider
type UpstreamError struct {
	Service string
	Err     error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Service, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		inputErr      *matching.InputError
		optionsErr    *recommend.OptionsError
		queryErr      *db.QueryError
		pipelineErr   *recommend.PipelineError
		providerErr   *embedding.ProviderError
		upstreamErr   *UpstreamError
		unavailable   *ErrUnavailable
	)
	// a PipelineError wraps the per-entry failures, so it is checked first
	switch {
	case errors.As(err, &pipelineErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &validationErr), errors.As(err, &inputErr),
		errors.As(err, &optionsErr), errors.As(err, &queryErr):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &providerErr), errors.As(err, &upstreamErr), errors.Is(err, llm.ErrNoAPIKey):
		return http.StatusBadGateway
	case errors.As(err, &unavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
