// Package llmtest provides an llm.Client double for tests.
package llmtest

import (
	"context"

	"github.com/jonathan/job-matcher/internal/llm"
)

// MockClient implements llm.Client with overridable behavior
type MockClient struct {
	GenerateJSONFunc func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
	ChatFunc         func(ctx context.Context, req llm.ChatRequest) (string, error)
	CloseFunc        func() error
}

// GenerateJSON returns GenerateJSONFunc's result or an empty array
func (m *MockClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	if m.GenerateJSONFunc != nil {
		return m.GenerateJSONFunc(ctx, prompt, tier)
	}
	return "[]", nil
}

// Chat returns ChatFunc's result or a canned reply
func (m *MockClient) Chat(ctx context.Context, req llm.ChatRequest) (string, error) {
	if m.ChatFunc != nil {
		return m.ChatFunc(ctx, req)
	}
	return "mock reply", nil
}

// GetModel returns a fixed model name
func (m *MockClient) GetModel(llm.ModelTier) string {
	return "mock-model"
}

// Close returns CloseFunc's result or nil
func (m *MockClient) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}
