package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ErrNoAPIKey is returned when a client is requested without credentials
var ErrNoAPIKey = errors.New("API key is required")

// Chat roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn of a conversation
type ChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required"`
}

// ChatRequest is a conversation to continue
type ChatRequest struct {
	System    string
	History   []ChatMessage
	Message   string
	MaxTokens int
}

// Client is an abstraction over LLM providers
type Client interface {
	// GenerateJSON returns a JSON document for the prompt with code fences removed
	GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// Chat returns the assistant's reply to the last message of a conversation
	Chat(ctx context.Context, req ChatRequest) (string, error)
	// GetModel returns the model bound to a tier
	GetModel(tier ModelTier) string
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a client for the configured provider
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	return NewGeminiClient(ctx, config, apiKey)
}

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{client: client, config: config}, nil
}

// GenerateJSON generates JSON content using the specified model tier
func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	model, err := c.model(tier)
	if err != nil {
		return "", err
	}
	model.SetTemperature(defaultTemperature)
	model.ResponseMIMEType = "application/json"

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

// Chat continues a conversation on the standard tier
func (c *GeminiClient) Chat(ctx context.Context, req ChatRequest) (string, error) {
	if strings.TrimSpace(req.Message) == "" {
		return "", errors.New("chat message is empty")
	}

	model, err := c.model(TierStandard)
	if err != nil {
		return "", err
	}
	model.SetTemperature(chatTemperature)

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = c.config.ChatMaxTokens
	}
	if maxTokens > 0 {
		model.SetMaxOutputTokens(int32(maxTokens))
	}
	if req.System != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.System)}}
	}

	session := model.StartChat()
	for _, msg := range req.History {
		role := "user"
		if msg.Role == RoleAssistant {
			role = "model"
		}
		session.History = append(session.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := session.SendMessage(ctx, genai.Text(req.Message))
	if err != nil {
		return "", fmt.Errorf("failed to send chat message: %w", err)
	}
	return extractTextFromResponse(resp)
}

// GetModel returns the model name for a tier
func (c *GeminiClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

func (c *GeminiClient) model(tier ModelTier) (*genai.GenerativeModel, error) {
	name := c.config.GetModel(tier)
	if name == "" {
		return nil, fmt.Errorf("no model configured for tier %s", tier)
	}
	return c.client.GenerativeModel(name), nil
}

func (c *GeminiClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.config.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.config.Timeout)
}

// extractTextFromResponse joins the text parts of the first candidate
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}
	return strings.Join(parts, ""), nil
}
