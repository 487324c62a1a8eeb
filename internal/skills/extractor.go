package skills

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/jonathan/job-matcher/internal/llm"
	"github.com/jonathan/job-matcher/internal/prompts"
	"github.com/jonathan/job-matcher/internal/types"
)

// Entity labels kept as skills
const (
	LabelOrg     = "ORG"
	LabelProduct = "PRODUCT"
)

// maxEntityPromptChars bounds the text sent for entity recognition
const maxEntityPromptChars = 8000

// Entity is a named entity found in text
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// EntityRecognizer finds organization and product names in text
type EntityRecognizer interface {
	Recognize(ctx context.Context, text string) ([]Entity, error)
}

// EntityRecognitionError reports a recognizer failure. The vocabulary skills
// returned alongside it are still valid.
type EntityRecognitionError struct {
	Cause error
}

func (e *EntityRecognitionError) Error() string {
	return fmt.Sprintf("entity recognition failed: %v", e.Cause)
}

func (e *EntityRecognitionError) Unwrap() error {
	return e.Cause
}

// Extractor turns text into a skill set
type Extractor struct {
	vocab  *Vocabulary
	ner    EntityRecognizer
	logger *zap.Logger
}

// Option configures an Extractor
type Option func(*Extractor)

// WithEntityRecognizer adds organization and product entities to extracted skills
func WithEntityRecognizer(r EntityRecognizer) Option {
	return func(e *Extractor) { e.ner = r }
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(e *Extractor) { e.logger = logger }
}

// NewExtractor creates an extractor over vocab; nil selects the default vocabulary
func NewExtractor(vocab *Vocabulary, opts ...Option) *Extractor {
	if vocab == nil {
		vocab = DefaultVocabulary()
	}
	e := &Extractor{vocab: vocab, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Vocabulary returns the extractor's vocabulary
func (e *Extractor) Vocabulary() *Vocabulary {
	return e.vocab
}

// Extract returns the vocabulary skills in text plus any recognized organization
// and product entities. The set is always usable; a non-nil error only means
// entity recognition failed and the set holds vocabulary matches alone.
func (e *Extractor) Extract(ctx context.Context, text string) (types.SkillSet, error) {
	set := types.NewSkillSet(e.vocab.Match(text)...)
	if e.ner == nil || strings.TrimSpace(text) == "" {
		return set, nil
	}

	entities, err := e.ner.Recognize(ctx, text)
	if err != nil {
		e.logger.Warn("entity recognition failed, using vocabulary matches only", zap.Error(err))
		return set, &EntityRecognitionError{Cause: err}
	}
	for _, ent := range entities {
		if ent.Label != LabelOrg && ent.Label != LabelProduct {
			continue
		}
		set.Add(e.vocab.Canonical(ent.Text))
	}
	return set, nil
}

// Canonicalize maps declared skills onto vocabulary names
func (e *Extractor) Canonicalize(skills []string) types.SkillSet {
	set := make(types.SkillSet, len(skills))
	for _, s := range skills {
		set.Add(e.vocab.Canonical(s))
	}
	return set
}

// LLMRecognizer recognizes entities with a language model
type LLMRecognizer struct {
	client llm.Client
}

// NewLLMRecognizer creates a recognizer backed by client
func NewLLMRecognizer(client llm.Client) *LLMRecognizer {
	return &LLMRecognizer{client: client}
}

// Recognize asks the model for ORG and PRODUCT entities
func (r *LLMRecognizer) Recognize(ctx context.Context, text string) ([]Entity, error) {
	response, err := r.client.GenerateJSON(ctx, buildEntityPrompt(text), llm.TierLite)
	if err != nil {
		return nil, fmt.Errorf("LLM call failed: %w", err)
	}
	return parseEntityResponse(response)
}

func buildEntityPrompt(text string) string {
	text = truncateBytes(text, maxEntityPromptChars)
	system := prompts.MustGet(prompts.SkillsFile, "entity-recognition-system")
	user := prompts.Format(prompts.MustGet(prompts.SkillsFile, "entity-recognition-user"), map[string]string{
		"Text": text,
	})
	return system + "\n\n" + user
}

// truncateBytes cuts s to at most n bytes without splitting a rune
func truncateBytes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func parseEntityResponse(response string) ([]Entity, error) {
	raw := llm.ExtractJSONArray(response)
	if raw == "" {
		return nil, fmt.Errorf("no valid JSON array found in response")
	}

	var entities []Entity
	if err := json.Unmarshal([]byte(raw), &entities); err != nil {
		return nil, fmt.Errorf("JSON parse error: %w", err)
	}

	out := entities[:0]
	for _, ent := range entities {
		ent.Text = strings.TrimSpace(ent.Text)
		ent.Label = strings.ToUpper(strings.TrimSpace(ent.Label))
		if len(ent.Text) < 2 {
			continue
		}
		out = append(out, ent)
	}
	return out, nil
}
