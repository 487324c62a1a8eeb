// Package schemas validates CLI input files against the embedded JSON Schemas.
package schemas

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	files "github.com/jonathan/job-matcher/schemas"
)

// Kind names a document shape
type Kind string

// Document kinds, one per schema file
const (
	CandidateProfile Kind = "candidate_profile"
	JobPosting       Kind = "job_posting"
	JobPool          Kind = "job_pool"
	CandidatePool    Kind = "candidate_pool"
)

// dependencies lists the schemas a kind references by URL
var dependencies = map[Kind][]Kind{
	JobPool:       {JobPosting},
	CandidatePool: {CandidateProfile},
}

func (k Kind) file() string {
	return string(k) + ".schema.json"
}

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Kind   Kind
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s validation failed:\n", ve.Kind)
	for i, err := range ve.Errors {
		fmt.Fprintf(&sb, "  %d. %s: %s\n", i+1, err.Field, err.Message)
	}
	return sb.String()
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Kind, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

var (
	compiledMu sync.Mutex
	compiled   = map[Kind]*gojsonschema.Schema{}
)

// schemaFor compiles a kind once, with its dependencies registered under their URLs
func schemaFor(kind Kind) (*gojsonschema.Schema, error) {
	compiledMu.Lock()
	defer compiledMu.Unlock()
	if s, ok := compiled[kind]; ok {
		return s, nil
	}

	root, err := files.FS.ReadFile(kind.file())
	if err != nil {
		return nil, &SchemaLoadError{Kind: kind, Message: "unknown schema", Cause: err}
	}

	loader := gojsonschema.NewSchemaLoader()
	loader.Draft = gojsonschema.Draft7
	for _, dep := range dependencies[kind] {
		data, err := files.FS.ReadFile(dep.file())
		if err != nil {
			return nil, &SchemaLoadError{Kind: dep, Message: "missing dependency", Cause: err}
		}
		if err := loader.AddSchema(files.BaseURL+dep.file(), gojsonschema.NewBytesLoader(data)); err != nil {
			return nil, &SchemaLoadError{Kind: dep, Message: "invalid dependency", Cause: err}
		}
	}

	s, err := loader.Compile(gojsonschema.NewBytesLoader(root))
	if err != nil {
		return nil, &SchemaLoadError{Kind: kind, Message: "failed to compile", Cause: err}
	}
	compiled[kind] = s
	return s, nil
}

// Validate checks a JSON document against the schema for kind
func Validate(kind Kind, data []byte) error {
	s, err := schemaFor(kind)
	if err != nil {
		return err
	}

	result, err := s.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("failed to read %s document: %w", kind, err)
	}
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Kind:   kind,
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}

// ValidateFile reads path and validates it, returning the raw bytes for decoding
func ValidateFile(kind Kind, path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := Validate(kind, data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}
