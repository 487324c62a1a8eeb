// Package skills extracts skill sets from free text using a fixed vocabulary plus optional entity recognition.
package skills

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Term is a vocabulary entry: a canonical skill name and the phrases that denote it
type Term struct {
	Name     string   `yaml:"name"`
	Patterns []string `yaml:"patterns,omitempty"`
}

type compiledTerm struct {
	name string
	re   *regexp.Regexp
}

// Vocabulary matches skill phrases on word boundaries, case-insensitively
type Vocabulary struct {
	terms   []compiledTerm
	aliases map[string]string
}

// ConfigurationError is returned for an unusable vocabulary definition
type ConfigurationError struct {
	Message string
	Cause   error
}

func (e *ConfigurationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("vocabulary configuration error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("vocabulary configuration error: %s", e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// DefaultTerms is the built-in technology vocabulary
var DefaultTerms = []Term{
	{Name: "python"},
	{Name: "java"},
	{Name: "javascript", Patterns: []string{"javascript", "js"}},
	{Name: "typescript"},
	{Name: "go", Patterns: []string{"golang", "go lang"}},
	{Name: "react", Patterns: []string{"react", "reactjs", "react.js"}},
	{Name: "angular"},
	{Name: "vue", Patterns: []string{"vue", "vuejs", "vue.js"}},
	{Name: "node.js", Patterns: []string{"node.js", "nodejs"}},
	{Name: "sql"},
	{Name: "mongodb", Patterns: []string{"mongodb", "mongo"}},
	{Name: "postgresql", Patterns: []string{"postgresql", "postgres"}},
	{Name: "mysql"},
	{Name: "redis"},
	{Name: "docker"},
	{Name: "kubernetes", Patterns: []string{"kubernetes", "k8s"}},
	{Name: "aws", Patterns: []string{"aws", "amazon web services"}},
	{Name: "azure"},
	{Name: "gcp", Patterns: []string{"gcp", "google cloud"}},
	{Name: "machine learning"},
	{Name: "ai", Patterns: []string{"ai", "artificial intelligence"}},
	{Name: "deep learning"},
	{Name: "tensorflow"},
	{Name: "pytorch"},
	{Name: "scikit-learn", Patterns: []string{"scikit-learn", "sklearn"}},
	{Name: "pandas"},
	{Name: "numpy"},
	{Name: "matplotlib"},
	{Name: "git"},
	{Name: "jenkins"},
	{Name: "ci/cd", Patterns: []string{"ci/cd", "cicd", "ci cd"}},
	{Name: "rest api", Patterns: []string{"rest api", "rest apis", "restful api", "restful apis"}},
	{Name: "graphql"},
	{Name: "microservices", Patterns: []string{"microservices", "microservice"}},
	{Name: "agile"},
	{Name: "scrum"},
	{Name: "kanban"},
	{Name: "jira"},
	{Name: "confluence"},
	{Name: "figma"},
	{Name: "sketch"},
}

var defaultVocabulary = MustVocabulary(DefaultTerms)

// DefaultVocabulary returns the built-in vocabulary
func DefaultVocabulary() *Vocabulary {
	return defaultVocabulary
}

// NewVocabulary compiles terms into a matcher
func NewVocabulary(terms []Term) (*Vocabulary, error) {
	if len(terms) == 0 {
		return nil, &ConfigurationError{Message: "vocabulary has no terms"}
	}

	v := &Vocabulary{aliases: make(map[string]string)}
	seen := make(map[string]bool, len(terms))
	for i, t := range terms {
		name := normalizePhrase(t.Name)
		if name == "" {
			return nil, &ConfigurationError{Message: fmt.Sprintf("term %d has no name", i)}
		}
		if seen[name] {
			return nil, &ConfigurationError{Message: fmt.Sprintf("duplicate term %q", name)}
		}
		seen[name] = true

		patterns := t.Patterns
		if len(patterns) == 0 {
			patterns = []string{name}
		}
		alternatives := make([]string, 0, len(patterns))
		for _, p := range patterns {
			p = normalizePhrase(p)
			if p == "" {
				continue
			}
			alternatives = append(alternatives, regexp.QuoteMeta(p))
			v.aliases[p] = name
		}
		if len(alternatives) == 0 {
			return nil, &ConfigurationError{Message: fmt.Sprintf("term %q has only empty patterns", name)}
		}
		v.aliases[name] = name

		// a leading dot is not a boundary, so node.js does not also match js
		re, err := regexp.Compile(`(?:^|[^a-z0-9.])(?:` + strings.Join(alternatives, "|") + `)(?:[^a-z0-9]|$)`)
		if err != nil {
			return nil, &ConfigurationError{Message: fmt.Sprintf("term %q", name), Cause: err}
		}
		v.terms = append(v.terms, compiledTerm{name: name, re: re})
	}
	return v, nil
}

// MustVocabulary is NewVocabulary that panics on error
func MustVocabulary(terms []Term) *Vocabulary {
	v, err := NewVocabulary(terms)
	if err != nil {
		panic(err)
	}
	return v
}

type vocabularyFile struct {
	Skills []Term `yaml:"skills"`
}

// LoadVocabulary reads a YAML vocabulary file of the form
//
//	skills:
//	  - name: go
//	    patterns: [golang, go lang]
func LoadVocabulary(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigurationError{Message: "failed to read " + path, Cause: err}
	}

	var file vocabularyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, &ConfigurationError{Message: "failed to parse " + path, Cause: err}
	}
	return NewVocabulary(file.Skills)
}

// Match returns the vocabulary skills mentioned in text
func (v *Vocabulary) Match(text string) []string {
	text = normalizePhrase(text)
	if text == "" {
		return nil
	}

	var found []string
	for _, t := range v.terms {
		if t.re.MatchString(text) {
			found = append(found, t.name)
		}
	}
	return found
}

// Canonical maps a skill phrase to its vocabulary name. Phrases outside the
// vocabulary are returned lowercased and trimmed.
func (v *Vocabulary) Canonical(skill string) string {
	phrase := normalizePhrase(skill)
	if name, ok := v.aliases[phrase]; ok {
		return name
	}
	return phrase
}

// Names returns the canonical names in sorted order
func (v *Vocabulary) Names() []string {
	names := make([]string, 0, len(v.terms))
	for _, t := range v.terms {
		names = append(names, t.name)
	}
	sort.Strings(names)
	return names
}

// normalizePhrase lowercases and collapses whitespace
func normalizePhrase(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
