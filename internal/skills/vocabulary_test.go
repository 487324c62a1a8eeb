package skills

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVocabulary_Match(t *testing.T) {
	v := DefaultVocabulary()

	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{"resume", "Experienced Python developer with React and AWS skills, 5 years", []string{"python", "react", "aws"}},
		{"job", "Looking for Python and AWS engineer, 3+ years required", []string{"python", "aws"}},
		{"aliases", "Golang services on K8s with Postgres", []string{"go", "postgresql", "kubernetes"}},
		{"multi word across newline", "Machine\nLearning and deep   learning", []string{"machine learning", "deep learning"}},
		{"no substring matches", "Maintain Javascript-free pages; mysql only", []string{"javascript", "mysql"}},
		{"punctuation boundaries", "(docker), node.js; ci/cd!", []string{"node.js", "docker", "ci/cd"}},
		{"empty", "", nil},
		{"nothing", "Cooking and gardening", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ElementsMatch(t, tt.expected, v.Match(tt.text))
		})
	}
}

func TestVocabulary_Canonical(t *testing.T) {
	v := DefaultVocabulary()

	assert.Equal(t, "go", v.Canonical("Golang"))
	assert.Equal(t, "kubernetes", v.Canonical(" K8s "))
	assert.Equal(t, "react", v.Canonical("React.js"))
	assert.Equal(t, "terraform", v.Canonical("Terraform"))
	assert.Equal(t, "", v.Canonical("   "))
}

func TestNewVocabulary_Errors(t *testing.T) {
	var cfgErr *ConfigurationError

	_, err := NewVocabulary(nil)
	require.ErrorAs(t, err, &cfgErr)

	_, err = NewVocabulary([]Term{{Name: ""}})
	require.ErrorAs(t, err, &cfgErr)

	_, err = NewVocabulary([]Term{{Name: "go"}, {Name: "Go"}})
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestLoadVocabulary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vocab.yaml")
	content := `skills:
  - name: rust
  - name: terraform
    patterns: [terraform, tf]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	v, err := LoadVocabulary(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"rust", "terraform"}, v.Names())
	assert.ElementsMatch(t, []string{"rust", "terraform"}, v.Match("Rust and TF modules"))
}

func TestLoadVocabulary_Errors(t *testing.T) {
	var cfgErr *ConfigurationError

	_, err := LoadVocabulary(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorAs(t, err, &cfgErr)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("skills: [unterminated"), 0o600))
	_, err = LoadVocabulary(path)
	require.ErrorAs(t, err, &cfgErr)
}
