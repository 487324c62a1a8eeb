package schemas

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		kind    Kind
		doc     string
		wantErr bool
	}{
		{"valid profile", CandidateProfile, `{"id":"c-1","resume_text":"Python developer","experience_years":5}`, false},
		{"profile null experience", CandidateProfile, `{"id":"c-1","experience_years":null}`, false},
		{"profile missing id", CandidateProfile, `{"resume_text":"Python developer"}`, true},
		{"profile negative experience", CandidateProfile, `{"id":"c-1","experience_years":-1}`, true},
		{"valid job", JobPosting, `{"id":"j-1","title":"Engineer","salary_min":90000}`, false},
		{"job fractional salary", JobPosting, `{"id":"j-1","salary_min":1.5}`, true},
		{"job skills not strings", JobPosting, `{"id":"j-1","required_skills":[1,2]}`, true},
		{"valid job pool", JobPool, `[{"id":"j-1"},{"id":"j-2","description":"Go"}]`, false},
		{"empty job pool", JobPool, `[]`, false},
		{"job pool entry without id", JobPool, `[{"id":"j-1"},{"title":"no id"}]`, true},
		{"job pool not an array", JobPool, `{"id":"j-1"}`, true},
		{"valid candidate pool", CandidatePool, `[{"id":"c-1","education_level":"PhD"}]`, false},
		{"candidate pool bad entry", CandidatePool, `[{"id":""}]`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.kind, []byte(tt.doc))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "error should be ValidationError type")
			assert.NotEmpty(t, verr.Errors)
			assert.Equal(t, tt.kind, verr.Kind)
		})
	}
}

func TestValidate_FieldPath(t *testing.T) {
	err := Validate(JobPool, []byte(`[{"id":"j-1"},{"title":"no id"}]`))

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Error(), "1")
	assert.Contains(t, verr.Error(), "id")
}

func TestValidate_UnknownKind(t *testing.T) {
	err := Validate(Kind("resume_plan"), []byte(`{}`))

	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Contains(t, err.Error(), "unknown schema")
}

func TestValidate_MalformedDocument(t *testing.T) {
	err := Validate(CandidateProfile, []byte(`{"id":`))
	require.Error(t, err)
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "pool.json")
	require.NoError(t, os.WriteFile(good, []byte(`[{"id":"j-1"}]`), 0o600))

	data, err := ValidateFile(JobPool, good)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"j-1"}]`, string(data))

	_, err = ValidateFile(JobPool, filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`[{"title":"x"}]`), 0o600))
	_, err = ValidateFile(JobPool, bad)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, err.Error(), bad)
}
