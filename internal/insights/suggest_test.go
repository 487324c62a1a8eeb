package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggest(t *testing.T) {
	src := Sources{
		Skills:         []string{"python", "pytorch", "java", "typescript"},
		JobTitles:      []string{"Python Engineer", "Data Scientist", "Senior PYTHON Developer"},
		CandidateNames: []string{"Ada Pyle", "Grace Hopper"},
	}

	got := Suggest("Py", src, 0)

	assert.Equal(t, []string{"python", "pytorch"}, got.Skills)
	assert.Equal(t, []string{"Python Engineer", "Senior PYTHON Developer"}, got.Jobs)
	assert.Equal(t, []string{"Ada Pyle"}, got.Candidates)
}

func TestSuggest_Limit(t *testing.T) {
	src := Sources{Skills: []string{"go", "golang", "google cloud", "mongo"}}

	got := Suggest("go", src, 2)

	assert.Equal(t, []string{"go", "golang"}, got.Skills)
	assert.Empty(t, got.Jobs)
	assert.NotNil(t, got.Candidates)
}
