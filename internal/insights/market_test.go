package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-matcher/internal/types"
)

func intPtr(v int) *int { return &v }

func TestAnalyzeMarket(t *testing.T) {
	jobs := []types.JobPosting{
		{ID: "1", Company: "Acme", Location: "Austin", ExperienceLevel: "senior", RequiredSkills: []string{"Python", "AWS"}, SalaryMin: intPtr(100000), SalaryMax: intPtr(140000)},
		{ID: "2", Company: "Acme", Location: "Boston", ExperienceLevel: "mid", RequiredSkills: []string{"python"}, SalaryMin: intPtr(100000)},
		{ID: "3", Company: "Globex", Location: "Austin", RequiredSkills: []string{"go", "aws"}, RequiredExperience: types.Float64(3)},
	}

	got := AnalyzeMarket(jobs)

	assert.Equal(t, 3, got.TotalJobs)
	assert.InDelta(t, 110000, got.AverageSalary, 1e-6)
	assert.Equal(t, 2, got.SalaryDistribution.Count)
	assert.Equal(t, 100000.0, got.SalaryDistribution.Min)
	assert.Equal(t, 120000.0, got.SalaryDistribution.Max)
	assert.InDelta(t, 14142.1356, got.SalaryDistribution.Std, 1e-3)

	assert.Equal(t, []string{"python", "aws", "go"}, got.TopSkills)
	assert.Equal(t, []Count{{"Austin", 2}, {"Boston", 1}}, got.TopLocations)
	assert.Equal(t, []Count{{"senior", 1}, {"mid", 1}, {"3 years", 1}}, got.ExperienceDistribution)
	assert.Equal(t, []Count{{"Acme", 2}, {"Globex", 1}}, got.TopCompanies)
}

func TestAnalyzeMarket_Empty(t *testing.T) {
	assert.Equal(t, MarketAnalysis{}, AnalyzeMarket(nil))
}

func TestAnalyzeMarket_NoSalaries(t *testing.T) {
	got := AnalyzeMarket([]types.JobPosting{{ID: "1", Title: "Dev"}})

	assert.Equal(t, 1, got.TotalJobs)
	assert.Zero(t, got.AverageSalary)
	assert.Equal(t, Distribution{}, got.SalaryDistribution)
	assert.Empty(t, got.TopSkills)
	assert.Empty(t, got.TopCompanies)
}

func TestDescribe_Quartiles(t *testing.T) {
	d := describe([]float64{40, 10, 30, 20, 50})

	require.Equal(t, 5, d.Count)
	assert.Equal(t, 30.0, d.Mean)
	assert.Equal(t, 10.0, d.Min)
	assert.Equal(t, 50.0, d.Max)
	assert.LessOrEqual(t, d.Min, d.Q25)
	assert.LessOrEqual(t, d.Q25, d.Median)
	assert.LessOrEqual(t, d.Median, d.Q75)
	assert.LessOrEqual(t, d.Q75, d.Max)
}

func TestTopCounts_Limit(t *testing.T) {
	values := []string{"a", "b", "b", "c", "c", "c", " ", ""}

	assert.Equal(t, []Count{{"c", 3}, {"b", 2}}, topCounts(values, 2))
	assert.Len(t, topCounts(values, 0), 3)
}
