package insights

import (
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/jonathan/job-matcher/internal/types"
)

const (
	topSkillsLimit    = 20
	topLocationsLimit = 10
	topCompaniesLimit = 10
)

// Count is how often a value occurs in a pool
type Count struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Distribution summarizes a sample. Std is the sample standard deviation,
// quartiles are linearly interpolated.
type Distribution struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Q25    float64 `json:"25%"`
	Median float64 `json:"50%"`
	Q75    float64 `json:"75%"`
	Max    float64 `json:"max"`
}

// MarketAnalysis summarizes a pool of job postings
type MarketAnalysis struct {
	TotalJobs              int          `json:"total_jobs"`
	AverageSalary          float64      `json:"avg_salary"`
	SalaryDistribution     Distribution `json:"salary_distribution"`
	TopSkills              []string     `json:"top_skills"`
	TopLocations           []Count      `json:"top_locations"`
	ExperienceDistribution []Count      `json:"experience_distribution"`
	TopCompanies           []Count      `json:"company_distribution"`
}

// AnalyzeMarket computes salary statistics over postings that state a salary,
// plus frequency tables of skills, locations, experience levels and companies.
// Frequency ties keep first-seen order. An empty pool yields the zero analysis.
func AnalyzeMarket(jobs []types.JobPosting) MarketAnalysis {
	if len(jobs) == 0 {
		return MarketAnalysis{}
	}

	salaries := make([]float64, 0, len(jobs))
	var skills, locations, levels, companies []string
	for _, job := range jobs {
		if s, ok := job.Salary(); ok {
			salaries = append(salaries, s)
		}
		for _, skill := range job.RequiredSkills {
			skills = append(skills, strings.ToLower(skill))
		}
		locations = append(locations, job.Location)
		levels = append(levels, experienceLevel(job))
		companies = append(companies, job.Company)
	}

	dist := describe(salaries)
	topSkills := []string{}
	for _, c := range topCounts(skills, topSkillsLimit) {
		topSkills = append(topSkills, c.Value)
	}

	return MarketAnalysis{
		TotalJobs:              len(jobs),
		AverageSalary:          dist.Mean,
		SalaryDistribution:     dist,
		TopSkills:              topSkills,
		TopLocations:           topCounts(locations, topLocationsLimit),
		ExperienceDistribution: topCounts(levels, 0),
		TopCompanies:           topCounts(companies, topCompaniesLimit),
	}
}

// experienceLevel prefers the posted level and falls back to required years
func experienceLevel(job types.JobPosting) string {
	if job.ExperienceLevel != "" {
		return job.ExperienceLevel
	}
	if job.RequiredExperience != nil {
		return strconv.FormatFloat(*job.RequiredExperience, 'f', -1, 64) + " years"
	}
	return ""
}

func describe(values []float64) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	d := Distribution{
		Count:  len(sorted),
		Mean:   stat.Mean(sorted, nil),
		Min:    sorted[0],
		Q25:    stat.Quantile(0.25, stat.LinInterp, sorted, nil),
		Median: stat.Quantile(0.5, stat.LinInterp, sorted, nil),
		Q75:    stat.Quantile(0.75, stat.LinInterp, sorted, nil),
		Max:    sorted[len(sorted)-1],
	}
	if len(sorted) > 1 {
		d.Std = stat.StdDev(sorted, nil)
	}
	return d
}

// topCounts counts non-blank values, most frequent first; limit <= 0 keeps all
func topCounts(values []string, limit int) []Count {
	index := make(map[string]int)
	counts := []Count{}
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if i, ok := index[v]; ok {
			counts[i].Count++
			continue
		}
		index[v] = len(counts)
		counts = append(counts, Count{Value: v, Count: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	if limit > 0 && len(counts) > limit {
		counts = counts[:limit]
	}
	return counts
}
