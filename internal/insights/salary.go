// Package insights derives salary estimates, market summaries and search
// suggestions from job and candidate pools.
package insights

import "strings"

const (
	baseSalary         = 50000.0
	experienceRaise    = 0.1
	perSkillBonus      = 2000.0
	salaryRangeSpread  = 0.2
	highCostMultiplier = 1.3
	midCostMultiplier  = 1.1
)

var (
	highCostLocations = []string{"new york", "san francisco", "los angeles", "seattle", "boston"}
	midCostLocations  = []string{"chicago", "denver", "austin", "atlanta", "dallas"}
)

// SalaryInput describes the job being priced
type SalaryInput struct {
	ExperienceYears float64  `json:"experience_years" validate:"gte=0"`
	RequiredSkills  []string `json:"required_skills"`
	Location        string   `json:"location"`
}

// SalaryPrediction is a point estimate with a band of plus or minus 20%
type SalaryPrediction struct {
	Predicted float64 `json:"predicted_salary"`
	Low       float64 `json:"salary_range_low"`
	High      float64 `json:"salary_range_high"`
}

// PredictSalary estimates pay as
// (50000*(1 + 0.1*years) + 2000*skills) * location multiplier.
// Negative experience counts as none.
func PredictSalary(in SalaryInput) SalaryPrediction {
	years := in.ExperienceYears
	if years < 0 {
		years = 0
	}
	predicted := (baseSalary*(1+experienceRaise*years) + perSkillBonus*float64(len(in.RequiredSkills))) *
		LocationMultiplier(in.Location)

	return SalaryPrediction{
		Predicted: predicted,
		Low:       predicted * (1 - salaryRangeSpread),
		High:      predicted * (1 + salaryRangeSpread),
	}
}

// LocationMultiplier is 1.3 for high-cost cities, 1.1 for mid-cost cities and 1.0 elsewhere.
// Cities are matched as substrings, so "Seattle, WA" counts as Seattle.
func LocationMultiplier(location string) float64 {
	loc := strings.ToLower(location)
	switch {
	case containsAny(loc, highCostLocations):
		return highCostMultiplier
	case containsAny(loc, midCostLocations):
		return midCostMultiplier
	default:
		return 1
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
