package ranking

import (
	"math"
	"strings"
)

// Experience match steps
const (
	experienceFull  = 1.0
	experienceNear  = 0.8
	experienceHalf  = 0.6
	experienceShort = 0.3
	nearRatio       = 0.7
	halfRatio       = 0.5
)

// experienceBonusCap caps the candidate experience bonus, reached at two years
const experienceBonusCap = 0.2

// Location match levels
const (
	locationUnknown = 0.5
	locationExact   = 1.0
	locationPartial = 0.8
	locationOther   = 0.3
)

// ExperienceMatch rates candidate years against a requirement as a step function:
// 1.0 at or above, 0.8 from 70%, 0.6 from 50%, 0.3 below.
// A requirement of zero or less is always met.
func ExperienceMatch(candidateYears, requiredYears float64) float64 {
	if requiredYears <= 0 || candidateYears >= requiredYears {
		return experienceFull
	}
	ratio := candidateYears / requiredYears
	switch {
	case ratio >= nearRatio:
		return experienceNear
	case ratio >= halfRatio:
		return experienceHalf
	default:
		return experienceShort
	}
}

// LocationMatch compares two locations case-insensitively: 0.5 if either is unknown,
// 1.0 for the same place, 0.8 if one contains the other, 0.3 otherwise.
func LocationMatch(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	switch {
	case a == "" || b == "":
		return locationUnknown
	case a == b:
		return locationExact
	case strings.Contains(a, b) || strings.Contains(b, a):
		return locationPartial
	default:
		return locationOther
	}
}

// ExperienceBonus is min(years/10, 0.2), never negative
func ExperienceBonus(years float64) float64 {
	if years <= 0 || math.IsNaN(years) {
		return 0
	}
	return math.Min(years/10, experienceBonusCap)
}
