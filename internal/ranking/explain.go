package ranking

import (
	"fmt"
	"strings"

	"github.com/jonathan/job-matcher/internal/types"
)

// maxListedSkills bounds the skills named in a note
const maxListedSkills = 5

// Explain creates a brief explanation of a match
func Explain(m types.MatchScore) string {
	f := m.Features
	var parts []string

	switch {
	case len(f.MatchedSkills) == 0:
		parts = append(parts, "No skill matches")
	case f.SkillMatchRatio >= 0.7:
		parts = append(parts, fmt.Sprintf("Strong skill match (%s)", listSkills(f.MatchedSkills)))
	case f.SkillMatchRatio >= 0.4:
		parts = append(parts, fmt.Sprintf("Moderate skill match (%s)", listSkills(f.MatchedSkills)))
	default:
		parts = append(parts, fmt.Sprintf("Weak skill match (%s)", listSkills(f.MatchedSkills)))
	}
	if len(f.MissingSkills) > 0 {
		parts = append(parts, fmt.Sprintf("Missing %s", listSkills(f.MissingSkills)))
	}

	text := f.CountSimilarity
	if v, ok := f.Value(types.SignalTFIDF); ok && v > text {
		text = v
	}
	if text >= 0.5 {
		parts = append(parts, "Strong text similarity")
	} else if text >= 0.2 {
		parts = append(parts, "Some text similarity")
	}

	adj := m.Adjustments
	if adj.ExperienceMatch != nil {
		if *adj.ExperienceMatch >= experienceFull {
			parts = append(parts, "Meets experience requirement")
		} else {
			parts = append(parts, "Below experience requirement")
		}
	}
	if adj.LocationMatch != nil {
		switch *adj.LocationMatch {
		case locationExact:
			parts = append(parts, "Same location")
		case locationPartial:
			parts = append(parts, "Nearby location")
		}
	}
	if adj.EducationBonus != nil && *adj.EducationBonus > 0 {
		parts = append(parts, "Education bonus")
	}

	return strings.Join(parts, ". ")
}

func listSkills(skills []string) string {
	if len(skills) <= maxListedSkills {
		return strings.Join(skills, ", ")
	}
	return fmt.Sprintf("%s and %d more", strings.Join(skills[:maxListedSkills], ", "), len(skills)-maxListedSkills)
}
