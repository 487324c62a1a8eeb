package insights

import "strings"

// DefaultSuggestionLimit applies when a caller asks for zero suggestions
const DefaultSuggestionLimit = 5

// Sources are the values suggestions are drawn from
type Sources struct {
	Skills         []string
	JobTitles      []string
	CandidateNames []string
}

// Suggestions holds matches per category, in source order
type Suggestions struct {
	Skills     []string `json:"skills"`
	Jobs       []string `json:"jobs"`
	Candidates []string `json:"candidates"`
}

// Suggest returns up to limit values per category that contain query, ignoring case
func Suggest(query string, src Sources, limit int) Suggestions {
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}
	q := strings.ToLower(strings.TrimSpace(query))

	return Suggestions{
		Skills:     filterContains(src.Skills, q, limit),
		Jobs:       filterContains(src.JobTitles, q, limit),
		Candidates: filterContains(src.CandidateNames, q, limit),
	}
}

func filterContains(values []string, q string, limit int) []string {
	out := []string{}
	for _, v := range values {
		if len(out) == limit {
			break
		}
		if v != "" && strings.Contains(strings.ToLower(v), q) {
			out = append(out, v)
		}
	}
	return out
}
