package ranking

import "strings"

// educationBonuses by canonical degree level
var educationBonuses = map[string]float64{
	"phd":         0.2,
	"masters":     0.15,
	"bachelors":   0.1,
	"associate":   0.05,
	"high school": 0,
}

// degreeAliases maps common spellings to canonical levels
var degreeAliases = map[string]string{
	"phd":                 "phd",
	"ph.d":                "phd",
	"ph.d.":               "phd",
	"doctorate":           "phd",
	"doctoral":            "phd",
	"masters":             "masters",
	"master":              "masters",
	"master's":            "masters",
	"msc":                 "masters",
	"ms":                  "masters",
	"mba":                 "masters",
	"bachelors":           "bachelors",
	"bachelor":            "bachelors",
	"bachelor's":          "bachelors",
	"bsc":                 "bachelors",
	"bs":                  "bachelors",
	"ba":                  "bachelors",
	"associate":           "associate",
	"associates":          "associate",
	"associate's":         "associate",
	"high school":         "high school",
	"highschool":          "high school",
	"high_school":         "high school",
	"secondary":           "high school",
	"high school diploma": "high school",
}

// NormalizeEducationLevel returns the canonical degree level, or "" if unknown
func NormalizeEducationLevel(level string) string {
	key := strings.Join(strings.Fields(strings.ToLower(level)), " ")
	return degreeAliases[key]
}

// EducationBonus is the candidate bonus for a degree level: phd 0.2, masters 0.15,
// bachelors 0.1, associate 0.05, high school and unknown levels 0.
func EducationBonus(level string) float64 {
	return educationBonuses[NormalizeEducationLevel(level)]
}
