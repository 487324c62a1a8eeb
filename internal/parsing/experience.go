package parsing

import (
	"regexp"
	"strconv"
)

// yearsRe matches "5 years", "3+ yrs", "2.5 year", "3-5 years"; the first number of a range is captured
var yearsRe = regexp.MustCompile(`(?i)\b(\d{1,2}(?:\.\d+)?)\s*\+?\s*(?:-\s*\d{1,2}\s*)?(?:years?|yrs?)\b`)

// ExtractExperienceYears returns the largest year count stated in text.
// ok is false when the text states none.
func ExtractExperienceYears(text string) (years float64, ok bool) {
	for _, m := range yearsRe.FindAllStringSubmatch(text, -1) {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		if !ok || v > years {
			years = v
			ok = true
		}
	}
	return years, ok
}
