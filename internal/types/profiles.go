// Package types provides type definitions for structured data used throughout the job matcher.
//
//nolint:revive // types is a standard Go package name pattern
package types

// TextDocument is an identified block of free text (resume or job description)
type TextDocument struct {
	ID   string `json:"id"`
	Body string `json:"body"`
}

// JobPosting is a job entry in a recommendation pool or search result
type JobPosting struct {
	ID          string `json:"id" validate:"required"`
	Title       string `json:"title"`
	Company     string `json:"company,omitempty"`
	CompanyID   string `json:"company_id,omitempty"`
	Description string `json:"description"`
	Location    string `json:"location,omitempty"`
	// RequiredExperience in years; nil falls back to what the description states
	RequiredExperience *float64 `json:"required_experience,omitempty" validate:"omitempty,gte=0"`
	RequiredSkills     []string `json:"required_skills,omitempty"`
	Keywords           []string `json:"keywords,omitempty"`
	JobType            string   `json:"job_type,omitempty"`
	WorkMode           string   `json:"work_mode,omitempty"`
	ExperienceLevel    string   `json:"experience_level,omitempty"`
	SalaryMin          *int     `json:"salary_min,omitempty" validate:"omitempty,gte=0"`
	SalaryMax          *int     `json:"salary_max,omitempty" validate:"omitempty,gte=0"`
}

// Salary returns the midpoint of the posted range, or whichever bound is set.
func (j JobPosting) Salary() (float64, bool) {
	switch {
	case j.SalaryMin != nil && j.SalaryMax != nil:
		return float64(*j.SalaryMin+*j.SalaryMax) / 2, true
	case j.SalaryMin != nil:
		return float64(*j.SalaryMin), true
	case j.SalaryMax != nil:
		return float64(*j.SalaryMax), true
	default:
		return 0, false
	}
}

// CandidateProfile is a job seeker: the reference profile for job recommendations
// or a pool entry for candidate recommendations
type CandidateProfile struct {
	ID         string `json:"id" validate:"required"`
	Name       string `json:"name"`
	ResumeText string `json:"resume_text"`
	Location   string `json:"location,omitempty"`
	// ExperienceYears nil falls back to what the resume states
	ExperienceYears *float64 `json:"experience_years,omitempty" validate:"omitempty,gte=0"`
	EducationLevel  string   `json:"education_level,omitempty"`
	Skills          []string `json:"skills,omitempty"`
}
