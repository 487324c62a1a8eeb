package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/job-matcher/internal/types"
)

// Search paging defaults
const (
	DefaultSearchLimit = 20
	MaxSearchLimit     = 100
)

// sortColumns whitelists the fields a search may be ordered by
var sortColumns = map[string]string{
	"created_at":       "created_at",
	"updated_at":       "updated_at",
	"title":            "title",
	"location":         "location",
	"salary_min":       "salary_min",
	"salary_max":       "salary_max",
	"experience_level": "experience_level",
}

const jobColumns = `id, company_id, company, title, description, location, job_type, work_mode,
	experience_level, required_experience, required_skills, keywords, salary_min, salary_max`

// JobSearch holds the optional filters of a job search. Zero values are ignored.
type JobSearch struct {
	Query           string   `json:"query,omitempty"`
	Location        string   `json:"location,omitempty"`
	JobTypes        []string `json:"job_type,omitempty"`
	WorkModes       []string `json:"work_mode,omitempty"`
	ExperienceLevel string   `json:"experience_level,omitempty"`
	SalaryMin       *int     `json:"salary_min,omitempty" validate:"omitempty,gte=0"`
	SalaryMax       *int     `json:"salary_max,omitempty" validate:"omitempty,gte=0"`
	Skills          []string `json:"skills,omitempty"`
	CompanyID       string   `json:"company_id,omitempty" validate:"omitempty,uuid"`
	Page            int      `json:"page,omitempty" validate:"gte=0"`
	Limit           int      `json:"limit,omitempty" validate:"gte=0,lte=100"`
	SortBy          string   `json:"sort_by,omitempty"`
	SortOrder       string   `json:"sort_order,omitempty" validate:"omitempty,oneof=asc desc"`
}

// SearchQuery is a built job search. SQL takes Args followed by the limit and offset;
// CountSQL takes Args alone.
type SearchQuery struct {
	SQL      string
	CountSQL string
	Args     []any
	Page     int
	Limit    int
}

func (q *SearchQuery) selectArgs() []any {
	args := make([]any, 0, len(q.Args)+2)
	args = append(args, q.Args...)
	return append(args, q.Limit, (q.Page-1)*q.Limit)
}

// JobSearchResult is one page of published jobs
type JobSearchResult struct {
	Jobs  []types.JobPosting `json:"jobs"`
	Total int                `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
	Pages int                `json:"pages"`
}

// BuildJobSearchQuery turns filters into parameterized SQL over published jobs.
// Free text matches title, description and keywords; skills match on any overlap;
// the salary bounds both apply to salary_min.
func BuildJobSearchQuery(s JobSearch) (*SearchQuery, error) {
	page := s.Page
	if page == 0 {
		page = 1
	}
	limit := s.Limit
	if limit == 0 {
		limit = DefaultSearchLimit
	}
	switch {
	case page < 0:
		return nil, &QueryError{Field: "page", Message: "must be positive"}
	case limit < 0 || limit > MaxSearchLimit:
		return nil, &QueryError{Field: "limit", Message: fmt.Sprintf("must be between 1 and %d", MaxSearchLimit)}
	}

	sortBy := s.SortBy
	if sortBy == "" {
		sortBy = "created_at"
	}
	column, ok := sortColumns[sortBy]
	if !ok {
		return nil, &QueryError{Field: "sort_by", Message: fmt.Sprintf("unknown field %q", sortBy)}
	}
	var direction string
	switch strings.ToLower(s.SortOrder) {
	case "", "desc":
		direction = "DESC"
	case "asc":
		direction = "ASC"
	default:
		return nil, &QueryError{Field: "sort_order", Message: "must be asc or desc"}
	}

	where := []string{"status = 'published'"}
	args := []any{}
	add := func(cond string, arg any) {
		args = append(args, arg)
		where = append(where, strings.ReplaceAll(cond, "$?", fmt.Sprintf("$%d", len(args))))
	}

	if q := strings.TrimSpace(s.Query); q != "" {
		add(`(title ILIKE $? ESCAPE '\' OR description ILIKE $? ESCAPE '\' OR array_to_string(keywords, ' ') ILIKE $? ESCAPE '\')`, containsPattern(q))
	}
	if loc := strings.TrimSpace(s.Location); loc != "" {
		add(`location ILIKE $? ESCAPE '\'`, containsPattern(loc))
	}
	if len(s.JobTypes) > 0 {
		add("job_type = ANY($?)", s.JobTypes)
	}
	if len(s.WorkModes) > 0 {
		add("work_mode = ANY($?)", s.WorkModes)
	}
	if s.ExperienceLevel != "" {
		add("experience_level = $?", s.ExperienceLevel)
	}
	if s.SalaryMin != nil {
		add("salary_min >= $?", *s.SalaryMin)
	}
	if s.SalaryMax != nil {
		add("salary_min <= $?", *s.SalaryMax)
	}
	if len(s.Skills) > 0 {
		add("required_skills && $?", trimAll(s.Skills))
	}
	if s.CompanyID != "" {
		id, err := uuid.Parse(s.CompanyID)
		if err != nil {
			return nil, &QueryError{Field: "company_id", Message: "must be a UUID"}
		}
		add("company_id = $?", id)
	}

	clause := strings.Join(where, " AND ")
	n := len(args)
	return &SearchQuery{
		SQL: fmt.Sprintf("SELECT %s FROM jobs WHERE %s ORDER BY %s %s, id LIMIT $%d OFFSET $%d",
			jobColumns, clause, column, direction, n+1, n+2),
		CountSQL: "SELECT COUNT(*) FROM jobs WHERE " + clause,
		Args:     args,
		Page:     page,
		Limit:    limit,
	}, nil
}

// SearchJobs runs a job search and returns the requested page with the total match count
func (db *DB) SearchJobs(ctx context.Context, s JobSearch) (*JobSearchResult, error) {
	q, err := BuildJobSearchQuery(s)
	if err != nil {
		return nil, err
	}

	var total int
	if err := db.pool.QueryRow(ctx, q.CountSQL, q.Args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count jobs: %w", err)
	}

	rows, err := db.pool.Query(ctx, q.SQL, q.selectArgs()...)
	if err != nil {
		return nil, fmt.Errorf("failed to search jobs: %w", err)
	}
	defer rows.Close()

	jobs := []types.JobPosting{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read jobs: %w", err)
	}

	return &JobSearchResult{
		Jobs:  jobs,
		Total: total,
		Page:  q.Page,
		Limit: q.Limit,
		Pages: (total + q.Limit - 1) / q.Limit,
	}, nil
}

// ListJobTitles returns titles of published jobs containing fragment, ignoring case
func (db *DB) ListJobTitles(ctx context.Context, fragment string, limit int) ([]string, error) {
	return db.listStrings(ctx,
		`SELECT DISTINCT title FROM jobs WHERE status = 'published' AND title ILIKE $1 ESCAPE '\' ORDER BY title LIMIT $2`,
		containsPattern(fragment), limit)
}

func scanJob(row pgx.Row) (types.JobPosting, error) {
	var (
		job       types.JobPosting
		id        uuid.UUID
		companyID *uuid.UUID
	)
	err := row.Scan(&id, &companyID, &job.Company, &job.Title, &job.Description, &job.Location,
		&job.JobType, &job.WorkMode, &job.ExperienceLevel, &job.RequiredExperience,
		&job.RequiredSkills, &job.Keywords, &job.SalaryMin, &job.SalaryMax)
	if err != nil {
		return types.JobPosting{}, fmt.Errorf("failed to scan job: %w", err)
	}
	job.ID = id.String()
	if companyID != nil {
		job.CompanyID = companyID.String()
	}
	return job, nil
}

func (db *DB) listStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE ... ESCAPE '\' pattern matching s literally anywhere
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
