package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/job-matcher/internal/types"
)

// DefaultCandidateLimit bounds a candidate pool loaded without an explicit limit
const DefaultCandidateLimit = 500

// ListCandidates returns the most recently added candidates
func (db *DB) ListCandidates(ctx context.Context, limit int) ([]types.CandidateProfile, error) {
	if limit <= 0 {
		limit = DefaultCandidateLimit
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, name, resume_text, location, experience_years, education_level, skills
		 FROM candidates ORDER BY created_at DESC, id LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	candidates := []types.CandidateProfile{}
	for rows.Next() {
		var c types.CandidateProfile
		var id uuid.UUID
		if err := rows.Scan(&id, &c.Name, &c.ResumeText, &c.Location, &c.ExperienceYears, &c.EducationLevel, &c.Skills); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		c.ID = id.String()
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read candidates: %w", err)
	}
	return candidates, nil
}

// ListCandidateNames returns candidate names containing fragment, ignoring case
func (db *DB) ListCandidateNames(ctx context.Context, fragment string, limit int) ([]string, error) {
	return db.listStrings(ctx,
		`SELECT DISTINCT name FROM candidates WHERE name <> '' AND name ILIKE $1 ESCAPE '\' ORDER BY name LIMIT $2`,
		containsPattern(fragment), limit)
}
