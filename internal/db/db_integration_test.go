//go:build integration

package db

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	db, err := Connect(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(ctx))
	return db
}

func TestIntegration_SearchJobs(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	marker := "itest-" + uuid.New().String()
	t.Cleanup(func() {
		_, _ = db.pool.Exec(context.Background(), "DELETE FROM jobs WHERE company = $1", marker)
	})

	_, err := db.pool.Exec(ctx,
		`INSERT INTO jobs (company, title, description, location, work_mode, required_skills, salary_min, salary_max)
		 VALUES ($1, 'Go Engineer', 'Build services in Go', 'Austin, TX', 'remote', '{go,sql}', 120000, 150000),
		        ($1, 'Barista', 'Coffee', 'Denver', 'onsite', '{}', 40000, NULL),
		        ($1, 'Draft Role', 'Hidden', 'Austin', 'remote', '{go}', NULL, NULL)`,
		marker)
	require.NoError(t, err)
	_, err = db.pool.Exec(ctx, "UPDATE jobs SET status = 'draft' WHERE company = $1 AND title = 'Draft Role'", marker)
	require.NoError(t, err)

	res, err := db.SearchJobs(ctx, JobSearch{Query: "engineer", Skills: []string{"go"}, Location: "austin"})
	require.NoError(t, err)

	var found []string
	for _, j := range res.Jobs {
		if j.Company == marker {
			found = append(found, j.Title)
			assert.Equal(t, []string{"go", "sql"}, j.RequiredSkills)
			salary, ok := j.Salary()
			assert.True(t, ok)
			assert.Equal(t, 135000.0, salary)
		}
	}
	assert.Equal(t, []string{"Go Engineer"}, found)
	assert.GreaterOrEqual(t, res.Total, 1)

	titles, err := db.ListJobTitles(ctx, "barist", 5)
	require.NoError(t, err)
	assert.Contains(t, titles, "Barista")
}

func TestIntegration_CandidatesAndFeedback(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	name := "Itest " + uuid.New().String()
	t.Cleanup(func() {
		_, _ = db.pool.Exec(context.Background(), "DELETE FROM candidates WHERE name = $1", name)
		_, _ = db.pool.Exec(context.Background(), "DELETE FROM match_feedback WHERE resume_id = $1", name)
	})

	_, err := db.pool.Exec(ctx,
		`INSERT INTO candidates (name, resume_text, experience_years, education_level, skills)
		 VALUES ($1, 'Python developer', 4, 'masters', '{python}')`, name)
	require.NoError(t, err)

	candidates, err := db.ListCandidates(ctx, 0)
	require.NoError(t, err)
	var found bool
	for _, c := range candidates {
		if c.Name == name {
			found = true
			require.NotNil(t, c.ExperienceYears)
			assert.Equal(t, 4.0, *c.ExperienceYears)
			assert.Equal(t, []string{"python"}, c.Skills)
		}
	}
	assert.True(t, found)

	jobID := uuid.New().String()
	saved, err := db.RecordFeedback(ctx, Feedback{ResumeID: name, JobID: jobID, Score: 0.7, Relevant: true})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())

	list, err := db.FeedbackForJob(ctx, jobID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Relevant)
}
