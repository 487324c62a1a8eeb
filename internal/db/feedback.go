package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Feedback is a user's verdict on a scored match
type Feedback struct {
	ID        uuid.UUID `json:"id"`
	ResumeID  string    `json:"resume_id" validate:"required"`
	JobID     string    `json:"job_id" validate:"required"`
	Score     float64   `json:"score" validate:"gte=0,lte=1"`
	Relevant  bool      `json:"relevant"`
	Comment   string    `json:"comment,omitempty" validate:"max=2000"`
	CreatedAt time.Time `json:"created_at"`
}

// RecordFeedback stores feedback and returns it with its assigned ID and timestamp
func (db *DB) RecordFeedback(ctx context.Context, f Feedback) (*Feedback, error) {
	err := db.pool.QueryRow(ctx,
		`INSERT INTO match_feedback (resume_id, job_id, score, relevant, comment)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		f.ResumeID, f.JobID, f.Score, f.Relevant, f.Comment,
	).Scan(&f.ID, &f.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to record feedback: %w", err)
	}
	return &f, nil
}

// FeedbackForJob returns all feedback recorded against a job, newest first
func (db *DB) FeedbackForJob(ctx context.Context, jobID string) ([]Feedback, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, resume_id, job_id, score, relevant, comment, created_at
		 FROM match_feedback WHERE job_id = $1 ORDER BY created_at DESC`,
		jobID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	defer rows.Close()

	out := []Feedback{}
	for rows.Next() {
		var f Feedback
		if err := rows.Scan(&f.ID, &f.ResumeID, &f.JobID, &f.Score, &f.Relevant, &f.Comment, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
