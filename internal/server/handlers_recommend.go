package server

import (
	"net/http"
	"time"

	"github.com/jonathan/job-matcher/internal/db"
	"github.com/jonathan/job-matcher/internal/recommend"
	"github.com/jonathan/job-matcher/internal/types"
)

// poolOptions are the per-call bounds shared by both recommendation endpoints
type poolOptions struct {
	TopK      int `json:"top_k" validate:"gte=0,lte=1000"`
	MaxPool   int `json:"max_pool" validate:"gte=0"`
	TimeoutMS int `json:"timeout_ms" validate:"gte=0"`
}

func (o poolOptions) options() recommend.Options {
	return recommend.Options{
		TopK:    o.TopK,
		MaxPool: o.MaxPool,
		Timeout: time.Duration(o.TimeoutMS) * time.Millisecond,
	}
}

type recommendJobsRequest struct {
	Profile types.CandidateProfile `json:"profile" validate:"required"`
	Jobs    []types.JobPosting     `json:"jobs" validate:"omitempty,dive"`
	Search  *db.JobSearch          `json:"search,omitempty"`
	poolOptions
}

type recommendCandidatesRequest struct {
	Job        types.JobPosting         `json:"job" validate:"required"`
	Candidates []types.CandidateProfile `json:"candidates" validate:"omitempty,dive"`
	poolOptions
}

// handleRecommendJobs ranks jobs for a candidate. Without an inline pool the
// jobs come from a database search.
func (s *Server) handleRecommendJobs(w http.ResponseWriter, r *http.Request) {
	var req recommendJobsRequest
	if err := s.decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	jobs := req.Jobs
	if jobs == nil {
		if s.store == nil {
			s.fail(w, r, &ErrValidation{Field: "jobs", Message: "required when no database is configured"})
			return
		}
		search := db.JobSearch{Limit: db.MaxSearchLimit}
		if req.Search != nil {
			search = *req.Search
		}
		result, err := s.store.SearchJobs(r.Context(), search)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		jobs = result.Jobs
	}

	rec, err := s.engine.Pipeline.RecommendJobs(r.Context(), req.Profile, jobs, s.engine.RecommendOptions(req.options()))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, rec)
}

// handleRecommendCandidates ranks candidates for a job. Without an inline pool
// the candidates come from the database.
func (s *Server) handleRecommendCandidates(w http.ResponseWriter, r *http.Request) {
	var req recommendCandidatesRequest
	if err := s.decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	candidates := req.Candidates
	if candidates == nil {
		if s.store == nil {
			s.fail(w, r, &ErrValidation{Field: "candidates", Message: "required when no database is configured"})
			return
		}
		var err error
		candidates, err = s.store.ListCandidates(r.Context(), db.DefaultCandidateLimit)
		if err != nil {
			s.fail(w, r, err)
			return
		}
	}

	rec, err := s.engine.Pipeline.RecommendCandidates(r.Context(), req.Job, candidates, s.engine.RecommendOptions(req.options()))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, rec)
}
