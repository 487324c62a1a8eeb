package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/jonathan/job-matcher/internal/db"
	"github.com/jonathan/job-matcher/internal/insights"
)

// handleSearchJobs runs a filtered, paged search over published jobs
func (s *Server) handleSearchJobs(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.fail(w, r, &ErrUnavailable{Feature: "database"})
		return
	}
	var req db.JobSearch
	if err := s.decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	result, err := s.store.SearchJobs(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleFeedback records a verdict on a match
func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.fail(w, r, &ErrUnavailable{Feature: "database"})
		return
	}
	var req db.Feedback
	if err := s.decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	saved, err := s.store.RecordFeedback(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, saved)
}

// handleSuggestions offers skills, job titles and candidate names containing q
func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	limit := insights.DefaultSuggestionLimit
	if raw := r.URL.Query().Get("top_k"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.fail(w, r, &ErrValidation{Field: "top_k", Message: "must be a positive integer"})
			return
		}
		limit = n
	}
	if q == "" {
		s.jsonResponse(w, http.StatusOK, insights.Suggestions{Skills: []string{}, Jobs: []string{}, Candidates: []string{}})
		return
	}

	src := insights.Sources{Skills: s.engine.Vocabulary.Names()}
	if s.store != nil {
		titles, err := s.store.ListJobTitles(r.Context(), q, limit)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		names, err := s.store.ListCandidateNames(r.Context(), q, limit)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		src.JobTitles = titles
		src.CandidateNames = names
	}
	s.jsonResponse(w, http.StatusOK, insights.Suggest(q, src, limit))
}
