package server

import (
	"net/http"

	"github.com/jonathan/job-matcher/internal/insights"
	"github.com/jonathan/job-matcher/internal/types"
)

type marketRequest struct {
	Jobs []types.JobPosting `json:"jobs" validate:"dive"`
}

// handlePredictSalary estimates pay for an experience level, skill list and location
func (s *Server) handlePredictSalary(w http.ResponseWriter, r *http.Request) {
	var req insights.SalaryInput
	if err := s.decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, insights.PredictSalary(req))
}

// handleAnalyzeMarket summarizes a set of job postings
func (s *Server) handleAnalyzeMarket(w http.ResponseWriter, r *http.Request) {
	var req marketRequest
	if err := s.decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, insights.AnalyzeMarket(req.Jobs))
}
