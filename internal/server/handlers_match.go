package server

import (
	"net/http"

	"github.com/jonathan/job-matcher/internal/matching"
	"github.com/jonathan/job-matcher/internal/ranking"
	"github.com/jonathan/job-matcher/internal/types"
)

type matchRequest struct {
	ResumeText   string   `json:"resume_text"`
	JobText      string   `json:"job_text"`
	ResumeSkills []string `json:"resume_skills,omitempty"`
	JobSkills    []string `json:"job_skills,omitempty"`
}

type matchResponse struct {
	Features      types.FeatureBundle `json:"matching_details"`
	EnsembleScore float64             `json:"ensemble_score"`
	Explanation   string              `json:"explanation"`
}

type featuresRequest struct {
	Text string `json:"text" validate:"required"`
}

// handleMatch scores a single resume against a single job description
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := s.decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	bundle, err := s.engine.Scorer.Score(r.Context(), matching.Pair{
		ResumeText:   req.ResumeText,
		JobText:      req.JobText,
		ResumeSkills: req.ResumeSkills,
		JobSkills:    req.JobSkills,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	ensemble := ranking.EnsembleScore(bundle, s.engine.Weights)
	s.jsonResponse(w, http.StatusOK, matchResponse{
		Features:      bundle,
		EnsembleScore: ensemble,
		Explanation: ranking.Explain(types.MatchScore{
			Features:      bundle,
			EnsembleScore: ensemble,
			FinalScore:    ensemble,
		}),
	})
}

// handleFeatures describes a single document
func (s *Server) handleFeatures(w http.ResponseWriter, r *http.Request) {
	var req featuresRequest
	if err := s.decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	features, err := s.engine.Scorer.Features(r.Context(), req.Text)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, features)
}
