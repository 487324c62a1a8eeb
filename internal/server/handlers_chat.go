package server

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/job-matcher/internal/llm"
	"github.com/jonathan/job-matcher/internal/logger"
	"github.com/jonathan/job-matcher/internal/prompts"
)

type chatRequest struct {
	Message string            `json:"message" validate:"required,max=4000"`
	History []llm.ChatMessage `json:"history" validate:"max=20,dive"`
	// Context is optional candidate background, such as a resume summary
	Context string `json:"context" validate:"max=8000"`
}

type chatResponse struct {
	Reply string `json:"reply"`
	Model string `json:"model"`
}

// handleChat continues a career assistant conversation
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if s.engine.LLM == nil {
		s.fail(w, r, &ErrUnavailable{Feature: "AI chat"})
		return
	}
	var req chatRequest
	if err := s.decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	system := prompts.MustGet(prompts.AssistantFile, "career-chat-system")
	if ctx := strings.TrimSpace(req.Context); ctx != "" {
		template := prompts.MustGet(prompts.AssistantFile, "career-chat-context")
		system += "\n\n" + prompts.Format(template, map[string]string{"Context": ctx})
	}

	reply, err := s.engine.LLM.Chat(r.Context(), llm.ChatRequest{
		System:  system,
		History: req.History,
		Message: req.Message,
	})
	if err != nil {
		s.logger.Warn("chat request failed",
			zap.String("message", logger.Truncate(req.Message, 80)),
			zap.Error(err))
		s.fail(w, r, &UpstreamError{Service: "llm", Err: err})
		return
	}
	s.jsonResponse(w, http.StatusOK, chatResponse{
		Reply: reply,
		Model: s.engine.LLM.GetModel(llm.TierStandard),
	})
}
