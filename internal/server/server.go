// Package server provides the HTTP REST API for the job matcher.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jonathan/job-matcher/internal/config"
	"github.com/jonathan/job-matcher/internal/db"
	"github.com/jonathan/job-matcher/internal/engine"
	"github.com/jonathan/job-matcher/internal/server/middleware"
	"github.com/jonathan/job-matcher/internal/server/ratelimit"
	"github.com/jonathan/job-matcher/internal/types"
)

// Store is the persistence behind pool lookups, search and feedback. *db.DB implements it.
type Store interface {
	Ping(ctx context.Context) error
	SearchJobs(ctx context.Context, s db.JobSearch) (*db.JobSearchResult, error)
	ListCandidates(ctx context.Context, limit int) ([]types.CandidateProfile, error)
	ListJobTitles(ctx context.Context, fragment string, limit int) ([]string, error)
	ListCandidateNames(ctx context.Context, fragment string, limit int) ([]string, error)
	RecordFeedback(ctx context.Context, f db.Feedback) (*db.Feedback, error)
}

var _ Store = (*db.DB)(nil)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	cfg         config.ServerConfig
	engine      *engine.Engine
	store       Store
	rateLimiter *ratelimit.Limiter
	validate    *validator.Validate
	logger      *zap.Logger
}

// New creates a server over a built engine. store may be nil, in which case
// endpoints that need persistence answer 503.
func New(cfg *config.Config, eng *engine.Engine, store Store, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		cfg:      cfg.Server,
		engine:   eng,
		store:    store,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
	s.rateLimiter = ratelimit.NewLimiter(&ratelimit.Config{
		Enabled:         cfg.RateLimit.Enabled,
		DefaultLimit:    cfg.RateLimit.Limit,
		DefaultWindow:   cfg.RateLimit.Window,
		DefaultBurst:    cfg.RateLimit.Burst,
		CleanupInterval: 5 * time.Minute,
		Whitelist:       ratelimit.ParseList(cfg.RateLimit.Whitelist),
		EndpointConfigs: ratelimit.DefaultEndpointConfigs(),
	})

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      s.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the routed API with middleware applied
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /match", s.handleMatch)
	mux.HandleFunc("POST /features", s.handleFeatures)
	mux.HandleFunc("POST /recommendations/jobs", s.handleRecommendJobs)
	mux.HandleFunc("POST /recommendations/candidates", s.handleRecommendCandidates)

	mux.HandleFunc("POST /jobs/search", s.handleSearchJobs)
	mux.HandleFunc("POST /feedback", s.handleFeedback)
	mux.HandleFunc("GET /suggestions", s.handleSuggestions)

	mux.HandleFunc("POST /salary/predict", s.handlePredictSalary)
	mux.HandleFunc("POST /market/analyze", s.handleAnalyzeMarket)

	mux.HandleFunc("POST /ai/chat", s.handleChat)

	var h http.Handler = mux
	h = s.withRateLimit(h)
	h = middleware.CORS(s.cfg.CORSOrigins)(h)
	h = middleware.Logging(s.logger)(h)
	h = middleware.Recover(s.logger)(h)
	return middleware.RequestID(h)
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.rateLimiter.Stop()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	err := s.httpServer.Shutdown(shutdownCtx)
	s.rateLimiter.Stop()
	if err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// handleHealth returns server health, including the database when one is configured
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{"status": "ok", "database": "disabled", "llm": "disabled"}
	if s.engine != nil && s.engine.LLM != nil {
		resp["llm"] = "enabled"
	}
	if s.store != nil {
		resp["database"] = "ok"
		if err := s.store.Ping(r.Context()); err != nil {
			resp["status"] = "degraded"
			resp["database"] = "unreachable"
			s.jsonResponse(w, http.StatusServiceUnavailable, resp)
			return
		}
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// decode reads a JSON body, bounded by MaxBodyBytes, and validates it
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, s.maxBody())
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return &ErrValidation{Field: "body", Message: fmt.Sprintf("exceeds %d bytes", maxErr.Limit)}
		case errors.Is(err, io.EOF):
			return &ErrValidation{Field: "body", Message: "is empty"}
		default:
			return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
		}
	}
	return s.validateStruct(dst)
}

func (s *Server) validateStruct(v any) error {
	if err := s.validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return &ErrValidation{Field: fe.Namespace(), Message: fmt.Sprintf("failed %q check", fe.Tag())}
		}
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	return nil
}

func (s *Server) maxBody() int64 {
	if s.cfg.MaxBodyBytes > 0 {
		return s.cfg.MaxBodyBytes
	}
	return 5 << 20
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// fail maps err to a status and writes it; server-side failures are logged
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.Error(err))
	}
	s.errorResponse(w, status, err.Error())
}

// withRateLimit rejects clients over their limit with 429
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(clientID(r), r.URL.Path, r.Method)
		if info.Limit > 0 {
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
		}
		if !allowed {
			resp := map[string]any{
				"error":   "rate_limit_exceeded",
				"message": "Rate limit exceeded. Please try again later.",
				"limit":   info.Limit,
			}
			if info.RetryAfter > 0 {
				secs := int(info.RetryAfter.Round(time.Second).Seconds())
				if secs == 0 {
					secs = 1
				}
				resp["retry_after"] = secs
				w.Header().Set("Retry-After", strconv.Itoa(secs))
			}
			s.logger.Debug("rate limit exceeded", zap.String("client", clientID(r)), zap.String("path", r.URL.Path))
			s.jsonResponse(w, http.StatusTooManyRequests, resp)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientID identifies a client by remote IP
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
