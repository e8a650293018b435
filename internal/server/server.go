// Package server exposes the claim analyzer over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/factspark/factspark/internal/cache"
	"github.com/factspark/factspark/internal/model"
	"github.com/factspark/factspark/internal/pipeline"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100
)

// Analyzer is the application core the server fronts.
type Analyzer interface {
	Analyze(ctx context.Context, claimText string) (*model.AnalysisResult, error)
	ListRecent(ctx context.Context, limit int) ([]model.ClaimRecord, error)
}

// Config holds HTTP server configuration.
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	ListCacheTTL time.Duration
	Version      string
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Addr:         ":8080",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		ListCacheTTL: 5 * time.Second,
	}
}

// Server is the FactSpark HTTP API server.
type Server struct {
	config    *Config
	analyzer  Analyzer
	listCache cache.Cache
	logger    *slog.Logger
	server    *http.Server
}

// New creates a new API server.
func New(config *Config, analyzer Analyzer, listCache cache.Cache, logger *slog.Logger) *Server {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		config:    config,
		analyzer:  analyzer,
		listCache: listCache,
		logger:    logger,
	}

	s.server = &http.Server{
		Addr:         config.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/claims", s.handleClaims)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/greeting", s.handleGreeting)

	return corsMiddleware(loggingMiddleware(s.logger, mux))
}

// Start begins serving. Blocks until the server stops.
func (s *Server) Start() error {
	s.logger.Info("starting API server", "addr", s.config.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("API server error: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("stopping API server")
	return s.server.Shutdown(ctx)
}

// handleClaims routes POST (submit) and GET (list) on /api/claims.
func (s *Server) handleClaims(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleSubmitClaim(w, r)
	case http.MethodGet:
		s.handleListClaims(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

type submitClaimRequest struct {
	Text string `json:"text"`
}

// handleSubmitClaim handles POST /api/claims.
func (s *Server) handleSubmitClaim(w http.ResponseWriter, r *http.Request) {
	var req submitClaimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	result, err := s.analyzer.Analyze(r.Context(), req.Text)
	if err != nil {
		s.respondAnalyzeError(w, err)
		return
	}

	// The listing changed only when a new row was recorded.
	if !result.Reused() && result.Warning == "" && s.listCache != nil {
		_ = s.listCache.Clear()
	}

	respondJSON(w, http.StatusOK, result)
}

// respondAnalyzeError maps pipeline errors to HTTP statuses. Upstream
// detail is logged server-side and never leaked to the caller.
func (s *Server) respondAnalyzeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pipeline.ErrInvalidInput):
		http.Error(w, "Claim text must not be empty", http.StatusBadRequest)
	case errors.Is(err, pipeline.ErrEmbeddingUnavailable),
		errors.Is(err, pipeline.ErrGenerationUnavailable):
		s.logger.Error("analysis request failed", "error", err)
		http.Error(w, "Analysis is temporarily unavailable, please try again later", http.StatusBadGateway)
	default:
		s.logger.Error("analysis request failed", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// handleListClaims handles GET /api/claims?limit=N.
func (s *Server) handleListClaims(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = n
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	key := cache.ListKey(limit)
	if s.listCache != nil {
		if data, found := s.listCache.Get(key); found {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(data)
			return
		}
	}

	records, err := s.analyzer.ListRecent(r.Context(), limit)
	if err != nil {
		s.logger.Error("failed to list claims", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []model.ClaimRecord{}
	}

	data, err := json.Marshal(records)
	if err != nil {
		s.logger.Error("failed to encode claims", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if s.listCache != nil {
		_ = s.listCache.Set(key, data, s.config.ListCacheTTL)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// handleHealth handles GET /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"version":   s.config.Version,
		"timestamp": time.Now().UTC(),
	})
}

// handleGreeting handles GET /api/greeting?name=.
func (s *Server) handleGreeting(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = "world"
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"text": fmt.Sprintf("Hello %s from FactSpark!", name),
	})
}

// respondJSON writes a JSON response.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
