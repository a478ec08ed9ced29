// Package server exposes the engine over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"football-betting-engine/internal/confidence"
	"football-betting-engine/internal/engine"
	"football-betting-engine/internal/match"
	"football-betting-engine/internal/report"
	"football-betting-engine/internal/store"
)

// Request limits.
const (
	MaxBodyBytes    = 5 << 20
	MaxBatchSize    = 200
	DefaultBestN    = 10
	MaxBestN        = 100
	DefaultBestHour = 24
	DefaultReports  = 20
	MaxReports      = 200
	requestTimeout  = 30 * time.Second
)

// Analyzer runs analyses.
type Analyzer interface {
	Analyze(ctx context.Context, f match.Fixture) (report.Report, error)
	AnalyzeBatch(ctx context.Context, fixtures []match.Fixture) []engine.BatchResult
	Mode() confidence.Mode
}

// History reads stored predictions.
type History interface {
	PredictionsByFixture(ctx context.Context, fixtureID int64) ([]store.Prediction, error)
	ReportsSince(ctx context.Context, since time.Time) ([]report.Report, error)
	RecentReports(ctx context.Context, limit int) ([]report.Report, error)
}

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	engine   Analyzer
	history  History
	gatherer prometheus.Gatherer
	origins  []string
	now      func() time.Time
}

// New creates a server. history may be nil, which disables the history
// endpoints.
func New(eng Analyzer, history History, gatherer prometheus.Gatherer, origins []string) *Server {
	return &Server{
		engine:   eng,
		history:  history,
		gatherer: gatherer,
		origins:  origins,
		now:      time.Now,
	}
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(requestTimeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.health)
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/analyze", s.analyze)
		r.Post("/analyze/batch", s.analyzeBatch)
		r.Get("/fixtures/{id}/predictions", s.fixturePredictions)
		r.Get("/best", s.best)
		r.Get("/reports", s.recentReports)
	})
	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": s.now().UTC(),
		"mode":      s.engine.Mode(),
		"history":   s.history != nil,
	})
}

func (s *Server) analyze(w http.ResponseWriter, r *http.Request) {
	var f match.Fixture
	if err := decodeBody(w, r, &f); err != nil {
		respondError(w, http.StatusBadRequest, "invalid fixture body", err)
		return
	}

	rep, err := s.engine.Analyze(r.Context(), f)
	if err != nil {
		if errors.Is(err, engine.ErrInvalidFixture) {
			respondError(w, http.StatusBadRequest, err.Error(), err)
			return
		}
		respondError(w, http.StatusInternalServerError, "analysis failed", err)
		return
	}
	respondJSON(w, http.StatusOK, rep)
}

func (s *Server) analyzeBatch(w http.ResponseWriter, r *http.Request) {
	var fixtures []match.Fixture
	if err := decodeBody(w, r, &fixtures); err != nil {
		respondError(w, http.StatusBadRequest, "invalid batch body", err)
		return
	}
	if len(fixtures) == 0 {
		respondError(w, http.StatusBadRequest, "batch is empty", nil)
		return
	}
	if len(fixtures) > MaxBatchSize {
		respondError(w, http.StatusBadRequest, "batch too large, max "+strconv.Itoa(MaxBatchSize), nil)
		return
	}

	results := s.engine.AnalyzeBatch(r.Context(), fixtures)
	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"results": results,
		"count":   len(results),
		"failed":  failed,
		"best":    engine.BestOfDay(results, DefaultBestN),
	})
}

func (s *Server) fixturePredictions(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		respondError(w, http.StatusServiceUnavailable, "prediction history is disabled", nil)
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "fixture id must be an integer", err)
		return
	}

	preds, err := s.history.PredictionsByFixture(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to retrieve predictions", err)
		return
	}
	if len(preds) == 0 {
		respondError(w, http.StatusNotFound, "no predictions for fixture", nil)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"fixture_id":  id,
		"predictions": preds,
		"count":       len(preds),
	})
}

// best ranks the main picks of the reports from the last hours.
// Query params: n, hours
func (s *Server) best(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		respondError(w, http.StatusServiceUnavailable, "prediction history is disabled", nil)
		return
	}
	n := parseIntParam(r, "n", DefaultBestN)
	if n < 1 || n > MaxBestN {
		n = DefaultBestN
	}
	hours := parseIntParam(r, "hours", DefaultBestHour)
	if hours < 1 {
		hours = DefaultBestHour
	}

	since := s.now().Add(-time.Duration(hours) * time.Hour)
	reports, err := s.history.ReportsSince(r.Context(), since)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to retrieve reports", err)
		return
	}

	entries := report.BestOfDay(reports, n)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"picks": entries,
		"count": len(entries),
		"since": since.UTC(),
	})
}

// recentReports lists the latest stored reports, newest first.
// Query params: limit
func (s *Server) recentReports(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		respondError(w, http.StatusServiceUnavailable, "prediction history is disabled", nil)
		return
	}
	limit := parseIntParam(r, "limit", DefaultReports)
	if limit < 1 || limit > MaxReports {
		limit = DefaultReports
	}

	reports, err := s.history.RecentReports(r.Context(), limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to retrieve reports", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"reports": reports,
		"count":   len(reports),
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func parseIntParam(r *http.Request, param string, defaultValue int) int {
	valueStr := r.URL.Query().Get(param)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Encoding response failed", "err", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	if err != nil && status >= http.StatusInternalServerError {
		slog.Error("Request failed", "message", message, "err", err)
	}
	respondJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		slog.Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", chimiddleware.GetReqID(r.Context()))
	})
}
