// Package api provides the HTTP JSON API over the employment decision
// engines. Handlers parse filter parameters, call the engines, and encode
// the result; no transformation logic lives here.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"workforce-pulse/datasource"
	"workforce-pulse/decision/aggregation"
	"workforce-pulse/decision/filter"
	"workforce-pulse/decision/fusion"
	"workforce-pulse/decision/insight"
)

// Server is the HTTP API server.
type Server struct {
	httpServer *http.Server
	dataset    *datasource.Dataset
	config     *Config
	logger     zerolog.Logger
}

// Config holds server configuration.
type Config struct {
	Port           int           `env:"PULSE_PORT" envDefault:"8080"`
	ReadTimeout    time.Duration `env:"PULSE_READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout   time.Duration `env:"PULSE_WRITE_TIMEOUT" envDefault:"60s"`
	CORSOrigins    []string      `env:"PULSE_CORS_ORIGINS" envSeparator:"," envDefault:"*"`
	DataSeed       int64         `env:"PULSE_SEED" envDefault:"42"`
	LogLevel       string        `env:"PULSE_LOG_LEVEL" envDefault:"info"`
	ShutdownWindow time.Duration `env:"PULSE_SHUTDOWN_WINDOW" envDefault:"30s"`
}

// DefaultConfig returns default server configuration.
func DefaultConfig() *Config {
	return &Config{
		Port:           8080,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   60 * time.Second,
		CORSOrigins:    []string{"*"},
		DataSeed:       datasource.DefaultSeed,
		LogLevel:       "info",
		ShutdownWindow: 30 * time.Second,
	}
}

// NewServer creates an API server over an already-constructed dataset.
func NewServer(dataset *datasource.Dataset, config *Config, logger zerolog.Logger) *Server {
	if config == nil {
		config = DefaultConfig()
	}
	return &Server{
		dataset: dataset,
		config:  config,
		logger:  logger,
	}
}

// Handler builds the routed and middleware-wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReady)
	mux.HandleFunc("/api/v1/summary", s.handleSummary)
	mux.HandleFunc("/api/v1/fused", s.handleFused)
	mux.HandleFunc("/api/v1/insights", s.handleInsights)
	mux.HandleFunc("/api/v1/trends/industry", s.handleIndustryTrends)
	mux.HandleFunc("/api/v1/options", s.handleOptions)

	return s.corsMiddleware(s.loggingMiddleware(mux))
}

// Start starts the HTTP server and blocks until it exits.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.logger.Info().Int("port", s.config.Port).Msg("workforce-pulse API server starting")
	return s.httpServer.ListenAndServe()
}

// StartWithGracefulShutdown starts the server and drains it on SIGINT or
// SIGTERM.
func (s *Server) StartWithGracefulShutdown() error {
	errChan := make(chan error, 1)
	go func() {
		if err := s.Start(); err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case <-quit:
		s.logger.Info().Msg("shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownWindow)
		defer cancel()
		return s.httpServer.Shutdown(ctx)
	}
}

// =============================================================================
// MIDDLEWARE
// =============================================================================

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote", r.RemoteAddr).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		allowed := false
		for _, o := range s.config.CORSOrigins {
			if o == "*" || o == origin {
				allowed = true
				break
			}
		}

		if allowed {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Max-Age", "86400")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// =============================================================================
// HEALTH ENDPOINTS
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "1.0.0",
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.dataset == nil {
		s.jsonError(w, http.StatusServiceUnavailable, "dataset not loaded")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ready"})
}

// =============================================================================
// ANALYTICS ENDPOINTS
// =============================================================================

// SummaryResponse is the API shape of the summary statistics bundle.
type SummaryResponse struct {
	*aggregation.SummaryBundle
	FusedRows int `json:"fused_rows"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.jsonError(w, http.StatusMethodNotAllowed, "GET only")
		return
	}

	sel, err := selectionFromQuery(r)
	if err != nil {
		s.jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	reductions := filter.Apply(s.dataset.Reductions, sel)
	hires := filter.Apply(s.dataset.Hires, sel)
	fused := fusion.Fuse(reductions, hires)

	s.jsonResponse(w, http.StatusOK, SummaryResponse{
		SummaryBundle: aggregation.Summarize(reductions, hires, fused),
		FusedRows:     len(fused),
	})
}

func (s *Server) handleFused(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.jsonError(w, http.StatusMethodNotAllowed, "GET only")
		return
	}

	sel, err := selectionFromQuery(r)
	if err != nil {
		s.jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	fused := fusion.Fuse(
		filter.Apply(s.dataset.Reductions, sel),
		filter.Apply(s.dataset.Hires, sel),
	)
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"rows":  fused,
		"count": len(fused),
	})
}

// InsightsResponse groups the three narrative sequences.
type InsightsResponse struct {
	Insights        []string `json:"insights"`
	Predictions     []string `json:"predictions"`
	Recommendations []string `json:"recommendations"`
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.jsonError(w, http.StatusMethodNotAllowed, "GET only")
		return
	}

	sel, err := selectionFromQuery(r)
	if err != nil {
		s.jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	reductions := filter.Apply(s.dataset.Reductions, sel)
	hires := filter.Apply(s.dataset.Hires, sel)
	fused := fusion.Fuse(reductions, hires)

	s.jsonResponse(w, http.StatusOK, InsightsResponse{
		Insights:        insight.Generate(reductions, hires, fused),
		Predictions:     insight.PredictTrends(fused),
		Recommendations: insight.Recommendations(),
	})
}

func (s *Server) handleIndustryTrends(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.jsonError(w, http.StatusMethodNotAllowed, "GET only")
		return
	}

	sel, err := selectionFromQuery(r)
	if err != nil {
		s.jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	trends := aggregation.IndustryTrends(
		filter.Apply(s.dataset.Reductions, sel),
		filter.Apply(s.dataset.Hires, sel),
	)
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"trends": trends,
		"count":  len(trends),
	})
}

// OptionsResponse lists the values the filter widgets can offer.
type OptionsResponse struct {
	Companies  []string `json:"companies"`
	Industries []string `json:"industries"`
	Years      []int    `json:"years"`
	MinDate    string   `json:"min_date,omitempty"`
	MaxDate    string   `json:"max_date,omitempty"`
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.jsonError(w, http.StatusMethodNotAllowed, "GET only")
		return
	}

	resp := OptionsResponse{
		Companies:  s.dataset.Companies(),
		Industries: s.dataset.Industries(),
		Years:      s.dataset.Years(),
	}
	if min, max, ok := s.dataset.DateRange(); ok {
		resp.MinDate = min.Format("2006-01-02")
		resp.MaxDate = max.Format("2006-01-02")
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// =============================================================================
// FILTER PARAMETER PARSING
// =============================================================================

// selectionFromQuery maps the filter query parameters onto a Selection. An
// absent parameter leaves its dimension unconstrained; a parameter that is
// present but empty is an explicit empty selection matching no rows.
func selectionFromQuery(r *http.Request) (filter.Selection, error) {
	q := r.URL.Query()
	var sel filter.Selection

	if q.Has("companies") {
		sel.Companies = filter.Only(splitParam(q.Get("companies"))...)
	}
	if q.Has("industries") {
		sel.Industries = filter.Only(splitParam(q.Get("industries"))...)
	}
	if q.Has("years") {
		years, err := intParams(splitParam(q.Get("years")))
		if err != nil {
			return sel, fmt.Errorf("years: %w", err)
		}
		sel.Years = filter.Only(years...)
	}
	if q.Has("months") {
		months, err := intParams(splitParam(q.Get("months")))
		if err != nil {
			return sel, fmt.Errorf("months: %w", err)
		}
		sel.Months = filter.Only(months...)
	}
	return sel, nil
}

func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func intParams(values []string) ([]int, error) {
	out := make([]int, 0, len(values))
	for _, v := range values {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", v)
		}
		out = append(out, n)
	}
	return out, nil
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func (s *Server) jsonResponse(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error().Err(err).Msg("encode response")
	}
}

func (s *Server) jsonError(w http.ResponseWriter, status int, msg string) {
	s.jsonResponse(w, status, map[string]string{"error": msg})
}
