package httpadapter

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/eonet-tracker/internal/analytics"
	"github.com/couchcryptid/eonet-tracker/internal/domain"
	"github.com/couchcryptid/eonet-tracker/internal/geomap"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// CategorySource serves the cached category catalog.
type CategorySource interface {
	Categories() ([]domain.Category, bool)
}

// Server exposes the event API plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	engine     *analytics.Engine
	categories CategorySource
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the /api routes and the /healthz,
// /readyz, and /metrics operational routes.
func NewServer(addr string, engine *analytics.Engine, categories CategorySource, ready ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		engine:     engine,
		categories: categories,
		logger:     logger,
	}

	mux.HandleFunc("GET /api/events", s.handleEvents)
	mux.HandleFunc("GET /api/map", s.handleMap)
	mux.HandleFunc("GET /api/categories", s.handleCategories)
	mux.HandleFunc("GET /api/summary", s.handleSummary)
	mux.HandleFunc("GET /api/trends", s.handleTrends)
	mux.HandleFunc("GET /api/correlation", s.handleCorrelation)
	mux.HandleFunc("GET /api/analysis/data", s.handleAnalysisData)

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, s.engine.FilterEvents(filter))
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	result := s.engine.FilterEvents(filter)
	writeJSON(w, http.StatusOK, geomap.Project(result.Events))
}

func (s *Server) handleCategories(w http.ResponseWriter, _ *http.Request) {
	categories, ok := s.categories.Categories()
	if !ok {
		categories = make([]domain.Category, 0)
	}
	writeJSON(w, http.StatusOK, categoriesResponse{Categories: categories})
}

func (s *Server) handleSummary(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Summary())
}

func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	period := analytics.Period(query.Get("period"))
	writeJSON(w, http.StatusOK, s.engine.Trends(query.Get("category"), period))
}

func (s *Server) handleCorrelation(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Correlation())
}

func (s *Server) handleAnalysisData(w http.ResponseWriter, r *http.Request) {
	windowDays := defaultAnalysisWindowDays
	if raw := r.URL.Query().Get("period"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid period: %q is not an integer", raw))
			return
		}
		windowDays = parsed
	}
	writeJSON(w, http.StatusOK, s.engine.AnalysisData(windowDays))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// defaultAnalysisWindowDays is the analysis window when the period query
// parameter is absent.
const defaultAnalysisWindowDays = 30

func parseFilter(query url.Values) (analytics.Filter, error) {
	filter := analytics.Filter{
		StartDate: query.Get("start_date"),
		EndDate:   query.Get("end_date"),
		Category:  query.Get("event_type"),
	}

	minMagnitude, err := parseMagnitude(query, "min_magnitude")
	if err != nil {
		return analytics.Filter{}, err
	}
	filter.MinMagnitude = minMagnitude

	maxMagnitude, err := parseMagnitude(query, "max_magnitude")
	if err != nil {
		return analytics.Filter{}, err
	}
	filter.MaxMagnitude = maxMagnitude

	return filter, nil
}

func parseMagnitude(query url.Values, key string) (*float64, error) {
	raw := query.Get(key)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %q is not a number", key, raw)
	}
	return &value, nil
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response body
}

// Response envelope for the categories route.
type categoriesResponse struct {
	Categories []domain.Category `json:"categories"`
}
