package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/bazario/shopsearch/internal/domain/product"
	"github.com/bazario/shopsearch/internal/metrics"
	analyticsuc "github.com/bazario/shopsearch/internal/usecase/analytics"
	healthuc "github.com/bazario/shopsearch/internal/usecase/health"
	searchuc "github.com/bazario/shopsearch/internal/usecase/search"
)

// Error codes returned in JSON error bodies.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeUnauthorized     = "unauthorized"
	codeInternalError    = "internal_error"
)

// Searcher is the text search surface the server consumes (ISP).
type Searcher interface {
	Hybrid(ctx context.Context, query string, limit int) ([]product.Product, searchuc.Outcome)
	Trending(ctx context.Context, limit int) ([]product.Product, searchuc.Outcome)
}

// Matcher matches image descriptions to products.
type Matcher interface {
	Match(ctx context.Context, description string, limit int) ([]product.Product, searchuc.Outcome)
}

// Enricher attaches highlights and specifications to a result set.
type Enricher interface {
	Enrich(ctx context.Context, products []product.Product) []product.Product
}

// Analytics records and summarizes search events.
type Analytics interface {
	Record(ctx context.Context, query string, resultCount int) error
	Summary(ctx context.Context, rng analyticsuc.Range, limit int) (analyticsuc.Summary, error)
}

// Health reports component availability.
type Health interface {
	Check(ctx context.Context) healthuc.Report
}

// Limits bounds request-supplied result sizes.
type Limits struct {
	Default int
	Max     int
}

// Server is the HTTP API server.
type Server struct {
	search    Searcher
	matcher   Matcher
	enricher  Enricher
	analytics Analytics
	health    Health
	limits    Limits
	logger    *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(
	search Searcher,
	matcher Matcher,
	enricher Enricher,
	analytics Analytics,
	health Health,
	limits Limits,
	logger *zap.Logger,
) *Server {
	if limits.Default <= 0 {
		limits.Default = 20
	}
	if limits.Max <= 0 {
		limits.Max = 100
	}
	return &Server{
		search:    search,
		matcher:   matcher,
		enricher:  enricher,
		analytics: analytics,
		health:    health,
		limits:    limits,
		logger:    logger,
	}
}

// Routes mounts all handlers on the router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/v1/search", s.Search)
	r.Get("/v1/trending", s.Trending)
	r.Post("/v1/image-search", s.ImageSearch)
	r.Get("/v1/search/analytics", s.AnalyticsSummary)
	r.Post("/v1/search/analytics", s.RecordSearch)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

type searchResponse struct {
	Products []product.Product `json:"products"`
	Count    int               `json:"count"`
	Strategy string            `json:"strategy"`
	Degraded bool              `json:"degraded"`
}

// Search handles GET /v1/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "query parameter q is required")
		return
	}

	limit, err := s.limitParam(r, s.limits.Default)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	start := time.Now()
	products, out := s.search.Hybrid(r.Context(), query, limit)
	observeSearch(out, time.Since(start), len(products))

	products = s.enricher.Enrich(r.Context(), products)
	writeSearchResponse(w, products, out)
}

// Trending handles GET /v1/trending.
func (s *Server) Trending(w http.ResponseWriter, r *http.Request) {
	limit, err := s.limitParam(r, s.limits.Default)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	start := time.Now()
	products, out := s.search.Trending(r.Context(), limit)
	observeSearch(out, time.Since(start), len(products))

	products = s.enricher.Enrich(r.Context(), products)
	writeSearchResponse(w, products, out)
}

type imageSearchRequest struct {
	Description string `json:"description"`
	Limit       int    `json:"limit"`
}

// ImageSearch handles POST /v1/image-search. The request carries the
// description an upstream vision model produced for the image.
func (s *Server) ImageSearch(w http.ResponseWriter, r *http.Request) {
	var req imageSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	limit := req.Limit
	if limit < 0 {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "limit must not be negative")
		return
	}
	if limit > s.limits.Max {
		limit = s.limits.Max
	}

	start := time.Now()
	products, out := s.matcher.Match(r.Context(), req.Description, limit)
	observeSearch(out, time.Since(start), len(products))

	products = s.enricher.Enrich(r.Context(), products)
	writeSearchResponse(w, products, out)
}

type recordSearchRequest struct {
	Query       string `json:"query"`
	ResultCount int    `json:"result_count"`
}

// RecordSearch handles POST /v1/search/analytics.
func (s *Server) RecordSearch(w http.ResponseWriter, r *http.Request) {
	var req recordSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := s.analytics.Record(r.Context(), req.Query, req.ResultCount); err != nil {
		if errors.Is(err, analyticsuc.ErrEmptyQuery) {
			writeError(w, http.StatusBadRequest, codeValidationFailed, "query is required")
			return
		}
		s.logger.Error("analytics record failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AnalyticsSummary handles GET /v1/search/analytics.
func (s *Server) AnalyticsSummary(w http.ResponseWriter, r *http.Request) {
	rng, err := rangeParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			writeError(w, http.StatusBadRequest, codeValidationFailed, "limit must be a positive integer")
			return
		}
	}

	summary, err := s.analytics.Summary(r.Context(), rng, limit)
	if err != nil {
		s.logger.Error("analytics summary failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// limitParam parses the optional limit query parameter, applying the
// configured default and ceiling.
func (s *Server) limitParam(r *http.Request, def int) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, errors.New("limit must be a positive integer")
	}
	if limit > s.limits.Max {
		limit = s.limits.Max
	}
	return limit, nil
}

// rangeParams parses optional start/end bounds, RFC 3339 or plain date.
func rangeParams(r *http.Request) (analyticsuc.Range, error) {
	var rng analyticsuc.Range

	if raw := r.URL.Query().Get("start"); raw != "" {
		t, err := parseTimeParam(raw)
		if err != nil {
			return analyticsuc.Range{}, errors.New("start must be an RFC 3339 timestamp or YYYY-MM-DD date")
		}
		rng.Start = &t
	}
	if raw := r.URL.Query().Get("end"); raw != "" {
		t, err := parseTimeParam(raw)
		if err != nil {
			return analyticsuc.Range{}, errors.New("end must be an RFC 3339 timestamp or YYYY-MM-DD date")
		}
		rng.End = &t
	}

	return rng, nil
}

func parseTimeParam(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

func observeSearch(out searchuc.Outcome, elapsed time.Duration, count int) {
	strategy := string(out.Strategy)
	metrics.SearchRequestsTotal.WithLabelValues(strategy, out.Label()).Inc()
	metrics.SearchDuration.WithLabelValues(strategy).Observe(elapsed.Seconds())
	metrics.SearchResultCount.WithLabelValues(strategy).Observe(float64(count))
}

func writeSearchResponse(w http.ResponseWriter, products []product.Product, out searchuc.Outcome) {
	if products == nil {
		products = []product.Product{}
	}
	writeJSON(w, http.StatusOK, searchResponse{
		Products: products,
		Count:    len(products),
		Strategy: string(out.Strategy),
		Degraded: out.Degraded,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
