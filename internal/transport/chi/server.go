// Package chi is the HTTP transport: article search, listing, health and metrics.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/artsearch/internal/domain"
	domart "github.com/kailas-cloud/artsearch/internal/domain/article"
	"github.com/kailas-cloud/artsearch/internal/logger"
	repsearch "github.com/kailas-cloud/artsearch/internal/repository/search"
	healthuc "github.com/kailas-cloud/artsearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/artsearch/internal/usecase/search"
)

// ArticleSearcher runs article searches.
type ArticleSearcher interface {
	Search(ctx context.Context, req searchuc.Request) (repsearch.ResultSet, error)
}

// ArticleReader lists articles and suggests authors.
type ArticleReader interface {
	List(ctx context.Context) ([]domart.Article, error)
	Authors(ctx context.Context, prefix string) ([]domart.Author, error)
}

// HealthChecker aggregates component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server holds the HTTP handlers.
type Server struct {
	search        ArticleSearcher
	articles      ArticleReader
	health        HealthChecker
	params        *paramValidator
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(search ArticleSearcher, articles ArticleReader, health HealthChecker, l *zap.Logger) *Server {
	if l == nil {
		l = zap.NewNop()
	}
	s := &Server{
		search:   search,
		articles: articles,
		health:   health,
		params:   newParamValidator(),
		logger:   l,
	}
	// Order matters: a SearchError matches its kind before any wrapped cause.
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrMalformedQuery, http.StatusBadRequest, ErrorCodeMalformedQuery),
		sentinelHandler(domain.ErrIndexNotFound, http.StatusServiceUnavailable, ErrorCodeIndexNotFound),
		sentinelHandler(domain.ErrIndexNotReady, http.StatusServiceUnavailable, ErrorCodeIndexNotReady),
		sentinelHandler(domain.ErrBackendFailure, http.StatusBadGateway, ErrorCodeBackendFailure),
		sentinelHandler(domain.ErrNotImplemented, http.StatusNotImplemented, ErrorCodeNotImplemented),
	}
	return s
}

// Routes registers the handlers on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Route("/api/articles", func(r chi.Router) {
		r.Get("/", s.ListArticles)
		r.Get("/search", s.SearchArticles)
		r.Get("/authors", s.AuthorAutocomplete)
	})
}

// SearchArticles handles GET /api/articles/search.
func (s *Server) SearchArticles(w http.ResponseWriter, r *http.Request) {
	p, err := bindSearchParams(r)
	if err == nil {
		err = s.params.validate(p)
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
		return
	}

	rs, err := s.search.Search(r.Context(), searchuc.Request{
		Query:    p.Query,
		MinPrice: p.MinPrice,
		MaxPrice: p.MaxPrice,
		Offset:   p.Offset,
		Limit:    p.Limit,
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResultToResponse(rs))
}

// ListArticles handles GET /api/articles.
func (s *Server) ListArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := s.articles.List(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]ArticleResponse, len(articles))
	for i, a := range articles {
		items[i] = articleToResponse(a)
	}
	writeJSON(w, http.StatusOK, items)
}

// AuthorAutocomplete handles GET /api/articles/authors.
func (s *Server) AuthorAutocomplete(w http.ResponseWriter, r *http.Request) {
	authors, err := s.articles.Authors(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	names := make([]string, len(authors))
	for i, a := range authors {
		names[i] = a.Name
	}
	writeJSON(w, http.StatusOK, names)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, HealthResponse{Status: string(report.Status), Checks: checks})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvertedRange,
		domain.ErrMalformedQuery,
		domain.ErrIndexNotFound,
		domain.ErrIndexNotReady,
		domain.ErrBackendFailure,
		domain.ErrNotImplemented,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContextOr(r.Context(), s.logger)
	log.Warn("domain error", zap.Error(err))

	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}

func searchResultToResponse(rs repsearch.ResultSet) SearchResponse {
	docs := make([]SearchDocument, len(rs.Documents))
	for i, d := range rs.Documents {
		fields := d.Fields
		if fields == nil {
			fields = map[string]string{}
		}
		docs[i] = SearchDocument{ID: d.ID, Fields: fields}
	}
	return SearchResponse{Total: rs.Total, Documents: docs}
}

func articleToResponse(a domart.Article) ArticleResponse {
	authors := a.AuthorIDs
	if authors == nil {
		authors = []string{}
	}
	return ArticleResponse{ID: a.ID, Title: a.Title, Price: a.Price, Authors: authors}
}
