// Package search is the article search use case: it validates user input
// through the query builder and runs it against the article index.
package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/artsearch/internal/domain"
	domart "github.com/kailas-cloud/artsearch/internal/domain/article"
	repsearch "github.com/kailas-cloud/artsearch/internal/repository/search"
)

// Request is a paged article search. MinPrice and MaxPrice use -1 for "unset".
type Request struct {
	Query    string
	MinPrice float64
	MaxPrice float64
	Offset   int
	Limit    int
}

// Service searches articles.
type Service struct {
	exec      Executor
	builder   QueryBuilder
	indexName string
	logger    *zap.Logger

	attempts int
	backoff  time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithRetry retries backend failures up to attempts times in total, waiting
// backoff between tries. Malformed queries and missing indexes are never retried.
func WithRetry(attempts int, backoff time.Duration) Option {
	return func(s *Service) {
		if attempts > 0 {
			s.attempts = attempts
		}
		if backoff >= 0 {
			s.backoff = backoff
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a search service over indexName.
func New(exec Executor, builder QueryBuilder, indexName string, opts ...Option) *Service {
	s := &Service{
		exec:      exec,
		builder:   builder,
		indexName: indexName,
		logger:    zap.NewNop(),
		attempts:  1,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// SearchArticles runs q with optional price bounds and returns title and price.
func (s *Service) SearchArticles(ctx context.Context, q string, minPrice, maxPrice float64) (repsearch.ResultSet, error) {
	return s.Search(ctx, Request{Query: q, MinPrice: minPrice, MaxPrice: maxPrice})
}

// Search runs a paged article search.
func (s *Service) Search(ctx context.Context, req Request) (repsearch.ResultSet, error) {
	q, err := s.builder.Build(req.Query, req.MinPrice, req.MaxPrice, domart.FieldTitle, domart.FieldPrice)
	if err != nil {
		return repsearch.ResultSet{}, fmt.Errorf("build query: %w", err)
	}
	if q, err = s.builder.WithPage(q, req.Offset, req.Limit); err != nil {
		return repsearch.ResultSet{}, fmt.Errorf("page query: %w", err)
	}

	var rs repsearch.ResultSet
	for attempt := 1; ; attempt++ {
		rs, err = s.exec.Execute(ctx, s.indexName, q)
		if err == nil {
			return rs, nil
		}
		if attempt >= s.attempts || !retryable(err) {
			return repsearch.ResultSet{}, err
		}

		s.logger.Warn("Search failed, retrying",
			zap.String("index", s.indexName),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		if werr := wait(ctx, s.backoff); werr != nil {
			return repsearch.ResultSet{}, errors.Join(err, werr)
		}
	}
}

func retryable(err error) bool {
	return errors.Is(err, domain.ErrBackendFailure) &&
		!errors.Is(err, domain.ErrMalformedQuery) &&
		!errors.Is(err, domain.ErrIndexNotFound)
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
