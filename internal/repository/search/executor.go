// Package search runs structured queries against an index and maps engine
// failures onto domain errors.
package search

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/kailas-cloud/artsearch/internal/db"
	"github.com/kailas-cloud/artsearch/internal/domain"
	"github.com/kailas-cloud/artsearch/internal/domain/search/query"
	"github.com/kailas-cloud/artsearch/internal/metrics"
)

// searcher is the consumer interface for search operations (ISP).
type searcher interface {
	Search(ctx context.Context, req *db.SearchRequest) (*db.SearchResult, error)
}

// barrier hands out read handles on an index.
type barrier interface {
	Acquire(name string) (release func())
}

// Document is one hit: the record ID and its projected fields.
type Document struct {
	ID     string
	Fields map[string]string
}

// ResultSet is the engine's total hit count plus the requested page, in engine order.
type ResultSet struct {
	Total     int
	Documents []Document
}

// Executor runs queries. It never retries.
type Executor struct {
	store     searcher
	barrier   barrier
	keyPrefix string
}

// New creates an executor. keyPrefix is stripped from record keys to form IDs.
func New(s searcher, b barrier, keyPrefix string) *Executor {
	return &Executor{store: s, barrier: b, keyPrefix: keyPrefix}
}

// Execute runs q against indexName while holding a read handle on it.
func (e *Executor) Execute(ctx context.Context, indexName string, q query.Query) (rs ResultSet, err error) {
	release := e.barrier.Acquire(indexName)
	defer release()

	start := time.Now()
	defer func() {
		metrics.SearchDuration.Observe(time.Since(start).Seconds())
		metrics.SearchTotal.WithLabelValues(outcome(err)).Inc()
	}()

	res, err := e.store.Search(ctx, toRequest(indexName, q))
	if err != nil {
		return ResultSet{}, classify(indexName, err)
	}

	rs = ResultSet{Total: res.Total, Documents: make([]Document, 0, len(res.Entries))}
	for _, entry := range res.Entries {
		rs.Documents = append(rs.Documents, Document{
			ID:     strings.TrimPrefix(entry.Key, e.keyPrefix),
			Fields: entry.Fields,
		})
	}
	return rs, nil
}

func toRequest(indexName string, q query.Query) *db.SearchRequest {
	req := &db.SearchRequest{
		IndexName:    indexName,
		Query:        q.Raw,
		ReturnFields: q.ReturnFields,
		Offset:       q.Offset,
		Limit:        q.Limit,
	}
	if q.HasFilter() {
		f := q.NumericFilter
		req.Filters = []db.NumericFilter{{Field: f.Field, Min: f.Min, Max: f.Max}}
	}
	return req
}

func classify(indexName string, err error) error {
	kind := domain.ErrBackendFailure
	switch {
	case errors.Is(err, db.ErrIndexNotFound):
		kind = domain.ErrIndexNotFound
	case errors.Is(err, db.ErrQueryRejected):
		kind = domain.ErrMalformedQuery
	}
	return &domain.SearchError{Index: indexName, Kind: kind, Err: err}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrIndexNotFound):
		return "index_not_found"
	case errors.Is(err, domain.ErrMalformedQuery):
		return "malformed"
	default:
		return "backend"
	}
}
