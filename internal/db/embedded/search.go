package embedded

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/kailas-cloud/artsearch/internal/db"
)

// Search evaluates req against the bleve index and projects fields from
// the stored hashes.
func (s *Store) Search(ctx context.Context, req *db.SearchRequest) (*db.SearchResult, error) {
	if _, err := req.Args(); err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: fmt.Errorf("%w: %w", db.ErrQueryRejected, err)}
	}

	// DropIndex waits for in-flight searches.
	s.mu.RLock()
	defer s.mu.RUnlock()
	fi, ok := s.indexes[req.IndexName]
	if !ok {
		return nil, db.ErrIndexNotFound
	}

	q, err := buildQuery(fi.def, req)
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: fmt.Errorf("%w: %w", db.ErrQueryRejected, err)}
	}

	limit := req.Limit
	if limit <= 0 {
		limit = db.DefaultSearchLimit
	}
	sr := bleve.NewSearchRequestOptions(q, limit, req.Offset, false)

	res, err := fi.index.SearchInContext(ctx, sr)
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}

	keys := make([]string, len(res.Hits))
	for i, hit := range res.Hits {
		keys[i] = hit.ID
	}
	hashes, err := s.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}

	out := &db.SearchResult{Total: int(res.Total)}
	for i, key := range keys {
		out.Entries = append(out.Entries, db.SearchEntry{
			Key:    key,
			Fields: project(hashes[i], req.ReturnFields),
		})
	}
	return out, nil
}

// buildQuery parses the raw text and ANDs it with the numeric filters.
// "*" and the empty string match everything.
func buildQuery(def *db.IndexDefinition, req *db.SearchRequest) (query.Query, error) {
	var text query.Query
	raw := strings.TrimSpace(req.Query)
	if raw == "" || raw == "*" {
		text = bleve.NewMatchAllQuery()
	} else {
		qs := bleve.NewQueryStringQuery(raw)
		if _, err := qs.Parse(); err != nil {
			return nil, err
		}
		text = qs
	}

	if len(req.Filters) == 0 {
		return text, nil
	}

	conj := bleve.NewConjunctionQuery(text)
	for _, f := range req.Filters {
		field, ok := def.Field(f.Field)
		if !ok || field.Type != db.IndexFieldNumeric {
			return nil, fmt.Errorf("%s is not a numeric field", f.Field)
		}
		conj.AddQuery(rangeQuery(f))
	}
	return conj, nil
}

func rangeQuery(f db.NumericFilter) query.Query {
	inclusive := true
	var minPtr, maxPtr *float64
	if !math.IsInf(f.Min, -1) {
		minPtr = &f.Min
	}
	if !math.IsInf(f.Max, 1) {
		maxPtr = &f.Max
	}
	if minPtr == nil && maxPtr == nil {
		lowest := -math.MaxFloat64
		minPtr = &lowest
	}
	rq := bleve.NewNumericRangeInclusiveQuery(minPtr, maxPtr, &inclusive, &inclusive)
	rq.SetField(f.Field)
	return rq
}

func project(fields map[string]string, names []string) map[string]string {
	if len(names) == 0 {
		return fields
	}
	out := make(map[string]string, len(names))
	for _, n := range names {
		if v, ok := fields[n]; ok {
			out[n] = v
		}
	}
	return out
}
