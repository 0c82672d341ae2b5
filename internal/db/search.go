package db

import (
	"errors"
	"math"
	"strconv"
)

// DefaultSearchLimit mirrors the engine's implicit LIMIT 0 10.
const DefaultSearchLimit = 10

// NumericFilter is an inclusive FILTER clause on a numeric field.
type NumericFilter struct {
	Field string
	Min   float64
	Max   float64
}

// SearchRequest is the input for FT.SEARCH.
type SearchRequest struct {
	IndexName    string
	Query        string
	Filters      []NumericFilter
	ReturnFields []string
	Offset       int
	Limit        int
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Fields map[string]string
}

// Args renders the FT.SEARCH arguments (without the command name).
// The query text is passed through verbatim.
func (r *SearchRequest) Args() ([]string, error) {
	if r.IndexName == "" {
		return nil, errors.New("index name is required")
	}
	if r.Offset < 0 {
		return nil, errors.New("offset must not be negative")
	}

	args := []string{r.IndexName, r.Query}

	for _, f := range r.Filters {
		if f.Field == "" {
			return nil, errors.New("filter field is required")
		}
		args = append(args, "FILTER", f.Field, formatBound(f.Min), formatBound(f.Max))
	}

	if len(r.ReturnFields) > 0 {
		args = append(args, "RETURN", strconv.Itoa(len(r.ReturnFields)))
		args = append(args, r.ReturnFields...)
	}

	limit := r.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	args = append(args, "LIMIT", strconv.Itoa(r.Offset), strconv.Itoa(limit))

	return args, nil
}

func formatBound(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "+inf"
	case math.IsInf(v, -1):
		return "-inf"
	default:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
}
