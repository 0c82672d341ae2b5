package search

import (
	"context"

	"github.com/kailas-cloud/artsearch/internal/domain/search/query"
	repsearch "github.com/kailas-cloud/artsearch/internal/repository/search"
)

// Executor runs structured queries against an index.
type Executor interface {
	Execute(ctx context.Context, indexName string, q query.Query) (repsearch.ResultSet, error)
}

// QueryBuilder turns user input into a structured query.
type QueryBuilder interface {
	Build(raw string, minValue, maxValue float64, returnFields ...string) (query.Query, error)
	WithPage(q query.Query, offset, limit int) (query.Query, error)
}
