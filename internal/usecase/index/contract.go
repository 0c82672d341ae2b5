package index

import (
	"context"

	"github.com/kailas-cloud/artsearch/internal/domain/schema"
)

// Manager recreates indexes and probes their existence.
type Manager interface {
	EnsureIndex(ctx context.Context, def schema.Definition) error
	IndexExists(ctx context.Context, name string) bool
}
