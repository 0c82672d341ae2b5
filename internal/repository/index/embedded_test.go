package index

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kailas-cloud/artsearch/internal/db"
	"github.com/kailas-cloud/artsearch/internal/db/embedded"
	"github.com/kailas-cloud/artsearch/internal/domain/schema"
)

// recordingStore remembers the last definition that was created.
type recordingStore struct {
	*embedded.Store

	mu   sync.Mutex
	last *db.IndexDefinition
}

func (r *recordingStore) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if err := r.Store.CreateIndex(ctx, def); err != nil {
		return err
	}
	r.mu.Lock()
	r.last = def
	r.mu.Unlock()
	return nil
}

func TestEnsureIndex_ConcurrentOnEmbeddedStore(t *testing.T) {
	es, err := embedded.NewStore(embedded.Config{Path: filepath.Join(t.TempDir(), "idx.db")})
	require.NoError(t, err)
	t.Cleanup(es.Close)

	rs := &recordingStore{Store: es}
	mgr := New(rs, zap.NewNop())
	ctx := context.Background()

	const n = 8
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := range n {
		def := testDefinition()
		if i%2 == 1 {
			def.Schema = append(def.Schema, schema.Field{Name: "rank", Kind: schema.Numeric})
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- mgr.EnsureIndex(ctx, def)
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	assert.True(t, mgr.IndexExists(ctx, "article-idx"))

	// the engine holds exactly the schema of the last successful create
	rs.mu.Lock()
	last := rs.last
	rs.mu.Unlock()
	require.NotNil(t, last)

	require.NoError(t, es.HSetMulti(ctx, []db.HashSetItem{{Key: "Article:1", Fields: map[string]string{"title": "Alpha", "price": "9.99", "rank": "3"}}}))
	filter := db.NumericFilter{Field: "rank", Min: 0, Max: 10}
	_, err = es.Search(ctx, &db.SearchRequest{IndexName: "article-idx", Query: "Alpha", Filters: []db.NumericFilter{filter}})
	if _, hasRank := last.Field("rank"); hasRank {
		assert.NoError(t, err)
	} else {
		assert.ErrorIs(t, err, db.ErrQueryRejected)
	}
}
