package search

import (
	"context"
	"sync"
	"testing"

	"github.com/kailas-cloud/artsearch/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	searchFn func(ctx context.Context, req *db.SearchRequest) (*db.SearchResult, error)
	lastReq  *db.SearchRequest
}

func (m *mockStore) Search(ctx context.Context, req *db.SearchRequest) (*db.SearchResult, error) {
	m.lastReq = req
	if m.searchFn != nil {
		return m.searchFn(ctx, req)
	}
	return &db.SearchResult{}, nil
}

// countingBarrier tracks outstanding read handles.
type countingBarrier struct {
	mu       sync.Mutex
	held     int
	acquired []string
}

func (b *countingBarrier) Acquire(name string) func() {
	b.mu.Lock()
	b.held++
	b.acquired = append(b.acquired, name)
	b.mu.Unlock()
	return func() {
		b.mu.Lock()
		b.held--
		b.mu.Unlock()
	}
}

func (b *countingBarrier) outstanding() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.held
}

func newTestExecutor(t *testing.T) (*Executor, *mockStore, *countingBarrier) {
	t.Helper()
	ms := &mockStore{}
	b := &countingBarrier{}
	return New(ms, b, "Article:"), ms, b
}
