// Package embedded implements db.Store without a Redis server: hashes and
// sets live in a bbolt file, FT indexes are in-memory bleve indexes rebuilt
// from the stored hashes when created. Index definitions are kept in the
// file too, so indexes come back when the store is reopened.
package embedded

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/blevesearch/bleve/v2"
	bolt "go.etcd.io/bbolt"

	"github.com/kailas-cloud/artsearch/internal/db"
)

var _ db.Store = (*Store)(nil)

var (
	hashBucket  = []byte("hash")
	setBucket   = []byte("set")
	indexBucket = []byte("index")
)

// Config holds the embedded store settings.
type Config struct {
	Path string
}

// Store implements db.Store over bbolt and bleve.
type Store struct {
	bolt *bolt.DB

	mu      sync.RWMutex
	indexes map[string]*ftIndex
}

type ftIndex struct {
	def   *db.IndexDefinition
	index bleve.Index
}

// NewStore opens (or creates) the bbolt file at cfg.Path.
func NewStore(cfg Config) (*Store, error) {
	if cfg.Path == "" {
		return nil, errors.New("path is required")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	bdb, err := bolt.Open(cfg.Path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Path, err)
	}

	err = bdb.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{hashBucket, setBucket, indexBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("create bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = bdb.Close()
		return nil, err
	}

	s := &Store{bolt: bdb, indexes: make(map[string]*ftIndex)}
	if err := s.restoreIndexes(context.Background()); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// Ping reports whether the bbolt file is still open.
func (s *Store) Ping(_ context.Context) error {
	return s.bolt.View(func(*bolt.Tx) error { return nil })
}

// WaitForReady returns immediately: an opened store is ready.
func (s *Store) WaitForReady(ctx context.Context, _ time.Duration) error {
	return s.Ping(ctx)
}

// Close closes every bleve index and the bbolt file.
func (s *Store) Close() {
	s.mu.Lock()
	for name, fi := range s.indexes {
		_ = fi.index.Close()
		delete(s.indexes, name)
	}
	s.mu.Unlock()
	_ = s.bolt.Close()
}

// matchingIndexes returns the indexes whose prefixes cover key.
// Callers hold s.mu.
func (s *Store) matchingIndexes(key string) []*ftIndex {
	var out []*ftIndex
	for _, fi := range s.indexes {
		if coversKey(fi.def, key) {
			out = append(out, fi)
		}
	}
	return out
}
