package embedded

import (
	"context"
	"errors"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/kailas-cloud/artsearch/internal/db"
)

// HSetMulti writes every item in one bbolt transaction, then reindexes.
func (s *Store) HSetMulti(_ context.Context, items []db.HashSetItem) error {
	if len(items) == 0 {
		return nil
	}

	merged := make([]db.HashSetItem, 0, len(items))
	err := s.bolt.Update(func(tx *bolt.Tx) error {
		root := tx.Bucket(hashBucket)
		for _, item := range items {
			if item.Key == "" {
				return errors.New("empty key")
			}
			b, err := root.CreateBucketIfNotExists([]byte(item.Key))
			if err != nil {
				return fmt.Errorf("key %s: %w", item.Key, err)
			}
			for k, v := range item.Fields {
				if err := b.Put([]byte(k), []byte(v)); err != nil {
					return fmt.Errorf("key %s field %s: %w", item.Key, k, err)
				}
			}
			merged = append(merged, db.HashSetItem{Key: item.Key, Fields: readHash(b)})
		}
		return nil
	})
	if err != nil {
		return &db.Error{Op: db.OpHSet, Err: err}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range merged {
		for _, fi := range s.matchingIndexes(item.Key) {
			if err := fi.index.Index(item.Key, document(fi.def, item.Fields)); err != nil {
				return &db.Error{Op: db.OpHSet, Err: fmt.Errorf("index %s: %w", item.Key, err)}
			}
		}
	}
	return nil
}

// HGetAllMulti fetches several hashes in one read transaction.
func (s *Store) HGetAllMulti(_ context.Context, keys []string) ([]map[string]string, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	out := make([]map[string]string, len(keys))
	err := s.bolt.View(func(tx *bolt.Tx) error {
		root := tx.Bucket(hashBucket)
		for i, key := range keys {
			out[i] = map[string]string{}
			if b := root.Bucket([]byte(key)); b != nil {
				out[i] = readHash(b)
			}
		}
		return nil
	})
	if err != nil {
		return nil, &db.Error{Op: db.OpHGetAll, Err: err}
	}
	return out, nil
}

func readHash(b *bolt.Bucket) map[string]string {
	m := make(map[string]string)
	_ = b.ForEach(func(k, v []byte) error {
		m[string(k)] = string(v)
		return nil
	})
	return m
}

// eachHash visits every stored hash whose key starts with one of prefixes.
func (s *Store) eachHash(prefixes []string, fn func(key string, fields map[string]string) error) error {
	return s.bolt.View(func(tx *bolt.Tx) error {
		root := tx.Bucket(hashBucket)
		return root.ForEachBucket(func(k []byte) error {
			key := string(k)
			if !hasAnyPrefix(key, prefixes) {
				return nil
			}
			return fn(key, readHash(root.Bucket(k)))
		})
	})
}
