package embedded

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	bolt "go.etcd.io/bbolt"
	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/artsearch/internal/db"
)

const indexingBatchSize = 500

// CreateIndex builds an in-memory bleve index for def and backfills it
// from every stored hash under the definition's prefixes.
func (s *Store) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if err := def.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.indexes[def.Name]; ok {
		return db.ErrIndexExists
	}

	owned := *def
	owned.Prefixes = append([]string(nil), def.Prefixes...)
	owned.Fields = append([]db.IndexField(nil), def.Fields...)

	fi, err := s.build(ctx, &owned)
	if err != nil {
		return &db.Error{Op: db.OpCreateIndex, Err: err}
	}
	if err := s.saveDefinition(&owned); err != nil {
		_ = fi.index.Close()
		return &db.Error{Op: db.OpCreateIndex, Err: err}
	}

	s.indexes[def.Name] = fi
	return nil
}

// build creates the bleve index for def and fills it from stored hashes.
func (s *Store) build(ctx context.Context, def *db.IndexDefinition) (*ftIndex, error) {
	idx, err := bleve.NewMemOnly(indexMapping(def))
	if err != nil {
		return nil, err
	}
	fi := &ftIndex{def: def, index: idx}
	if err := s.backfill(ctx, fi); err != nil {
		_ = idx.Close()
		return nil, err
	}
	return fi, nil
}

func (s *Store) saveDefinition(def *db.IndexDefinition) error {
	raw, err := yaml.Marshal(def)
	if err != nil {
		return fmt.Errorf("encode definition: %w", err)
	}
	return s.bolt.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(indexBucket).Put([]byte(def.Name), raw)
	})
}

// restoreIndexes rebuilds every index whose definition is stored in the file.
func (s *Store) restoreIndexes(ctx context.Context) error {
	var defs []*db.IndexDefinition
	err := s.bolt.View(func(tx *bolt.Tx) error {
		return tx.Bucket(indexBucket).ForEach(func(k, v []byte) error {
			def := &db.IndexDefinition{}
			if err := yaml.Unmarshal(v, def); err != nil {
				return fmt.Errorf("decode definition %s: %w", k, err)
			}
			defs = append(defs, def)
			return nil
		})
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, def := range defs {
		fi, err := s.build(ctx, def)
		if err != nil {
			return fmt.Errorf("restore index %s: %w", def.Name, err)
		}
		s.indexes[def.Name] = fi
	}
	return nil
}

// DropIndex discards the index; the hashes stay in bbolt.
func (s *Store) DropIndex(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fi, ok := s.indexes[name]
	if !ok {
		return db.ErrIndexNotFound
	}
	delete(s.indexes, name)
	err := s.bolt.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(indexBucket).Delete([]byte(name))
	})
	if cerr := fi.index.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return &db.Error{Op: db.OpDropIndex, Err: err}
	}
	return nil
}

// IndexExists reports whether the index is registered.
func (s *Store) IndexExists(_ context.Context, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.indexes[name]
	return ok, nil
}

func (s *Store) backfill(ctx context.Context, fi *ftIndex) error {
	batch := fi.index.NewBatch()
	err := s.eachHash(fi.def.Prefixes, func(key string, fields map[string]string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := batch.Index(key, document(fi.def, fields)); err != nil {
			return fmt.Errorf("index %s: %w", key, err)
		}
		if batch.Size() >= indexingBatchSize {
			if err := fi.index.Batch(batch); err != nil {
				return err
			}
			batch = fi.index.NewBatch()
		}
		return nil
	})
	if err != nil {
		return err
	}
	if batch.Size() > 0 {
		return fi.index.Batch(batch)
	}
	return nil
}

func indexMapping(def *db.IndexDefinition) mapping.IndexMapping {
	im := bleve.NewIndexMapping()
	doc := bleve.NewDocumentMapping()
	doc.Dynamic = false

	for _, f := range def.Fields {
		switch f.Type {
		case db.IndexFieldText:
			doc.AddFieldMappingsAt(f.Name, bleve.NewTextFieldMapping())
		case db.IndexFieldNumeric:
			doc.AddFieldMappingsAt(f.Name, bleve.NewNumericFieldMapping())
		}
	}

	im.DefaultMapping = doc
	return im
}

// document converts a stored hash into the bleve document for def.
// Numeric values that do not parse are left out, as the engine does.
func document(def *db.IndexDefinition, fields map[string]string) map[string]any {
	doc := make(map[string]any, len(def.Fields))
	for _, f := range def.Fields {
		v, ok := fields[f.Name]
		if !ok {
			continue
		}
		switch f.Type {
		case db.IndexFieldText:
			doc[f.Name] = v
		case db.IndexFieldNumeric:
			if n, err := strconv.ParseFloat(v, 64); err == nil {
				doc[f.Name] = n
			}
		}
	}
	return doc
}

func coversKey(def *db.IndexDefinition, key string) bool {
	return hasAnyPrefix(key, def.Prefixes)
}

// hasAnyPrefix treats an empty prefix list as "every key".
func hasAnyPrefix(key string, prefixes []string) bool {
	if len(prefixes) == 0 {
		return true
	}
	for _, p := range prefixes {
		if strings.HasPrefix(key, p) {
			return true
		}
	}
	return false
}
