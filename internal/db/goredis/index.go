package goredis

import (
	"context"

	"github.com/kailas-cloud/artsearch/internal/db"
)

// CreateIndex issues FT.CREATE for def.
func (s *Store) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	args, err := def.CreateArgs()
	if err != nil {
		return err
	}
	if err := s.rdb.Do(ctx, toArgs("FT.CREATE", args)...).Err(); err != nil {
		if isServerErr(err, "index already exists") {
			return db.ErrIndexExists
		}
		return &db.Error{Op: db.OpCreateIndex, Err: err}
	}
	return nil
}

// DropIndex removes the index definition, keeping the hashes.
func (s *Store) DropIndex(ctx context.Context, name string) error {
	if err := s.rdb.Do(ctx, "FT.DROPINDEX", name).Err(); err != nil {
		if isServerErr(err, unknownIndexMessages...) {
			return db.ErrIndexNotFound
		}
		return &db.Error{Op: db.OpDropIndex, Err: err}
	}
	return nil
}

// IndexExists probes the index with FT.INFO.
func (s *Store) IndexExists(ctx context.Context, name string) (bool, error) {
	if err := s.rdb.Do(ctx, "FT.INFO", name).Err(); err != nil {
		if isServerErr(err, unknownIndexMessages...) {
			return false, nil
		}
		return false, &db.Error{Op: db.OpIndexInfo, Err: err}
	}
	return true, nil
}
