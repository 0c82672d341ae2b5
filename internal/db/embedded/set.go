package embedded

import (
	"context"
	"math/rand/v2"

	bolt "go.etcd.io/bbolt"

	"github.com/kailas-cloud/artsearch/internal/db"
)

var memberMark = []byte{1}

// SAdd adds members to a set.
func (s *Store) SAdd(_ context.Context, key string, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	err := s.bolt.Update(func(tx *bolt.Tx) error {
		b, err := tx.Bucket(setBucket).CreateBucketIfNotExists([]byte(key))
		if err != nil {
			return err
		}
		for _, m := range members {
			if err := b.Put([]byte(m), memberMark); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return &db.Error{Op: db.OpSAdd, Err: err}
	}
	return nil
}

// SMembers returns every member of a set.
func (s *Store) SMembers(_ context.Context, key string) ([]string, error) {
	members, err := s.members(key)
	if err != nil {
		return nil, &db.Error{Op: db.OpSMembers, Err: err}
	}
	return members, nil
}

// SRandMember returns up to count distinct random members.
func (s *Store) SRandMember(_ context.Context, key string, count int) ([]string, error) {
	members, err := s.members(key)
	if err != nil {
		return nil, &db.Error{Op: db.OpSRandMember, Err: err}
	}
	rand.Shuffle(len(members), func(i, j int) { members[i], members[j] = members[j], members[i] })
	if count < len(members) {
		members = members[:max(count, 0)]
	}
	return members, nil
}

// SCard returns the set cardinality.
func (s *Store) SCard(_ context.Context, key string) (int64, error) {
	members, err := s.members(key)
	if err != nil {
		return 0, &db.Error{Op: db.OpSCard, Err: err}
	}
	return int64(len(members)), nil
}

func (s *Store) members(key string) ([]string, error) {
	var out []string
	err := s.bolt.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(setBucket).Bucket([]byte(key))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, _ []byte) error {
			out = append(out, string(k))
			return nil
		})
	})
	return out, err
}
