// Package goredis implements db.Store on top of go-redis/v9.
//
// It speaks RESP2 so FT.* replies arrive as flat arrays, the same shape
// the rueidis driver parses.
package goredis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kailas-cloud/artsearch/internal/db"
)

var _ db.Store = (*Store)(nil)

// Config holds connection parameters.
type Config struct {
	Addrs    []string
	Username string
	Password string
	DB       int
	PoolSize int
}

// Store implements db.Store via go-redis.
type Store struct {
	rdb redis.UniversalClient
}

// NewStore creates a go-redis backed store. A single address yields a plain
// client, several addresses a cluster client.
func NewStore(cfg Config) (*Store, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("addrs is required")
	}

	rdb := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:    cfg.Addrs,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
		Protocol: 2,
	})
	return &Store{rdb: rdb}, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	_ = s.rdb.Close()
}

// WaitForReady polls Ping until the server answers or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for database: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

// serverError returns the Redis server error behind err, if any.
func serverError(err error) (redis.Error, bool) {
	var rerr redis.Error
	if errors.As(err, &rerr) && !errors.Is(err, redis.Nil) {
		return rerr, true
	}
	return nil, false
}

func isServerErr(err error, substrs ...string) bool {
	rerr, ok := serverError(err)
	if !ok {
		return false
	}
	msg := strings.ToLower(rerr.Error())
	for _, sub := range substrs {
		if strings.Contains(msg, sub) {
			return true
		}
	}
	return false
}

var unknownIndexMessages = []string{"unknown index name", "no such index"}

func toArgs(cmd string, args []string) []any {
	out := make([]any, 0, len(args)+1)
	out = append(out, cmd)
	for _, a := range args {
		out = append(out, a)
	}
	return out
}
