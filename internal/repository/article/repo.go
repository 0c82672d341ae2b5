// Package article stores articles and authors as hashes, with a set per
// record kind listing the IDs.
package article

import (
	"context"
	"fmt"
	"sort"

	"github.com/kailas-cloud/artsearch/internal/db"
	domart "github.com/kailas-cloud/artsearch/internal/domain/article"
)

// store is the consumer interface for article records (ISP).
type store interface {
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	SAdd(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
	SRandMember(ctx context.Context, key string, count int) ([]string, error)
	SCard(ctx context.Context, key string) (int64, error)
}

// Repo implements the article and author storage used by the use cases.
type Repo struct {
	store     store
	keyPrefix string
}

// New creates an article repository. keyPrefix must match the index
// definition; empty means the default "Article:".
func New(s store, keyPrefix string) *Repo {
	if keyPrefix == "" {
		keyPrefix = domart.KeyPrefix
	}
	return &Repo{store: s, keyPrefix: keyPrefix}
}

// Count returns the number of stored articles.
func (r *Repo) Count(ctx context.Context) (int64, error) {
	n, err := r.store.SCard(ctx, domart.SetKey)
	if err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return n, nil
}

// SaveArticles writes the article hashes, then registers their IDs.
func (r *Repo) SaveArticles(ctx context.Context, articles []domart.Article) error {
	if len(articles) == 0 {
		return nil
	}

	items := make([]db.HashSetItem, len(articles))
	ids := make([]string, len(articles))
	for i, a := range articles {
		if err := a.Validate(); err != nil {
			return err
		}
		items[i] = db.HashSetItem{Key: r.keyPrefix + a.ID, Fields: articleToHash(a)}
		ids[i] = a.ID
	}

	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("hset articles: %w", err)
	}
	if err := r.store.SAdd(ctx, domart.SetKey, ids...); err != nil {
		return fmt.Errorf("register articles: %w", err)
	}
	return nil
}

// SaveAuthors writes the author hashes, then registers their IDs.
func (r *Repo) SaveAuthors(ctx context.Context, authors []domart.Author) error {
	if len(authors) == 0 {
		return nil
	}

	items := make([]db.HashSetItem, len(authors))
	ids := make([]string, len(authors))
	for i, a := range authors {
		items[i] = db.HashSetItem{Key: a.Key(), Fields: authorToHash(a)}
		ids[i] = a.ID
	}

	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("hset authors: %w", err)
	}
	if err := r.store.SAdd(ctx, domart.AuthorSetKey, ids...); err != nil {
		return fmt.Errorf("register authors: %w", err)
	}
	return nil
}

// RandomAuthorIDs returns up to n distinct author IDs.
func (r *Repo) RandomAuthorIDs(ctx context.Context, n int) ([]string, error) {
	ids, err := r.store.SRandMember(ctx, domart.AuthorSetKey, n)
	if err != nil {
		return nil, fmt.Errorf("pick authors: %w", err)
	}
	return ids, nil
}

// List returns every article ordered by ID.
func (r *Repo) List(ctx context.Context) ([]domart.Article, error) {
	ids, err := r.store.SMembers(ctx, domart.SetKey)
	if err != nil {
		return nil, fmt.Errorf("list article ids: %w", err)
	}
	if len(ids) == 0 {
		return []domart.Article{}, nil
	}
	sort.Strings(ids)

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.keyPrefix + id
	}
	hashes, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("load articles: %w", err)
	}

	out := make([]domart.Article, 0, len(ids))
	for i, m := range hashes {
		if len(m) == 0 {
			continue // registered but deleted
		}
		a, err := articleFromHash(ids[i], m)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}
