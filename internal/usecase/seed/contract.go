package seed

import (
	"context"

	domart "github.com/kailas-cloud/artsearch/internal/domain/article"
)

// Repository stores seeded records.
type Repository interface {
	Count(ctx context.Context) (int64, error)
	SaveAuthors(ctx context.Context, authors []domart.Author) error
	SaveArticles(ctx context.Context, articles []domart.Article) error
	RandomAuthorIDs(ctx context.Context, n int) ([]string, error)
}

// IndexReadiness reports whether the article index has been built.
type IndexReadiness interface {
	Ready(ctx context.Context) bool
}
