package article

import (
	"context"

	domart "github.com/kailas-cloud/artsearch/internal/domain/article"
)

// Repository reads and writes articles and authors.
type Repository interface {
	List(ctx context.Context) ([]domart.Article, error)
	SaveAuthors(ctx context.Context, authors []domart.Author) error
	SaveArticles(ctx context.Context, articles []domart.Article) error
}
