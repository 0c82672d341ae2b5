// Package article serves article listings and author lookups.
package article

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/artsearch/internal/domain"
	domart "github.com/kailas-cloud/artsearch/internal/domain/article"
)

// Service reads and writes articles.
type Service struct {
	repo Repository
}

// New creates an article service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns all articles ordered by ID.
func (s *Service) List(ctx context.Context) ([]domart.Article, error) {
	articles, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return articles, nil
}

// Save writes authors first so the articles can reference them.
func (s *Service) Save(ctx context.Context, authors []domart.Author, articles []domart.Article) error {
	if err := s.repo.SaveAuthors(ctx, authors); err != nil {
		return fmt.Errorf("save authors: %w", err)
	}
	if err := s.repo.SaveArticles(ctx, articles); err != nil {
		return fmt.Errorf("save articles: %w", err)
	}
	return nil
}

// Authors suggests author names starting with prefix.
func (s *Service) Authors(_ context.Context, prefix string) ([]domart.Author, error) {
	return nil, fmt.Errorf("author suggestions for %q: %w", prefix, domain.ErrNotImplemented)
}
