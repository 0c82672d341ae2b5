package seed

import (
	"context"
	"sync"

	domart "github.com/kailas-cloud/artsearch/internal/domain/article"
)

type mockRepo struct {
	mu       sync.Mutex
	count    int64
	countErr error
	saveErr  error
	authors  []domart.Author
	articles []domart.Article
	picks    []int
}

func (m *mockRepo) Count(_ context.Context) (int64, error) {
	return m.count, m.countErr
}

func (m *mockRepo) SaveAuthors(_ context.Context, authors []domart.Author) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.authors = append(m.authors, authors...)
	return nil
}

func (m *mockRepo) SaveArticles(_ context.Context, articles []domart.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.articles = append(m.articles, articles...)
	return nil
}

func (m *mockRepo) RandomAuthorIDs(_ context.Context, n int) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.picks = append(m.picks, n)
	out := make([]string, 0, n)
	for i := 0; i < n && i < len(m.authors); i++ {
		out = append(out, m.authors[i].ID)
	}
	return out, nil
}

type staticReadiness bool

func (r staticReadiness) Ready(context.Context) bool { return bool(r) }
