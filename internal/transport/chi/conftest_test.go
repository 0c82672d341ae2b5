package chi

import (
	"context"

	domart "github.com/kailas-cloud/artsearch/internal/domain/article"
	repsearch "github.com/kailas-cloud/artsearch/internal/repository/search"
	healthuc "github.com/kailas-cloud/artsearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/artsearch/internal/usecase/search"
)

type mockSearcher struct {
	result repsearch.ResultSet
	err    error
	got    []searchuc.Request
	panic  bool
}

func (m *mockSearcher) Search(_ context.Context, req searchuc.Request) (repsearch.ResultSet, error) {
	if m.panic {
		panic("boom")
	}
	m.got = append(m.got, req)
	return m.result, m.err
}

type mockArticles struct {
	articles   []domart.Article
	err        error
	authorsErr error
}

func (m *mockArticles) List(context.Context) ([]domart.Article, error) { return m.articles, m.err }

func (m *mockArticles) Authors(context.Context, string) ([]domart.Author, error) {
	return nil, m.authorsErr
}

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(context.Context) healthuc.Report { return m.report }
