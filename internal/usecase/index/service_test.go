package index

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/artsearch/internal/domain"
	"github.com/kailas-cloud/artsearch/internal/domain/article"
	"github.com/kailas-cloud/artsearch/internal/domain/schema"
)

type mockManager struct {
	ensureFn func(ctx context.Context, def schema.Definition) error
	exists   bool
	ensured  []string
}

func (m *mockManager) EnsureIndex(ctx context.Context, def schema.Definition) error {
	m.ensured = append(m.ensured, def.Name)
	if m.ensureFn != nil {
		return m.ensureFn(ctx, def)
	}
	return nil
}

func (m *mockManager) IndexExists(_ context.Context, _ string) bool { return m.exists }

func TestBootstrap_Success(t *testing.T) {
	mm := &mockManager{exists: true}
	svc := New(mm, article.Definition("", ""), nil)

	if err := svc.Bootstrap(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mm.ensured) != 1 || mm.ensured[0] != article.IndexName {
		t.Errorf("ensured = %v", mm.ensured)
	}
	if !svc.Ready(context.Background()) {
		t.Error("expected ready")
	}
}

func TestBootstrap_InvalidDefinition(t *testing.T) {
	mm := &mockManager{exists: true}
	svc := New(mm, schema.Definition{Name: "x", KeyPrefix: "X:"}, nil)

	err := svc.Bootstrap(context.Background())
	if !errors.Is(err, domain.ErrEmptySchema) {
		t.Fatalf("expected ErrEmptySchema, got %v", err)
	}
	if len(mm.ensured) != 0 {
		t.Error("manager must not be called for an invalid definition")
	}
}

func TestBootstrap_EnsureFails(t *testing.T) {
	cause := &domain.IndexError{Index: "article-idx", Op: "create", Err: errors.New("oom")}
	mm := &mockManager{ensureFn: func(context.Context, schema.Definition) error { return cause }}
	svc := New(mm, article.Definition("", ""), nil)

	err := svc.Bootstrap(context.Background())
	if !errors.Is(err, domain.ErrBackendFailure) {
		t.Fatalf("expected ErrBackendFailure, got %v", err)
	}
}

func TestBootstrap_NotVisibleAfterCreate(t *testing.T) {
	svc := New(&mockManager{exists: false}, article.Definition("", ""), nil)

	err := svc.Bootstrap(context.Background())
	if !errors.Is(err, domain.ErrIndexNotReady) {
		t.Fatalf("expected ErrIndexNotReady, got %v", err)
	}
}
