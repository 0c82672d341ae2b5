package artsearch

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newEmbeddedClient(t *testing.T, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{WithEmbedded(filepath.Join(t.TempDir(), "articles.db"))}, opts...)
	c, err := New(context.Background(), opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

func TestNew_NoStore(t *testing.T) {
	if _, err := New(context.Background()); err == nil {
		t.Fatal("expected error when no store configured")
	}
}

func TestNew_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"empty redis addr", WithRedis("", "")},
		{"no goredis addrs", WithGoRedis("")},
		{"empty embedded path", WithEmbedded("")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(context.Background(), tt.opt); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestClientOptions(t *testing.T) {
	cfg := &clientConfig{}
	WithRedis("localhost:6379", "secret").apply(cfg)
	WithUsername("default").apply(cfg)
	if cfg.driver != "redis" || cfg.addrs[0] != "localhost:6379" || cfg.password != "secret" || cfg.username != "default" {
		t.Errorf("redis cfg = %+v", cfg)
	}

	cfg2 := &clientConfig{}
	WithGoRedis("pass", "a:6379", "b:6379").apply(cfg2)
	if cfg2.driver != "goredis" || len(cfg2.addrs) != 2 {
		t.Errorf("goredis cfg = %+v", cfg2)
	}

	cfg3 := &clientConfig{}
	WithIndex("books", "Book:").apply(cfg3)
	WithLimits(5, 50).apply(cfg3)
	WithRetry(3, 20*time.Millisecond).apply(cfg3)
	WithSeedSize(3, 30).apply(cfg3)
	if cfg3.indexName != "books" || cfg3.keyPrefix != "Book:" || cfg3.maxLimit != 50 ||
		cfg3.retryAttempts != 3 || cfg3.seedArticles != 30 {
		t.Errorf("cfg = %+v", cfg3)
	}

	cfg3.driver = "embedded"
	cfg3.path = "x.db"
	appCfg, err := cfg3.toConfig()
	if err != nil {
		t.Fatalf("toConfig: %v", err)
	}
	if appCfg.Index.DefaultLimit != 5 || appCfg.Search.RetryBackoffMs != 20 || appCfg.Seed.Authors != 3 {
		t.Errorf("app config = %+v", appCfg)
	}

	cfg4 := &clientConfig{}
	logger := slog.Default()
	WithLogger(logger).apply(cfg4)
	reg := prometheus.NewRegistry()
	WithPrometheus(reg).apply(cfg4)
	if cfg4.logger != logger || cfg4.metricsReg != reg {
		t.Error("expected logger and registerer to be set")
	}
}

func TestClient_Close_NilStore(t *testing.T) {
	c := &Client{store: nil}
	c.Close()
}

func TestClient_EndToEnd(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	c := newEmbeddedClient(t, WithPrometheus(reg))

	if err := c.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if c.IndexExists(ctx) {
		t.Fatal("index must not exist before EnsureIndex")
	}
	if _, err := c.SearchArticles(ctx, "Alpha", Unset, Unset); !errors.Is(err, ErrIndexNotFound) {
		t.Fatalf("expected ErrIndexNotFound, got %v", err)
	}

	if err := c.EnsureIndex(ctx); err != nil {
		t.Fatalf("EnsureIndex: %v", err)
	}
	err := c.SaveArticles(ctx,
		[]Author{{ID: "a1", Name: "Ada Rossi"}},
		[]Article{
			{ID: "1", Title: "Alpha", Price: 9.99, AuthorIDs: []string{"a1"}},
			{ID: "2", Title: "Alpha Beta", Price: 55},
		},
	)
	if err != nil {
		t.Fatalf("SaveArticles: %v", err)
	}

	res, err := c.SearchArticles(ctx, "Alpha", 0, 20)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if res.Total != 1 || len(res.Hits) != 1 || res.Hits[0].ID != "1" || res.Hits[0].Title != "Alpha" {
		t.Errorf("result = %+v", res)
	}

	res, err = c.SearchArticles(ctx, "Alpha", 50, 60)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if res.Total != 1 || res.Hits[0].ID != "2" {
		t.Errorf("[50,60] result = %+v", res)
	}

	res, err = c.Search(ctx, NewSearchRequest("Alpha"))
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if res.Total != 2 {
		t.Errorf("unfiltered total = %d, want 2", res.Total)
	}

	if _, err := c.SearchArticles(ctx, "Alpha", 20, 10); !errors.Is(err, ErrInvertedRange) {
		t.Errorf("expected ErrInvertedRange, got %v", err)
	}

	list, err := c.ListArticles(ctx)
	if err != nil {
		t.Fatalf("ListArticles: %v", err)
	}
	if len(list) != 2 || list[0].AuthorIDs[0] != "a1" {
		t.Errorf("list = %+v", list)
	}

	rep, err := c.Seed(ctx)
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if !rep.Skipped || rep.Existing != 2 {
		t.Errorf("seed report = %+v", rep)
	}

	if h := c.Health(ctx); h.Status != "ok" || h.Checks["index"] != "ok" {
		t.Errorf("health = %+v", h)
	}

	if got := testutil.ToFloat64(mustCounter(t, reg, "search", "error")); got != 2 {
		t.Errorf("search errors = %v, want 2", got)
	}
}

func TestClient_SeedFreshStore(t *testing.T) {
	ctx := context.Background()
	c := newEmbeddedClient(t, WithSeedSize(4, 25))

	if _, err := c.Seed(ctx); !errors.Is(err, ErrIndexNotReady) {
		t.Fatalf("expected ErrIndexNotReady, got %v", err)
	}
	if err := c.EnsureIndex(ctx); err != nil {
		t.Fatalf("EnsureIndex: %v", err)
	}
	rep, err := c.Seed(ctx)
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if rep.Authors != 4 || rep.Articles != 25 {
		t.Errorf("report = %+v", rep)
	}

	res, err := c.Search(ctx, SearchRequest{Query: "*", MinPrice: Unset, MaxPrice: Unset, Limit: 100})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if res.Total != 25 {
		t.Errorf("total = %d, want 25", res.Total)
	}
	for _, h := range res.Hits {
		if strings.TrimSpace(h.Title) == "" || h.Price == "" {
			t.Errorf("hit without projection: %+v", h)
		}
	}
}

func mustCounter(t *testing.T, reg *prometheus.Registry, op, status string) prometheus.Collector {
	t.Helper()
	m, err := newSDKMetrics(reg) // reuses the registered collectors
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	return m.operations.WithLabelValues(op, status)
}

func TestObserver_NilSafe(t *testing.T) {
	var o *observer
	o.observe("op", time.Now(), nil)
}

func TestObserver_WithLoggerAndPrometheus(t *testing.T) {
	reg := prometheus.NewRegistry()
	var buf strings.Builder
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	obs, err := newObserver(logger, reg)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}
	obs.observe("search", time.Now(), nil)
	obs.observe("search", time.Now(), errors.New("boom"))

	if got := testutil.ToFloat64(obs.metrics.operations.WithLabelValues("search", "ok")); got != 1 {
		t.Errorf("ok count = %v", got)
	}
	if !strings.Contains(buf.String(), "operation failed") || !strings.Contains(buf.String(), "boom") {
		t.Errorf("log output = %q", buf.String())
	}

	// a second observer on the same registry reuses the collectors
	if _, err := newObserver(nil, reg); err != nil {
		t.Fatalf("second observer: %v", err)
	}
}
