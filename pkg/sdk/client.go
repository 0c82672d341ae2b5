package artsearch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/artsearch/internal/app"
	"github.com/kailas-cloud/artsearch/internal/config"
	"github.com/kailas-cloud/artsearch/internal/db"
	domart "github.com/kailas-cloud/artsearch/internal/domain/article"
	repsearch "github.com/kailas-cloud/artsearch/internal/repository/search"
	healthuc "github.com/kailas-cloud/artsearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/artsearch/internal/usecase/search"
	seeduc "github.com/kailas-cloud/artsearch/internal/usecase/seed"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces, swapped out in tests.
type indexUseCase interface {
	Bootstrap(ctx context.Context) error
	Ready(ctx context.Context) bool
}

type searchUseCase interface {
	Search(ctx context.Context, req searchuc.Request) (repsearch.ResultSet, error)
}

type articleUseCase interface {
	List(ctx context.Context) ([]domart.Article, error)
	Save(ctx context.Context, authors []domart.Author, articles []domart.Article) error
}

type seedUseCase interface {
	Seed(ctx context.Context) (seeduc.Report, error)
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the artsearch SDK entry point.
type Client struct {
	store     db.Store
	indexSvc  indexUseCase
	searchSvc searchUseCase
	articles  articleUseCase
	seeder    seedUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a Client and connects to the store.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	appCfg, err := cfg.toConfig()
	if err != nil {
		return nil, err
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	store, err := app.OpenStore(ctx, appCfg.Database)
	if err != nil {
		return nil, fmt.Errorf("artsearch: %w", err)
	}

	a := app.New(appCfg, store, zap.NewNop())
	return &Client{
		store:     store,
		indexSvc:  a.Index,
		searchSvc: a.Search,
		articles:  a.Articles,
		seeder:    a.Seeder,
		healthSvc: a.Health,
		obs:       obs,
	}, nil
}

func (cfg *clientConfig) toConfig() (config.Config, error) {
	switch cfg.driver {
	case "":
		return config.Config{}, errors.New("artsearch: store required (use WithRedis, WithGoRedis or WithEmbedded)")
	case config.DriverRedis, config.DriverGoRedis:
		if len(cfg.addrs) == 0 || cfg.addrs[0] == "" {
			return config.Config{}, errors.New("artsearch: database address required")
		}
	case config.DriverEmbedded:
		if cfg.path == "" {
			return config.Config{}, errors.New("artsearch: embedded store path required")
		}
	default:
		return config.Config{}, fmt.Errorf("artsearch: unknown driver %q", cfg.driver)
	}

	c := config.Config{
		HTTP: config.HTTPConfig{Port: 1}, // unused, keeps Validate happy
		Database: config.DatabaseConfig{
			Driver:           cfg.driver,
			Addrs:            cfg.addrs,
			Username:         cfg.username,
			Password:         cfg.password,
			Path:             cfg.path,
			ReadinessTimeout: int(defaultReadinessTimeout / time.Second),
		},
		Index: config.IndexConfig{
			Name:         cfg.indexName,
			KeyPrefix:    cfg.keyPrefix,
			DefaultLimit: cfg.defaultLimit,
			MaxLimit:     cfg.maxLimit,
		},
		Search: config.SearchConfig{
			RetryAttempts:  cfg.retryAttempts,
			RetryBackoffMs: int(cfg.retryBackoff / time.Millisecond),
		},
		Seed: config.SeedConfig{
			Authors:  cfg.seedAuthors,
			Articles: cfg.seedArticles,
		},
	}
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("artsearch: %w", err)
	}
	return c, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks store connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// EnsureIndex drops and recreates the article index.
func (c *Client) EnsureIndex(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ensure_index", start, err) }()

	return c.indexSvc.Bootstrap(ctx)
}

// IndexExists reports whether the article index exists.
func (c *Client) IndexExists(ctx context.Context) bool {
	return c.indexSvc.Ready(ctx)
}

// SearchArticles finds articles matching q, with prices in [minPrice, maxPrice]
// when both bounds are set (use Unset for none).
func (c *Client) SearchArticles(ctx context.Context, q string, minPrice, maxPrice float64) (SearchResult, error) {
	return c.Search(ctx, SearchRequest{Query: q, MinPrice: minPrice, MaxPrice: maxPrice})
}

// Search runs a paged search.
func (c *Client) Search(ctx context.Context, req SearchRequest) (res SearchResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err) }()

	rs, err := c.searchSvc.Search(ctx, searchuc.Request{
		Query:    req.Query,
		MinPrice: req.MinPrice,
		MaxPrice: req.MaxPrice,
		Offset:   req.Offset,
		Limit:    req.Limit,
	})
	if err != nil {
		return SearchResult{}, err
	}

	hits := make([]Hit, len(rs.Documents))
	for i, d := range rs.Documents {
		hits[i] = Hit{ID: d.ID, Title: d.Fields[domart.FieldTitle], Price: d.Fields[domart.FieldPrice]}
	}
	return SearchResult{Total: rs.Total, Hits: hits}, nil
}

// SaveArticles writes authors, then articles. Indexed articles become
// searchable as soon as they are written.
func (c *Client) SaveArticles(ctx context.Context, authors []Author, articles []Article) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("save_articles", start, err) }()

	domAuthors := make([]domart.Author, len(authors))
	for i, a := range authors {
		domAuthors[i] = domart.Author(a)
	}
	domArticles := make([]domart.Article, len(articles))
	for i, a := range articles {
		domArticles[i] = domart.Article(a)
	}
	return c.articles.Save(ctx, domAuthors, domArticles)
}

// ListArticles returns every stored article ordered by ID.
func (c *Client) ListArticles(ctx context.Context) (out []Article, err error) {
	start := time.Now()
	defer func() { c.obs.observe("list_articles", start, err) }()

	list, err := c.articles.List(ctx)
	if err != nil {
		return nil, err
	}
	out = make([]Article, len(list))
	for i, a := range list {
		out[i] = Article(a)
	}
	return out, nil
}

// Seed fills an empty store with generated authors and articles.
// The index must exist first.
func (c *Client) Seed(ctx context.Context) (rep SeedReport, err error) {
	start := time.Now()
	defer func() { c.obs.observe("seed", start, err) }()

	r, err := c.seeder.Seed(ctx)
	if err != nil {
		return SeedReport{}, err
	}
	return SeedReport(r), nil
}

// Health checks the store and the article index.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status: string(report.Status),
		Checks: checks,
	}
}
