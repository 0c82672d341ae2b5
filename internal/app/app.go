// Package app is the composition root shared by the server and the CLI.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/artsearch/internal/config"
	"github.com/kailas-cloud/artsearch/internal/db"
	dbEmbedded "github.com/kailas-cloud/artsearch/internal/db/embedded"
	dbGoRedis "github.com/kailas-cloud/artsearch/internal/db/goredis"
	dbRedis "github.com/kailas-cloud/artsearch/internal/db/redis"
	domart "github.com/kailas-cloud/artsearch/internal/domain/article"
	"github.com/kailas-cloud/artsearch/internal/domain/search/query"
	articlerepo "github.com/kailas-cloud/artsearch/internal/repository/article"
	indexrepo "github.com/kailas-cloud/artsearch/internal/repository/index"
	searchrepo "github.com/kailas-cloud/artsearch/internal/repository/search"
	articleuc "github.com/kailas-cloud/artsearch/internal/usecase/article"
	healthuc "github.com/kailas-cloud/artsearch/internal/usecase/health"
	indexuc "github.com/kailas-cloud/artsearch/internal/usecase/index"
	searchuc "github.com/kailas-cloud/artsearch/internal/usecase/search"
	seeduc "github.com/kailas-cloud/artsearch/internal/usecase/seed"
)

// OpenStore creates the store for the configured driver and waits until it answers.
func OpenStore(ctx context.Context, cfg config.DatabaseConfig) (db.Store, error) {
	var (
		store db.Store
		err   error
	)
	switch cfg.Driver {
	case config.DriverRedis:
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Addrs,
			Username: cfg.Username,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
	case config.DriverGoRedis:
		store, err = dbGoRedis.NewStore(dbGoRedis.Config{
			Addrs:    cfg.Addrs,
			Username: cfg.Username,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
	case config.DriverEmbedded:
		store, err = dbEmbedded.NewStore(dbEmbedded.Config{Path: cfg.Path})
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("create %s store: %w", cfg.Driver, err)
	}

	if err := store.WaitForReady(ctx, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, fmt.Errorf("database not ready: %w", err)
	}
	return store, nil
}

// App holds the wired use cases.
type App struct {
	Store    db.Store
	Index    *indexuc.Service
	Search   *searchuc.Service
	Articles *articleuc.Service
	Seeder   *seeduc.Service
	Health   *healthuc.Service

	seedOnStart bool
	logger      *zap.Logger
}

// New wires repositories and use cases over store.
func New(cfg config.Config, store db.Store, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	def := domart.Definition(cfg.Index.Name, cfg.Index.KeyPrefix)

	manager := indexrepo.New(store, logger)
	executor := searchrepo.New(store, manager, def.KeyPrefix)
	articles := articlerepo.New(store, def.KeyPrefix)
	builder := query.NewBuilder(def.Schema, query.WithLimits(cfg.Index.DefaultLimit, cfg.Index.MaxLimit))

	indexSvc := indexuc.New(manager, def, logger)

	return &App{
		Store: store,
		Index: indexSvc,
		Search: searchuc.New(executor, builder, def.Name,
			searchuc.WithRetry(cfg.Search.RetryAttempts, cfg.Search.RetryBackoff()),
			searchuc.WithLogger(logger),
		),
		Articles: articleuc.New(articles),
		Seeder: seeduc.New(articles, indexSvc, seeduc.Config{
			Authors:   cfg.Seed.Authors,
			Articles:  cfg.Seed.Articles,
			BatchSize: cfg.Seed.BatchSize,
			Workers:   cfg.Seed.Workers,
		}, seeduc.WithLogger(logger)),
		Health:      healthuc.New(store, indexSvc),
		seedOnStart: cfg.Seed.Enabled,
		logger:      logger,
	}
}

// Start rebuilds the index and, when enabled, seeds an empty store.
// The server must not accept traffic before Start returns.
func (a *App) Start(ctx context.Context) error {
	if err := a.Index.Bootstrap(ctx); err != nil {
		return err
	}
	if !a.seedOnStart {
		return nil
	}
	rep, err := a.Seeder.Seed(ctx)
	if err != nil {
		return err
	}
	a.logger.Info("Seed finished",
		zap.Bool("skipped", rep.Skipped),
		zap.Int("authors", rep.Authors),
		zap.Int("articles", rep.Articles),
	)
	return nil
}
