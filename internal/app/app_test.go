package app

import (
	"context"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/artsearch/internal/config"
	"github.com/kailas-cloud/artsearch/internal/domain"
	domart "github.com/kailas-cloud/artsearch/internal/domain/article"
	healthuc "github.com/kailas-cloud/artsearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/artsearch/internal/usecase/search"
)

func embeddedConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Config{
		HTTP: config.HTTPConfig{Port: 8080},
		Database: config.DatabaseConfig{
			Driver: config.DriverEmbedded,
			Path:   filepath.Join(t.TempDir(), "artsearch.db"),
		},
		Seed: config.SeedConfig{Enabled: true, Authors: 10, Articles: 120, BatchSize: 25, Workers: 2},
	}
	cfg.ApplyDefaults()
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestApp_StartSeedsAndSearches(t *testing.T) {
	ctx := context.Background()
	cfg := embeddedConfig(t)

	store, err := OpenStore(ctx, cfg.Database)
	require.NoError(t, err)
	defer store.Close()

	a := New(cfg, store, nil)
	require.NoError(t, a.Start(ctx))

	articles, err := a.Articles.List(ctx)
	require.NoError(t, err)
	require.Len(t, articles, 120)

	all, err := a.Search.Search(ctx, searchuc.Request{Query: "*", MinPrice: -1, MaxPrice: -1, Limit: 1000})
	require.NoError(t, err)
	require.Equal(t, 120, all.Total)

	cheap, err := a.Search.SearchArticles(ctx, "*", 0, 50)
	require.NoError(t, err)
	for _, d := range cheap.Documents {
		price, err := strconv.ParseFloat(d.Fields[domart.FieldPrice], 64)
		require.NoError(t, err)
		require.LessOrEqual(t, price, 50.0)
		require.NotEmpty(t, d.Fields[domart.FieldTitle])
	}

	report := a.Health.Check(ctx)
	require.Equal(t, healthuc.Healthy, report.Status)

	// A second start rebuilds the index and leaves the data alone.
	require.NoError(t, a.Start(ctx))
	articles, err = a.Articles.List(ctx)
	require.NoError(t, err)
	require.Len(t, articles, 120)
}

func TestApp_SearchRejectsInvertedRange(t *testing.T) {
	ctx := context.Background()
	cfg := embeddedConfig(t)
	cfg.Seed.Enabled = false

	store, err := OpenStore(ctx, cfg.Database)
	require.NoError(t, err)
	defer store.Close()

	a := New(cfg, store, nil)
	require.NoError(t, a.Start(ctx))

	_, err = a.Search.SearchArticles(ctx, "Alpha", 10, 5)
	require.ErrorIs(t, err, domain.ErrMalformedQuery)
	require.ErrorIs(t, err, domain.ErrInvertedRange)
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	_, err := OpenStore(context.Background(), config.DatabaseConfig{Driver: "valkey"})
	require.Error(t, err)
}
