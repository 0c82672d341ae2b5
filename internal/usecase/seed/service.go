// Package seed fills an empty store with generated authors and articles.
package seed

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/artsearch/internal/domain"
	domart "github.com/kailas-cloud/artsearch/internal/domain/article"
	"github.com/kailas-cloud/artsearch/internal/metrics"
)

const (
	defaultAuthors   = 250
	defaultArticles  = 2500
	defaultBatchSize = 100
	defaultWorkers   = 4
	maxAuthorsPer    = 2
)

// ErrNotEnoughTitles means the vocabulary cannot produce the requested number of unique titles.
var ErrNotEnoughTitles = errors.New("not enough unique titles")

// Config sizes a seeding run. Zero values take the defaults.
type Config struct {
	Authors   int
	Articles  int
	BatchSize int
	Workers   int
}

func (c Config) withDefaults() Config {
	if c.Authors <= 0 {
		c.Authors = defaultAuthors
	}
	if c.Articles <= 0 {
		c.Articles = defaultArticles
	}
	if c.BatchSize <= 0 {
		c.BatchSize = defaultBatchSize
	}
	if c.Workers <= 0 {
		c.Workers = defaultWorkers
	}
	return c
}

// Report summarizes a seeding run.
type Report struct {
	Skipped  bool
	Existing int64
	Authors  int
	Articles int
}

// Option configures a Service.
type Option func(*Service)

// WithWords replaces the default vocabulary.
func WithWords(w Words) Option {
	return func(s *Service) { s.words = w }
}

// WithTitleTable replaces the default title templates. The table is copied.
func WithTitleTable(table []Template) Option {
	return func(s *Service) { s.titles = append([]Template(nil), table...) }
}

// WithRand sets the random source, mainly for deterministic tests.
func WithRand(r *rand.Rand) Option {
	return func(s *Service) { s.rng = r }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// Service seeds the article store once.
type Service struct {
	repo   Repository
	index  IndexReadiness
	cfg    Config
	words  Words
	titles []Template
	rng    *rand.Rand
	logger *zap.Logger
}

// New creates a seeding service.
func New(repo Repository, index IndexReadiness, cfg Config, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		index:  index,
		cfg:    cfg.withDefaults(),
		words:  DefaultWords(),
		titles: TitleTable(),
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), //nolint:gosec // sample data
		logger: zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Seed writes authors and articles when no articles exist yet.
// The index must already be built so every written article is searchable.
func (s *Service) Seed(ctx context.Context) (Report, error) {
	if !s.index.Ready(ctx) {
		return Report{}, fmt.Errorf("seed: %w", domain.ErrIndexNotReady)
	}

	n, err := s.repo.Count(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("seed: %w", err)
	}
	if n > 0 {
		s.logger.Info("Seeding skipped, articles present", zap.Int64("count", n))
		return Report{Skipped: true, Existing: n}, nil
	}

	titles := Titles(s.titles, s.words)
	if len(titles) < s.cfg.Articles {
		return Report{}, fmt.Errorf("seed: %w: have %d, want %d", ErrNotEnoughTitles, len(titles), s.cfg.Articles)
	}
	if len(s.words.FirstNames) == 0 || len(s.words.LastNames) == 0 {
		return Report{}, errors.New("seed: author name vocabulary is empty")
	}

	authors := s.authors()
	if err := s.writeAuthors(ctx, authors); err != nil {
		return Report{}, err
	}
	metrics.SeedRecordsTotal.WithLabelValues("author").Add(float64(len(authors)))

	articles := s.articles(titles)
	if err := s.writeArticles(ctx, articles); err != nil {
		return Report{Authors: len(authors)}, err
	}
	metrics.SeedRecordsTotal.WithLabelValues("article").Add(float64(len(articles)))

	s.logger.Info("Seeding complete",
		zap.Int("authors", len(authors)),
		zap.Int("articles", len(articles)),
	)
	return Report{Authors: len(authors), Articles: len(articles)}, nil
}

func (s *Service) authors() []domart.Author {
	out := make([]domart.Author, s.cfg.Authors)
	for i := range out {
		first := s.words.FirstNames[s.rng.IntN(len(s.words.FirstNames))]
		last := s.words.LastNames[s.rng.IntN(len(s.words.LastNames))]
		out[i] = domart.Author{ID: uuid.NewString(), Name: first + " " + last}
	}
	return out
}

// draft is an article still waiting for its authors.
type draft struct {
	article domart.Article
	authors int
}

func (s *Service) articles(titles []string) []draft {
	s.rng.Shuffle(len(titles), func(i, j int) { titles[i], titles[j] = titles[j], titles[i] })

	out := make([]draft, s.cfg.Articles)
	for i := range out {
		out[i] = draft{
			article: domart.Article{
				ID:    uuid.NewString(),
				Title: titles[i],
				Price: float64(100+s.rng.IntN(9900)) / 100, // [1.00, 99.99]
			},
			authors: 1 + s.rng.IntN(maxAuthorsPer),
		}
	}
	return out
}

func (s *Service) writeAuthors(ctx context.Context, authors []domart.Author) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)
	for start := 0; start < len(authors); start += s.cfg.BatchSize {
		chunk := authors[start:min(start+s.cfg.BatchSize, len(authors))]
		g.Go(func() error {
			if err := s.repo.SaveAuthors(gctx, chunk); err != nil {
				return fmt.Errorf("seed authors: %w", err)
			}
			return nil
		})
	}
	return g.Wait()
}

func (s *Service) writeArticles(ctx context.Context, drafts []draft) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)
	for start := 0; start < len(drafts); start += s.cfg.BatchSize {
		chunk := drafts[start:min(start+s.cfg.BatchSize, len(drafts))]
		g.Go(func() error {
			batch := make([]domart.Article, len(chunk))
			for i, d := range chunk {
				ids, err := s.repo.RandomAuthorIDs(gctx, d.authors)
				if err != nil {
					return fmt.Errorf("seed articles: %w", err)
				}
				a := d.article
				a.AuthorIDs = ids
				batch[i] = a
			}
			if err := s.repo.SaveArticles(gctx, batch); err != nil {
				return fmt.Errorf("seed articles: %w", err)
			}
			return nil
		})
	}
	return g.Wait()
}
