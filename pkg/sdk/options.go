package artsearch

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver   string // "redis", "goredis" or "embedded"
	addrs    []string
	username string
	password string
	path     string

	indexName    string
	keyPrefix    string
	defaultLimit int
	maxLimit     int

	retryAttempts int
	retryBackoff  time.Duration

	seedAuthors  int
	seedArticles int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithRedis connects to Redis Stack through rueidis.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithGoRedis connects through go-redis. Several addresses select a cluster client.
func WithGoRedis(password string, addrs ...string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "goredis"
		c.addrs = addrs
		c.password = password
	})
}

// WithUsername sets the ACL user for the Redis drivers.
func WithUsername(username string) Option {
	return optionFunc(func(c *clientConfig) {
		c.username = username
	})
}

// WithEmbedded stores records in a local bbolt file and searches them with bleve.
func WithEmbedded(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "embedded"
		c.path = path
	})
}

// WithIndex overrides the index name and the article key prefix.
// Defaults: "article-idx" and "Article:".
func WithIndex(name, keyPrefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.indexName = name
		c.keyPrefix = keyPrefix
	})
}

// WithLimits sets the default and maximum page sizes. Defaults: 10 and 1000.
func WithLimits(defaultLimit, maxLimit int) Option {
	return optionFunc(func(c *clientConfig) {
		c.defaultLimit = defaultLimit
		c.maxLimit = maxLimit
	})
}

// WithRetry retries searches that failed in the backend.
func WithRetry(attempts int, backoff time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.retryAttempts = attempts
		c.retryBackoff = backoff
	})
}

// WithSeedSize sets how many authors and articles Seed generates.
// Defaults: 250 and 2500.
func WithSeedSize(authors, articles int) Option {
	return optionFunc(func(c *clientConfig) {
		c.seedAuthors = authors
		c.seedArticles = articles
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
