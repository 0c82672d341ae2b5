// Package index owns the lifecycle of search indexes: (re)creation from a
// schema definition, existence probes, and the per-index barrier between a
// rebuild and the searches that read it.
package index

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/artsearch/internal/db"
	"github.com/kailas-cloud/artsearch/internal/domain"
	"github.com/kailas-cloud/artsearch/internal/domain/schema"
	"github.com/kailas-cloud/artsearch/internal/metrics"
)

// store is the consumer interface for index lifecycle operations (ISP).
type store interface {
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Operation names reported in domain.IndexError.
const (
	OpDrop   = "drop"
	OpCreate = "create"
)

// Manager recreates indexes and hands out read handles on them.
type Manager struct {
	store  store
	logger *zap.Logger

	mu    sync.Mutex
	locks map[string]*sync.RWMutex
}

// New creates an index manager.
func New(s store, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		store:  s,
		logger: logger,
		locks:  make(map[string]*sync.RWMutex),
	}
}

func (m *Manager) lockFor(name string) *sync.RWMutex {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.locks[name]
	if !ok {
		l = &sync.RWMutex{}
		m.locks[name] = l
	}
	return l
}

// EnsureIndex drops any index with the definition's name and creates it
// again from def. A missing index on drop is not an error. Calls for the
// same name are serialized; searches on that name wait until it returns.
func (m *Manager) EnsureIndex(ctx context.Context, def schema.Definition) (err error) {
	start := time.Now()
	defer func() {
		metrics.IndexEnsureDuration.Observe(time.Since(start).Seconds())
		status := "ok"
		if err != nil {
			status = "error"
		}
		metrics.IndexEnsureTotal.WithLabelValues(status).Inc()
	}()

	if err = def.Validate(); err != nil {
		return err
	}

	ddl, err := toIndexDefinition(def)
	if err != nil {
		return &domain.IndexError{Index: def.Name, Op: OpCreate, Err: err}
	}

	l := m.lockFor(def.Name)
	l.Lock()
	defer l.Unlock()

	log := m.logger.With(zap.String("index", def.Name))

	if err := m.store.DropIndex(ctx, def.Name); err != nil {
		if !errors.Is(err, db.ErrIndexNotFound) {
			log.Error("Drop index failed", zap.Error(err))
			return &domain.IndexError{Index: def.Name, Op: OpDrop, Err: err}
		}
		log.Debug("Index absent, nothing to drop")
	} else {
		log.Info("Dropped index")
	}

	if err := m.store.CreateIndex(ctx, ddl); err != nil {
		log.Error("Create index failed", zap.Error(err))
		return &domain.IndexError{Index: def.Name, Op: OpCreate, Err: err}
	}

	log.Info("Created index",
		zap.String("prefix", def.KeyPrefix),
		zap.Strings("fields", def.Schema.Names()),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}

// IndexExists reports whether the engine knows the index. Backend errors
// are logged and reported as false.
func (m *Manager) IndexExists(ctx context.Context, name string) bool {
	ok, err := m.store.IndexExists(ctx, name)
	if err != nil {
		m.logger.Warn("Index existence probe failed", zap.String("index", name), zap.Error(err))
		return false
	}
	return ok
}

// Acquire takes a shared handle on the named index, blocking while an
// EnsureIndex for it is in flight. The returned func releases the handle.
func (m *Manager) Acquire(name string) (release func()) {
	l := m.lockFor(name)
	l.RLock()

	var once sync.Once
	return func() { once.Do(l.RUnlock) }
}
