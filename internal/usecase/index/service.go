// Package index bootstraps the article index at startup and answers
// readiness probes for it.
package index

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/artsearch/internal/domain"
	"github.com/kailas-cloud/artsearch/internal/domain/schema"
)

// Service owns one index definition.
type Service struct {
	manager Manager
	def     schema.Definition
	logger  *zap.Logger
}

// New creates an index service for def.
func New(m Manager, def schema.Definition, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{manager: m, def: def, logger: logger}
}

// Definition returns the managed definition.
func (s *Service) Definition() schema.Definition { return s.def }

// Bootstrap recreates the index and confirms the engine reports it.
func (s *Service) Bootstrap(ctx context.Context) error {
	if err := s.def.Validate(); err != nil {
		return fmt.Errorf("index definition: %w", err)
	}
	if err := s.manager.EnsureIndex(ctx, s.def); err != nil {
		return fmt.Errorf("ensure index %s: %w", s.def.Name, err)
	}
	if !s.manager.IndexExists(ctx, s.def.Name) {
		return fmt.Errorf("index %s: %w", s.def.Name, domain.ErrIndexNotReady)
	}

	s.logger.Info("Index ready",
		zap.String("index", s.def.Name),
		zap.String("prefix", s.def.KeyPrefix),
	)
	return nil
}

// Ready reports whether the index currently exists.
func (s *Service) Ready(ctx context.Context) bool {
	return s.manager.IndexExists(ctx, s.def.Name)
}
