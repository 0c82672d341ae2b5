package artsearch

import "github.com/kailas-cloud/artsearch/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrMalformedQuery = domain.ErrMalformedQuery
	ErrInvertedRange  = domain.ErrInvertedRange
	ErrIndexNotFound  = domain.ErrIndexNotFound
	ErrIndexNotReady  = domain.ErrIndexNotReady
	ErrBackendFailure = domain.ErrBackendFailure
	ErrEmptySchema    = domain.ErrEmptySchema
	ErrDuplicateField = domain.ErrDuplicateField
)
