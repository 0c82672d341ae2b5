package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptySchema signals a schema without fields.
	ErrEmptySchema = errors.New("schema has no fields")
	// ErrDuplicateField signals two schema fields sharing a name.
	ErrDuplicateField = errors.New("duplicate field name")
	// ErrInvalidDefinition signals a bad index name or key prefix.
	ErrInvalidDefinition = errors.New("invalid index definition")

	// ErrBackendFailure signals that the store rejected or failed an operation.
	ErrBackendFailure = errors.New("backend failure")
	// ErrIndexNotFound signals a search against an index that does not exist.
	ErrIndexNotFound = errors.New("index not found")
	// ErrIndexNotReady signals that the index has not been built yet.
	ErrIndexNotReady = errors.New("index not ready")

	// ErrMalformedQuery signals a query the builder or the engine refused.
	ErrMalformedQuery = errors.New("malformed query")
	// ErrInvertedRange signals a numeric range with min greater than max.
	ErrInvertedRange = errors.New("inverted numeric range")

	// ErrNotImplemented signals an unimplemented feature.
	ErrNotImplemented = errors.New("not implemented")
)

// SchemaError names the field that made a schema invalid.
type SchemaError struct {
	Field string
	Err   error
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %q", e.Err.Error(), e.Field)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// IndexError describes a failed index lifecycle step. It matches both
// ErrBackendFailure and the underlying cause.
type IndexError struct {
	Index string
	Op    string
	Err   error
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %s: %s: %v", e.Index, e.Op, e.Err)
}

func (e *IndexError) Unwrap() []error { return []error{ErrBackendFailure, e.Err} }

// SearchError carries the failure kind (one of the sentinels above) and the cause.
type SearchError struct {
	Index string
	Kind  error
	Err   error
}

func (e *SearchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("search %s: %v", e.Index, e.Kind)
	}
	return fmt.Sprintf("search %s: %v: %v", e.Index, e.Kind, e.Err)
}

func (e *SearchError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
