// Package query turns a raw search string plus optional numeric bounds into
// a structured search request against a schema.
package query

import (
	"fmt"
	"math"

	"github.com/kailas-cloud/artsearch/internal/domain"
	"github.com/kailas-cloud/artsearch/internal/domain/schema"
)

// Unset marks an absent numeric bound.
const Unset = -1.0

// Paging limits.
const (
	DefaultLimit = 10
	MaxLimit     = 1000
)

// DefaultFilterField is the numeric field bounds apply to.
const DefaultFilterField = "price"

// NumericFilter is an inclusive range on a numeric field.
type NumericFilter struct {
	Field string
	Min   float64
	Max   float64
}

// Query is a structured search request. Raw is passed to the engine as is.
type Query struct {
	Raw           string
	NumericFilter *NumericFilter
	ReturnFields  []string
	Offset        int
	Limit         int
}

// HasFilter reports whether a numeric filter is attached.
func (q Query) HasFilter() bool { return q.NumericFilter != nil }

// Builder validates queries against a schema.
type Builder struct {
	schema       schema.Schema
	filterField  string
	defaultLimit int
	maxLimit     int
}

// Option configures a Builder.
type Option func(*Builder)

// WithFilterField selects the numeric field the bounds filter on.
func WithFilterField(name string) Option {
	return func(b *Builder) { b.filterField = name }
}

// WithLimits overrides the default and maximum page sizes.
func WithLimits(defaultLimit, maxLimit int) Option {
	return func(b *Builder) {
		if defaultLimit > 0 {
			b.defaultLimit = defaultLimit
		}
		if maxLimit > 0 {
			b.maxLimit = maxLimit
		}
	}
}

// NewBuilder creates a Builder for s.
func NewBuilder(s schema.Schema, opts ...Option) *Builder {
	b := &Builder{
		schema:       s,
		filterField:  DefaultFilterField,
		defaultLimit: DefaultLimit,
		maxLimit:     MaxLimit,
	}
	for _, o := range opts {
		o(b)
	}
	if b.defaultLimit > b.maxLimit {
		b.defaultLimit = b.maxLimit
	}
	return b
}

// Build assembles a query. The numeric filter is attached only when both
// bounds are set; a single bound is ignored. min > max is rejected with
// ErrInvertedRange. Empty returnFields means every stored field.
func (b *Builder) Build(raw string, minValue, maxValue float64, returnFields ...string) (Query, error) {
	q := Query{Raw: raw, Limit: b.defaultLimit}

	if math.IsNaN(minValue) || math.IsNaN(maxValue) {
		return Query{}, fmt.Errorf("%w: bound is not a number", domain.ErrMalformedQuery)
	}

	if minValue != Unset && maxValue != Unset {
		if minValue > maxValue {
			return Query{}, fmt.Errorf("%w: %w: %v > %v",
				domain.ErrMalformedQuery, domain.ErrInvertedRange, minValue, maxValue)
		}
		f, ok := b.schema.Field(b.filterField)
		if !ok || f.Kind != schema.Numeric {
			return Query{}, fmt.Errorf("%w: %q is not a numeric field", domain.ErrMalformedQuery, b.filterField)
		}
		q.NumericFilter = &NumericFilter{Field: f.Name, Min: minValue, Max: maxValue}
	}

	for _, name := range returnFields {
		if !b.schema.Has(name) {
			return Query{}, fmt.Errorf("%w: unknown return field %q", domain.ErrMalformedQuery, name)
		}
	}
	if len(returnFields) > 0 {
		q.ReturnFields = append([]string(nil), returnFields...)
	}

	return q, nil
}

// WithPage sets the result window. A non-positive limit means the default;
// limits above the maximum are clamped.
func (b *Builder) WithPage(q Query, offset, limit int) (Query, error) {
	if offset < 0 {
		return Query{}, fmt.Errorf("%w: offset must not be negative", domain.ErrMalformedQuery)
	}
	switch {
	case limit <= 0:
		limit = b.defaultLimit
	case limit > b.maxLimit:
		limit = b.maxLimit
	}
	q.Offset = offset
	q.Limit = limit
	return q, nil
}
