// Package schema declares which record fields an index covers and how.
package schema

import (
	"fmt"

	"github.com/kailas-cloud/artsearch/internal/domain"
)

// Kind is the indexing kind of a field.
type Kind int

const (
	// Text fields are tokenized for full-text matching.
	Text Kind = iota
	// Numeric fields support range filters.
	Numeric
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Numeric:
		return "numeric"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// DefaultWeight is the relevance weight of a text field when none is given.
const DefaultWeight = 1.0

// Field describes one indexed record field.
type Field struct {
	Name     string
	Kind     Kind
	Sortable bool
	Weight   float64 // Text only
}

// Schema is an ordered list of fields with unique names.
type Schema []Field

// Validate checks that the schema has at least one field and no duplicate names.
func (s Schema) Validate() error {
	if len(s) == 0 {
		return &domain.SchemaError{Err: domain.ErrEmptySchema}
	}
	seen := make(map[string]struct{}, len(s))
	for _, f := range s {
		if f.Name == "" {
			return &domain.SchemaError{Err: fmt.Errorf("%w: empty field name", domain.ErrInvalidDefinition)}
		}
		if _, dup := seen[f.Name]; dup {
			return &domain.SchemaError{Field: f.Name, Err: domain.ErrDuplicateField}
		}
		seen[f.Name] = struct{}{}
	}
	return nil
}

// Has reports whether a field with the given name exists.
func (s Schema) Has(name string) bool {
	_, ok := s.Field(name)
	return ok
}

// Field looks up a field by name.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Names returns the field names in declaration order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, f := range s {
		names[i] = f.Name
	}
	return names
}
