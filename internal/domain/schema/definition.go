package schema

import (
	"fmt"
	"regexp"

	"github.com/kailas-cloud/artsearch/internal/domain"
)

var nameRegex = regexp.MustCompile(`^[a-zA-Z0-9_:-]+$`)

// Definition binds a schema to an index name and the key prefix of the
// records it covers.
type Definition struct {
	Name      string
	KeyPrefix string
	Schema    Schema
}

// Validate checks the name, the prefix and the schema. Schema errors are
// returned unchanged.
func (d Definition) Validate() error {
	if d.Name == "" || len(d.Name) > 64 || !nameRegex.MatchString(d.Name) {
		return fmt.Errorf("%w: index name %q must match %s (max 64)",
			domain.ErrInvalidDefinition, d.Name, nameRegex.String())
	}
	if d.KeyPrefix == "" {
		return fmt.Errorf("%w: key prefix is required", domain.ErrInvalidDefinition)
	}
	return d.Schema.Validate()
}
