package index

import (
	"fmt"

	"github.com/kailas-cloud/artsearch/internal/db"
	"github.com/kailas-cloud/artsearch/internal/domain/schema"
)

// toIndexDefinition maps a domain definition onto the storage DDL.
func toIndexDefinition(def schema.Definition) (*db.IndexDefinition, error) {
	b := db.NewIndex(def.Name).Prefix(def.KeyPrefix)

	for _, f := range def.Schema {
		switch f.Kind {
		case schema.Text:
			weight := f.Weight
			if weight == 0 {
				weight = schema.DefaultWeight
			}
			if f.Sortable {
				b.SortableText(f.Name, weight)
			} else {
				b.Text(f.Name, weight)
			}
		case schema.Numeric:
			if f.Sortable {
				b.SortableNumeric(f.Name)
			} else {
				b.Numeric(f.Name)
			}
		default:
			return nil, fmt.Errorf("unknown field kind: %s", f.Kind)
		}
	}

	return b.Build()
}
