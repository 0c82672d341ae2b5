// Package article holds the records the service indexes and the static
// index definition over them.
package article

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/artsearch/internal/domain/schema"
)

// Key conventions shared by the storage layer and the index definition.
const (
	KeyPrefix       = "Article:"
	SetKey          = "Article"
	AuthorKeyPrefix = "Author:"
	AuthorSetKey    = "Author"

	IndexName = "article-idx"

	FieldTitle   = "title"
	FieldPrice   = "price"
	FieldAuthors = "authors"
	FieldName    = "name"
)

// Article is a priced piece of writing by one or two authors.
type Article struct {
	ID        string
	Title     string
	Price     float64
	AuthorIDs []string
}

// Author wrote articles.
type Author struct {
	ID   string
	Name string
}

// Validate checks the invariants the seeder and the API rely on.
func (a Article) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("article id is required")
	}
	if strings.TrimSpace(a.Title) == "" {
		return fmt.Errorf("article %s: title is required", a.ID)
	}
	if a.Price < 0 {
		return fmt.Errorf("article %s: price must not be negative", a.ID)
	}
	return nil
}

// Key returns the storage key of the article.
func (a Article) Key() string { return KeyPrefix + a.ID }

// Key returns the storage key of the author.
func (a Author) Key() string { return AuthorKeyPrefix + a.ID }

// Schema is the index schema over article hashes: weighted sortable title
// text and a sortable numeric price.
func Schema() schema.Schema {
	return schema.Schema{
		{Name: FieldTitle, Kind: schema.Text, Sortable: true, Weight: schema.DefaultWeight},
		{Name: FieldPrice, Kind: schema.Numeric, Sortable: true},
	}
}

// Definition returns the static article index definition. An empty name or
// prefix falls back to the defaults.
func Definition(name, prefix string) schema.Definition {
	if name == "" {
		name = IndexName
	}
	if prefix == "" {
		prefix = KeyPrefix
	}
	return schema.Definition{Name: name, KeyPrefix: prefix, Schema: Schema()}
}
