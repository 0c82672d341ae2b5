package article

import (
	"fmt"
	"strconv"
	"strings"

	domart "github.com/kailas-cloud/artsearch/internal/domain/article"
)

// articleToHash converts an article to HSET fields. Prices keep two decimals.
func articleToHash(a domart.Article) map[string]string {
	return map[string]string{
		domart.FieldTitle:   a.Title,
		domart.FieldPrice:   strconv.FormatFloat(a.Price, 'f', 2, 64),
		domart.FieldAuthors: strings.Join(a.AuthorIDs, ","),
	}
}

// articleFromHash hydrates an article from an HGETALL result.
func articleFromHash(id string, m map[string]string) (domart.Article, error) {
	a := domart.Article{ID: id, Title: m[domart.FieldTitle]}

	if raw := m[domart.FieldPrice]; raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return domart.Article{}, fmt.Errorf("article %s: invalid price %q: %w", id, raw, err)
		}
		a.Price = price
	}
	if raw := m[domart.FieldAuthors]; raw != "" {
		a.AuthorIDs = strings.Split(raw, ",")
	}
	return a, nil
}

func authorToHash(a domart.Author) map[string]string {
	return map[string]string{domart.FieldName: a.Name}
}
