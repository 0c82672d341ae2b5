package artsearch

// Unset marks an absent price bound.
const Unset = -1.0

// Article is a priced piece of writing.
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

// SearchRequest is a paged search. The zero value filters prices to [0, 0];
// use NewSearchRequest for a request without a price window.
type SearchRequest struct {
	Query    string
	MinPrice float64
	MaxPrice float64
	Offset   int
	Limit    int
}

// NewSearchRequest returns a request for q without a price window.
func NewSearchRequest(q string) SearchRequest {
	return SearchRequest{Query: q, MinPrice: Unset, MaxPrice: Unset}
}

// Hit is one search result with its projected title and price.
type Hit struct {
	ID    string
	Title string
	Price string
}

// SearchResult is the total hit count plus the requested page.
type SearchResult struct {
	Total int
	Hits  []Hit
}

// SeedReport summarizes a seeding run.
type SeedReport struct {
	Skipped  bool
	Existing int64
	Authors  int
	Articles int
}

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status string            // "ok", "degraded", "error"
	Checks map[string]string // component -> "ok"/"error"
}
