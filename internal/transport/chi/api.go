package chi

// ErrorCode is the machine-readable error code in every error body.
type ErrorCode string

// Error codes.
const (
	ErrorCodeBadRequest       ErrorCode = "bad_request"
	ErrorCodeValidationFailed ErrorCode = "validation_failed"
	ErrorCodeMalformedQuery   ErrorCode = "malformed_query"
	ErrorCodeUnauthorized     ErrorCode = "unauthorized"
	ErrorCodeIndexNotFound    ErrorCode = "index_not_found"
	ErrorCodeIndexNotReady    ErrorCode = "index_not_ready"
	ErrorCodeBackendFailure   ErrorCode = "backend_failure"
	ErrorCodeNotImplemented   ErrorCode = "not_implemented"
	ErrorCodeNotFound         ErrorCode = "not_found"
	ErrorCodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// SearchResponse is the body of GET /api/articles/search.
type SearchResponse struct {
	Total     int              `json:"total"`
	Documents []SearchDocument `json:"documents"`
}

// SearchDocument is one search hit with its projected fields.
type SearchDocument struct {
	ID     string            `json:"id"`
	Fields map[string]string `json:"fields"`
}

// ArticleResponse is one entry of GET /api/articles.
type ArticleResponse struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Price   float64  `json:"price"`
	Authors []string `json:"authors"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// searchParams are the query parameters of the search endpoint.
type searchParams struct {
	Query    string  `json:"q"`
	MinPrice float64 `json:"minPrice" validate:"gte=-1"`
	MaxPrice float64 `json:"maxPrice" validate:"gte=-1"`
	Offset   int     `json:"offset" validate:"gte=0"`
	Limit    int     `json:"limit" validate:"gte=0"`
}
