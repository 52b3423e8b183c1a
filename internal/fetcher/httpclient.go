package fetcher

import (
	"time"

	"resty.dev/v3"
)

// defaultRequestTimeout bounds any single price-history request.
const defaultRequestTimeout = 30 * time.Second

// NewHTTPClient creates the HTTP client the provider adapters share their
// configuration through: JSON accept header plus a per-request timeout.
// No retry policy is attached; a failed request is a per-ticker failure the
// coordinator recovers from.
func NewHTTPClient(baseURL string) *resty.Client {
	return resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetTimeout(defaultRequestTimeout)
}
