package fetcher

import (
	"context"

	"returnsfetcher/internal/returns"
)

// Fetcher is the common capability both price sources implement.
// Each fetcher retrieves one ticker's daily price history over a date range
// and normalizes it into a return series.
type Fetcher interface {
	// Fetch retrieves and computes the return series for one ticker.
	// Every underlying transport, parsing, or schema problem is returned
	// as an error (typically *FetchError); Fetch never panics, so one
	// ticker's failure cannot take down the rest of a run.
	Fetch(ctx context.Context, ticker string, r returns.Range) (returns.Series, error)

	// Name identifies the source in logs, e.g. "yahoo" or "fmp".
	Name() string
}

// Outcome is the result of one ticker's fetch, sent through channels from
// worker goroutines to the coordinator that merges the results.
type Outcome struct {
	// Ticker identifies which symbol this outcome belongs to.
	Ticker string

	// Series is the computed return series. Valid only when Err is nil.
	Series returns.Series

	// Err carries the failure reason, if any. Success and failure are
	// mutually exclusive.
	Err error
}
