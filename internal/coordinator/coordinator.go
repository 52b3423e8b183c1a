package coordinator

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"returnsfetcher/internal/fetcher"
	"returnsfetcher/internal/returns"
)

// Coordinator drives the primary source over the full ticker set, then
// re-drives the fallback source over exactly the tickers the primary
// failed to serve, and merges the outcomes into one mapping.
type Coordinator struct {
	primary  fetcher.Fetcher
	fallback fetcher.Fetcher
}

// New creates a Coordinator. fallback may be nil when the secondary source
// is unconfigured; availability is an explicit input here, never an ambient
// environment lookup.
func New(primary, fallback fetcher.Fetcher) *Coordinator {
	return &Coordinator{
		primary:  primary,
		fallback: fallback,
	}
}

// Run fetches a return series for every ticker and returns the mapping of
// tickers that produced one. A ticker the primary source satisfies is never
// sent to the fallback; a ticker both sources fail is simply absent from
// the result. Per-ticker failures are logged and recovered, never fatal.
func (c *Coordinator) Run(ctx context.Context, tickers []string, r returns.Range) map[string]returns.Series {
	result := make(map[string]returns.Series, len(tickers))
	if len(tickers) == 0 {
		return result
	}

	slog.Info("collecting return series", "source", c.primary.Name(), "tickers", len(tickers), "range", r)
	pending := c.pass(ctx, c.primary, tickers, r, result)
	if len(pending) == 0 {
		return result
	}

	if c.fallback == nil {
		slog.Warn("no fallback source configured, omitting failed tickers", "omitted", len(pending))
		return result
	}

	// Deterministic second pass regardless of drain order.
	sort.Strings(pending)
	slog.Info("retrying failed tickers", "source", c.fallback.Name(), "tickers", len(pending))
	omitted := c.pass(ctx, c.fallback, pending, r, result)
	if len(omitted) > 0 {
		slog.Warn("tickers omitted from final table", "source", c.fallback.Name(), "omitted", len(omitted))
	}

	return result
}

// pass fans out one goroutine per ticker over f and drains outcomes into
// result. The drain loop is the map's only writer, and it fully drains
// before pass returns, so the returned failure set is exactly the tickers
// whose fetch was observed to fail.
func (c *Coordinator) pass(ctx context.Context, f fetcher.Fetcher, tickers []string, r returns.Range, result map[string]returns.Series) []string {
	outcomes := make(chan fetcher.Outcome, len(tickers))

	var wg sync.WaitGroup
	for _, t := range tickers {
		wg.Add(1)
		go func(ticker string) {
			defer wg.Done()

			series, err := f.Fetch(ctx, ticker, r)
			outcomes <- fetcher.Outcome{
				Ticker: ticker,
				Series: series,
				Err:    err,
			}
		}(t)
	}

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	var failed []string
	for outcome := range outcomes {
		if outcome.Err != nil {
			slog.Warn("fetch failed", "source", f.Name(), "ticker", outcome.Ticker, "error", outcome.Err)
			failed = append(failed, outcome.Ticker)
			continue
		}
		slog.Debug("fetched", "source", f.Name(), "ticker", outcome.Ticker, "observations", len(outcome.Series))
		result[outcome.Ticker] = outcome.Series
	}
	return failed
}
