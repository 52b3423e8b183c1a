package testutil

import (
	"context"
	"sync"

	"returnsfetcher/internal/fetcher"
	"returnsfetcher/internal/returns"
)

// MockFetcher is a mock implementation of the Fetcher interface for testing.
// It records the tickers it was asked for, so tests can assert which source
// was consulted for which ticker.
type MockFetcher struct {
	FetchFunc func(ctx context.Context, ticker string, r returns.Range) (returns.Series, error)
	NameFunc  func() string

	mu    sync.Mutex
	calls []string
}

// Fetch implements the Fetcher interface
func (m *MockFetcher) Fetch(ctx context.Context, ticker string, r returns.Range) (returns.Series, error) {
	m.mu.Lock()
	m.calls = append(m.calls, ticker)
	m.mu.Unlock()

	if m.FetchFunc != nil {
		return m.FetchFunc(ctx, ticker, r)
	}
	return nil, nil
}

// Name implements the Fetcher interface
func (m *MockFetcher) Name() string {
	if m.NameFunc != nil {
		return m.NameFunc()
	}
	return "mock"
}

// Calls returns the tickers Fetch was invoked with, in observation order.
func (m *MockFetcher) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// NewMockFetcher creates a mock that succeeds with the given series per
// ticker and fails with an empty-data error for any other ticker.
func NewMockFetcher(name string, series map[string]returns.Series) *MockFetcher {
	return &MockFetcher{
		FetchFunc: func(ctx context.Context, ticker string, r returns.Range) (returns.Series, error) {
			if s, ok := series[ticker]; ok {
				return s, nil
			}
			return nil, fetcher.NewEmptyDataError(ticker)
		},
		NameFunc: func() string {
			return name
		},
	}
}

// SeriesFromPrices builds a return series from consecutive daily prices
// starting at the given date. Test fixture helper.
func SeriesFromPrices(firstDay string, prices ...float64) returns.Series {
	d := returns.MustParseDate(firstDay)
	points := make([]returns.PricePoint, len(prices))
	for i, p := range prices {
		points[i] = returns.PricePoint{Date: d.Add(i), AdjClose: p}
	}
	return returns.FromPrices(points)
}
