package coordinator

import (
	"context"
	"testing"

	"returnsfetcher/internal/returns"
	"returnsfetcher/internal/testutil"
)

var testRange = returns.NewRange(
	returns.MustParseDate("2020-01-01"),
	returns.MustParseDate("2020-01-31"),
)

func TestNew(t *testing.T) {
	primary := testutil.NewMockFetcher("primary", nil)
	coord := New(primary, nil)
	if coord == nil {
		t.Fatal("New() returned nil")
	}
}

func TestRun_PrimarySatisfiesAll(t *testing.T) {
	seriesA := testutil.SeriesFromPrices("2020-01-01", 10, 11)
	seriesB := testutil.SeriesFromPrices("2020-01-01", 20, 19)

	primary := testutil.NewMockFetcher("primary", map[string]returns.Series{
		"A": seriesA,
		"B": seriesB,
	})
	fallback := testutil.NewMockFetcher("fallback", map[string]returns.Series{
		"A": testutil.SeriesFromPrices("2020-01-01", 1, 2),
		"B": testutil.SeriesFromPrices("2020-01-01", 1, 2),
	})

	result := New(primary, fallback).Run(context.Background(), []string{"A", "B"}, testRange)

	if len(result) != 2 {
		t.Fatalf("len(result) = %d, want 2", len(result))
	}
	if !result["A"].Equal(seriesA) {
		t.Error("result[A] is not primary's series")
	}
	if !result["B"].Equal(seriesB) {
		t.Error("result[B] is not primary's series")
	}
	if calls := fallback.Calls(); len(calls) != 0 {
		t.Errorf("fallback was consulted for %v, want no calls", calls)
	}
}

func TestRun_FallbackCoversPrimaryFailures(t *testing.T) {
	seriesA := testutil.SeriesFromPrices("2020-01-01", 10, 11)
	seriesB := testutil.SeriesFromPrices("2020-01-02", 20, 19)

	primary := testutil.NewMockFetcher("primary", map[string]returns.Series{"A": seriesA})
	fallback := testutil.NewMockFetcher("fallback", map[string]returns.Series{"B": seriesB})

	result := New(primary, fallback).Run(context.Background(), []string{"A", "B"}, testRange)

	if len(result) != 2 {
		t.Fatalf("len(result) = %d, want 2", len(result))
	}
	if !result["B"].Equal(seriesB) {
		t.Error("result[B] is not fallback's series")
	}

	// The fallback sees exactly the failed subset.
	calls := fallback.Calls()
	if len(calls) != 1 || calls[0] != "B" {
		t.Errorf("fallback calls = %v, want [B]", calls)
	}
}

func TestRun_BothFailOmitsTicker(t *testing.T) {
	primary := testutil.NewMockFetcher("primary", map[string]returns.Series{
		"A": testutil.SeriesFromPrices("2020-01-01", 10, 11),
	})
	fallback := testutil.NewMockFetcher("fallback", nil)

	result := New(primary, fallback).Run(context.Background(), []string{"A", "B"}, testRange)

	if len(result) != 1 {
		t.Fatalf("len(result) = %d, want 1", len(result))
	}
	if _, ok := result["B"]; ok {
		t.Error("result contains B, want it omitted")
	}
}

func TestRun_NilFallbackSkipsRetry(t *testing.T) {
	primary := testutil.NewMockFetcher("primary", map[string]returns.Series{
		"A": testutil.SeriesFromPrices("2020-01-01", 10, 11),
	})

	result := New(primary, nil).Run(context.Background(), []string{"A", "B"}, testRange)

	if len(result) != 1 {
		t.Fatalf("len(result) = %d, want 1", len(result))
	}
	if _, ok := result["A"]; !ok {
		t.Error("result missing A")
	}
}

func TestRun_EmptyTickerSet(t *testing.T) {
	primary := testutil.NewMockFetcher("primary", nil)
	fallback := testutil.NewMockFetcher("fallback", nil)

	result := New(primary, fallback).Run(context.Background(), nil, testRange)

	if len(result) != 0 {
		t.Errorf("len(result) = %d, want 0", len(result))
	}
	if calls := primary.Calls(); len(calls) != 0 {
		t.Errorf("primary was consulted for %v, want no calls", calls)
	}
}

func TestRun_FailureIsolation(t *testing.T) {
	// One ticker failing on both sources must not disturb the others.
	good := map[string]returns.Series{
		"A": testutil.SeriesFromPrices("2020-01-01", 10, 11),
		"C": testutil.SeriesFromPrices("2020-01-01", 30, 33),
	}
	primary := testutil.NewMockFetcher("primary", good)
	fallback := testutil.NewMockFetcher("fallback", nil)

	result := New(primary, fallback).Run(context.Background(), []string{"A", "B", "C"}, testRange)

	if len(result) != 2 {
		t.Fatalf("len(result) = %d, want 2", len(result))
	}
	for _, ticker := range []string{"A", "C"} {
		if _, ok := result[ticker]; !ok {
			t.Errorf("result missing %s", ticker)
		}
	}
}

func TestRun_Idempotent(t *testing.T) {
	primary := testutil.NewMockFetcher("primary", map[string]returns.Series{
		"A": testutil.SeriesFromPrices("2020-01-01", 10, 11),
	})
	fallback := testutil.NewMockFetcher("fallback", map[string]returns.Series{
		"B": testutil.SeriesFromPrices("2020-01-02", 20, 19),
	})
	coord := New(primary, fallback)

	tickers := []string{"A", "B", "C"}
	first := coord.Run(context.Background(), tickers, testRange)
	second := coord.Run(context.Background(), tickers, testRange)

	if len(first) != len(second) {
		t.Fatalf("run sizes differ: %d vs %d", len(first), len(second))
	}
	for ticker, series := range first {
		other, ok := second[ticker]
		if !ok {
			t.Errorf("second run missing %s", ticker)
			continue
		}
		if !series.Equal(other) {
			t.Errorf("series for %s differ between runs", ticker)
		}
	}
}
