package yahoo

import (
	"context"
	"fmt"
	"strconv"

	"resty.dev/v3"

	"returnsfetcher/internal/fetcher"
	"returnsfetcher/internal/returns"
)

// chartResponse represents the Yahoo Finance v8 chart API response.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Adjclose []struct {
					Adjclose []*float64 `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// ChartFetcher fetches adjusted daily price history from the Yahoo Finance
// chart API and computes return series from it.
type ChartFetcher struct {
	client *resty.Client
}

// NewChartFetcher creates the primary price-history fetcher.
func NewChartFetcher(baseURL string) *ChartFetcher {
	client := fetcher.NewHTTPClient(baseURL).
		SetHeader("User-Agent", "Mozilla/5.0")

	return &ChartFetcher{client: client}
}

// Name identifies this source in logs.
func (f *ChartFetcher) Name() string { return "yahoo" }

// Fetch retrieves the ticker's adjusted close history over the range and
// computes its return series. The chart API treats period2 as exclusive, so
// the request extends one day past the range to include its end date.
func (f *ChartFetcher) Fetch(ctx context.Context, ticker string, r returns.Range) (returns.Series, error) {
	var result chartResponse

	resp, err := f.client.R().
		SetContext(ctx).
		SetPathParam("ticker", ticker).
		SetQueryParams(map[string]string{
			"period1":  strconv.FormatInt(r.From.Unix(), 10),
			"period2":  strconv.FormatInt(r.To.Add(1).Unix(), 10),
			"interval": "1d",
		}).
		SetResult(&result).
		Get("/v8/finance/chart/{ticker}")

	if err != nil {
		return nil, fetcher.NewTransportError(err)
	}
	if !resp.IsSuccess() {
		return nil, fetcher.ClassifyHTTPStatus(resp.StatusCode())
	}

	// An in-payload chart error is the API's explicit "no data" signal.
	if result.Chart.Error != nil {
		return nil, fetcher.NewEmptyDataError(fmt.Sprintf("%s (%s)", ticker, result.Chart.Error.Code))
	}
	if len(result.Chart.Result) == 0 {
		return nil, fetcher.NewEmptyDataError(ticker)
	}

	chart := result.Chart.Result[0]
	if len(chart.Indicators.Adjclose) == 0 {
		return nil, fetcher.NewSchemaMismatchError("adjclose indicator missing from chart payload")
	}

	adjclose := chart.Indicators.Adjclose[0].Adjclose
	prices := make([]returns.PricePoint, 0, len(chart.Timestamp))
	for i, ts := range chart.Timestamp {
		// Null bars are non-observations, skipped rather than zeroed.
		if i >= len(adjclose) || adjclose[i] == nil {
			continue
		}
		prices = append(prices, returns.PricePoint{
			Date:     returns.FromUnix(ts),
			AdjClose: *adjclose[i],
		})
	}
	if len(prices) == 0 {
		return nil, fetcher.NewEmptyDataError(ticker)
	}

	return returns.FromPrices(prices), nil
}
