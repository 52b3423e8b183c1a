package fmp

import (
	"context"

	"resty.dev/v3"

	"returnsfetcher/internal/fetcher"
	"returnsfetcher/internal/returns"
)

// historicalRecord is one daily observation in the FMP payload.
type historicalRecord struct {
	Date     returns.Date `json:"date"`
	AdjClose float64      `json:"adjClose"`
}

// historyResponse represents the FMP historical-price API response.
// Historical is a pointer so an absent field is distinguishable from an
// empty list: the former is a schema problem, the latter is "no data".
type historyResponse struct {
	Symbol     string              `json:"symbol"`
	Historical *[]historicalRecord `json:"historical"`
}

// HistoryFetcher fetches adjusted daily price history from the Financial
// Modeling Prep historical-price API. It is the fallback source and needs
// an API key to be usable at all.
type HistoryFetcher struct {
	apiKey string
	client *resty.Client
}

// NewHistoryFetcher creates the fallback price-history fetcher.
func NewHistoryFetcher(apiKey, baseURL string) *HistoryFetcher {
	return &HistoryFetcher{
		apiKey: apiKey,
		client: fetcher.NewHTTPClient(baseURL),
	}
}

// Name identifies this source in logs.
func (f *HistoryFetcher) Name() string { return "fmp" }

// Fetch retrieves the ticker's adjusted close history over the range and
// computes its return series. FMP serves records newest-first; FromPrices
// orders them before computing returns.
func (f *HistoryFetcher) Fetch(ctx context.Context, ticker string, r returns.Range) (returns.Series, error) {
	if f.apiKey == "" {
		return nil, fetcher.NewUnconfiguredError(f.Name())
	}

	var result historyResponse

	resp, err := f.client.R().
		SetContext(ctx).
		SetPathParam("ticker", ticker).
		SetQueryParams(map[string]string{
			"from":   r.From.String(),
			"to":     r.To.String(),
			"apikey": f.apiKey,
		}).
		SetResult(&result).
		Get("/{ticker}")

	if err != nil {
		return nil, fetcher.NewTransportError(err)
	}
	if !resp.IsSuccess() {
		return nil, fetcher.ClassifyHTTPStatus(resp.StatusCode())
	}

	if result.Historical == nil {
		return nil, fetcher.NewSchemaMismatchError("historical field missing from payload")
	}
	records := *result.Historical
	if len(records) == 0 {
		return nil, fetcher.NewEmptyDataError(ticker)
	}

	prices := make([]returns.PricePoint, 0, len(records))
	for _, rec := range records {
		prices = append(prices, returns.PricePoint{
			Date:     rec.Date,
			AdjClose: rec.AdjClose,
		})
	}

	return returns.FromPrices(prices), nil
}
