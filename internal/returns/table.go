package returns

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"
)

// Table is the final aligned artifact: one column per ticker, one row per
// date in the union of all tickers' date indices. Cells for dates a ticker
// did not trade hold the missing marker.
type Table struct {
	dates   []Date
	tickers []string
	cells   map[string]map[Date]float64
}

// Merge outer-joins the per-ticker series into a single Table. The row index
// is the sorted union of every date appearing in any series; columns are
// sorted by ticker so output never depends on map iteration order. No
// forward fill, no interpolation: absent observations stay missing.
func Merge(series map[string]Series) *Table {
	t := &Table{cells: make(map[string]map[Date]float64, len(series))}

	dateSet := make(map[Date]struct{})
	for ticker, s := range series {
		col := make(map[Date]float64, len(s))
		for _, p := range s {
			col[p.Date] = p.Return
			dateSet[p.Date] = struct{}{}
		}
		t.cells[ticker] = col
		t.tickers = append(t.tickers, ticker)
	}
	sort.Strings(t.tickers)

	t.dates = make([]Date, 0, len(dateSet))
	for d := range dateSet {
		t.dates = append(t.dates, d)
	}
	sort.Slice(t.dates, func(i, j int) bool { return t.dates[i].Before(t.dates[j]) })

	return t
}

// Dates returns the table's row index in ascending order.
func (t *Table) Dates() []Date { return t.dates }

// Tickers returns the table's column names in ascending order.
func (t *Table) Tickers() []string { return t.tickers }

// Len returns the number of rows (dates).
func (t *Table) Len() int { return len(t.dates) }

// Value returns the return for (ticker, date), or the missing marker when
// the ticker has no observation on that date or no column at all.
func (t *Table) Value(ticker string, d Date) float64 {
	col, ok := t.cells[ticker]
	if !ok {
		return Missing()
	}
	v, ok := col[d]
	if !ok {
		return Missing()
	}
	return v
}

// Column returns one ticker's values aligned to the table's full date index,
// with missing markers where the ticker has no observation.
func (t *Table) Column(ticker string) []float64 {
	values := make([]float64, len(t.dates))
	for i, d := range t.dates {
		values[i] = t.Value(ticker, d)
	}
	return values
}

// Head renders the first n rows as a fixed-width text table. Missing cells
// render as NaN.
func (t *Table) Head(n int) string {
	if len(t.tickers) == 0 {
		return "(empty table)\n"
	}
	if n < 0 {
		n = 0
	}
	if n > len(t.dates) {
		n = len(t.dates)
	}

	var buf strings.Builder
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "Date")
	for _, ticker := range t.tickers {
		fmt.Fprintf(w, "\t%s", ticker)
	}
	fmt.Fprintln(w)
	for _, d := range t.dates[:n] {
		fmt.Fprint(w, d)
		for _, ticker := range t.tickers {
			v := t.Value(ticker, d)
			if IsMissing(v) {
				fmt.Fprint(w, "\tNaN")
			} else {
				fmt.Fprintf(w, "\t%.6f", v)
			}
		}
		fmt.Fprintln(w)
	}
	w.Flush()
	return buf.String()
}
