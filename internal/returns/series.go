package returns

import (
	"math"
	"sort"
)

// Missing returns the marker for "no observation". It is distinct from a
// return of zero: a ticker that did not trade on a date is missing, a ticker
// whose price was flat is 0.
func Missing() float64 { return math.NaN() }

// IsMissing reports whether v is the missing-value marker.
func IsMissing(v float64) bool { return math.IsNaN(v) }

// PricePoint is a single (date, adjusted price) observation for one ticker,
// produced by a provider adapter from raw payload data.
type PricePoint struct {
	Date     Date
	AdjClose float64
}

// Point is a single (date, return) observation in a Series.
type Point struct {
	Date   Date
	Return float64
}

// Series is one ticker's daily return series, ordered by strictly
// increasing date with no duplicates. Build it with FromPrices.
type Series []Point

// FromPrices computes a return Series from raw adjusted-price observations.
// The input need not be sorted; it is ordered ascending by date first, and
// duplicate dates collapse to the last observation seen for that date.
// return[i] = price[i]/price[i-1] - 1. The first observation has no prior
// price and carries the missing marker, as does any step whose ratio is
// infinite or undefined (zero or NaN prior price). The input slice is not
// modified.
func FromPrices(prices []PricePoint) Series {
	sorted := make([]PricePoint, len(prices))
	copy(sorted, prices)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	// Last write wins on duplicate dates.
	deduped := sorted[:0]
	for _, p := range sorted {
		if n := len(deduped); n > 0 && deduped[n-1].Date == p.Date {
			deduped[n-1] = p
			continue
		}
		deduped = append(deduped, p)
	}

	series := make(Series, 0, len(deduped))
	for i, p := range deduped {
		r := Missing()
		if i > 0 {
			prev := deduped[i-1].AdjClose
			r = p.AdjClose/prev - 1
			if math.IsInf(r, 0) || math.IsNaN(r) {
				r = Missing()
			}
		}
		series = append(series, Point{Date: p.Date, Return: r})
	}
	return series
}

// Dates returns the series' date index in order.
func (s Series) Dates() []Date {
	dates := make([]Date, len(s))
	for i, p := range s {
		dates[i] = p.Date
	}
	return dates
}

// Equal reports whether two series have identical dates and returns,
// treating missing markers as equal to each other.
func (s Series) Equal(other Series) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i].Date != other[i].Date {
			return false
		}
		a, b := s[i].Return, other[i].Return
		if IsMissing(a) != IsMissing(b) {
			return false
		}
		if !IsMissing(a) && a != b {
			return false
		}
	}
	return true
}
