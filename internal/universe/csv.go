package universe

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// ErrSourceUnavailable marks a ticker list that cannot be resolved at all:
// missing file, unreadable header, or absent symbol column. Callers treat it
// as an empty universe, not a fatal condition.
var ErrSourceUnavailable = errors.New("ticker source unavailable")

// CSVSource resolves the ticker universe from one column of a CSV file.
type CSVSource struct {
	path   string
	column string
}

// NewCSVSource creates a ticker source reading the named column of the CSV
// file at path.
func NewCSVSource(path, column string) *CSVSource {
	return &CSVSource{path: path, column: column}
}

// Resolve reads the ticker list and returns the de-duplicated symbols in
// file order. Rows with a missing, placeholder, or purely numeric symbol
// cell are skipped, never fatal; only an unusable file or a missing symbol
// column fails the resolution, wrapped in ErrSourceUnavailable.
func (s *CSVSource) Resolve() ([]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // tolerate ragged rows

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", ErrSourceUnavailable, err)
	}
	col := -1
	for i, name := range header {
		if strings.TrimSpace(name) == s.column {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("%w: column %q not found in %s", ErrSourceUnavailable, s.column, s.path)
	}

	seen := make(map[string]bool)
	var tickers []string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			slog.Debug("skipping malformed row", "file", s.path, "error", err)
			continue
		}
		if col >= len(record) {
			continue
		}
		symbol := strings.TrimSpace(record[col])
		if !validSymbol(symbol) {
			slog.Debug("skipping non-symbol cell", "file", s.path, "value", symbol)
			continue
		}
		if seen[symbol] {
			continue
		}
		seen[symbol] = true
		tickers = append(tickers, symbol)
	}

	return tickers, nil
}

// validSymbol rejects empty cells, the usual spreadsheet placeholders for
// missing data, and purely numeric cells (index noise, not tickers).
func validSymbol(s string) bool {
	if s == "" {
		return false
	}
	switch strings.ToUpper(s) {
	case "NAN", "N/A", "NA", "NULL", "NONE", "-", "#N/A":
		return false
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return false
	}
	return true
}
