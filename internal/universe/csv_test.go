package universe

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tickers.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestResolve(t *testing.T) {
	path := writeCSV(t, "Symbol,Name\nAAPL,Apple Inc.\nMSFT,Microsoft\nGOOG,Alphabet\n")

	tickers, err := NewCSVSource(path, "Symbol").Resolve()
	if err != nil {
		t.Fatalf("Resolve() returned unexpected error: %v", err)
	}

	want := []string{"AAPL", "MSFT", "GOOG"}
	if len(tickers) != len(want) {
		t.Fatalf("Resolve() = %v, want %v", tickers, want)
	}
	for i := range want {
		if tickers[i] != want[i] {
			t.Fatalf("Resolve() = %v, want %v", tickers, want)
		}
	}
}

func TestResolve_SkipsInvalidCells(t *testing.T) {
	tests := []struct {
		name string
		cell string
	}{
		{"empty", ""},
		{"whitespace", "   "},
		{"nan placeholder", "NaN"},
		{"na placeholder", "N/A"},
		{"dash placeholder", "-"},
		{"numeric", "42"},
		{"float", "3.14"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCSV(t, "Symbol,Name\nAAPL,Apple\n"+tt.cell+",Noise\nMSFT,Microsoft\n")

			tickers, err := NewCSVSource(path, "Symbol").Resolve()
			if err != nil {
				t.Fatalf("Resolve() returned unexpected error: %v", err)
			}
			if len(tickers) != 2 || tickers[0] != "AAPL" || tickers[1] != "MSFT" {
				t.Errorf("Resolve() = %v, want [AAPL MSFT]", tickers)
			}
		})
	}
}

func TestResolve_SkipsShortRows(t *testing.T) {
	path := writeCSV(t, "Name,Symbol\nApple,AAPL\nlonely-name\nMicrosoft,MSFT\n")

	tickers, err := NewCSVSource(path, "Symbol").Resolve()
	if err != nil {
		t.Fatalf("Resolve() returned unexpected error: %v", err)
	}
	if len(tickers) != 2 || tickers[0] != "AAPL" || tickers[1] != "MSFT" {
		t.Errorf("Resolve() = %v, want [AAPL MSFT]", tickers)
	}
}

func TestResolve_Deduplicates(t *testing.T) {
	path := writeCSV(t, "Symbol\nAAPL\nMSFT\nAAPL\n")

	tickers, err := NewCSVSource(path, "Symbol").Resolve()
	if err != nil {
		t.Fatalf("Resolve() returned unexpected error: %v", err)
	}
	if len(tickers) != 2 {
		t.Errorf("Resolve() = %v, want 2 unique tickers", tickers)
	}
}

func TestResolve_CaseSensitive(t *testing.T) {
	path := writeCSV(t, "Symbol\nBRK.B\nbrk.b\n")

	tickers, err := NewCSVSource(path, "Symbol").Resolve()
	if err != nil {
		t.Fatalf("Resolve() returned unexpected error: %v", err)
	}
	if len(tickers) != 2 {
		t.Errorf("Resolve() = %v, want both case variants kept", tickers)
	}
}

func TestResolve_MissingFile(t *testing.T) {
	_, err := NewCSVSource(filepath.Join(t.TempDir(), "absent.csv"), "Symbol").Resolve()

	if !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("Resolve() error = %v, want ErrSourceUnavailable", err)
	}
}

func TestResolve_MissingColumn(t *testing.T) {
	path := writeCSV(t, "Ticker,Name\nAAPL,Apple\n")

	_, err := NewCSVSource(path, "Symbol").Resolve()
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("Resolve() error = %v, want ErrSourceUnavailable", err)
	}
}

func TestResolve_EmptyFile(t *testing.T) {
	path := writeCSV(t, "")

	_, err := NewCSVSource(path, "Symbol").Resolve()
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("Resolve() error = %v, want ErrSourceUnavailable", err)
	}
}
