package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"returnsfetcher/internal/config"
	"returnsfetcher/internal/coordinator"
	"returnsfetcher/internal/fetcher"
	"returnsfetcher/internal/fmp"
	"returnsfetcher/internal/returns"
	"returnsfetcher/internal/universe"
	"returnsfetcher/internal/yahoo"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	// Resolve the ticker universe. An unavailable list degrades to an
	// empty run, never a crash.
	tickers, err := universe.NewCSVSource(cfg.TickerFile, cfg.SymbolColumn).Resolve()
	if err != nil {
		slog.Warn("ticker source unavailable, proceeding with empty universe", "error", err)
		tickers = nil
	}

	primary := yahoo.NewChartFetcher(cfg.YahooBaseURL)

	// Fallback availability is decided here, once, from explicit config.
	var fallback fetcher.Fetcher
	if cfg.FMPAPIKey != "" {
		fallback = fmp.NewHistoryFetcher(cfg.FMPAPIKey, cfg.FMPBaseURL)
	} else {
		slog.Warn("no FMP API key provided, fallback source disabled")
	}

	coord := coordinator.New(primary, fallback)

	// Bound the whole run so a hung transport cannot wedge the process
	runCtx, runCancel := context.WithTimeout(ctx, time.Duration(cfg.RunTimeoutSecs)*time.Second)
	defer runCancel()

	fmt.Printf("Fetching daily returns for %d tickers (%s)\n", len(tickers), cfg.Range)
	fmt.Println("================================================")
	series := coord.Run(runCtx, tickers, cfg.Range)
	table := returns.Merge(series)

	fmt.Println("================================================")
	fmt.Println("Final table of stock returns (first 5 rows):")
	fmt.Print(table.Head(5))
	fmt.Printf("\n%d of %d tickers produced a return series across %d dates\n",
		len(series), len(tickers), table.Len())
}
