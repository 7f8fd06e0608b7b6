// Command batch runs the meadow headless over a range of seeds and
// summarizes how the populations fared.
package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/warren/config"
	"github.com/pthm-cable/warren/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seeds := flag.Int("seeds", 8, "Number of seeds to run")
	firstSeed := flag.Int64("first-seed", 1, "First seed; the rest follow consecutively")
	maxDays := flag.Int("max-days", 365, "Days per run")
	workers := flag.Int("workers", runtime.NumCPU(), "Concurrent runs")
	outputDir := flag.String("output-dir", "", "Directory for batch.csv and per-seed reports (empty = none)")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn})))

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *maxDays < 1 || *seeds < 1 {
		slog.Error("seeds and max-days must be positive")
		os.Exit(2)
	}

	list := make([]int64, *seeds)
	for i := range list {
		list[i] = *firstSeed + int64(i)
	}

	outcomes, err := runAll(cfg, list, *maxDays, *workers, *outputDir)
	if err != nil {
		slog.Error("batch failed", "error", err)
		os.Exit(1)
	}

	slog.Warn("batch_summary",
		"runs", len(outcomes),
		"days", *maxDays,
		"coexist_days", telemetry.Summarize(column(outcomes, func(o runOutcome) int { return o.CoexistDays })),
		"final_total", telemetry.Summarize(column(outcomes, func(o runOutcome) int { return o.Total })),
		"final_predators", telemetry.Summarize(column(outcomes, func(o runOutcome) int { return o.LivePredators })),
		"reproductions", telemetry.Summarize(column(outcomes, func(o runOutcome) int { return o.Reproductions })),
		"predation_deaths", telemetry.Summarize(column(outcomes, func(o runOutcome) int { return o.PredationDeaths })),
	)

	if *outputDir == "" {
		return
	}
	if err := writeOutcomes(filepath.Join(*outputDir, "batch.csv"), outcomes); err != nil {
		slog.Error("failed to write batch.csv", "error", err)
		os.Exit(1)
	}
}

func writeOutcomes(path string, outcomes []runOutcome) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gocsv.MarshalFile(&outcomes, f)
}
