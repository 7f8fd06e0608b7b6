package main

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/pthm-cable/warren/config"
	"github.com/pthm-cable/warren/sim"
	"github.com/pthm-cable/warren/telemetry"
)

// runOutcome is one row of batch.csv.
type runOutcome struct {
	Seed            int64  `csv:"seed"`
	Days            uint32 `csv:"days"`
	CoexistDays     int    `csv:"coexist_days"`
	Rabbits         int    `csv:"rabbits"`
	Mice            int    `csv:"mice"`
	Squirrels       int    `csv:"squirrels"`
	Total           int    `csv:"total"`
	LivePredators   int    `csv:"live_predators"`
	PredationDeaths int    `csv:"predation_deaths"`
	IllnessDeaths   int    `csv:"illness_deaths"`
	Reproductions   int    `csv:"reproductions"`
}

// runSeed plays one headless run to maxDays. With a non-empty dir, the run's
// reports land in dir/seed_<n>.
func runSeed(cfg *config.Config, seed int64, maxDays int, dir string) (runOutcome, error) {
	opts := sim.Options{Seed: seed, Config: cfg}
	if dir != "" {
		opts.OutputDir = filepath.Join(dir, fmt.Sprintf("seed_%d", seed))
	}

	e, err := sim.NewEngine(opts)
	if err != nil {
		return runOutcome{}, fmt.Errorf("seed %d: %w", seed, err)
	}
	defer e.Close()

	for int(e.Day()) < maxDays {
		e.Step(cfg.Clock.HeadlessDT)
	}
	if err := e.SaveReports(); err != nil {
		return runOutcome{}, fmt.Errorf("seed %d: %w", seed, err)
	}

	out := runOutcome{Seed: seed, Days: e.Day()}
	sum := telemetry.SummarizeRun(e.Reports())
	out.CoexistDays = sum.CoexistDays
	out.PredationDeaths = sum.PredationDeaths
	out.IllnessDeaths = sum.IllnessDeaths
	out.Reproductions = sum.Reproductions
	if last, ok := e.Reports().Last(); ok {
		out.Rabbits = last.Rabbits
		out.Mice = last.Mice
		out.Squirrels = last.Squirrels
		out.Total = last.Total
		out.LivePredators = last.LivePredators
	}
	return out, nil
}

// runAll fans seeds out over a fixed number of workers. Results keep seed order.
func runAll(cfg *config.Config, seeds []int64, maxDays, workers int, dir string) ([]runOutcome, error) {
	if workers < 1 {
		workers = 1
	}

	results := make([]runOutcome, len(seeds))
	errs := make([]error, len(seeds))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, seed := range seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[idx], errs[idx] = runSeed(cfg, s, maxDays, dir)
		}(i, seed)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

func column(outcomes []runOutcome, f func(runOutcome) int) []float64 {
	out := make([]float64, len(outcomes))
	for i, o := range outcomes {
		out[i] = float64(f(o))
	}
	return out
}
