package main

import (
	"log/slog"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/warren/config"
	"github.com/pthm-cable/warren/sim"
	"github.com/pthm-cable/warren/telemetry"
)

// FitnessEvaluator runs headless simulations and scores parameter vectors.
type FitnessEvaluator struct {
	params     *ParamVector
	maxDays    int
	seeds      []int64
	configPath string

	mu          sync.Mutex
	lastMeanPop float64 // mean prey population of the most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator. Every run reloads the base
// config from configPath, so concurrent runs never share a mutable config.
func NewFitnessEvaluator(params *ParamVector, maxDays int, seeds []int64, configPath string) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		maxDays:    maxDays,
		seeds:      seeds,
		configPath: configPath,
	}
}

// LastMeanPopulation returns the mean prey population from the most recent evaluation.
func (fe *FitnessEvaluator) LastMeanPopulation() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastMeanPop
}

// runResult holds the results from a single simulation run.
type runResult struct {
	coexistDays int
	meanTotal   float64
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
// Fitness is negative coexistence days with a small bonus for larger herds,
// so survival dominates.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]runResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(x, s)
		}(i, seed)
	}
	wg.Wait()

	fitness := make([]float64, len(results))
	pops := make([]float64, len(results))
	for i, r := range results {
		fitness[i] = computeFitness(r, fe.maxDays)
		pops[i] = r.meanTotal
	}

	fe.mu.Lock()
	fe.lastMeanPop = stat.Mean(pops, nil)
	fe.mu.Unlock()

	return stat.Mean(fitness, nil)
}

// runSimulation executes a single headless run until coexistence ends or
// maxDays elapse.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) runResult {
	cfg, err := config.Load(fe.configPath)
	if err != nil {
		slog.Error("failed to reload config", "error", err)
		return runResult{}
	}
	fe.params.ApplyToConfig(cfg, x)
	if err := cfg.Validate(); err != nil {
		// Out-of-range vectors score as immediate collapse.
		return runResult{}
	}

	e, err := sim.NewEngine(sim.Options{Seed: seed, Config: cfg})
	if err != nil {
		slog.Error("failed to start run", "seed", seed, "error", err)
		return runResult{}
	}
	defer e.Close()

	for int(e.Day()) < fe.maxDays {
		e.Step(cfg.Clock.HeadlessDT)

		// Stop early once a population has collapsed
		if last, ok := e.Reports().Last(); ok && last.Day == e.Day() {
			if telemetry.CoexistenceDays([]telemetry.DailyStatistics{last}) == 0 {
				break
			}
		}
	}

	recs := e.Reports().Records()
	return runResult{
		coexistDays: telemetry.CoexistenceDays(recs),
		meanTotal:   telemetry.Mean(e.Reports().Column(func(s telemetry.DailyStatistics) int { return s.Total })),
	}
}

// computeFitness scores one run: -(coexistDays × (1 + 0.1 × herd)), where
// herd in [0, 1) grows with the mean prey population.
func computeFitness(r runResult, maxDays int) float64 {
	if maxDays <= 0 {
		return 0
	}
	herd := r.meanTotal / (r.meanTotal + 100)
	return -(float64(r.coexistDays) * (1 + 0.1*herd))
}
