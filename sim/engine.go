// Package sim drives the meadow simulation frame by frame, independent of
// any front-end.
package sim

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/warren/components"
	"github.com/pthm-cable/warren/config"
	"github.com/pthm-cable/warren/species"
	"github.com/pthm-cable/warren/systems"
	"github.com/pthm-cable/warren/telemetry"
)

// Options configures an Engine.
type Options struct {
	Seed      int64
	LogStats  bool   // Log every daily report
	LogPerf   bool   // Log per-phase timings once per day
	OutputDir string // Directory for reports.csv and the config snapshot (empty = no output)

	// Config overrides the global config, so concurrent runs can differ.
	Config *config.Config
}

// Engine owns the population and runs the fixed phase order every frame.
type Engine struct {
	cfg  *config.Config
	opts Options
	rng  *rand.Rand

	world   *ecs.World
	catalog *species.Catalog
	pop     *systems.Population
	bounds  systems.Bounds

	// Systems
	daily        *systems.DailySystem
	steering     *systems.SteeringSystem
	reproduction *systems.ReproductionSystem
	predation    *systems.PredationSystem
	registry     *systems.SystemRegistry

	clock    *Clock
	counters *telemetry.DayCounters
	reports  *telemetry.ReportLog
	perf     *telemetry.DayProfiler
	output   *telemetry.OutputManager

	bookmarks *telemetry.BookmarkDetector

	frame uint64
}

// NewEngine builds the engine and seeds the initial population.
func NewEngine(opts Options) (*Engine, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	cat, err := species.NewCatalog(cfg.Species)
	if err != nil {
		return nil, fmt.Errorf("building species catalog: %w", err)
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir, cfg.Telemetry.ReportFile)
	if err != nil {
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	world := ecs.NewWorld()
	pop := systems.NewPopulation(world, cat, cfg.Prey, cfg.Predator)

	e := &Engine{
		cfg:          cfg,
		opts:         opts,
		rng:          rng,
		world:        world,
		catalog:      cat,
		pop:          pop,
		bounds:       systems.Bounds{Width: cfg.Derived.WorldW32, Height: cfg.Derived.WorldH32},
		daily:        systems.NewDailySystem(pop, cfg.Prey, cfg.Predator, rng),
		steering:     systems.NewSteeringSystem(pop, cfg.Prey, cfg.Predator, rng),
		reproduction: systems.NewReproductionSystem(pop, cfg.Prey, rng),
		predation:    systems.NewPredationSystem(pop, cfg.Predator),
		registry:     systems.NewSystemRegistry(),
		clock:        NewClock(cfg.Clock.DayLength),
		counters:     telemetry.NewDayCounters(),
		reports:      telemetry.NewReportLog(),
		perf:         telemetry.NewDayProfiler(cfg.Telemetry.PerfWindow),
		output:       output,
		bookmarks:    telemetry.NewBookmarkDetector(cfg.Telemetry.BookmarkHistory),
	}

	if err := e.spawnInitialPopulation(); err != nil {
		output.Close()
		return nil, err
	}
	e.bookmarks.Prime(systems.CompileReport(0, pop, e.counters))

	return e, nil
}

// spawnInitialPopulation creates the starting prey and predators.
func (e *Engine) spawnInitialPopulation() error {
	pool := species.All()
	if names := e.cfg.Population.Species; len(names) > 0 {
		pool = pool[:0]
		for _, name := range names {
			id, err := species.Parse(name)
			if err != nil {
				return fmt.Errorf("initial population: %w", err)
			}
			pool = append(pool, id)
		}
	}

	for i := 0; i < e.cfg.Population.InitialPrey; i++ {
		id := pool[e.rng.Intn(len(pool))]
		params := e.catalog.Get(id)
		sex := components.Female
		if e.rng.Float64() < params.MaleProbability {
			sex = components.Male
		}
		e.pop.AddPrey(systems.PreySeed{
			Species:  id,
			Sex:      sex,
			Pos:      e.randomPosition(),
			Vel:      e.randomVelocity(float32(params.MaxSpeed)),
			Cooldown: float32(e.cfg.Prey.InitialCooldown),
		})
	}

	for i := 0; i < e.cfg.Population.InitialPredators; i++ {
		e.pop.AddPredator(systems.PredatorSeed{
			Pos:     e.randomPosition(),
			Vel:     e.randomVelocity(float32(e.cfg.Predator.MaxSpeed)),
			Reserve: float32(e.cfg.Predator.InitialReserve),
		})
	}

	slog.Info("population seeded",
		"prey", e.cfg.Population.InitialPrey,
		"predators", e.cfg.Population.InitialPredators,
		"seed", e.opts.Seed,
	)
	return nil
}

func (e *Engine) randomPosition() components.Position {
	return components.Position{
		X: e.rng.Float32() * e.bounds.Width,
		Y: e.rng.Float32() * e.bounds.Height,
	}
}

func (e *Engine) randomVelocity(limit float32) components.Velocity {
	return components.Velocity{
		X: (e.rng.Float32()*2 - 1) * limit,
		Y: (e.rng.Float32()*2 - 1) * limit,
	}
}

// Step runs one frame of dt seconds.
func (e *Engine) Step(dt float64) {
	e.perf.BeginFrame()

	// 1. Once-per-day block
	crossed := e.clock.Advance(dt)
	if crossed {
		e.perf.Phase(telemetry.PhaseDaily)
		e.endOfDay()
	}

	// 2. Mate seeking and predator targeting
	e.perf.Phase(telemetry.PhaseSteering)
	e.steering.Update()

	// 3. Move organisms and count down cooldowns
	e.perf.Phase(telemetry.PhaseAdvance)
	for _, o := range e.Organisms() {
		o.Advance(float32(dt), e.bounds)
	}

	// 4. Reproduction (spawns after its scan)
	e.perf.Phase(telemetry.PhaseReproduction)
	e.reproduction.Update(e.counters)

	// 5. Predation
	e.perf.Phase(telemetry.PhasePredation)
	e.predation.Update(e.counters)

	// 6. Remove the dead
	e.perf.Phase(telemetry.PhasePurge)
	e.pop.Purge()

	prey, preds := e.pop.Len()
	e.perf.EndFrame(prey + preds)
	e.frame++

	if crossed {
		e.closePerfDay()
	}
}

// endOfDay runs the daily update, files the report and starts a fresh accumulator.
func (e *Engine) endOfDay() {
	day := e.clock.Day()

	e.daily.Update(day, e.counters)
	stats := systems.CompileReport(day, e.pop, e.counters)
	e.reports.Append(stats)
	e.counters = telemetry.NewDayCounters()

	if e.opts.LogStats {
		slog.Info("day_report", "stats", stats)
	}
	for _, b := range e.bookmarks.Check(stats) {
		b.LogBookmark()
	}
}

// closePerfDay files the frame timings of the day that just ended.
func (e *Engine) closePerfDay() {
	dp := e.perf.CloseDay(e.clock.Day())
	if !e.opts.LogPerf {
		return
	}
	slog.Info("day_perf", "perf", dp)
	if err := e.output.WritePerf(dp); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}

// Organisms returns every stored organism behind the shared contract.
func (e *Engine) Organisms() []systems.Organism {
	prey := e.pop.Prey()
	preds := e.pop.Predators()
	out := make([]systems.Organism, 0, len(prey)+len(preds))
	for _, p := range prey {
		out = append(out, p)
	}
	for _, d := range preds {
		out = append(out, d)
	}
	return out
}

// SaveReports writes the report log. Failures are logged and returned;
// simulation state is untouched.
func (e *Engine) SaveReports() error {
	if e.output == nil {
		return nil
	}
	if err := e.output.WriteReports(e.reports); err != nil {
		slog.Error("failed to save reports", "path", e.output.ReportPath(), "error", err)
		return err
	}
	slog.Info("reports saved", "path", e.output.ReportPath(), "days", e.reports.Len())
	return nil
}

// Close releases output files and logs a summary of the run.
func (e *Engine) Close() error {
	slog.Info("run_summary", "summary", telemetry.SummarizeRun(e.reports))
	return e.output.Close()
}

// Day returns the number of completed days.
func (e *Engine) Day() uint32 { return e.clock.Day() }

// DayProgress returns the fraction of the current day that has elapsed.
func (e *Engine) DayProgress() float64 { return e.clock.Progress() }

// Frame returns the number of frames stepped.
func (e *Engine) Frame() uint64 { return e.frame }

// Population returns the live population for read-only consumers.
func (e *Engine) Population() *systems.Population { return e.pop }

// Reports returns the report log.
func (e *Engine) Reports() *telemetry.ReportLog { return e.reports }

// Perf returns the per-day phase timings.
func (e *Engine) Perf() *telemetry.DayProfiler { return e.perf }

// Registry returns the phase metadata.
func (e *Engine) Registry() *systems.SystemRegistry { return e.registry }

// Config returns the configuration the engine runs with.
func (e *Engine) Config() *config.Config { return e.cfg }

// Bounds returns the world rectangle.
func (e *Engine) Bounds() systems.Bounds { return e.bounds }
