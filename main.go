package main

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/warren/config"
	"github.com/pthm-cable/warren/game"
	"github.com/pthm-cable/warren/sim"
	"github.com/pthm-cable/warren/tui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	terminal := flag.Bool("tui", false, "Run in the terminal instead of a window")
	logStats := flag.Bool("log-stats", false, "Log every daily report via slog")
	logPerf := flag.Bool("log-perf", false, "Log per-phase timings once per day")
	outputDir := flag.String("output-dir", ".", "Output directory for reports.csv and config snapshot (empty = none)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxDays := flag.Int("max-days", 0, "Stop after N days (0 = unlimited; headless requires a limit)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	var logOut io.Writer = os.Stdout
	if *terminal {
		logOut = terminalLog(*outputDir)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(logOut, nil)))

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := sim.Options{
		Seed:      rngSeed,
		LogStats:  *logStats,
		LogPerf:   *logPerf,
		OutputDir: *outputDir,
	}

	switch {
	case *headless:
		os.Exit(runHeadless(opts, cfg.Clock.HeadlessDT, *maxDays))
	case *terminal:
		os.Exit(runTerminal(opts, cfg.Screen.TargetFPS))
	}

	// Graphical mode
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Warren")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	rl.SetExitKey(0) // Esc saves before quitting

	g, err := game.NewGame(opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		return
	}
	defer g.Unload()

	for !rl.WindowShouldClose() && !g.ShouldQuit() {
		g.Update()
		g.Draw()

		if *maxDays > 0 && int(g.Day()) >= *maxDays {
			slog.Info("max days reached", "day", g.Day())
			g.Engine().SaveReports()
			break
		}
	}
}

// runHeadless steps the engine with a fixed frame time until maxDays have elapsed.
func runHeadless(opts sim.Options, dt float64, maxDays int) int {
	if maxDays <= 0 {
		slog.Error("headless mode needs -max-days")
		return 2
	}

	e, err := sim.NewEngine(opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		return 1
	}
	defer e.Close()

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"max_days", maxDays,
		"dt", dt,
	)

	for int(e.Day()) < maxDays {
		e.Step(dt)
	}
	slog.Info("max days reached", "day", e.Day(), "frames", e.Frame())

	if err := e.SaveReports(); err != nil {
		return 1
	}
	return 0
}

// runTerminal drives the tcell view until the user quits or an interrupt arrives.
func runTerminal(opts sim.Options, fps int) int {
	e, err := sim.NewEngine(opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		return 1
	}
	defer e.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		slog.Error("failed to create screen", "error", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		slog.Error("failed to init screen", "error", err)
		return 1
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if fps <= 0 {
		fps = 60
	}
	view := tui.NewView(screen, e, time.Second/time.Duration(fps))
	if err := view.Run(ctx); err != nil {
		e.SaveReports()
	}
	return 0
}

// terminalLog keeps log output off the terminal screen.
func terminalLog(dir string) io.Writer {
	if dir == "" {
		return io.Discard
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return io.Discard
	}
	f, err := os.OpenFile(filepath.Join(dir, "warren.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return io.Discard
	}
	return f
}
