// Package game is the raylib front-end: it steps a sim.Engine with the
// window's frame time and draws the meadow and HUD.
package game

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/warren/camera"
	"github.com/pthm-cable/warren/components"
	"github.com/pthm-cable/warren/inspector"
	"github.com/pthm-cable/warren/renderer"
	"github.com/pthm-cable/warren/sim"
	"github.com/pthm-cable/warren/systems"
	"github.com/pthm-cable/warren/ui"
)

// statusSeconds is how long a HUD status message stays visible.
const statusSeconds = 3.0

// Game holds the engine and the front-end state around it.
type Game struct {
	engine *sim.Engine

	// Rendering
	cam       *camera.Camera
	meadow    *renderer.MeadowRenderer
	inspector *inspector.Inspector
	hud       *ui.HUD
	perfPanel *ui.PerfPanel

	// State
	paused   bool
	showPerf bool
	quit     bool

	status      string
	statusUntil float64

	screenWidth  int32
	screenHeight int32
}

// NewGame builds the engine and the raylib views. The window must already be open.
func NewGame(opts sim.Options) (*Game, error) {
	engine, err := sim.NewEngine(opts)
	if err != nil {
		return nil, err
	}
	cfg := engine.Config()

	return &Game{
		engine:       engine,
		cam:          camera.New(cfg.Derived.ScreenW32, cfg.Derived.ScreenH32, cfg.Derived.WorldW32, cfg.Derived.WorldH32),
		meadow:       renderer.NewMeadowRenderer(),
		inspector:    inspector.NewInspector(int32(cfg.Screen.Width)),
		hud:          ui.NewHUD(),
		perfPanel:    ui.NewPerfPanel(int32(cfg.Screen.Width)-270, int32(cfg.Screen.Height)-210),
		showPerf:     opts.LogPerf,
		screenWidth:  int32(cfg.Screen.Width),
		screenHeight: int32(cfg.Screen.Height),
	}, nil
}

// Update handles input, then advances the simulation by the last frame time.
func (g *Game) Update() {
	g.engine.Perf().RecordFrame()
	g.handleInput()

	if g.quit || g.paused {
		return
	}
	g.engine.Step(float64(rl.GetFrameTime()))
}

// ShouldQuit reports whether the user asked to finish the run.
func (g *Game) ShouldQuit() bool {
	return g.quit
}

// Day returns the number of completed days.
func (g *Game) Day() uint32 {
	return g.engine.Day()
}

// Engine returns the underlying simulation.
func (g *Game) Engine() *sim.Engine {
	return g.engine
}

// save writes the report log and surfaces the outcome on the HUD.
func (g *Game) save() error {
	err := g.engine.SaveReports()
	if err != nil {
		g.setStatus("save failed: " + err.Error())
	} else {
		g.setStatus(fmt.Sprintf("saved %d days", g.engine.Reports().Len()))
	}
	return err
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusUntil = rl.GetTime() + statusSeconds
}

// hudData gathers the HUD view of the current population.
func (g *Game) hudData() ui.HUDData {
	pop := g.engine.Population()
	cat := pop.Catalog()

	sums := systems.Summarize(pop)
	lines := make([]ui.SpeciesLine, len(sums))
	for i, s := range sums {
		c := cat.Get(s.Species).Color
		lines[i] = ui.SpeciesLine{
			Name:      s.Species.String(),
			Color:     rl.Color{R: c.R, G: c.G, B: c.B, A: 255},
			Count:     s.Count,
			AvgAge:    s.AvgAge,
			AvgWeight: s.AvgWeight,
		}
	}

	var preds []ui.PredatorLine
	for _, d := range pop.Predators() {
		if !d.IsAlive() {
			continue
		}
		preds = append(preds, ui.PredatorLine{
			ID:      d.State.ID,
			Reserve: d.State.Reserve,
			Sick:    d.Vitals.Health == components.Sick,
		})
	}

	status := ""
	if rl.GetTime() < g.statusUntil {
		status = g.status
	}

	return ui.HUDData{
		Day:            g.engine.Day(),
		DayProgress:    float32(g.engine.DayProgress()),
		Species:        lines,
		Predators:      preds,
		OptimalReserve: g.optimalReserve(),
		FPS:            rl.GetFPS(),
		Paused:         g.paused,
		Status:         status,
		ScreenWidth:    g.screenWidth,
		ScreenHeight:   g.screenHeight,
	}
}

func (g *Game) optimalReserve() float32 {
	return float32(g.engine.Config().Predator.OptimalReserve)
}

// Unload closes the engine and its output files.
func (g *Game) Unload() {
	g.engine.Close()
}
