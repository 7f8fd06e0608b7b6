package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/warren/ui"
)

// Draw renders the meadow, then the HUD on top.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.RayWhite)

	g.meadow.Draw(g.engine.Population(), g.cam)
	g.inspector.Draw(g.engine.Population(), g.cam, g.optimalReserve())

	actions := g.hud.Draw(g.hudData())
	if actions.TogglePause {
		g.paused = !g.paused
	}
	if actions.Save {
		g.save()
	}
	g.hud.DrawControls(g.screenWidth, g.screenHeight, Controls)

	if g.showPerf {
		g.perfPanel.Draw(ui.PerfPanelData{
			Stats:    g.engine.Perf().Stats(),
			Registry: g.engine.Registry(),
		})
	}

	rl.EndDrawing()
}
