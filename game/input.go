package game

import rl "github.com/gen2brain/raylib-go/raylib"

// Controls is the legend drawn at the bottom of the window.
const Controls = "Space: pause | S: save | P: perf | L: labels | Arrows/wheel: pan/zoom | Home: reset view | Click: inspect | Esc: save and quit"

// handleInput processes keyboard input. Esc is handled here rather than as
// raylib's exit key so the report is written before the window closes.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	if rl.IsKeyPressed(rl.KeyS) {
		g.save()
	}

	if rl.IsKeyPressed(rl.KeyP) {
		g.showPerf = !g.showPerf
	}

	if rl.IsKeyPressed(rl.KeyL) {
		g.meadow.ShowLabel = !g.meadow.ShowLabel
	}

	g.handleCameraInput()
	g.inspector.HandleInput(g.engine.Population(), g.cam)

	if rl.IsKeyPressed(rl.KeyEscape) {
		g.save()
		g.quit = true
	}
}

// handleResize keeps HUD anchors in step with the window size.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	g.screenWidth = int32(rl.GetScreenWidth())
	g.screenHeight = int32(rl.GetScreenHeight())
	g.perfPanel.SetPosition(g.screenWidth-270, g.screenHeight-210)
	g.cam.Resize(float32(g.screenWidth), float32(g.screenHeight))
	g.inspector.Resize(g.screenWidth)
}

// handleCameraInput pans with the arrow keys and zooms with the wheel or +/-.
func (g *Game) handleCameraInput() {
	const panSpeed = 8.0 // screen pixels per frame

	if rl.IsKeyDown(rl.KeyRight) {
		g.cam.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		g.cam.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.cam.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.cam.Pan(0, -panSpeed)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.cam.ZoomBy(1 + wheel*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.cam.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.cam.ZoomBy(0.8)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		g.cam.Reset()
	}
}
