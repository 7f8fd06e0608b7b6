// Package renderer draws the meadow population with raylib.
package renderer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/warren/camera"
	"github.com/pthm-cable/warren/components"
	"github.com/pthm-cable/warren/systems"
)

// MeadowRenderer draws prey and predators as filled circles.
type MeadowRenderer struct {
	LabelSize int32
	ShowLabel bool // sex letters and predator cooldowns
}

// NewMeadowRenderer creates a renderer with labels enabled.
func NewMeadowRenderer() *MeadowRenderer {
	return &MeadowRenderer{LabelSize: 16, ShowLabel: true}
}

// Draw renders every live organism the camera can see, plus the meadow border.
func (m *MeadowRenderer) Draw(pop *systems.Population, cam *camera.Camera) {
	x0, y0 := cam.WorldToScreen(0, 0)
	x1, y1 := cam.WorldToScreen(cam.WorldW, cam.WorldH)
	rl.DrawRectangleLines(int32(x0), int32(y0), int32(x1-x0), int32(y1-y0), rl.LightGray)

	for _, p := range pop.Prey() {
		if p.IsAlive() && cam.IsVisible(p.Pos.X, p.Pos.Y, p.Body.Radius) {
			m.DrawPrey(p, cam)
		}
	}
	for _, d := range pop.Predators() {
		if d.IsAlive() && cam.IsVisible(d.Pos.X, d.Pos.Y, d.Body.Radius) {
			m.DrawPredator(d, cam)
		}
	}
}

// DrawPrey draws a prey in its species color, ringed in red while sick.
func (m *MeadowRenderer) DrawPrey(p *systems.Prey, cam *camera.Camera) {
	c := p.Params.Color
	color := rl.Color{R: c.R, G: c.G, B: c.B, A: 255}
	sx, sy := cam.WorldToScreen(p.Pos.X, p.Pos.Y)
	x, y := int32(sx), int32(sy)
	r := cam.ScreenRadius(p.Body.Radius)

	rl.DrawCircle(x, y, r, color)
	if p.Vitals.Health == components.Sick {
		rl.DrawCircleLines(x, y, r+2, rl.Red)
	}
	if m.ShowLabel {
		rl.DrawText(p.State.Sex.Letter(), x-5, y-12, m.LabelSize, rl.Black)
	}
}

// DrawPredator draws a predator in red, ringed in black while sick, with its
// remaining feeding cooldown above it.
func (m *MeadowRenderer) DrawPredator(d *systems.Predator, cam *camera.Camera) {
	sx, sy := cam.WorldToScreen(d.Pos.X, d.Pos.Y)
	x, y := int32(sx), int32(sy)
	r := cam.ScreenRadius(d.Body.Radius)

	rl.DrawCircle(x, y, r, rl.Red)
	if d.Vitals.Health == components.Sick {
		rl.DrawCircleLines(x, y, r+2, rl.Black)
	}
	if m.ShowLabel && d.Vitals.Cooldown > 0 {
		rl.DrawText(fmt.Sprintf("%.1f", d.Vitals.Cooldown), x-10, y-20, m.LabelSize, rl.DarkGray)
	}
}
