// Package inspector lets the user click an organism and read its state.
package inspector

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/warren/camera"
	"github.com/pthm-cable/warren/components"
	"github.com/pthm-cable/warren/systems"
	"github.com/pthm-cable/warren/ui"
)

// Panel dimensions
const (
	PanelWidth   = 300
	PanelPadding = 10
	HeaderHeight = 26
)

// pickTolerance is how far outside a body a click still selects it, in world units.
const pickTolerance = 5

var colorHighlight = rl.Color{R: 255, G: 200, B: 0, A: 255}

// Inspector manages organism selection and panel rendering.
type Inspector struct {
	selected    ecs.Entity
	hasSelected bool
	panelX      int32
	panelY      int32

	ui *ui.Renderer
}

// NewInspector creates an inspector anchored below the HUD buttons.
func NewInspector(screenWidth int32) *Inspector {
	ins := &Inspector{ui: ui.NewRenderer()}
	ins.Resize(screenWidth)
	return ins
}

// Resize re-anchors the panel after a window resize.
func (ins *Inspector) Resize(screenWidth int32) {
	ins.panelX = screenWidth - PanelWidth - 10
	ins.panelY = 120
}

// HandleInput selects the organism under a left click and clears the
// selection on a right click. Clicks on the panel itself are ignored.
func (ins *Inspector) HandleInput(pop *systems.Population, cam *camera.Camera) {
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		ins.Deselect()
		return
	}
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}

	mouse := rl.GetMousePosition()
	if ins.hasSelected && ins.overPanel(int32(mouse.X), int32(mouse.Y)) {
		return
	}

	wx, wy := cam.ScreenToWorld(mouse.X, mouse.Y)
	if e, ok := pop.At(wx, wy, pickTolerance); ok {
		ins.selected = e
		ins.hasSelected = true
	}
}

func (ins *Inspector) overPanel(x, y int32) bool {
	return x >= ins.panelX && x <= ins.panelX+PanelWidth && y >= ins.panelY
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
}

// Selected returns the currently selected entity.
func (ins *Inspector) Selected() (ecs.Entity, bool) {
	return ins.selected, ins.hasSelected
}

// Draw rings the selected organism and renders its detail panel. A selection
// whose organism has died or been purged is dropped.
func (ins *Inspector) Draw(pop *systems.Population, cam *camera.Camera, optimalReserve float32) {
	if !ins.hasSelected {
		return
	}

	if p, ok := pop.LookupPrey(ins.selected); ok && p.IsAlive() {
		ins.highlight(p.Pos, p.Body.Radius, cam)
		ins.drawPrey(p)
		return
	}
	if d, ok := pop.LookupPredator(ins.selected); ok && d.IsAlive() {
		ins.highlight(d.Pos, d.Body.Radius, cam)
		ins.drawPredator(d, optimalReserve)
		return
	}
	ins.Deselect()
}

func (ins *Inspector) highlight(pos *components.Position, radius float32, cam *camera.Camera) {
	sx, sy := cam.WorldToScreen(pos.X, pos.Y)
	r := cam.ScreenRadius(radius) + 4
	rl.DrawCircleLines(int32(sx), int32(sy), r, colorHighlight)
	rl.DrawCircleLines(int32(sx), int32(sy), r+1, colorHighlight)
}

func (ins *Inspector) drawPrey(p *systems.Prey) {
	theme := ins.ui.Theme
	y, x := ins.begin(fmt.Sprintf("PREY #%d", p.State.ID), 10)

	y = ins.ui.DrawLabelValue(x, y, "Species", p.State.Species.String(), theme.ValueColor)
	y = ins.ui.DrawLabelValue(x, y, "Sex", p.State.Sex.String(), theme.ValueColor)
	y = ins.ui.DrawLabelValue(x, y, "Age", fmt.Sprintf("%d days", p.State.Age), theme.ValueColor)
	y = ins.ui.DrawLabelValue(x, y, "Weight", fmt.Sprintf("%.2f", p.State.Weight), theme.ValueColor)
	y = ins.drawHealth(x, y, p.Vitals)
	y = ins.ui.DrawLabelValue(x, y, "Cooldown", fmt.Sprintf("%.1fs", p.Vitals.Cooldown), theme.ValueColor)
	y = ins.ui.DrawLabelValue(x, y, "Seeking", yesNo(p.State.SeekingMate), theme.ValueColor)
	ins.ui.DrawLabelValue(x, y, "Harvestable", yesNo(p.Harvestable()), theme.ValueColor)
}

func (ins *Inspector) drawPredator(d *systems.Predator, optimalReserve float32) {
	theme := ins.ui.Theme
	y, x := ins.begin(fmt.Sprintf("PREDATOR #%d", d.State.ID), 5)

	sick := d.Vitals.Health == components.Sick
	y = ins.ui.DrawReserveBar(x, y, "Reserve", d.State.Reserve, optimalReserve, sick, PanelWidth-2*PanelPadding)
	y = ins.drawHealth(x, y, d.Vitals)
	ins.ui.DrawLabelValue(x, y, "Cooldown", fmt.Sprintf("%.1fs", d.Vitals.Cooldown), theme.ValueColor)
}

// begin draws the panel frame sized for rows lines and returns the first
// content position.
func (ins *Inspector) begin(title string, rows int32) (y, x int32) {
	theme := ins.ui.Theme
	height := HeaderHeight + PanelPadding*2 + rows*theme.LineHeight

	ins.ui.DrawPanel(ins.panelX, ins.panelY, PanelWidth, height)
	x = ins.panelX + PanelPadding
	y = ins.ui.DrawSectionHeader(x, ins.panelY+PanelPadding, title)
	return y, x
}

func (ins *Inspector) drawHealth(x, y int32, v *components.Vitals) int32 {
	theme := ins.ui.Theme
	color := theme.ValueColor
	if v.Health == components.Sick {
		color = theme.AlertColor
	}
	y = ins.ui.DrawLabelValue(x, y, "Health", v.Health.String(), color)
	return ins.ui.DrawLabelValue(x, y, "Sick days", fmt.Sprintf("%d", v.SickDays), color)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
