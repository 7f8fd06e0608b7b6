package ui

import (
	"fmt"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/warren/systems"
	"github.com/pthm-cable/warren/telemetry"
)

// SpeciesLine is one species row of the HUD.
type SpeciesLine struct {
	Name      string
	Color     rl.Color
	Count     int
	AvgAge    float64
	AvgWeight float64
}

// PredatorLine is one predator row of the HUD.
type PredatorLine struct {
	ID      uint32
	Reserve float32
	Sick    bool
}

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Day            uint32
	DayProgress    float32
	Species        []SpeciesLine
	Predators      []PredatorLine
	OptimalReserve float32
	FPS            int32
	Paused         bool
	Status         string // transient message, e.g. after saving
	ScreenWidth    int32
	ScreenHeight   int32
}

// HUDActions reports which HUD buttons were clicked this frame.
type HUDActions struct {
	TogglePause bool
	Save        bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD and its buttons.
func (h *HUD) Draw(data HUDData) HUDActions {
	r := h.renderer

	rl.DrawText(fmt.Sprintf("Day: %d | Esc: finish and generate report", data.Day), 10, 20, 20, rl.Black)

	y := int32(50)
	for _, s := range data.Species {
		rl.DrawCircle(16, y+8, 5, s.Color)
		rl.DrawText(
			fmt.Sprintf("%s: %d | avg age: %.1f | avg weight: %.2f", s.Name, s.Count, s.AvgAge, s.AvgWeight),
			28, y, r.Theme.FontSize, rl.DarkGray,
		)
		y += r.Theme.LineHeight
	}

	// Predator rows stop before the control legend.
	y = 130
	limit := data.ScreenHeight - 60
	for i, p := range data.Predators {
		if y > limit {
			rl.DrawText(fmt.Sprintf("... %d more", len(data.Predators)-i), 10, y, r.Theme.FontSize, rl.Red)
			break
		}
		label := fmt.Sprintf("Predator %d", p.ID)
		if p.Sick {
			label += " (sick)"
		}
		y = r.DrawReserveBar(10, y, label, p.Reserve, data.OptimalReserve, p.Sick, 420)
	}

	var actions HUDActions

	// Top-right controls
	bx := float32(data.ScreenWidth) - 230
	pauseText := "Pause"
	if data.Paused {
		pauseText = "Resume"
	}
	if gui.Button(rl.Rectangle{X: bx, Y: 10, Width: 100, Height: 30}, pauseText) {
		actions.TogglePause = true
	}
	if gui.Button(rl.Rectangle{X: bx + 110, Y: 10, Width: 100, Height: 30}, "Save report") {
		actions.Save = true
	}
	r.DrawBar(int32(bx), 48, "Day", data.DayProgress, 220)

	rl.DrawText(fmt.Sprintf("FPS: %d", data.FPS), int32(bx), 70, 16, rl.Gray)
	if data.Paused {
		rl.DrawText("PAUSED", int32(bx)+80, 70, 16, rl.Orange)
	}
	if data.Status != "" {
		rl.DrawText(data.Status, int32(bx), 90, 14, rl.DarkGreen)
	}

	return actions
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanelData holds performance metrics for display.
type PerfPanelData struct {
	Stats    telemetry.PerfStats
	Registry *systems.SystemRegistry
}

// PerfPanel renders the per-phase performance panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel, one row per registered phase.
func (p *PerfPanel) Draw(data PerfPanelData) {
	r := p.renderer
	ids := data.Registry.IDs()
	height := int32(92 + 16*len(ids))
	r.DrawPanel(p.x, p.y, 260, height)

	x := p.x + r.Theme.Padding
	y := p.y + r.Theme.Padding

	st := data.Stats
	rl.DrawText(fmt.Sprintf("Performance (%d days)", st.Days), x, y, 16, r.Theme.SectionHeader)
	y += 20

	rl.DrawText(fmt.Sprintf("Frame: %s  max %s", st.AvgFrame.Round(time.Microsecond), st.MaxFrame.Round(time.Microsecond)),
		x, y, 14, r.Theme.ValueColor)
	y += 18
	rl.DrawText(fmt.Sprintf("Day block: %s  %.0f frames/day", st.AvgDayBlock.Round(time.Microsecond), st.FramesPerDay),
		x, y, 12, r.Theme.LabelColor)
	y += 16
	rl.DrawText(fmt.Sprintf("Per organism: %s", st.PerOrganism), x, y, 12, r.Theme.LabelColor)
	y += 16

	for _, id := range ids {
		avg := st.PhaseAvg[id]
		pct := st.PhasePct[id]

		color := r.Theme.LabelColor
		if pct > 40 {
			color = rl.Red
		} else if pct > 20 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-13s %8s %5.1f%%", data.Registry.GetName(id), avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 16
	}
}
