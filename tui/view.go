// Package tui is a terminal front-end for the meadow, drawn with tcell.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/warren/components"
	"github.com/pthm-cable/warren/sim"
	"github.com/pthm-cable/warren/species"
	"github.com/pthm-cable/warren/systems"
)

// Rows reserved above and below the map.
const (
	headerRows = 1
	footerRows = 1
)

const legend = "space: pause  s: save  esc: save and quit"

var glyphs = [species.Count]rune{'r', 'm', 's'}

// View steps an engine on a ticker and draws it onto a tcell screen.
type View struct {
	screen tcell.Screen
	engine *sim.Engine
	frame  time.Duration

	width, height int
	paused        bool
	status        string
}

// NewView binds an initialized screen to an engine. Each tick advances the
// simulation by frame.
func NewView(screen tcell.Screen, engine *sim.Engine, frame time.Duration) *View {
	w, h := screen.Size()
	return &View{
		screen: screen,
		engine: engine,
		frame:  frame,
		width:  w,
		height: h,
	}
}

// Run polls input and redraws until the user quits or ctx is cancelled.
func (v *View) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ticker := time.NewTicker(v.frame)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go v.pollEvents(ctx, events)

	v.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-events:
			if !v.HandleEvent(ev) {
				return nil
			}

		case <-ticker.C:
			v.Tick()
			v.Draw()
		}
	}
}

// pollEvents forwards screen events until the screen is finalized or ctx ends.
func (v *View) pollEvents(ctx context.Context, events chan<- tcell.Event) {
	for {
		ev := v.screen.PollEvent()
		if ev == nil {
			return // screen finalized
		}
		select {
		case events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// Tick advances one frame unless paused.
func (v *View) Tick() {
	if v.paused {
		return
	}
	v.engine.Step(v.frame.Seconds())
}

// HandleEvent applies one input event. It returns false when the view should close.
func (v *View) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			v.save()
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == ' ':
			v.paused = !v.paused
		case ev.Key() == tcell.KeyRune && (ev.Rune() == 's' || ev.Rune() == 'S'):
			v.save()
		}

	case *tcell.EventResize:
		v.width, v.height = v.screen.Size()
		v.screen.Sync()
	}
	return true
}

// Paused reports whether stepping is suspended.
func (v *View) Paused() bool {
	return v.paused
}

func (v *View) save() {
	if err := v.engine.SaveReports(); err != nil {
		v.status = "save failed"
		slog.Error("terminal save failed", "error", err)
		return
	}
	v.status = fmt.Sprintf("saved %d days", v.engine.Reports().Len())
}

// Draw renders the status line, the map and the legend.
func (v *View) Draw() {
	v.screen.Clear()

	pop := v.engine.Population()
	for _, p := range pop.Prey() {
		if p.IsAlive() {
			v.drawPrey(p)
		}
	}
	for _, d := range pop.Predators() {
		if d.IsAlive() {
			v.drawPredator(d)
		}
	}

	v.drawText(0, 0, v.statusLine(pop), tcell.StyleDefault.Bold(true))
	v.drawText(0, v.height-1, legend, tcell.StyleDefault.Foreground(tcell.ColorGray))
	if v.status != "" {
		v.drawText(len(legend)+2, v.height-1, v.status, tcell.StyleDefault.Foreground(tcell.ColorGreen))
	}

	v.screen.Show()
}

func (v *View) statusLine(pop *systems.Population) string {
	counts := pop.LiveCounts()
	live, sick := pop.LivePredators()
	line := fmt.Sprintf("Day: %d | rabbits %d  mice %d  squirrels %d | predators %d (%d sick)",
		v.engine.Day(), counts[species.Rabbit], counts[species.Mouse], counts[species.Squirrel], live, sick)
	if v.paused {
		line += " | PAUSED"
	}
	return line
}

func (v *View) drawPrey(p *systems.Prey) {
	x, y, ok := v.cellFor(p.Pos.X, p.Pos.Y)
	if !ok {
		return
	}
	c := p.Params.Color
	style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
	if p.Vitals.Health == components.Sick {
		style = style.Background(tcell.ColorDarkRed)
	}
	g := glyphs[p.State.Species]
	if p.State.Sex == components.Male {
		g -= 'a' - 'A'
	}
	v.screen.SetContent(x, y, g, nil, style)
}

func (v *View) drawPredator(d *systems.Predator) {
	x, y, ok := v.cellFor(d.Pos.X, d.Pos.Y)
	if !ok {
		return
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	if d.Vitals.Health == components.Sick {
		style = style.Reverse(true)
	}
	v.screen.SetContent(x, y, '@', nil, style)
}

// cellFor scales a world position into the map area between the header and
// footer rows.
func (v *View) cellFor(wx, wy float32) (int, int, bool) {
	rows := v.height - headerRows - footerRows
	if v.width <= 0 || rows <= 0 {
		return 0, 0, false
	}
	b := v.engine.Bounds()
	x := int(wx / b.Width * float32(v.width))
	y := int(wy / b.Height * float32(rows))
	x = min(max(x, 0), v.width-1)
	y = min(max(y, 0), rows-1)
	return x, y + headerRows, true
}

func (v *View) drawText(x, y int, text string, style tcell.Style) {
	for _, r := range text {
		if x >= v.width {
			return
		}
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
