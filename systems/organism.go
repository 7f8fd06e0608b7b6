package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/warren/components"
	"github.com/pthm-cable/warren/species"
)

// Bounds is the world rectangle organisms bounce inside.
type Bounds struct {
	Width, Height float32
}

// Organism is the movement and lifecycle contract shared by prey and predators.
type Organism interface {
	Advance(dt float32, b Bounds)
	Position() components.Position
	Radius() float32
	IsAlive() bool
	Kill()
}

var (
	_ Organism = (*Prey)(nil)
	_ Organism = (*Predator)(nil)
)

// Prey is a view onto one prey entity's components.
type Prey struct {
	Entity ecs.Entity
	Pos    *components.Position
	Vel    *components.Velocity
	Body   *components.Body
	Vitals *components.Vitals
	State  *components.Prey
	Params *species.Params
}

// Advance moves the prey one frame, reflecting velocity at the world edges,
// and counts its cooldown down by dt.
func (p *Prey) Advance(dt float32, b Bounds) {
	if !p.Vitals.Alive {
		return
	}
	p.Pos.X += p.Vel.X
	p.Pos.Y += p.Vel.Y
	if p.Pos.X < 0 || p.Pos.X > b.Width {
		p.Vel.X = -p.Vel.X
	}
	if p.Pos.Y < 0 || p.Pos.Y > b.Height {
		p.Vel.Y = -p.Vel.Y
	}
	p.Vitals.Cooldown = max(p.Vitals.Cooldown-dt, 0)
}

func (p *Prey) Position() components.Position { return *p.Pos }
func (p *Prey) Radius() float32               { return p.Body.Radius }
func (p *Prey) IsAlive() bool                 { return p.Vitals.Alive }
func (p *Prey) Kill()                         { p.Vitals.Alive = false }

// Ready reports whether the prey may breed or seek a mate right now.
func (p *Prey) Ready() bool {
	return p.Vitals.Alive && p.Vitals.Cooldown <= 0
}

// Harvestable reports whether a predator may take this prey.
func (p *Prey) Harvestable() bool {
	return p.Vitals.Alive && p.State.Age >= p.Params.HarvestAge
}

// SteerToward points the velocity at (tx, ty) with the species' max speed.
// A target at the current position leaves the velocity unchanged.
func (p *Prey) SteerToward(tx, ty float32) {
	steer(p.Pos, p.Vel, tx, ty, float32(p.Params.MaxSpeed))
}

// Predator is a view onto one predator entity's components.
type Predator struct {
	Entity ecs.Entity
	Pos    *components.Position
	Vel    *components.Velocity
	Body   *components.Body
	Vitals *components.Vitals
	State  *components.Predator
}

// Advance moves the predator one frame, reflecting velocity at the world
// edges, and counts its feeding cooldown down by dt.
func (d *Predator) Advance(dt float32, b Bounds) {
	if !d.Vitals.Alive {
		return
	}
	d.Pos.X += d.Vel.X
	d.Pos.Y += d.Vel.Y
	if d.Pos.X < 0 || d.Pos.X > b.Width {
		d.Vel.X = -d.Vel.X
	}
	if d.Pos.Y < 0 || d.Pos.Y > b.Height {
		d.Vel.Y = -d.Vel.Y
	}
	d.Vitals.Cooldown = max(d.Vitals.Cooldown-dt, 0)
}

func (d *Predator) Position() components.Position { return *d.Pos }
func (d *Predator) Radius() float32               { return d.Body.Radius }
func (d *Predator) IsAlive() bool                 { return d.Vitals.Alive }
func (d *Predator) Kill()                         { d.Vitals.Alive = false }

func steer(pos *components.Position, vel *components.Velocity, tx, ty, speed float32) {
	dx := tx - pos.X
	dy := ty - pos.Y
	dist := float32(math.Sqrt(float64(dx*dx + dy*dy)))
	if dist > 0 {
		vel.X = dx / dist * speed
		vel.Y = dy / dist * speed
	}
}

func distSq(a, b components.Position) float32 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}
