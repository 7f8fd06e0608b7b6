package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/warren/components"
	"github.com/pthm-cable/warren/config"
	"github.com/pthm-cable/warren/species"
)

// PreySeed describes a prey to be created.
type PreySeed struct {
	Species  species.ID
	Sex      components.Sex
	Pos      components.Position
	Vel      components.Velocity
	Age      uint32
	Cooldown float32
}

// PredatorSeed describes a predator to be created.
type PredatorSeed struct {
	Pos     components.Position
	Vel     components.Velocity
	Reserve float32
}

// Population owns every organism. Storage is an ark world; systems work on
// index-addressable snapshots taken with Prey and Predators.
//
// Snapshot pointers stay valid until the next AddPrey, AddPredator or Purge,
// so systems buffer births and removals until their scan is finished.
type Population struct {
	world   *ecs.World
	catalog *species.Catalog

	preyMapper *ecs.Map5[
		components.Position,
		components.Velocity,
		components.Body,
		components.Vitals,
		components.Prey,
	]
	predMapper *ecs.Map5[
		components.Position,
		components.Velocity,
		components.Body,
		components.Vitals,
		components.Predator,
	]
	preyFilter *ecs.Filter5[
		components.Position,
		components.Velocity,
		components.Body,
		components.Vitals,
		components.Prey,
	]
	predFilter *ecs.Filter5[
		components.Position,
		components.Velocity,
		components.Body,
		components.Vitals,
		components.Predator,
	]

	preyRadius float32
	predRadius float32
	nextID     uint32
}

// NewPopulation creates an empty population in the given world.
func NewPopulation(w *ecs.World, cat *species.Catalog, preyCfg config.PreyConfig, predCfg config.PredatorConfig) *Population {
	return &Population{
		world:   w,
		catalog: cat,
		preyMapper: ecs.NewMap5[
			components.Position,
			components.Velocity,
			components.Body,
			components.Vitals,
			components.Prey,
		](w),
		predMapper: ecs.NewMap5[
			components.Position,
			components.Velocity,
			components.Body,
			components.Vitals,
			components.Predator,
		](w),
		preyFilter: ecs.NewFilter5[
			components.Position,
			components.Velocity,
			components.Body,
			components.Vitals,
			components.Prey,
		](w),
		predFilter: ecs.NewFilter5[
			components.Position,
			components.Velocity,
			components.Body,
			components.Vitals,
			components.Predator,
		](w),
		preyRadius: float32(preyCfg.Radius),
		predRadius: float32(predCfg.Radius),
		nextID:     1,
	}
}

// Catalog returns the species catalog the population was built with.
func (p *Population) Catalog() *species.Catalog {
	return p.catalog
}

// AddPrey creates a live, healthy prey with zero weight.
func (p *Population) AddPrey(s PreySeed) ecs.Entity {
	params := p.catalog.Get(s.Species)

	pos := s.Pos
	vel := s.Vel
	body := components.Body{Radius: p.preyRadius}
	vitals := components.Vitals{Alive: true, Cooldown: max(s.Cooldown, 0), Health: components.Healthy}
	prey := components.Prey{
		ID:          p.nextID,
		Species:     s.Species,
		Sex:         s.Sex,
		Age:         s.Age,
		SeekingMate: s.Age >= params.ReproductionAge,
	}
	p.nextID++

	return p.preyMapper.NewEntity(&pos, &vel, &body, &vitals, &prey)
}

// AddPredator creates a live, healthy predator.
func (p *Population) AddPredator(s PredatorSeed) ecs.Entity {
	pos := s.Pos
	vel := s.Vel
	body := components.Body{Radius: p.predRadius}
	vitals := components.Vitals{Alive: true, Health: components.Healthy}
	pred := components.Predator{ID: p.nextID, Reserve: max(s.Reserve, 0)}
	p.nextID++

	return p.predMapper.NewEntity(&pos, &vel, &body, &vitals, &pred)
}

// Prey returns a snapshot of every prey, dead or alive, in storage order.
func (p *Population) Prey() []*Prey {
	var out []*Prey
	query := p.preyFilter.Query()
	for query.Next() {
		pos, vel, body, vitals, state := query.Get()
		out = append(out, &Prey{
			Entity: query.Entity(),
			Pos:    pos,
			Vel:    vel,
			Body:   body,
			Vitals: vitals,
			State:  state,
			Params: p.catalog.Get(state.Species),
		})
	}
	return out
}

// Predators returns a snapshot of every predator, dead or alive, in storage order.
func (p *Population) Predators() []*Predator {
	var out []*Predator
	query := p.predFilter.Query()
	for query.Next() {
		pos, vel, body, vitals, state := query.Get()
		out = append(out, &Predator{
			Entity: query.Entity(),
			Pos:    pos,
			Vel:    vel,
			Body:   body,
			Vitals: vitals,
			State:  state,
		})
	}
	return out
}

// LiveCounts returns the number of live prey per species.
func (p *Population) LiveCounts() [species.Count]int {
	var counts [species.Count]int
	query := p.preyFilter.Query()
	for query.Next() {
		_, _, _, vitals, state := query.Get()
		if vitals.Alive {
			counts[state.Species]++
		}
	}
	return counts
}

// LivePredators returns the number of live predators and how many of them are sick.
func (p *Population) LivePredators() (live, sick int) {
	query := p.predFilter.Query()
	for query.Next() {
		_, _, _, vitals, _ := query.Get()
		if vitals.Alive {
			live++
			if vitals.Health == components.Sick {
				sick++
			}
		}
	}
	return live, sick
}

// Len returns the number of stored prey and predators, including dead ones not yet purged.
func (p *Population) Len() (prey, predators int) {
	query := p.preyFilter.Query()
	for query.Next() {
		prey++
	}
	predQuery := p.predFilter.Query()
	for predQuery.Next() {
		predators++
	}
	return prey, predators
}

// Purge removes dead organisms and reports how many of each kind were removed.
func (p *Population) Purge() (prey, predators int) {
	// Collect first; removing during a query is not allowed.
	var dead []ecs.Entity

	query := p.preyFilter.Query()
	for query.Next() {
		_, _, _, vitals, _ := query.Get()
		if !vitals.Alive {
			dead = append(dead, query.Entity())
		}
	}
	prey = len(dead)

	predQuery := p.predFilter.Query()
	for predQuery.Next() {
		_, _, _, vitals, _ := predQuery.Get()
		if !vitals.Alive {
			dead = append(dead, predQuery.Entity())
		}
	}
	predators = len(dead) - prey

	for _, e := range dead {
		p.world.RemoveEntity(e)
	}
	return prey, predators
}

// At returns the live organism nearest to (x, y) whose body, grown by
// tolerance, covers the point.
func (p *Population) At(x, y, tolerance float32) (ecs.Entity, bool) {
	var best ecs.Entity
	bestDist := float32(-1)
	at := components.Position{X: x, Y: y}

	consider := func(e ecs.Entity, pos *components.Position, body *components.Body, vitals *components.Vitals) {
		if !vitals.Alive {
			return
		}
		reach := body.Radius + tolerance
		d := distSq(*pos, at)
		if d <= reach*reach && (bestDist < 0 || d < bestDist) {
			best, bestDist = e, d
		}
	}

	query := p.preyFilter.Query()
	for query.Next() {
		pos, _, body, vitals, _ := query.Get()
		consider(query.Entity(), pos, body, vitals)
	}
	predQuery := p.predFilter.Query()
	for predQuery.Next() {
		pos, _, body, vitals, _ := predQuery.Get()
		consider(predQuery.Entity(), pos, body, vitals)
	}
	return best, bestDist >= 0
}

// LookupPrey returns a fresh view of a stored prey.
func (p *Population) LookupPrey(e ecs.Entity) (*Prey, bool) {
	for _, v := range p.Prey() {
		if v.Entity == e {
			return v, true
		}
	}
	return nil, false
}

// LookupPredator returns a fresh view of a stored predator.
func (p *Population) LookupPredator(e ecs.Entity) (*Predator, bool) {
	for _, v := range p.Predators() {
		if v.Entity == e {
			return v, true
		}
	}
	return nil, false
}
