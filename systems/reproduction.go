package systems

import (
	"math/rand"

	"github.com/pthm-cable/warren/components"
	"github.com/pthm-cable/warren/config"
	"github.com/pthm-cable/warren/species"
	"github.com/pthm-cable/warren/telemetry"
)

// ReproductionSystem pairs colliding, ready prey and queues their litters.
type ReproductionSystem struct {
	pop *Population
	cfg config.PreyConfig
	rng *rand.Rand

	// Reused between frames
	births  []PreySeed
	parents []*Prey
}

// NewReproductionSystem creates a new reproduction system.
func NewReproductionSystem(pop *Population, prey config.PreyConfig, rng *rand.Rand) *ReproductionSystem {
	return &ReproductionSystem{pop: pop, cfg: prey, rng: rng}
}

// Update scans every unordered pair of prey once. Newborns are added to the
// population only after the scan and after parent cooldowns are written.
// Returns the number of offspring born.
func (s *ReproductionSystem) Update(counters *telemetry.DayCounters) int {
	s.births = s.births[:0]
	s.parents = s.parents[:0]

	prey := s.pop.Prey()

	// Remaining capacity per species. Queued offspring count against it so
	// the cap still holds once they are spawned.
	live := s.pop.LiveCounts()
	var room [species.Count]int
	for _, id := range species.All() {
		room[id] = max(0, s.pop.Catalog().Get(id).MaxPopulation-live[id])
	}

	for i := 0; i < len(prey); i++ {
		a := prey[i]
		if !s.eligible(a) {
			continue
		}
		for j := i + 1; j < len(prey); j++ {
			b := prey[j]
			if !s.eligible(b) || b.State.Species != a.State.Species || b.State.Sex == a.State.Sex {
				continue
			}
			if !Collide(a, b) {
				continue
			}

			id := a.State.Species
			litter := min(a.Params.SampleLitter(s.rng), room[id])
			for k := 0; k < litter; k++ {
				s.births = append(s.births, s.offspring(a))
			}
			room[id] -= litter
			if litter > 0 {
				counters.Reproductions++
			}
			s.parents = append(s.parents, a, b)
		}
	}

	cooldown := max(float32(s.cfg.MatingCooldown), 0)
	for _, p := range s.parents {
		p.Vitals.Cooldown = cooldown
	}

	// Spawning invalidates the snapshot; nothing below may touch prey.
	for _, seed := range s.births {
		s.pop.AddPrey(seed)
	}
	return len(s.births)
}

func (s *ReproductionSystem) eligible(p *Prey) bool {
	return p.Ready() && p.State.Age >= p.Params.ReproductionAge
}

func (s *ReproductionSystem) offspring(parent *Prey) PreySeed {
	r := float32(s.cfg.SpawnRadius)
	sex := components.Female
	if s.rng.Float64() < parent.Params.MaleProbability {
		sex = components.Male
	}
	speed := float32(parent.Params.MaxSpeed)
	return PreySeed{
		Species: parent.State.Species,
		Sex:     sex,
		Pos: components.Position{
			X: parent.Pos.X + (s.rng.Float32()*2-1)*r,
			Y: parent.Pos.Y + (s.rng.Float32()*2-1)*r,
		},
		Vel: components.Velocity{
			X: (s.rng.Float32()*2 - 1) * speed,
			Y: (s.rng.Float32()*2 - 1) * speed,
		},
		Cooldown: float32(s.cfg.NewbornCooldown),
	}
}
