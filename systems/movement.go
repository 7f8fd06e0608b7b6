package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/warren/config"
)

// SteeringSystem sets velocities: prey steer toward the nearest eligible mate
// or wander, predators chase the heaviest harvestable prey.
type SteeringSystem struct {
	pop       *Population
	jitter    float32 // mate target offset bound (prey radius)
	noise     float32
	predSpeed float32
	rng       *rand.Rand
}

// NewSteeringSystem creates a new steering system.
func NewSteeringSystem(pop *Population, prey config.PreyConfig, pred config.PredatorConfig, rng *rand.Rand) *SteeringSystem {
	return &SteeringSystem{
		pop:       pop,
		jitter:    float32(prey.Radius),
		noise:     float32(prey.MovementNoise),
		predSpeed: float32(pred.MaxSpeed),
		rng:       rng,
	}
}

// Update steers every live organism for this frame.
func (s *SteeringSystem) Update() {
	prey := s.pop.Prey()
	s.seekMates(prey)
	s.hunt(s.pop.Predators(), prey)
}

func (s *SteeringSystem) seekMates(prey []*Prey) {
	for i, p := range prey {
		if !p.State.SeekingMate || !p.Ready() {
			continue
		}
		if j := NearestMate(prey, i); j >= 0 {
			partner := prey[j].Pos
			p.SteerToward(partner.X+s.uniform(s.jitter), partner.Y+s.uniform(s.jitter))
		} else {
			s.wander(p)
		}
	}
}

// NearestMate returns the index of the closest prey that could mate with
// prey[i], or -1. Ties go to the first candidate in slice order.
func NearestMate(prey []*Prey, i int) int {
	p := prey[i]
	best := -1
	bestDist := float32(math.MaxFloat32)
	for j, q := range prey {
		if j == i || !q.Ready() || !q.State.SeekingMate {
			continue
		}
		if q.State.Species != p.State.Species || q.State.Sex == p.State.Sex {
			continue
		}
		if d := distSq(*p.Pos, *q.Pos); d < bestDist {
			bestDist = d
			best = j
		}
	}
	return best
}

// wander jitters the velocity and clamps speed to the species maximum.
func (s *SteeringSystem) wander(p *Prey) {
	vx := p.Vel.X + s.uniform(s.noise)
	vy := p.Vel.Y + s.uniform(s.noise)
	limit := float32(p.Params.MaxSpeed)
	if speed := float32(math.Sqrt(float64(vx*vx + vy*vy))); speed > limit {
		vx = vx / speed * limit
		vy = vy / speed * limit
	}
	p.Vel.X = vx
	p.Vel.Y = vy
}

func (s *SteeringSystem) hunt(preds []*Predator, prey []*Prey) {
	for _, d := range preds {
		if !d.Vitals.Alive {
			continue
		}
		if j := ChooseTarget(d, prey); j >= 0 {
			steer(d.Pos, d.Vel, prey[j].Pos.X, prey[j].Pos.Y, s.predSpeed)
		}
	}
}

// ChooseTarget returns the index of the heaviest harvestable prey, closer
// first among equal weights, or -1 when none is harvestable.
func ChooseTarget(d *Predator, prey []*Prey) int {
	best := -1
	var bestWeight, bestDist float32
	for j, p := range prey {
		if !p.Harvestable() {
			continue
		}
		w := p.State.Weight
		dist := distSq(*d.Pos, *p.Pos)
		if best < 0 || w > bestWeight || (w == bestWeight && dist < bestDist) {
			best, bestWeight, bestDist = j, w, dist
		}
	}
	return best
}

// uniform draws from [-bound, bound).
func (s *SteeringSystem) uniform(bound float32) float32 {
	return (s.rng.Float32()*2 - 1) * bound
}
