package systems

import (
	"github.com/pthm-cable/warren/config"
	"github.com/pthm-cable/warren/telemetry"
)

// PredationSystem lets each ready predator take at most one prey per frame.
type PredationSystem struct {
	pop      *Population
	cooldown float32
}

// NewPredationSystem creates a new predation system.
func NewPredationSystem(pop *Population, pred config.PredatorConfig) *PredationSystem {
	return &PredationSystem{pop: pop, cooldown: max(float32(pred.FeedingCooldown), 0)}
}

// Update resolves kills for this frame and returns how many prey were taken.
// Killed prey stay in storage until the population is purged.
func (s *PredationSystem) Update(counters *telemetry.DayCounters) int {
	prey := s.pop.Prey()
	kills := 0
	for _, d := range s.pop.Predators() {
		if !d.Vitals.Alive || d.Vitals.Cooldown > 0 {
			continue
		}
		for _, p := range prey {
			if !p.Harvestable() || !Collide(d, p) {
				continue
			}
			d.State.Reserve += p.State.Weight
			p.Kill()
			d.Vitals.Cooldown = s.cooldown
			counters.PredationDeaths++
			kills++
			break
		}
	}
	return kills
}
