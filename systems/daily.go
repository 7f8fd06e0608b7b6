package systems

import (
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/warren/components"
	"github.com/pthm-cable/warren/config"
	"github.com/pthm-cable/warren/telemetry"
)

// DailySystem applies the once-per-day transitions: aging and growth, prey
// illness, and predator metabolism and health.
type DailySystem struct {
	pop  *Population
	prey config.PreyConfig
	pred config.PredatorConfig
	rng  *rand.Rand
}

// NewDailySystem creates a new daily update system.
func NewDailySystem(pop *Population, prey config.PreyConfig, pred config.PredatorConfig, rng *rand.Rand) *DailySystem {
	return &DailySystem{pop: pop, prey: prey, pred: pred, rng: rng}
}

// Update runs the daily block for the given (already incremented) day.
func (s *DailySystem) Update(day uint32, counters *telemetry.DayCounters) {
	prey := s.pop.Prey()
	for _, p := range prey {
		AgePrey(p)
	}
	for _, p := range prey {
		s.preyIllness(p, counters)
	}
	for _, d := range s.pop.Predators() {
		if s.predatorHealth(d, day) {
			slog.Info("predator_died", "id", d.State.ID, "day", day, "reserve", d.State.Reserve)
		}
	}
}

// AgePrey advances a live prey by one day, recomputes its weight and latches
// the seeking-mate flag once it reaches reproduction age.
func AgePrey(p *Prey) {
	if !p.Vitals.Alive {
		return
	}
	p.State.Age++
	p.State.Weight = p.Params.Weight(p.State.Age)
	if p.State.Age >= p.Params.ReproductionAge {
		p.State.SeekingMate = true
	}
}

// preyIllness applies one day of the prey health machine. The transition is
// decided by the state at the start of the day.
func (s *DailySystem) preyIllness(p *Prey, counters *telemetry.DayCounters) {
	if !p.Vitals.Alive {
		return
	}
	v := p.Vitals
	switch v.Health {
	case components.Healthy:
		if s.rng.Float64() < s.prey.InfectProb {
			v.Health = components.Sick
			v.SickDays = 0
			counters.NewInfections++
		}
	case components.Sick:
		if s.rng.Float64() < s.prey.RecoverProb {
			v.Health = components.Healthy
			v.SickDays = 0
			counters.Recoveries++
			return
		}
		v.SickDays++
		if v.SickDays >= s.prey.MaxSickDays {
			p.Kill()
			counters.IllnessDeaths++
		}
	}
}

// predatorHealth burns one day of reserve and walks the reserve tiers.
// Returns true when the predator died.
func (s *DailySystem) predatorHealth(d *Predator, day uint32) bool {
	if !d.Vitals.Alive {
		return false
	}
	cfg := s.pred
	v := d.Vitals

	d.State.Reserve = max(d.State.Reserve-float32(cfg.DailyCost), 0)
	if day <= cfg.ImmunityDays {
		v.Health = components.Healthy
		v.SickDays = 0
		return false
	}

	r := float64(d.State.Reserve)
	switch {
	case r >= cfg.OptimalReserve:
		v.Health = components.Healthy
		v.SickDays = 0
	case r >= cfg.MinimumReserve:
		v.Health = components.Healthy
		v.SickDays = 0
	case r >= cfg.DeficientReserve:
		v.SickDays++
		if v.SickDays > cfg.IncubationDays {
			v.Health = components.Sick
		}
	default:
		v.Health = components.Sick
		v.SickDays++
	}

	if v.SickDays >= cfg.MaxSickDays {
		d.Kill()
		return true
	}
	return false
}
