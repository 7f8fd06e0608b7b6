package systems

import (
	"testing"

	"github.com/pthm-cable/warren/components"
	"github.com/pthm-cable/warren/config"
	"github.com/pthm-cable/warren/species"
	"github.com/pthm-cable/warren/telemetry"
)

func litter(probs ...float64) func(*config.SpeciesConfig) {
	return func(sc *config.SpeciesConfig) {
		sc.Litter = probs
	}
}

func reproductionSystem(pop *Population) *ReproductionSystem {
	return NewReproductionSystem(pop, config.Cfg().Prey, testRNG())
}

func TestReproduction_GuaranteedSingleOffspring(t *testing.T) {
	// Index k holds P(k offspring), so "always one" is [0, 1.0] rather than [1.0].
	pop := testPopulation(t, litter(0, 1.0))
	a := pop.AddPrey(adultRabbit(200, 200, components.Male))
	b := pop.AddPrey(adultRabbit(200, 200, components.Female))

	counters := telemetry.NewDayCounters()
	born := reproductionSystem(pop).Update(counters)

	if born != 1 {
		t.Fatalf("born = %d, want 1", born)
	}
	if n, _ := pop.Len(); n != 3 {
		t.Errorf("population = %d, want 3", n)
	}
	if counters.Reproductions != 1 {
		t.Errorf("reproductions = %d, want 1", counters.Reproductions)
	}

	want := float32(config.Cfg().Prey.MatingCooldown)
	if got := findPrey(t, pop, a).Vitals.Cooldown; got != want {
		t.Errorf("parent a cooldown = %v, want %v", got, want)
	}
	if got := findPrey(t, pop, b).Vitals.Cooldown; got != want {
		t.Errorf("parent b cooldown = %v, want %v", got, want)
	}
}

func TestReproduction_OffspringState(t *testing.T) {
	pop := testPopulation(t, litter(0, 1.0))
	a := pop.AddPrey(adultRabbit(200, 200, components.Male))
	pop.AddPrey(adultRabbit(203, 200, components.Female))

	reproductionSystem(pop).Update(telemetry.NewDayCounters())

	cfg := config.Cfg().Prey
	var child *Prey
	for _, p := range pop.Prey() {
		if p.State.Age == 0 {
			child = p
		}
	}
	if child == nil {
		t.Fatal("no offspring found")
	}
	parent := findPrey(t, pop, a)

	if child.State.Weight != 0 || child.State.SeekingMate {
		t.Errorf("offspring weight=%v seeking=%v", child.State.Weight, child.State.SeekingMate)
	}
	if child.Vitals.Cooldown != float32(cfg.NewbornCooldown) {
		t.Errorf("offspring cooldown = %v, want %v", child.Vitals.Cooldown, cfg.NewbornCooldown)
	}
	r := float32(cfg.SpawnRadius)
	dx := child.Pos.X - parent.Pos.X
	dy := child.Pos.Y - parent.Pos.Y
	if dx < -r || dx > r || dy < -r || dy > r {
		t.Errorf("offspring offset (%v, %v) outside spawn radius %v", dx, dy, r)
	}
	if child.State.Species != species.Rabbit || !child.IsAlive() || child.Vitals.Health != components.Healthy {
		t.Errorf("offspring state %+v %+v", *child.State, *child.Vitals)
	}
}

func TestReproduction_ZeroLitterStillCoolsDown(t *testing.T) {
	pop := testPopulation(t, litter(1.0))
	a := pop.AddPrey(adultRabbit(200, 200, components.Male))
	b := pop.AddPrey(adultRabbit(200, 200, components.Female))

	counters := telemetry.NewDayCounters()
	if born := reproductionSystem(pop).Update(counters); born != 0 {
		t.Fatalf("born = %d, want 0", born)
	}
	if counters.Reproductions != 0 {
		t.Errorf("reproductions = %d, want 0 for an empty litter", counters.Reproductions)
	}
	want := float32(config.Cfg().Prey.MatingCooldown)
	if findPrey(t, pop, a).Vitals.Cooldown != want || findPrey(t, pop, b).Vitals.Cooldown != want {
		t.Error("parents not cooled down after empty litter")
	}
}

func TestReproduction_IneligiblePairs(t *testing.T) {
	tests := []struct {
		name  string
		setup func(pop *Population)
	}{
		{"same sex", func(pop *Population) {
			pop.AddPrey(adultRabbit(50, 50, components.Male))
			pop.AddPrey(adultRabbit(50, 50, components.Male))
		}},
		{"different species", func(pop *Population) {
			pop.AddPrey(adultRabbit(50, 50, components.Male))
			pop.AddPrey(PreySeed{Species: species.Mouse, Sex: components.Female, Age: 20, Pos: components.Position{X: 50, Y: 50}})
		}},
		{"too young", func(pop *Population) {
			pop.AddPrey(adultRabbit(50, 50, components.Male))
			pop.AddPrey(PreySeed{Species: species.Rabbit, Sex: components.Female, Age: 9, Pos: components.Position{X: 50, Y: 50}})
		}},
		{"on cooldown", func(pop *Population) {
			pop.AddPrey(adultRabbit(50, 50, components.Male))
			s := adultRabbit(50, 50, components.Female)
			s.Cooldown = 0.5
			pop.AddPrey(s)
		}},
		{"not touching", func(pop *Population) {
			pop.AddPrey(adultRabbit(50, 50, components.Male))
			pop.AddPrey(adultRabbit(66, 50, components.Female))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pop := testPopulation(t, litter(0, 1.0))
			tt.setup(pop)
			counters := telemetry.NewDayCounters()
			if born := reproductionSystem(pop).Update(counters); born != 0 {
				t.Errorf("born = %d, want 0", born)
			}
			if counters.Reproductions != 0 {
				t.Errorf("reproductions = %d, want 0", counters.Reproductions)
			}
		})
	}
}

func TestReproduction_CapHolds(t *testing.T) {
	pop := testPopulation(t, func(sc *config.SpeciesConfig) {
		sc.Litter = []float64{0, 0, 0, 0, 0, 1.0} // always five
		sc.MaxPopulation = 12
	})
	// Ten rabbits in one spot: 25 qualifying pairs, room for two offspring.
	for i := 0; i < 5; i++ {
		pop.AddPrey(adultRabbit(400, 300, components.Male))
		pop.AddPrey(adultRabbit(400, 300, components.Female))
	}

	counters := telemetry.NewDayCounters()
	born := reproductionSystem(pop).Update(counters)

	if born != 2 {
		t.Errorf("born = %d, want 2", born)
	}
	counts := pop.LiveCounts()
	if counts[species.Rabbit] > 12 {
		t.Errorf("rabbits = %d, exceeds cap 12", counts[species.Rabbit])
	}
	if counters.Reproductions != 1 {
		t.Errorf("reproductions = %d, want 1", counters.Reproductions)
	}
	for _, p := range pop.Prey() {
		if p.State.Age > 0 && p.Vitals.Cooldown != float32(config.Cfg().Prey.MatingCooldown) {
			t.Errorf("parent %d cooldown = %v", p.State.ID, p.Vitals.Cooldown)
		}
	}
}

func TestReproduction_AtCapNoBirths(t *testing.T) {
	pop := testPopulation(t, func(sc *config.SpeciesConfig) {
		sc.Litter = []float64{0, 1.0}
		sc.MaxPopulation = 2
	})
	pop.AddPrey(adultRabbit(10, 10, components.Male))
	pop.AddPrey(adultRabbit(10, 10, components.Female))

	if born := reproductionSystem(pop).Update(telemetry.NewDayCounters()); born != 0 {
		t.Errorf("born = %d at cap, want 0", born)
	}
}

func TestReproduction_OffspringWaitForNextScan(t *testing.T) {
	pop := testPopulation(t, litter(0, 1.0))
	pop.AddPrey(adultRabbit(10, 10, components.Male))
	pop.AddPrey(adultRabbit(10, 10, components.Female))

	s := reproductionSystem(pop)
	s.Update(telemetry.NewDayCounters())

	// Parents are cooling down and newborns are too young: nothing happens.
	if born := s.Update(telemetry.NewDayCounters()); born != 0 {
		t.Errorf("second scan born = %d, want 0", born)
	}
}

func TestReproduction_NegativeMatingCooldownFloored(t *testing.T) {
	pop := testPopulation(t, litter(0, 1.0))
	a := pop.AddPrey(adultRabbit(200, 200, components.Male))
	pop.AddPrey(adultRabbit(200, 200, components.Female))

	cfg := config.Cfg().Prey
	cfg.MatingCooldown = -3
	NewReproductionSystem(pop, cfg, testRNG()).Update(telemetry.NewDayCounters())

	if got := findPrey(t, pop, a).Vitals.Cooldown; got != 0 {
		t.Errorf("parent cooldown = %v, want 0", got)
	}
}
