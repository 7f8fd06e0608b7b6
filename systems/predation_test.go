package systems

import (
	"testing"

	"github.com/pthm-cable/warren/components"
	"github.com/pthm-cable/warren/config"
	"github.com/pthm-cable/warren/species"
	"github.com/pthm-cable/warren/telemetry"
)

func TestPredation_SingleKill(t *testing.T) {
	pop := testPopulation(t, nil)
	de := pop.AddPredator(PredatorSeed{Pos: components.Position{X: 100, Y: 100}, Reserve: 4})
	pe := pop.AddPrey(adultRabbit(105, 100, components.Female))

	prey := findPrey(t, pop, pe)
	prey.State.Weight = prey.Params.Weight(prey.State.Age)
	weight := prey.State.Weight

	counters := telemetry.NewDayCounters()
	kills := NewPredationSystem(pop, config.Cfg().Predator).Update(counters)

	if kills != 1 || counters.PredationDeaths != 1 {
		t.Fatalf("kills=%d predationDeaths=%d, want 1/1", kills, counters.PredationDeaths)
	}
	if findPrey(t, pop, pe).IsAlive() {
		t.Error("prey still alive")
	}
	d := findPredator(t, pop, de)
	if d.State.Reserve != 4+weight {
		t.Errorf("reserve = %v, want %v", d.State.Reserve, 4+weight)
	}
	if d.Vitals.Cooldown != float32(config.Cfg().Predator.FeedingCooldown) {
		t.Errorf("cooldown = %v, want %v", d.Vitals.Cooldown, config.Cfg().Predator.FeedingCooldown)
	}
}

func TestPredation_OneKillPerPredator(t *testing.T) {
	pop := testPopulation(t, nil)
	pop.AddPredator(PredatorSeed{Pos: components.Position{X: 100, Y: 100}})
	for i := 0; i < 3; i++ {
		pop.AddPrey(adultRabbit(100, 100, components.Male))
	}

	counters := telemetry.NewDayCounters()
	if kills := NewPredationSystem(pop, config.Cfg().Predator).Update(counters); kills != 1 {
		t.Errorf("kills = %d, want 1", kills)
	}
	if counts := pop.LiveCounts(); counts[species.Rabbit] != 2 {
		t.Errorf("live rabbits = %d, want 2", counts[species.Rabbit])
	}
}

func TestPredation_Blocked(t *testing.T) {
	tests := []struct {
		name  string
		setup func(pop *Population)
	}{
		{"predator cooling down", func(pop *Population) {
			pop.AddPredator(PredatorSeed{})
			pop.AddPrey(adultRabbit(0, 0, components.Male))
			pop.Predators()[0].Vitals.Cooldown = 0.5
		}},
		{"prey too young", func(pop *Population) {
			pop.AddPredator(PredatorSeed{})
			pop.AddPrey(PreySeed{Species: species.Rabbit, Age: 5})
		}},
		{"out of reach", func(pop *Population) {
			pop.AddPredator(PredatorSeed{})
			pop.AddPrey(adultRabbit(20, 0, components.Male))
		}},
		{"dead predator", func(pop *Population) {
			pop.AddPredator(PredatorSeed{})
			pop.AddPrey(adultRabbit(0, 0, components.Male))
			pop.Predators()[0].Kill()
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pop := testPopulation(t, nil)
			tt.setup(pop)
			counters := telemetry.NewDayCounters()
			if kills := NewPredationSystem(pop, config.Cfg().Predator).Update(counters); kills != 0 {
				t.Errorf("kills = %d, want 0", kills)
			}
		})
	}
}

func TestPredation_TwoPredatorsCannotShareAKill(t *testing.T) {
	pop := testPopulation(t, nil)
	pop.AddPredator(PredatorSeed{})
	pop.AddPredator(PredatorSeed{})
	pop.AddPrey(adultRabbit(0, 0, components.Male))

	counters := telemetry.NewDayCounters()
	if kills := NewPredationSystem(pop, config.Cfg().Predator).Update(counters); kills != 1 {
		t.Errorf("kills = %d, want 1", kills)
	}
}

// ---------- Purge and report ----------

func TestPurge_RemovesDead(t *testing.T) {
	pop := testPopulation(t, nil)
	pop.AddPrey(adultRabbit(0, 0, components.Male))
	pop.AddPrey(adultRabbit(0, 0, components.Female))
	pop.AddPredator(PredatorSeed{})
	pop.AddPredator(PredatorSeed{})

	pop.Prey()[0].Kill()
	pop.Predators()[1].Kill()

	prey, preds := pop.Purge()
	if prey != 1 || preds != 1 {
		t.Errorf("purged %d prey, %d predators; want 1, 1", prey, preds)
	}
	if np, nd := pop.Len(); np != 1 || nd != 1 {
		t.Errorf("remaining %d prey, %d predators; want 1, 1", np, nd)
	}
}

func TestCompileReport(t *testing.T) {
	pop := testPopulation(t, nil)
	for i := 0; i < 3; i++ {
		pop.AddPrey(PreySeed{Species: species.Rabbit})
	}
	pop.AddPrey(PreySeed{Species: species.Mouse})
	pop.AddPrey(PreySeed{Species: species.Squirrel})
	pop.AddPrey(PreySeed{Species: species.Squirrel})
	pop.AddPredator(PredatorSeed{})
	pop.AddPredator(PredatorSeed{})

	pop.Prey()[0].Kill()
	pop.Predators()[0].Vitals.Health = components.Sick

	counters := &telemetry.DayCounters{PredationDeaths: 1, IllnessDeaths: 2, NewInfections: 3, Recoveries: 4, Reproductions: 5}
	got := CompileReport(7, pop, counters)
	want := telemetry.DailyStatistics{
		Day: 7, Rabbits: 2, Mice: 1, Squirrels: 2, Total: 5,
		PredationDeaths: 1, IllnessDeaths: 2, NewInfections: 3, Recoveries: 4, Reproductions: 5,
		SickPredators: 1, LivePredators: 2,
	}
	if got != want {
		t.Errorf("CompileReport = %+v\nwant %+v", got, want)
	}
}

func TestSummarize_PerSpecies(t *testing.T) {
	pop := testPopulation(t, nil)
	pop.AddPrey(PreySeed{Species: species.Mouse, Age: 2})
	pop.AddPrey(PreySeed{Species: species.Mouse, Age: 4})

	for _, p := range pop.Prey() {
		p.State.Weight = float32(p.State.Age)
	}

	sums := Summarize(pop)
	if len(sums) != species.Count {
		t.Fatalf("got %d summaries", len(sums))
	}
	m := sums[species.Mouse]
	if m.Count != 2 || m.AvgAge != 3 || m.AvgWeight != 3 {
		t.Errorf("mouse summary = %+v", m)
	}
	if sums[species.Rabbit].Count != 0 || sums[species.Rabbit].AvgAge != 0 {
		t.Errorf("empty species summary = %+v", sums[species.Rabbit])
	}
}

func TestPredation_NegativeFeedingCooldownFloored(t *testing.T) {
	pop := testPopulation(t, nil)
	de := pop.AddPredator(PredatorSeed{Pos: components.Position{X: 100, Y: 100}})
	pop.AddPrey(adultRabbit(100, 100, components.Male))

	cfg := config.Cfg().Predator
	cfg.FeedingCooldown = -2
	if kills := NewPredationSystem(pop, cfg).Update(telemetry.NewDayCounters()); kills != 1 {
		t.Fatalf("kills = %d, want 1", kills)
	}
	if got := findPredator(t, pop, de).Vitals.Cooldown; got != 0 {
		t.Errorf("predator cooldown = %v, want 0", got)
	}
}
