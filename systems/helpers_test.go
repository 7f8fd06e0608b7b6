package systems

import (
	"math/rand"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/warren/components"
	"github.com/pthm-cable/warren/config"
	"github.com/pthm-cable/warren/species"
)

// testPopulation builds an empty population from the embedded defaults.
// mutate, if non-nil, may edit each species before the catalog is built.
func testPopulation(t *testing.T, mutate func(*config.SpeciesConfig)) *Population {
	t.Helper()
	config.MustInit("")
	cfg := config.Cfg()

	specs := make([]config.SpeciesConfig, len(cfg.Species))
	copy(specs, cfg.Species)
	if mutate != nil {
		for i := range specs {
			mutate(&specs[i])
		}
	}

	cat, err := species.NewCatalog(specs)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return NewPopulation(ecs.NewWorld(), cat, cfg.Prey, cfg.Predator)
}

func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func adultRabbit(x, y float32, sex components.Sex) PreySeed {
	return PreySeed{
		Species: species.Rabbit,
		Sex:     sex,
		Pos:     components.Position{X: x, Y: y},
		Age:     12,
	}
}

// findPrey returns a fresh view of the given prey entity.
func findPrey(t *testing.T, pop *Population, e ecs.Entity) *Prey {
	t.Helper()
	p, ok := pop.LookupPrey(e)
	if !ok {
		t.Fatalf("prey entity %v not found", e)
	}
	return p
}

func findPredator(t *testing.T, pop *Population, e ecs.Entity) *Predator {
	t.Helper()
	d, ok := pop.LookupPredator(e)
	if !ok {
		t.Fatalf("predator entity %v not found", e)
	}
	return d
}
