package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Derived.WorldW32 != 1280 || cfg.Derived.WorldH32 != 720 {
		t.Errorf("world = %vx%v, want screen size", cfg.Derived.WorldW32, cfg.Derived.WorldH32)
	}
	if len(cfg.Species) != 3 {
		t.Fatalf("species = %d, want 3", len(cfg.Species))
	}
	for _, sp := range cfg.Species {
		if sp.MaxSpeed != cfg.Prey.MaxSpeed {
			t.Errorf("%s max speed = %v, want inherited %v", sp.Name, sp.MaxSpeed, cfg.Prey.MaxSpeed)
		}
	}
	if i, ok := cfg.Derived.SpeciesIndex["mouse"]; !ok || cfg.Species[i].Name != "mouse" {
		t.Errorf("species index for mouse = %d, %v", i, ok)
	}
}

func TestLoad_OverlayKeepsUnsetFields(t *testing.T) {
	path := writeFile(t, `
predator:
  daily_cost: 4.0
world:
  width: 2000
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Predator.DailyCost != 4.0 {
		t.Errorf("daily_cost = %v, want 4", cfg.Predator.DailyCost)
	}
	if cfg.Predator.OptimalReserve != 30 {
		t.Errorf("optimal_reserve = %v, want default 30", cfg.Predator.OptimalReserve)
	}
	if cfg.Derived.WorldW32 != 2000 || cfg.Derived.WorldH32 != 720 {
		t.Errorf("world = %vx%v, want 2000x720", cfg.Derived.WorldW32, cfg.Derived.WorldH32)
	}
}

func TestLoad_SpeciesListReplaced(t *testing.T) {
	path := writeFile(t, `
species:
  - name: rabbit
    gompertz_a: 12.0
    gompertz_b: 3.0
    gompertz_c: 0.1
    male_probability: 0.5
    max_population: 10
    litter: [0.5, 0.5]
    max_speed: 3.0
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Species) != 1 || cfg.Species[0].GompertzA != 12 {
		t.Fatalf("species = %+v, want the single rabbit from the file", cfg.Species)
	}
	if cfg.Species[0].MaxSpeed != 3 {
		t.Errorf("explicit max speed overwritten: %v", cfg.Species[0].MaxSpeed)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"zero day length", "clock:\n  day_length: 0\n", "day_length"},
		{"infect prob above one", "prey:\n  infect_prob: 1.5\n", "infect_prob"},
		{"thresholds ascending", "predator:\n  minimum_reserve: 50\n", "descend"},
		{"unknown initial species", "population:\n  species: [hedgehog]\n", "hedgehog"},
		{"negative prey count", "population:\n  initial_prey: -1\n", "negative"},
		{"negative newborn cooldown", "prey:\n  newborn_cooldown: -1\n", "prey.newborn_cooldown"},
		{"negative mating cooldown", "prey:\n  mating_cooldown: -3\n", "prey.mating_cooldown"},
		{"negative initial cooldown", "prey:\n  initial_cooldown: -0.5\n", "prey.initial_cooldown"},
		{"negative feeding cooldown", "predator:\n  feeding_cooldown: -2\n", "predator.feeding_cooldown"},
		{"malformed yaml", "prey: [", "parsing config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.body))
			if err == nil {
				t.Fatal("Load succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load of a missing file succeeded")
	}
}

func TestWriteYAML_Reloads(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.Predator.FeedingCooldown = 2.5

	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("reloading snapshot: %v", err)
	}
	if back.Predator.FeedingCooldown != 2.5 {
		t.Errorf("feeding_cooldown = %v, want 2.5", back.Predator.FeedingCooldown)
	}
	if len(back.Species) != len(cfg.Species) {
		t.Errorf("species = %d, want %d", len(back.Species), len(cfg.Species))
	}
}
