package species

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/pthm-cable/warren/config"
)

func defaultCatalog(t *testing.T) *Catalog {
	t.Helper()
	config.MustInit("")
	cat, err := FromConfig()
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	return cat
}

func TestWeightMonotonicAndBounded(t *testing.T) {
	cat := defaultCatalog(t)

	for _, id := range All() {
		p := cat.Get(id)
		prev := p.Weight(0)
		if prev < 0 {
			t.Errorf("%s: weight(0) = %v, want >= 0", id, prev)
		}
		for age := uint32(1); age <= 400; age++ {
			w := p.Weight(age)
			if w < prev {
				t.Errorf("%s: weight(%d) = %v < weight(%d) = %v", id, age, w, age-1, prev)
			}
			if float64(w) > p.A {
				t.Errorf("%s: weight(%d) = %v exceeds A = %v", id, age, w, p.A)
			}
			prev = w
		}
	}
}

func TestWeightStillGrowingPastHarvestAndBreeding(t *testing.T) {
	cat := defaultCatalog(t)

	for _, id := range All() {
		p := cat.Get(id)
		if w := p.Weight(0); float64(w) > p.A/5 {
			t.Errorf("%s: weight(0) = %v, want a small newborn", id, w)
		}
		last := 10 * max(p.HarvestAge, p.ReproductionAge)
		prev := p.Weight(0)
		for age := uint32(1); age <= last; age++ {
			w := p.Weight(age)
			if float64(w) >= p.A {
				t.Errorf("%s: weight(%d) = %v, want < %v", id, age, w, p.A)
			}
			if w <= prev {
				t.Errorf("%s: weight(%d) = %v not above weight(%d) = %v", id, age, w, age-1, prev)
			}
			prev = w
		}
	}
}

func TestSampleCategorical(t *testing.T) {
	tests := []struct {
		name  string
		probs []float64
		r     float64
		want  int
	}{
		{"first bucket", []float64{0.5, 0.5}, 0.0, 0},
		{"second bucket", []float64{0.5, 0.5}, 0.5, 1},
		{"zero mass skipped", []float64{0, 1.0}, 0.0, 1},
		{"residual falls to last", []float64{0.2, 0.2, 0.2}, 0.9, 2},
		{"rounding shortfall", []float64{0.1, 0.2, 0.3, 0.4 - 1e-12}, 0.9999999999999, 3},
		{"single bucket", []float64{1.0}, 0.99, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SampleCategorical(tt.probs, tt.r); got != tt.want {
				t.Errorf("SampleCategorical(%v, %v) = %d, want %d", tt.probs, tt.r, got, tt.want)
			}
		})
	}
}

func TestSampleCategoricalEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on empty distribution")
		}
	}()
	SampleCategorical(nil, 0.5)
}

func TestSampleLitterWithinRange(t *testing.T) {
	cat := defaultCatalog(t)
	rng := rand.New(rand.NewSource(7))

	for _, id := range All() {
		p := cat.Get(id)
		for i := 0; i < 500; i++ {
			n := p.SampleLitter(rng)
			if n < 0 || n >= len(p.Litter) {
				t.Fatalf("%s: litter %d outside [0,%d)", id, n, len(p.Litter))
			}
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    ID
		wantErr bool
	}{
		{"rabbit", Rabbit, false},
		{"Mouse", Mouse, false},
		{"SQUIRREL", Squirrel, false},
		{"hare", 0, true},
	}

	for _, tt := range tests {
		got, err := Parse(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownSpecies) {
				t.Errorf("Parse(%q) error = %v, want ErrUnknownSpecies", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("Parse(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
}

func TestNewCatalogValidation(t *testing.T) {
	config.MustInit("")
	base := config.Cfg().Species

	clone := func() []config.SpeciesConfig {
		out := make([]config.SpeciesConfig, len(base))
		copy(out, base)
		return out
	}

	tests := []struct {
		name   string
		mutate func([]config.SpeciesConfig) []config.SpeciesConfig
	}{
		{"missing species", func(s []config.SpeciesConfig) []config.SpeciesConfig { return s[:2] }},
		{"duplicate species", func(s []config.SpeciesConfig) []config.SpeciesConfig { return append(s, s[0]) }},
		{"unknown name", func(s []config.SpeciesConfig) []config.SpeciesConfig { s[0].Name = "hare"; return s }},
		{"zero gompertz", func(s []config.SpeciesConfig) []config.SpeciesConfig { s[1].GompertzB = 0; return s }},
		{"bad male prob", func(s []config.SpeciesConfig) []config.SpeciesConfig { s[2].MaleProbability = 1.5; return s }},
		{"zero cap", func(s []config.SpeciesConfig) []config.SpeciesConfig { s[0].MaxPopulation = 0; return s }},
		{"empty litter", func(s []config.SpeciesConfig) []config.SpeciesConfig { s[1].Litter = nil; return s }},
		{"negative litter", func(s []config.SpeciesConfig) []config.SpeciesConfig {
			s[2].Litter = []float64{0.5, -0.1, 0.6}
			return s
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewCatalog(tt.mutate(clone())); err == nil {
				t.Error("expected validation error")
			}
		})
	}

	if _, err := NewCatalog(clone()); err != nil {
		t.Errorf("defaults rejected: %v", err)
	}
}

func TestGetOutOfRangePanics(t *testing.T) {
	cat := defaultCatalog(t)
	defer func() {
		if recover() == nil {
			t.Error("expected panic for out-of-range id")
		}
	}()
	cat.Get(ID(Count))
}
