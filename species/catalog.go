// Package species holds the closed set of prey species and their immutable parameters.
package species

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"math/rand"
	"strings"

	"github.com/pthm-cable/warren/config"
)

// ID identifies a prey species.
type ID uint8

const (
	Rabbit ID = iota
	Mouse
	Squirrel

	// Count is the number of species in the closed set.
	Count = 3
)

// ErrUnknownSpecies is returned when a name does not match any species.
var ErrUnknownSpecies = errors.New("unknown species")

var names = [Count]string{"rabbit", "mouse", "squirrel"}

// All lists every species in catalog order.
func All() []ID {
	return []ID{Rabbit, Mouse, Squirrel}
}

func (id ID) String() string {
	if int(id) < Count {
		return names[id]
	}
	return fmt.Sprintf("species(%d)", uint8(id))
}

// Parse resolves a species name, case-insensitively.
func Parse(name string) (ID, error) {
	for i, n := range names {
		if strings.EqualFold(n, name) {
			return ID(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSpecies, name)
}

// Params holds the immutable parameters of one species.
type Params struct {
	ID              ID
	Name            string
	A, B, C         float64 // Gompertz constants
	MaleProbability float64
	MaxPopulation   int
	HarvestAge      uint32
	ReproductionAge uint32
	MaxSpeed        float64
	Litter          []float64 // P(k offspring) at index k
	Color           color.RGBA
}

// Weight returns the Gompertz weight at the given age in days.
func (p *Params) Weight(age uint32) float32 {
	return float32(p.A * math.Exp(-p.B*math.Exp(-p.C*float64(age))))
}

// SampleLitter draws a litter size from the species distribution.
func (p *Params) SampleLitter(rng *rand.Rand) int {
	return SampleCategorical(p.Litter, rng.Float64())
}

// SampleCategorical returns the first index whose cumulative probability
// exceeds r. When rounding leaves r past the final cumulative sum, the last
// index absorbs the residual mass. Panics on an empty distribution.
func SampleCategorical(probs []float64, r float64) int {
	if len(probs) == 0 {
		panic("species: empty categorical distribution")
	}
	cum := 0.0
	for i, p := range probs {
		cum += p
		if r < cum {
			return i
		}
	}
	return len(probs) - 1
}

// Catalog maps each species to its parameters.
type Catalog struct {
	params [Count]Params
}

// NewCatalog builds a catalog from config, requiring every species exactly once.
func NewCatalog(cfgs []config.SpeciesConfig) (*Catalog, error) {
	c := &Catalog{}
	var seen [Count]bool
	var errs []error

	for _, sc := range cfgs {
		id, err := Parse(sc.Name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if seen[id] {
			errs = append(errs, fmt.Errorf("species %s defined twice", id))
			continue
		}
		seen[id] = true
		if err := validate(sc); err != nil {
			errs = append(errs, fmt.Errorf("species %s: %w", id, err))
			continue
		}
		c.params[id] = Params{
			ID:              id,
			Name:            id.String(),
			A:               sc.GompertzA,
			B:               sc.GompertzB,
			C:               sc.GompertzC,
			MaleProbability: sc.MaleProbability,
			MaxPopulation:   sc.MaxPopulation,
			HarvestAge:      sc.HarvestAge,
			ReproductionAge: sc.ReproductionAge,
			MaxSpeed:        sc.MaxSpeed,
			Litter:          append([]float64(nil), sc.Litter...),
			Color:           toRGBA(sc.Color),
		}
	}
	for i, ok := range seen {
		if !ok {
			errs = append(errs, fmt.Errorf("species %s missing", ID(i)))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return c, nil
}

// FromConfig builds the catalog from the global config.
func FromConfig() (*Catalog, error) {
	return NewCatalog(config.Cfg().Species)
}

// Get returns the parameters of a species. Panics for an id outside the set.
func (c *Catalog) Get(id ID) *Params {
	if int(id) >= Count {
		panic(fmt.Sprintf("species: id %d out of range", id))
	}
	return &c.params[id]
}

func validate(sc config.SpeciesConfig) error {
	switch {
	case sc.GompertzA <= 0 || sc.GompertzB <= 0 || sc.GompertzC <= 0:
		return errors.New("gompertz constants must be positive")
	case sc.MaleProbability < 0 || sc.MaleProbability > 1:
		return fmt.Errorf("male probability %v outside [0,1]", sc.MaleProbability)
	case sc.MaxPopulation <= 0:
		return errors.New("max population must be positive")
	case len(sc.Litter) == 0:
		return errors.New("litter distribution is empty")
	}
	for k, p := range sc.Litter {
		if p < 0 {
			return fmt.Errorf("litter probability %d is negative", k)
		}
	}
	return nil
}

func toRGBA(rgb []int) color.RGBA {
	c := color.RGBA{R: 200, G: 200, B: 200, A: 255}
	if len(rgb) >= 3 {
		c.R, c.G, c.B = uint8(rgb[0]), uint8(rgb[1]), uint8(rgb[2])
	}
	return c
}
