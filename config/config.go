// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	World      WorldConfig      `yaml:"world"`
	Clock      ClockConfig      `yaml:"clock"`
	Prey       PreyConfig       `yaml:"prey"`
	Predator   PredatorConfig   `yaml:"predator"`
	Population PopulationConfig `yaml:"population"`
	Species    []SpeciesConfig  `yaml:"species"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds simulation world dimensions.
// Organisms bounce off the edges of this rectangle.
type WorldConfig struct {
	Width  int `yaml:"width"`  // World width in world units (0 = use screen width)
	Height int `yaml:"height"` // World height in world units (0 = use screen height)
}

// ClockConfig holds day-length and frame-time settings.
type ClockConfig struct {
	DayLength  float64 `yaml:"day_length"`  // Seconds of frame time per simulated day
	HeadlessDT float64 `yaml:"headless_dt"` // Fixed frame time used without a window
}

// PreyConfig holds parameters shared by every prey species.
type PreyConfig struct {
	Radius          float64 `yaml:"radius"`
	MaxSpeed        float64 `yaml:"max_speed"`        // Default per-species max speed
	InfectProb      float64 `yaml:"infect_prob"`      // Daily Healthy -> Sick probability
	RecoverProb     float64 `yaml:"recover_prob"`     // Daily Sick -> Healthy probability
	MaxSickDays     uint32  `yaml:"max_sick_days"`    // Consecutive sick days before death
	MovementNoise   float64 `yaml:"movement_noise"`   // Velocity jitter when no mate is in sight
	SpawnRadius     float64 `yaml:"spawn_radius"`     // Max offspring offset from the first parent
	NewbornCooldown float64 `yaml:"newborn_cooldown"` // Seconds before a newborn may breed
	MatingCooldown  float64 `yaml:"mating_cooldown"`  // Seconds applied to both parents after mating
	InitialCooldown float64 `yaml:"initial_cooldown"` // Cooldown of the seeded population
}

// PredatorConfig holds predator metabolism and health parameters.
// Reserve thresholds must satisfy optimal >= minimum >= deficient.
type PredatorConfig struct {
	Radius           float64 `yaml:"radius"`
	MaxSpeed         float64 `yaml:"max_speed"`
	DailyCost        float64 `yaml:"daily_cost"`        // Reserve burned per day
	OptimalReserve   float64 `yaml:"optimal_reserve"`   // At or above: recovers
	MinimumReserve   float64 `yaml:"minimum_reserve"`   // At or above: forced healthy
	DeficientReserve float64 `yaml:"deficient_reserve"` // At or above: incubating
	MaxSickDays      uint32  `yaml:"max_sick_days"`     // Counter value that kills
	IncubationDays   uint32  `yaml:"incubation_days"`   // Counter must exceed this to turn sick
	ImmunityDays     uint32  `yaml:"immunity_days"`     // First N days predators cannot sicken
	FeedingCooldown  float64 `yaml:"feeding_cooldown"`  // Seconds between kills
	InitialReserve   float64 `yaml:"initial_reserve"`
}

// PopulationConfig holds the initial population.
type PopulationConfig struct {
	InitialPrey      int      `yaml:"initial_prey"`
	InitialPredators int      `yaml:"initial_predators"`
	Species          []string `yaml:"species"` // Species drawn uniformly for the initial prey (empty = all)
}

// SpeciesConfig holds the immutable parameters of one prey species.
type SpeciesConfig struct {
	Name            string    `yaml:"name"`
	GompertzA       float64   `yaml:"gompertz_a"` // Asymptotic weight
	GompertzB       float64   `yaml:"gompertz_b"`
	GompertzC       float64   `yaml:"gompertz_c"`
	MaleProbability float64   `yaml:"male_probability"`
	MaxPopulation   int       `yaml:"max_population"`
	HarvestAge      uint32    `yaml:"harvest_age"`      // Days before predators may take it
	ReproductionAge uint32    `yaml:"reproduction_age"` // Days before it seeks mates
	MaxSpeed        float64   `yaml:"max_speed"`        // 0 = prey.max_speed
	Litter          []float64 `yaml:"litter"`           // P(k offspring) for k = 0..len-1
	Color           []int     `yaml:"color"`            // RGB, 0-255
}

// TelemetryConfig holds report and logging parameters.
type TelemetryConfig struct {
	ReportFile string `yaml:"report_file"` // CSV file name inside the output directory
	PerfWindow int    `yaml:"perf_window"` // Closed days averaged by the perf panel

	BookmarkHistory int `yaml:"bookmark_history"` // Days kept by the milestone detector
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32    float32        // Screen.Width as float32
	ScreenH32    float32        // Screen.Height as float32
	WorldW32     float32        // Effective world width as float32
	WorldH32     float32        // Effective world height as float32
	SpeciesIndex map[string]int // name -> index into Species
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used. A species list in the
// user file replaces the default list as a whole.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	cfg.computeDerived()

	return cfg, nil
}

// Validate checks the parameters the simulation relies on as preconditions.
func (c *Config) Validate() error {
	var errs []error

	if c.Clock.DayLength <= 0 {
		errs = append(errs, errors.New("clock.day_length must be positive"))
	}
	if c.Clock.HeadlessDT <= 0 {
		errs = append(errs, errors.New("clock.headless_dt must be positive"))
	}
	if c.Prey.InfectProb < 0 || c.Prey.InfectProb > 1 {
		errs = append(errs, fmt.Errorf("prey.infect_prob %v outside [0,1]", c.Prey.InfectProb))
	}
	if c.Prey.RecoverProb < 0 || c.Prey.RecoverProb > 1 {
		errs = append(errs, fmt.Errorf("prey.recover_prob %v outside [0,1]", c.Prey.RecoverProb))
	}
	if c.Prey.MaxSickDays == 0 {
		errs = append(errs, errors.New("prey.max_sick_days must be positive"))
	}
	cooldowns := []struct {
		name string
		v    float64
	}{
		{"prey.newborn_cooldown", c.Prey.NewbornCooldown},
		{"prey.mating_cooldown", c.Prey.MatingCooldown},
		{"prey.initial_cooldown", c.Prey.InitialCooldown},
		{"predator.feeding_cooldown", c.Predator.FeedingCooldown},
	}
	for _, cd := range cooldowns {
		if cd.v < 0 {
			errs = append(errs, fmt.Errorf("%s %v must not be negative", cd.name, cd.v))
		}
	}
	p := c.Predator
	if !(p.OptimalReserve >= p.MinimumReserve && p.MinimumReserve >= p.DeficientReserve) {
		errs = append(errs, fmt.Errorf("predator reserve thresholds must descend: optimal=%v minimum=%v deficient=%v",
			p.OptimalReserve, p.MinimumReserve, p.DeficientReserve))
	}
	if p.DailyCost < 0 {
		errs = append(errs, errors.New("predator.daily_cost must not be negative"))
	}
	if p.MaxSickDays == 0 {
		errs = append(errs, errors.New("predator.max_sick_days must be positive"))
	}
	if len(c.Species) == 0 {
		errs = append(errs, errors.New("species list is empty"))
	}
	seen := make(map[string]bool, len(c.Species))
	for _, sp := range c.Species {
		if seen[sp.Name] {
			errs = append(errs, fmt.Errorf("species %q listed twice", sp.Name))
		}
		seen[sp.Name] = true
	}
	for _, name := range c.Population.Species {
		if !seen[name] {
			errs = append(errs, fmt.Errorf("population.species references unknown species %q", name))
		}
	}
	if c.Population.InitialPrey < 0 || c.Population.InitialPredators < 0 {
		errs = append(errs, errors.New("initial population counts must not be negative"))
	}

	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	// World dimensions default to screen size if not specified
	worldW := c.World.Width
	if worldW == 0 {
		worldW = c.Screen.Width
	}
	worldH := c.World.Height
	if worldH == 0 {
		worldH = c.Screen.Height
	}
	c.Derived.WorldW32 = float32(worldW)
	c.Derived.WorldH32 = float32(worldH)

	// Species without their own speed inherit the shared prey speed
	for i := range c.Species {
		if c.Species[i].MaxSpeed == 0 {
			c.Species[i].MaxSpeed = c.Prey.MaxSpeed
		}
	}

	c.Derived.SpeciesIndex = make(map[string]int, len(c.Species))
	for i, sp := range c.Species {
		c.Derived.SpeciesIndex[sp.Name] = i
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
