package main

import (
	"github.com/pthm-cable/warren/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of tunable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Predator metabolism
			{Name: "pred_daily_cost", Path: "predator.daily_cost", Min: 1.0, Max: 5.0, Default: 2.5},
			{Name: "pred_feeding_cooldown", Path: "predator.feeding_cooldown", Min: 0.2, Max: 4.0, Default: 1.0},
			{Name: "pred_max_speed", Path: "predator.max_speed", Min: 1.0, Max: 3.0, Default: 2.0},
			// Prey illness
			{Name: "prey_infect_prob", Path: "prey.infect_prob", Min: 0.0, Max: 0.1, Default: 0.02},
			{Name: "prey_recover_prob", Path: "prey.recover_prob", Min: 0.1, Max: 0.8, Default: 0.30},
			// Prey breeding
			{Name: "prey_mating_cooldown", Path: "prey.mating_cooldown", Min: 0.5, Max: 6.0, Default: 2.0},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig writes clamped parameter values into cfg, in Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	cfg.Predator.DailyCost = clamped[0]
	cfg.Predator.FeedingCooldown = clamped[1]
	cfg.Predator.MaxSpeed = clamped[2]
	cfg.Prey.InfectProb = clamped[3]
	cfg.Prey.RecoverProb = clamped[4]
	cfg.Prey.MatingCooldown = clamped[5]
}

// ExtractFromConfig reads the current parameter values from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Predator.DailyCost,
		cfg.Predator.FeedingCooldown,
		cfg.Predator.MaxSpeed,
		cfg.Prey.InfectProb,
		cfg.Prey.RecoverProb,
		cfg.Prey.MatingCooldown,
	}
}
