// Package components defines ECS components for the simulation.
package components

import "github.com/pthm-cable/warren/species"

// Sex is fixed at birth.
type Sex uint8

const (
	Male Sex = iota
	Female
)

func (s Sex) String() string {
	if s == Male {
		return "male"
	}
	return "female"
}

// Letter returns the one-letter label drawn on organisms.
func (s Sex) Letter() string {
	if s == Male {
		return "M"
	}
	return "F"
}

// Health is the two-state illness machine shared by prey and predators.
type Health uint8

const (
	Healthy Health = iota
	Sick
)

func (h Health) String() string {
	if h == Sick {
		return "sick"
	}
	return "healthy"
}

// Position represents an entity's world position.
type Position struct {
	X, Y float32
}

// Velocity is the per-frame displacement of an entity.
type Velocity struct {
	X, Y float32
}

// Body holds the collision radius.
type Body struct {
	Radius float32
}

// Vitals holds state shared by every organism kind.
type Vitals struct {
	Alive    bool
	Cooldown float32 // seconds until the next mating or kill; never negative
	Health   Health
	SickDays uint32 // prey: consecutive sick days; predator: deficiency counter
}

// Prey holds prey-only state.
type Prey struct {
	ID          uint32
	Species     species.ID
	Sex         Sex
	Age         uint32 // days
	Weight      float32
	SeekingMate bool // latched once Age reaches the reproduction age
}

// Predator holds predator-only state.
type Predator struct {
	ID      uint32
	Reserve float32
}
