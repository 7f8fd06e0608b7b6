package systems

import "github.com/pthm-cable/warren/telemetry"

// SystemInfo describes a simulation system for UI display.
type SystemInfo struct {
	ID          string // Internal identifier (used for perf tracking)
	Name        string // Display name
	Description string // What this system does
	Category    string // Grouping (e.g., "daily", "frame")
}

// SystemRegistry holds metadata about all systems.
// This centralizes system naming so the UI and perf tracker stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known systems.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds all known systems to the registry, in frame order.
func (r *SystemRegistry) registerDefaults() {
	r.Register(SystemInfo{ID: telemetry.PhaseDaily, Name: "Daily", Description: "Aging, growth, illness and predator metabolism", Category: "daily"})

	r.Register(SystemInfo{ID: telemetry.PhaseSteering, Name: "Steering", Description: "Mate seeking and predator targeting", Category: "frame"})
	r.Register(SystemInfo{ID: telemetry.PhaseAdvance, Name: "Advance", Description: "Moves organisms and counts down cooldowns", Category: "frame"})
	r.Register(SystemInfo{ID: telemetry.PhaseReproduction, Name: "Reproduction", Description: "Pairs colliding prey and spawns litters", Category: "frame"})
	r.Register(SystemInfo{ID: telemetry.PhasePredation, Name: "Predation", Description: "Predators take harvestable prey", Category: "frame"})

	r.Register(SystemInfo{ID: telemetry.PhasePurge, Name: "Purge", Description: "Removes dead organisms", Category: "core"})
}

// Register adds a system to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// Get returns system info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a system ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all registered systems.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// IDs returns all system IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
