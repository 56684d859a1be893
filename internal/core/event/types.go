package event

import "github.com/wildreach/sim/internal/core/ecs"

// Discrete simulation events consumed by hosting-layer triggers (audio, UI,
// persistence). Payloads are value copies — holding one past the emitting
// tick is always safe.

// ResourceCollected fires when a collector successfully gathers a resource.
type ResourceCollected struct {
	Resource  ecs.EntityID
	Collector ecs.EntityID
	Kind      string // "fish", "berries", "water"
}

// EntityDamaged fires whenever health is reduced, from any source.
type EntityDamaged struct {
	Entity ecs.EntityID
	Source ecs.EntityID // zero for environmental damage (falls)
	Amount float64
}

// StateTransitioned fires when an NPC's behavioral state changes.
type StateTransitioned struct {
	Entity ecs.EntityID
	From   string
	To     string
}

// EntityDied fires once when an entity enters the dead state.
type EntityDied struct {
	Entity ecs.EntityID
	X, Z   float64
}
