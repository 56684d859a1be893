package component

// ResourceKind names a collectible resource type.
type ResourceKind int

const (
	ResourceFish ResourceKind = iota
	ResourceBerries
	ResourceWater
)

func (k ResourceKind) String() string {
	switch k {
	case ResourceFish:
		return "fish"
	case ResourceBerries:
		return "berries"
	case ResourceWater:
		return "water"
	default:
		return "unknown"
	}
}

// Resource is a collectible world item. While Collected is true, repeated
// collection attempts are no-ops; RespawnIn is a plain countdown polled by
// the economy system's respawn sweep.
type Resource struct {
	Kind           ResourceKind
	HealthRestore  float64
	StaminaRestore float64
	RespawnTime    float64 // seconds

	Collected   bool
	CollectedAt float64 // sim-clock seconds at collection
	RespawnIn   float64 // countdown, meaningful only while Collected
}
