package system

import "time"

// Phase defines execution ordering within a single tick. Later phases
// observe mutations made by earlier phases in the same tick.
type Phase int

const (
	PhaseInput    Phase = iota // 0: apply player intent, dispatch last tick's events
	PhaseTime                  // 1: world clock + derived lighting
	PhaseWeather               // 2: weather state machine
	PhaseAI                    // 3: FSM decisions + steering forces
	PhaseMovement              // 4: slope gating, separation, vertical integration
	PhaseEconomy               // 5: resource collection + respawn sweep
	PhaseSpawn                 // 6: population upkeep, death-grace despawn
	PhaseQuality               // 7: frame-time sampling
	PhaseCleanup               // 8: flush the command buffer
)

// System is the interface every simulation system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
