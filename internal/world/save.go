package world

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"github.com/wildreach/sim/internal/component"
	"github.com/wildreach/sim/internal/mathx"
)

// SaveVersion is the current payload schema version. Any mismatch on load
// discards the payload and starts a fresh world — never an error.
const SaveVersion = 1

// SavePayload is the persisted shape of a world. Resources are keyed by
// spawn index, which is stable across runs for a given seed and data set.
type SavePayload struct {
	Version   int    `json:"version"`
	Timestamp int64  `json:"timestamp"`
	Checksum  uint64 `json:"checksum,omitempty"`

	Player struct {
		Position [3]float64 `json:"position"`
		Health   float64    `json:"health"`
		Stamina  float64    `json:"stamina"`
	} `json:"player"`

	World struct {
		Time    float64 `json:"time"`  // hour
		Clock   float64 `json:"clock"` // sim seconds since world init
		Weather string  `json:"weather"`
	} `json:"world"`

	Resources []SavedResource `json:"resources"`
}

// SavedResource is one resource row: id is the spawn index, RespawnAt the
// absolute sim-clock second it becomes collectible again.
type SavedResource struct {
	ID        int     `json:"id"`
	Collected bool    `json:"collected"`
	RespawnAt float64 `json:"respawnAt"`
}

// BuildSave captures the current world into a payload.
func (s *State) BuildSave() *SavePayload {
	p := &SavePayload{
		Version:   SaveVersion,
		Timestamp: time.Now().Unix(),
	}
	p.World.Time = s.Time().Hour
	p.World.Clock = s.Clock
	p.World.Weather = s.Weather().Current.String()

	if pos, ok := s.PlayerPosition(); ok {
		p.Player.Position = [3]float64{pos.X, pos.Y, pos.Z}
		if sp, ok := s.Species.Get(s.playerID); ok {
			p.Player.Health = sp.Health
			p.Player.Stamina = sp.Stamina
		}
	}

	for i, id := range s.ResourceOrder {
		r, ok := s.Resources.Get(id)
		if !ok {
			continue
		}
		row := SavedResource{ID: i, Collected: r.Collected}
		if r.Collected {
			row.RespawnAt = r.CollectedAt + r.RespawnTime
		}
		p.Resources = append(p.Resources, row)
	}

	p.Checksum = p.computeChecksum()
	return p
}

// computeChecksum hashes the canonical JSON body with the checksum field
// zeroed.
func (p *SavePayload) computeChecksum() uint64 {
	clone := *p
	clone.Checksum = 0
	body, err := json.Marshal(&clone)
	if err != nil {
		return 0
	}
	return xxhash.Sum64(body)
}

// Encode serializes the payload to JSON.
func (p *SavePayload) Encode() ([]byte, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode save: %w", err)
	}
	return b, nil
}

// DecodeSave parses and validates a payload. Malformed JSON, a version
// mismatch, or a checksum mismatch all return nil — the caller starts a
// default new game, never fails.
func DecodeSave(raw []byte, log *zap.Logger) *SavePayload {
	if log == nil {
		log = zap.NewNop()
	}
	var p SavePayload
	if err := json.Unmarshal(raw, &p); err != nil {
		log.Warn("discarding malformed save payload", zap.Error(err))
		return nil
	}
	if p.Version != SaveVersion {
		log.Warn("discarding save payload with version mismatch",
			zap.Int("got", p.Version), zap.Int("want", SaveVersion))
		return nil
	}
	if p.Checksum != 0 && p.Checksum != p.computeChecksum() {
		log.Warn("discarding save payload with checksum mismatch")
		return nil
	}
	return &p
}

// ApplySave restores a decoded payload onto a freshly initialized world.
// Returns false (leaving the world untouched beyond partial time/weather
// state already validated) when the payload does not fit this world's
// resource layout; callers then keep the default state.
func (s *State) ApplySave(p *SavePayload) bool {
	if p == nil {
		return false
	}
	if len(p.Resources) > len(s.ResourceOrder) {
		s.Log.Warn("save payload resource count exceeds world, discarding",
			zap.Int("saved", len(p.Resources)), zap.Int("world", len(s.ResourceOrder)))
		return false
	}

	// RespawnAt rows below are absolute sim-clock seconds of the saving
	// session, so the clock must come back before any countdown math.
	s.Clock = p.World.Clock

	s.Time().Hour = mathx.WrapHour(p.World.Time)
	s.Time().AdvanceHours(0) // recompute derived lighting
	if kind, ok := component.ParseWeatherKind(p.World.Weather); ok {
		w := s.Weather()
		w.Current = kind
		w.HasNext = false
		w.TransitionProgress = 0
		w.ApplySteady()
	} else {
		s.Log.Warn("save payload has unknown weather, keeping clear",
			zap.String("weather", p.World.Weather))
	}

	if !s.playerID.IsZero() {
		if tr, ok := s.Transforms.Get(s.playerID); ok {
			tr.Position = mathx.Vec3{X: p.Player.Position[0], Y: p.Player.Position[1], Z: p.Player.Position[2]}
		}
		if sp, ok := s.Species.Get(s.playerID); ok {
			sp.Health = mathx.Clamp(p.Player.Health, 0, sp.MaxHealth)
			sp.Stamina = mathx.Clamp(p.Player.Stamina, 0, sp.MaxStamina)
		}
	}

	for _, row := range p.Resources {
		if row.ID < 0 || row.ID >= len(s.ResourceOrder) {
			continue
		}
		r, ok := s.Resources.Get(s.ResourceOrder[row.ID])
		if !ok {
			continue
		}
		r.Collected = row.Collected
		if row.Collected {
			r.CollectedAt = row.RespawnAt - r.RespawnTime
			r.RespawnIn = row.RespawnAt - s.Clock
			if r.RespawnIn < 0 {
				r.RespawnIn = 0
			}
		} else {
			r.RespawnIn = 0
		}
	}
	return true
}
