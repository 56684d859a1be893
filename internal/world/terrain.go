package world

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Terrain is a deterministic procedural heightfield. Heights come from
// hashed value noise sampled by world coordinate, so any two processes with
// the same seed agree on every height without storing a mesh. The renderer
// owns actual geometry; the simulation only ever asks for heights and
// slopes.
type Terrain struct {
	Seed       int64
	Amplitude  float64 // peak-to-valley half-range of the base octave
	Frequency  float64 // base lattice frequency
	WaterLevel float64
	SampleDist float64 // offset used for slope gradient sampling
}

// NewTerrain builds a heightfield with tuning suitable for the default
// 1000-unit world.
func NewTerrain(seed int64, waterLevel float64) *Terrain {
	return &Terrain{
		Seed:       seed,
		Amplitude:  12,
		Frequency:  0.015,
		WaterLevel: waterLevel,
		SampleDist: 0.5,
	}
}

// latticeValue hashes an integer lattice point into [-1, 1].
func (t *Terrain) latticeValue(ix, iz int64, octave uint32) float64 {
	var buf [24]byte
	binary.LittleEndian.PutUint64(buf[0:], uint64(ix))
	binary.LittleEndian.PutUint64(buf[8:], uint64(iz))
	binary.LittleEndian.PutUint32(buf[16:], octave)
	binary.LittleEndian.PutUint32(buf[20:], uint32(t.Seed)^uint32(t.Seed>>32))
	h := xxhash.Sum64(buf[:])
	return float64(h)/float64(math.MaxUint64)*2 - 1
}

func smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}

// octaveAt samples one octave of bilinear value noise.
func (t *Terrain) octaveAt(x, z, freq float64, octave uint32) float64 {
	fx := x * freq
	fz := z * freq
	ix := int64(math.Floor(fx))
	iz := int64(math.Floor(fz))
	tx := smoothstep(fx - math.Floor(fx))
	tz := smoothstep(fz - math.Floor(fz))

	v00 := t.latticeValue(ix, iz, octave)
	v10 := t.latticeValue(ix+1, iz, octave)
	v01 := t.latticeValue(ix, iz+1, octave)
	v11 := t.latticeValue(ix+1, iz+1, octave)

	top := v00 + (v10-v00)*tx
	bot := v01 + (v11-v01)*tx
	return top + (bot-top)*tz
}

// HeightAt returns the ground height at a world position. Three octaves:
// broad hills, local relief, fine detail.
func (t *Terrain) HeightAt(x, z float64) float64 {
	h := t.octaveAt(x, z, t.Frequency, 0) * t.Amplitude
	h += t.octaveAt(x, z, t.Frequency*4, 1) * t.Amplitude * 0.25
	h += t.octaveAt(x, z, t.Frequency*16, 2) * t.Amplitude * 0.0625
	return h
}

// SlopeAt estimates the slope angle (radians) at a position by sampling
// height at four offset points and taking the gradient magnitude.
func (t *Terrain) SlopeAt(x, z float64) float64 {
	d := t.SampleDist
	dhdx := (t.HeightAt(x+d, z) - t.HeightAt(x-d, z)) / (2 * d)
	dhdz := (t.HeightAt(x, z+d) - t.HeightAt(x, z-d)) / (2 * d)
	return math.Atan(math.Hypot(dhdx, dhdz))
}

// Submerged reports whether a Y position is below the water level.
func (t *Terrain) Submerged(y float64) bool {
	return y < t.WaterLevel
}
