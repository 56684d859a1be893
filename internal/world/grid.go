package world

import (
	"math"

	"github.com/wildreach/sim/internal/core/ecs"
)

// Grid is a cell-based broad-phase index over the (x,z) plane. It is
// rebuilt at the start of each AI pass and queried for awareness and
// separation neighborhoods; callers do their own fine-grained distance
// filtering. Single-goroutine access only — no locks.
type Grid struct {
	cellSize float64
	cells    map[gridKey][]ecs.EntityID
}

type gridKey struct {
	cx, cz int32
}

// NewGrid builds a grid. cellSize should be at least the largest common
// query radius so most queries touch a 3x3 neighborhood.
func NewGrid(cellSize float64) *Grid {
	if cellSize <= 0 {
		cellSize = 16
	}
	return &Grid{
		cellSize: cellSize,
		cells:    make(map[gridKey][]ecs.EntityID, 256),
	}
}

func (g *Grid) keyFor(x, z float64) gridKey {
	return gridKey{
		cx: int32(math.Floor(x / g.cellSize)),
		cz: int32(math.Floor(z / g.cellSize)),
	}
}

// Reset clears the grid for a rebuild, keeping allocated cell slices.
func (g *Grid) Reset() {
	for k := range g.cells {
		g.cells[k] = g.cells[k][:0]
	}
}

// Insert registers an entity at a position.
func (g *Grid) Insert(id ecs.EntityID, x, z float64) {
	k := g.keyFor(x, z)
	g.cells[k] = append(g.cells[k], id)
}

// Nearby appends every entity in cells overlapping the given radius to dst
// and returns it. The result is a superset of the true neighborhood.
func (g *Grid) Nearby(dst []ecs.EntityID, x, z, radius float64) []ecs.EntityID {
	if radius < 0 {
		return dst
	}
	span := int32(math.Ceil(radius / g.cellSize))
	center := g.keyFor(x, z)
	for dx := -span; dx <= span; dx++ {
		for dz := -span; dz <= span; dz++ {
			k := gridKey{cx: center.cx + dx, cz: center.cz + dz}
			dst = append(dst, g.cells[k]...)
		}
	}
	return dst
}
