package ecs

// EntityID packs a 32-bit slot index in the low bits and a 32-bit generation
// in the high bits. The generation bumps on destroy, so an ID held as a weak
// reference (an AI target, a predator's prey) goes stale instead of silently
// pointing at whatever reuses the slot.
type EntityID uint64

func makeID(index, generation uint32) EntityID {
	return EntityID(uint64(generation)<<32 | uint64(index))
}

func (id EntityID) Index() uint32      { return uint32(id) }
func (id EntityID) Generation() uint32 { return uint32(id >> 32) }
func (id EntityID) IsZero() bool       { return id == 0 }

// pool hands out entity IDs with generational indices and a free list.
type pool struct {
	generations []uint32
	free        []uint32
	next        uint32
}

func newPool() *pool {
	return &pool{
		generations: make([]uint32, 0, 512),
		free:        make([]uint32, 0, 128),
	}
}

func (p *pool) create() EntityID {
	if n := len(p.free); n > 0 {
		idx := p.free[n-1]
		p.free = p.free[:n-1]
		return makeID(idx, p.generations[idx])
	}
	idx := p.next
	p.next++
	if int(idx) >= len(p.generations) {
		p.generations = append(p.generations, 0)
	}
	return makeID(idx, p.generations[idx])
}

func (p *pool) alive(id EntityID) bool {
	idx := id.Index()
	return idx < p.next && p.generations[idx] == id.Generation()
}

func (p *pool) destroy(id EntityID) {
	idx := id.Index()
	if idx >= p.next || p.generations[idx] != id.Generation() {
		return // stale reference, already destroyed
	}
	p.generations[idx]++
	p.free = append(p.free, idx)
}
