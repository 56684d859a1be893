package ecs

// World owns the entity pool, the set of component stores, and the command
// buffer. Creation and destruction requested mid-tick are deferred until
// FlushCommands so no system ever invalidates an iteration in progress.
type World struct {
	pool         *pool
	stores       []Removable
	destroyQueue []EntityID
	deferred     []func()
}

func NewWorld() *World {
	return &World{
		pool:         newPool(),
		stores:       make([]Removable, 0, 16),
		destroyQueue: make([]EntityID, 0, 64),
		deferred:     make([]func(), 0, 16),
	}
}

// RegisterStore adds a component store to the destroy fan-out set.
func (w *World) RegisterStore(s Removable) {
	w.stores = append(w.stores, s)
}

// CreateEntity allocates a fresh entity immediately. Only spawn paths that
// run outside live-entity iteration may call it directly; everything else
// goes through Defer.
func (w *World) CreateEntity() EntityID {
	return w.pool.create()
}

func (w *World) Alive(id EntityID) bool {
	return w.pool.alive(id)
}

// MarkForDestruction queues an entity for end-of-tick removal. Safe to call
// while iterating; double-marks are harmless (generation check).
func (w *World) MarkForDestruction(id EntityID) {
	w.destroyQueue = append(w.destroyQueue, id)
}

// Defer queues an arbitrary structural mutation (typically a spawn) to run
// at FlushCommands, before queued destroys.
func (w *World) Defer(fn func()) {
	w.deferred = append(w.deferred, fn)
}

// FlushCommands applies the command buffer: deferred creates first, then
// queued destroys with component cleanup across all registered stores.
// The cleanup system calls this once at tick end.
func (w *World) FlushCommands() {
	for _, fn := range w.deferred {
		fn()
	}
	w.deferred = w.deferred[:0]

	for _, id := range w.destroyQueue {
		if !w.pool.alive(id) {
			continue
		}
		for _, s := range w.stores {
			s.Remove(id)
		}
		w.pool.destroy(id)
	}
	w.destroyQueue = w.destroyQueue[:0]
}
