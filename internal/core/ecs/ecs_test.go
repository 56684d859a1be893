package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type health struct {
	HP int
}

func TestPoolGenerations(t *testing.T) {
	w := NewWorld()

	a := w.CreateEntity()
	require.True(t, w.Alive(a))

	w.MarkForDestruction(a)
	w.FlushCommands()
	assert.False(t, w.Alive(a), "destroyed entity must read as dead")

	// The slot is reused with a bumped generation: the stale ID stays dead.
	b := w.CreateEntity()
	assert.Equal(t, a.Index(), b.Index())
	assert.NotEqual(t, a.Generation(), b.Generation())
	assert.False(t, w.Alive(a))
	assert.True(t, w.Alive(b))
}

func TestStoreRemoveOnDestroy(t *testing.T) {
	w := NewWorld()
	store := NewStore[health]()
	w.RegisterStore(store)

	id := w.CreateEntity()
	store.Set(id, &health{HP: 10})
	require.True(t, store.Has(id))

	w.MarkForDestruction(id)
	w.FlushCommands()
	assert.False(t, store.Has(id), "destroy must fan out to registered stores")
	assert.Zero(t, store.Len())
}

func TestDoubleDestroyHarmless(t *testing.T) {
	w := NewWorld()
	id := w.CreateEntity()
	w.MarkForDestruction(id)
	w.MarkForDestruction(id)
	w.FlushCommands()

	other := w.CreateEntity()
	assert.True(t, w.Alive(other), "double-destroy must not kill the reused slot")
}

func TestDeferRunsBeforeDestroys(t *testing.T) {
	w := NewWorld()
	store := NewStore[health]()
	w.RegisterStore(store)

	victim := w.CreateEntity()
	store.Set(victim, &health{HP: 1})
	w.MarkForDestruction(victim)

	var spawned EntityID
	w.Defer(func() {
		spawned = w.CreateEntity()
		store.Set(spawned, &health{HP: 5})
	})
	w.FlushCommands()

	assert.False(t, w.Alive(victim))
	require.True(t, w.Alive(spawned))
	hp, ok := store.Get(spawned)
	require.True(t, ok)
	assert.Equal(t, 5, hp.HP)
}

func TestEach2IntersectsStores(t *testing.T) {
	w := NewWorld()
	a := NewStore[health]()
	b := NewStore[struct{ Tag string }]()

	e1 := w.CreateEntity()
	e2 := w.CreateEntity()
	e3 := w.CreateEntity()
	a.Set(e1, &health{HP: 1})
	a.Set(e2, &health{HP: 2})
	b.Set(e2, &struct{ Tag string }{Tag: "x"})
	b.Set(e3, &struct{ Tag string }{Tag: "y"})

	seen := map[EntityID]bool{}
	Each2(a, b, func(id EntityID, _ *health, _ *struct{ Tag string }) {
		seen[id] = true
	})
	assert.Equal(t, map[EntityID]bool{e2: true}, seen)
}
