package ecs

// Removable lets the world bulk-remove an entity's data from every
// registered store on destroy without knowing the component types.
type Removable interface {
	Remove(id EntityID)
}

// Store is a typed map-backed component store. No reflect, no interface{}.
type Store[T any] struct {
	data map[EntityID]*T
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{data: make(map[EntityID]*T, 128)}
}

func (s *Store[T]) Set(id EntityID, c *T) {
	s.data[id] = c
}

// Get returns the component for id, or (nil, false) when the entity does
// not carry it. Systems treat the false case as "skip this entity".
func (s *Store[T]) Get(id EntityID) (*T, bool) {
	c, ok := s.data[id]
	return c, ok
}

func (s *Store[T]) Has(id EntityID) bool {
	_, ok := s.data[id]
	return ok
}

func (s *Store[T]) Remove(id EntityID) {
	delete(s.data, id)
}

func (s *Store[T]) Len() int {
	return len(s.data)
}

// Each visits every (entity, component) pair. Callers must not create or
// destroy entities while iterating; mutations go through the world's
// command buffer instead.
func (s *Store[T]) Each(fn func(EntityID, *T)) {
	for id, c := range s.data {
		fn(id, c)
	}
}
