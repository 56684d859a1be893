package ecs

// Each2 visits entities carrying both A and B, iterating the smaller store
// and probing the larger one.
func Each2[A, B any](sa *Store[A], sb *Store[B], fn func(EntityID, *A, *B)) {
	if sa.Len() <= sb.Len() {
		for id, a := range sa.data {
			if b, ok := sb.data[id]; ok {
				fn(id, a, b)
			}
		}
		return
	}
	for id, b := range sb.data {
		if a, ok := sa.data[id]; ok {
			fn(id, a, b)
		}
	}
}

// Each3 visits entities carrying A, B and C.
func Each3[A, B, C any](sa *Store[A], sb *Store[B], sc *Store[C], fn func(EntityID, *A, *B, *C)) {
	// Drive the loop from the smallest store.
	switch {
	case sa.Len() <= sb.Len() && sa.Len() <= sc.Len():
		for id, a := range sa.data {
			b, ok := sb.data[id]
			if !ok {
				continue
			}
			c, ok := sc.data[id]
			if !ok {
				continue
			}
			fn(id, a, b, c)
		}
	case sb.Len() <= sc.Len():
		for id, b := range sb.data {
			a, ok := sa.data[id]
			if !ok {
				continue
			}
			c, ok := sc.data[id]
			if !ok {
				continue
			}
			fn(id, a, b, c)
		}
	default:
		for id, c := range sc.data {
			a, ok := sa.data[id]
			if !ok {
				continue
			}
			b, ok := sb.data[id]
			if !ok {
				continue
			}
			fn(id, a, b, c)
		}
	}
}
