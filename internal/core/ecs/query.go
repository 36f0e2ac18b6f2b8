package ecs

// Each2 iterates over entities that have both component A and B.
// It walks the smaller storage and probes the larger one.
func Each2[A, B any](sa *ComponentStorage[A], sb *ComponentStorage[B], fn func(Entity, *A, *B)) {
	if sa == nil || sb == nil {
		return
	}
	if sa.Len() <= sb.Len() {
		for i, e := range sa.indexToEntity {
			if b, ok := sb.Get(e); ok {
				fn(e, &sa.dense[i], b)
			}
		}
		return
	}
	for i, e := range sb.indexToEntity {
		if a, ok := sa.Get(e); ok {
			fn(e, a, &sb.dense[i])
		}
	}
}

// View3 resolves three components of e at once; ok is false if any is missing.
func View3[A, B, C any](w *World, e Entity) (a *A, b *B, c *C, ok bool) {
	if !w.pool.Alive(e) {
		return nil, nil, nil, false
	}
	sa, sb, sc := Components[A](w), Components[B](w), Components[C](w)
	if sa == nil || sb == nil || sc == nil {
		return nil, nil, nil, false
	}
	if a, ok = sa.Get(e); !ok {
		return nil, nil, nil, false
	}
	if b, ok = sb.Get(e); !ok {
		return nil, nil, nil, false
	}
	if c, ok = sc.Get(e); !ok {
		return nil, nil, nil, false
	}
	return a, b, c, true
}
