// Package inspect reads a World without changing it: per-entity snapshots
// for debugging and reports, and a stable digest of simulation state.
package inspect

import (
	"github.com/uniengine/simcore/internal/component"
	"github.com/uniengine/simcore/internal/core/ecs"
)

// EntityState copies one entity's inspectable components. Nil pointers mean
// the entity lacks that component.
type EntityState struct {
	Entity     ecs.Entity
	Name       string
	Components []string
	Transform  *component.Transform2D
	Rigidbody  *component.Rigidbody2D
	Collider   *component.BoxCollider2D
}

// Snapshot is a copy of world state. It stays valid across Flush.
type Snapshot struct {
	Entities []EntityState
	Pending  int
}

// Take copies every live entity in ascending id order.
func Take(w *ecs.World) Snapshot {
	snap := Snapshot{Pending: w.PendingOperationCount()}
	reg := w.Registry()
	for _, e := range w.Entities() {
		st := EntityState{Entity: e}
		for _, id := range w.Signature(e).IDs() {
			st.Components = append(st.Components, reg.TypeName(id))
		}
		if n, err := ecs.GetComponent[component.Name](w, e); err == nil {
			st.Name = n.Value
		}
		st.Transform = copyOf[component.Transform2D](w, e)
		st.Rigidbody = copyOf[component.Rigidbody2D](w, e)
		st.Collider = copyOf[component.BoxCollider2D](w, e)
		snap.Entities = append(snap.Entities, st)
	}
	return snap
}

func copyOf[T any](w *ecs.World, e ecs.Entity) *T {
	v, err := ecs.GetComponent[T](w, e)
	if err != nil {
		return nil
	}
	c := *v
	return &c
}

// Find returns the first entity with the given name.
func (s Snapshot) Find(name string) (EntityState, bool) {
	for _, st := range s.Entities {
		if st.Name == name {
			return st, true
		}
	}
	return EntityState{}, false
}
