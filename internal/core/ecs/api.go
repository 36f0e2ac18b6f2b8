package ecs

import (
	"reflect"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// RegisterComponent creates the storage for T if needed and returns its id.
// Calling it again for the same T returns the same id.
func RegisterComponent[T any](w *World) ComponentTypeID {
	id, _ := register[T](w.registry)
	return id
}

// ComponentTypeOf is RegisterComponent under the name used when building
// signatures.
func ComponentTypeOf[T any](w *World) ComponentTypeID {
	return RegisterComponent[T](w)
}

// Components returns the storage for T, or nil if T was never registered.
func Components[T any](w *World) *ComponentStorage[T] {
	_, s, _ := find[T](w.registry)
	return s
}

// AddComponent queues v to be attached to e on the next Flush. It fails with
// ErrInvalidEntity if e is not alive; T is registered on first use.
func AddComponent[T any](w *World, e Entity, v T) error {
	if !w.pool.Alive(e) {
		return eris.Wrapf(ErrInvalidEntity, "add %s to entity %d", typeOf[T](), e)
	}
	id, _ := register[T](w.registry)
	w.pending = append(w.pending, command{kind: cmdAddComponent, entity: e, typeID: id, payload: v})
	return nil
}

// RemoveComponent queues the removal of T from e. Nothing is queued when e is
// not alive or T was never registered.
func RemoveComponent[T any](w *World, e Entity) {
	if !w.pool.Alive(e) {
		return
	}
	id, _, ok := find[T](w.registry)
	if !ok {
		return
	}
	w.pending = append(w.pending, command{kind: cmdRemoveComponent, entity: e, typeID: id})
}

// GetComponent returns a pointer to e's T. The pointer is only valid until
// the next Flush or DestroyEntity.
func GetComponent[T any](w *World, e Entity) (*T, error) {
	if !w.pool.Alive(e) {
		return nil, eris.Wrapf(ErrInvalidEntity, "get %s of entity %d", typeOf[T](), e)
	}
	_, s, ok := find[T](w.registry)
	if !ok {
		return nil, eris.Wrapf(ErrUnregisteredComponentType, "get %s", typeOf[T]())
	}
	v, ok := s.Get(e)
	if !ok {
		return nil, eris.Wrapf(ErrComponentNotFound, "get %s of entity %d", typeOf[T](), e)
	}
	return v, nil
}

// HasComponent reports whether e currently holds T. Queued adds do not count.
func HasComponent[T any](w *World, e Entity) bool {
	if !w.pool.Alive(e) {
		return false
	}
	_, s, ok := find[T](w.registry)
	return ok && s.Has(e)
}

// RegisterSystem adds s to the world unless a system of the same type is
// already registered, in which case the existing instance is returned and s
// is discarded. A new system gets Init once and then membership for every
// live entity against its (initially empty) signature.
func RegisterSystem[S System](w *World, s S) S {
	t := reflect.TypeOf(s)
	if existing, ok := w.systemTypes[t]; ok {
		return existing.(S)
	}
	w.systemTypes[t] = s
	w.systems = append(w.systems, s)
	w.ensureSorted()
	if in, ok := any(s).(Initializer); ok {
		in.Init(w)
	}
	b := s.systemBase()
	w.pool.Each(func(e Entity) {
		w.evaluateOne(s, e, w.signatures[e])
	})
	w.log.Info("system registered",
		zap.Stringer("type", t),
		zap.Int("priority", b.priority),
		zap.Int("tracked", len(b.entities)))
	return s
}

// GetSystem returns the registered instance of S.
func GetSystem[S System](w *World) (S, bool) {
	s, ok := w.systemTypes[reflect.TypeOf((*S)(nil)).Elem()]
	if !ok {
		var zero S
		return zero, false
	}
	return s.(S), true
}

// SetSystemSignature replaces S's signature and re-evaluates membership for
// every live entity.
func SetSystemSignature[S System](w *World, sig Signature) error {
	s, ok := w.systemTypes[reflect.TypeOf((*S)(nil)).Elem()]
	if !ok {
		return eris.Wrapf(ErrUnregisteredSystem, "set signature of %s", reflect.TypeOf((*S)(nil)).Elem())
	}
	s.systemBase().signature = sig
	w.pool.Each(func(e Entity) {
		w.evaluateOne(s, e, w.signatures[e])
	})
	return nil
}
