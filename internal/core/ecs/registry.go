package ecs

import (
	"fmt"
	"reflect"
)

// Registry assigns component type ids and owns one storage per type.
// Each World has its own Registry, so ids from different worlds never mix.
type Registry struct {
	ids      map[reflect.Type]ComponentTypeID
	storages []storage // indexed by ComponentTypeID
}

func NewRegistry() *Registry {
	return &Registry{
		ids:      make(map[reflect.Type]ComponentTypeID, 16),
		storages: make([]storage, 0, 16),
	}
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func (r *Registry) storage(id ComponentTypeID) storage {
	if int(id) >= len(r.storages) {
		return nil
	}
	return r.storages[id]
}

// RemoveAll clears the given entity from every registered component storage.
func (r *Registry) RemoveAll(e Entity) {
	for _, s := range r.storages {
		s.Remove(e)
	}
}

func (r *Registry) Len() int { return len(r.storages) }

// TypeName reports the Go type registered under id, for logs and inspectors.
func (r *Registry) TypeName(id ComponentTypeID) string {
	if s := r.storage(id); s != nil {
		return s.Type().String()
	}
	return fmt.Sprintf("component#%d", id)
}

// register returns the storage for T, creating it and assigning the next id on
// first use.
func register[T any](r *Registry) (ComponentTypeID, *ComponentStorage[T]) {
	t := typeOf[T]()
	if id, ok := r.ids[t]; ok {
		return id, r.storages[id].(*ComponentStorage[T])
	}
	if len(r.storages) >= MaxComponentTypes {
		panic(fmt.Sprintf("ecs: more than %d component types registered", MaxComponentTypes))
	}
	id := ComponentTypeID(len(r.storages))
	s := NewComponentStorage[T]()
	r.ids[t] = id
	r.storages = append(r.storages, s)
	return id, s
}

// find returns the storage for T if the type was registered.
func find[T any](r *Registry) (ComponentTypeID, *ComponentStorage[T], bool) {
	id, ok := r.ids[typeOf[T]()]
	if !ok {
		return 0, nil, false
	}
	return id, r.storages[id].(*ComponentStorage[T]), true
}
