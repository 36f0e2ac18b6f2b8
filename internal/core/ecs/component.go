package ecs

import (
	"fmt"
	"reflect"
)

// storage is the type-erased face of a ComponentStorage. The World applies
// queued commands and destroy cleanup through it without knowing T.
type storage interface {
	insertAny(e Entity, v any)
	Remove(e Entity)
	Has(e Entity) bool
	Len() int
	Type() reflect.Type
}

// ComponentStorage packs every component of one type contiguously.
// Removal moves the last element into the hole, so the live values always
// occupy [0, Len()) and their order changes on removal.
type ComponentStorage[T any] struct {
	dense         []T
	indexToEntity []Entity
	entityToIndex map[Entity]int
}

func NewComponentStorage[T any]() *ComponentStorage[T] {
	return &ComponentStorage[T]{
		dense:         make([]T, 0, 64),
		indexToEntity: make([]Entity, 0, 64),
		entityToIndex: make(map[Entity]int, 64),
	}
}

// Insert stores v for e, overwriting any value e already had.
func (s *ComponentStorage[T]) Insert(e Entity, v T) {
	if i, ok := s.entityToIndex[e]; ok {
		s.dense[i] = v
		return
	}
	s.entityToIndex[e] = len(s.dense)
	s.dense = append(s.dense, v)
	s.indexToEntity = append(s.indexToEntity, e)
}

func (s *ComponentStorage[T]) insertAny(e Entity, v any) {
	t, ok := v.(T)
	if !ok {
		panic(fmt.Sprintf("ecs: storage %v got payload %T", s.Type(), v))
	}
	s.Insert(e, t)
}

// Remove drops e's value. Removing an absent entity is a no-op.
func (s *ComponentStorage[T]) Remove(e Entity) {
	i, ok := s.entityToIndex[e]
	if !ok {
		return
	}
	last := len(s.dense) - 1
	if i != last {
		moved := s.indexToEntity[last]
		s.dense[i] = s.dense[last]
		s.indexToEntity[i] = moved
		s.entityToIndex[moved] = i
	}
	var zero T
	s.dense[last] = zero
	s.dense = s.dense[:last]
	s.indexToEntity = s.indexToEntity[:last]
	delete(s.entityToIndex, e)
}

// Get returns a pointer into the dense array. It is invalidated by any later
// Insert or Remove on this storage, which includes World.Flush.
func (s *ComponentStorage[T]) Get(e Entity) (*T, bool) {
	i, ok := s.entityToIndex[e]
	if !ok {
		return nil, false
	}
	return &s.dense[i], true
}

func (s *ComponentStorage[T]) Has(e Entity) bool {
	_, ok := s.entityToIndex[e]
	return ok
}

func (s *ComponentStorage[T]) Len() int {
	return len(s.dense)
}

func (s *ComponentStorage[T]) Type() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Values exposes the live prefix of the dense array.
func (s *ComponentStorage[T]) Values() []T {
	return s.dense
}

// Entities returns the owner of each value in Values, index for index.
func (s *ComponentStorage[T]) Entities() []Entity {
	return s.indexToEntity
}

func (s *ComponentStorage[T]) Each(fn func(Entity, *T)) {
	for i := range s.dense {
		fn(s.indexToEntity[i], &s.dense[i])
	}
}
