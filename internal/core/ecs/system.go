package ecs

import "sort"

// System is anything that embeds SystemBase. The World drives a system
// through whichever of the optional interfaces below it implements.
type System interface {
	systemBase() *SystemBase
}

type Initializer interface {
	Init(w *World)
}

type Updater interface {
	Update(dt float32)
}

type Renderer interface {
	Render()
}

type Shutdowner interface {
	Shutdown()
}

// EntityObserver is notified once per membership transition.
type EntityObserver interface {
	OnEntityAdded(e Entity)
	OnEntityRemoved(e Entity)
}

// SystemBase holds the bookkeeping the World maintains for every system:
// the required signature, the matching entities and the scheduling knobs.
// Systems start enabled with priority 0.
type SystemBase struct {
	signature Signature
	entities  []Entity // ascending
	members   map[Entity]struct{}
	priority  int
	disabled  bool
}

func (b *SystemBase) systemBase() *SystemBase { return b }

func (b *SystemBase) Signature() Signature { return b.signature }

// Entities returns the tracked entities in ascending id order. The slice is
// owned by the system and changes on the next Flush.
func (b *SystemBase) Entities() []Entity { return b.entities }

func (b *SystemBase) Tracks(e Entity) bool {
	_, ok := b.members[e]
	return ok
}

func (b *SystemBase) EntityCount() int { return len(b.entities) }

// Priority orders Update and Render dispatch, lower first.
func (b *SystemBase) Priority() int { return b.priority }

func (b *SystemBase) SetPriority(p int) { b.priority = p }

func (b *SystemBase) Enabled() bool { return !b.disabled }

func (b *SystemBase) SetEnabled(on bool) { b.disabled = !on }

func (b *SystemBase) add(e Entity) bool {
	if b.members == nil {
		b.members = make(map[Entity]struct{})
	}
	if _, ok := b.members[e]; ok {
		return false
	}
	b.members[e] = struct{}{}
	i := sort.Search(len(b.entities), func(i int) bool { return b.entities[i] >= e })
	b.entities = append(b.entities, 0)
	copy(b.entities[i+1:], b.entities[i:])
	b.entities[i] = e
	return true
}

func (b *SystemBase) remove(e Entity) bool {
	if _, ok := b.members[e]; !ok {
		return false
	}
	delete(b.members, e)
	i := sort.Search(len(b.entities), func(i int) bool { return b.entities[i] >= e })
	b.entities = append(b.entities[:i], b.entities[i+1:]...)
	return true
}
