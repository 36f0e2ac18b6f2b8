package ecs

import (
	"reflect"
	"sort"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// World is the top-level ECS container. It owns the entity pool, the component
// registry, the signature table, the registered systems and two deferred
// queues: structural component mutations (applied by Flush) and entity
// destruction (applied by FlushDestroyQueue).
type World struct {
	log          *zap.Logger
	pool         *EntityPool
	registry     *Registry
	signatures   map[Entity]Signature
	pending      []command
	destroyQueue []Entity

	systems     []System
	systemTypes map[reflect.Type]System
}

func NewWorld(log *zap.Logger) *World {
	if log == nil {
		log = zap.NewNop()
	}
	return &World{
		log:          log,
		pool:         NewEntityPool(),
		registry:     NewRegistry(),
		signatures:   make(map[Entity]Signature, 256),
		pending:      make([]command, 0, 64),
		destroyQueue: make([]Entity, 0, 64),
		systems:      make([]System, 0, 8),
		systemTypes:  make(map[reflect.Type]System, 8),
	}
}

func (w *World) Registry() *Registry { return w.registry }
func (w *World) Logger() *zap.Logger { return w.log }

// CreateEntity issues a fresh or recycled id with an empty signature.
func (w *World) CreateEntity() Entity {
	e := w.pool.Create()
	w.signatures[e] = Signature{}
	w.evaluate(e, Signature{})
	return e
}

// DestroyEntity drops e's components, its system memberships and any
// commands still queued for it, then releases the id. Invalid ids are ignored.
func (w *World) DestroyEntity(e Entity) {
	if !w.pool.Alive(e) {
		return
	}
	for _, s := range w.systems {
		b := s.systemBase()
		if b.remove(e) {
			if obs, ok := s.(EntityObserver); ok {
				obs.OnEntityRemoved(e)
			}
		}
	}
	w.registry.RemoveAll(e)
	delete(w.signatures, e)
	w.dropPending(e)
	w.pool.Destroy(e)
}

// IsEntityValid reports whether e is nonzero, was issued, and is not on the free list.
func (w *World) IsEntityValid(e Entity) bool {
	return w.pool.Alive(e)
}

func (w *World) EntityCount() int { return w.pool.Len() }

// Entities lists live entities in ascending id order.
func (w *World) Entities() []Entity {
	out := make([]Entity, 0, w.pool.Len())
	w.pool.Each(func(e Entity) { out = append(out, e) })
	return out
}

// Signature returns e's current signature (empty for invalid entities).
func (w *World) Signature(e Entity) Signature {
	return w.signatures[e]
}

// MarkForDestruction queues an entity for end-of-step cleanup.
func (w *World) MarkForDestruction(e Entity) {
	w.destroyQueue = append(w.destroyQueue, e)
}

// FlushDestroyQueue destroys all queued entities. Duplicates and ids that
// died in the meantime are skipped by DestroyEntity.
func (w *World) FlushDestroyQueue() {
	if len(w.destroyQueue) == 0 {
		return
	}
	queue := w.destroyQueue
	w.destroyQueue = make([]Entity, 0, cap(queue))
	for _, e := range queue {
		w.DestroyEntity(e)
	}
}

func (w *World) PendingOperationCount() int { return len(w.pending) }

// Flush applies the commands queued so far, in order. Commands enqueued while
// it runs (for example by OnEntityAdded hooks) wait for the next Flush.
func (w *World) Flush() {
	if len(w.pending) == 0 {
		return
	}
	queue := w.pending
	w.pending = make([]command, 0, cap(queue))

	for i := range queue {
		w.apply(queue[i])
	}
	w.log.Debug("flush", zap.Int("applied", len(queue)), zap.Int("deferred", len(w.pending)))
}

func (w *World) apply(cmd command) {
	if !w.pool.Alive(cmd.entity) {
		w.log.Warn("drop command for dead entity",
			zap.Uint32("entity", uint32(cmd.entity)),
			zap.Stringer("kind", cmd.kind))
		return
	}
	s := w.registry.storage(cmd.typeID)
	if s == nil {
		panic(eris.Wrapf(ErrUnregisteredComponentType, "apply %s of type %d", cmd.kind, cmd.typeID))
	}
	sig := w.signatures[cmd.entity]
	switch cmd.kind {
	case cmdAddComponent:
		s.insertAny(cmd.entity, cmd.payload)
		sig.Set(cmd.typeID)
	case cmdRemoveComponent:
		s.Remove(cmd.entity)
		sig.Unset(cmd.typeID)
	}
	w.signatures[cmd.entity] = sig
	w.evaluate(cmd.entity, sig)
}

func (w *World) dropPending(e Entity) {
	kept := w.pending[:0]
	for _, cmd := range w.pending {
		if cmd.entity != e {
			kept = append(kept, cmd)
		}
	}
	for i := len(kept); i < len(w.pending); i++ {
		w.pending[i] = command{}
	}
	w.pending = kept
}

// evaluate reconciles every system's membership for e against sig.
func (w *World) evaluate(e Entity, sig Signature) {
	for _, s := range w.systems {
		w.evaluateOne(s, e, sig)
	}
}

func (w *World) evaluateOne(s System, e Entity, sig Signature) {
	b := s.systemBase()
	if sig.Contains(b.signature) {
		if b.add(e) {
			if obs, ok := s.(EntityObserver); ok {
				obs.OnEntityAdded(e)
			}
		}
		return
	}
	if b.remove(e) {
		if obs, ok := s.(EntityObserver); ok {
			obs.OnEntityRemoved(e)
		}
	}
}

func (w *World) SystemCount() int { return len(w.systems) }

// Update runs every enabled Updater in ascending priority.
func (w *World) Update(dt float32) {
	w.ensureSorted()
	for _, s := range w.systems {
		if !s.systemBase().Enabled() {
			continue
		}
		if u, ok := s.(Updater); ok {
			u.Update(dt)
		}
	}
}

// Render runs every enabled Renderer in ascending priority.
func (w *World) Render() {
	w.ensureSorted()
	for _, s := range w.systems {
		if !s.systemBase().Enabled() {
			continue
		}
		if r, ok := s.(Renderer); ok {
			r.Render()
		}
	}
}

// Shutdown calls every system's Shutdown hook, enabled or not, in priority
// order and then forgets the systems.
func (w *World) Shutdown() {
	w.ensureSorted()
	for _, s := range w.systems {
		if sd, ok := s.(Shutdowner); ok {
			sd.Shutdown()
		}
	}
	w.log.Info("world shutdown",
		zap.Int("systems", len(w.systems)),
		zap.Int("entities", w.pool.Len()),
		zap.Int("pending", len(w.pending)))
	w.systems = w.systems[:0]
	w.systemTypes = make(map[reflect.Type]System, 8)
}

// ensureSorted keeps dispatch order in step with priorities that may have
// changed since registration. Equal priorities keep registration order.
func (w *World) ensureSorted() {
	less := func(i, j int) bool {
		return w.systems[i].systemBase().priority < w.systems[j].systemBase().priority
	}
	if !sort.SliceIsSorted(w.systems, less) {
		sort.SliceStable(w.systems, less)
	}
}
