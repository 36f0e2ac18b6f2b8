package ecs

import (
	"reflect"
	"testing"

	"github.com/rotisserie/eris"
)

type recordingSystem struct {
	SystemBase
	inits   int
	added   []Entity
	removed []Entity
	updates []float32
	renders int
	stopped bool
	log     *[]string
	name    string
}

func (s *recordingSystem) Init(*World)              { s.inits++ }
func (s *recordingSystem) OnEntityAdded(e Entity)   { s.added = append(s.added, e) }
func (s *recordingSystem) OnEntityRemoved(e Entity) { s.removed = append(s.removed, e) }
func (s *recordingSystem) Render()                  { s.renders++ }
func (s *recordingSystem) Shutdown()                { s.stopped = true }

func (s *recordingSystem) Update(dt float32) {
	s.updates = append(s.updates, dt)
	if s.log != nil {
		*s.log = append(*s.log, s.name)
	}
}

type otherSystem struct{ recordingSystem }

type thirdSystem struct{ recordingSystem }

func TestRegisterSystemIdempotent(t *testing.T) {
	w := NewWorld(nil)
	first := RegisterSystem(w, &recordingSystem{})
	second := RegisterSystem(w, &recordingSystem{})
	if first != second {
		t.Fatal("second registration returned a new instance")
	}
	if first.inits != 1 {
		t.Fatalf("Init ran %d times", first.inits)
	}
	if w.SystemCount() != 1 {
		t.Fatalf("SystemCount = %d", w.SystemCount())
	}
	got, ok := GetSystem[*recordingSystem](w)
	if !ok || got != first {
		t.Fatal("GetSystem did not return the registered instance")
	}
	if _, ok := GetSystem[*otherSystem](w); ok {
		t.Fatal("GetSystem found an unregistered type")
	}
}

func TestSetSystemSignatureUnregistered(t *testing.T) {
	w := NewWorld(nil)
	err := SetSystemSignature[*otherSystem](w, Signature{})
	if !eris.Is(err, ErrUnregisteredSystem) {
		t.Fatalf("err = %v", err)
	}
}

func TestMembershipFollowsSignature(t *testing.T) {
	w := NewWorld(nil)
	sys := RegisterSystem(w, &recordingSystem{})
	sig := NewSignature(ComponentTypeOf[position](w), ComponentTypeOf[velocity](w))
	if err := SetSystemSignature[*recordingSystem](w, sig); err != nil {
		t.Fatal(err)
	}

	a, b := w.CreateEntity(), w.CreateEntity()
	_ = AddComponent(w, a, position{})
	_ = AddComponent(w, a, velocity{})
	_ = AddComponent(w, a, tag{})
	_ = AddComponent(w, b, position{})
	if sys.EntityCount() != 0 {
		t.Fatal("membership changed before flush")
	}
	w.Flush()

	if !sys.Tracks(a) || sys.Tracks(b) {
		t.Fatalf("tracked = %v", sys.Entities())
	}
	if !reflect.DeepEqual(sys.added, []Entity{a}) {
		t.Fatalf("added = %v", sys.added)
	}

	RemoveComponent[velocity](w, a)
	_ = AddComponent(w, b, velocity{})
	w.Flush()
	if sys.Tracks(a) || !sys.Tracks(b) {
		t.Fatalf("tracked = %v", sys.Entities())
	}
	if !reflect.DeepEqual(sys.removed, []Entity{a}) {
		t.Fatalf("removed = %v", sys.removed)
	}

	// Re-adding a component an entity already has is not a transition.
	_ = AddComponent(w, b, velocity{1, 1})
	w.Flush()
	if len(sys.added) != 2 {
		t.Fatalf("added fired %d times, want 2", len(sys.added))
	}

	w.DestroyEntity(b)
	if sys.Tracks(b) || len(sys.removed) != 2 {
		t.Fatalf("destroy did not remove membership: %v", sys.removed)
	}
	w.DestroyEntity(a) // not a member; no hook
	if len(sys.removed) != 2 {
		t.Fatalf("removed fired for non-member: %v", sys.removed)
	}
}

func TestSignatureChangeReevaluates(t *testing.T) {
	w := NewWorld(nil)
	a, b := w.CreateEntity(), w.CreateEntity()
	_ = AddComponent(w, a, position{})
	w.Flush()

	sys := RegisterSystem(w, &recordingSystem{})
	// Empty signature matches every live entity.
	if !reflect.DeepEqual(sys.Entities(), []Entity{a, b}) {
		t.Fatalf("tracked = %v", sys.Entities())
	}

	_ = SetSystemSignature[*recordingSystem](w, NewSignature(ComponentTypeOf[position](w)))
	if !reflect.DeepEqual(sys.Entities(), []Entity{a}) {
		t.Fatalf("tracked = %v", sys.Entities())
	}
	if !reflect.DeepEqual(sys.removed, []Entity{b}) {
		t.Fatalf("removed = %v", sys.removed)
	}

	c := w.CreateEntity()
	if sys.Tracks(c) {
		t.Fatal("new empty entity matched a non-empty signature")
	}
}

func TestEntitiesAscending(t *testing.T) {
	w := NewWorld(nil)
	sys := RegisterSystem(w, &recordingSystem{})
	_ = SetSystemSignature[*recordingSystem](w, NewSignature(ComponentTypeOf[tag](w)))

	var ids []Entity
	for i := 0; i < 5; i++ {
		ids = append(ids, w.CreateEntity())
	}
	for i := len(ids) - 1; i >= 0; i-- {
		_ = AddComponent(w, ids[i], tag{})
	}
	w.Flush()
	if !reflect.DeepEqual(sys.Entities(), ids) {
		t.Fatalf("tracked = %v, want %v", sys.Entities(), ids)
	}
}

type spawningSystem struct {
	SystemBase
	w *World
}

func (s *spawningSystem) Init(w *World) { s.w = w }

func (s *spawningSystem) OnEntityAdded(e Entity) {
	_ = AddComponent(s.w, e, velocity{})
}

func (s *spawningSystem) OnEntityRemoved(Entity) {}

func TestFlushDefersReentrantCommands(t *testing.T) {
	w := NewWorld(nil)
	RegisterSystem(w, &spawningSystem{})
	_ = SetSystemSignature[*spawningSystem](w, NewSignature(ComponentTypeOf[position](w)))

	e := w.CreateEntity()
	_ = AddComponent(w, e, position{})
	w.Flush()

	if HasComponent[velocity](w, e) {
		t.Fatal("command queued during flush was applied by the same flush")
	}
	if w.PendingOperationCount() != 1 {
		t.Fatalf("pending = %d, want 1", w.PendingOperationCount())
	}
	w.Flush()
	if !HasComponent[velocity](w, e) {
		t.Fatal("deferred command never applied")
	}
}

func TestUpdateOrderAndEnabled(t *testing.T) {
	w := NewWorld(nil)
	var order []string

	late := &recordingSystem{log: &order, name: "late"}
	late.SetPriority(10)
	early := &otherSystem{recordingSystem{log: &order, name: "early"}}
	early.SetPriority(-5)
	mid := &thirdSystem{recordingSystem{log: &order, name: "mid"}}

	RegisterSystem(w, late)
	RegisterSystem(w, early)
	RegisterSystem(w, mid)

	w.Update(0.5)
	if !reflect.DeepEqual(order, []string{"early", "mid", "late"}) {
		t.Fatalf("order = %v", order)
	}

	mid.SetEnabled(false)
	order = order[:0]
	w.Update(0.25)
	w.Render()
	if !reflect.DeepEqual(order, []string{"early", "late"}) {
		t.Fatalf("order with mid disabled = %v", order)
	}
	if mid.renders != 0 || late.renders != 1 {
		t.Fatalf("renders: mid=%d late=%d", mid.renders, late.renders)
	}
	if late.updates[1] != 0.25 {
		t.Fatalf("dt = %v", late.updates[1])
	}

	// Priority changes after registration take effect on the next dispatch.
	mid.SetEnabled(true)
	mid.SetPriority(20)
	order = order[:0]
	w.Update(0)
	if !reflect.DeepEqual(order, []string{"early", "late", "mid"}) {
		t.Fatalf("order after reprioritise = %v", order)
	}

	w.Shutdown()
	if !late.stopped || !early.stopped || !mid.stopped {
		t.Fatal("Shutdown hook skipped")
	}
	if w.SystemCount() != 0 {
		t.Fatalf("SystemCount after shutdown = %d", w.SystemCount())
	}
}
