package system

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/uniengine/simcore/internal/component"
	"github.com/uniengine/simcore/internal/core/ecs"
	"github.com/uniengine/simcore/internal/core/event"
	coresys "github.com/uniengine/simcore/internal/core/system"
	"github.com/uniengine/simcore/internal/physics"
)

// PhysicsStats summarises the last step.
type PhysicsStats struct {
	Integrated int
	Tested     int
	Contacts   int
	Triggers   int
}

// PhysicsSystem integrates rigidbodies and resolves box collisions for every
// entity with a Transform2D and a BoxCollider2D. Entities without a
// Rigidbody2D, with mass <= 0, or with a static collider take part in
// collisions but never move.
// Phase PhasePhysics.
type PhysicsSystem struct {
	ecs.SystemBase
	world   *ecs.World
	bus     *event.Bus
	log     *zap.Logger
	gravity mgl32.Vec2

	ids       []ecs.Entity
	bodies    []physics.Body
	colliders []component.BoxCollider2D
	stats     PhysicsStats
}

func NewPhysicsSystem(bus *event.Bus, log *zap.Logger) *PhysicsSystem {
	if log == nil {
		log = zap.NewNop()
	}
	s := &PhysicsSystem{bus: bus, log: log, gravity: physics.DefaultGravity}
	s.SetPriority(coresys.PhasePhysics.Priority())
	return s
}

func (s *PhysicsSystem) Init(w *ecs.World) { s.world = w }

func (s *PhysicsSystem) SetGravity(g mgl32.Vec2) { s.gravity = g }
func (s *PhysicsSystem) Gravity() mgl32.Vec2     { return s.gravity }
func (s *PhysicsSystem) Stats() PhysicsStats     { return s.stats }

// RequiredSignature is Transform2D + BoxCollider2D.
func (s *PhysicsSystem) RequiredSignature(w *ecs.World) ecs.Signature {
	return ecs.NewSignature(
		ecs.ComponentTypeOf[component.Transform2D](w),
		ecs.ComponentTypeOf[component.BoxCollider2D](w),
	)
}

// Update integrates every body first, then tests each unordered pair once in
// ascending entity order and resolves the overlapping ones. Tracked entities
// missing a transform or collider are ignored.
func (s *PhysicsSystem) Update(dt float32) {
	s.stats = PhysicsStats{}
	transforms := ecs.Components[component.Transform2D](s.world)
	colliders := ecs.Components[component.BoxCollider2D](s.world)
	rigidbodies := ecs.Components[component.Rigidbody2D](s.world)
	if transforms == nil || colliders == nil {
		return
	}

	s.ids = s.ids[:0]
	s.bodies = s.bodies[:0]
	s.colliders = s.colliders[:0]
	for _, e := range s.Entities() {
		t, ok := transforms.Get(e)
		if !ok {
			continue
		}
		col, ok := colliders.Get(e)
		if !ok {
			continue
		}
		rb := s.rigidbody(rigidbodies, e)
		if movable(rb, col) {
			physics.Integrate(t, rb, s.gravity, dt)
			s.stats.Integrated++
		}
		s.ids = append(s.ids, e)
		s.bodies = append(s.bodies, physics.NewBody(t, rb, col))
		s.colliders = append(s.colliders, *col)
	}

	for i := 0; i < len(s.ids); i++ {
		for j := i + 1; j < len(s.ids); j++ {
			s.collide(s.ids[i], s.ids[j], i, j)
		}
	}

	for i, e := range s.ids {
		t, _ := transforms.Get(e)
		t.Position = s.bodies[i].Position
		rb := s.rigidbody(rigidbodies, e)
		if movable(rb, &s.colliders[i]) {
			rb.Velocity = s.bodies[i].Velocity
			rb.AngularVelocity = s.bodies[i].AngularVelocity
		}
	}
}

// movable bodies have a rigidbody with positive mass on a non-static collider.
// Everything else is neither integrated nor written back.
func movable(rb *component.Rigidbody2D, col *component.BoxCollider2D) bool {
	return rb != nil && !col.IsStatic && rb.InverseMass() > 0
}

func (s *PhysicsSystem) rigidbody(store *ecs.ComponentStorage[component.Rigidbody2D], e ecs.Entity) *component.Rigidbody2D {
	if store == nil {
		return nil
	}
	rb, _ := store.Get(e)
	return rb
}

func (s *PhysicsSystem) collide(ea, eb ecs.Entity, i, j int) {
	a, b := &s.bodies[i], &s.bodies[j]
	ca, cb := &s.colliders[i], &s.colliders[j]
	trigger := ca.IsTrigger || cb.IsTrigger
	if !trigger && a.Immovable() && b.Immovable() {
		return
	}
	s.stats.Tested++
	contact, ok := physics.Overlap(a.Shape(ca), b.Shape(cb))
	if !ok {
		return
	}

	if trigger {
		s.stats.Triggers++
		if ca.IsTrigger {
			event.Emit(s.bus, event.Trigger{Trigger: ea, Other: eb})
		}
		if cb.IsTrigger {
			event.Emit(s.bus, event.Trigger{Trigger: eb, Other: ea})
		}
		return
	}

	imp := physics.Resolve(a, b, contact)
	s.stats.Contacts++
	event.Emit(s.bus, event.Collision{
		A:      ea,
		B:      eb,
		Normal: contact.Normal,
		Depth:  contact.Depth,
		Point:  contact.Point,
	})
	if ce := s.log.Check(zapcore.DebugLevel, "contact"); ce != nil {
		ce.Write(
			zap.Uint32("a", uint32(ea)),
			zap.Uint32("b", uint32(eb)),
			zap.Float32("depth", contact.Depth),
			zap.Float32("jn", imp.Normal),
			zap.Float32("jt", imp.Tangent),
		)
	}
}
