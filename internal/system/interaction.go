package system

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/uniengine/simcore/internal/component"
	"github.com/uniengine/simcore/internal/core/ecs"
	"github.com/uniengine/simcore/internal/core/event"
	coresys "github.com/uniengine/simcore/internal/core/system"
	"github.com/uniengine/simcore/internal/physics"
)

// InteractionConfig tunes the drag spring and the screen-to-world mapping.
type InteractionConfig struct {
	Stiffness      float32
	Damping        float32
	OrthoHeight    float32
	ViewportWidth  int
	ViewportHeight int
}

func DefaultInteractionConfig() InteractionConfig {
	return InteractionConfig{
		Stiffness:      20,
		Damping:        0.8,
		OrthoHeight:    10,
		ViewportWidth:  1280,
		ViewportHeight: 720,
	}
}

// InteractionSystem lets a pointer pick up a body and drag it on a damped
// spring. The driver feeds pointer state through SetPointer; the system never
// polls input itself. While held the body ignores gravity; its gravity flag is
// restored on release. Phase PhaseInput.
type InteractionSystem struct {
	ecs.SystemBase
	world *ecs.World
	bus   *event.Bus
	log   *zap.Logger
	cfg   InteractionConfig

	pointer     mgl32.Vec2
	pressed     bool
	grabbed     ecs.Entity
	offset      mgl32.Vec2
	usedGravity bool
}

func NewInteractionSystem(cfg InteractionConfig, bus *event.Bus, log *zap.Logger) *InteractionSystem {
	if log == nil {
		log = zap.NewNop()
	}
	s := &InteractionSystem{cfg: cfg, bus: bus, log: log}
	s.SetPriority(coresys.PhaseInput.Priority())
	return s
}

func (s *InteractionSystem) Init(w *ecs.World) { s.world = w }

// RequiredSignature is Transform2D + BoxCollider2D + Rigidbody2D.
func (s *InteractionSystem) RequiredSignature(w *ecs.World) ecs.Signature {
	return ecs.NewSignature(
		ecs.ComponentTypeOf[component.Transform2D](w),
		ecs.ComponentTypeOf[component.BoxCollider2D](w),
		ecs.ComponentTypeOf[component.Rigidbody2D](w),
	)
}

// SetPointer records the pointer position in world units and the button state.
func (s *InteractionSystem) SetPointer(world mgl32.Vec2, pressed bool) {
	s.pointer = world
	s.pressed = pressed
}

// Grabbed returns the entity being dragged, or InvalidEntity.
func (s *InteractionSystem) Grabbed() ecs.Entity { return s.grabbed }

// ScreenToWorld maps window pixel coordinates (origin top-left, y down) to
// world units centred on the origin.
func (s *InteractionSystem) ScreenToWorld(screen mgl32.Vec2, windowWidth, windowHeight int) mgl32.Vec2 {
	nx := screen.X()/float32(windowWidth)*2 - 1
	ny := 1 - screen.Y()/float32(windowHeight)*2
	aspect := float32(s.cfg.ViewportWidth) / float32(s.cfg.ViewportHeight)
	return mgl32.Vec2{nx * s.cfg.OrthoHeight * aspect, ny * s.cfg.OrthoHeight}
}

// FindEntityAt returns the lowest-id movable body whose box contains p.
func (s *InteractionSystem) FindEntityAt(p mgl32.Vec2) ecs.Entity {
	for _, e := range s.Entities() {
		t, col, _, ok := ecs.View3[component.Transform2D, component.BoxCollider2D, component.Rigidbody2D](s.world, e)
		if !ok || col.IsStatic {
			continue
		}
		if physics.NewOBB(t.Position, col.Offset, col.Size, t.Rotation).Contains(p) {
			return e
		}
	}
	return ecs.InvalidEntity
}

func (s *InteractionSystem) Update(_ float32) {
	switch {
	case s.pressed && s.grabbed == ecs.InvalidEntity:
		s.grab()
	case !s.pressed && s.grabbed != ecs.InvalidEntity:
		s.release()
	}
	if s.grabbed == ecs.InvalidEntity {
		return
	}
	t, _, rb, ok := ecs.View3[component.Transform2D, component.BoxCollider2D, component.Rigidbody2D](s.world, s.grabbed)
	if !ok {
		s.grabbed = ecs.InvalidEntity
		return
	}
	target := s.pointer.Add(s.offset)
	rb.Velocity = target.Sub(t.Position).Mul(s.cfg.Stiffness).Sub(rb.Velocity.Mul(s.cfg.Damping))
	rb.UseGravity = false
}

func (s *InteractionSystem) grab() {
	e := s.FindEntityAt(s.pointer)
	if e == ecs.InvalidEntity {
		return
	}
	t, _, rb, _ := ecs.View3[component.Transform2D, component.BoxCollider2D, component.Rigidbody2D](s.world, e)
	s.grabbed = e
	s.usedGravity = rb.UseGravity
	s.offset = t.Position.Sub(s.pointer)
	event.Emit(s.bus, event.Grabbed{Entity: e, Point: s.pointer})
	s.log.Debug("grab", zap.Uint32("entity", uint32(e)))
}

func (s *InteractionSystem) release() {
	e := s.grabbed
	s.grabbed = ecs.InvalidEntity
	if rb, err := ecs.GetComponent[component.Rigidbody2D](s.world, e); err == nil {
		rb.UseGravity = s.usedGravity
	}
	event.Emit(s.bus, event.Released{Entity: e})
	s.log.Debug("release", zap.Uint32("entity", uint32(e)))
}

// OnEntityRemoved drops the grab if the held entity leaves the system.
func (s *InteractionSystem) OnEntityRemoved(e ecs.Entity) {
	if e == s.grabbed {
		s.grabbed = ecs.InvalidEntity
	}
}

func (s *InteractionSystem) OnEntityAdded(ecs.Entity) {}
