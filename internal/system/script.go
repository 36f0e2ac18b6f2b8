package system

import (
	"errors"

	"go.uber.org/zap"

	"github.com/uniengine/simcore/internal/component"
	"github.com/uniengine/simcore/internal/core/ecs"
	coresys "github.com/uniengine/simcore/internal/core/system"
	"github.com/uniengine/simcore/internal/scripting"
)

// ScriptSystem runs each entity's Lua behaviour before physics so the
// velocities it sets are integrated in the same step. A failing or missing
// handler is logged and skipped; it never aborts the step. Phase PhaseScript.
type ScriptSystem struct {
	ecs.SystemBase
	world  *ecs.World
	engine *scripting.Engine
	log    *zap.Logger
	time   float64
	warned map[string]bool
}

func NewScriptSystem(engine *scripting.Engine, log *zap.Logger) *ScriptSystem {
	if log == nil {
		log = zap.NewNop()
	}
	s := &ScriptSystem{engine: engine, log: log, warned: make(map[string]bool)}
	s.SetPriority(coresys.PhaseScript.Priority())
	return s
}

func (s *ScriptSystem) Init(w *ecs.World) { s.world = w }

// RequiredSignature is Transform2D + Rigidbody2D + Script.
func (s *ScriptSystem) RequiredSignature(w *ecs.World) ecs.Signature {
	return ecs.NewSignature(
		ecs.ComponentTypeOf[component.Transform2D](w),
		ecs.ComponentTypeOf[component.Rigidbody2D](w),
		ecs.ComponentTypeOf[component.Script](w),
	)
}

func (s *ScriptSystem) Update(dt float32) {
	s.time += float64(dt)
	if s.engine == nil {
		return
	}
	for _, e := range s.Entities() {
		t, rb, sc, ok := ecs.View3[component.Transform2D, component.Rigidbody2D, component.Script](s.world, e)
		if !ok || sc.Handler == "" {
			continue
		}
		res, err := s.engine.RunBehavior(sc.Handler, scripting.BehaviorContext{
			Entity:          uint32(e),
			X:               t.Position.X(),
			Y:               t.Position.Y(),
			Rotation:        t.Rotation,
			VX:              rb.Velocity.X(),
			VY:              rb.Velocity.Y(),
			AngularVelocity: rb.AngularVelocity,
			DT:              dt,
			Time:            s.time,
		})
		if err != nil {
			s.report(e, sc.Handler, err)
			continue
		}
		if res.VX != nil {
			rb.Velocity[0] = *res.VX
		}
		if res.VY != nil {
			rb.Velocity[1] = *res.VY
		}
		if res.AngularVelocity != nil {
			rb.AngularVelocity = *res.AngularVelocity
		}
		if res.UseGravity != nil {
			rb.UseGravity = *res.UseGravity
		}
	}
}

// report logs a missing handler once, runtime errors every time.
func (s *ScriptSystem) report(e ecs.Entity, handler string, err error) {
	if errors.Is(err, scripting.ErrNoHandler) {
		if s.warned[handler] {
			return
		}
		s.warned[handler] = true
		s.log.Warn("behaviour handler missing", zap.String("handler", handler))
		return
	}
	s.log.Error("behaviour failed",
		zap.Uint32("entity", uint32(e)),
		zap.String("handler", handler),
		zap.Error(err))
}
