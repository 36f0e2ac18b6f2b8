package system

import (
	"go.uber.org/zap"

	"github.com/uniengine/simcore/internal/component"
	"github.com/uniengine/simcore/internal/core/ecs"
	coresys "github.com/uniengine/simcore/internal/core/system"
)

// CleanupSystem marks entities that fell below the kill plane for
// destruction. The Runner destroys them at the end of the step.
// Phase PhasePost.
type CleanupSystem struct {
	ecs.SystemBase
	world *ecs.World
	log   *zap.Logger
	killY float32
}

func NewCleanupSystem(killY float32, log *zap.Logger) *CleanupSystem {
	if log == nil {
		log = zap.NewNop()
	}
	s := &CleanupSystem{killY: killY, log: log}
	s.SetPriority(coresys.PhasePost.Priority())
	return s
}

func (s *CleanupSystem) Init(w *ecs.World) { s.world = w }

// RequiredSignature is Transform2D + Rigidbody2D.
func (s *CleanupSystem) RequiredSignature(w *ecs.World) ecs.Signature {
	return ecs.NewSignature(
		ecs.ComponentTypeOf[component.Transform2D](w),
		ecs.ComponentTypeOf[component.Rigidbody2D](w),
	)
}

func (s *CleanupSystem) Update(_ float32) {
	for _, e := range s.Entities() {
		t, err := ecs.GetComponent[component.Transform2D](s.world, e)
		if err != nil {
			continue
		}
		if t.Position.Y() < s.killY {
			s.world.MarkForDestruction(e)
			s.log.Debug("below kill plane", zap.Uint32("entity", uint32(e)), zap.Float32("y", t.Position.Y()))
		}
	}
}
