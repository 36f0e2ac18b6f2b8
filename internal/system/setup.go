package system

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/uniengine/simcore/internal/core/ecs"
	"github.com/uniengine/simcore/internal/core/event"
	"github.com/uniengine/simcore/internal/scripting"
)

// Options configures the standard system set.
type Options struct {
	Bus           *event.Bus
	Log           *zap.Logger
	Gravity       mgl32.Vec2
	KillY         float32
	Interaction   InteractionConfig
	Scripts       *scripting.Engine // nil disables the script system
	SnapshotEvery int
}

// Set holds the registered systems.
type Set struct {
	Interaction *InteractionSystem
	Script      *ScriptSystem
	Physics     *PhysicsSystem
	Cleanup     *CleanupSystem
	Snapshot    *SnapshotSystem
}

// RegisterAll registers the standard systems on w and sets their signatures.
func RegisterAll(w *ecs.World, opts Options) (*Set, error) {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	set := &Set{}

	set.Interaction = ecs.RegisterSystem(w, NewInteractionSystem(opts.Interaction, opts.Bus, log.Named("interaction")))
	if err := ecs.SetSystemSignature[*InteractionSystem](w, set.Interaction.RequiredSignature(w)); err != nil {
		return nil, err
	}

	if opts.Scripts != nil {
		set.Script = ecs.RegisterSystem(w, NewScriptSystem(opts.Scripts, log.Named("script")))
		if err := ecs.SetSystemSignature[*ScriptSystem](w, set.Script.RequiredSignature(w)); err != nil {
			return nil, err
		}
	}

	set.Physics = ecs.RegisterSystem(w, NewPhysicsSystem(opts.Bus, log.Named("physics")))
	set.Physics.SetGravity(opts.Gravity)
	if err := ecs.SetSystemSignature[*PhysicsSystem](w, set.Physics.RequiredSignature(w)); err != nil {
		return nil, err
	}

	set.Cleanup = ecs.RegisterSystem(w, NewCleanupSystem(opts.KillY, log.Named("cleanup")))
	if err := ecs.SetSystemSignature[*CleanupSystem](w, set.Cleanup.RequiredSignature(w)); err != nil {
		return nil, err
	}

	set.Snapshot = ecs.RegisterSystem(w, NewSnapshotSystem(opts.SnapshotEvery))
	return set, nil
}
