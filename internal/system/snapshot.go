package system

import (
	"github.com/uniengine/simcore/internal/core/ecs"
	coresys "github.com/uniengine/simcore/internal/core/system"
	"github.com/uniengine/simcore/internal/inspect"
)

// SnapshotSystem stands in for a render layer: on Render it copies world
// state every `every` frames so readers never touch live storage.
// Phase PhaseRender.
type SnapshotSystem struct {
	ecs.SystemBase
	world  *ecs.World
	every  uint64
	frames uint64
	last   inspect.Snapshot
}

func NewSnapshotSystem(every int) *SnapshotSystem {
	if every < 1 {
		every = 1
	}
	s := &SnapshotSystem{every: uint64(every)}
	s.SetPriority(coresys.PhaseRender.Priority())
	return s
}

func (s *SnapshotSystem) Init(w *ecs.World) { s.world = w }

func (s *SnapshotSystem) Render() {
	s.frames++
	if s.frames%s.every == 0 {
		s.last = inspect.Take(s.world)
	}
}

func (s *SnapshotSystem) Last() inspect.Snapshot { return s.last }
func (s *SnapshotSystem) Frames() uint64         { return s.frames }
