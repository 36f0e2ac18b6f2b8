package scene

import (
	"go.uber.org/zap"

	"github.com/uniengine/simcore/internal/core/ecs"
	"github.com/uniengine/simcore/internal/data"
)

func f32(v float32) *float32 { return &v }

// BoxAndPlatformDef is the built-in demo: a unit box rotated 45° dropped from
// (0,3) onto a static 5×0.5 platform at (0,-2).
func BoxAndPlatformDef() *data.SceneDef {
	return &data.SceneDef{
		Name:      "box-and-platform",
		TimeScale: f32(1),
		Entities: []data.EntityDef{
			{
				Name:      "box",
				Transform: &data.TransformDef{Position: [2]float32{0, 3}, Rotation: 45},
				Collider:  &data.ColliderDef{Size: [2]float32{1, 1}},
				Rigidbody: &data.RigidbodyDef{Mass: f32(1), Restitution: f32(0.3)},
			},
			{
				Name:      "platform",
				Transform: &data.TransformDef{Position: [2]float32{0, -2}},
				Collider:  &data.ColliderDef{Size: [2]float32{5, 0.5}, Static: true},
			},
		},
	}
}

// BoxAndPlatform builds the demo scene into w.
func BoxAndPlatform(w *ecs.World, log *zap.Logger) (*Scene, error) {
	return Build(w, BoxAndPlatformDef(), log)
}
