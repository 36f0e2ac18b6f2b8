package event

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/uniengine/simcore/internal/core/ecs"
)

// Collision is emitted for every resolved contact. Normal points from B
// towards A.
type Collision struct {
	A, B   ecs.Entity
	Normal mgl32.Vec2
	Depth  float32
	Point  mgl32.Vec2
}

// Trigger is emitted when a trigger collider overlaps another collider.
// Trigger pairs are never resolved.
type Trigger struct {
	Trigger ecs.Entity
	Other   ecs.Entity
}

// Grabbed and Released bracket a pointer drag.
type Grabbed struct {
	Entity ecs.Entity
	Point  mgl32.Vec2
}

type Released struct {
	Entity ecs.Entity
}
