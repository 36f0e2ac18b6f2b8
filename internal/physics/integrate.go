package physics

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/uniengine/simcore/internal/component"
)

// DefaultGravity is earth gravity with +y up.
var DefaultGravity = mgl32.Vec2{0, -9.81}

// dragThreshold is the speed below which drag is not applied.
const dragThreshold = 0.01

// Integrate advances one body by dt: gravity, linear drag, angular drag, then
// position and rotation.
func Integrate(t *component.Transform2D, rb *component.Rigidbody2D, gravity mgl32.Vec2, dt float32) {
	if rb.UseGravity {
		rb.Velocity = rb.Velocity.Add(gravity.Mul(rb.GravityScale * dt))
	}
	if speed := rb.Velocity.Len(); speed > dragThreshold {
		rb.Velocity = rb.Velocity.Add(rb.Velocity.Mul(-rb.Drag * speed * dt))
	}
	if w := abs(rb.AngularVelocity); w > dragThreshold {
		rb.AngularVelocity += -rb.AngularVelocity * rb.AngularDrag * w * dt
	}
	t.Position = t.Position.Add(rb.Velocity.Mul(dt))
	t.Rotation += mgl32.RadToDeg(rb.AngularVelocity * dt)
}
