package component

import "github.com/go-gl/mathgl/mgl32"

// Rigidbody2D is the dynamic state of a simulated body.
// AngularVelocity is in radians per second.
type Rigidbody2D struct {
	Velocity        mgl32.Vec2
	AngularVelocity float32
	GravityScale    float32
	Mass            float32
	Restitution     float32 // [0,1]
	Friction        float32 // [0,1]
	Drag            float32
	AngularDrag     float32
	UseGravity      bool
}

// DefaultRigidbody2D returns a unit-mass body at rest that falls under gravity.
func DefaultRigidbody2D() Rigidbody2D {
	return Rigidbody2D{
		GravityScale: 1,
		Mass:         1,
		Restitution:  0.3,
		Friction:     0.3,
		Drag:         0.01,
		AngularDrag:  0.05,
		UseGravity:   true,
	}
}

// InverseMass is zero for non-positive mass, which makes the body immovable.
func (rb *Rigidbody2D) InverseMass() float32 {
	if rb.Mass <= 0 {
		return 0
	}
	return 1 / rb.Mass
}

// Inertia of a solid rectangle of the given size about its centre.
func (rb *Rigidbody2D) Inertia(size mgl32.Vec2) float32 {
	if rb.Mass <= 0 {
		return 0
	}
	return rb.Mass / 12 * (size.X()*size.X() + size.Y()*size.Y())
}
