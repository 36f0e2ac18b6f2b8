package physics

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/uniengine/simcore/internal/component"
)

const epsilon = 1e-6

// Body is the solver's working copy of one collider's rigid state.
// Immovable bodies have zero inverse mass and inverse inertia.
type Body struct {
	Position        mgl32.Vec2
	Rotation        float32
	Velocity        mgl32.Vec2
	AngularVelocity float32
	InvMass         float32
	InvInertia      float32
	Restitution     float32
	Friction        float32
}

// NewBody copies the state the solver needs. A nil rigidbody or a static
// collider gives an immovable body. Without a rigidbody the material is
// neutral (restitution 1, friction 0) so the other body's values win.
func NewBody(t *component.Transform2D, rb *component.Rigidbody2D, col *component.BoxCollider2D) Body {
	b := Body{Position: t.Position, Rotation: t.Rotation}
	if rb == nil {
		b.Restitution = 1
		return b
	}
	b.Restitution = rb.Restitution
	b.Friction = rb.Friction
	if col.IsStatic {
		return b
	}
	b.Velocity = rb.Velocity
	b.AngularVelocity = rb.AngularVelocity
	b.InvMass = rb.InverseMass()
	if i := rb.Inertia(col.Size); i > epsilon {
		b.InvInertia = 1 / i
	}
	return b
}

func (b *Body) Immovable() bool { return b.InvMass == 0 }

// Shape returns the body's box for a collider.
func (b *Body) Shape(col *component.BoxCollider2D) OBB {
	return NewOBB(b.Position, col.Offset, col.Size, b.Rotation)
}

// Impulse reports what Resolve applied. Both are zero for skipped contacts.
type Impulse struct {
	Normal  float32
	Tangent float32
}

// Resolve separates a and b along the contact normal and applies restitution
// and Coulomb friction impulses at the contact point. Degenerate configurations
// (both immovable, zero effective mass, separating contact, no sliding) are
// skipped rather than reported.
func Resolve(a, b *Body, c Contact) Impulse {
	invSum := a.InvMass + b.InvMass
	if invSum <= 0 {
		return Impulse{}
	}
	n := c.Normal
	rA := c.Point.Sub(a.Position)
	rB := c.Point.Sub(b.Position)

	// Positional correction, split by inverse mass; an immovable body takes none.
	corr := c.Depth / invSum
	a.Position = a.Position.Add(n.Mul(corr * a.InvMass))
	b.Position = b.Position.Sub(n.Mul(corr * b.InvMass))

	vn := relativeVelocity(a, b, rA, rB).Dot(n)
	if vn >= 0 {
		return Impulse{}
	}
	rAn, rBn := cross(rA, n), cross(rB, n)
	k := invSum + rAn*rAn*a.InvInertia + rBn*rBn*b.InvInertia
	if k <= epsilon {
		return Impulse{}
	}
	e := min(a.Restitution, b.Restitution)
	jn := -(1 + e) * vn / k
	applyImpulse(a, b, rA, rB, n.Mul(jn))

	// Friction from the post-impulse sliding velocity.
	vr := relativeVelocity(a, b, rA, rB)
	tangent := vr.Sub(n.Mul(vr.Dot(n)))
	if tangent.Len() < epsilon {
		return Impulse{Normal: jn}
	}
	t := tangent.Normalize()
	rAt, rBt := cross(rA, t), cross(rB, t)
	kt := invSum + rAt*rAt*a.InvInertia + rBt*rBt*b.InvInertia
	if kt <= epsilon {
		return Impulse{Normal: jn}
	}
	jt := -vr.Dot(t) / kt
	limit := max(a.Friction, b.Friction) * jn
	jt = mgl32.Clamp(jt, -limit, limit)
	applyImpulse(a, b, rA, rB, t.Mul(jt))

	return Impulse{Normal: jn, Tangent: jt}
}

// relativeVelocity is the velocity of A's contact point relative to B's.
func relativeVelocity(a, b *Body, rA, rB mgl32.Vec2) mgl32.Vec2 {
	va := a.Velocity.Add(crossSV(a.AngularVelocity, rA))
	vb := b.Velocity.Add(crossSV(b.AngularVelocity, rB))
	return va.Sub(vb)
}

// applyImpulse pushes A by p and B by -p at their lever arms.
func applyImpulse(a, b *Body, rA, rB, p mgl32.Vec2) {
	a.Velocity = a.Velocity.Add(p.Mul(a.InvMass))
	a.AngularVelocity += cross(rA, p) * a.InvInertia
	b.Velocity = b.Velocity.Sub(p.Mul(b.InvMass))
	b.AngularVelocity -= cross(rB, p) * b.InvInertia
}
