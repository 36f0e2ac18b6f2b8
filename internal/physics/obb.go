// Package physics holds the geometry and impulse math behind the 2D physics
// system: oriented boxes, separating-axis overlap tests, contact points,
// integration and collision response. It knows nothing about the World.
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// OBB is an oriented rectangle. Axes are unit length and orthogonal.
type OBB struct {
	Center      mgl32.Vec2
	Axes        [2]mgl32.Vec2
	HalfExtents mgl32.Vec2
}

// NewOBB builds the box of a collider of the given size whose centre sits at
// position+offset, rotated by rotation degrees.
func NewOBB(position, offset, size mgl32.Vec2, rotation float32) OBB {
	rad := float64(mgl32.DegToRad(rotation))
	c, s := float32(math.Cos(rad)), float32(math.Sin(rad))
	return OBB{
		Center:      position.Add(offset),
		Axes:        [2]mgl32.Vec2{{c, s}, {-s, c}},
		HalfExtents: size.Mul(0.5),
	}
}

// Degenerate boxes have no area and never overlap anything.
func (o OBB) Degenerate() bool {
	return o.HalfExtents.X() <= 0 || o.HalfExtents.Y() <= 0
}

// Corners in counter-clockwise order starting from the (+x,+y) local corner.
func (o OBB) Corners() [4]mgl32.Vec2 {
	ex := o.Axes[0].Mul(o.HalfExtents.X())
	ey := o.Axes[1].Mul(o.HalfExtents.Y())
	return [4]mgl32.Vec2{
		o.Center.Add(ex).Add(ey),
		o.Center.Sub(ex).Add(ey),
		o.Center.Sub(ex).Sub(ey),
		o.Center.Add(ex).Sub(ey),
	}
}

// Project returns the box's centre and radius along axis.
func (o OBB) Project(axis mgl32.Vec2) (center, radius float32) {
	center = o.Center.Dot(axis)
	radius = abs(axis.Dot(o.Axes[0]))*o.HalfExtents.X() +
		abs(axis.Dot(o.Axes[1]))*o.HalfExtents.Y()
	return center, radius
}

// Contains reports whether p lies inside or on the box.
func (o OBB) Contains(p mgl32.Vec2) bool {
	d := p.Sub(o.Center)
	return abs(d.Dot(o.Axes[0])) <= o.HalfExtents.X() &&
		abs(d.Dot(o.Axes[1])) <= o.HalfExtents.Y()
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// cross is the z component of the 3D cross product of a and b.
func cross(a, b mgl32.Vec2) float32 {
	return a.X()*b.Y() - a.Y()*b.X()
}

// crossSV is w × r for a scalar angular velocity w.
func crossSV(w float32, r mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{-w * r.Y(), w * r.X()}
}
