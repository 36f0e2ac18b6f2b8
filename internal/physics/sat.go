package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// featureTolerance is how close two corners' support distances must be for
// the pair to count as an edge facing the query direction.
const featureTolerance = 1e-2

// Contact describes an overlap between boxes A and B. Normal is unit length
// and points from B towards A, so moving A along Normal by Depth separates them.
type Contact struct {
	Normal mgl32.Vec2
	Depth  float32
	Point  mgl32.Vec2
}

// Overlap runs the separating axis test on the two face axes of each box.
// Touching boxes (zero overlap on some axis) do not collide.
func Overlap(a, b OBB) (Contact, bool) {
	if a.Degenerate() || b.Degenerate() {
		return Contact{}, false
	}
	axes := [4]mgl32.Vec2{a.Axes[0], a.Axes[1], b.Axes[0], b.Axes[1]}

	depth := float32(math.MaxFloat32)
	var normal mgl32.Vec2
	for _, axis := range axes {
		ca, ra := a.Project(axis)
		cb, rb := b.Project(axis)
		overlap := ra + rb - abs(ca-cb)
		if overlap <= 0 {
			return Contact{}, false
		}
		if overlap < depth {
			depth = overlap
			normal = axis
		}
	}
	if a.Center.Sub(b.Center).Dot(normal) < 0 {
		normal = normal.Mul(-1)
	}
	return Contact{
		Normal: normal,
		Depth:  depth,
		Point:  contactPoint(a, b, normal, depth),
	}, true
}

// feature is the part of a box furthest along a direction: one corner, or two
// corners forming the edge that faces that direction.
type feature struct {
	v [2]mgl32.Vec2
	n int
}

func (f feature) center() mgl32.Vec2 {
	if f.n == 1 {
		return f.v[0]
	}
	return f.v[0].Add(f.v[1]).Mul(0.5)
}

func support(o OBB, dir mgl32.Vec2) feature {
	corners := o.Corners()
	best := float32(-math.MaxFloat32)
	for _, c := range corners {
		if d := c.Dot(dir); d > best {
			best = d
		}
	}
	var f feature
	for _, c := range corners {
		if best-c.Dot(dir) <= featureTolerance && f.n < 2 {
			f.v[f.n] = c
			f.n++
		}
	}
	return f
}

// contactPoint takes the midpoint between A's deepest feature along -normal
// and B's along +normal. Two corners give the plain midpoint of the two
// support vertices. A corner against an edge yields the corner moved half the
// depth onto the edge; two edges yield the middle of their overlap.
func contactPoint(a, b OBB, normal mgl32.Vec2, depth float32) mgl32.Vec2 {
	fa := support(a, normal.Mul(-1))
	fb := support(b, normal)

	switch {
	case fa.n == 1 && fb.n == 2:
		return fa.v[0].Add(normal.Mul(depth / 2))
	case fa.n == 2 && fb.n == 1:
		return fb.v[0].Sub(normal.Mul(depth / 2))
	case fa.n == 2 && fb.n == 2:
		tangent := mgl32.Vec2{-normal.Y(), normal.X()}
		loA, hiA := span(fa, tangent)
		loB, hiB := span(fb, tangent)
		lo, hi := max(loA, loB), min(hiA, hiB)
		if lo > hi {
			break
		}
		along := (lo + hi) / 2
		across := (fa.center().Dot(normal) + fb.center().Dot(normal)) / 2
		return tangent.Mul(along).Add(normal.Mul(across))
	}
	return fa.center().Add(fb.center()).Mul(0.5)
}

func span(f feature, axis mgl32.Vec2) (lo, hi float32) {
	lo, hi = f.v[0].Dot(axis), f.v[0].Dot(axis)
	for i := 1; i < f.n; i++ {
		d := f.v[i].Dot(axis)
		lo, hi = min(lo, d), max(hi, d)
	}
	return lo, hi
}
