package component

import "github.com/go-gl/mathgl/mgl32"

// Transform2D places an entity in world space. Rotation is in degrees,
// counter-clockwise.
type Transform2D struct {
	Position mgl32.Vec2
	Scale    mgl32.Vec2
	Rotation float32
}

func NewTransform2D(x, y float32) Transform2D {
	return Transform2D{
		Position: mgl32.Vec2{x, y},
		Scale:    mgl32.Vec2{1, 1},
	}
}
