package component

import "github.com/go-gl/mathgl/mgl32"

// BoxCollider2D is an oriented rectangle centred at the entity position plus
// Offset and rotated with the entity.
type BoxCollider2D struct {
	Size      mgl32.Vec2
	Offset    mgl32.Vec2
	IsTrigger bool
	IsStatic  bool
}

func NewBoxCollider2D(w, h float32) BoxCollider2D {
	return BoxCollider2D{Size: mgl32.Vec2{w, h}}
}
