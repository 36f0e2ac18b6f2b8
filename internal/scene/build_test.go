package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/uniengine/simcore/internal/component"
	"github.com/uniengine/simcore/internal/core/ecs"
	"github.com/uniengine/simcore/internal/data"
)

func TestBoxAndPlatform(t *testing.T) {
	w := ecs.NewWorld(nil)
	sc, err := BoxAndPlatform(w, nil)
	if err != nil {
		t.Fatal(err)
	}
	if w.PendingOperationCount() != 0 {
		t.Fatal("Build left commands queued")
	}
	if w.EntityCount() != 3 {
		t.Fatalf("EntityCount = %d, want 3 (root, box, platform)", w.EntityCount())
	}

	box, ok := sc.Lookup("box")
	if !ok {
		t.Fatal("box missing")
	}
	tr, err := ecs.GetComponent[component.Transform2D](w, box)
	if err != nil {
		t.Fatal(err)
	}
	if tr.Position != (mgl32.Vec2{0, 3}) || tr.Rotation != 45 || tr.Scale != (mgl32.Vec2{1, 1}) {
		t.Fatalf("box transform = %+v", *tr)
	}
	rb, err := ecs.GetComponent[component.Rigidbody2D](w, box)
	if err != nil {
		t.Fatal(err)
	}
	want := component.DefaultRigidbody2D()
	if *rb != want {
		t.Fatalf("box rigidbody = %+v, want defaults", *rb)
	}

	platform, _ := sc.Lookup("platform")
	if ecs.HasComponent[component.Rigidbody2D](w, platform) {
		t.Fatal("platform has a rigidbody")
	}
	col, _ := ecs.GetComponent[component.BoxCollider2D](w, platform)
	if !col.IsStatic || col.Size != (mgl32.Vec2{5, 0.5}) {
		t.Fatalf("platform collider = %+v", *col)
	}

	if TimeScale(w, sc.Root) != 1 {
		t.Fatal("root time scale")
	}
	if sc.Gravity != nil {
		t.Fatal("gravity override without one in the scene")
	}
}

func TestBuildLayersMaterial(t *testing.T) {
	def, err := data.ParseScene([]byte(`
name: layered
time_scale: 0.25
gravity: [1, -2]
materials:
  ice: { restitution: 0.1, friction: 0.02, drag: 0, angular_drag: 0 }
entities:
  - name: puck
    transform: { position: [1, 2], scale: [2, 2] }
    collider: { size: [1, 1], offset: [0.5, 0] }
    rigidbody: { material: ice, friction: 0.5, use_gravity: false, velocity: [3, 0] }
    script: { handler: glide }
`))
	if err != nil {
		t.Fatal(err)
	}
	w := ecs.NewWorld(nil)
	sc, err := Build(w, def, nil)
	if err != nil {
		t.Fatal(err)
	}
	puck, _ := sc.Lookup("puck")
	rb, _ := ecs.GetComponent[component.Rigidbody2D](w, puck)
	if rb.Restitution != 0.1 || rb.Friction != 0.5 || rb.Drag != 0 || rb.UseGravity || rb.Mass != 1 {
		t.Fatalf("rigidbody = %+v", *rb)
	}
	if rb.Velocity != (mgl32.Vec2{3, 0}) {
		t.Fatalf("velocity = %v", rb.Velocity)
	}
	tr, _ := ecs.GetComponent[component.Transform2D](w, puck)
	if tr.Scale != (mgl32.Vec2{2, 2}) {
		t.Fatalf("scale = %v", tr.Scale)
	}
	s, _ := ecs.GetComponent[component.Script](w, puck)
	if s.Handler != "glide" {
		t.Fatalf("handler = %q", s.Handler)
	}
	n, _ := ecs.GetComponent[component.Name](w, puck)
	if n.Value != "puck" {
		t.Fatalf("name = %q", n.Value)
	}
	if TimeScale(w, sc.Root) != 0.25 {
		t.Fatalf("time scale = %v", TimeScale(w, sc.Root))
	}
	if sc.Gravity == nil || *sc.Gravity != (mgl32.Vec2{1, -2}) {
		t.Fatalf("gravity = %v", sc.Gravity)
	}
}
