package inspect

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/text/language"

	"github.com/uniengine/simcore/internal/component"
	"github.com/uniengine/simcore/internal/core/ecs"
)

func buildWorld() (*ecs.World, ecs.Entity) {
	w := ecs.NewWorld(nil)
	e := w.CreateEntity()
	_ = ecs.AddComponent(w, e, component.Name{Value: "crate"})
	_ = ecs.AddComponent(w, e, component.NewTransform2D(1, 2))
	_ = ecs.AddComponent(w, e, component.DefaultRigidbody2D())
	bare := w.CreateEntity()
	_ = ecs.AddComponent(w, bare, component.NewBoxCollider2D(1, 1))
	w.Flush()
	return w, e
}

func TestTakeCopiesState(t *testing.T) {
	w, e := buildWorld()
	snap := Take(w)
	if len(snap.Entities) != 2 {
		t.Fatalf("entities = %d", len(snap.Entities))
	}
	st, ok := snap.Find("crate")
	if !ok || st.Entity != e {
		t.Fatal("crate not found")
	}
	if st.Transform == nil || st.Rigidbody == nil || st.Collider != nil {
		t.Fatalf("component presence wrong: %+v", st)
	}
	if len(st.Components) != 3 {
		t.Fatalf("components = %v", st.Components)
	}

	// Mutating the world afterwards does not touch the snapshot.
	tr, _ := ecs.GetComponent[component.Transform2D](w, e)
	tr.Position = mgl32.Vec2{9, 9}
	if st.Transform.Position != (mgl32.Vec2{1, 2}) {
		t.Fatal("snapshot aliases live storage")
	}
}

func TestDigestTracksState(t *testing.T) {
	w1, e1 := buildWorld()
	w2, _ := buildWorld()
	if Digest(Take(w1)) != Digest(Take(w2)) {
		t.Fatal("identical worlds hash differently")
	}

	rb, _ := ecs.GetComponent[component.Rigidbody2D](w1, e1)
	rb.AngularVelocity = 0.5
	if Digest(Take(w1)) == Digest(Take(w2)) {
		t.Fatal("digest ignores angular velocity")
	}
	if len(DigestString(Take(w1))) != 64 {
		t.Fatal("hex digest length")
	}
}

func TestWriteReport(t *testing.T) {
	w, _ := buildWorld()
	var buf bytes.Buffer
	if err := WriteReport(&buf, Take(w), language.English); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"crate", "(1.000, 2.000)", "2 entities", "digest "} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}
