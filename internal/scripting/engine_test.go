package scripting

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestRunBehavior(t *testing.T) {
	e, err := NewEngine("", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()

	err = e.LoadString(`
function hover(ctx)
  if ctx.y < 1 then
    return { vy = 2, use_gravity = false }
  end
  return nil
end
function speed(ctx)
  return { vx = vec_len(ctx.vx, ctx.vy) }
end
`)
	if err != nil {
		t.Fatal(err)
	}

	res, err := e.RunBehavior("hover", BehaviorContext{Y: 0})
	if err != nil {
		t.Fatal(err)
	}
	if res.VY == nil || *res.VY != 2 {
		t.Fatalf("vy = %v", res.VY)
	}
	if res.VX != nil || res.AngularVelocity != nil {
		t.Fatal("unset fields were returned")
	}
	if res.UseGravity == nil || *res.UseGravity {
		t.Fatal("use_gravity not read back")
	}

	res, err = e.RunBehavior("hover", BehaviorContext{Y: 5})
	if err != nil {
		t.Fatal(err)
	}
	if res != (BehaviorResult{}) {
		t.Fatalf("nil return produced %+v", res)
	}

	res, err = e.RunBehavior("speed", BehaviorContext{VX: 3, VY: 4})
	if err != nil {
		t.Fatal(err)
	}
	if res.VX == nil || *res.VX != 5 {
		t.Fatalf("vec_len gave %v", res.VX)
	}
}

func TestRunBehaviorErrors(t *testing.T) {
	e, _ := NewEngine("", nil)
	defer e.Close()
	_ = e.LoadString(`
function broken(ctx) error("boom") end
function wrong(ctx) return 42 end
`)

	if _, err := e.RunBehavior("missing", BehaviorContext{}); !errors.Is(err, ErrNoHandler) {
		t.Fatalf("missing handler: %v", err)
	}
	if _, err := e.RunBehavior("broken", BehaviorContext{}); err == nil {
		t.Fatal("runtime error swallowed")
	}
	if _, err := e.RunBehavior("wrong", BehaviorContext{}); err == nil {
		t.Fatal("non-table result accepted")
	}
	// The VM stays usable after a failed call.
	if !e.HasFunction("broken") || e.HasFunction("missing") {
		t.Fatal("HasFunction mismatch")
	}
}

func TestNewEngineLoadsDirs(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "core"), 0o755); err != nil {
		t.Fatal(err)
	}
	write := func(path, src string) {
		t.Helper()
		if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write(filepath.Join(dir, "core", "util.lua"), "LIFT = 3\n")
	write(filepath.Join(dir, "lift.lua"), "function lift(ctx) return { vy = LIFT } end\n")
	write(filepath.Join(dir, "notes.txt"), "not lua")

	e, err := NewEngine(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()
	res, err := e.RunBehavior("lift", BehaviorContext{})
	if err != nil {
		t.Fatal(err)
	}
	if res.VY == nil || *res.VY != 3 {
		t.Fatalf("vy = %v", res.VY)
	}

	write(filepath.Join(dir, "bad.lua"), "this is not lua")
	if _, err := NewEngine(dir, nil); err == nil {
		t.Fatal("syntax error not reported")
	}
}

func TestShippedHoverBehavior(t *testing.T) {
	dir := filepath.Join("..", "..", "scripts")
	if _, err := os.Stat(dir); err != nil {
		t.Skip("scripts dir not present")
	}
	e, err := NewEngine(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()
	if !e.HasFunction("hover") || !e.HasFunction("clamp") {
		t.Fatal("hover or clamp not loaded")
	}

	res, err := e.RunBehavior("hover", BehaviorContext{Entity: 7, Y: 1, Rotation: 10})
	if err != nil {
		t.Fatal(err)
	}
	if res.VY == nil || *res.VY != 0 {
		t.Fatalf("vy = %v, want 0 at the spawn height", res.VY)
	}
	if res.AngularVelocity == nil || *res.AngularVelocity >= 0 {
		t.Fatalf("angular_velocity = %v, want negative for a positive tilt", res.AngularVelocity)
	}
}
