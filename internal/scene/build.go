// Package scene turns scene descriptions into entities.
package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/uniengine/simcore/internal/component"
	"github.com/uniengine/simcore/internal/core/ecs"
	"github.com/uniengine/simcore/internal/data"
)

// Scene is the result of Build.
type Scene struct {
	Root     ecs.Entity // carries component.Scene
	Entities map[string]ecs.Entity
	Gravity  *mgl32.Vec2 // nil keeps the configured gravity
}

// Lookup returns the entity built for a named definition.
func (s *Scene) Lookup(name string) (ecs.Entity, bool) {
	e, ok := s.Entities[name]
	return e, ok
}

// Build registers the component types, creates one entity per definition
// plus a root entity holding the Scene settings, and flushes so the scene is
// visible to systems on return.
func Build(w *ecs.World, def *data.SceneDef, log *zap.Logger) (*Scene, error) {
	if log == nil {
		log = zap.NewNop()
	}
	RegisterComponents(w)

	timeScale := float32(1)
	if def.TimeScale != nil {
		timeScale = *def.TimeScale
	}
	out := &Scene{Entities: make(map[string]ecs.Entity, len(def.Entities))}
	if def.Gravity != nil {
		g := mgl32.Vec2(*def.Gravity)
		out.Gravity = &g
	}

	out.Root = w.CreateEntity()
	if err := ecs.AddComponent(w, out.Root, component.Scene{Name: def.Name, TimeScale: timeScale}); err != nil {
		return nil, err
	}

	for i := range def.Entities {
		ed := &def.Entities[i]
		e, err := buildEntity(w, def, ed)
		if err != nil {
			return nil, fmt.Errorf("entity %d (%s): %w", i, ed.Name, err)
		}
		if ed.Name != "" {
			if _, dup := out.Entities[ed.Name]; dup {
				log.Warn("duplicate entity name, keeping first", zap.String("name", ed.Name))
			} else {
				out.Entities[ed.Name] = e
			}
		}
	}
	w.Flush()

	log.Info("scene built",
		zap.String("scene", def.Name),
		zap.Int("entities", def.Count()),
		zap.Float32("time_scale", timeScale))
	return out, nil
}

// RegisterComponents fixes the component type ids in a stable order.
func RegisterComponents(w *ecs.World) {
	ecs.RegisterComponent[component.Transform2D](w)
	ecs.RegisterComponent[component.Rigidbody2D](w)
	ecs.RegisterComponent[component.BoxCollider2D](w)
	ecs.RegisterComponent[component.Script](w)
	ecs.RegisterComponent[component.Name](w)
	ecs.RegisterComponent[component.Scene](w)
}

func buildEntity(w *ecs.World, def *data.SceneDef, ed *data.EntityDef) (ecs.Entity, error) {
	e := w.CreateEntity()
	if ed.Name != "" {
		if err := ecs.AddComponent(w, e, component.Name{Value: ed.Name}); err != nil {
			return e, err
		}
	}
	if td := ed.Transform; td != nil {
		t := component.NewTransform2D(td.Position[0], td.Position[1])
		t.Rotation = td.Rotation
		if td.Scale != nil {
			t.Scale = mgl32.Vec2(*td.Scale)
		}
		if err := ecs.AddComponent(w, e, t); err != nil {
			return e, err
		}
	}
	if cd := ed.Collider; cd != nil {
		c := component.BoxCollider2D{
			Size:      mgl32.Vec2(cd.Size),
			Offset:    mgl32.Vec2(cd.Offset),
			IsTrigger: cd.Trigger,
			IsStatic:  cd.Static,
		}
		if err := ecs.AddComponent(w, e, c); err != nil {
			return e, err
		}
	}
	if rd := ed.Rigidbody; rd != nil {
		if err := ecs.AddComponent(w, e, rigidbodyFrom(def, rd)); err != nil {
			return e, err
		}
	}
	if sd := ed.Script; sd != nil {
		if err := ecs.AddComponent(w, e, component.Script{Handler: sd.Handler}); err != nil {
			return e, err
		}
	}
	return e, nil
}

// rigidbodyFrom layers defaults, then the material, then explicit fields.
func rigidbodyFrom(def *data.SceneDef, rd *data.RigidbodyDef) component.Rigidbody2D {
	rb := component.DefaultRigidbody2D()
	if m, ok := def.Material(rd.Material); ok {
		rb.Restitution = m.Restitution
		rb.Friction = m.Friction
		rb.Drag = m.Drag
		rb.AngularDrag = m.AngularDrag
	}
	if rd.Velocity != nil {
		rb.Velocity = mgl32.Vec2(*rd.Velocity)
	}
	set(&rb.AngularVelocity, rd.AngularVelocity)
	set(&rb.GravityScale, rd.GravityScale)
	set(&rb.Mass, rd.Mass)
	set(&rb.Restitution, rd.Restitution)
	set(&rb.Friction, rd.Friction)
	set(&rb.Drag, rd.Drag)
	set(&rb.AngularDrag, rd.AngularDrag)
	if rd.UseGravity != nil {
		rb.UseGravity = *rd.UseGravity
	}
	return rb
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// TimeScale reads the Scene component on root, defaulting to 1.
func TimeScale(w *ecs.World, root ecs.Entity) float32 {
	s, err := ecs.GetComponent[component.Scene](w, root)
	if err != nil {
		return 1
	}
	return s.TimeScale
}
