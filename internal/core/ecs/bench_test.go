package ecs

import "testing"

// go test -run ^$ -bench . ./internal/core/ecs -benchmem

type benchSystem struct{ SystemBase }

func BenchmarkFlush(b *testing.B) {
	const n = 1000
	w := NewWorld(nil)
	sys := RegisterSystem(w, &benchSystem{})
	if err := SetSystemSignature[*benchSystem](w, NewSignature(ComponentTypeOf[position](w), ComponentTypeOf[velocity](w))); err != nil {
		b.Fatal(err)
	}
	entities := make([]Entity, n)
	for i := range entities {
		entities[i] = w.CreateEntity()
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, e := range entities {
			_ = AddComponent(w, e, position{X: 1})
			_ = AddComponent(w, e, velocity{Y: 1})
		}
		w.Flush()
		for _, e := range entities {
			RemoveComponent[velocity](w, e)
		}
		w.Flush()
	}
	if sys.EntityCount() != 0 {
		b.Fatalf("tracked %d entities after removal", sys.EntityCount())
	}
}

func BenchmarkEach2(b *testing.B) {
	w := NewWorld(nil)
	for i := 0; i < 1000; i++ {
		e := w.CreateEntity()
		_ = AddComponent(w, e, position{})
		if i%2 == 0 {
			_ = AddComponent(w, e, velocity{X: 1})
		}
	}
	w.Flush()
	pos, vel := Components[position](w), Components[velocity](w)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Each2(pos, vel, func(_ Entity, p *position, v *velocity) {
			p.X += v.X
		})
	}
}
