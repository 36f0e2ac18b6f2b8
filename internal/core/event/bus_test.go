package event

import "testing"

type ping struct{ N int }
type pong struct{ S string }

func TestBusDeliversNextStep(t *testing.T) {
	b := NewBus()
	var got []int
	Subscribe(b, func(p ping) { got = append(got, p.N) })

	Emit(b, ping{1})
	Emit(b, ping{2})
	b.DispatchAll()
	if len(got) != 0 {
		t.Fatalf("delivered before swap: %v", got)
	}
	if b.Pending() != 2 {
		t.Fatalf("Pending = %d, want 2", b.Pending())
	}

	b.SwapBuffers()
	Emit(b, ping{3})
	b.DispatchAll()
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("got %v, want [1 2]", got)
	}

	b.SwapBuffers()
	b.DispatchAll()
	if len(got) != 3 || got[2] != 3 {
		t.Fatalf("got %v, want [1 2 3]", got)
	}
}

func TestBusDispatchOrderAcrossTypes(t *testing.T) {
	b := NewBus()
	var trace []string
	Subscribe(b, func(p pong) { trace = append(trace, "pong:"+p.S) })
	Subscribe(b, func(p ping) { trace = append(trace, "ping") })

	Emit(b, pong{"a"})
	Emit(b, ping{})
	Emit(b, pong{"b"})
	b.SwapBuffers()
	b.DispatchAll()

	want := []string{"pong:a", "pong:b", "ping"}
	if len(trace) != len(want) {
		t.Fatalf("trace = %v", trace)
	}
	for i := range want {
		if trace[i] != want[i] {
			t.Fatalf("trace = %v, want %v", trace, want)
		}
	}
}

func TestEmitNilBus(t *testing.T) {
	var b *Bus
	Emit(b, ping{1}) // must not panic
}

func TestBusTypesAndSwapClears(t *testing.T) {
	b := NewBus()
	n := 0
	Subscribe(b, func(pong) { n++ })
	if got := b.Types(); len(got) != 0 {
		t.Fatalf("Types before emit = %v", got)
	}

	Emit(b, ping{})
	Emit(b, pong{})
	want := []string{"event.ping", "event.pong"}
	got := b.Types()
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("Types = %v, want %v", got, want)
	}

	b.SwapBuffers()
	b.DispatchAll()
	b.SwapBuffers()
	b.DispatchAll()
	if n != 1 {
		t.Fatalf("pong delivered %d times, want 1", n)
	}
	if b.Pending() != 0 {
		t.Fatalf("Pending = %d after draining", b.Pending())
	}
}
