package ecs

import "testing"

func TestComponentStorageSwapAndPop(t *testing.T) {
	s := NewComponentStorage[int]()
	for e := Entity(1); e <= 4; e++ {
		s.Insert(e, int(e)*10)
	}

	s.Remove(2)
	if s.Len() != 3 {
		t.Fatalf("len = %d, want 3", s.Len())
	}
	// Entity 4 was last and fills slot 1.
	if got := s.Entities()[1]; got != 4 {
		t.Fatalf("slot 1 holds entity %d, want 4", got)
	}
	if v, ok := s.Get(4); !ok || *v != 40 {
		t.Fatalf("Get(4) = %v, %v", v, ok)
	}
	if s.Has(2) {
		t.Fatal("entity 2 still present")
	}
	for i, e := range s.Entities() {
		if v, _ := s.Get(e); *v != s.Values()[i] {
			t.Fatalf("mapping broken at %d", i)
		}
	}
}

func TestComponentStorageInsertReplaces(t *testing.T) {
	s := NewComponentStorage[string]()
	s.Insert(7, "a")
	s.Insert(7, "b")
	if s.Len() != 1 {
		t.Fatalf("len = %d, want 1", s.Len())
	}
	if v, _ := s.Get(7); *v != "b" {
		t.Fatalf("value = %q, want b", *v)
	}
}

func TestComponentStorageRemoveAbsent(t *testing.T) {
	s := NewComponentStorage[int]()
	s.Insert(1, 1)
	s.Remove(99)
	s.Remove(1)
	s.Remove(1)
	if s.Len() != 0 || len(s.Values()) != 0 {
		t.Fatalf("len = %d, values = %v", s.Len(), s.Values())
	}
}

func TestEach2VisitsIntersection(t *testing.T) {
	a := NewComponentStorage[int]()
	b := NewComponentStorage[string]()
	a.Insert(1, 1)
	a.Insert(2, 2)
	a.Insert(3, 3)
	b.Insert(2, "two")
	b.Insert(5, "five")

	var seen []Entity
	Each2(a, b, func(e Entity, x *int, y *string) {
		seen = append(seen, e)
		if *x != 2 || *y != "two" {
			t.Errorf("entity %d: %d %q", e, *x, *y)
		}
	})
	if len(seen) != 1 || seen[0] != 2 {
		t.Fatalf("seen = %v, want [2]", seen)
	}
}

func TestSignatureContains(t *testing.T) {
	entity := NewSignature(0, 3, 200)
	tests := []struct {
		name string
		sub  Signature
		want bool
	}{
		{"empty", Signature{}, true},
		{"subset", NewSignature(3, 200), true},
		{"equal", NewSignature(0, 3, 200), true},
		{"missing", NewSignature(3, 4), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := entity.Contains(tt.sub); got != tt.want {
				t.Fatalf("Contains(%v) = %v, want %v", tt.sub, got, tt.want)
			}
		})
	}
	if entity.String() != "{0,3,200}" {
		t.Fatalf("String() = %s", entity.String())
	}
}
