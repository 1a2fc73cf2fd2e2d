package dag

import (
	"slices"
	"testing"
)

func TestIDSet(t *testing.T) {
	s := newIDSet()
	for _, id := range []string{"c", "a", "b", "a"} {
		s.add(id)
	}
	if got := s.items(); !slices.Equal(got, []string{"c", "a", "b"}) {
		t.Fatalf("items() = %v, want [c a b]", got)
	}

	if !s.remove("c") {
		t.Fatal("remove(c) = false")
	}
	if s.remove("c") {
		t.Error("second remove(c) = true")
	}
	if got := s.items(); !slices.Equal(got, []string{"a", "b"}) {
		t.Fatalf("items() = %v, want [a b]", got)
	}
	if s.index["b"] != 1 || s.index["a"] != 0 {
		t.Errorf("index not rebuilt: %v", s.index)
	}

	s.add("c")
	if got := s.items(); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("items() = %v, want [a b c]", got)
	}
	if !s.has("c") || s.has("z") || s.len() != 3 {
		t.Error("has/len mismatch")
	}
}
