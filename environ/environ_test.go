package environ

import (
	"errors"
	"testing"
)

func TestDefineResolve(t *testing.T) {
	env := Empty[int]()
	env.Define("a", 1)
	v, err := env.Resolve("a")
	if err != nil {
		t.Fatalf("resolve a: %v", err)
	}
	if v != 1 {
		t.Errorf("want 1, got %d", v)
	}
	if _, err := env.Resolve("b"); !errors.Is(err, ErrUndefined) {
		t.Errorf("want ErrUndefined, got %v", err)
	}
}

func TestDefineOverwrites(t *testing.T) {
	env := Empty[string]()
	env.Define("a", "first")
	env.Define("a", "second")
	v, _ := env.Resolve("a")
	if v != "second" {
		t.Errorf("want second, got %s", v)
	}
}

func TestResolveChain(t *testing.T) {
	outer := Empty[int]()
	outer.Define("a", 1)
	outer.Define("b", 2)
	inner := Enclosed(outer)
	inner.Define("a", 10)

	v, _ := inner.Resolve("a")
	if v != 10 {
		t.Errorf("shadowed lookup: want 10, got %d", v)
	}
	v, _ = inner.Resolve("b")
	if v != 2 {
		t.Errorf("chained lookup: want 2, got %d", v)
	}
	v, _ = outer.Resolve("a")
	if v != 1 {
		t.Errorf("outer stays untouched: want 1, got %d", v)
	}
}

func TestAssign(t *testing.T) {
	outer := Empty[int]()
	outer.Define("a", 1)
	inner := Enclosed(outer)

	if err := inner.Assign("a", 2); err != nil {
		t.Fatalf("assign a: %v", err)
	}
	v, _ := outer.Resolve("a")
	if v != 2 {
		t.Errorf("assign writes where the binding lives: want 2, got %d", v)
	}
	if _, ok := inner.values["a"]; ok {
		t.Error("assign must not declare in the inner scope")
	}
	if err := inner.Assign("missing", 3); !errors.Is(err, ErrUndefined) {
		t.Errorf("want ErrUndefined, got %v", err)
	}
}

func TestAtDepth(t *testing.T) {
	g := Empty[int]()
	g.Define("a", 0)
	mid := Enclosed(g)
	mid.Define("a", 1)
	leaf := Enclosed(mid)
	leaf.Define("a", 2)

	for depth, want := range []int{2, 1, 0} {
		v, err := leaf.ResolveAt(depth, "a")
		if err != nil {
			t.Fatalf("depth %d: %v", depth, err)
		}
		if v != want {
			t.Errorf("depth %d: want %d, got %d", depth, want, v)
		}
	}

	if err := leaf.AssignAt(1, "a", 11); err != nil {
		t.Fatalf("assign at depth 1: %v", err)
	}
	v, _ := mid.Resolve("a")
	if v != 11 {
		t.Errorf("want 11 in the middle scope, got %d", v)
	}
	v, _ = leaf.Resolve("a")
	if v != 2 {
		t.Errorf("leaf binding untouched: want 2, got %d", v)
	}

	if _, err := leaf.ResolveAt(5, "a"); !errors.Is(err, ErrUndefined) {
		t.Errorf("depth past the root: want ErrUndefined, got %v", err)
	}
	if err := leaf.AssignAt(5, "a", 9); !errors.Is(err, ErrUndefined) {
		t.Errorf("assign past the root: want ErrUndefined, got %v", err)
	}
}

// A scope kept alive by a reference outlives its creation site.
func TestChainOutlivesUse(t *testing.T) {
	build := func() *Env[int] {
		outer := Empty[int]()
		outer.Define("captured", 42)
		return Enclosed(outer)
	}
	env := build()
	v, err := env.Resolve("captured")
	if err != nil {
		t.Fatalf("resolve captured: %v", err)
	}
	if v != 42 {
		t.Errorf("want 42, got %d", v)
	}
}
