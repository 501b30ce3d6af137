package exprspace

import "testing"

func TestBindingsBind(t *testing.T) {
	t.Run("binding a fresh variable succeeds", func(t *testing.T) {
		v := Var("x")
		b := NewBindings().Bind(v, Sym("frog"))
		resolved, ok := b.Resolve(v)
		if !ok || !resolved.Equal(Sym("frog")) {
			t.Fatalf("Resolve(x) = %v, %v; want frog, true", resolved, ok)
		}
	})

	t.Run("binding a variable to itself is a no-op", func(t *testing.T) {
		v := Var("x")
		b := NewBindings().Bind(v, v)
		if b.Size() != 0 {
			t.Errorf("binding a variable to itself should add no entry, got size %d", b.Size())
		}
	})

	t.Run("occurs check rejects a self-referential binding", func(t *testing.T) {
		v := Var("x")
		cyclic := Expr(Sym("f"), v)
		b := NewBindings().Bind(v, cyclic)
		if b != nil {
			t.Error("binding x to (f x) should fail the occurs check")
		}
	})
}

func TestBindingsWalk(t *testing.T) {
	x := Var("x")
	y := Var("y")
	b := NewBindings().Bind(x, y)
	b = b.Bind(y, Sym("frog"))

	if got := b.Walk(x); !got.Equal(Sym("frog")) {
		t.Errorf("Walk(x) = %v, want frog", got)
	}
}

func TestApplyBindings(t *testing.T) {
	x := Var("x")
	b := NewBindings().Bind(x, Sym("Fritz"))
	expr := Expr(Sym("frog"), x)

	got := ApplyBindings(expr, b)
	want := Expr(Sym("frog"), Sym("Fritz"))
	if !got.Equal(want) {
		t.Errorf("ApplyBindings = %v, want %v", got, want)
	}
}

func TestMerge(t *testing.T) {
	t.Run("disjoint binding sets combine", func(t *testing.T) {
		x := Var("x")
		y := Var("y")
		a := NewBindings().Bind(x, Sym("frog"))
		b := NewBindings().Bind(y, Sym("Fritz"))

		merged, ok := Merge(a, b)
		if !ok {
			t.Fatal("merging disjoint bindings should succeed")
		}
		if merged.Size() != 2 {
			t.Errorf("merged.Size() = %d, want 2", merged.Size())
		}
	})

	t.Run("consistent shared bindings combine", func(t *testing.T) {
		x := Var("x")
		a := NewBindings().Bind(x, Sym("frog"))
		b := NewBindings().Bind(x, Sym("frog"))

		_, ok := Merge(a, b)
		if !ok {
			t.Error("merging identical bindings for the same variable should succeed")
		}
	})

	t.Run("conflicting shared bindings fail", func(t *testing.T) {
		x := Var("x")
		a := NewBindings().Bind(x, Sym("frog"))
		b := NewBindings().Bind(x, Sym("toad"))

		_, ok := Merge(a, b)
		if ok {
			t.Error("merging conflicting bindings for the same variable should fail")
		}
	})
}
