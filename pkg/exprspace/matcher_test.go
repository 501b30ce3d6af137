package exprspace

import "testing"

func TestMatchAtomsSymbols(t *testing.T) {
	t.Run("equal symbols match with empty bindings", func(t *testing.T) {
		results := MatchAtoms(Sym("frog"), Sym("frog"))
		if len(results) != 1 || results[0].Size() != 0 {
			t.Fatalf("MatchAtoms(frog, frog) = %v, want one empty binding set", results)
		}
	})

	t.Run("different symbols do not match", func(t *testing.T) {
		if results := MatchAtoms(Sym("frog"), Sym("toad")); len(results) != 0 {
			t.Errorf("MatchAtoms(frog, toad) = %v, want no matches", results)
		}
	})
}

func TestMatchAtomsVariables(t *testing.T) {
	t.Run("a variable binds to a symbol", func(t *testing.T) {
		v := Var("x")
		results := MatchAtoms(v, Sym("frog"))
		if len(results) != 1 {
			t.Fatalf("expected exactly one match, got %d", len(results))
		}
		resolved, ok := results[0].Resolve(v)
		if !ok || !resolved.Equal(Sym("frog")) {
			t.Errorf("x did not resolve to frog: %v, %v", resolved, ok)
		}
	})

	t.Run("a variable unifies with itself", func(t *testing.T) {
		v := Var("x")
		results := MatchAtoms(v, v)
		if len(results) != 1 || results[0].Size() != 0 {
			t.Errorf("self-unification should yield one empty binding set, got %v", results)
		}
	})
}

func TestMatchAtomsExpressions(t *testing.T) {
	t.Run("same-arity expressions with a variable match", func(t *testing.T) {
		v := Var("x")
		pattern := Expr(Sym("frog"), v)
		target := Expr(Sym("frog"), Sym("Fritz"))

		results := MatchAtoms(pattern, target)
		if len(results) != 1 {
			t.Fatalf("expected exactly one match, got %d", len(results))
		}
		resolved, ok := results[0].Resolve(v)
		if !ok || !resolved.Equal(Sym("Fritz")) {
			t.Errorf("x did not resolve to Fritz: %v, %v", resolved, ok)
		}
	})

	t.Run("mismatched arity does not match", func(t *testing.T) {
		pattern := Expr(Sym("frog"), Var("x"))
		target := Expr(Sym("frog"), Sym("Fritz"), Sym("extra"))
		if results := MatchAtoms(pattern, target); len(results) != 0 {
			t.Errorf("mismatched arity should not match, got %v", results)
		}
	})

	t.Run("a shared variable must resolve consistently", func(t *testing.T) {
		x := Var("x")
		pattern := Expr(Sym("pair"), x, x)
		target := Expr(Sym("pair"), Sym("a"), Sym("a"))
		if results := MatchAtoms(pattern, target); len(results) != 1 {
			t.Errorf("expected the repeated variable to unify consistently, got %v", results)
		}

		mismatched := Expr(Sym("pair"), Sym("a"), Sym("b"))
		if results := MatchAtoms(pattern, mismatched); len(results) != 0 {
			t.Errorf("expected no match when the repeated variable would need two values, got %v", results)
		}
	})
}

func TestMatchAtomsGrounded(t *testing.T) {
	if results := MatchAtoms(Int(2), Int(2)); len(results) != 1 {
		t.Errorf("equal grounded numbers should match, got %v", results)
	}
	if results := MatchAtoms(Int(2), Int(3)); len(results) != 0 {
		t.Errorf("different grounded numbers should not match, got %v", results)
	}
}
