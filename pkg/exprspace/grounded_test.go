package exprspace

import "testing"

func TestArithOpExecute(t *testing.T) {
	t.Run("addition", func(t *testing.T) {
		results, err := PlusOp().Value.Execute([]Atom{Int(2), Int(3)})
		if err != nil {
			t.Fatalf("Execute returned an error: %v", err)
		}
		if len(results) != 1 || !results[0].Equal(Int(5)) {
			t.Errorf("2 + 3 = %v, want [5]", results)
		}
	})

	t.Run("wrong arity is an ExecError, not a panic", func(t *testing.T) {
		_, err := PlusOp().Value.Execute([]Atom{Int(2)})
		if err == nil {
			t.Fatal("expected an ExecError for the wrong number of arguments")
		}
	})

	t.Run("non-Number argument is an ExecError", func(t *testing.T) {
		_, err := PlusOp().Value.Execute([]Atom{Sym("x"), Int(2)})
		if err == nil {
			t.Fatal("expected an ExecError for a non-Number argument")
		}
	})
}

func TestNumberMatch(t *testing.T) {
	v := Var("x")
	results := MatchAtoms(Int(7), v)
	if len(results) != 1 {
		t.Fatalf("expected a Number to bind a Variable, got %v", results)
	}
	resolved, ok := results[0].Resolve(v)
	if !ok || !resolved.Equal(Int(7)) {
		t.Errorf("x did not resolve to 7: %v, %v", resolved, ok)
	}
}
