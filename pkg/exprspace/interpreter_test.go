package exprspace

import "testing"

func TestInterpretBasicLogicChain(t *testing.T) {
	space := NewSpace(nil)
	x := Var("x")
	fritz := Sym("Fritz")

	space.Add(Expr(EqualSymbol, Expr(Sym("green"), x), Expr(Sym("frog"), x)))
	space.Add(Expr(EqualSymbol, Expr(Sym("frog"), x),
		Expr(Sym("And"), Expr(Sym("croaks"), x), Expr(Sym("eat_flies"), x))))
	space.Add(Expr(EqualSymbol, Expr(Sym("croaks"), fritz), Sym("T")))
	space.Add(Expr(EqualSymbol, Expr(Sym("eat_flies"), fritz), Sym("T")))
	space.Add(Expr(EqualSymbol, Expr(Sym("And"), Sym("T"), Sym("T")), Sym("T")))
	space.Add(Expr(Sym("green"), fritz))

	results := Interpret(space, Expr(Sym("green"), fritz))
	if len(results) != 1 || !results[0].Equal(Sym("T")) {
		t.Fatalf("Interpret((green Fritz)) = %v, want [T]", results)
	}
}

func TestInterpretStepMachine(t *testing.T) {
	space := NewSpace(nil)
	space.Add(Expr(EqualSymbol, Sym("a"), Sym("b")))
	space.Add(Expr(EqualSymbol, Sym("b"), Sym("c")))

	sr := InterpretInit(space, Sym("a"))
	steps := 0
	for HasNext(sr) {
		sr = InterpretStep(sr)
		steps++
		if steps > 10 {
			t.Fatal("InterpretStep did not converge")
		}
	}
	if got := GetResult(sr); len(got) != 1 || !got[0].Equal(Sym("c")) {
		t.Errorf("GetResult = %v, want [c]", got)
	}
	if steps != 3 {
		t.Errorf("expected exactly 3 steps (a->b, b->c, c found normal), got %d", steps)
	}
}

func TestInterpretNondeterministicBranches(t *testing.T) {
	space := NewSpace(nil)
	space.Add(Expr(EqualSymbol, Sym("coin"), Sym("heads")))
	space.Add(Expr(EqualSymbol, Sym("coin"), Sym("tails")))

	results := Interpret(space, Sym("coin"))
	if len(results) != 2 {
		t.Fatalf("expected both branches, got %v", results)
	}
}

func TestInterpretGroundedExecution(t *testing.T) {
	space := NewSpace(nil)
	expr := Expr(PlusOp(), Int(2), Int(3))

	results := Interpret(space, expr)
	if len(results) != 1 || !results[0].Equal(Int(5)) {
		t.Fatalf("Interpret((+ 2 3)) = %v, want [5]", results)
	}
}

func TestInterpretAtomAlreadyInNormalForm(t *testing.T) {
	space := NewSpace(nil)
	results := Interpret(space, Sym("unrelated"))
	if len(results) != 1 || !results[0].Equal(Sym("unrelated")) {
		t.Errorf("an atom with no matching equation should reduce to itself, got %v", results)
	}
}

func TestInterpretExecutionErrorProducesErrorAtom(t *testing.T) {
	space := NewSpace(nil)
	expr := Expr(PlusOp(), Int(2))

	results := Interpret(space, expr)
	if len(results) != 1 || !isErrorAtom(results[0]) {
		t.Errorf("an arithmetic operator applied to the wrong arity should produce an Error atom, got %v", results)
	}
}
