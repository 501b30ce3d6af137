package exprspace

// EqualSymbol is the head of an equality (rewrite rule) assertion stored
// in a Space, of the form (= pattern template), per spec.md §4.4.
var EqualSymbol Atom = Sym("=")

// StepState distinguishes the three phases of a StepResult, mirroring
// spec.md §3's state machine (Execute/Return/Error).
type StepState int

const (
	// StepExecute means further InterpretStep calls are needed.
	StepExecute StepState = iota
	// StepReturn means interpretation finished normally.
	StepReturn
	// StepError means interpretation finished with an error atom among
	// the results (errors are reported as (Error atom reason) atoms
	// rather than aborting the whole step machine, per spec.md §7).
	StepError
)

// StepResult is a snapshot of an in-progress, possibly nondeterministic
// interpretation: queue holds every branch still awaiting its next
// rewrite layer, results holds every branch that has already reached
// normal form. Each InterpretStep call advances every queued branch by
// exactly one rewrite layer, so the number of InterpretStep calls needed
// is bounded by the longest rewrite chain among all branches, not by
// their count.
type StepResult struct {
	state   StepState
	space   *Space
	queue   []Atom
	results []Atom
}

// InterpretInit begins interpreting expr against space, ready for the
// first InterpretStep call.
func InterpretInit(space *Space, expr Atom) StepResult {
	return StepResult{state: StepExecute, space: space, queue: []Atom{expr}}
}

// HasNext reports whether sr still has branches awaiting interpretation.
func HasNext(sr StepResult) bool {
	return sr.state == StepExecute
}

// GetResult returns every atom sr's branches have reduced to so far. Call
// only once HasNext(sr) is false.
func GetResult(sr StepResult) []Atom {
	return sr.results
}

// InterpretStep advances every branch in sr by one rewrite layer: a
// branch already in normal form moves to results unchanged; a branch
// that still has redexes is replaced by every atom one layer of
// innermost-first reduction (see reduceExpression) rewrites it to, each
// becoming a new branch in the next step. sr transitions to StepReturn once no branch has redexes left, or
// to StepError if any branch produced an (Error ...) atom.
func InterpretStep(sr StepResult) StepResult {
	if sr.state != StepExecute {
		return sr
	}

	var nextQueue []Atom
	var newlyDone []Atom
	for _, atom := range sr.queue {
		results, normal := reduceLayer(sr.space, atom)
		if normal {
			newlyDone = append(newlyDone, results...)
			continue
		}
		nextQueue = append(nextQueue, results...)
	}

	results := sr.results
	for _, a := range newlyDone {
		results = appendUnique(results, a)
	}

	if len(nextQueue) == 0 {
		state := StepReturn
		for _, r := range results {
			if isErrorAtom(r) {
				state = StepError
				break
			}
		}
		return StepResult{state: state, space: sr.space, results: results}
	}

	var dedupedQueue []Atom
	for _, a := range nextQueue {
		dedupedQueue = appendUnique(dedupedQueue, a)
	}
	return StepResult{state: StepExecute, space: sr.space, queue: dedupedQueue, results: results}
}

// Interpret drives InterpretInit/InterpretStep to completion and returns
// the final set of reduced atoms. Convenience wrapper around the
// step-wise API for callers (such as Session.Run) that do not need to
// interleave their own work between steps.
func Interpret(space *Space, expr Atom) []Atom {
	sr := InterpretInit(space, expr)
	for HasNext(sr) {
		sr = InterpretStep(sr)
	}
	return GetResult(sr)
}

func appendUnique(atoms []Atom, a Atom) []Atom {
	if containsAtom(atoms, a) {
		return atoms
	}
	return append(atoms, a)
}

func isErrorAtom(atom Atom) bool {
	e, ok := atom.(*Expression)
	return ok && len(e.Children) > 0 && e.Children[0].Equal(ErrorSymbol)
}

func errorAtom(cause Atom, err *ExecError) Atom {
	return Expr(ErrorSymbol, cause, err.ReasonAtom())
}

// reduceLayer rewrites atom by one layer, reporting the resulting atoms
// and whether atom was already in normal form (in which case the result
// slice is just atom itself).
func reduceLayer(space *Space, atom Atom) ([]Atom, bool) {
	switch t := atom.(type) {
	case *Variable, *Grounded:
		return []Atom{atom}, true
	case *Symbol:
		return reduceByEquations(space, atom)
	case *Expression:
		return reduceExpression(space, t)
	default:
		return []Atom{atom}, true
	}
}

// reduceByEquations queries space for (= atom $R) and substitutes every
// match's R. An atom with no matching equation is in normal form.
func reduceByEquations(space *Space, atom Atom) ([]Atom, bool) {
	r := Var("R")
	matches := space.Query(Expr(EqualSymbol, atom, r))
	var out []Atom
	for _, b := range matches {
		if resolved, ok := b.Resolve(r); ok {
			out = appendUnique(out, ApplyBindings(resolved, b))
		}
	}
	if len(out) == 0 {
		return []Atom{atom}, true
	}
	return out, false
}

// reduceExpression reduces an Expression's children innermost-first; once
// every child is in normal form it attempts, as parallel alternatives,
// both grounded-operator execution (when the head is an Executable
// Grounded atom, per spec.md §4.4's call interpretation) and equation
// rewriting of the whole expression (its tuple interpretation) — both
// the ambiguous cases are pursued rather than one being preferred over
// the other, per spec.md §9's open question.
func reduceExpression(space *Space, expr *Expression) ([]Atom, bool) {
	if len(expr.Children) == 0 {
		return []Atom{expr}, true
	}

	allNormal := true
	variants := make([][]Atom, len(expr.Children))
	for i, c := range expr.Children {
		results, normal := reduceLayer(space, c)
		variants[i] = results
		if !normal {
			allNormal = false
		}
	}
	if !allNormal {
		combos := cartesian(variants)
		out := make([]Atom, len(combos))
		for i, combo := range combos {
			out[i] = &Expression{Children: combo}
		}
		return out, false
	}

	var out []Atom
	if head, ok := expr.Children[0].(*Grounded); ok && head.Executable() {
		results, execErr := head.Value.Execute(expr.Children[1:])
		if execErr != nil {
			// The error atom is itself the terminal result of this
			// branch: it must not be fed back through reduceExpression,
			// since its own cause (expr) would fail to execute again
			// and never converge.
			return []Atom{errorAtom(expr, execErr)}, true
		}
		for _, r := range results {
			out = appendUnique(out, r)
		}
	}
	eqResults, normal := reduceByEquations(space, expr)
	if !normal {
		for _, r := range eqResults {
			out = appendUnique(out, r)
		}
	}

	if len(out) == 0 {
		return []Atom{expr}, true
	}
	return out, false
}

// cartesian returns the Cartesian product of variants, preserving each
// variant's internal order.
func cartesian(variants [][]Atom) [][]Atom {
	combos := [][]Atom{{}}
	for _, variant := range variants {
		var next [][]Atom
		for _, v := range variant {
			for _, prev := range combos {
				combo := make([]Atom, len(prev)+1)
				copy(combo, prev)
				combo[len(prev)] = v
				next = append(next, combo)
			}
		}
		combos = next
	}
	return combos
}
