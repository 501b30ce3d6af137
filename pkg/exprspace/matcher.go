package exprspace

// MatchAtoms implements full unification between left and right, returning
// every successful binding set. Variables on either side may bind to
// atoms on the other side; this is not one-way pattern matching.
//
// Rules (spec.md §4.1):
//   - Both sides are first walked under the bindings accumulated so far, so
//     a repeated (non-linear) variable is unified against its existing
//     value rather than silently re-bound to a second one.
//   - Symbol vs Symbol: unify iff names equal, producing empty bindings.
//   - Variable v vs any atom a: produce {v ↦ a}, unless a is the very
//     same variable (producing empty bindings instead). When a is also a
//     Variable, the left side is bound to the right by convention.
//   - Grounded vs any: delegate to the grounded value's Match capability.
//   - Expression vs Expression: match iff same arity, folding bindings
//     left-to-right across children with Merge.
//   - Any other pairing: no match (empty result).
func MatchAtoms(left, right Atom) []*Bindings {
	return matchWith(left, right, NewBindings())
}

func matchWith(left, right Atom, base *Bindings) []*Bindings {
	left = base.Walk(left)
	right = base.Walk(right)

	if lv, ok := left.(*Variable); ok {
		if rv, ok := right.(*Variable); ok && rv.tag == lv.tag {
			return []*Bindings{base}
		}
		bound := base.Bind(lv, right)
		if bound == nil {
			return nil
		}
		return []*Bindings{bound}
	}
	if rv, ok := right.(*Variable); ok {
		bound := base.Bind(rv, left)
		if bound == nil {
			return nil
		}
		return []*Bindings{bound}
	}

	if lg, ok := left.(*Grounded); ok {
		return mergeAll(base, lg.Value.Match(right))
	}
	if rg, ok := right.(*Grounded); ok {
		return mergeAll(base, rg.Value.Match(left))
	}

	switch l := left.(type) {
	case *Symbol:
		r, ok := right.(*Symbol)
		if ok && l.Name == r.Name {
			return []*Bindings{base}
		}
		return nil
	case *Expression:
		r, ok := right.(*Expression)
		if !ok || len(l.Children) != len(r.Children) {
			return nil
		}
		current := []*Bindings{base}
		for i := range l.Children {
			var next []*Bindings
			for _, b := range current {
				next = append(next, matchWith(l.Children[i], r.Children[i], b)...)
			}
			current = next
			if len(current) == 0 {
				return nil
			}
		}
		return current
	default:
		return nil
	}
}

// mergeAll folds each candidate binding set produced by a Grounded
// match into base, discarding any that are inconsistent with it.
func mergeAll(base *Bindings, candidates []*Bindings) []*Bindings {
	var out []*Bindings
	for _, c := range candidates {
		merged, ok := Merge(base, c)
		if ok {
			out = append(out, merged)
		}
	}
	return out
}
