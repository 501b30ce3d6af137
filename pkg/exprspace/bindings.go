package exprspace

import (
	"fmt"

	"github.com/google/uuid"
)

// Bindings is a finite map from Variable to Atom representing a
// substitution produced by the matcher. Bindings are value objects: Bind
// and Merge return a new Bindings rather than mutating the receiver, so a
// caller can freely share one Bindings across several speculative match
// attempts.
//
// Unlike Space and Tokenizer, Bindings are short-lived and never shared
// across goroutines under this runtime's single-threaded cooperative
// scheduling model (spec.md §5), so no internal lock is required here.
type Bindings struct {
	m map[uuid.UUID]entry
}

type entry struct {
	name string
	atom Atom
}

// NewBindings returns an empty Bindings value.
func NewBindings() *Bindings {
	return &Bindings{m: make(map[uuid.UUID]entry)}
}

// Size reports the number of bindings.
func (b *Bindings) Size() int {
	if b == nil {
		return 0
	}
	return len(b.m)
}

// Bind returns a new Bindings extending b with v ↦ a. If a is itself v,
// the binding is a no-op (returns b unchanged) since binding a variable
// to itself carries no information. An occurs-check rejects a binding
// that would introduce a cycle through the existing chain, returning nil
// to signal failure.
func (b *Bindings) Bind(v *Variable, a Atom) *Bindings {
	if other, ok := a.(*Variable); ok && other.tag == v.tag {
		return b
	}
	if occursIn(b, v, a) {
		return nil
	}
	next := b.Clone()
	next.m[v.tag] = entry{name: v.Name, atom: a}
	return next
}

// occursIn reports whether v appears in the chain reachable from a under
// b, which would make binding v ↦ a create a cycle.
func occursIn(b *Bindings, v *Variable, a Atom) bool {
	switch t := a.(type) {
	case *Variable:
		if t.tag == v.tag {
			return true
		}
		if bound, ok := b.lookup(t); ok {
			return occursIn(b, v, bound)
		}
		return false
	case *Expression:
		for _, c := range t.Children {
			if occursIn(b, v, c) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func (b *Bindings) lookup(v *Variable) (Atom, bool) {
	if b == nil {
		return nil, false
	}
	e, ok := b.m[v.tag]
	return e.atom, ok
}

// Resolve follows the binding chain for v to its final value: the first
// non-variable atom, or the unbound variable the chain ends at. It reports
// false if v is unbound.
func (b *Bindings) Resolve(v *Variable) (Atom, bool) {
	seen := b
	cur := v
	var last Atom
	for {
		bound, ok := seen.lookup(cur)
		if !ok {
			return last, last != nil
		}
		last = bound
		next, isVar := bound.(*Variable)
		if !isVar {
			return bound, true
		}
		cur = next
	}
}

// Walk resolves atom to its final value under b: if atom is a bound
// Variable it follows the chain, otherwise it is returned unchanged.
func (b *Bindings) Walk(atom Atom) Atom {
	v, ok := atom.(*Variable)
	if !ok {
		return atom
	}
	resolved, ok := b.Resolve(v)
	if !ok {
		return atom
	}
	return resolved
}

// Clone returns an independent copy of b.
func (b *Bindings) Clone() *Bindings {
	next := NewBindings()
	if b != nil {
		for k, v := range b.m {
			next.m[k] = v
		}
	}
	return next
}

// Merge combines two binding sets. For a variable present in both, the
// two bound values must unify under the merged result; if unification
// fails anywhere, Merge fails and returns (nil, false).
func Merge(a, b *Bindings) (*Bindings, bool) {
	merged := a.Clone()
	if b == nil {
		return merged, true
	}
	for tag, e := range b.m {
		existing, ok := merged.m[tag]
		if !ok {
			merged.m[tag] = e
			continue
		}
		results := MatchAtoms(existing.atom, e.atom)
		if len(results) == 0 {
			return nil, false
		}
		next, ok := Merge(merged, results[0])
		if !ok {
			return nil, false
		}
		next.m[tag] = entry{name: e.name, atom: ApplyBindings(existing.atom, next)}
		merged = next
	}
	return merged, true
}

// ApplyBindings substitutes every Variable in atom with its resolution
// under b, recursively.
func ApplyBindings(atom Atom, b *Bindings) Atom {
	switch t := atom.(type) {
	case *Variable:
		resolved, ok := b.Resolve(t)
		if !ok {
			return t
		}
		return ApplyBindings(resolved, b)
	case *Expression:
		children := make([]Atom, len(t.Children))
		for i, c := range t.Children {
			children[i] = ApplyBindings(c, b)
		}
		return &Expression{Children: children}
	default:
		return atom
	}
}

// String renders the bindings for debugging, e.g. "{$x=A, $y=B}".
func (b *Bindings) String() string {
	if b == nil || len(b.m) == 0 {
		return "{}"
	}
	s := "{"
	first := true
	for _, e := range b.m {
		if !first {
			s += ", "
		}
		s += fmt.Sprintf("$%s=%s", e.name, e.atom.String())
		first = false
	}
	return s + "}"
}
