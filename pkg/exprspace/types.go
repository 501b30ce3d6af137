// This file implements the dependent type checker described in spec.md
// §4.3, grounded on _examples/original_source/lib/src/metta/types.rs:
// get_atom_types, check_type, validate_atom, the meta-type symbols, arrow
// function types and the transitive super-type closure over (:<)
// assertions.
package exprspace

// Meta-type symbols and type-assertion head symbols. These are
// distinguished by identity (pointer-free value equality on the Symbol
// name, as for any other Symbol), never assigned explicitly, but checked
// against in check_type/validate_atom.
var (
	AtomType       Atom = Sym("Atom")
	SymbolType     Atom = Sym("Symbol")
	VariableType   Atom = Sym("Variable")
	GroundedType   Atom = Sym("Grounded")
	ExpressionType Atom = Sym("Expression")
	TypeType       Atom = Sym("Type")
	UndefinedType  Atom = Sym("%Undefined%")

	HasTypeSymbol Atom = Sym(":")
	SubTypeSymbol Atom = Sym(":<")
	ArrowSymbol   Atom = Sym("->")

	ErrorSymbol   Atom = Sym("Error")
	BadTypeSymbol Atom = Sym("BadType")
)

// IsFunc reports whether typ is an arrow (function) type, i.e. an
// Expression whose first child is the -> symbol.
func IsFunc(typ Atom) bool {
	e, ok := typ.(*Expression)
	if !ok || len(e.Children) == 0 {
		return false
	}
	return e.Children[0].Equal(ArrowSymbol)
}

// GetArgTypes splits a function type (-> A B ... R) into its argument
// types and its return type R.
func GetArgTypes(fnTyp Atom) ([]Atom, Atom) {
	e, ok := fnTyp.(*Expression)
	if !ok || len(e.Children) < 2 || !e.Children[0].Equal(ArrowSymbol) {
		return nil, nil
	}
	args := e.Children[1 : len(e.Children)-1]
	ret := e.Children[len(e.Children)-1]
	out := make([]Atom, len(args))
	copy(out, args)
	return out, ret
}

func typeOfQuery(atom, typ Atom) Atom {
	return Expr(HasTypeSymbol, atom, typ)
}

func isaQuery(sub, super Atom) Atom {
	return Expr(SubTypeSymbol, sub, super)
}

// querySuperTypes returns every T such that (:< subType T) is in space.
func querySuperTypes(space *Space, subType Atom) []Atom {
	x := Var("X")
	results := space.Query(isaQuery(subType, x))
	out := make([]Atom, 0, len(results))
	for _, b := range results {
		resolved, ok := b.Resolve(x)
		if ok {
			out = append(out, resolved)
		}
	}
	return out
}

// addSuperTypes extends types in place with the transitive closure of
// (:<) assertions reachable from the entries starting at index from.
// Cycles in (:<) are tolerated: already-present types are never
// re-queued, which guarantees termination over the Space's finite
// content.
func addSuperTypes(space *Space, types *[]Atom, from int) {
	var added []Atom
	for _, typ := range (*types)[from:] {
		for _, super := range querySuperTypes(space, typ) {
			if !containsAtom(*types, super) && !containsAtom(added, super) {
				added = append(added, super)
			}
		}
	}
	if len(added) > 0 {
		next := len(*types)
		*types = append(*types, added...)
		addSuperTypes(space, types, next)
	}
}

func containsAtom(atoms []Atom, a Atom) bool {
	for _, existing := range atoms {
		if existing.Equal(a) {
			return true
		}
	}
	return false
}

// queryTypes returns every asserted type of atom, via (: atom T), plus
// their transitive super-types.
func queryTypes(space *Space, atom Atom) []Atom {
	x := Var("X")
	results := space.Query(typeOfQuery(atom, x))
	types := make([]Atom, 0, len(results))
	for _, b := range results {
		resolved, ok := b.Resolve(x)
		if ok {
			types = append(types, resolved)
		}
	}
	addSuperTypes(space, &types, 0)
	return types
}

func getMetaType(atom Atom) Atom {
	switch atom.(type) {
	case *Symbol:
		return SymbolType
	case *Variable:
		return VariableType
	case *Grounded:
		return GroundedType
	case *Expression:
		return ExpressionType
	default:
		return AtomType
	}
}

func checkMetaType(atom, typ Atom) bool {
	return typ.Equal(AtomType) || typ.Equal(getMetaType(atom))
}

// GetAtomTypes returns every type assignable to atom in the context of
// space, per spec.md §4.3.1.
func GetAtomTypes(space *Space, atom Atom) []Atom {
	return getReductedTypes(space, atom)
}

func getReductedTypes(space *Space, atom Atom) []Atom {
	switch t := atom.(type) {
	case *Variable:
		return []Atom{UndefinedType}
	case *Grounded:
		return []Atom{t.Value.TypeOf()}
	case *Symbol:
		types := queryTypes(space, atom)
		if len(types) == 0 {
			types = append(types, UndefinedType)
		}
		return types
	case *Expression:
		return getExpressionTypes(space, t)
	default:
		return []Atom{UndefinedType}
	}
}

func getExpressionTypes(space *Space, expr *Expression) []Atom {
	// Tuple types: Cartesian product over each child's types, excluding
	// function types for the head position (those are handled as calls).
	tuples := [][]Atom{{}}
	for i, child := range expr.Children {
		childTypes := getReductedTypes(space, child)
		var filtered []Atom
		for _, typ := range childTypes {
			if i == 0 && IsFunc(typ) {
				continue
			}
			filtered = append(filtered, typ)
		}
		var next [][]Atom
		for _, typ := range filtered {
			for _, prev := range tuples {
				combo := make([]Atom, len(prev)+1)
				copy(combo, prev)
				combo[len(prev)] = typ
				next = append(next, combo)
			}
		}
		tuples = next
	}

	var types []Atom
	for _, combo := range tuples {
		if !allUndefined(combo) {
			types = append(types, Expr(combo...))
		}
	}
	types = append(types, queryTypes(space, expr)...)
	addSuperTypes(space, &types, 0)

	onlyTuple := true
	if len(expr.Children) > 0 {
		op := expr.Children[0]
		args := expr.Children[1:]
		actualArgTypes := make([][]Atom, len(args))
		for i, arg := range args {
			ts := getReductedTypes(space, arg)
			candidates := make([]Atom, 0, len(ts)+2)
			candidates = append(candidates, ts...)
			candidates = append(candidates, AtomType, getMetaType(arg))
			actualArgTypes[i] = candidates
		}
		for _, fnType := range getReductedTypes(space, op) {
			if !IsFunc(fnType) {
				continue
			}
			onlyTuple = false
			expectedArgTypes, ret := GetArgTypes(fnType)
			bindings := NewBindings()
			if checkTypes(actualArgTypes, expectedArgTypes, bindings) {
				types = append(types, ApplyBindings(ret, bindings))
			}
		}
	}

	if onlyTuple && len(types) == 0 {
		types = append(types, UndefinedType)
	}
	return types
}

func allUndefined(types []Atom) bool {
	for _, t := range types {
		if !t.Equal(UndefinedType) {
			return false
		}
	}
	return true
}

// checkTypes recursively matches each actual-type set against the
// corresponding expected type; a position succeeds if *any* candidate in
// its actual set matches (spec.md §4.3.1/§9 — "any" was kept, not
// revisited to "all", per the explicit instruction not to guess). Each
// candidate is tried against a cloned copy of bindings so a candidate
// that matches locally but dead-ends deeper in the parameter list never
// leaks its speculative bindings into the next candidate's attempt.
func checkTypes(actual [][]Atom, expected []Atom, bindings *Bindings) bool {
	if len(actual) != len(expected) {
		return false
	}
	if len(actual) == 0 {
		return true
	}
	for _, candidate := range actual[0] {
		trial := bindings.Clone()
		if MatchReductedTypes(candidate, expected[0], trial) &&
			checkTypes(actual[1:], expected[1:], trial) {
			*bindings = *trial
			return true
		}
	}
	return false
}

// undefinedSentinel is a Grounded value whose Match unconditionally
// succeeds with a single empty binding set, making %Undefined% behave as
// a universal wildcard under ordinary unification.
type undefinedSentinel struct{}

func (undefinedSentinel) String() string               { return "%Undefined%" }
func (undefinedSentinel) TypeOf() Atom                  { return TypeType }
func (undefinedSentinel) Match(Atom) []*Bindings        { return []*Bindings{NewBindings()} }
func (undefinedSentinel) Executable() bool              { return false }
func (undefinedSentinel) Execute([]Atom) ([]Atom, *ExecError) {
	return nil, NotExecutable()
}
func (undefinedSentinel) EqualValue(other GroundedValue) bool {
	_, ok := other.(undefinedSentinel)
	return ok
}

func replaceUndefinedTypes(atom Atom) Atom {
	if atom.Equal(UndefinedType) {
		return Gnd(undefinedSentinel{})
	}
	if e, ok := atom.(*Expression); ok {
		children := make([]Atom, len(e.Children))
		for i, c := range e.Children {
			children[i] = replaceUndefinedTypes(c)
		}
		return &Expression{Children: children}
	}
	return atom
}

// MatchReductedTypes matches two already-reducted types, threading
// variable bindings. %Undefined% on either side is replaced by a
// universal sentinel before matching so it behaves as a wildcard. Exactly
// one match result is expected (custom matchers for dependent types are
// not yet supported, per spec.md §4.3.2); if the match yields a result it
// is merged into bindings and true is returned.
func MatchReductedTypes(left, right Atom, bindings *Bindings) bool {
	l := replaceUndefinedTypes(left)
	r := replaceUndefinedTypes(right)
	results := MatchAtoms(l, r)
	if len(results) == 0 {
		return false
	}
	merged, ok := Merge(bindings, results[0])
	if !ok {
		return false
	}
	*bindings = *merged
	return true
}

// CheckType reports whether atom has type typ in the context of space:
// either typ is a meta-type accepted by atom's variant, or some type in
// GetAtomTypes(space, atom) matches typ.
func CheckType(space *Space, atom, typ Atom) bool {
	if checkMetaType(atom, typ) {
		return true
	}
	return len(getMatchedTypes(space, atom, typ)) > 0
}

// TypeBinding pairs a matched type with the variable bindings produced
// while matching it against the requested type.
type TypeBinding struct {
	Type     Atom
	Bindings *Bindings
}

func getMatchedTypes(space *Space, atom, typ Atom) []TypeBinding {
	var out []TypeBinding
	for _, t := range getReductedTypes(space, atom) {
		bindings := NewBindings()
		unique := makeAtomVariablesUnique(t)
		if MatchReductedTypes(unique, typ, bindings) {
			out = append(out, TypeBinding{Type: unique, Bindings: bindings})
		}
	}
	return out
}

// GetTypeBindings finds every type of atom matching typ, together with
// the bindings produced for typ's parameters. This supplements spec.md
// (see SPEC_FULL.md §4) with the parameter-binding pairs
// original_source's types.rs exposes (get_type_bindings) beyond the
// boolean-only check_type / list-only get_atom_types spec.md asks for.
func GetTypeBindings(space *Space, atom, typ Atom) []TypeBinding {
	var out []TypeBinding
	if checkMetaType(atom, typ) {
		out = append(out, TypeBinding{Type: typ, Bindings: NewBindings()})
	}
	out = append(out, getMatchedTypes(space, atom, typ)...)
	if len(out) > 1 {
		var filtered []TypeBinding
		for _, tb := range out {
			if !tb.Type.Equal(UndefinedType) {
				filtered = append(filtered, tb)
			}
		}
		out = filtered
	}
	return out
}

// makeAtomVariablesUnique alpha-renames every Variable in atom to a fresh
// tag, consistently for repeated occurrences, mirroring Space's
// alpha-renaming of stored atoms but applied to an already-materialized
// type before it is matched against a caller-supplied type expression.
func makeAtomVariablesUnique(atom Atom) Atom {
	return renameVariables(atom)
}

// ValidateAtom reports whether atom is typed correctly: true iff
// GetAtomTypes(space, atom) is non-empty.
func ValidateAtom(space *Space, atom Atom) bool {
	return len(getReductedTypes(space, atom)) > 0
}
