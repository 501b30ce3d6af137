// Package exprspace implements the core of a symbolic-expression
// term-rewriting runtime: a four-variant atom algebra, a unifying pattern
// matcher, a content-addressable knowledge base ("Space"), a dependent
// type checker and a step-wise interpreter that rewrites expressions by
// repeatedly querying equation rules against the Space.
//
// The package follows the same thread-safety discipline as the project
// it was grown from: long-lived shared state (Space, Tokenizer) is
// guarded by a read/write lock with the invariant that no write may
// proceed while a read borrow is outstanding; Atoms themselves are
// value objects and are freely cloned.
package exprspace

import (
	"fmt"

	"github.com/google/uuid"
)

// Atom is the canonical term of the runtime. Every value manipulated by
// the matcher, the Space, the type checker and the interpreter is one of
// the four concrete variants below: Symbol, Variable, Grounded or
// Expression.
type Atom interface {
	// String renders the atom in its surface S-expression form.
	String() string

	// Equal reports strict structural equality, not unifiability.
	Equal(other Atom) bool

	// IsVar reports whether this atom is a Variable.
	IsVar() bool

	// Clone returns an independent copy of the atom. Atoms are
	// immutable after construction, so Clone is cheap and safe to
	// share across goroutines.
	Clone() Atom
}

// Symbol is an atom interned by value equality on its name.
type Symbol struct {
	Name string
}

// Sym constructs a Symbol atom.
func Sym(name string) *Symbol { return &Symbol{Name: name} }

func (s *Symbol) String() string { return s.Name }

// Equal reports whether other is a Symbol with the same name.
func (s *Symbol) Equal(other Atom) bool {
	o, ok := other.(*Symbol)
	return ok && s.Name == o.Name
}

func (s *Symbol) IsVar() bool { return false }

func (s *Symbol) Clone() Atom { return &Symbol{Name: s.Name} }

// Variable is a logic variable. Two variables are equal iff both their
// name and their unique tag match; MakeUnique produces a variable with
// the same name but a fresh tag, which is how the Space alpha-renames
// rule variables before each query so they can never leak to callers.
type Variable struct {
	Name string
	tag  uuid.UUID
}

// Var constructs a fresh Variable with the given name.
func Var(name string) *Variable {
	return &Variable{Name: name, tag: uuid.New()}
}

// varWithTag is used internally (Space.Query's result narrowing) to
// build a Variable carrying a specific, already-minted tag.
func varWithTag(name string, tag uuid.UUID) *Variable {
	return &Variable{Name: name, tag: tag}
}

// Tag returns the variable's unique identity, usable as a map key.
func (v *Variable) Tag() uuid.UUID { return v.tag }

func (v *Variable) String() string { return "$" + v.Name }

// Equal reports whether other is the very same variable (name and tag).
func (v *Variable) Equal(other Atom) bool {
	o, ok := other.(*Variable)
	return ok && v.Name == o.Name && v.tag == o.tag
}

func (v *Variable) IsVar() bool { return true }

func (v *Variable) Clone() Atom { return &Variable{Name: v.Name, tag: v.tag} }

// MakeUnique returns a copy of v with the same name but a new globally
// unique tag. Used to alpha-rename rule variables before each use so
// that repeated matches against the same stored atom never capture each
// other's bindings.
func (v *Variable) MakeUnique() *Variable {
	return &Variable{Name: v.Name, tag: uuid.New()}
}

// ExecError is returned by a Grounded value's Execute when the operation
// cannot produce a result. It is itself convertible to an error-reason
// Atom via ReasonAtom, matching the domain error atoms described by the
// runtime's error surface.
type ExecError struct {
	Reason string
}

func (e *ExecError) Error() string { return e.Reason }

// ReasonAtom returns the error reason as a Symbol atom, suitable for
// embedding in an (Error atom reason) result.
func (e *ExecError) ReasonAtom() Atom { return Sym(e.Reason) }

// GroundedValue is the capability set an opaque host value must expose
// to participate in the runtime as a Grounded atom: a type query, a
// matching operation and an execution operation.
type GroundedValue interface {
	fmt.Stringer

	// TypeOf returns the atom naming this value's type.
	TypeOf() Atom

	// Match attempts to unify this grounded value against another atom,
	// returning every successful binding set (empty slice means no
	// match).
	Match(other Atom) []*Bindings

	// Execute invokes the value as an operator over args, returning the
	// resulting atoms or an execution error.
	Execute(args []Atom) ([]Atom, *ExecError)

	// Executable reports whether this value may be invoked as an
	// operator at all; plain grounded constants return false so the
	// interpreter never attempts to call them.
	Executable() bool

	// EqualValue reports whether this value is equal, by the host
	// value's own notion of equality, to another GroundedValue.
	EqualValue(other GroundedValue) bool
}

// Grounded wraps an opaque host value participating in the atom algebra
// via the GroundedValue capability set.
type Grounded struct {
	Value GroundedValue
}

// Gnd constructs a Grounded atom wrapping value.
func Gnd(value GroundedValue) *Grounded { return &Grounded{Value: value} }

func (g *Grounded) String() string { return g.Value.String() }

// Equal reports whether other is a Grounded atom wrapping an equal value.
func (g *Grounded) Equal(other Atom) bool {
	o, ok := other.(*Grounded)
	return ok && g.Value.EqualValue(o.Value)
}

func (g *Grounded) IsVar() bool { return false }

func (g *Grounded) Clone() Atom { return &Grounded{Value: g.Value} }

// Executable reports whether this grounded value can be invoked as an
// operator, so the interpreter can tell a callable operator apart from a
// plain grounded constant before attempting Execute.
func (g *Grounded) Executable() bool { return g.Value.Executable() }

// NotExecutableReason is the ExecError reason a plain grounded constant
// should return from Execute if it is ever called despite Executable
// reporting false.
const NotExecutableReason = "NotExecutable"

// NotExecutable is a convenience constructor for GroundedValue
// implementations that are plain values, not operators.
func NotExecutable() *ExecError { return &ExecError{Reason: NotExecutableReason} }

// Expression is an ordered, possibly empty sequence of child atoms.
type Expression struct {
	Children []Atom
}

// Expr constructs an Expression atom from the given children.
func Expr(children ...Atom) *Expression { return &Expression{Children: children} }

func (e *Expression) String() string {
	s := "("
	for i, c := range e.Children {
		if i > 0 {
			s += " "
		}
		s += c.String()
	}
	return s + ")"
}

// Equal reports structural, element-wise equality.
func (e *Expression) Equal(other Atom) bool {
	o, ok := other.(*Expression)
	if !ok || len(e.Children) != len(o.Children) {
		return false
	}
	for i, c := range e.Children {
		if !c.Equal(o.Children[i]) {
			return false
		}
	}
	return true
}

func (e *Expression) IsVar() bool { return false }

func (e *Expression) Clone() Atom {
	children := make([]Atom, len(e.Children))
	for i, c := range e.Children {
		children[i] = c.Clone()
	}
	return &Expression{Children: children}
}
