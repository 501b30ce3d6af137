package exprspace

import (
	"fmt"
	"strconv"
)

// Number is a grounded integer value, the simplest possible GroundedValue
// implementation and the one exercised by this package's own tests and
// demo. It is not executable on its own; it is matched and typed like a
// Symbol but carries a machine int rather than a name.
type Number struct {
	Value int64
}

// Int returns a Grounded atom wrapping n.
func Int(n int64) *Grounded { return Gnd(&Number{Value: n}) }

func (n *Number) String() string { return strconv.FormatInt(n.Value, 10) }

func (n *Number) TypeOf() Atom { return Sym("Number") }

func (n *Number) Match(other Atom) []*Bindings {
	if v, ok := other.(*Variable); ok {
		return []*Bindings{NewBindings().Bind(v, Gnd(n))}
	}
	if g, ok := other.(*Grounded); ok {
		if o, ok := g.Value.(*Number); ok && o.Value == n.Value {
			return []*Bindings{NewBindings()}
		}
		return nil
	}
	return nil
}

func (n *Number) Executable() bool { return false }

func (n *Number) Execute([]Atom) ([]Atom, *ExecError) {
	return nil, NotExecutable()
}

func (n *Number) EqualValue(other GroundedValue) bool {
	o, ok := other.(*Number)
	return ok && o.Value == n.Value
}

// arithOp is a grounded binary arithmetic operator (+, -, *), executable
// when applied to exactly two Number arguments.
type arithOp struct {
	symbol string
	apply  func(a, b int64) int64
}

func newArithOp(symbol string, apply func(a, b int64) int64) *Grounded {
	return Gnd(&arithOp{symbol: symbol, apply: apply})
}

// PlusOp, MinusOp and TimesOp are ready-made grounded operators for
// building arithmetic expressions such as (+ 2 3) in tests and demos.
func PlusOp() *Grounded  { return newArithOp("+", func(a, b int64) int64 { return a + b }) }
func MinusOp() *Grounded { return newArithOp("-", func(a, b int64) int64 { return a - b }) }
func TimesOp() *Grounded { return newArithOp("*", func(a, b int64) int64 { return a * b }) }

func (o *arithOp) String() string { return o.symbol }

func (o *arithOp) TypeOf() Atom {
	return Expr(ArrowSymbol, Sym("Number"), Sym("Number"), Sym("Number"))
}

func (o *arithOp) Match(other Atom) []*Bindings {
	if v, ok := other.(*Variable); ok {
		return []*Bindings{NewBindings().Bind(v, Gnd(o))}
	}
	if g, ok := other.(*Grounded); ok {
		if other, ok := g.Value.(*arithOp); ok && other.symbol == o.symbol {
			return []*Bindings{NewBindings()}
		}
		return nil
	}
	return nil
}

func (o *arithOp) Executable() bool { return true }

func (o *arithOp) Execute(args []Atom) ([]Atom, *ExecError) {
	if len(args) != 2 {
		return nil, &ExecError{Reason: fmt.Sprintf("%s expects 2 arguments, got %d", o.symbol, len(args))}
	}
	a, ok := args[0].(*Grounded)
	if !ok {
		return nil, &ExecError{Reason: "argument is not a Number"}
	}
	an, ok := a.Value.(*Number)
	if !ok {
		return nil, &ExecError{Reason: "argument is not a Number"}
	}
	b, ok := args[1].(*Grounded)
	if !ok {
		return nil, &ExecError{Reason: "argument is not a Number"}
	}
	bn, ok := b.Value.(*Number)
	if !ok {
		return nil, &ExecError{Reason: "argument is not a Number"}
	}
	return []Atom{Int(o.apply(an.Value, bn.Value))}, nil
}

func (o *arithOp) EqualValue(other GroundedValue) bool {
	other2, ok := other.(*arithOp)
	return ok && other2.symbol == o.symbol
}
